package services

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

const TicketPrefix = "CSHLD-"

var ticketPattern = regexp.MustCompile(`^CSHLD-[0-9A-F]{6}$`)

// GenerateTicketID returns CSHLD- followed by three random bytes in upper hex.
// Uniqueness is not checked against the store.
func GenerateTicketID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate ticket id: %w", err)
	}
	return TicketPrefix + strings.ToUpper(fmt.Sprintf("%x", b)), nil
}

func ValidTicketID(s string) bool {
	return ticketPattern.MatchString(s)
}
