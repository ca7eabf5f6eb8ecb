package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicketIDFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := GenerateTicketID()
		require.NoError(t, err)
		assert.Regexp(t, `^CSHLD-[0-9A-F]{6}$`, id)
		assert.True(t, ValidTicketID(id))
		seen[id] = true
	}
	assert.Greater(t, len(seen), 190, "ids should be random")
}

func TestValidTicketID(t *testing.T) {
	assert.True(t, ValidTicketID("CSHLD-00FF9A"))
	assert.False(t, ValidTicketID("CSHLD-00ff9a"))
	assert.False(t, ValidTicketID("CSHLD-00FF9"))
	assert.False(t, ValidTicketID("CS12345678"))
	assert.False(t, ValidTicketID(" CSHLD-00FF9A"))
}
