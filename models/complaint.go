package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryRagging           Category = "ragging"
	CategoryHarassment        Category = "harassment"
	CategoryMentalHealth      Category = "mental-health"
	CategoryFacultyMisconduct Category = "faculty-misconduct"
	CategoryOthers            Category = "others"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{
	CategoryRagging,
	CategoryHarassment,
	CategoryMentalHealth,
	CategoryFacultyMisconduct,
	CategoryOthers,
}

var categoryLabels = map[Category]string{
	CategoryRagging:           "Ragging",
	CategoryHarassment:        "Harassment",
	CategoryMentalHealth:      "Mental Health",
	CategoryFacultyMisconduct: "Faculty Misconduct",
	CategoryOthers:            "Others",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label falls back to the raw value for categories outside the fixed set.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in-review"
	StatusResolved Status = "resolved"
)

var Statuses = []Status{StatusPending, StatusInReview, StatusResolved}

// ParseStatus accepts any casing plus "In Review"/"in_review" spellings
// found in older documents.
func ParseStatus(s string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	switch Status(norm) {
	case StatusPending, StatusInReview, StatusResolved:
		return Status(norm), true
	}
	return "", false
}

// Normalize returns the canonical form, or the input lowercased if unknown.
func (s Status) Normalize() Status {
	if st, ok := ParseStatus(string(s)); ok {
		return st
	}
	return Status(strings.ToLower(string(s)))
}

func (s Status) Equal(other Status) bool {
	return s.Normalize() == other.Normalize()
}

var statusLabels = map[Status]string{
	StatusPending:  "Pending",
	StatusInReview: "In Review",
	StatusResolved: "Resolved",
}

func (s Status) Label() string {
	if label, ok := statusLabels[s.Normalize()]; ok {
		return label
	}
	return string(s)
}

const (
	TimelineCaseCreated  = "case_created"
	TimelineStatusChange = "status_change"
	TimelineAdminNote    = "admin_note"
)

type TimelineEntry struct {
	Date   time.Time `json:"date" bson:"date"`
	Action string    `json:"action" bson:"action"`
	Notes  string    `json:"notes" bson:"notes"`
	Type   string    `json:"type,omitempty" bson:"type,omitempty"`
}

type NoteEntry struct {
	Note      string    `json:"note" bson:"note"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	AdminID   string    `json:"adminId,omitempty" bson:"adminId,omitempty"`
}

type Complaint struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TicketID string             `json:"ticketId" bson:"ticketId,omitempty"`
	// Older documents stored the code under "ticketID".
	LegacyTicketID    string          `json:"-" bson:"ticketID,omitempty"`
	Category          Category        `json:"category" bson:"category"`
	Description       string          `json:"description" bson:"description"`
	ContactEmail      string          `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone      string          `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	FileURL           string          `json:"fileURL,omitempty" bson:"fileURL,omitempty"`
	Status            Status          `json:"status" bson:"status"`
	AdminNotes        string          `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	AdminNotesHistory []NoteEntry     `json:"adminNotesHistory,omitempty" bson:"adminNotesHistory,omitempty"`
	Timeline          []TimelineEntry `json:"timeline,omitempty" bson:"timeline,omitempty"`
	Timestamp         time.Time       `json:"dateSubmitted" bson:"timestamp"`
	LastUpdated       *time.Time      `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
}

// Ticket returns the ticket code regardless of which field it was stored under,
// falling back to the document ID like the dashboard always has.
func (c *Complaint) Ticket() string {
	switch {
	case c.TicketID != "":
		return c.TicketID
	case c.LegacyTicketID != "":
		return c.LegacyTicketID
	case !c.ID.IsZero():
		return c.ID.Hex()
	}
	return ""
}

func (c *Complaint) HasAttachment() bool {
	return c.FileURL != ""
}

// Normalize folds the legacy ticket field and mixed-case status in place.
func (c *Complaint) Normalize() {
	c.TicketID = c.Ticket()
	c.Status = c.Status.Normalize()
}

// CaseCreatedEntry is the first timeline entry of every case.
func CaseCreatedEntry(at time.Time) TimelineEntry {
	return TimelineEntry{
		Date:   at,
		Action: "Case Created",
		Notes:  "Complaint submitted and case opened",
		Type:   TimelineCaseCreated,
	}
}

// TimelineOrDefault synthesizes the creation entry for documents that
// predate timelines. The bool reports whether it had to.
func (c *Complaint) TimelineOrDefault(now time.Time) ([]TimelineEntry, bool) {
	if len(c.Timeline) > 0 {
		return c.Timeline, false
	}
	at := c.Timestamp
	if at.IsZero() {
		at = now
	}
	return []TimelineEntry{CaseCreatedEntry(at)}, true
}

// CaseChange is one admin edit: the new status and notes, plus the entries
// it appends to the timeline and notes history.
type CaseChange struct {
	Status      Status
	AdminNotes  string
	LastUpdated time.Time
	Timeline    []TimelineEntry
	NotesAdded  []NoteEntry
}
