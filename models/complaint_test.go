package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":   StatusPending,
		"Pending":   StatusPending,
		" PENDING ": StatusPending,
		"in-review": StatusInReview,
		"In Review": StatusInReview,
		"In-Review": StatusInReview,
		"in_review": StatusInReview,
		"Resolved":  StatusResolved,
	}
	for in, want := range cases {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseStatus("closed")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestStatusEqualIsCaseInsensitive(t *testing.T) {
	assert.True(t, Status("Pending").Equal(StatusPending))
	assert.True(t, Status("In Review").Equal("in-review"))
	assert.False(t, Status("Resolved").Equal(StatusPending))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.Label())
	assert.Equal(t, "In Review", StatusInReview.Label())
	assert.Equal(t, "In Review", Status("In-Review").Label())
	assert.Equal(t, "Resolved", Status("RESOLVED").Label())
	assert.Equal(t, "closed", Status("closed").Label())
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryMentalHealth.Valid())
	assert.False(t, Category("theft").Valid())
	assert.Equal(t, "Faculty Misconduct", CategoryFacultyMisconduct.Label())
	assert.Equal(t, "theft", Category("theft").Label())
	assert.Len(t, Categories, 5)
}

func TestTicketFallbacks(t *testing.T) {
	c := &Complaint{TicketID: "CSHLD-0A1B2C", LegacyTicketID: "CSHLD-FFFFFF"}
	assert.Equal(t, "CSHLD-0A1B2C", c.Ticket())

	c = &Complaint{LegacyTicketID: "CSHLD-FFFFFF"}
	assert.Equal(t, "CSHLD-FFFFFF", c.Ticket())

	id := primitive.NewObjectID()
	c = &Complaint{ID: id}
	assert.Equal(t, id.Hex(), c.Ticket())

	assert.Equal(t, "", (&Complaint{}).Ticket())
}

func TestNormalize(t *testing.T) {
	c := &Complaint{LegacyTicketID: "CSHLD-ABCDEF", Status: "Pending"}
	c.Normalize()
	assert.Equal(t, "CSHLD-ABCDEF", c.TicketID)
	assert.Equal(t, StatusPending, c.Status)
}

func TestLegacyTicketFieldDecodes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"ticketID": "CSHLD-123ABC", "status": "Pending"})
	assert.NoError(t, err)

	var c Complaint
	assert.NoError(t, bson.Unmarshal(raw, &c))
	assert.Equal(t, "", c.TicketID)
	assert.Equal(t, "CSHLD-123ABC", c.Ticket())
}

func TestTimelineOrDefault(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	submitted := now.Add(-48 * time.Hour)

	c := &Complaint{Timestamp: submitted}
	tl, synthesized := c.TimelineOrDefault(now)
	assert.True(t, synthesized)
	if assert.Len(t, tl, 1) {
		assert.Equal(t, "Case Created", tl[0].Action)
		assert.Equal(t, "Complaint submitted and case opened", tl[0].Notes)
		assert.Equal(t, TimelineCaseCreated, tl[0].Type)
		assert.Equal(t, submitted, tl[0].Date)
	}

	tl, _ = (&Complaint{}).TimelineOrDefault(now)
	assert.Equal(t, now, tl[0].Date)

	existing := []TimelineEntry{{Action: "Status changed to Resolved"}}
	c = &Complaint{Timeline: existing}
	tl, synthesized = c.TimelineOrDefault(now)
	assert.False(t, synthesized)
	assert.Equal(t, existing, tl)
}
