package db

import (
	"testing"
	"time"

	"campusshield/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTicketFilterMatchesBothFields(t *testing.T) {
	f := TicketFilter("CSHLD-0A1B2C")
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"ticketId": "CSHLD-0A1B2C"},
		{"ticketID": "CSHLD-0A1B2C"},
	}}, f)
}

func TestStatusVariantsFilter(t *testing.T) {
	f := StatusVariantsFilter(models.StatusPending)
	cond := f["status"].(bson.M)
	assert.Equal(t, "^pending$", cond["$regex"])
	assert.Equal(t, "i", cond["$options"])
	assert.Equal(t, "pending", cond["$ne"])

	f = StatusVariantsFilter(models.StatusInReview)
	cond = f["status"].(bson.M)
	assert.Equal(t, "^in[- _]review$", cond["$regex"])
	assert.Equal(t, "in-review", cond["$ne"])
}

func TestCaseUpdatePushesNewEntries(t *testing.T) {
	at := time.Date(2024, 9, 12, 10, 30, 0, 0, time.UTC)
	entry := models.TimelineEntry{Date: at, Action: "Admin notes updated", Notes: "Warden informed", Type: models.TimelineAdminNote}
	note := models.NoteEntry{Note: "Warden informed", Timestamp: at, AdminID: "dean@campus.edu"}

	u := CaseUpdate(models.CaseChange{
		Status:      models.StatusInReview,
		AdminNotes:  "Warden informed",
		LastUpdated: at,
		Timeline:    []models.TimelineEntry{entry},
		NotesAdded:  []models.NoteEntry{note},
	})

	set := u["$set"].(bson.M)
	assert.Equal(t, bson.M{"status": models.StatusInReview, "adminNotes": "Warden informed", "lastUpdated": at}, set)
	assert.NotContains(t, set, "timeline")
	assert.NotContains(t, set, "adminNotesHistory")

	assert.Equal(t, bson.M{
		"timeline":          bson.M{"$each": []models.TimelineEntry{entry}},
		"adminNotesHistory": bson.M{"$each": []models.NoteEntry{note}},
	}, u["$push"])
}

func TestCaseUpdateWithoutNewEntriesOnlySets(t *testing.T) {
	u := CaseUpdate(models.CaseChange{Status: models.StatusResolved})
	assert.NotContains(t, u, "$push")
	assert.Contains(t, u, "$set")
}

func TestMissingTimelineFilter(t *testing.T) {
	id := primitive.NewObjectID()
	f := MissingTimelineFilter(id)
	assert.Equal(t, id, f["_id"])
	assert.Equal(t, []bson.M{
		{"timeline": nil},
		{"timeline": bson.M{"$size": 0}},
	}, f["$or"])
}
