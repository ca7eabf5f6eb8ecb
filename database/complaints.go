package db

import (
	"context"
	"errors"
	"time"

	"campusshield/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ComplaintStore struct {
	coll *mongo.Collection
}

func NewComplaintStore(m *Mongo) *ComplaintStore {
	return &ComplaintStore{coll: m.Collection(ComplaintsCollection)}
}

// TicketFilter matches both the current and the legacy ticket field.
func TicketFilter(ticket string) bson.M {
	return bson.M{"$or": []bson.M{
		{"ticketId": ticket},
		{"ticketID": ticket},
	}}
}

func (s *ComplaintStore) Insert(ctx context.Context, c *models.Complaint) error {
	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (s *ComplaintStore) FindByTicket(ctx context.Context, ticket string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.coll.FindOne(ctx, TicketFilter(ticket)).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every complaint, newest first.
func (s *ComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	return s.find(ctx, bson.M{})
}

func (s *ComplaintStore) ListWithoutTimeline(ctx context.Context) ([]models.Complaint, error) {
	return s.find(ctx, bson.M{"$or": []bson.M{
		{"timeline": bson.M{"$exists": false}},
		{"timeline": bson.M{"$size": 0}},
		{"timeline": nil},
	}})
}

func (s *ComplaintStore) find(ctx context.Context, filter bson.M) ([]models.Complaint, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

// CaseUpdate builds the update for an admin edit. History entries are
// pushed, never rewritten.
func CaseUpdate(ch models.CaseChange) bson.M {
	update := bson.M{"$set": bson.M{
		"status":      ch.Status,
		"adminNotes":  ch.AdminNotes,
		"lastUpdated": ch.LastUpdated,
	}}
	push := bson.M{}
	if len(ch.Timeline) > 0 {
		push["timeline"] = bson.M{"$each": ch.Timeline}
	}
	if len(ch.NotesAdded) > 0 {
		push["adminNotesHistory"] = bson.M{"$each": ch.NotesAdded}
	}
	if len(push) > 0 {
		update["$push"] = push
	}
	return update
}

// SaveCase applies an admin edit to the case with the given ID.
func (s *ComplaintStore) SaveCase(ctx context.Context, id primitive.ObjectID, ch models.CaseChange) error {
	if ch.LastUpdated.IsZero() {
		ch.LastUpdated = time.Now()
	}
	res, err := s.coll.UpdateByID(ctx, id, CaseUpdate(ch))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MissingTimelineFilter matches the given case only while it has no timeline.
func MissingTimelineFilter(id primitive.ObjectID) bson.M {
	return bson.M{
		"_id": id,
		"$or": []bson.M{
			{"timeline": nil},
			{"timeline": bson.M{"$size": 0}},
		},
	}
}

// SetTimeline backfills a timeline. It is a no-op once the case has one.
func (s *ComplaintStore) SetTimeline(ctx context.Context, id primitive.ObjectID, timeline []models.TimelineEntry) error {
	_, err := s.coll.UpdateOne(ctx, MissingTimelineFilter(id), bson.M{"$set": bson.M{"timeline": timeline}})
	return err
}

// StatusVariantsFilter selects documents whose status spells the canonical
// value differently ("Pending", "In Review", ...).
func StatusVariantsFilter(status models.Status) bson.M {
	pattern := "^" + string(status) + "$"
	if status == models.StatusInReview {
		pattern = "^in[- _]review$"
	}
	return bson.M{"status": bson.M{
		"$regex":   pattern,
		"$options": "i",
		"$ne":      string(status),
	}}
}

// NormalizeStatuses rewrites legacy status spellings to the canonical form.
func (s *ComplaintStore) NormalizeStatuses(ctx context.Context) (int64, error) {
	var total int64
	for _, st := range models.Statuses {
		res, err := s.coll.UpdateMany(ctx, StatusVariantsFilter(st), bson.M{"$set": bson.M{"status": st}})
		if err != nil {
			return total, err
		}
		total += res.ModifiedCount
	}
	return total, nil
}
