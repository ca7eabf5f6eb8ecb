package services

import (
	"context"
	"io"
	"time"

	"campusshield/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockComplaintStore struct {
	mock.Mock
}

func (m *MockComplaintStore) Insert(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintStore) FindByTicket(ctx context.Context, ticket string) (*models.Complaint, error) {
	args := m.Called(ctx, ticket)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]models.Complaint)
	return cs, args.Error(1)
}

func (m *MockComplaintStore) ListWithoutTimeline(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]models.Complaint)
	return cs, args.Error(1)
}

func (m *MockComplaintStore) SaveCase(ctx context.Context, id primitive.ObjectID, ch models.CaseChange) error {
	args := m.Called(ctx, id, ch)
	return args.Error(0)
}

func (m *MockComplaintStore) SetTimeline(ctx context.Context, id primitive.ObjectID, timeline []models.TimelineEntry) error {
	args := m.Called(ctx, id, timeline)
	return args.Error(0)
}

func (m *MockComplaintStore) NormalizeStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, r, size, contentType)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NewComplaint(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockNotifier) Digest(ctx context.Context, counts StatusCounts) error {
	args := m.Called(ctx, counts)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 9, 12, 10, 30, 0, 0, time.UTC)

func newTestService(store ComplaintStore, uploader Uploader, notifier Notifier) *ComplaintService {
	s := NewComplaintService(store, uploader, notifier, "evidence", 10<<20)
	s.now = func() time.Time { return fixedNow }
	return s
}
