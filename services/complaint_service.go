package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"campusshield/logger"
	"campusshield/models"
	"campusshield/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ComplaintStore is the document store behind the service; db.ComplaintStore
// implements it against MongoDB.
type ComplaintStore interface {
	Insert(ctx context.Context, c *models.Complaint) error
	FindByTicket(ctx context.Context, ticket string) (*models.Complaint, error)
	List(ctx context.Context) ([]models.Complaint, error)
	ListWithoutTimeline(ctx context.Context) ([]models.Complaint, error)
	SaveCase(ctx context.Context, id primitive.ObjectID, ch models.CaseChange) error
	SetTimeline(ctx context.Context, id primitive.ObjectID, timeline []models.TimelineEntry) error
	NormalizeStatuses(ctx context.Context) (int64, error)
}

type Uploader interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// notifyTimeout bounds a new-complaint notification, which outlives the
// submit request.
const notifyTimeout = 30 * time.Second

type ComplaintService struct {
	store    ComplaintStore
	uploader Uploader
	notifier Notifier
	folder   string
	maxBytes int64
	now      func() time.Time
	pending  sync.WaitGroup
}

func NewComplaintService(store ComplaintStore, uploader Uploader, notifier Notifier, folder string, maxBytes int64) *ComplaintService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ComplaintService{
		store:    store,
		uploader: uploader,
		notifier: notifier,
		folder:   folder,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

type Attachment struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type SubmitInput struct {
	Category    string
	Description string
	Email       string
	Phone       string
	File        *Attachment
}

func (s *ComplaintService) validate(in SubmitInput) error {
	if !models.Category(in.Category).Valid() {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrEmptyDescription
	}
	if in.File != nil {
		if !storage.Allowed(in.File.Filename) {
			return ErrUnsupportedFile
		}
		if s.maxBytes > 0 && in.File.Size > s.maxBytes {
			return ErrFileTooLarge
		}
	}
	return nil
}

// Submit uploads the optional evidence, then stores a new pending complaint.
func (s *ComplaintService) Submit(ctx context.Context, in SubmitInput) (*models.Complaint, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	ticket, err := GenerateTicketID()
	if err != nil {
		return nil, err
	}

	var fileURL string
	if in.File != nil {
		if s.uploader == nil {
			return nil, fmt.Errorf("no upload storage configured")
		}
		name := storage.ObjectName(s.folder, in.File.Filename)
		fileURL, err = s.uploader.Upload(ctx, name, in.File.Content, in.File.Size, storage.ContentType(in.File.Filename))
		if err != nil {
			return nil, fmt.Errorf("upload evidence: %w", err)
		}
	}

	now := s.now()
	c := &models.Complaint{
		TicketID:     ticket,
		Category:     models.Category(in.Category),
		Description:  strings.TrimSpace(in.Description),
		ContactEmail: strings.TrimSpace(in.Email),
		ContactPhone: strings.TrimSpace(in.Phone),
		FileURL:      fileURL,
		Status:       models.StatusPending,
		Timestamp:    now,
		Timeline:     []models.TimelineEntry{models.CaseCreatedEntry(now)},
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("save complaint: %w", err)
	}
	logger.Log.Info("complaint submitted",
		zap.String("ticket_id", c.TicketID),
		zap.String("category", string(c.Category)),
		zap.Bool("attachment", c.HasAttachment()),
	)

	s.pending.Add(1)
	go s.notify(context.WithoutCancel(ctx), *c)
	return c, nil
}

func (s *ComplaintService) notify(ctx context.Context, c models.Complaint) {
	defer s.pending.Done()
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.NewComplaint(ctx, &c); err != nil {
		logger.Log.Warn("new complaint notification failed", zap.String("ticket_id", c.TicketID), zap.Error(err))
	}
}

// Wait blocks until notifications started by Submit have finished or ctx
// is done.
func (s *ComplaintService) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// PublicComplaint is what the anonymous tracking page may see: no contact
// details and no link to the evidence file.
type PublicComplaint struct {
	TicketID      string          `json:"ticketId"`
	Category      models.Category `json:"category"`
	CategoryName  string          `json:"categoryName"`
	Description   string          `json:"description"`
	DateSubmitted time.Time       `json:"dateSubmitted"`
	Status        models.Status   `json:"status"`
	StatusLabel   string          `json:"statusLabel"`
	AdminNotes    string          `json:"adminNotes,omitempty"`
	HasAttachment bool            `json:"hasAttachment"`
}

func NewPublicComplaint(c *models.Complaint) *PublicComplaint {
	return &PublicComplaint{
		TicketID:      c.Ticket(),
		Category:      c.Category,
		CategoryName:  c.Category.Label(),
		Description:   c.Description,
		DateSubmitted: c.Timestamp,
		Status:        c.Status.Normalize(),
		StatusLabel:   c.Status.Label(),
		AdminNotes:    c.AdminNotes,
		HasAttachment: c.HasAttachment(),
	}
}

func (s *ComplaintService) load(ctx context.Context, ticket string) (*models.Complaint, error) {
	ticket = strings.TrimSpace(ticket)
	if ticket == "" {
		return nil, ErrNotFound
	}
	return s.store.FindByTicket(ctx, ticket)
}

func (s *ComplaintService) find(ctx context.Context, ticket string) (*models.Complaint, error) {
	c, err := s.load(ctx, ticket)
	if err != nil {
		return nil, err
	}
	c.Normalize()
	return c, nil
}

func (s *ComplaintService) Track(ctx context.Context, ticket string) (*PublicComplaint, error) {
	c, err := s.find(ctx, ticket)
	if err != nil {
		return nil, err
	}
	return NewPublicComplaint(c), nil
}

type Dashboard struct {
	Complaints []models.Complaint `json:"complaints"`
	Counts     StatusCounts       `json:"counts"`
}

// Dashboard lists complaints matching f; counts cover the unfiltered set.
func (s *ComplaintService) Dashboard(ctx context.Context, f Filter) (*Dashboard, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Complaints: FilterComplaints(all, f),
		Counts:     CountByStatus(all),
	}, nil
}

func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		all[i].Normalize()
	}
	return all, nil
}

// CaseDetail loads a case for the admin view and persists the synthesized
// creation entry when the document has no timeline yet.
func (s *ComplaintService) CaseDetail(ctx context.Context, ticket string) (*models.Complaint, error) {
	c, err := s.find(ctx, ticket)
	if err != nil {
		return nil, err
	}

	timeline, synthesized := c.TimelineOrDefault(s.now())
	if synthesized {
		c.Timeline = timeline
		if err := s.store.SetTimeline(ctx, c.ID, timeline); err != nil {
			logger.Log.Warn("could not backfill timeline", zap.String("ticket_id", c.TicketID), zap.Error(err))
		}
	}
	return c, nil
}

type CaseUpdate struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

// UpdateCase applies an admin's status/notes change, appending timeline
// and notes-history entries only for fields that actually changed.
func (s *ComplaintService) UpdateCase(ctx context.Context, ticket string, upd CaseUpdate, adminID string) (*models.Complaint, error) {
	newStatus, ok := models.ParseStatus(upd.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	c, err := s.load(ctx, ticket)
	if err != nil {
		return nil, err
	}
	// Recorded as stored, legacy spelling included.
	previous := c.Status
	c.Normalize()

	now := s.now()
	timeline, synthesized := c.TimelineOrDefault(now)
	if synthesized {
		if err := s.store.SetTimeline(ctx, c.ID, timeline); err != nil {
			return nil, fmt.Errorf("backfill timeline: %w", err)
		}
	}

	change := models.CaseChange{
		Status:      newStatus,
		AdminNotes:  upd.AdminNotes,
		LastUpdated: now,
	}

	if !previous.Equal(newStatus) {
		change.Timeline = append(change.Timeline, models.TimelineEntry{
			Date:   now,
			Action: "Status changed to " + newStatus.Label(),
			Notes:  fmt.Sprintf("Case status updated from %s to %s", previous, newStatus),
			Type:   models.TimelineStatusChange,
		})
	}

	if strings.TrimSpace(upd.AdminNotes) != "" && upd.AdminNotes != c.AdminNotes {
		change.NotesAdded = append(change.NotesAdded, models.NoteEntry{
			Note:      upd.AdminNotes,
			Timestamp: now,
			AdminID:   adminID,
		})
		change.Timeline = append(change.Timeline, models.TimelineEntry{
			Date:   now,
			Action: "Admin notes updated",
			Notes:  upd.AdminNotes,
			Type:   models.TimelineAdminNote,
		})
	}

	if err := s.store.SaveCase(ctx, c.ID, change); err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}

	c.Status = change.Status
	c.AdminNotes = change.AdminNotes
	c.AdminNotesHistory = append(c.AdminNotesHistory, change.NotesAdded...)
	c.Timeline = append(timeline, change.Timeline...)
	c.LastUpdated = &now

	logger.Log.Info("case updated",
		zap.String("ticket_id", c.TicketID),
		zap.String("status", string(c.Status)),
		zap.String("admin", adminID),
	)
	return c, nil
}

// Backfill persists creation entries for cases without a timeline and
// rewrites legacy status spellings.
func (s *ComplaintService) Backfill(ctx context.Context) (int, int64, error) {
	missing, err := s.store.ListWithoutTimeline(ctx)
	if err != nil {
		return 0, 0, err
	}

	now := s.now()
	filled := 0
	for i := range missing {
		timeline, _ := missing[i].TimelineOrDefault(now)
		if err := s.store.SetTimeline(ctx, missing[i].ID, timeline); err != nil {
			return filled, 0, err
		}
		filled++
	}

	normalized, err := s.store.NormalizeStatuses(ctx)
	return filled, normalized, err
}
