package controllers

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"campusshield/database"
	"campusshield/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	mu   sync.Mutex
	docs []models.Complaint
	err  error
}

func (m *memStore) index(ticket string) int {
	for i := range m.docs {
		if m.docs[i].TicketID == ticket || m.docs[i].LegacyTicketID == ticket {
			return i
		}
	}
	return -1
}

func (m *memStore) Insert(_ context.Context, c *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	c.ID = primitive.NewObjectID()
	m.docs = append(m.docs, *c)
	return nil
}

func (m *memStore) FindByTicket(_ context.Context, ticket string) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i := m.index(ticket)
	if i < 0 {
		return nil, db.ErrNotFound
	}
	c := m.docs[i]
	return &c, nil
}

func (m *memStore) List(_ context.Context) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := append([]models.Complaint(nil), m.docs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memStore) ListWithoutTimeline(_ context.Context) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Complaint
	for _, c := range m.docs {
		if len(c.Timeline) == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) SaveCase(_ context.Context, id primitive.ObjectID, ch models.CaseChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID != id {
			continue
		}
		d := &m.docs[i]
		d.Status = ch.Status
		d.AdminNotes = ch.AdminNotes
		d.AdminNotesHistory = append(d.AdminNotesHistory, ch.NotesAdded...)
		d.Timeline = append(d.Timeline, ch.Timeline...)
		at := ch.LastUpdated
		d.LastUpdated = &at
		return nil
	}
	return db.ErrNotFound
}

func (m *memStore) SetTimeline(_ context.Context, id primitive.ObjectID, timeline []models.TimelineEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			if len(m.docs[i].Timeline) == 0 {
				m.docs[i].Timeline = timeline
			}
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) NormalizeStatuses(context.Context) (int64, error) { return 0, nil }

type memUploader struct {
	objects map[string]string
}

func (u *memUploader) Upload(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if u.objects == nil {
		u.objects = map[string]string{}
	}
	u.objects[name] = string(b)
	return "https://files.example/" + name, nil
}

type memAdmins struct {
	admins map[string]*models.Admin
}

func (m *memAdmins) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	if a, ok := m.admins[strings.ToLower(email)]; ok {
		return a, nil
	}
	return nil, db.ErrNotFound
}

func (m *memAdmins) Create(_ context.Context, a *models.Admin) error {
	a.ID = primitive.NewObjectID()
	m.admins[a.Email] = a
	return nil
}

func (m *memAdmins) UpdatePassword(_ context.Context, email, hash string) error {
	a, ok := m.admins[strings.ToLower(email)]
	if !ok {
		return db.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}
