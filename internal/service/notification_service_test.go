package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notestack-be/internal/entity"
	"notestack-be/internal/pkg/logger"
	"notestack-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	userID       uuid.UUID
	notification entity.Notification
}

type fakeDelivery struct {
	mu   sync.Mutex
	sent []sent
}

func (d *fakeDelivery) Send(userID uuid.UUID, n entity.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sent{userID: userID, notification: n})
}

func (d *fakeDelivery) all() []sent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]sent(nil), d.sent...)
}

func newTestNotificationService(d *fakeDelivery) *NotificationService {
	s := NewNotificationService(nil, d, logger.NewNopLogger())
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestNotificationNoteReceived(t *testing.T) {
	d := &fakeDelivery{}
	s := newTestNotificationService(d)
	receiver, sharer := uuid.New(), uuid.New()

	err := s.Handle(context.Background(), events.New(events.NoteReceived, map[string]interface{}{
		"receiver_id":    receiver.String(),
		"shared_by":      sharer.String(),
		"sharer_id":      sharer.String(),
		"source_note_id": "source-1",
		"note_id":        uuid.NewString(),
		"title":          "Groceries (Shared)",
		"notebook_name":  "NoteStack",
	}))
	require.NoError(t, err)

	got := d.all()
	require.Len(t, got, 2)

	assert.Equal(t, receiver, got[0].userID)
	assert.Equal(t, entity.NotificationNoteReceived, got[0].notification.Type)
	assert.Equal(t, `"Groceries (Shared)" was added to NoteStack`, got[0].notification.Message)
	assert.Equal(t, 2026, got[0].notification.CreatedAt.Year())

	assert.Equal(t, sharer, got[1].userID)
	assert.Equal(t, entity.NotificationNoteImported, got[1].notification.Type)
	assert.Equal(t, "source-1", got[1].notification.Data["noteId"])
}

func TestNotificationSkipsUnverifiedSharer(t *testing.T) {
	for name, sharerId := range map[string]string{"unverified": "", "unparseable": "not-a-user"} {
		t.Run(name, func(t *testing.T) {
			d := &fakeDelivery{}
			s := newTestNotificationService(d)
			receiver := uuid.New()

			require.NoError(t, s.Handle(context.Background(), events.New(events.NoteReceived, map[string]interface{}{
				"receiver_id": receiver.String(),
				"shared_by":   uuid.NewString(),
				"sharer_id":   sharerId,
				"title":       "x",
			})))

			got := d.all()
			require.Len(t, got, 1)
			assert.Equal(t, receiver, got[0].userID)
		})
	}
}

func TestNotificationSyncEvents(t *testing.T) {
	for _, eventType := range []string{events.NoteCreated, events.NoteDeleted, events.NotebookDeleted} {
		t.Run(eventType, func(t *testing.T) {
			d := &fakeDelivery{}
			s := newTestNotificationService(d)
			owner := uuid.New()

			require.NoError(t, s.Handle(context.Background(), events.New(eventType, map[string]interface{}{
				"user_id": owner.String(),
			})))

			got := d.all()
			require.Len(t, got, 1)
			assert.Equal(t, owner, got[0].userID)
			assert.Equal(t, entity.NotificationSync, got[0].notification.Type)
			assert.Equal(t, eventType, got[0].notification.Title)
		})
	}
}

func TestNotificationSkipsOtherEvents(t *testing.T) {
	d := &fakeDelivery{}
	s := newTestNotificationService(d)

	require.NoError(t, s.Handle(context.Background(), events.New(events.UserRegistered, map[string]interface{}{
		"user_id": uuid.NewString(),
	})))
	require.NoError(t, s.Handle(context.Background(), events.New(events.NoteCreated, nil)))

	assert.Empty(t, d.all())
}

func TestNotificationStartWithoutSubscriber(t *testing.T) {
	s := newTestNotificationService(&fakeDelivery{})
	assert.NoError(t, s.Start(context.Background()))
}
