package service

import (
	"context"
	"fmt"
	"time"

	"notestack-be/internal/entity"
	"notestack-be/internal/pkg/logger"
	"notestack-be/pkg/events"
	pktNats "notestack-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
}

type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
	now        func() time.Time
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
		now:        time.Now,
	}
}

// Start listens to the NATS event stream. Without a subscriber events only
// arrive through Handle.
func (s *NotificationService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return nil
	}
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", "notestack-notifications", s.Handle); err != nil {
		return err
	}
	s.logger.Info("NotificationService", "Listening to events.>", nil)
	return nil
}

// Handle turns a domain event into realtime notifications.
func (s *NotificationService) Handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	str := func(key string) string {
		v, _ := payload[key].(string)
		return v
	}

	switch event.EventType() {
	case events.NoteReceived:
		title := str("title")

		if receiver, err := uuid.Parse(str("receiver_id")); err == nil {
			s.send(receiver, entity.Notification{
				Type:    entity.NotificationNoteReceived,
				Title:   "Note received",
				Message: fmt.Sprintf("\"%s\" was added to %s", title, str("notebook_name")),
				Data:    payload,
			})
		}

		// sharer_id is only set once the source note was found under that
		// account; shared_by is whatever the scanned payload claimed.
		if sharer, err := uuid.Parse(str("sharer_id")); err == nil {
			s.send(sharer, entity.Notification{
				Type:    entity.NotificationNoteImported,
				Title:   "Your note was shared",
				Message: fmt.Sprintf("Someone added \"%s\" to their notes", title),
				Data:    map[string]interface{}{"noteId": str("source_note_id")},
			})
		}

	case events.NoteCreated, events.NoteDeleted, events.NotebookDeleted:
		owner, err := uuid.Parse(str("user_id"))
		if err != nil {
			s.logger.Warn("NotificationService", "Event without owner", map[string]interface{}{"type": event.EventType()})
			return nil
		}
		s.send(owner, entity.Notification{
			Type:    entity.NotificationSync,
			Title:   event.EventType(),
			Message: "Your notes changed on another device",
			Data:    payload,
		})
	}

	return nil
}

func (s *NotificationService) send(userID uuid.UUID, n entity.Notification) {
	if s.delivery == nil {
		return
	}
	n.CreatedAt = s.now()
	s.delivery.Send(userID, n)
}
