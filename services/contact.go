package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"bar-website/models"
)

// ContactService stores messages from the public contact form.
type ContactService struct {
	store    MessageStore
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewContactService(store MessageStore, notifier Notifier, log *zap.Logger) *ContactService {
	return &ContactService{store: store, notifier: notifier, log: log, now: time.Now}
}

// Submit checks the required fields and stores a new message with status "new". The staff
// notification is best effort.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Message:   strings.TrimSpace(message),
		Timestamp: s.now().UTC(),
		Status:    models.MessageStatusNew,
	}
	if msg.Name == "" {
		return nil, invalid("name", "required")
	}
	if msg.Email == "" {
		return nil, invalid("email", "required")
	}
	if msg.Message == "" {
		return nil, invalid("message", "required")
	}

	msg, err := s.store.CreateMessage(ctx, msg)
	if err != nil {
		s.log.Error("save contact message", zap.Error(err))
		return nil, fmt.Errorf("save contact message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, msg); err != nil {
			s.log.Warn("notify contact message", zap.String("id", msg.ID), zap.Error(err))
		}
	}
	return &msg, nil
}
