package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/email"
)

// MessageService interface'i: iletişim formu ve admin gelen kutusu.
type MessageService interface {
	// Send, public iletişim formunu backend'e iletir ve site sahibine
	// bildirim gönderir. Bildirim hatası mesajı başarısız yapmaz.
	Send(ctx context.Context, in *models.MessageInput) (*models.Message, error)
	// List, mesajları yeniden eskiye döner.
	List(ctx context.Context, auth models.AuthContext) ([]models.Message, error)
	// Open, mesajı döner ve okunmadıysa okundu işaretler.
	Open(ctx context.Context, auth models.AuthContext, id int64) (*models.Message, error)
	SetRead(ctx context.Context, auth models.AuthContext, id int64, read bool) (*models.Message, error)
	Delete(ctx context.Context, auth models.AuthContext, id int64) error
}

type messageService struct {
	backend  MessageBackend
	notifier email.Notifier
	log      *zap.Logger
}

// NewMessageService, constructor.
func NewMessageService(backend MessageBackend, notifier email.Notifier, log *zap.Logger) MessageService {
	return &messageService{
		backend:  backend,
		notifier: notifier,
		log:      log.Named("messages"),
	}
}

func (s *messageService) Send(ctx context.Context, in *models.MessageInput) (*models.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	msg, err := s.backend.SendMessage(ctx, *in)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyContact(ctx, *in); err != nil {
		s.log.Warn("contact notification failed", zap.Error(err))
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context, auth models.AuthContext) ([]models.Message, error) {
	msgs, err := s.backend.ListMessages(ctx, auth)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (s *messageService) Open(ctx context.Context, auth models.AuthContext, id int64) (*models.Message, error) {
	msgs, err := s.backend.ListMessages(ctx, auth)
	if err != nil {
		return nil, err
	}

	for i := range msgs {
		if msgs[i].ID != id {
			continue
		}
		if msgs[i].IsRead {
			return &msgs[i], nil
		}
		updated, err := s.SetRead(ctx, auth, id, true)
		if err != nil {
			// Okundu işareti başarısız olsa da mesaj gösterilir.
			s.log.Warn("failed to mark message read", zap.Int64("id", id), zap.Error(err))
			return &msgs[i], nil
		}
		return updated, nil
	}
	return nil, fmt.Errorf("%w: message %d", pkg.ErrNotFound, id)
}

func (s *messageService) SetRead(ctx context.Context, auth models.AuthContext, id int64, read bool) (*models.Message, error) {
	return s.backend.UpdateMessage(ctx, auth, id, models.MessageUpdate{IsRead: &read})
}

func (s *messageService) Delete(ctx context.Context, auth models.AuthContext, id int64) error {
	return s.backend.DeleteMessage(ctx, auth, id)
}
