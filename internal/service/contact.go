package service

import (
	"context"
	"fmt"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"github.com/google/uuid"
)

type ContactService interface {
	Submit(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]*model.ContactMessage, error)
	MarkRead(ctx context.Context, messageID string) error
}

type contactServiceImpl struct {
	contactRepo repository.ContactRepository
}

func NewContactService(
	contactRepo repository.ContactRepository,
) ContactService {
	return &contactServiceImpl{
		contactRepo: contactRepo,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error) {
	if email == "" || message == "" {
		return nil, fmt.Errorf("email and message are required")
	}

	msg := &model.ContactMessage{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
		Status:  "unread",
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	return msg, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}

func (s *contactServiceImpl) MarkRead(ctx context.Context, messageID string) error {
	return s.contactRepo.MarkRead(ctx, messageID)
}
