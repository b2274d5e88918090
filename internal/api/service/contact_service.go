package service

import (
	"context"
	"errors"
	"strings"

	"golang-asset-analytics/internal/api/dto"
	"golang-asset-analytics/internal/api/repository"
	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/pkg/logger"
)

// ErrInvalidContact reports a contact submission missing a required field.
var ErrInvalidContact = errors.New("name, email and message are required")

// ContactService stores contact form submissions.
type ContactService interface {
	SubmitMessage(ctx context.Context, req *dto.ContactRequest) error
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactRepository, logger *logger.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

type contactService struct {
	contactRepo repository.ContactRepository
	logger      *logger.Logger
}

// SubmitMessage validates and stores one submission.
func (s *contactService) SubmitMessage(ctx context.Context, req *dto.ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return ErrInvalidContact
	}

	contact := &entity.ContactMessage{
		Name:    name,
		Email:   email,
		Topic:   strings.TrimSpace(req.Topic),
		Message: message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		s.logger.Error("Failed to store contact message", logger.ErrorField(err))
		return err
	}

	s.logger.Info("Contact message stored", logger.Field("contact_id", contact.ID))
	return nil
}
