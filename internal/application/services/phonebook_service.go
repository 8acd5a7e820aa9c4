package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

// PhonebookService handles contact operations
type PhonebookService struct {
	repo      ports.ContactRepository
	validator *requestValidator
	logger    *logger.Logger
}

// NewPhonebookService creates a new phonebook service
func NewPhonebookService(repo ports.ContactRepository, log *logger.Logger) *PhonebookService {
	return &PhonebookService{
		repo:      repo,
		validator: newRequestValidator(),
		logger:    log.WithComponent("phonebook"),
	}
}

// ListContacts returns every stored contact
func (s *PhonebookService) ListContacts(ctx context.Context) ([]entities.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// AddContact validates and stores a new contact
func (s *PhonebookService) AddContact(ctx context.Context, req ports.AddContactRequest) (*entities.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Alias = strings.TrimSpace(req.Alias)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	contact := entities.Contact{Name: req.Name, Phone: req.Phone, Alias: req.Alias}
	if err := s.repo.Add(ctx, contact); err != nil {
		if errors.Is(err, entities.ErrContactExists) {
			return nil, err
		}
		s.logger.Errorw("Failed to add contact", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to add contact: %w", err)
	}

	s.logger.Infow("Contact added", "name", contact.Name)
	return &contact, nil
}

// DeleteContact removes a contact and returns its prior value
func (s *PhonebookService) DeleteContact(ctx context.Context, req ports.DeleteContactRequest) (*entities.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	removed, err := s.repo.Delete(ctx, req.Name)
	if err != nil {
		if errors.Is(err, entities.ErrContactNotFound) {
			return nil, err
		}
		s.logger.Errorw("Failed to delete contact", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}

	s.logger.Infow("Contact deleted", "name", removed.Name)
	return removed, nil
}
