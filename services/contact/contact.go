package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	contactRepo "servicehub/database/repository/contact"
	"servicehub/models"
	"servicehub/services/tasks"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactService interface {
	Submit(ctx context.Context, c models.Contact) (*models.Contact, error)
	List(ctx context.Context, status string) ([]models.Contact, error)
	SetStatus(ctx context.Context, id, status string) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}

type DefaultContactService struct {
	repo   contactRepo.ContactRepository
	events tasks.Enqueuer
	logger *zap.Logger
}

func NewDefaultContactService(repo contactRepo.ContactRepository, events tasks.Enqueuer, logger *zap.Logger) *DefaultContactService {
	return &DefaultContactService{repo: repo, events: events, logger: logger}
}

// Submit stores a contact-form message and queues its forwarding to support.
func (s *DefaultContactService) Submit(ctx context.Context, c models.Contact) (*models.Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		return nil, utils.BadRequest("name, email, subject and message are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return nil, utils.BadRequest("email is not a valid address")
	}

	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.Status = models.ContactNew
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}
	s.logger.Info("Contact message received", zap.String("id", c.ID))
	s.events.ContactReceived(ctx, c.ID)
	return &c, nil
}

func (s *DefaultContactService) List(ctx context.Context, status string) ([]models.Contact, error) {
	if status != "" && !models.ValidContactStatus(status) {
		return nil, utils.BadRequest("status must be new, read or resolved")
	}
	out, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return out, nil
}

func (s *DefaultContactService) SetStatus(ctx context.Context, id, status string) (*models.Contact, error) {
	if !models.ValidContactStatus(status) {
		return nil, utils.BadRequest("status must be new, read or resolved")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update contact message: %w", err)
	}
	return c, nil
}

func (s *DefaultContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	return nil
}
