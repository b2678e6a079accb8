package contactRepo

import (
	"context"

	"servicehub/models"
)

// ContactRepository stores contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	// List returns messages newest first; empty status matches all.
	List(ctx context.Context, status string) ([]models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id string) error
}
