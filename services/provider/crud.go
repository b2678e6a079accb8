package provider

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"servicehub/models"
	"servicehub/services/storage"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const logoFolder = "servicehub/providers"

func (s *DefaultProviderService) ListProviders(ctx context.Context, actor *models.Actor) ([]models.Provider, error) {
	providers, err := s.Repo.List(ctx, !actor.IsSuperadmin())
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}

func (s *DefaultProviderService) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return p, nil
}

func (s *DefaultProviderService) CreateProvider(ctx context.Context, actor *models.Actor, form Form) (*models.Provider, error) {
	if !actor.IsSuperadmin() {
		return nil, utils.Forbidden("only superadmins can create providers")
	}
	now := time.Now().UTC()
	p := &models.Provider{
		ID:           uuid.New().String(),
		Status:       models.ProviderStatusActive,
		AdminUserIDs: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyForm(p, form.Values, true)
	if err := validateProvider(p); err != nil {
		return nil, err
	}

	if form.Logo != nil {
		if err := storage.ValidateImage(*form.Logo); err != nil {
			return nil, err
		}
		logo, err := storage.Store(ctx, s.Storage, *form.Logo, logoFolder)
		if err != nil {
			return nil, err
		}
		p.Logo = &logo
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		s.dropLogo(ctx, p.Logo)
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	s.logger.Info("Provider created", zap.String("id", p.ID), zap.String("type", p.Type))
	return p, nil
}

// UpdateProvider is open to superadmins and to the provider's own admins. Only
// superadmins may change type or status.
func (s *DefaultProviderService) UpdateProvider(ctx context.Context, actor *models.Actor, id string, form Form) (*models.Provider, error) {
	if !actor.Manages(id) {
		return nil, utils.Forbidden("not an admin of this provider")
	}
	p, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	applyForm(p, form.Values, actor.IsSuperadmin())
	if err := validateProvider(p); err != nil {
		return nil, err
	}

	var previous *models.Image
	if form.Logo != nil {
		if err := storage.ValidateImage(*form.Logo); err != nil {
			return nil, err
		}
		logo, err := storage.Store(ctx, s.Storage, *form.Logo, logoFolder)
		if err != nil {
			return nil, err
		}
		previous, p.Logo = p.Logo, &logo
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, p); err != nil {
		if form.Logo != nil {
			s.dropLogo(ctx, p.Logo)
		}
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	s.dropLogo(ctx, previous)
	return p, nil
}

// DeleteProvider removes the provider, its listings and their images, and demotes its admins.
func (s *DefaultProviderService) DeleteProvider(ctx context.Context, actor *models.Actor, id string) error {
	if !actor.IsSuperadmin() {
		return utils.Forbidden("only superadmins can delete providers")
	}
	p, err := s.GetProvider(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.Listings.DeleteProviderListings(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete provider listings: %w", err)
	}
	for _, adminID := range p.AdminUserIDs {
		if _, err := s.Users.SetRole(ctx, actor.UserID, adminID, models.RoleUser, ""); err != nil {
			s.logger.Warn("Failed to demote provider admin", zap.String("userId", adminID), zap.Error(err))
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}
	s.dropLogo(ctx, p.Logo)
	s.logger.Info("Provider deleted", zap.String("id", id), zap.Int("listings", removed), zap.Int("admins", len(p.AdminUserIDs)))
	return nil
}

func (s *DefaultProviderService) dropLogo(ctx context.Context, logo *models.Image) {
	if logo == nil {
		return
	}
	if err := s.Storage.DeleteImage(ctx, logo.PublicID); err != nil {
		s.logger.Warn("Failed to delete logo", zap.String("publicId", logo.PublicID), zap.Error(err))
	}
}

func applyForm(p *models.Provider, values map[string][]string, privileged bool) {
	set := func(key string, dst *string) {
		if v, ok := values[key]; ok && len(v) > 0 {
			*dst = strings.TrimSpace(v[0])
		}
	}
	set("name", &p.Name)
	set("email", &p.Email)
	set("phone", &p.Phone)
	set("address", &p.Address)
	set("description", &p.Description)
	if privileged {
		set("type", &p.Type)
		set("status", &p.Status)
	}
	p.Email = strings.ToLower(p.Email)
}

func validateProvider(p *models.Provider) error {
	if p.Name == "" {
		return utils.BadRequest("name is required")
	}
	if !models.ValidProviderType(p.Type) {
		return utils.BadRequest("type must be one of cleaning, hotel, cab or multi")
	}
	if p.Status != models.ProviderStatusActive && p.Status != models.ProviderStatusSuspended {
		return utils.BadRequest("status must be active or suspended")
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return utils.BadRequest("email is not a valid address")
		}
	}
	return nil
}
