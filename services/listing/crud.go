package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrWrongProvider is returned when an admin touches another provider's listing.
var ErrWrongProvider = utils.Forbidden("listing belongs to another provider")

func (s *DefaultListingService) ListListings(ctx context.Context, actor *models.Actor, category string, filter models.ListingFilter, all bool) ([]models.Listing, error) {
	filter.Category = category
	filter.ActiveOnly = true
	if all && actor.IsAdmin() {
		filter.ActiveOnly = false
		if !actor.IsSuperadmin() {
			filter.ProviderID = actor.ProviderID
		}
	}
	listings, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s listings: %w", category, err)
	}
	return listings, nil
}

// GetListing returns a listing of the given category. Inactive listings are only
// visible to the admins that manage them.
func (s *DefaultListingService) GetListing(ctx context.Context, actor *models.Actor, category, id string) (*models.Listing, error) {
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if l.Category != category || (!l.Active && !actor.Manages(l.ProviderID)) {
		return nil, fmt.Errorf("listing %s: %w", id, repository.ErrNotFound)
	}
	return l, nil
}

func (s *DefaultListingService) CreateListing(ctx context.Context, actor *models.Actor, category string, form Form) (*models.Listing, error) {
	if !models.ValidCategory(category) {
		return nil, utils.BadRequest("unknown category %q", category)
	}
	providerID, err := s.ownerFor(ctx, actor, category, form.Values.Get("providerId"))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &models.Listing{
		ID:         uuid.New().String(),
		Category:   category,
		ProviderID: providerID,
		Currency:   "USD",
		Active:     true,
		Images:     []models.Image{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := applyForm(l, form.Values); err != nil {
		return nil, err
	}
	if err := validateListing(l); err != nil {
		return nil, err
	}
	if err := validateUploads(form.Images, 0); err != nil {
		return nil, err
	}

	uploaded, err := s.uploadAll(ctx, form.Images, folderFor(category))
	if err != nil {
		return nil, err
	}
	l.Images = append(l.Images, uploaded...)

	if err := s.Repo.Create(ctx, l); err != nil {
		s.deleteImages(ctx, uploaded)
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	s.logger.Info("Listing created", zap.String("id", l.ID), zap.String("category", category), zap.String("providerId", providerID), zap.Int("images", len(l.Images)))
	return l, nil
}

// UpdateListing applies the form. When the form carries existingImages, images not
// named there are removed from the listing and from storage.
func (s *DefaultListingService) UpdateListing(ctx context.Context, actor *models.Actor, category, id string, form Form) (*models.Listing, error) {
	l, err := s.editable(ctx, actor, category, id)
	if err != nil {
		return nil, err
	}

	if err := applyForm(l, form.Values); err != nil {
		return nil, err
	}
	if err := validateListing(l); err != nil {
		return nil, err
	}

	kept, removed := l.Images, []models.Image(nil)
	if _, ok := form.Values["existingImages"]; ok {
		keep, err := ParseList(form.Values.Get("existingImages"))
		if err != nil {
			return nil, utils.BadRequest("existingImages must be a JSON array")
		}
		kept, removed = splitImages(l.Images, keep)
	}
	if err := validateUploads(form.Images, len(kept)); err != nil {
		return nil, err
	}

	uploaded, err := s.uploadAll(ctx, form.Images, folderFor(category))
	if err != nil {
		return nil, err
	}
	l.Images = append(append([]models.Image{}, kept...), uploaded...)
	l.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, l); err != nil {
		s.deleteImages(ctx, uploaded)
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	s.deleteImages(ctx, removed)
	s.logger.Info("Listing updated", zap.String("id", l.ID), zap.Int("added", len(uploaded)), zap.Int("removed", len(removed)))
	return l, nil
}

func (s *DefaultListingService) DeleteListing(ctx context.Context, actor *models.Actor, category, id string) error {
	l, err := s.editable(ctx, actor, category, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	s.deleteImages(ctx, l.Images)
	s.logger.Info("Listing deleted", zap.String("id", id), zap.String("by", actor.UserID))
	return nil
}

// DeleteProviderListings removes every listing of a provider with its images.
func (s *DefaultListingService) DeleteProviderListings(ctx context.Context, providerID string) (int, error) {
	n := 0
	for {
		listings, err := s.Repo.List(ctx, models.ListingFilter{ProviderID: providerID, Limit: 100})
		if err != nil {
			return n, fmt.Errorf("failed to list provider listings: %w", err)
		}
		if len(listings) == 0 {
			return n, nil
		}
		for _, l := range listings {
			if err := s.Repo.Delete(ctx, l.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return n, fmt.Errorf("failed to delete listing %s: %w", l.ID, err)
			}
			s.deleteImages(ctx, l.Images)
			n++
		}
	}
}

func (s *DefaultListingService) editable(ctx context.Context, actor *models.Actor, category, id string) (*models.Listing, error) {
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if l.Category != category {
		return nil, fmt.Errorf("listing %s: %w", id, repository.ErrNotFound)
	}
	if !actor.Manages(l.ProviderID) {
		return nil, ErrWrongProvider
	}
	return l, nil
}

// ownerFor picks the provider a new listing belongs to.
func (s *DefaultListingService) ownerFor(ctx context.Context, actor *models.Actor, category, requested string) (string, error) {
	providerID := requested
	switch {
	case actor.IsSuperadmin():
		if providerID == "" {
			return "", utils.BadRequest("providerId is required")
		}
	case actor.IsAdmin():
		if actor.ProviderID == "" {
			return "", utils.Forbidden("admin account is not linked to a provider")
		}
		if providerID != "" && providerID != actor.ProviderID {
			return "", ErrWrongProvider
		}
		providerID = actor.ProviderID
	default:
		return "", utils.Forbidden("admin role required")
	}

	p, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", utils.BadRequest("provider %s does not exist", providerID)
		}
		return "", fmt.Errorf("failed to load provider: %w", err)
	}
	if !p.Offers(category) {
		return "", utils.BadRequest("provider %s does not offer %s services", p.Name, category)
	}
	if p.Status != models.ProviderStatusActive {
		return "", utils.Forbidden("provider %s is suspended", p.Name)
	}
	return providerID, nil
}
