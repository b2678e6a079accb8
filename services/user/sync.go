package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/auth"
	"servicehub/utils"

	"go.uber.org/zap"
)

// ErrUserDisabled is returned for accounts a superadmin switched off.
var ErrUserDisabled = utils.Forbidden("account is disabled")

// SyncUser creates or refreshes the user record behind a verified identity.
func (s *DefaultUserService) SyncUser(ctx context.Context, id *auth.Identity) (*models.User, error) {
	if id == nil || id.UID == "" {
		return nil, utils.BadRequest("identity without uid")
	}
	email := strings.ToLower(strings.TrimSpace(id.Email))
	now := time.Now().UTC()

	existing, err := s.Repo.GetByID(ctx, id.UID)
	if errors.Is(err, repository.ErrNotFound) {
		u := &models.User{
			ID:          id.UID,
			Email:       email,
			DisplayName: id.Name,
			PhotoURL:    id.Picture,
			SignInWith:  id.SignInProvider,
			Role:        models.RoleUser,
			CreatedAt:   now,
			UpdatedAt:   now,
			LastLoginAt: now,
		}
		if s.superadmins[email] {
			u.Role = models.RoleSuperadmin
		}
		if err := s.Repo.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, utils.Conflict("email %s is already registered to another account", email)
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("User registered", zap.String("userId", u.ID), zap.String("role", u.Role))
		return u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if existing.Disabled {
		return nil, ErrUserDisabled
	}
	if email != "" {
		existing.Email = email
	}
	if existing.DisplayName == "" {
		existing.DisplayName = id.Name
	}
	if existing.PhotoURL == "" {
		existing.PhotoURL = id.Picture
	}
	if id.SignInProvider != "" {
		existing.SignInWith = id.SignInProvider
	}
	if s.superadmins[existing.Email] && existing.Role != models.RoleSuperadmin {
		s.logger.Info("Promoting listed superadmin", zap.String("userId", existing.ID))
		if existing.ProviderID != "" {
			s.unlinkFromProvider(ctx, existing.ProviderID, existing.ID)
		}
		existing.Role = models.RoleSuperadmin
		existing.ProviderID = ""
	}
	existing.LastLoginAt = now
	existing.UpdatedAt = now

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return existing, nil
}
