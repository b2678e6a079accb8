package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, utils.BadRequest("displayName cannot be empty")
		}
		u.DisplayName = name
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.PhotoURL != nil {
		u.PhotoURL = strings.TrimSpace(*req.PhotoURL)
	}
	if req.FCMToken != nil {
		u.FCMToken = *req.FCMToken
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (s *DefaultUserService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, utils.BadRequest("unknown role %q", role)
	}
	users, err := s.Repo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// ResolveUser finds a user by ID, or by email when userID is empty.
func (s *DefaultUserService) ResolveUser(ctx context.Context, userID, email string) (*models.User, error) {
	switch {
	case userID != "":
		return s.GetUserByID(ctx, userID)
	case email != "":
		u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			return nil, fmt.Errorf("failed to get user %s: %w", email, err)
		}
		return u, nil
	}
	return nil, utils.BadRequest("userId or email is required")
}

// SetRole changes a user's role. Admins are linked to providerID on both sides;
// any previous provider link is dropped.
func (s *DefaultUserService) SetRole(ctx context.Context, actorID, userID, role, providerID string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, utils.BadRequest("unknown role %q", role)
	}
	if actorID != "" && actorID == userID && role != models.RoleSuperadmin {
		return nil, utils.Forbidden("superadmins cannot demote themselves")
	}
	if role == models.RoleAdmin && providerID == "" {
		return nil, utils.BadRequest("providerId is required for the admin role")
	}

	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if role == models.RoleAdmin {
		p, err := s.Providers.GetByID(ctx, providerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load provider %s: %w", providerID, err)
		}
		if u.ProviderID != "" && u.ProviderID != providerID {
			s.unlinkFromProvider(ctx, u.ProviderID, u.ID)
		}
		if !p.HasAdmin(u.ID) {
			p.AdminUserIDs = append(p.AdminUserIDs, u.ID)
			p.UpdatedAt = time.Now().UTC()
			if err := s.Providers.Update(ctx, p); err != nil {
				return nil, fmt.Errorf("failed to link admin: %w", err)
			}
		}
		u.ProviderID = providerID
	} else {
		if u.ProviderID != "" {
			s.unlinkFromProvider(ctx, u.ProviderID, u.ID)
		}
		u.ProviderID = ""
	}

	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	s.logger.Info("User role changed", zap.String("userId", u.ID), zap.String("role", role), zap.String("providerId", u.ProviderID), zap.String("by", actorID))
	return u, nil
}

func (s *DefaultUserService) SetDisabled(ctx context.Context, actorID, userID string, disabled bool) (*models.User, error) {
	if actorID == userID && disabled {
		return nil, utils.Forbidden("superadmins cannot disable themselves")
	}
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Disabled = disabled
	u.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.logger.Info("User disabled flag changed", zap.String("userId", userID), zap.Bool("disabled", disabled), zap.String("by", actorID))
	return u, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return utils.Forbidden("superadmins cannot delete themselves")
	}
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.ProviderID != "" {
		s.unlinkFromProvider(ctx, u.ProviderID, u.ID)
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("User deleted", zap.String("userId", userID), zap.String("by", actorID))
	return nil
}

func (s *DefaultUserService) unlinkFromProvider(ctx context.Context, providerID, userID string) {
	p, err := s.Providers.GetByID(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("Failed to load provider for unlink", zap.String("providerId", providerID), zap.Error(err))
		return
	}
	kept := p.AdminUserIDs[:0]
	for _, id := range p.AdminUserIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	p.AdminUserIDs = kept
	p.UpdatedAt = time.Now().UTC()
	if err := s.Providers.Update(ctx, p); err != nil {
		s.logger.Warn("Failed to unlink admin", zap.String("providerId", providerID), zap.String("userId", userID), zap.Error(err))
	}
}
