package provider

import (
	"context"
	"fmt"

	"servicehub/models"
	"servicehub/utils"
)

// LinkAdmin makes a user (by ID or email) an admin of the provider.
func (s *DefaultProviderService) LinkAdmin(ctx context.Context, actor *models.Actor, providerID, userID, email string) (*models.User, error) {
	if !actor.IsSuperadmin() {
		return nil, utils.Forbidden("only superadmins can link admins")
	}
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	u, err := s.Users.ResolveUser(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	if u.Role == models.RoleSuperadmin {
		return nil, utils.Conflict("user %s is a superadmin", u.Email)
	}
	return s.Users.SetRole(ctx, actor.UserID, u.ID, models.RoleAdmin, providerID)
}

// UnlinkAdmin removes the admin link and demotes the user to a plain user.
func (s *DefaultProviderService) UnlinkAdmin(ctx context.Context, actor *models.Actor, providerID, userID string) error {
	if !actor.IsSuperadmin() {
		return utils.Forbidden("only superadmins can unlink admins")
	}
	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.ProviderID != providerID {
		return utils.BadRequest("user %s is not an admin of provider %s", userID, providerID)
	}
	if _, err := s.Users.SetRole(ctx, actor.UserID, userID, models.RoleUser, ""); err != nil {
		return fmt.Errorf("failed to unlink admin: %w", err)
	}
	return nil
}
