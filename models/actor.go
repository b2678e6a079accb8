package models

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	UserID     string
	Role       string
	ProviderID string
}

func (a *Actor) IsSuperadmin() bool {
	return a != nil && a.Role == RoleSuperadmin
}

// IsAdmin is true for admins and superadmins.
func (a *Actor) IsAdmin() bool {
	return a != nil && (a.Role == RoleAdmin || a.Role == RoleSuperadmin)
}

// Manages reports whether the actor may act on behalf of providerID.
func (a *Actor) Manages(providerID string) bool {
	if a.IsSuperadmin() {
		return true
	}
	return a != nil && a.Role == RoleAdmin && a.ProviderID != "" && a.ProviderID == providerID
}
