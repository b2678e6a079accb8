package models

import "time"

// Roles.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User is a platform account keyed by its Firebase UID.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"displayName" json:"displayName,omitempty"`
	PhotoURL    string    `bson:"photoUrl" json:"photoUrl,omitempty"`
	Phone       string    `bson:"phone" json:"phone,omitempty"`
	Role        string    `bson:"role" json:"role"`
	ProviderID  string    `bson:"providerId,omitempty" json:"providerId,omitempty"`
	SignInWith  string    `bson:"signInWith,omitempty" json:"signInWith,omitempty"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"-"`
	Disabled    bool      `bson:"disabled" json:"disabled"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt time.Time `bson:"lastLoginAt" json:"lastLoginAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// ProfileUpdate holds the self-service fields a user may change.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName"`
	Phone       *string `json:"phone"`
	PhotoURL    *string `json:"photoUrl"`
	FCMToken    *string `json:"fcmToken"`
}
