package models

import "time"

// Contact message statuses.
const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactResolved = "resolved"
)

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" binding:"required"`
	Email     string    `bson:"email" json:"email" binding:"required,email"`
	Phone     string    `bson:"phone" json:"phone,omitempty"`
	Subject   string    `bson:"subject" json:"subject" binding:"required"`
	Message   string    `bson:"message" json:"message" binding:"required"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func ValidContactStatus(s string) bool {
	return s == ContactNew || s == ContactRead || s == ContactResolved
}
