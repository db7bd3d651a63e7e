package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDisplayName is given to profiles created on first sign-in
const DefaultDisplayName = "Your Name"

// User is the profile of an authenticated account. ID is the identity provider subject.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	CreateOrGet(id uuid.UUID, email string) (*User, error)
	UpdateDisplayName(id uuid.UUID, name string) (*User, error)
	UpdatePhotoURL(id uuid.UUID, photoURL string) (*User, error)
	List() ([]*User, error)
}
