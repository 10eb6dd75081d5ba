package domain

import (
	"errors"
	"time"
)

const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleConflict       = errors.New("already creator or admin")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionNotFound    = errors.New("session not found")
)

// User models an account in the marketplace. Role transitions are limited to
// user → creator (self-service request) and the approved flag flipped by an
// admin; the admin role itself is only ever provisioned at startup.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Approved     bool      `json:"approved"`
	ReferralCode string    `json:"referral_code"`
	ReferredBy   *int64    `json:"referred_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanPublish reports whether the user may add products to the catalog.
// Both conditions are required: an unapproved creator and an approved
// non-creator are equally rejected.
func (u *User) CanPublish() bool {
	return u.Role == RoleCreator && u.Approved
}
