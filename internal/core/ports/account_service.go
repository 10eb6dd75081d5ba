package ports

import (
	"context"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

// SignUpInput carries all data needed to register a new account.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	// ReferralCode is optional; an unrecognised code is silently ignored.
	ReferralCode string
}

// UserSummary is the admin-facing projection of an account.
type UserSummary struct {
	ID       int64
	Username string
	Role     string
	Approved bool
}

// AccountService defines use-case operations for identity and authorization.
type AccountService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	// LogIn verifies credentials and returns the user together with a signed
	// bearer token for non-browser clients. Unknown username and wrong
	// password are indistinguishable to the caller.
	LogIn(ctx context.Context, username, password string) (*domain.User, string, error)
	// RequestCreator transitions role user → creator (pending approval).
	// Any other current role is a conflict.
	RequestCreator(ctx context.Context, userID int64) error
	// ApproveCreator sets approved=true on the target whatever its role.
	ApproveCreator(ctx context.Context, targetID int64) error
	ListUsers(ctx context.Context) ([]UserSummary, error)
}
