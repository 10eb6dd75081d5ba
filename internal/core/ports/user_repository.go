package ports

import (
	"context"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create assigns the numeric id and must surface unique-constraint violations
// on username/email as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	// UpdateRole sets role and approved together (the pair is one logical state).
	UpdateRole(ctx context.Context, id int64, role string, approved bool) error
	// SetApproved flips only the approved flag, leaving role untouched.
	SetApproved(ctx context.Context, id int64, approved bool) error
	List(ctx context.Context) ([]*domain.User, error)
}
