package ports

import "context"

// SessionStore persists the mapping from opaque session ids to user ids.
// Sessions expire server-side; Get on an expired or deleted session returns
// domain.ErrSessionNotFound.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}
