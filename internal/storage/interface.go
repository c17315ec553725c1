package storage

import (
	"context"

	"github.com/playerbase/playerbase/internal/model"
)

// Storage defines the interface for account persistence.
//
// SaveUser is an upsert; callers use it for both creation and update. The
// username and federated-id lookups are index-backed and must stay consistent
// with SaveUser/DeleteUser as part of the same logical operation. Absence is
// reported as model.ErrUserNotFound, distinct from backend failures.
type Storage interface {
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error
	UserExists(ctx context.Context, id model.UserID) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByFederatedID(ctx context.Context, federatedID string) (*model.User, error)
}
