package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Lookups return (nil, nil) when no document matches. Store errors are
// returned as-is.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// FindByUsername matches the username exactly (no case folding, no prefix match).
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create ignores any ID and CreatedAt on u and returns the store-assigned ID.
	Create(ctx context.Context, u domain.User) (primitive.ObjectID, error)
	// Delete removes at most one user and reports how many documents were removed.
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
