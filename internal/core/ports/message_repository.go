package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	// Create stores content verbatim under author and returns the store-assigned ID.
	// author is not validated against the users collection.
	Create(ctx context.Context, content string, author primitive.ObjectID) (primitive.ObjectID, error)
}
