package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
)

// MessageRepository implements ports.MessageRepository on the messages collection.
type MessageRepository struct {
	col collection
}

func NewMessageRepository(conn *Connection) *MessageRepository {
	return &MessageRepository{col: mongoCollection{coll: conn.messages}}
}

// Create inserts a message with no ID and no created_at.
func (r *MessageRepository) Create(ctx context.Context, content string, author primitive.ObjectID) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, domain.Message{
		Author:  author,
		Content: content,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

// EnsureIndexes creates the author index on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author"),
	})
	if err != nil {
		return fmt.Errorf("messages indexes: %w", err)
	}
	return nil
}
