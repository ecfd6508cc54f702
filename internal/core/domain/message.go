package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a single chat message stored in the messages collection.
// Author references a User ID but is not checked against the users collection.
type Message struct {
	ID        *primitive.ObjectID `json:"_id,omitempty"        bson:"_id,omitempty"`
	Author    primitive.ObjectID  `json:"author"               bson:"author"`
	Content   string              `json:"content"              bson:"content"`
	CreatedAt *time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
