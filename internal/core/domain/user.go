package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a chat participant stored in the users collection.
//
// ID is assigned by the store on insert and is nil until then. Username is
// expected to be unique; the users collection carries a unique index for it.
type User struct {
	ID          *primitive.ObjectID `json:"_id,omitempty"        bson:"_id,omitempty"`
	Username    string              `json:"username"             bson:"username"`
	Displayname string              `json:"displayname"          bson:"displayname"`
	CreatedAt   *time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
