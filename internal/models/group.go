package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuddyGroup is a named, ordered collection of buddy references owned by
// a single user. BuddyIDs is display data only: entries are not required
// to be accepted buddies, and duplicates are not rejected.
type BuddyGroup struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"-"`
	Name      string               `bson:"name" json:"name"`
	BuddyIDs  []primitive.ObjectID `bson:"buddy_ids" json:"buddyIds"`
	Order     int                  `bson:"order" json:"order"`
	CreatedAt time.Time            `bson:"created_at" json:"-"`
	UpdatedAt time.Time            `bson:"updated_at" json:"-"`
}
