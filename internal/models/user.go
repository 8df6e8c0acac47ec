package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member account. The buddy list and blocked list are
// sets of user IDs; presence is derived from LastActiveAt and the manual
// logoff flag rather than stored directly.
type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username            string               `bson:"username" json:"username"`
	ScreenName          string               `bson:"screen_name" json:"screen_name"`
	Email               string               `bson:"email" json:"email"`
	HashedPassword      string               `bson:"hashed_password" json:"-"`
	Status              string               `bson:"status,omitempty" json:"status,omitempty"`
	AwayStatus          string               `bson:"away_status,omitempty" json:"away_status,omitempty"`
	AwayMessage         string               `bson:"away_message,omitempty" json:"away_message,omitempty"`
	BuddyList           []primitive.ObjectID `bson:"buddy_list,omitempty" json:"buddy_list,omitempty"`
	BlockedUsers        []primitive.ObjectID `bson:"blocked_users,omitempty" json:"blocked_users,omitempty"`
	LastActiveAt        *time.Time           `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	IsManuallyLoggedOff bool                 `bson:"is_manually_logged_off" json:"is_manually_logged_off"`
	CreatedAt           time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the identity subset safe to show other members.
type PublicUser struct {
	ID         primitive.ObjectID `json:"id"`
	Username   string             `json:"username"`
	ScreenName string             `json:"screenName"`
}

// Public returns the user's shareable identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		ScreenName: u.ScreenName,
	}
}

// BuddySnapshot is one entry of the ping response: identity plus the
// presence classification computed at request time.
type BuddySnapshot struct {
	ID           primitive.ObjectID `json:"id"`
	Username     string             `json:"username"`
	ScreenName   string             `json:"screenName"`
	Status       string             `json:"status"` // "online" or "offline"
	AwayStatus   string             `json:"awayStatus,omitempty"`
	AwayMessage  string             `json:"awayMessage,omitempty"`
	LastActiveAt *time.Time         `json:"lastActiveAt,omitempty"`
}

// BuddySummary is the lighter shape returned by the buddy-list endpoint.
type BuddySummary struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Status   string             `json:"status"`
	LastSeen *time.Time         `json:"lastSeen,omitempty"`
}
