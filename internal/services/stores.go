package services

import (
	"context"
	"time"

	"github.com/dkenzhe/netbuddy/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the slice of the users collection the services depend on.
// Implemented by repository.UserRepository.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddBuddy(ctx context.Context, userID, buddyID primitive.ObjectID) error
	RemoveBuddy(ctx context.Context, userID, buddyID primitive.ObjectID) error
	BlockUser(ctx context.Context, userID, targetID primitive.ObjectID) error
	UnblockUser(ctx context.Context, userID, targetID primitive.ObjectID) error
	Heartbeat(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.User, error)
	SetLoggedOff(ctx context.Context, id primitive.ObjectID) error
}

// RequestStore is the request-lifecycle surface of the buddy_requests
// collection. Implemented by repository.RequestRepository.
type RequestStore interface {
	CreateRequest(ctx context.Context, req *models.BuddyRequest) (*models.BuddyRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.BuddyRequest, error)
	FindPending(ctx context.Context, requesterID, recipientID primitive.ObjectID) (*models.BuddyRequest, error)
	PendingForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.BuddyRequest, error)
	MarkResolved(ctx context.Context, id primitive.ObjectID, status string) error
}

// GroupStore is the surface of the buddy_groups collection. Implemented
// by repository.GroupRepository.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.BuddyGroup) (*models.BuddyGroup, error)
	MaxOrder(ctx context.Context, ownerID primitive.ObjectID) (int, error)
	UpdateGroup(ctx context.Context, ownerID, groupID primitive.ObjectID, fields bson.M) (*models.BuddyGroup, error)
	DeleteGroup(ctx context.Context, ownerID, groupID primitive.ObjectID) error
	ListGroups(ctx context.Context, ownerID primitive.ObjectID) ([]models.BuddyGroup, error)
}

// TxRunner executes a function atomically. Accepting a request and
// updating both users' buddy lists go through it so a crash mid-way never
// leaves a one-sided friendship.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
