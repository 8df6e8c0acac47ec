package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles database operations on the users collection.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert user")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logger.Log.WithField("userID", user.ID.Hex()).Info("User created")
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	filter := bson.M{"username": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(username) + "$",
		Options: "i",
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %q: %w", username, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %v", err)
	}
	return &user, nil
}

// GetUsersByIDs fetches user documents for a list of ObjectIDs.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by IDs: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, cursor.Err()
}

// UpdateProfile applies the given display fields to the user document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update profile: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), errs.ErrNotFound)
	}
	return nil
}

// AddBuddy inserts buddyID into the user's buddy list. $addToSet keeps
// the list duplicate-free even under concurrent accepts.
func (r *UserRepository) AddBuddy(ctx context.Context, userID, buddyID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"buddy_list": buddyID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add buddy: %v", err)
	}
	return nil
}

// RemoveBuddy pulls each user from the other's buddy list.
func (r *UserRepository) RemoveBuddy(ctx context.Context, userID, buddyID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"buddy_list": buddyID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove buddy from user %s: %v", userID.Hex(), err)
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": buddyID},
		bson.M{"$pull": bson.M{"buddy_list": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove buddy from user %s: %v", buddyID.Hex(), err)
	}

	return nil
}

// BlockUser appends targetID to the user's blocked set.
func (r *UserRepository) BlockUser(ctx context.Context, userID, targetID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"blocked_users": targetID}},
	)
	if err != nil {
		return fmt.Errorf("failed to block user: %v", err)
	}
	return nil
}

// UnblockUser removes targetID from the user's blocked set.
func (r *UserRepository) UnblockUser(ctx context.Context, userID, targetID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"blocked_users": targetID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unblock user: %v", err)
	}
	return nil
}

// Heartbeat stamps the user's last-active time, clears the manual logoff
// flag and returns the updated document in a single round trip.
func (r *UserRepository) Heartbeat(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.User, error) {
	update := bson.M{"$set": bson.M{
		"last_active_at":         at,
		"is_manually_logged_off": false,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record heartbeat: %v", err)
	}
	return &user, nil
}

// SetLoggedOff marks the user as manually logged off, which renders them
// offline regardless of heartbeat recency.
func (r *UserRepository) SetLoggedOff(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_manually_logged_off": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to set logged off: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), errs.ErrNotFound)
	}
	return nil
}
