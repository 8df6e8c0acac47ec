package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupRepository handles database operations on buddy groups. Every
// lookup is scoped by owner, so a group owned by someone else is
// indistinguishable from one that does not exist.
type GroupRepository struct {
	collection *mongo.Collection
}

// NewGroupRepository creates a new instance of GroupRepository.
func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{
		collection: db.Collection("buddy_groups"),
	}
}

// CreateGroup inserts a new group for the owner.
func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.BuddyGroup) (*models.BuddyGroup, error) {
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt

	result, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to create buddy group: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	group.ID = insertedID

	return group, nil
}

// MaxOrder returns the highest order value among the owner's groups, or
// -1 when the owner has none.
func (r *GroupRepository) MaxOrder(ctx context.Context, ownerID primitive.ObjectID) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})

	var group models.BuddyGroup
	err := r.collection.FindOne(ctx, bson.M{"user_id": ownerID}, opts).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find max group order: %v", err)
	}
	return group.Order, nil
}

// UpdateGroup applies the given fields to an owner's group and returns the
// updated document.
func (r *GroupRepository) UpdateGroup(ctx context.Context, ownerID, groupID primitive.ObjectID, fields bson.M) (*models.BuddyGroup, error) {
	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var group models.BuddyGroup
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": groupID, "user_id": ownerID},
		bson.M{"$set": fields},
		opts,
	).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("group %s: %w", groupID.Hex(), errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update buddy group: %v", err)
	}
	return &group, nil
}

// DeleteGroup removes an owner's group.
func (r *GroupRepository) DeleteGroup(ctx context.Context, ownerID, groupID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": groupID, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete buddy group: %v", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("group %s: %w", groupID.Hex(), errs.ErrNotFound)
	}
	return nil
}

// ListGroups returns the owner's groups ordered ascending by order.
func (r *GroupRepository) ListGroups(ctx context.Context, ownerID primitive.ObjectID) ([]models.BuddyGroup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list buddy groups: %v", err)
	}
	defer cursor.Close(ctx)

	var groups []models.BuddyGroup
	for cursor.Next(ctx) {
		var group models.BuddyGroup
		if err := cursor.Decode(&group); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, cursor.Err()
}
