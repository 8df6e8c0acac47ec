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
)

// RequestRepository handles database operations on buddy requests.
type RequestRepository struct {
	collection *mongo.Collection
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{
		collection: db.Collection("buddy_requests"),
	}
}

// CreateRequest inserts a new pending request. The partial unique index on
// (requester_id, recipient_id, status=pending) turns a concurrent double
// send into a duplicate-key error, surfaced as a conflict.
func (r *RequestRepository) CreateRequest(ctx context.Context, req *models.BuddyRequest) (*models.BuddyRequest, error) {
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	result, err := r.collection.InsertOne(ctx, req)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("pending request already exists: %w", errs.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create buddy request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID fetches a single request.
func (r *RequestRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.BuddyRequest, error) {
	var request models.BuddyRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("request %s: %w", id.Hex(), errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find buddy request: %v", err)
	}
	return &request, nil
}

// FindPending returns the pending request for the ordered pair, or nil
// when none exists.
func (r *RequestRepository) FindPending(ctx context.Context, requesterID, recipientID primitive.ObjectID) (*models.BuddyRequest, error) {
	filter := bson.M{
		"requester_id": requesterID,
		"recipient_id": recipientID,
		"status":       models.RequestPending,
	}

	var request models.BuddyRequest
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending request: %v", err)
	}
	return &request, nil
}

// PendingForRecipient returns all unresolved requests addressed to the user.
func (r *RequestRepository) PendingForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.BuddyRequest, error) {
	filter := bson.M{"recipient_id": recipientID, "status": models.RequestPending}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.BuddyRequest
	for cursor.Next(ctx) {
		var req models.BuddyRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, cursor.Err()
}

// MarkResolved transitions a pending request to a terminal status. The
// filter includes the pending status so a request that was already
// resolved by a concurrent caller is never resolved twice.
func (r *RequestRepository) MarkResolved(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.RequestPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request %s is not pending: %w", id.Hex(), errs.ErrInvalidState)
	}
	return nil
}
