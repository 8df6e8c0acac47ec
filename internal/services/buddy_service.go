package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuddyService owns the buddy-request lifecycle: sending requests,
// resolving them, the mutual-request collision rule, and buddy-list
// membership.
type BuddyService struct {
	users    UserStore
	requests RequestStore
	tx       TxRunner
	now      func() time.Time
}

// NewBuddyService creates a new BuddyService.
func NewBuddyService(users UserStore, requests RequestStore, tx TxRunner) *BuddyService {
	return &BuddyService{
		users:    users,
		requests: requests,
		tx:       tx,
		now:      time.Now,
	}
}

// SendRequestResult reports the outcome of SendRequest: either a new
// pending request, or an immediate acceptance when the target had already
// proposed in the other direction.
type SendRequestResult struct {
	Accepted bool
	Request  *models.BuddyRequest
	Buddy    *models.PublicUser
}

// SendRequest proposes a friendship to the named user. When a pending
// request already exists in the reverse direction the two proposals are
// collapsed: the reverse request is accepted and both buddy lists are
// updated in one transaction.
func (s *BuddyService) SendRequest(ctx context.Context, requesterID primitive.ObjectID, targetUsername string) (*SendRequestResult, error) {
	target, err := s.users.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.ID == requesterID {
		return nil, fmt.Errorf("cannot send a buddy request to yourself: %w", errs.ErrInvalidArgument)
	}

	requester, err := s.users.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if containsID(requester.BuddyList, target.ID) {
		return nil, fmt.Errorf("%s is already a buddy: %w", target.Username, errs.ErrConflict)
	}

	existing, err := s.requests.FindPending(ctx, requesterID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("a request to %s is already pending: %w", target.Username, errs.ErrConflict)
	}

	// Mutual collision: the target already proposed in the other direction.
	// Accept their request instead of creating a second row.
	reverse, err := s.requests.FindPending(ctx, target.ID, requesterID)
	if err != nil {
		return nil, err
	}
	if reverse != nil {
		if err := s.establishBuddies(ctx, reverse.ID, requesterID, target.ID); err != nil {
			return nil, err
		}

		logger.Log.WithFields(map[string]interface{}{
			"requester": requesterID.Hex(),
			"target":    target.ID.Hex(),
			"request":   reverse.ID.Hex(),
		}).Info("Mutual buddy requests collapsed into acceptance")

		buddy := target.Public()
		return &SendRequestResult{Accepted: true, Buddy: &buddy}, nil
	}

	request, err := s.requests.CreateRequest(ctx, &models.BuddyRequest{
		RequesterID: requesterID,
		RecipientID: target.ID,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"requester": requesterID.Hex(),
		"target":    target.ID.Hex(),
		"request":   request.ID.Hex(),
	}).Info("Buddy request sent")

	return &SendRequestResult{Request: request}, nil
}

// RespondToRequest accepts or rejects a pending request addressed to the
// responder. Accepting unions both buddy lists atomically with the status
// transition; rejecting touches only the request row.
func (s *BuddyService) RespondToRequest(ctx context.Context, responderID, requestID primitive.ObjectID, accept bool) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RecipientID != responderID {
		return fmt.Errorf("request %s is not addressed to you: %w", requestID.Hex(), errs.ErrForbidden)
	}

	if request.Status != models.RequestPending {
		return fmt.Errorf("request %s is already %s: %w", requestID.Hex(), request.Status, errs.ErrInvalidState)
	}

	if !accept {
		return s.requests.MarkResolved(ctx, requestID, models.RequestRejected)
	}

	return s.establishBuddies(ctx, requestID, request.RequesterID, request.RecipientID)
}

// establishBuddies resolves a pending request as accepted and inserts each
// party into the other's buddy list. MarkResolved filters on the pending
// status, so a concurrent resolution aborts the transaction instead of
// applying the list updates twice.
func (s *BuddyService) establishBuddies(ctx context.Context, requestID, userA, userB primitive.ObjectID) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requests.MarkResolved(txCtx, requestID, models.RequestAccepted); err != nil {
			return err
		}
		if err := s.users.AddBuddy(txCtx, userA, userB); err != nil {
			return err
		}
		if err := s.users.AddBuddy(txCtx, userB, userA); err != nil {
			return err
		}
		return nil
	})
}

// RemoveBuddy dissolves the relationship from both sides. Removal is
// symmetric so neither side keeps a ghost entry for the other.
func (s *BuddyService) RemoveBuddy(ctx context.Context, ownerID primitive.ObjectID, targetUsername string) error {
	target, err := s.users.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	return s.users.RemoveBuddy(ctx, ownerID, target.ID)
}

// ListBuddies resolves the owner's buddy list with a presence label per
// entry.
func (s *BuddyService) ListBuddies(ctx context.Context, ownerID primitive.ObjectID) ([]models.BuddySummary, error) {
	owner, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	users, err := s.users.GetUsersByIDs(ctx, owner.BuddyList)
	if err != nil {
		return nil, err
	}

	now := s.now()
	buddies := make([]models.BuddySummary, 0, len(users))
	for i := range users {
		user := &users[i]
		buddies = append(buddies, models.BuddySummary{
			ID:       user.ID,
			Username: user.Username,
			Status:   PresenceLabel(user, now),
			LastSeen: user.LastActiveAt,
		})
	}

	return buddies, nil
}

// ListPendingRequests returns the unresolved requests addressed to the
// caller, joined with each requester's public identity.
func (s *BuddyService) ListPendingRequests(ctx context.Context, recipientID primitive.ObjectID) ([]models.PendingRequestView, error) {
	requests, err := s.requests.PendingForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	requesterIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		requesterIDs = append(requesterIDs, req.RequesterID)
	}

	requesters, err := s.users.GetUsersByIDs(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.User, len(requesters))
	for i := range requesters {
		byID[requesters[i].ID] = &requesters[i]
	}

	views := make([]models.PendingRequestView, 0, len(requests))
	for _, req := range requests {
		view := models.PendingRequestView{
			ID:          req.ID,
			RequesterID: req.RequesterID,
			CreatedAt:   req.CreatedAt,
		}
		if requester, ok := byID[req.RequesterID]; ok {
			view.RequesterUsername = requester.Username
			view.RequesterScreenName = requester.ScreenName
		}
		views = append(views, view)
	}

	return views, nil
}
