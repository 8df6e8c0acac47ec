package services

import (
	"context"
	"fmt"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockService owns the blocked-users set. Blocking is deliberately
// independent of the buddy graph: it neither removes an existing buddy
// relationship nor prevents future buddy requests.
type BlockService struct {
	users UserStore
}

// NewBlockService creates a new BlockService.
func NewBlockService(users UserStore) *BlockService {
	return &BlockService{users: users}
}

// Block adds the named user to the owner's blocked set. Blocking an
// already-blocked user is a successful no-op.
func (s *BlockService) Block(ctx context.Context, ownerID primitive.ObjectID, targetUsername string) error {
	target, err := s.users.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}

	if target.ID == ownerID {
		return fmt.Errorf("cannot block yourself: %w", errs.ErrInvalidArgument)
	}

	owner, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if containsID(owner.BlockedUsers, target.ID) {
		return nil
	}

	return s.users.BlockUser(ctx, ownerID, target.ID)
}

// Unblock removes the named user from the owner's blocked set. Unblocking
// a user who was never blocked is a successful no-op.
func (s *BlockService) Unblock(ctx context.Context, ownerID primitive.ObjectID, targetUsername string) error {
	target, err := s.users.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}

	owner, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if !containsID(owner.BlockedUsers, target.ID) {
		return nil
	}

	return s.users.UnblockUser(ctx, ownerID, target.ID)
}

// ListBlocked resolves the owner's blocked set to public identities.
func (s *BlockService) ListBlocked(ctx context.Context, ownerID primitive.ObjectID) ([]models.PublicUser, error) {
	owner, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	users, err := s.users.GetUsersByIDs(ctx, owner.BlockedUsers)
	if err != nil {
		return nil, err
	}

	blocked := make([]models.PublicUser, 0, len(users))
	for i := range users {
		blocked = append(blocked, users[i].Public())
	}

	return blocked, nil
}
