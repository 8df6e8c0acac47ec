package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupService owns named, ordered buddy groups. Group membership is a
// display concern: entries are never validated against the buddy list.
type GroupService struct {
	groups GroupStore
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups GroupStore) *GroupService {
	return &GroupService{groups: groups}
}

// CreateGroup creates an empty group for the owner. When no order is
// given the group is placed after the owner's current groups.
func (s *GroupService) CreateGroup(ctx context.Context, ownerID primitive.ObjectID, name string, order *int) (*models.BuddyGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name must not be empty: %w", errs.ErrInvalidArgument)
	}

	groupOrder := 0
	if order != nil {
		groupOrder = *order
	} else {
		maxOrder, err := s.groups.MaxOrder(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		groupOrder = maxOrder + 1
	}

	return s.groups.CreateGroup(ctx, &models.BuddyGroup{
		UserID:   ownerID,
		Name:     name,
		BuddyIDs: []primitive.ObjectID{},
		Order:    groupOrder,
	})
}

// GroupUpdate carries the optional fields of an update; nil fields are
// left unchanged. BuddyIDs replaces the membership wholesale.
type GroupUpdate struct {
	Name     *string
	BuddyIDs *[]primitive.ObjectID
	Order    *int
}

// UpdateGroup applies a partial update to one of the owner's groups.
func (s *GroupService) UpdateGroup(ctx context.Context, ownerID, groupID primitive.ObjectID, update GroupUpdate) (*models.BuddyGroup, error) {
	fields := bson.M{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("group name must not be empty: %w", errs.ErrInvalidArgument)
		}
		fields["name"] = name
	}
	if update.BuddyIDs != nil {
		fields["buddy_ids"] = *update.BuddyIDs
	}
	if update.Order != nil {
		fields["order"] = *update.Order
	}

	return s.groups.UpdateGroup(ctx, ownerID, groupID, fields)
}

// DeleteGroup removes one of the owner's groups.
func (s *GroupService) DeleteGroup(ctx context.Context, ownerID, groupID primitive.ObjectID) error {
	return s.groups.DeleteGroup(ctx, ownerID, groupID)
}

// ListGroups returns the owner's groups ascending by order.
func (s *GroupService) ListGroups(ctx context.Context, ownerID primitive.ObjectID) ([]models.BuddyGroup, error) {
	groups, err := s.groups.ListGroups(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.BuddyGroup{}
	}
	return groups, nil
}
