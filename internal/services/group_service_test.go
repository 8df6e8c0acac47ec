package services

import (
	"context"
	"testing"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateGroupAssignsOrder(t *testing.T) {
	svc := NewGroupService(newFakeGroupStore())
	owner := primitive.NewObjectID()

	first, err := svc.CreateGroup(context.Background(), owner, "Work", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)
	assert.NotNil(t, first.BuddyIDs)
	assert.Empty(t, first.BuddyIDs)

	second, err := svc.CreateGroup(context.Background(), owner, "School", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	explicit := 10
	third, err := svc.CreateGroup(context.Background(), owner, "Family", &explicit)
	require.NoError(t, err)
	assert.Equal(t, 10, third.Order)

	fourth, err := svc.CreateGroup(context.Background(), owner, "Misc", nil)
	require.NoError(t, err)
	assert.Equal(t, 11, fourth.Order)
}

func TestCreateGroupRejectsEmptyName(t *testing.T) {
	svc := NewGroupService(newFakeGroupStore())
	owner := primitive.NewObjectID()

	_, err := svc.CreateGroup(context.Background(), owner, "   ", nil)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestCreateGroupTrimsName(t *testing.T) {
	svc := NewGroupService(newFakeGroupStore())
	owner := primitive.NewObjectID()

	group, err := svc.CreateGroup(context.Background(), owner, "  Pals  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Pals", group.Name)
}

func TestUpdateGroupPartialFields(t *testing.T) {
	store := newFakeGroupStore()
	svc := NewGroupService(store)
	owner := primitive.NewObjectID()

	group, err := svc.CreateGroup(context.Background(), owner, "Work", nil)
	require.NoError(t, err)

	buddy := primitive.NewObjectID()
	ids := []primitive.ObjectID{buddy}
	updated, err := svc.UpdateGroup(context.Background(), owner, group.ID, GroupUpdate{BuddyIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, "Work", updated.Name)
	assert.Equal(t, ids, updated.BuddyIDs)

	// Membership is replaced wholesale, not merged.
	other := []primitive.ObjectID{primitive.NewObjectID()}
	updated, err = svc.UpdateGroup(context.Background(), owner, group.ID, GroupUpdate{BuddyIDs: &other})
	require.NoError(t, err)
	assert.Equal(t, other, updated.BuddyIDs)

	name := "Office"
	updated, err = svc.UpdateGroup(context.Background(), owner, group.ID, GroupUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Office", updated.Name)
	assert.Equal(t, other, updated.BuddyIDs)
}

func TestGroupOwnershipIsolation(t *testing.T) {
	store := newFakeGroupStore()
	svc := NewGroupService(store)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	group, err := svc.CreateGroup(context.Background(), owner, "Private", nil)
	require.NoError(t, err)

	// A foreign group id behaves exactly like a missing one.
	name := "Hijacked"
	_, err = svc.UpdateGroup(context.Background(), stranger, group.ID, GroupUpdate{Name: &name})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = svc.DeleteGroup(context.Background(), stranger, group.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.UpdateGroup(context.Background(), stranger, primitive.NewObjectID(), GroupUpdate{Name: &name})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteGroup(t *testing.T) {
	store := newFakeGroupStore()
	svc := NewGroupService(store)
	owner := primitive.NewObjectID()

	group, err := svc.CreateGroup(context.Background(), owner, "Temp", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(context.Background(), owner, group.ID))

	err = svc.DeleteGroup(context.Background(), owner, group.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListGroupsOrdered(t *testing.T) {
	store := newFakeGroupStore()
	svc := NewGroupService(store)
	owner := primitive.NewObjectID()

	five, two, nine := 5, 2, 9
	_, err := svc.CreateGroup(context.Background(), owner, "Five", &five)
	require.NoError(t, err)
	_, err = svc.CreateGroup(context.Background(), owner, "Two", &two)
	require.NoError(t, err)
	_, err = svc.CreateGroup(context.Background(), owner, "Nine", &nine)
	require.NoError(t, err)

	groups, err := svc.ListGroups(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"Two", "Five", "Nine"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})
}

func TestListGroupsEmpty(t *testing.T) {
	svc := NewGroupService(newFakeGroupStore())

	groups, err := svc.ListGroups(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
