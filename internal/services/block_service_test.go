package services

import (
	"context"
	"testing"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBlockIsIdempotent(t *testing.T) {
	users := newFakeUserStore()
	svc := NewBlockService(users)
	alice := addUser(users, "alice")
	bob := addUser(users, "bob")

	require.NoError(t, svc.Block(context.Background(), alice.ID, "bob"))
	require.NoError(t, svc.Block(context.Background(), alice.ID, "bob"))

	assert.Equal(t, []primitive.ObjectID{bob.ID}, alice.BlockedUsers)
}

func TestBlockSelfIsInvalid(t *testing.T) {
	users := newFakeUserStore()
	svc := NewBlockService(users)
	alice := addUser(users, "alice")

	err := svc.Block(context.Background(), alice.ID, "alice")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestBlockUnknownUser(t *testing.T) {
	users := newFakeUserStore()
	svc := NewBlockService(users)
	alice := addUser(users, "alice")

	err := svc.Block(context.Background(), alice.ID, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBlockDoesNotTouchBuddyList(t *testing.T) {
	users := newFakeUserStore()
	svc := NewBlockService(users)
	alice := addUser(users, "alice")
	bob := addUser(users, "bob")
	alice.BuddyList = []primitive.ObjectID{bob.ID}
	bob.BuddyList = []primitive.ObjectID{alice.ID}

	require.NoError(t, svc.Block(context.Background(), alice.ID, "bob"))

	// Blocking is independent of the buddy graph.
	assert.Equal(t, []primitive.ObjectID{bob.ID}, alice.BuddyList)
	assert.Equal(t, []primitive.ObjectID{alice.ID}, bob.BuddyList)
}

func TestUnblockIsIdempotent(t *testing.T) {
	users := newFakeUserStore()
	svc := NewBlockService(users)
	alice := addUser(users, "alice")
	addUser(users, "bob")

	// Unblocking a never-blocked user is a successful no-op.
	require.NoError(t, svc.Unblock(context.Background(), alice.ID, "bob"))

	require.NoError(t, svc.Block(context.Background(), alice.ID, "bob"))
	require.NoError(t, svc.Unblock(context.Background(), alice.ID, "bob"))
	require.NoError(t, svc.Unblock(context.Background(), alice.ID, "bob"))

	assert.Empty(t, alice.BlockedUsers)
}

func TestListBlocked(t *testing.T) {
	users := newFakeUserStore()
	svc := NewBlockService(users)
	alice := addUser(users, "alice")
	bob := addUser(users, "bob")

	require.NoError(t, svc.Block(context.Background(), alice.ID, "bob"))

	blocked, err := svc.ListBlocked(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, bob.ID, blocked[0].ID)
	assert.Equal(t, "bob", blocked[0].Username)
}
