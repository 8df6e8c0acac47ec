package services

import (
	"context"
	"testing"
	"time"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPingFixture() (*PingService, *fakeUserStore, *fakeGroupStore) {
	users := newFakeUserStore()
	groups := newFakeGroupStore()
	return NewPingService(users, groups), users, groups
}

func TestPingRefreshesHeartbeat(t *testing.T) {
	svc, users, _ := newPingFixture()
	now := time.Now()
	svc.now = func() time.Time { return now }

	alice := addUser(users, "alice")
	alice.IsManuallyLoggedOff = true

	_, err := svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)

	require.NotNil(t, alice.LastActiveAt)
	assert.Equal(t, now, *alice.LastActiveAt)
	assert.False(t, alice.IsManuallyLoggedOff)
}

func TestPingUnknownCaller(t *testing.T) {
	svc, _, _ := newPingFixture()

	_, err := svc.Ping(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPingUnionsBuddyListAndGroups(t *testing.T) {
	svc, users, groups := newPingFixture()
	now := time.Now()
	svc.now = func() time.Time { return now }

	alice := addUser(users, "alice")
	bob := addUser(users, "bob")
	carol := addUser(users, "carol")

	// Bob is a real buddy; Carol is referenced only by a group.
	alice.BuddyList = []primitive.ObjectID{bob.ID}
	_, err := groups.CreateGroup(context.Background(), &models.BuddyGroup{
		UserID:   alice.ID,
		Name:     "Chat Pals",
		BuddyIDs: []primitive.ObjectID{bob.ID, carol.ID},
	})
	require.NoError(t, err)

	snapshot, err := svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)

	require.Len(t, snapshot.Buddies, 2)
	ids := []primitive.ObjectID{snapshot.Buddies[0].ID, snapshot.Buddies[1].ID}
	assert.Contains(t, ids, bob.ID)
	assert.Contains(t, ids, carol.ID)

	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, "Chat Pals", snapshot.Groups[0].Name)
	assert.Equal(t, []primitive.ObjectID{bob.ID, carol.ID}, snapshot.Groups[0].BuddyIDs)
}

func TestPingGroupsIndependentOfBuddyList(t *testing.T) {
	svc, users, groups := newPingFixture()
	now := time.Now()
	svc.now = func() time.Time { return now }

	alice := addUser(users, "alice")
	carol := addUser(users, "carol")
	fresh := now.Add(-10 * time.Second)
	carol.LastActiveAt = &fresh

	// Empty buddy list, one populated group: the group's members must
	// still come back, with a presence classification.
	_, err := groups.CreateGroup(context.Background(), &models.BuddyGroup{
		UserID:   alice.ID,
		Name:     "Solo",
		BuddyIDs: []primitive.ObjectID{carol.ID},
	})
	require.NoError(t, err)

	snapshot, err := svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)

	require.Len(t, snapshot.Buddies, 1)
	assert.Equal(t, carol.ID, snapshot.Buddies[0].ID)
	assert.Equal(t, StatusOnline, snapshot.Buddies[0].Status)
}

func TestPingEmptyReturnsEmptyArrays(t *testing.T) {
	svc, users, _ := newPingFixture()
	alice := addUser(users, "alice")

	snapshot, err := svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)

	assert.NotNil(t, snapshot.Buddies)
	assert.Empty(t, snapshot.Buddies)
	assert.NotNil(t, snapshot.Groups)
	assert.Empty(t, snapshot.Groups)
}

func TestPingPresenceWindow(t *testing.T) {
	svc, users, _ := newPingFixture()

	alice := addUser(users, "alice")
	carol := addUser(users, "carol")
	alice.BuddyList = []primitive.ObjectID{carol.ID}

	base := time.Now()
	heartbeat := base
	carol.LastActiveAt = &heartbeat

	// Twenty seconds after Carol's heartbeat she is still online.
	svc.now = func() time.Time { return base.Add(20 * time.Second) }
	snapshot, err := svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Buddies, 1)
	assert.Equal(t, StatusOnline, snapshot.Buddies[0].Status)

	// At thirty-five seconds with no further heartbeat she is offline.
	carol.LastActiveAt = &heartbeat
	svc.now = func() time.Time { return base.Add(35 * time.Second) }
	snapshot, err = svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Buddies, 1)
	assert.Equal(t, StatusOffline, snapshot.Buddies[0].Status)
}

func TestPingSnapshotCarriesAwayFields(t *testing.T) {
	svc, users, _ := newPingFixture()
	now := time.Now()
	svc.now = func() time.Time { return now }

	alice := addUser(users, "alice")
	bob := addUser(users, "bob")
	bob.AwayStatus = "away"
	bob.AwayMessage = "bbl, dinner"
	alice.BuddyList = []primitive.ObjectID{bob.ID}

	snapshot, err := svc.Ping(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Buddies, 1)
	assert.Equal(t, "away", snapshot.Buddies[0].AwayStatus)
	assert.Equal(t, "bbl, dinner", snapshot.Buddies[0].AwayMessage)
	assert.Equal(t, "bob", snapshot.Buddies[0].ScreenName)
}
