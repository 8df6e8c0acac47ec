package services

import (
	"context"
	"time"

	"github.com/dkenzhe/netbuddy/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PingService is the presence aggregator behind the client's polling
// loop: it refreshes the caller's heartbeat and returns a consolidated
// snapshot of every buddy's presence plus the caller's groups.
type PingService struct {
	users  UserStore
	groups GroupStore
	now    func() time.Time
}

// NewPingService creates a new PingService.
func NewPingService(users UserStore, groups GroupStore) *PingService {
	return &PingService{
		users:  users,
		groups: groups,
		now:    time.Now,
	}
}

// PingResponse is the consolidated snapshot. Groups carry raw buddy ids
// so the client can cross-reference them against the buddies array.
type PingResponse struct {
	Buddies []models.BuddySnapshot `json:"buddies"`
	Groups  []models.BuddyGroup    `json:"groups"`
}

// Ping stamps the caller's heartbeat and assembles the snapshot. The
// buddy set is the union of the buddy list and every group's members, so
// a user referenced only by a group still gets a presence entry. Groups
// are loaded unconditionally: an empty buddy list must not hide them.
func (s *PingService) Ping(ctx context.Context, callerID primitive.ObjectID) (*PingResponse, error) {
	now := s.now()

	caller, err := s.users.Heartbeat(ctx, callerID, now)
	if err != nil {
		return nil, err
	}

	groups, err := s.groups.ListGroups(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.BuddyGroup{}
	}

	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(caller.BuddyList))
	for _, id := range caller.BuddyList {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, group := range groups {
		for _, id := range group.BuddyIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	buddies := make([]models.BuddySnapshot, 0, len(users))
	for i := range users {
		user := &users[i]
		buddies = append(buddies, models.BuddySnapshot{
			ID:           user.ID,
			Username:     user.Username,
			ScreenName:   user.ScreenName,
			Status:       PresenceLabel(user, now),
			AwayStatus:   user.AwayStatus,
			AwayMessage:  user.AwayMessage,
			LastActiveAt: user.LastActiveAt,
		})
	}

	return &PingResponse{Buddies: buddies, Groups: groups}, nil
}
