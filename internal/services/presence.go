package services

import (
	"time"

	"github.com/dkenzhe/netbuddy/internal/models"
)

// OnlineWindow is how long a heartbeat keeps a user online.
const OnlineWindow = 30 * time.Second

// Presence labels reported to clients.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// IsOnline classifies a user's presence at the given instant. A user is
// online iff they have not manually logged off, have a recorded heartbeat,
// and that heartbeat is strictly less than OnlineWindow old.
func IsOnline(user *models.User, now time.Time) bool {
	if user.IsManuallyLoggedOff {
		return false
	}
	if user.LastActiveAt == nil {
		return false
	}
	return now.Sub(*user.LastActiveAt) < OnlineWindow
}

// PresenceLabel returns the client-facing status string for a user.
func PresenceLabel(user *models.User, now time.Time) string {
	if IsOnline(user, now) {
		return StatusOnline
	}
	return StatusOffline
}
