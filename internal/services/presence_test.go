package services

import (
	"testing"
	"time"

	"github.com/dkenzhe/netbuddy/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsOnline(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	heartbeat := func(age time.Duration) *time.Time {
		at := now.Add(-age)
		return &at
	}

	tests := []struct {
		name string
		user models.User
		want bool
	}{
		{
			name: "no heartbeat recorded",
			user: models.User{},
			want: false,
		},
		{
			name: "fresh heartbeat",
			user: models.User{LastActiveAt: heartbeat(10 * time.Second)},
			want: true,
		},
		{
			name: "heartbeat just inside the window",
			user: models.User{LastActiveAt: heartbeat(29 * time.Second)},
			want: true,
		},
		{
			name: "heartbeat exactly at the window",
			user: models.User{LastActiveAt: heartbeat(30 * time.Second)},
			want: false,
		},
		{
			name: "stale heartbeat",
			user: models.User{LastActiveAt: heartbeat(45 * time.Second)},
			want: false,
		},
		{
			name: "manually logged off despite fresh heartbeat",
			user: models.User{
				LastActiveAt:        heartbeat(1 * time.Second),
				IsManuallyLoggedOff: true,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnline(&tt.user, now))
		})
	}
}

func TestPresenceLabel(t *testing.T) {
	now := time.Now()
	online := models.User{LastActiveAt: &now}

	assert.Equal(t, StatusOnline, PresenceLabel(&online, now))
	assert.Equal(t, StatusOffline, PresenceLabel(&models.User{}, now))
}
