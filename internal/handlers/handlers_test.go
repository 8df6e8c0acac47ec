package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/dkenzhe/netbuddy/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	os.Exit(m.Run())
}

// Every engine endpoint must reject an unauthenticated request before any
// validation or service logic runs; none of the handlers below have a
// usable service wired, so reaching one would panic.
func TestHandlersRequireAuthentication(t *testing.T) {
	buddy := NewBuddyHandler(nil)
	block := NewBlockHandler(nil)
	group := NewGroupHandler(nil)
	presence := NewPresenceHandler(nil)

	endpoints := map[string]http.HandlerFunc{
		"send request": buddy.SendRequestHandler,
		"pending":      buddy.PendingRequestsHandler,
		"respond":      buddy.RespondToRequestHandler,
		"list buddies": buddy.ListBuddiesHandler,
		"remove buddy": buddy.RemoveBuddyHandler,
		"block":        block.BlockHandler,
		"unblock":      block.UnblockHandler,
		"list blocked": block.ListBlockedHandler,
		"create group": group.CreateGroupHandler,
		"update group": group.UpdateGroupHandler,
		"delete group": group.DeleteGroupHandler,
		"list groups":  group.ListGroupsHandler,
		"ping":         presence.PingHandler,
	}

	for name, endpoint := range endpoints {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"bob"}`))
			rec := httptest.NewRecorder()
			endpoint(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	HealthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
