package handlers

import (
	"net/http"

	"github.com/dkenzhe/netbuddy/internal/services"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"github.com/dkenzhe/netbuddy/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresenceHandler exposes the polling endpoint clients hit to stay online
// and refresh their buddy list view.
type PresenceHandler struct {
	Service *services.PingService
}

// NewPresenceHandler initializes a new PresenceHandler.
func NewPresenceHandler(service *services.PingService) *PresenceHandler {
	return &PresenceHandler{Service: service}
}

// PingHandler refreshes the caller's heartbeat and returns the presence
// snapshot of every buddy plus the caller's groups.
func (h *PresenceHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	callerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	snapshot, err := h.Service.Ping(r.Context(), callerID)
	if err != nil {
		logger.Log.WithError(err).Warn("Ping failed")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
