package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dkenzhe/netbuddy/internal/services"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"github.com/dkenzhe/netbuddy/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockHandler manages HTTP endpoints for the blocked-users list.
type BlockHandler struct {
	Service *services.BlockService
}

// NewBlockHandler initializes a new BlockHandler.
func NewBlockHandler(service *services.BlockService) *BlockHandler {
	return &BlockHandler{Service: service}
}

// BlockHandler adds the named user to the caller's blocked list.
func (h *BlockHandler) BlockHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Username string `json:"username" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Block(r.Context(), userID, payload.Username); err != nil {
		logger.Log.WithError(err).Warn("Failed to block user")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}

// UnblockHandler removes the named user from the caller's blocked list.
func (h *BlockHandler) UnblockHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	username := mux.Vars(r)["username"]
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Unblock(r.Context(), userID, username); err != nil {
		logger.Log.WithError(err).Warn("Failed to unblock user")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}

// ListBlockedHandler returns the caller's blocked users.
func (h *BlockHandler) ListBlockedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	blocked, err := h.Service.ListBlocked(r.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list blocked users")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"blockedUsers": blocked})
}
