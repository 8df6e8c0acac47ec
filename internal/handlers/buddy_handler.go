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

// BuddyHandler manages HTTP endpoints for the buddy-request lifecycle.
type BuddyHandler struct {
	Service *services.BuddyService
}

// NewBuddyHandler initializes a new BuddyHandler.
func NewBuddyHandler(service *services.BuddyService) *BuddyHandler {
	return &BuddyHandler{Service: service}
}

// SendRequestHandler sends a buddy request to a user by username.
func (h *BuddyHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
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

	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	result, err := h.Service.SendRequest(r.Context(), requesterID, payload.Username)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to send buddy request")
		writeServiceError(w, err)
		return
	}

	if result.Accepted {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Buddy request accepted",
			"buddy":   result.Buddy,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Buddy request sent",
		"requestId": result.Request.ID,
	})
}

// PendingRequestsHandler lists unresolved requests addressed to the caller.
func (h *BuddyHandler) PendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	requests, err := h.Service.ListPendingRequests(r.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list pending requests")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// RespondToRequestHandler accepts or rejects a pending request.
func (h *BuddyHandler) RespondToRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Action string `json:"action" validate:"required,oneof=accept reject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Action must be accept or reject", http.StatusBadRequest)
		return
	}

	responderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.RespondToRequest(r.Context(), responderID, requestID, payload.Action == "accept"); err != nil {
		logger.Log.WithError(err).Warn("Failed to respond to buddy request")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Buddy request " + payload.Action + "ed"})
}

// ListBuddiesHandler returns the caller's buddy list with presence.
func (h *BuddyHandler) ListBuddiesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	buddies, err := h.Service.ListBuddies(r.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list buddies")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"buddies": buddies})
}

// RemoveBuddyHandler removes the relationship with the named user.
func (h *BuddyHandler) RemoveBuddyHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	username := mux.Vars(r)["username"]
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.RemoveBuddy(r.Context(), userID, username); err != nil {
		logger.Log.WithError(err).Warn("Failed to remove buddy")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}
