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

// GroupHandler manages HTTP endpoints for buddy groups.
type GroupHandler struct {
	Service *services.GroupService
}

// NewGroupHandler initializes a new GroupHandler.
func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{Service: service}
}

// CreateGroupHandler creates an empty named group for the caller.
func (h *GroupHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Name  string `json:"name" validate:"required"`
		Order *int   `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Group name is required", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	group, err := h.Service.CreateGroup(r.Context(), userID, payload.Name, payload.Order)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to create buddy group")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"group": group})
}

// UpdateGroupHandler applies a partial update to one of the caller's groups.
func (h *GroupHandler) UpdateGroupHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groupID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Name     *string   `json:"name"`
		BuddyIDs *[]string `json:"buddyIds"`
		Order    *int      `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	update := services.GroupUpdate{Name: payload.Name, Order: payload.Order}
	if payload.BuddyIDs != nil {
		buddyIDs := make([]primitive.ObjectID, 0, len(*payload.BuddyIDs))
		for _, hex := range *payload.BuddyIDs {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				http.Error(w, "Invalid buddy ID", http.StatusBadRequest)
				return
			}
			buddyIDs = append(buddyIDs, id)
		}
		update.BuddyIDs = &buddyIDs
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	group, err := h.Service.UpdateGroup(r.Context(), userID, groupID, update)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to update buddy group")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"group": group})
}

// DeleteGroupHandler deletes one of the caller's groups.
func (h *GroupHandler) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groupID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeleteGroup(r.Context(), userID, groupID); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete buddy group")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}

// ListGroupsHandler returns the caller's groups ascending by order.
func (h *GroupHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	groups, err := h.Service.ListGroups(r.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list buddy groups")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}
