package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dkenzhe/netbuddy/internal/config"
	"github.com/dkenzhe/netbuddy/internal/services"
	jwtutil "github.com/dkenzhe/netbuddy/pkg/jwt"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"github.com/dkenzhe/netbuddy/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests related to accounts and profiles.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterHandler handles account creation.
func (h *UserHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username   string `json:"username" validate:"required,min=2,max=32"`
		ScreenName string `json:"screenName"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required,min=6"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Service.Register(r.Context(), payload.Username, payload.ScreenName, payload.Email, payload.Password)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to register user")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user.Public()})
}

// LoginHandler authenticates a user and issues a token.
func (h *UserHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(credentials); err != nil {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Service.Authenticate(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		logger.Log.WithField("username", credentials.Username).Warn("Authentication failed")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Username, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to generate token")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// LogoutHandler marks the caller as manually signed off.
func (h *UserHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Logoff(r.Context(), userID); err != nil {
		logger.Log.WithError(err).Warn("Failed to log off user")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed off"})
}

// MeHandler returns the caller's own profile.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	user, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler updates the caller's display fields.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ScreenName  *string `json:"screenName"`
		Status      *string `json:"status"`
		AwayStatus  *string `json:"awayStatus"`
		AwayMessage *string `json:"awayMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	user, err := h.Service.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		ScreenName:  payload.ScreenName,
		Status:      payload.Status,
		AwayStatus:  payload.AwayStatus,
		AwayMessage: payload.AwayMessage,
	})
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to update profile")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
