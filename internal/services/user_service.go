package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkenzhe/netbuddy/internal/errs"
	"github.com/dkenzhe/netbuddy/internal/models"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates account registration, authentication and the
// display fields the presence aggregator echoes to buddies.
type UserService struct {
	users UserStore
	now   func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, now: time.Now}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, username, screenName, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("missing required user fields: %w", errs.ErrInvalidArgument)
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email format: %w", errs.ErrInvalidArgument)
	}
	if screenName == "" {
		screenName = username
	}

	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q is taken: %w", username, errs.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user, err := s.users.CreateUser(ctx, &models.User{
		Username:       username,
		ScreenName:     screenName,
		Email:          email,
		HashedPassword: string(hashed),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("userID", user.ID.Hex()).Info("User registered")
	return user, nil
}

// Authenticate verifies the credentials, stamps a heartbeat and clears
// the manual-logoff flag so the user shows up online right away.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	user, err = s.users.Heartbeat(ctx, user.ID, s.now())
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Logoff marks the user as manually signed off; they stay offline until
// the next heartbeat.
func (s *UserService) Logoff(ctx context.Context, userID primitive.ObjectID) error {
	return s.users.SetLoggedOff(ctx, userID)
}

// GetProfile returns the caller's own record.
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// ProfileUpdate carries the optional display fields of a profile update.
type ProfileUpdate struct {
	ScreenName  *string
	Status      *string
	AwayStatus  *string
	AwayMessage *string
}

// UpdateProfile applies the non-nil display fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	fields := bson.M{}
	if update.ScreenName != nil {
		fields["screen_name"] = *update.ScreenName
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.AwayStatus != nil {
		fields["away_status"] = *update.AwayStatus
	}
	if update.AwayMessage != nil {
		fields["away_message"] = *update.AwayMessage
	}

	if len(fields) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.users.GetUserByID(ctx, userID)
}
