package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
	"github.com/cardlink/cardlink-services/internal/apisvc/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned on signup with an existing email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned on login failure. The message is
	// shown to the user verbatim, so it names neither field.
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

// UserService struct represents the user service layer
type UserService struct {
	userStore *store.UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(userStore *store.UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

// Signup creates an account with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	return s.userStore.CreateUser(ctx, user)
}

// Login verifies credentials and returns the account.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Profile returns the public projection for GET /api/auth/me.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

// UpdateProfile changes the display name and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, avatar string) (*models.Profile, error) {
	user, err := s.userStore.UpdateProfile(ctx, userID, name, avatar)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}
