package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"linkboard/internal/auth"
	"linkboard/internal/cache"
	apperrors "linkboard/internal/errors"
	"linkboard/internal/model"
	"linkboard/internal/repository"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 6

	userCacheTTL = 5 * time.Minute
)

// AuthService handles registration, login and identity lookups.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		cache:      cache,
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// validateCredentials collects every violated rule so the caller sees
// all problems at once, not just the first.
func validateCredentials(username, password string) error {
	var reasons []string
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		reasons = append(reasons, "username must be 3-20 characters")
	}
	if len(password) < minPasswordLen {
		reasons = append(reasons, "password must be at least 6 characters")
	}
	if len(reasons) > 0 {
		return apperrors.NewInvalidInput(reasons...)
	}
	return nil
}

// Register creates a new user with a hashed password and issues a
// session token. The username uniqueness race is settled by the store's
// unique constraint: a duplicate-key error at insert means the username
// was taken by a concurrent registration.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, string, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, "", err
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a session token. An unknown
// username and a wrong password yield the same error so usernames cannot
// be enumerated.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// GetUser loads a user by id, cache-aside. Users are immutable in this
// system, so a short cache TTL is safe.
func (s *authService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
