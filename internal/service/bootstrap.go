package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"linkboard/internal/auth"
	"linkboard/internal/model"
	"linkboard/internal/repository"
)

// EnsureAdmin creates the bootstrap admin account if it does not exist.
// Safe to run concurrently: a duplicate-key error from a racing seeder
// is treated as success. Returns true if the account was created.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, username, password string) (bool, error) {
	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	return true, nil
}
