// Copyright (c) 2026 Smile. All rights reserved.

package user

import (
	"context"
	"fmt"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/sec"
)

// Service implements the account management use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Registration

// CreateInput holds the data required to enroll a new account.
type CreateInput struct {
	Username string
	Nickname string
	Email    string
	Password string
}

// Create validates uniqueness, hashes the password, and persists a new
// account with the default role set.
//
// New accounts always start as enabled ROLE_USER; role escalation is an
// admin-only update. An empty nickname defaults to the username.
func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {

	// Verify username uniqueness. Return a client-safe Conflict err.
	if _, err := service.repository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("username already exists")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.repository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("email already exists")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user_service_hash_failed: %w", err)
	}

	nickname := input.Nickname
	if nickname == "" {
		nickname = input.Username
	}

	account := &User{
		Username:     input.Username,
		Nickname:     nickname,
		PasswordHash: hashedPassword,
		Email:        input.Email,
		Roles:        constants.RoleUser,
		Enabled:      true,
	}

	if err := service.repository.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// # Lookup & Listing

// FindByID returns the account with the given ID or a NotFound failure.
func (service *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	return service.repository.FindByID(ctx, id)
}

// FindByUsername returns the account with the given username.
func (service *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return service.repository.FindByUsername(ctx, username)
}

// FindAll returns every account, newest first.
func (service *Service) FindAll(ctx context.Context) ([]*User, error) {
	return service.repository.FindAll(ctx)
}

// FindByExample returns accounts matching the query-by-example filter.
func (service *Service) FindByExample(ctx context.Context, filter Filter) ([]*User, error) {
	return service.repository.FindByExample(ctx, filter)
}

// # Mutation

// UpdateInput holds the admin-editable profile fields.
type UpdateInput struct {
	Username string
	Nickname string
	Email    string
	Roles    string
	Enabled  bool
}

// Update replaces the account's profile fields.
//
// The password hash is deliberately untouched: credential rotation is a
// separate concern and an admin PUT must never null out a password.
func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*User, error) {
	account, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nickname := input.Nickname
	if nickname == "" {
		nickname = input.Username
	}

	account.Username = input.Username
	account.Nickname = nickname
	account.Email = input.Email
	account.Roles = input.Roles
	account.Enabled = input.Enabled

	if err := service.repository.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteByID removes an account, failing with NotFound if it doesn't exist.
func (service *Service) DeleteByID(ctx context.Context, id int64) error {
	if _, err := service.repository.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repository.Delete(ctx, id)
}

// NotFoundMessage renders the canonical missing-account message for an ID.
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("Not found user with ID: %d", id)
}
