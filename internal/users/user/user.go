// Copyright (c) 2026 Smile. All rights reserved.

/*
Package user implements the account management domain.

It defines the account entity and the CRUD + filter-by-example operations
exposed through the admin surface. Authentication concerns live in the
sibling auth package; this package owns the records the authenticator reads.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
transport dependencies and encapsulate the account lifecycle rules
(uniqueness, default role, nickname defaulting).
*/
package user

import (
	"context"
	"time"
)

// # Domain Entities

// User represents a registered account.
//
// Roles is a single space-delimited string of role tokens, e.g.
// "ROLE_ADMIN ROLE_USER"; parsing lives in the sec package. The password
// hash is explicitly omitted from JSON so an account can never leak its
// digest across an external boundary.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Roles        string    `json:"roles"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter is a query-by-example input for the admin filter endpoint.
//
// Zero-valued fields are ignored. Enabled is a pointer so "filter disabled
// accounts" and "don't filter on enabled" stay distinguishable.
type Filter struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
	Enabled  *bool  `json:"enabled"`
}

// # Field Identifiers

// Field names for validation maps in the account domain.
const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldNickname = "nickname"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRoles    = "roles"
)

// # Data Access Contract

// Repository defines the persistence contract for accounts.
//
// Implementations map storage errors (missing rows, unique violations) to
// apperr values; callers never see driver-level errors.
type Repository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns every account, newest first (id DESC).
	FindAll(ctx context.Context) ([]*User, error)

	// FindByExample returns accounts matching the filter, newest first.
	FindByExample(ctx context.Context, filter Filter) ([]*User, error)

	// Create persists a new account and assigns its ID.
	Create(ctx context.Context, user *User) error

	// Update persists changes to the account's profile fields.
	// The password hash is never written through this method.
	Update(ctx context.Context, user *User) error

	// Delete removes the account row.
	Delete(ctx context.Context, id int64) error
}
