// Copyright (c) 2026 Smile. All rights reserved.

// Package bootstrap seeds the initial accounts on a fresh database.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/sec"
	"github.com/smilehq/smile-api/internal/users/user"
)

// SeedAccounts ensures the bootstrap accounts exist:
//
//   - "admin": enabled, ROLE_ADMIN ROLE_USER, password from config. The only
//     way to get an admin on a fresh install, since self-registration always
//     grants ROLE_USER.
//   - "invalid": disabled ROLE_USER. Exists so the disabled-account login
//     path stays exercisable in every environment.
//
// Seeding is keyed off the admin account: if it already exists the whole
// step is a no-op, so redeploys never reset passwords.
func SeedAccounts(ctx context.Context, repository user.Repository, adminPassword string, logger *slog.Logger) error {
	if _, err := repository.FindByUsername(ctx, "admin"); err == nil {
		logger.Info("seed skipped, admin account present")
		return nil
	}

	adminHash, err := sec.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap: hash admin password: %w", err)
	}

	admin := &user.User{
		Username:     "admin",
		Nickname:     "admin",
		PasswordHash: adminHash,
		Email:        "admin@smile.app",
		Roles:        constants.RoleAdmin + " " + constants.RoleUser,
		Enabled:      true,
	}
	if err := repository.Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap: create admin: %w", err)
	}

	disabledHash, err := sec.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap: hash disabled password: %w", err)
	}

	disabled := &user.User{
		Username:     "invalid",
		Nickname:     "invalid",
		PasswordHash: disabledHash,
		Email:        "invalid@smile.app",
		Roles:        constants.RoleUser,
		Enabled:      false,
	}
	if err := repository.Create(ctx, disabled); err != nil {
		return fmt.Errorf("bootstrap: create disabled account: %w", err)
	}

	logger.Info("seed accounts created",
		slog.String("admin", admin.Username),
		slog.String("disabled", disabled.Username),
	)

	return nil
}
