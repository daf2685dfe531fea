// Copyright (c) 2026 Smile. All rights reserved.

// PostgreSQL implementation of the account [Repository].
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] values via dberr to avoid leaking storage
// implementation details.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smilehq/smile-api/internal/platform/dberr"
)

const accountColumns = "id, username, nickname, passwordhash, email, roles, enabled, createdat, updatedat"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the account Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new account row and backfills the generated ID.
func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (username, nickname, passwordhash, email, roles, enabled, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		user.Username,
		user.Nickname,
		user.PasswordHash,
		user.Email,
		user.Roles,
		user.Enabled,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return dberr.Wrap(err, "User not found", "username or email already exists")
	}

	return nil
}

// FindByID retrieves an account by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE id = $1`
	return repository.queryOne(ctx, query, NotFoundMessage(id), id)
}

// FindByUsername retrieves an account by its unique username.
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE username = $1`
	return repository.queryOne(ctx, query, "User not found with this username", username)
}

// FindByEmail retrieves an account by its unique email address.
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE email = $1`
	return repository.queryOne(ctx, query, "User not found with this email", email)
}

// FindAll returns every account ordered id DESC.
func (repository *PostgresRepository) FindAll(ctx context.Context) ([]*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account ORDER BY id DESC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_find_all_failed: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// FindByExample returns accounts matching the query-by-example filter,
// ordered id DESC.
//
// Matching rules mirror the admin contract: username/nickname/roles are
// case-insensitive substring matches, email is a case-insensitive exact
// match, enabled is an exact match only when present.
func (repository *PostgresRepository) FindByExample(ctx context.Context, filter Filter) ([]*User, error) {
	var conditions []string
	var args []interface{}

	appendCondition := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Username != "" {
		appendCondition("username ILIKE '%%' || $%d || '%%'", filter.Username)
	}
	if filter.Nickname != "" {
		appendCondition("nickname ILIKE '%%' || $%d || '%%'", filter.Nickname)
	}
	if filter.Email != "" {
		appendCondition("LOWER(email) = LOWER($%d)", filter.Email)
	}
	if filter.Roles != "" {
		appendCondition("roles ILIKE '%%' || $%d || '%%'", filter.Roles)
	}
	if filter.Enabled != nil {
		appendCondition("enabled = $%d", *filter.Enabled)
	}

	query := `SELECT ` + accountColumns + ` FROM users.account`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_filter_failed: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Update persists the account's profile fields. The password hash column is
// intentionally absent from the statement.
func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET username = $2, nickname = $3, email = $4, roles = $5, enabled = $6, updatedat = $7
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Nickname,
		user.Email,
		user.Roles,
		user.Enabled,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, NotFoundMessage(user.ID), "username or email already exists")
	}

	return nil
}

// Delete removes the account row; owned addresses cascade at the schema level.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM users.account WHERE id = $1"
	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}
	return nil
}

// queryOne runs a single-row account query and maps pgx.ErrNoRows to a
// client-safe NotFound.
func (repository *PostgresRepository) queryOne(ctx context.Context, query, notFoundMsg string, arg interface{}) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Nickname,
		&user.PasswordHash,
		&user.Email,
		&user.Roles,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, notFoundMsg, "")
	}

	return user, nil
}

// scanUsers drains a multi-row result set into account entities.
func scanUsers(rows pgx.Rows) ([]*User, error) {
	users := make([]*User, 0, 16)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Nickname,
			&user.PasswordHash,
			&user.Email,
			&user.Roles,
			&user.Enabled,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_rows_failed: %w", err)
	}

	return users, nil
}
