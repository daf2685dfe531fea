// Copyright (c) 2026 Smile. All rights reserved.

package address

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smilehq/smile-api/internal/platform/dberr"
)

const addressColumns = "id, fulladdress, phone, ownerid, isdefault"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the address Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new address row and backfills the generated ID.
func (repository *PostgresRepository) Create(ctx context.Context, address *Address) error {
	const query = `
		INSERT INTO users.address (fulladdress, phone, ownerid, isdefault)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.pool.QueryRow(ctx, query,
		address.FullAddress,
		address.Phone,
		address.OwnerID,
		address.IsDefault,
	).Scan(&address.ID)

	if err != nil {
		return dberr.Wrap(err, "Address not found", "")
	}

	return nil
}

// FindByID retrieves an address by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM users.address WHERE id = $1`

	address := &Address{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&address.ID,
		&address.FullAddress,
		&address.Phone,
		&address.OwnerID,
		&address.IsDefault,
	)

	if err != nil {
		return nil, dberr.Wrap(err, NotFoundMessage(id), "")
	}

	return address, nil
}

// FindByOwnerID returns every address owned by an account, ordered id DESC.
func (repository *PostgresRepository) FindByOwnerID(ctx context.Context, ownerID int64) ([]*Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM users.address WHERE ownerid = $1 ORDER BY id DESC`

	rows, err := repository.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_address_repo_find_by_owner_failed: %w", err)
	}
	defer rows.Close()

	addresses := make([]*Address, 0, 8)
	for rows.Next() {
		address := &Address{}
		if err := rows.Scan(
			&address.ID,
			&address.FullAddress,
			&address.Phone,
			&address.OwnerID,
			&address.IsDefault,
		); err != nil {
			return nil, fmt.Errorf("postgres_address_repo_scan_failed: %w", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_address_repo_rows_failed: %w", err)
	}

	return addresses, nil
}

// Update persists the address fields.
func (repository *PostgresRepository) Update(ctx context.Context, address *Address) error {
	const query = `
		UPDATE users.address
		SET fulladdress = $2, phone = $3, ownerid = $4, isdefault = $5
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query,
		address.ID,
		address.FullAddress,
		address.Phone,
		address.OwnerID,
		address.IsDefault,
	)

	if err != nil {
		return dberr.Wrap(err, NotFoundMessage(address.ID), "")
	}

	return nil
}

// Delete removes the address row.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM users.address WHERE id = $1"
	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_address_repo_delete_failed: %w", err)
	}
	return nil
}
