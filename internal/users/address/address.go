// Copyright (c) 2026 Smile. All rights reserved.

/*
Package address implements the delivery-address sub-resource of an account.

Addresses are always owned by an account; the owner is taken from the route,
never from the payload, so a client cannot attach an address to someone
else's account by forging a body field.
*/
package address

import "context"

// Address represents a delivery address owned by an account.
type Address struct {
	ID          int64  `json:"id"`
	FullAddress string `json:"fullAddress"`
	Phone       string `json:"phone"`
	OwnerID     int64  `json:"ownerId"`
	IsDefault   bool   `json:"isDefault"`
}

// Field names for validation maps in the address domain.
const (
	FieldID          = "id"
	FieldFullAddress = "fullAddress"
	FieldPhone       = "phone"
)

// Repository defines the persistence contract for addresses.
type Repository interface {
	// FindByID returns the address with the given ID.
	FindByID(ctx context.Context, id int64) (*Address, error)

	// FindByOwnerID returns every address owned by the given account,
	// newest first (id DESC).
	FindByOwnerID(ctx context.Context, ownerID int64) ([]*Address, error)

	// Create persists a new address and assigns its ID.
	Create(ctx context.Context, address *Address) error

	// Update persists changes to the address fields.
	Update(ctx context.Context, address *Address) error

	// Delete removes the address row.
	Delete(ctx context.Context, id int64) error
}
