// Copyright (c) 2026 Smile. All rights reserved.

package address

import (
	"context"
	"fmt"

	"github.com/smilehq/smile-api/internal/users/user"
)

// OwnerChecker verifies that an owning account exists before an address is
// attached to it. Satisfied by the user service.
type OwnerChecker interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// Service implements the address management use cases.
type Service struct {
	repository Repository
	owners     OwnerChecker
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, owners OwnerChecker) *Service {
	return &Service{repository: repository, owners: owners}
}

// Input holds the client-editable address fields.
type Input struct {
	FullAddress string
	Phone       string
	IsDefault   bool
}

// Create attaches a new address to the given owner, failing with the owner's
// NotFound when the account does not exist.
func (service *Service) Create(ctx context.Context, ownerID int64, input Input) (*Address, error) {
	if _, err := service.owners.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	address := &Address{
		FullAddress: input.FullAddress,
		Phone:       input.Phone,
		OwnerID:     ownerID,
		IsDefault:   input.IsDefault,
	}

	if err := service.repository.Create(ctx, address); err != nil {
		return nil, err
	}

	return address, nil
}

// FindByID returns the address with the given ID or a NotFound failure.
func (service *Service) FindByID(ctx context.Context, id int64) (*Address, error) {
	return service.repository.FindByID(ctx, id)
}

// FindByOwnerID returns every address of an existing account, newest first.
func (service *Service) FindByOwnerID(ctx context.Context, ownerID int64) ([]*Address, error) {
	if _, err := service.owners.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return service.repository.FindByOwnerID(ctx, ownerID)
}

// Update replaces the editable fields of an address belonging to the given
// owner. Both the owner and the address must exist; ownership is re-pinned
// from the route so the address cannot be moved between accounts.
func (service *Service) Update(ctx context.Context, ownerID, addressID int64, input Input) (*Address, error) {
	if _, err := service.owners.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	address, err := service.repository.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	address.FullAddress = input.FullAddress
	address.Phone = input.Phone
	address.OwnerID = ownerID
	address.IsDefault = input.IsDefault

	if err := service.repository.Update(ctx, address); err != nil {
		return nil, err
	}

	return address, nil
}

// DeleteByID removes an address, failing with NotFound if it doesn't exist.
func (service *Service) DeleteByID(ctx context.Context, id int64) error {
	if _, err := service.repository.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repository.Delete(ctx, id)
}

// NotFoundMessage renders the canonical missing-address message for an ID.
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("Not found address with ID: %d", id)
}
