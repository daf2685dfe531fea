// Copyright (c) 2026 Smile. All rights reserved.

package address_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/users/address"
	"github.com/smilehq/smile-api/internal/users/user"
)

// fakeOwners recognizes a fixed set of account IDs.
type fakeOwners struct {
	ids map[int64]bool
}

func (f *fakeOwners) FindByID(_ context.Context, id int64) (*user.User, error) {
	if f.ids[id] {
		return &user.User{ID: id, Username: "owner"}, nil
	}
	return nil, apperr.NotFound(user.NotFoundMessage(id))
}

// fakeAddressRepository is an in-memory address store keyed by ID.
type fakeAddressRepository struct {
	nextID    int64
	addresses map[int64]*address.Address
}

func newFakeAddressRepository() *fakeAddressRepository {
	return &fakeAddressRepository{nextID: 1, addresses: map[int64]*address.Address{}}
}

func (r *fakeAddressRepository) FindByID(_ context.Context, id int64) (*address.Address, error) {
	if stored, ok := r.addresses[id]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, apperr.NotFound(address.NotFoundMessage(id))
}

func (r *fakeAddressRepository) FindByOwnerID(_ context.Context, ownerID int64) ([]*address.Address, error) {
	owned := make([]*address.Address, 0, 4)
	for _, stored := range r.addresses {
		if stored.OwnerID == ownerID {
			copied := *stored
			owned = append(owned, &copied)
		}
	}
	return owned, nil
}

func (r *fakeAddressRepository) Create(_ context.Context, input *address.Address) error {
	input.ID = r.nextID
	r.nextID++
	copied := *input
	r.addresses[input.ID] = &copied
	return nil
}

func (r *fakeAddressRepository) Update(_ context.Context, input *address.Address) error {
	if _, ok := r.addresses[input.ID]; !ok {
		return apperr.NotFound(address.NotFoundMessage(input.ID))
	}
	copied := *input
	r.addresses[input.ID] = &copied
	return nil
}

func (r *fakeAddressRepository) Delete(_ context.Context, id int64) error {
	delete(r.addresses, id)
	return nil
}

func newTestService() (*address.Service, *fakeAddressRepository) {
	repository := newFakeAddressRepository()
	owners := &fakeOwners{ids: map[int64]bool{1: true}}
	return address.NewService(repository, owners), repository
}

/*
TestService_Create verifies owner pinning from the route and the missing
owner failure.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()

	// 1. Attach to an existing owner.
	created, err := service.Create(context.Background(), 1, address.Input{
		FullAddress: "123 Main St, Springfield",
		Phone:       "555-0100",
		IsDefault:   true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.OwnerID)
	assert.True(t, created.IsDefault)

	// 2. Unknown owner surfaces the account's NotFound message.
	_, err = service.Create(context.Background(), 42, address.Input{
		FullAddress: "Nowhere", Phone: "555-0199",
	})
	require.Error(t, err)
	assert.Equal(t, "Not found user with ID: 42", err.Error())
}

/*
TestService_FindByOwnerID verifies listing checks owner existence first and
only returns that owner's addresses.
*/
func TestService_FindByOwnerID(t *testing.T) {
	service, repository := newTestService()

	_, err := service.Create(context.Background(), 1, address.Input{FullAddress: "A", Phone: "1"})
	require.NoError(t, err)
	// A stray address owned by someone else sits in storage directly.
	require.NoError(t, repository.Create(context.Background(), &address.Address{
		FullAddress: "B", Phone: "2", OwnerID: 7,
	}))

	owned, err := service.FindByOwnerID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "A", owned[0].FullAddress)

	_, err = service.FindByOwnerID(context.Background(), 42)
	assert.Error(t, err)
}

/*
TestService_Update verifies field replacement and re-pinning of ownership
from the route parameters.
*/
func TestService_Update(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), 1, address.Input{
		FullAddress: "123 Main St", Phone: "555-0100",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), 1, created.ID, address.Input{
		FullAddress: "456 Oak Ave",
		Phone:       "555-0111",
		IsDefault:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "456 Oak Ave", updated.FullAddress)
	assert.Equal(t, int64(1), updated.OwnerID)
	assert.True(t, updated.IsDefault)

	// Missing address keeps its own NotFound message.
	_, err = service.Update(context.Background(), 1, 99, address.Input{FullAddress: "x", Phone: "y"})
	require.Error(t, err)
	assert.Equal(t, "Not found address with ID: 99", err.Error())
}

/*
TestService_DeleteByID verifies delete-then-lookup fails and a missing
address surfaces NotFound.
*/
func TestService_DeleteByID(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), 1, address.Input{
		FullAddress: "123 Main St", Phone: "555-0100",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteByID(context.Background(), created.ID))

	_, err = service.FindByID(context.Background(), created.ID)
	assert.Error(t, err)

	err = service.DeleteByID(context.Background(), 99)
	assert.Error(t, err)
}
