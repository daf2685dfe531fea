// Copyright (c) 2026 Smile. All rights reserved.

package address

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/respond"
	"github.com/smilehq/smile-api/internal/platform/validate"
)

// Handler implements the address sub-resource HTTP endpoints.
type Handler struct {
	addressService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{addressService: service}
}

// Register mounts the address routes onto the shared /users router.
//
// The owner segment reuses the {id} parameter name because chi requires a
// single wildcard name per position and the account routes already claim it.
//
// # Endpoints
//   - GET    /users/address/{id}              : fetch one address
//   - DELETE /users/address/{id}              : delete an address
//   - GET    /users/{id}/address              : list an account's addresses
//   - POST   /users/{id}/address              : attach a new address
//   - PUT    /users/{id}/address/{addressId}  : update an address
func (handler *Handler) Register(router chi.Router) {
	router.Get("/address/{id}", handler.findByID)
	router.Delete("/address/{id}", handler.remove)
	router.Get("/{id}/address", handler.listByOwner)
	router.Post("/{id}/address", handler.create)
	router.Put("/{id}/address/{addressId}", handler.update)
}

type addressRequest struct {
	FullAddress string `json:"fullAddress"`
	Phone       string `json:"phone"`
	IsDefault   bool   `json:"isDefault"`
}

// create handles POST /users/{id}/address.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := pathInt64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeAddress(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.addressService.Create(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Create address success", created)
}

// findByID handles GET /users/address/{id}.
func (handler *Handler) findByID(writer http.ResponseWriter, request *http.Request) {
	id, err := pathInt64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.addressService.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Find address success", found)
}

// listByOwner handles GET /users/{id}/address.
func (handler *Handler) listByOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := pathInt64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	addresses, err := handler.addressService.FindByOwnerID(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Find user addresses success", addresses)
}

// update handles PUT /users/{id}/address/{addressId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := pathInt64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	addressID, err := pathInt64(request, "addressId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeAddress(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.addressService.Update(request.Context(), ownerID, addressID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Update address success", updated)
}

// remove handles DELETE /users/address/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := pathInt64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.addressService.DeleteByID(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Delete address success", nil)
}

// decodeAddress parses and validates an address payload.
func decodeAddress(request *http.Request) (Input, error) {
	var payload addressRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		return Input{}, validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullAddress, payload.FullAddress).
		MaxLen(FieldFullAddress, payload.FullAddress, 255).
		Required(FieldPhone, payload.Phone).
		MaxLen(FieldPhone, payload.Phone, 32)

	if err := validator.Err(); err != nil {
		return Input{}, err
	}

	return Input{
		FullAddress: payload.FullAddress,
		Phone:       payload.Phone,
		IsDefault:   payload.IsDefault,
	}, nil
}

// pathInt64 parses a numeric route parameter.
func pathInt64(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ValidationFailed(validate.ValidationMessage, map[string]string{
			name: "must be an integer",
		})
	}
	return value, nil
}
