// Copyright (c) 2026 Smile. All rights reserved.

/*
Package user provides the HTTP delivery layer for account management.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: RESTful JSON with the uniform {flag, message, data} envelope.
  - Security: Admin-only routes are enforced by the access-control middleware
    before any handler here runs; handlers never re-check roles.
  - Verification: Enforces strict input validation before passing to [Service].
*/
package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/ctxutil"
	"github.com/smilehq/smile-api/internal/platform/respond"
	"github.com/smilehq/smile-api/internal/platform/validate"
)

// Handler implements the account management HTTP endpoints.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Register mounts the account routes onto the shared /users router.
//
// # Endpoints
//   - POST   /users               : self-registration (public)
//   - GET    /users               : list all accounts (admin)
//   - POST   /users/filter        : filter by example (admin)
//   - GET    /users/current_user  : resolve the bound principal (public route, 401 when anonymous)
//   - GET    /users/{id}          : fetch one account (admin)
//   - PUT    /users/{id}          : update profile fields (admin)
//   - DELETE /users/{id}          : delete an account (admin)
func (handler *Handler) Register(router chi.Router) {
	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Post("/filter", handler.filter)
	router.Get("/current_user", handler.currentUser)
	router.Get("/{id}", handler.findByID)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
}

// # Request Payloads

type createRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
	Enabled  bool   `json:"enabled"`
}

/*
create handles POST /users — public self-registration.

Response:
  - 200: Created account (password hash omitted)
  - 400: Validation failure with field->message map in data
  - 409: Duplicate username or email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		LenBetween(FieldUsername, input.Username, 3, 16).
		MaxLen(FieldNickname, input.Nickname, 32).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.userService.Create(request.Context(), CreateInput{
		Username: input.Username,
		Nickname: input.Nickname,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Create user success", account)
}

// list handles GET /users — admin listing of every account, newest first.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.userService.FindAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Find all users success", accounts)
}

// filter handles POST /users/filter — admin query-by-example.
func (handler *Handler) filter(writer http.ResponseWriter, request *http.Request) {
	var input Filter
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	accounts, err := handler.userService.FindByExample(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Find user(s) success", accounts)
}

// findByID handles GET /users/{id}.
func (handler *Handler) findByID(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.userService.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Find user success", account)
}

/*
currentUser handles GET /users/current_user.

The route is public in the policy table, so an anonymous request reaches the
handler; it answers 401 missing-credentials rather than leaking account data.
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		respond.Error(writer, request, apperr.MissingCredentials())
		return
	}

	account, err := handler.userService.FindByUsername(request.Context(), principal.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Retrieve current user success", account)
}

// update handles PUT /users/{id} — admin profile update, password untouched.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		LenBetween(FieldUsername, input.Username, 3, 16).
		MaxLen(FieldNickname, input.Nickname, 32).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldRoles, input.Roles)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.userService.Update(request.Context(), id, UpdateInput{
		Username: input.Username,
		Nickname: input.Nickname,
		Email:    input.Email,
		Roles:    input.Roles,
		Enabled:  input.Enabled,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Update user success", account)
}

// remove handles DELETE /users/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.DeleteByID(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Delete user success", nil)
}

// pathID parses the {id} route parameter as a numeric account identifier.
func pathID(request *http.Request) (int64, error) {
	raw := chi.URLParam(request, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ValidationFailed(validate.ValidationMessage, map[string]string{
			FieldID: "must be an integer",
		})
	}
	return id, nil
}
