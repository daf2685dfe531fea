// Copyright (c) 2026 Smile. All rights reserved.

package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/ctxutil"
	"github.com/smilehq/smile-api/internal/platform/respond"
	"github.com/smilehq/smile-api/internal/users/user"
)

// ProfileFinder resolves the full account record for the login response.
// Satisfied by the user service.
type ProfileFinder interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// Handler implements the login endpoint.
type Handler struct {
	authService *Service
	profiles    ProfileFinder
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, profiles ProfileFinder) *Handler {
	return &Handler{authService: service, profiles: profiles}
}

// Register mounts the auth routes.
func (handler *Handler) Register(router chi.Router) {
	router.Post("/login", handler.login)
}

/*
login handles POST /login.

Credential verification already happened in the access control filter: the
client sends HTTP Basic, the filter authenticates it and binds the principal
to the request context before this handler runs. The handler's job is to
turn that bound principal into a signed access token plus the account
profile. The route is any-authenticated in the policy table, so anonymous
requests are rejected upstream; the nil check covers a misconfigured policy
rather than a reachable path.
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		respond.Error(writer, request, apperr.MissingCredentials())
		return
	}

	token, err := handler.authService.IssueToken(principal)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	account, err := handler.profiles.FindByUsername(request.Context(), principal.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "welcome "+principal.Username, map[string]interface{}{
		constants.FieldUser:  account,
		constants.FieldToken: token,
	})
}
