// Copyright (c) 2026 Smile. All rights reserved.

package api

import (
	"net/http"

	"github.com/smilehq/smile-api/internal/platform/authz"
	"github.com/smilehq/smile-api/internal/platform/constants"
)

/*
DefaultPolicy is the static authorization table for the service.

Reading order matters to the matcher only in that exact patterns always win
over wildcard ones; within each class the first hit is taken. Anything the
table does not mention requires an authenticated principal, which also
covers POST /api/v1/login: the Basic credential authenticates the caller in
the filter before the policy is consulted.

Registration and the current-user probe are the only public application
routes. The probe stays public so an anonymous call receives the canonical
missing-credentials failure from the handler instead of a generic 401.
*/
func DefaultPolicy() *authz.Policy {
	return authz.NewPolicy([]authz.Rule{
		// Infrastructure probes
		{Method: http.MethodGet, Pattern: "/health", Access: authz.Public},
		{Method: http.MethodGet, Pattern: "/ready", Access: authz.Public},

		// Public application surface
		{Method: http.MethodPost, Pattern: "/api/v1/users", Access: authz.Public},
		{Method: http.MethodGet, Pattern: "/api/v1/users/current_user", Access: authz.Public},

		// Admin-only account management
		{Method: http.MethodGet, Pattern: "/api/v1/users", Access: authz.RequiresRole, Role: constants.RoleAdmin},
		{Method: http.MethodPost, Pattern: "/api/v1/users/filter", Access: authz.RequiresRole, Role: constants.RoleAdmin},
		{Method: http.MethodGet, Pattern: "/api/v1/users/*", Access: authz.RequiresRole, Role: constants.RoleAdmin},
		{Method: http.MethodPut, Pattern: "/api/v1/users/*", Access: authz.RequiresRole, Role: constants.RoleAdmin},
		{Method: http.MethodDelete, Pattern: "/api/v1/users/*", Access: authz.RequiresRole, Role: constants.RoleAdmin},
	})
}
