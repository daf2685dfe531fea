// Copyright (c) 2026 Smile. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Smile API server.
//
// # Access Control
//
// This file implements the access-control filter: per-request credential
// classification (anonymous / Basic / Bearer), authentication, principal
// binding, and policy evaluation. Handlers behind this chain only ever see
// requests whose principal already satisfied the matched authorization rule.
package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/authz"
	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/ctxutil"
	"github.com/smilehq/smile-api/internal/platform/respond"
	"github.com/smilehq/smile-api/internal/platform/sec"
)

// Authenticator defines the credential verification contract needed by the filter.
//
// # Why an interface?
//
// Defining Authenticator here decouples the middleware from the auth service
// implementation, allowing us to easily inject fakes during unit testing.
type Authenticator interface {
	// AuthenticateByPassword verifies a username-or-email plus password pair.
	AuthenticateByPassword(ctx context.Context, login, password string) (*sec.Principal, error)

	// AuthenticateByToken verifies a bearer token string.
	AuthenticateByToken(ctx context.Context, token string) (*sec.Principal, error)
}

// Authenticate classifies the request's credentials and, when present,
// resolves them into a [sec.Principal] bound to the request context.
//
// # Flow
//  1. No Authorization header — the request proceeds as anonymous; the
//     policy middleware decides whether anonymity is acceptable.
//  2. 'Bearer <token>' — verify the token. Invalid tokens are rejected even
//     on public routes: a presented credential must never be silently ignored.
//  3. 'Basic <base64>' — decode and verify the username:password pair.
//  4. Any other scheme — rejected as missing credentials.
//
// Authentication failures terminate the request here with the uniform
// envelope; no handler runs.
func Authenticate(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, credential, found := strings.Cut(authHeader, " ")
			if !found {
				respond.Error(writer, request, apperr.MissingCredentials())
				return
			}

			var principal *sec.Principal
			var err error

			switch strings.ToLower(scheme) {
			// ── 2. Bearer Token Path ──────────────────────────────────────────
			case "bearer":
				principal, err = authenticator.AuthenticateByToken(request.Context(), credential)

			// ── 3. Basic Credentials Path ─────────────────────────────────────
			case "basic":
				login, password, ok := decodeBasic(credential)
				if !ok {
					respond.Error(writer, request, apperr.MissingCredentials())
					return
				}
				principal, err = authenticator.AuthenticateByPassword(request.Context(), login, password)

			default:
				respond.Error(writer, request, apperr.MissingCredentials())
				return
			}

			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Authorize enforces the static authorization policy.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Look up the most specific rule for (method, path); unmatched requests
//     require any authenticated principal — never default-open.
//  2. Public — pass through, principal or not.
//  3. AnyAuthenticated — abort 401 when anonymous.
//  4. RequiresRole — abort 401 when anonymous, 403 when the principal's
//     role set lacks the exact required token.
func Authorize(policy *authz.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			rule := policy.Decide(request.Method, request.URL.Path)

			if rule.Access == authz.Public {
				next.ServeHTTP(writer, request)
				return
			}

			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.MissingCredentials())
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if rule.Access == authz.RequiresRole && !principal.HasRole(rule.Role) {
				respond.Error(writer, request, apperr.InsufficientRole())
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// decodeBasic unpacks the base64 payload of an HTTP Basic header into its
// login and password halves.
func decodeBasic(credential string) (login, password string, ok bool) {
	decoded, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return "", "", false
	}
	login, password, ok = strings.Cut(string(decoded), ":")
	if !ok || login == "" {
		return "", "", false
	}
	return login, password, true
}
