// Copyright (c) 2026 Smile. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/authz"
	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/ctxutil"
	"github.com/smilehq/smile-api/internal/platform/middleware"
	"github.com/smilehq/smile-api/internal/platform/respond"
	"github.com/smilehq/smile-api/internal/platform/sec"
)

// fakeAuthenticator resolves fixed credentials without any crypto or storage.
type fakeAuthenticator struct{}

func (fakeAuthenticator) AuthenticateByPassword(_ context.Context, login, password string) (*sec.Principal, error) {
	if login == "admin" && password == "PassW0rd" {
		return &sec.Principal{Username: "admin", Roles: []string{"ROLE_ADMIN", "ROLE_USER"}, Enabled: true}, nil
	}
	return nil, apperr.BadCredentials()
}

func (fakeAuthenticator) AuthenticateByToken(_ context.Context, token string) (*sec.Principal, error) {
	switch token {
	case "admin-token":
		return &sec.Principal{Username: "admin", Roles: []string{"ROLE_ADMIN", "ROLE_USER"}, Enabled: true}, nil
	case "user-token":
		return &sec.Principal{Username: "eric", Roles: []string{"ROLE_USER"}, Enabled: true}, nil
	default:
		return nil, apperr.InvalidToken()
	}
}

// newFilterChain builds Authenticate + Authorize around a handler that
// reports the bound principal's username.
func newFilterChain(policy *authz.Policy) http.Handler {
	terminal := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		username := ""
		if principal := ctxutil.GetPrincipal(request.Context()); principal != nil {
			username = principal.Username
		}
		respond.OK(writer, "reached", map[string]string{"username": username})
	})

	chain := middleware.Authenticate(fakeAuthenticator{})(
		middleware.Authorize(policy)(terminal),
	)
	return chain
}

func filterTestPolicy() *authz.Policy {
	return authz.NewPolicy([]authz.Rule{
		{Method: http.MethodGet, Pattern: "/public", Access: authz.Public},
		{Method: http.MethodGet, Pattern: "/admin", Access: authz.RequiresRole, Role: constants.RoleAdmin},
	})
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) respond.Result {
	t.Helper()
	var result respond.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}

/*
TestFilter_AnonymousOnPublicRoute verifies that a request with no
Authorization header passes through a public route as anonymous.
*/
func TestFilter_AnonymousOnPublicRoute(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/public", nil)
	recorder := httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	result := decodeEnvelope(t, recorder)
	assert.True(t, result.Flag)
}

/*
TestFilter_AnonymousOnProtectedRoute verifies the closed default: no
credentials on an unmatched route yields the canonical 401.
*/
func TestFilter_AnonymousOnProtectedRoute(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/anything", nil)
	recorder := httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	result := decodeEnvelope(t, recorder)
	assert.False(t, result.Flag)
	assert.Equal(t, constants.MsgMissingCredentials, result.Message)
}

/*
TestFilter_BearerToken verifies the token path end to end: a valid token
binds the principal, an invalid one terminates with the canonical message
even on a public route.
*/
func TestFilter_BearerToken(t *testing.T) {
	// 1. Valid token reaches the handler with the principal bound.
	request := httptest.NewRequest(http.MethodGet, "/anything", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer user-token")
	recorder := httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	result := decodeEnvelope(t, recorder)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "eric", data["username"])

	// 2. Invalid token is rejected even though /public requires nothing.
	request = httptest.NewRequest(http.MethodGet, "/public", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer forged")
	recorder = httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	result = decodeEnvelope(t, recorder)
	assert.Equal(t, constants.MsgInvalidToken, result.Message)
}

/*
TestFilter_BasicCredentials verifies the Basic path: well-formed credentials
authenticate, wrong ones produce the shared bad-credentials message.
*/
func TestFilter_BasicCredentials(t *testing.T) {
	encode := func(pair string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(pair))
	}

	// 1. Correct credentials
	request := httptest.NewRequest(http.MethodGet, "/anything", nil)
	request.Header.Set(constants.HeaderAuthorization, encode("admin:PassW0rd"))
	recorder := httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 2. Wrong password
	request = httptest.NewRequest(http.MethodGet, "/anything", nil)
	request.Header.Set(constants.HeaderAuthorization, encode("admin:wrong"))
	recorder = httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, constants.MsgBadCredentials, decodeEnvelope(t, recorder).Message)

	// 3. Undecodable payload
	request = httptest.NewRequest(http.MethodGet, "/anything", nil)
	request.Header.Set(constants.HeaderAuthorization, "Basic %%%not-base64%%%")
	recorder = httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, constants.MsgMissingCredentials, decodeEnvelope(t, recorder).Message)
}

/*
TestFilter_RoleEnforcement verifies 403 for an authenticated principal
missing the required role, and pass-through when it holds it.
*/
func TestFilter_RoleEnforcement(t *testing.T) {
	// 1. ROLE_USER on an admin route — authenticated but denied.
	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer user-token")
	recorder := httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, constants.MsgAccessDenied, decodeEnvelope(t, recorder).Message)

	// 2. ROLE_ADMIN passes.
	request = httptest.NewRequest(http.MethodGet, "/admin", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer admin-token")
	recorder = httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestFilter_UnnormalizedAdminPath verifies that an un-normalized spelling of
an admin route is still held to the admin rule: "//admin" must produce the
same 403 for a plain user as "/admin" does, never a pass-through.
*/
func TestFilter_UnnormalizedAdminPath(t *testing.T) {
	for _, target := range []string{"//admin", "/./admin", "/admin/../admin"} {
		request := httptest.NewRequest(http.MethodGet, target, nil)
		request.Header.Set(constants.HeaderAuthorization, "Bearer user-token")
		recorder := httptest.NewRecorder()

		newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code, "path %q must hit the admin rule", target)
		assert.Equal(t, constants.MsgAccessDenied, decodeEnvelope(t, recorder).Message)
	}
}

/*
TestFilter_UnknownScheme verifies that an unsupported Authorization scheme is
treated as missing credentials rather than silently ignored.
*/
func TestFilter_UnknownScheme(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/public", nil)
	request.Header.Set(constants.HeaderAuthorization, "Digest abcdef")
	recorder := httptest.NewRecorder()

	newFilterChain(filterTestPolicy()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, constants.MsgMissingCredentials, decodeEnvelope(t, recorder).Message)
}
