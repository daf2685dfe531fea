// Copyright (c) 2026 Smile. All rights reserved.

package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/ctxutil"
	"github.com/smilehq/smile-api/internal/platform/respond"
	"github.com/smilehq/smile-api/internal/platform/sec"
	"github.com/smilehq/smile-api/internal/users/user"
)

func newTestRouter() (chi.Router, *user.Service) {
	service := user.NewService(newFakeRepository())
	handler := user.NewHandler(service)
	router := chi.NewRouter()
	router.Route("/users", handler.Register)
	return router, service
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func envelope(t *testing.T, recorder *httptest.ResponseRecorder) respond.Result {
	t.Helper()
	var result respond.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}

/*
TestHandler_Create verifies registration end to end through the router,
including the envelope shape and password omission.
*/
func TestHandler_Create(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doJSON(router, http.MethodPost, "/users",
		`{"username":"eric","email":"eric@smile.app","password":"PassW0rd"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	result := envelope(t, recorder)
	assert.True(t, result.Flag)
	assert.Equal(t, "Create user success", result.Message)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, "eric", data["username"])
	assert.Equal(t, "eric", data["nickname"])
	assert.Equal(t, constants.RoleUser, data["roles"])
	assert.NotContains(t, data, "passwordHash")
	assert.NotContains(t, data, "password")
}

/*
TestHandler_Create_Validation verifies the 400 envelope carries the
field->message map and the canonical validation message.
*/
func TestHandler_Create_Validation(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doJSON(router, http.MethodPost, "/users",
		`{"username":"ab","email":"not-an-email","password":"weak"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	result := envelope(t, recorder)
	assert.False(t, result.Flag)
	assert.Equal(t, "Provided arguments are invalid, set data for details", result.Message)

	fields := result.Data.(map[string]interface{})
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

/*
TestHandler_Create_MalformedJSON verifies undecodable bodies fail with 400
instead of panicking or half-creating an account.
*/
func TestHandler_Create_MalformedJSON(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doJSON(router, http.MethodPost, "/users", `{"username": `)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, envelope(t, recorder).Flag)
}

/*
TestHandler_CurrentUser verifies the principal-to-profile resolution and the
anonymous 401.
*/
func TestHandler_CurrentUser(t *testing.T) {
	router, service := newTestRouter()

	created, err := service.Create(context.Background(), user.CreateInput{
		Username: "eric", Email: "eric@smile.app", Password: "PassW0rd",
	})
	require.NoError(t, err)

	// 1. With a bound principal.
	principal := &sec.Principal{Username: created.Username, Roles: []string{constants.RoleUser}, Enabled: true}
	request := httptest.NewRequest(http.MethodGet, "/users/current_user", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	result := envelope(t, recorder)
	assert.Equal(t, "Retrieve current user success", result.Message)
	assert.Equal(t, "eric", result.Data.(map[string]interface{})["username"])

	// 2. Anonymous — the handler answers the canonical 401 itself.
	request = httptest.NewRequest(http.MethodGet, "/users/current_user", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, constants.MsgMissingCredentials, envelope(t, recorder).Message)
}

/*
TestHandler_FindByID verifies the not-found envelope carries the ID-specific
message, and a non-numeric ID fails validation.
*/
func TestHandler_FindByID(t *testing.T) {
	router, _ := newTestRouter()

	// 1. Missing account
	recorder := doJSON(router, http.MethodGet, "/users/42", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Not found user with ID: 42", envelope(t, recorder).Message)

	// 2. Non-numeric ID
	recorder = doJSON(router, http.MethodGet, "/users/abc", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_UpdateDelete verifies the admin mutation endpoints through the
router.
*/
func TestHandler_UpdateDelete(t *testing.T) {
	router, service := newTestRouter()

	created, err := service.Create(context.Background(), user.CreateInput{
		Username: "eric", Email: "eric@smile.app", Password: "PassW0rd",
	})
	require.NoError(t, err)

	// 1. Update profile fields.
	recorder := doJSON(router, http.MethodPut, "/users/1",
		`{"username":"eric","nickname":"Eric","email":"eric@smile.app","roles":"ROLE_ADMIN ROLE_USER","enabled":true}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	result := envelope(t, recorder)
	assert.Equal(t, "Update user success", result.Message)
	assert.Equal(t, "ROLE_ADMIN ROLE_USER", result.Data.(map[string]interface{})["roles"])

	// 2. Delete, then confirm gone.
	recorder = doJSON(router, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Delete user success", envelope(t, recorder).Message)

	_, err = service.FindByID(context.Background(), created.ID)
	assert.Error(t, err)
}
