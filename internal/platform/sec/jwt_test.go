// Copyright (c) 2026 Smile. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that an issued token verifies against the
same service and carries the subject, issuer, and authorities claims intact.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(2 * time.Hour)
	require.NoError(t, err)

	token, err := service.IssueToken("admin", []string{"ROLE_ADMIN", "ROLE_USER"})
	require.NoError(t, err)

	// Compact serialization is always three dot-separated segments.
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, constants.TokenIssuer, claims.Issuer)
	assert.Equal(t, "ROLE_ADMIN ROLE_USER", claims.Authorities)
}

/*
TestTokenService_ExpiryBoundary verifies tokens are accepted just inside the
lifetime and rejected just past it.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 2 * time.Hour

	service, err := sec.NewTokenService(lifetime)
	require.NoError(t, err)
	service.WithClock(func() time.Time { return issuedAt })

	token, err := service.IssueToken("admin", []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	// 1. One second before expiry — still valid.
	service.WithClock(func() time.Time { return issuedAt.Add(lifetime - time.Second) })
	_, err = service.VerifyToken(token)
	assert.NoError(t, err)

	// 2. One second past expiry — rejected with the uniform token failure.
	service.WithClock(func() time.Time { return issuedAt.Add(lifetime + time.Second) })
	_, err = service.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, constants.MsgInvalidToken, err.Error())
}

/*
TestTokenService_TamperedToken verifies that a modified payload fails
signature verification with the uniform token failure.
*/
func TestTokenService_TamperedToken(t *testing.T) {
	service, err := sec.NewTokenService(time.Hour)
	require.NoError(t, err)

	token, err := service.IssueToken("user", []string{"ROLE_USER"})
	require.NoError(t, err)

	// Flip a character inside the payload segment.
	segments := strings.Split(token, ".")
	payload := []byte(segments[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := segments[0] + "." + string(payload) + "." + segments[2]

	_, err = service.VerifyToken(tampered)
	require.Error(t, err)
	assert.Equal(t, constants.MsgInvalidToken, err.Error())
}

/*
TestTokenService_ForeignKey verifies that a token signed by another key pair
is rejected: each process instance only trusts tokens it issued itself.
*/
func TestTokenService_ForeignKey(t *testing.T) {
	issuingService, err := sec.NewTokenService(time.Hour)
	require.NoError(t, err)

	verifyingService, err := sec.NewTokenService(time.Hour)
	require.NoError(t, err)

	token, err := issuingService.IssueToken("admin", []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	_, err = verifyingService.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, apperr.IsAppError(err))
}

/*
TestTokenService_Garbage verifies that non-JWT input collapses into the same
uniform failure as every other rejection.
*/
func TestTokenService_Garbage(t *testing.T) {
	service, err := sec.NewTokenService(time.Hour)
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := service.VerifyToken(input)
		require.Error(t, err, "input %q must be rejected", input)
		assert.Equal(t, constants.MsgInvalidToken, err.Error())
	}
}

/*
TestPrincipalFromClaims verifies the claims-to-principal mapping, including
the enabled-by-construction property of token principals.
*/
func TestPrincipalFromClaims(t *testing.T) {
	service, err := sec.NewTokenService(time.Hour)
	require.NoError(t, err)

	token, err := service.IssueToken("admin", []string{"ROLE_ADMIN", "ROLE_USER"})
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	principal := sec.PrincipalFromClaims(claims)
	assert.Equal(t, "admin", principal.Username)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, principal.Roles)
	assert.True(t, principal.Enabled)
	assert.True(t, principal.HasRole("ROLE_ADMIN"))
	assert.False(t, principal.HasRole("ROLE_SUPER"))
}
