// Copyright (c) 2026 Smile. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehq/smile-api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
the original plain text and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("PassW0rd")
	require.NoError(t, err)

	// bcrypt output is never the plain text.
	assert.NotEqual(t, "PassW0rd", hash)

	assert.True(t, sec.CheckPasswordHash("PassW0rd", hash))
	assert.False(t, sec.CheckPasswordHash("passw0rd", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_UniqueSalts verifies that hashing the same password twice
produces different digests.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("PassW0rd")
	require.NoError(t, err)

	second, err := sec.HashPassword("PassW0rd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestCheckPasswordHash_Garbage verifies the check fails closed on malformed
stored hashes.
*/
func TestCheckPasswordHash_Garbage(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("PassW0rd", ""))
	assert.False(t, sec.CheckPasswordHash("PassW0rd", "not-a-bcrypt-hash"))
}
