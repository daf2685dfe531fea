// Copyright (c) 2026 Smile. All rights reserved.

package sec

import "strings"

// # Principal

// Principal is the runtime identity derived from an account after a
// successful authentication.
//
// It is created per-request by the authenticator (password path) or rebuilt
// from token claims (bearer path), never persisted, and discarded with the
// request context.
type Principal struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Enabled  bool     `json:"enabled"`
}

// HasRole reports whether the principal was granted the exact role token.
//
// Comparison is exact-string and case-sensitive; a partial or prefix match is
// not authorization.
func (p *Principal) HasRole(role string) bool {
	for _, granted := range p.Roles {
		if granted == role {
			return true
		}
	}
	return false
}

// # Role String Codec
//
// Roles are stored on the account and carried in token claims as a single
// space-delimited string, e.g. "ROLE_ADMIN ROLE_USER".

// ParseRoles splits a space-delimited role string into individual role tokens.
// Empty tokens produced by repeated or surrounding spaces are discarded.
func ParseRoles(roles string) []string {
	parsed := make([]string, 0, 2)
	for _, token := range strings.Split(roles, " ") {
		if token != "" {
			parsed = append(parsed, token)
		}
	}
	return parsed
}

// JoinRoles renders role tokens back into the space-delimited wire form.
func JoinRoles(roles []string) string {
	return strings.Join(roles, " ")
}
