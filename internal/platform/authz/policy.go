// Copyright (c) 2026 Smile. All rights reserved.

/*
Package authz defines the static authorization policy evaluated by the
access-control middleware.

The policy is an explicit, testable table mapping (method, path pattern) to
the access level a request must satisfy. It replaces the original system's
declarative route annotations with ordinary pattern matching: no reflection,
no interception framework, just a read-only slice walked per request.

# Concurrency

A Policy is built once at startup and never mutated afterwards, so it is safe
for unsynchronized concurrent reads from every request goroutine.
*/
package authz

import (
	"path"
	"strings"
)

// Access classifies what a matched route requires from the caller.
type Access int

const (
	// Public routes bypass authentication entirely.
	Public Access = iota

	// AnyAuthenticated routes require a bound principal, any role.
	AnyAuthenticated

	// RequiresRole routes require the principal to hold an exact role token.
	RequiresRole
)

// Rule binds one (method, path pattern) pair to an access classification.
//
// Patterns are either exact paths ("/api/v1/users") or wildcard-suffix
// patterns ("/api/v1/users/*") matching any deeper path. No other pattern
// syntax exists.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
	Role    string // set only when Access == RequiresRole
}

// Policy is the ordered, read-only rule table.
//
// Exact patterns always win over wildcard patterns regardless of declaration
// order; within each specificity class the first declared match wins.
type Policy struct {
	exact    []Rule
	wildcard []Rule
}

// NewPolicy splits the rule set by specificity and returns the immutable table.
func NewPolicy(rules []Rule) *Policy {
	policy := &Policy{}
	for _, rule := range rules {
		if strings.HasSuffix(rule.Pattern, "/*") {
			policy.wildcard = append(policy.wildcard, rule)
		} else {
			policy.exact = append(policy.exact, rule)
		}
	}
	return policy
}

// Decide returns the access requirement for a request.
//
// The request path is normalized (double slashes and dot segments collapsed)
// before matching, so "//api/v1/users" decides the same rule as
// "/api/v1/users" — an un-normalized path must never slip past an admin rule
// into the default. The router normalizes too, but the policy cannot depend
// on middleware ordering for its own correctness.
//
// Unmatched requests default to AnyAuthenticated — the table is never
// default-open.
func (p *Policy) Decide(method, requestPath string) Rule {
	requestPath = path.Clean(requestPath)

	for _, rule := range p.exact {
		if rule.Method == method && rule.Pattern == requestPath {
			return rule
		}
	}
	for _, rule := range p.wildcard {
		// Cleaning strips any trailing slash, so a wildcard's own base path
		// can never carry the "/"-terminated prefix and match here.
		prefix := strings.TrimSuffix(rule.Pattern, "*")
		if rule.Method == method && strings.HasPrefix(requestPath, prefix) {
			return rule
		}
	}
	return Rule{Method: method, Pattern: requestPath, Access: AnyAuthenticated}
}
