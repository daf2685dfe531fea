// Copyright (c) 2026 Smile. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Token issuer, canonical auth failure messages, throttle limits.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "smile-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// TokenIssuer is the 'iss' claim placed into every access token.
	TokenIssuer = "self"

	// AuthoritiesClaim is the JWT claim carrying the space-joined role tokens.
	AuthoritiesClaim = "authorities"

	// DefaultTokenLifetimeHours is the access token lifetime when unset in config.
	DefaultTokenLifetimeHours = 2

	// LoginAttemptLimit is the number of consecutive password failures allowed
	// per login identifier before the throttle kicks in.
	LoginAttemptLimit = 10

	// LoginAttemptWindow is how long a failed-attempt counter lives in Redis.
	LoginAttemptWindow = 15 * time.Minute
)

// # Canonical Failure Messages
//
// These strings are part of the API contract. Clients match on them, so they
// must not drift between the middleware, the authenticator, and the handlers.

const (
	// MsgBadCredentials covers both unknown identities and wrong passwords so
	// the response never reveals whether the account exists.
	MsgBadCredentials = "username or password is incorrect"

	// MsgAccountDisabled is returned for a correct login against a disabled account.
	MsgAccountDisabled = "user account is abnormal"

	// MsgMissingCredentials is returned when a protected route is hit anonymously.
	MsgMissingCredentials = "username and password are mandatory"

	// MsgInvalidToken covers malformed, expired, and tampered tokens uniformly.
	MsgInvalidToken = "The access token provided is expired, revoked, malformed, or invalid for other reasons"

	// MsgAccessDenied is returned for an authenticated principal lacking the required role.
	MsgAccessDenied = "access denied"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Role Tokens

const (
	// RoleAdmin grants unrestricted access to the user-management surface.
	RoleAdmin = "ROLE_ADMIN"

	// RoleUser is the default role assigned at self-registration.
	RoleUser = "ROLE_USER"
)

// # Database Schemas

const (
	SchemaUsers = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixLoginAttempts = "auth:login_attempts:"
)

// # JSON Field Identifiers

const (
	FieldFlag    = "flag"
	FieldMessage = "message"
	FieldData    = "data"
	FieldToken   = "token"
	FieldUser    = "userInfo"
)
