// Copyright (c) 2026 Smile. All rights reserved.

/*
Package auth implements authentication for the API.

It supports two credential paths with a common outcome, a [sec.Principal]:

  - Password: a login identifier (username, falling back to email) plus a
    plain-text password, verified against the stored bcrypt hash. Used by the
    Basic scheme on the login endpoint.
  - Token: a self-contained RS256 access token. Verification is purely
    cryptographic; the account store is never consulted, so a token stays
    valid for its whole lifetime even if the account changes underneath it.
*/
package auth

import (
	"context"
	"log/slog"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/sec"
	"github.com/smilehq/smile-api/internal/users/user"
)

// AccountStore is the slice of the account repository the authenticator
// needs: identifier resolution only.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// AttemptStore tracks consecutive password failures per login identifier.
// Implementations are best-effort: a throttle outage must not take the login
// path down with it.
type AttemptStore interface {
	// TooManyFailures reports whether the identifier is over the limit.
	TooManyFailures(ctx context.Context, login string) bool

	// RecordFailure bumps the identifier's failure counter.
	RecordFailure(ctx context.Context, login string)

	// Clear resets the identifier's failure counter after a success.
	Clear(ctx context.Context, login string)
}

// Service implements both authentication paths. It satisfies the access
// control filter's Authenticator contract.
type Service struct {
	accounts AccountStore
	tokens   *sec.TokenService
	attempts AttemptStore
	logger   *slog.Logger
}

// NewService constructs a new authentication [Service].
func NewService(accounts AccountStore, tokens *sec.TokenService, attempts AttemptStore, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		attempts: attempts,
		logger:   logger,
	}
}

/*
AuthenticateByPassword resolves the login identifier and verifies the
password against the stored hash.

Resolution tries the username first, then falls back to email, so a client
may present either in the Basic credential. The fallback fires only when the
username is genuinely absent: an infrastructure failure (database outage,
query error) propagates immediately and never counts as a throttle failure,
because a storage error says nothing about the credential. Failures are
deliberately indistinguishable to the caller where the API contract says so:
an unknown identifier and a wrong password both produce the same message.
The disabled check runs before the hash comparison so a locked account never
burns bcrypt cycles.
*/
func (service *Service) AuthenticateByPassword(ctx context.Context, login, password string) (*sec.Principal, error) {
	if login == "" || password == "" {
		return nil, apperr.MissingCredentials()
	}

	if service.attempts.TooManyFailures(ctx, login) {
		service.logger.Warn("login throttled", slog.String("login", login))
		return nil, apperr.BadCredentials()
	}

	account, err := service.accounts.FindByUsername(ctx, login)
	if apperr.IsNotFound(err) {
		account, err = service.accounts.FindByEmail(ctx, login)
	}
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, err
		}
		service.attempts.RecordFailure(ctx, login)
		return nil, apperr.UnknownIdentity()
	}

	if !account.Enabled {
		return nil, apperr.AccountDisabled()
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.attempts.RecordFailure(ctx, login)
		return nil, apperr.BadCredentials()
	}

	service.attempts.Clear(ctx, login)

	return &sec.Principal{
		Username: account.Username,
		Roles:    sec.ParseRoles(account.Roles),
		Enabled:  account.Enabled,
	}, nil
}

// AuthenticateByToken verifies an access token and materializes its claims
// as a principal. No store lookup happens on this path.
func (service *Service) AuthenticateByToken(ctx context.Context, token string) (*sec.Principal, error) {
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	return sec.PrincipalFromClaims(claims), nil
}

// IssueToken signs a fresh access token for an authenticated principal.
func (service *Service) IssueToken(principal *sec.Principal) (string, error) {
	return service.tokens.IssueToken(principal.Username, principal.Roles)
}
