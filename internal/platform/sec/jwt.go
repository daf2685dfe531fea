// Copyright (c) 2026 Smile. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// authenticator and the access-control middleware.
package sec

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/constants"
)

// rsaKeyBits is the size of the signing key pair generated at startup.
const rsaKeyBits = 2048

// AccessClaims represents the payload embedded inside an access token.
//
// # Why custom claims?
//
// By embedding the space-joined role tokens directly inside the JWT, the
// access-control filter can rebuild the active [Principal] WITHOUT querying
// the database on every single API request. The tradeoff is a staleness
// window: role changes only take effect once the token expires.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Authorities carries the principal's role tokens, space-joined.
	Authorities string `json:"authorities"`
}

// TokenService signs and verifies compact bearer tokens using RS256.
//
// The key pair is generated once at process startup and never mutated, so
// sign/verify are safe for unsynchronized concurrent use. Asymmetric signing
// keeps verification distributable (the public key can be shared with other
// stateless instances) without ever moving the signing secret.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	lifetime   time.Duration

	// now is the clock used for issuance and expiry checks. Tests override it.
	now func() time.Time
}

// NewTokenService generates a fresh RSA-2048 key pair and returns a ready
// codec. Tokens signed by a previous process are invalid after a restart;
// clients simply re-authenticate.
func NewTokenService(lifetime time.Duration) (*TokenService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to generate signing key pair: %w", err)
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     constants.TokenIssuer,
		lifetime:   lifetime,
		now:        time.Now,
	}, nil
}

// WithClock replaces the codec's time source. It exists for tests that need
// to walk a token across its expiry boundary; production code never calls it.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

// PublicKey returns the verification half of the key pair.
func (service *TokenService) PublicKey() *rsa.PublicKey {
	return service.publicKey
}

// IssueToken creates a signed access token for an authenticated principal.
//
// The claim set is {iss, sub = username, iat = now, exp = now + lifetime,
// authorities = space-joined roles}. Role ordering in the input is irrelevant;
// the round-tripped role set is the same.
func (service *TokenService) IssueToken(username string, roles []string) (string, error) {
	currentTime := service.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.lifetime)),
		},
		Authorities: JoinRoles(roles),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string.
//
// Every failure — malformed segments, bad signature, wrong algorithm, wrong
// issuer, expiry — collapses into the single [apperr.InvalidToken] category.
// The response must not disclose which check rejected the token.
func (service *TokenService) VerifyToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return nil, apperr.InvalidToken()
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, apperr.InvalidToken()
	}

	return claims, nil
}

// PrincipalFromClaims rebuilds the request principal from verified claims.
//
// Tokens are only ever issued to enabled accounts, so the rebuilt principal
// is enabled by construction.
func PrincipalFromClaims(claims *AccessClaims) *Principal {
	return &Principal{
		Username: claims.Subject,
		Roles:    ParseRoles(claims.Authorities),
		Enabled:  true,
	}
}
