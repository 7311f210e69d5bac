// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"strings"
	"time"

	"github.com/odeyalo/kyrie/internal/consts"
)

// Token is the generic token artifact produced by a flow handler.
type Token interface {
	// GetTokenValue returns the wire value of the token.
	GetTokenValue() string

	// GetIssuedAt returns the instant the token was minted.
	GetIssuedAt() time.Time

	// GetExpiresAt returns the absolute expiry instant. A zero time means the
	// token does not expire.
	GetExpiresAt() time.Time
}

// IsTokenExpired compares the token's expiry against now. Expiry is enforced
// at read time; there is no scheduled eviction.
func IsTokenExpired(t Token, now time.Time) bool {
	exp := t.GetExpiresAt()

	return !exp.IsZero() && exp.Before(now)
}

// AccessToken is a minted OAuth2 access token.
type AccessToken struct {
	TokenValue string
	TokenType  string
	Scope      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

func (t *AccessToken) GetTokenValue() string {
	return t.TokenValue
}

func (t *AccessToken) GetIssuedAt() time.Time {
	return t.IssuedAt
}

func (t *AccessToken) GetExpiresAt() time.Time {
	return t.ExpiresAt
}

// ExpiresIn returns the remaining lifetime in whole seconds.
func (t *AccessToken) ExpiresIn(now time.Time) int64 {
	return int64(t.ExpiresAt.Sub(now) / time.Second)
}

// ScopeArguments splits the space-delimited scope string.
func (t *AccessToken) ScopeArguments() Arguments {
	return strings.Fields(t.Scope)
}

// AuthorizationCode is the single-use artifact of the authorization code flow.
// It is persisted keyed by its code value and consumed exactly once by the
// token exchange.
type AuthorizationCode struct {
	CodeValue string
	User      User
	Scopes    Arguments
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (c *AuthorizationCode) GetTokenValue() string {
	return c.CodeValue
}

func (c *AuthorizationCode) GetIssuedAt() time.Time {
	return c.IssuedAt
}

func (c *AuthorizationCode) GetExpiresAt() time.Time {
	return c.ExpiresAt
}

// RefreshToken is an opaque, revocable token bound to a client. Deactivation
// flips Active and re-persists the token; it never deletes the entry.
type RefreshToken struct {
	TokenValue string
	ClientID   string
	Scopes     Arguments
	Active     bool
}

// CombinedToken is the composite token result of the hybrid flow and the
// customizer chain. Extra holds additional named parameters keyed uniquely;
// the last writer of a key wins.
type CombinedToken struct {
	AccessToken

	Extra map[string]any
}

// NewCombinedToken returns an empty combined token ready for composition.
func NewCombinedToken() *CombinedToken {
	return &CombinedToken{Extra: make(map[string]any)}
}

// AddExtra records an additional named parameter, replacing any previous value
// for the key.
func (t *CombinedToken) AddExtra(key string, value any) {
	t.Extra[key] = value
}

// GetExtra returns the additional named parameter for key, or nil.
func (t *CombinedToken) GetExtra(key string) any {
	return t.Extra[key]
}

// SetAccessToken copies the primary access token into the combined result and
// mirrors its wire parameters into Extra.
func (t *CombinedToken) SetAccessToken(token *AccessToken, now time.Time) {
	t.TokenValue = token.TokenValue
	t.TokenType = token.TokenType
	t.Scope = token.Scope
	t.IssuedAt = token.IssuedAt
	t.ExpiresAt = token.ExpiresAt

	t.AddExtra(consts.FormParameterTokenType, token.TokenType)
	t.AddExtra(consts.FormParameterExpiresIn, token.ExpiresIn(now))
}
