// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

// Package jwt mints and verifies the JSON Web Tokens used as access tokens
// and OpenID Connect ID tokens. Tokens are signed with HMAC-SHA256 over a
// shared secret word.
package jwt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/google/uuid"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// Claims is the claim set carried by every token this provider mints.
type Claims struct {
	jwt.RegisteredClaims

	Scope    string `json:"scope,omitempty"`
	Username string `json:"username,omitempty"`
	AuthTime int64  `json:"auth_time,omitempty"`

	// Extra carries additional identity attributes, flattened by the OIDC
	// generator into the ID token body.
	Extra map[string]any `json:"-"`
}

// Metadata describes a parsed or freshly minted token.
type Metadata struct {
	Token     string
	Subject   string
	Scope     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SecretWordProvider signs and verifies tokens with a single shared secret.
type SecretWordProvider struct {
	signer   jwt.Signer
	verifier jwt.Verifier
	config   interface {
		kyrie.AccessTokenLifespanProvider
	}
}

// NewSecretWordProvider builds a provider for the given secret word.
func NewSecretWordProvider(secret []byte, config interface {
	kyrie.AccessTokenLifespanProvider
}) (*SecretWordProvider, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, secret)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	verifier, err := jwt.NewVerifierHS(jwt.HS256, secret)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	return &SecretWordProvider{signer: signer, verifier: verifier, config: config}, nil
}

// Generate mints a token for the user with the given claims, expiring after
// the configured access token lifespan. A unique 'jti' and the 'iat'/'exp'
// pair are always set.
func (p *SecretWordProvider) Generate(ctx context.Context, user kyrie.User, claims Claims) (*Metadata, error) {
	return p.GenerateWithLifespan(ctx, user, claims, p.config.GetAccessTokenLifespan(ctx))
}

// GenerateWithLifespan mints a token with an explicit lifespan, e.g. the ID
// token lifespan for OpenID Connect tokens.
func (p *SecretWordProvider) GenerateWithLifespan(_ context.Context, user kyrie.User, claims Claims, lifespan time.Duration) (*Metadata, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(lifespan)

	claims.ID = uuid.New().String()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	if claims.Subject == "" {
		claims.Subject = user.ID
	}

	if claims.Username == "" {
		claims.Username = user.Username
	}

	body, err := p.marshalClaims(claims)
	if err != nil {
		return nil, err
	}

	token, err := jwt.NewBuilder(p.signer).Build(body)
	if err != nil {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebug(err.Error()))
	}

	return &Metadata{
		Token:     token.String(),
		Subject:   claims.Subject,
		Scope:     claims.Scope,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate verifies the signature and expiry of a presented token.
func (p *SecretWordProvider) Validate(_ context.Context, raw string) error {
	token, err := jwt.Parse([]byte(raw), p.verifier)
	if err != nil {
		return errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The token signature is invalid or the token is malformed.").WithWrap(err))
	}

	var claims jwt.RegisteredClaims
	if err = json.Unmarshal(token.Claims(), &claims); err != nil {
		return errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The token claims are malformed.").WithWrap(err))
	}

	if !claims.IsValidAt(time.Now().UTC()) {
		return errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The token is expired."))
	}

	return nil
}

// Parse verifies the token and returns its metadata.
func (p *SecretWordProvider) Parse(_ context.Context, raw string) (*Metadata, error) {
	token, err := jwt.Parse([]byte(raw), p.verifier)
	if err != nil {
		return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The token signature is invalid or the token is malformed.").WithWrap(err))
	}

	var claims Claims
	if err = json.Unmarshal(token.Claims(), &claims); err != nil {
		return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The token claims are malformed.").WithWrap(err))
	}

	meta := &Metadata{
		Token:   raw,
		Subject: claims.Subject,
		Scope:   claims.Scope,
	}

	if claims.IssuedAt != nil {
		meta.IssuedAt = claims.IssuedAt.Time
	}

	if claims.ExpiresAt != nil {
		meta.ExpiresAt = claims.ExpiresAt.Time
	}

	return meta, nil
}

// marshalClaims flattens Extra into the claim body.
func (p *SecretWordProvider) marshalClaims(claims Claims) (json.RawMessage, error) {
	base, err := json.Marshal(claims)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	if len(claims.Extra) == 0 {
		return base, nil
	}

	var merged map[string]any
	if err = json.Unmarshal(base, &merged); err != nil {
		return nil, errorsx.WithStack(err)
	}

	for key, value := range claims.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}

	if base, err = json.Marshal(merged); err != nil {
		return nil, errorsx.WithStack(err)
	}

	return base, nil
}
