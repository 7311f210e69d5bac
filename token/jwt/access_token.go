// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package jwt

import (
	"context"
	"strings"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
)

// AccessTokenGenerator mints bearer access tokens carrying the granted scopes
// in a 'scope' claim.
type AccessTokenGenerator struct {
	Provider *SecretWordProvider
}

func NewAccessTokenGenerator(provider *SecretWordProvider) *AccessTokenGenerator {
	return &AccessTokenGenerator{Provider: provider}
}

func (g *AccessTokenGenerator) GenerateAccessToken(ctx context.Context, user kyrie.User, scopes kyrie.Arguments) (*kyrie.AccessToken, error) {
	scope := strings.Join(scopes, " ")

	meta, err := g.Provider.Generate(ctx, user, Claims{Scope: scope})
	if err != nil {
		return nil, err
	}

	return &kyrie.AccessToken{
		TokenValue: meta.Token,
		TokenType:  consts.TokenTypeBearer,
		Scope:      scope,
		IssuedAt:   meta.IssuedAt,
		ExpiresAt:  meta.ExpiresAt,
	}, nil
}

// IntrospectAccessToken resolves a presented token value back to an access
// token. Unknown or tampered tokens yield kyrie.ErrNotFound so the caller can
// render the non-active introspection sentinel; expired but well-formed
// tokens come back with their stored expiry so the assembler renders
// {"active": false}.
func (g *AccessTokenGenerator) IntrospectAccessToken(ctx context.Context, value string) (*kyrie.AccessToken, error) {
	meta, err := g.Provider.Parse(ctx, value)
	if err != nil {
		return nil, kyrie.ErrNotFound.WithWrap(err)
	}

	return &kyrie.AccessToken{
		TokenValue: meta.Token,
		TokenType:  consts.TokenTypeBearer,
		Scope:      meta.Scope,
		IssuedAt:   meta.IssuedAt,
		ExpiresAt:  meta.ExpiresAt,
	}, nil
}
