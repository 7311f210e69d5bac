// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package jwt

import (
	"context"
	"time"

	"github.com/cristalhq/jwt/v4"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// IDTokenGenerator mints OpenID Connect ID tokens.
//
// See: https://openid.net/specs/openid-connect-core-1_0.html#IDToken.
type IDTokenGenerator struct {
	Provider *SecretWordProvider
	Config   interface {
		kyrie.IDTokenIssuerProvider
		kyrie.IDTokenLifespanProvider
	}
}

func NewIDTokenGenerator(provider *SecretWordProvider, config interface {
	kyrie.IDTokenIssuerProvider
	kyrie.IDTokenLifespanProvider
}) *IDTokenGenerator {
	return &IDTokenGenerator{Provider: provider, Config: config}
}

// GenerateIDToken mints an ID token for the user, audienced to the client.
// Additional claims take precedence over the user's additional info.
func (g *IDTokenGenerator) GenerateIDToken(ctx context.Context, clientID string, user kyrie.User, additionalClaims map[string]any) (*kyrie.AccessToken, error) {
	if clientID == "" {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithDebug("An ID token requires a client id audience."))
	}

	extra := make(map[string]any, len(user.AdditionalInfo)+len(additionalClaims))
	for key, value := range user.AdditionalInfo {
		extra[key] = value
	}

	for key, value := range additionalClaims {
		extra[key] = value
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   g.Config.GetIDTokenIssuer(ctx),
			Subject:  user.ID,
			Audience: jwt.Audience{clientID},
		},
		AuthTime: time.Now().UTC().Unix(),
		Extra:    extra,
	}

	meta, err := g.Provider.GenerateWithLifespan(ctx, user, claims, g.Config.GetIDTokenLifespan(ctx))
	if err != nil {
		return nil, err
	}

	return &kyrie.AccessToken{
		TokenValue: meta.Token,
		IssuedAt:   meta.IssuedAt,
		ExpiresAt:  meta.ExpiresAt,
	}, nil
}
