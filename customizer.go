// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"

	"go.uber.org/zap"

	"github.com/odeyalo/kyrie/internal/consts"
)

// TokenCustomizer augments a minted token's response with additional named
// parameters. Customizers receive the original token read-only and record
// their contributions on the builder.
type TokenCustomizer interface {
	CustomizeToken(ctx context.Context, request *AuthorizationRequest, token Token, builder *CombinedToken) error
}

// TokenCustomizerRegistry holds the customizers in invocation order. It is
// assembled once at construction; there is no runtime registration.
type TokenCustomizerRegistry struct {
	customizers []TokenCustomizer
}

func NewTokenCustomizerRegistry(customizers ...TokenCustomizer) *TokenCustomizerRegistry {
	return &TokenCustomizerRegistry{customizers: customizers}
}

// Customizers returns the registered customizers in invocation order.
func (r *TokenCustomizerRegistry) Customizers() []TokenCustomizer {
	return r.customizers
}

// RefreshTokenIssuer mints a refresh token for a client. Implemented by the
// refresh token provider in handler/oauth2.
type RefreshTokenIssuer interface {
	IssueRefreshToken(ctx context.Context, clientID string, scopes Arguments) (*RefreshToken, error)
}

// RefreshTokenCustomizer contributes a 'refresh_token' parameter whenever the
// primary artifact is an access token. Only the token value is exposed; the
// refresh token's lifetime stays server-side.
type RefreshTokenCustomizer struct {
	Issuer RefreshTokenIssuer
	Logger *zap.Logger
}

func (c *RefreshTokenCustomizer) CustomizeToken(ctx context.Context, request *AuthorizationRequest, token Token, builder *CombinedToken) error {
	accessToken, ok := token.(*AccessToken)
	if !ok {
		return nil
	}

	refreshToken, err := c.Issuer.IssueRefreshToken(ctx, request.ClientID, accessToken.ScopeArguments())
	if err != nil {
		return err
	}

	if c.Logger != nil {
		c.Logger.Debug("issued refresh token", zap.String("client_id", request.ClientID))
	}

	builder.AddExtra(consts.FormParameterRefreshToken, refreshToken.TokenValue)

	return nil
}
