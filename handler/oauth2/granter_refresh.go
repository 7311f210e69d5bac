// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"
	"errors"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// RefreshTokenAccessTokenGranter exchanges a live refresh token for a fresh
// access token and rotates the refresh token in the process. The presented
// token is deactivated, never deleted, so a replay is distinguishable from a
// token that never existed.
type RefreshTokenAccessTokenGranter struct {
	Clients       kyrie.ClientManager
	Storage       RefreshTokenStorage
	RefreshTokens *OpaqueRefreshTokenProvider
	AccessTokens  AccessTokenIssuer
}

var _ kyrie.AccessTokenGranter = (*RefreshTokenAccessTokenGranter)(nil)

func NewRefreshTokenAccessTokenGranter(clients kyrie.ClientManager, storage RefreshTokenStorage, refreshTokens *OpaqueRefreshTokenProvider, accessTokens AccessTokenIssuer) *RefreshTokenAccessTokenGranter {
	return &RefreshTokenAccessTokenGranter{Clients: clients, Storage: storage, RefreshTokens: refreshTokens, AccessTokens: accessTokens}
}

func (g *RefreshTokenAccessTokenGranter) GrantAccessToken(ctx context.Context, request *kyrie.TokenRequest) (*kyrie.AccessToken, error) {
	if _, err := authenticateClient(ctx, g.Clients, request); err != nil {
		return nil, err
	}

	value := request.Parameters[consts.FormParameterRefreshToken]
	if value == "" {
		return nil, errorsx.WithStack(kyrie.ErrInvalidRequest.WithHint("Request parameter 'refresh_token' is missing."))
	}

	presented, err := g.Storage.GetRefreshTokenByValue(ctx, value)
	if err != nil {
		if errors.Is(err, kyrie.ErrNotFound) {
			return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The refresh token was never issued."))
		}

		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to look up the refresh token: %s.", err.Error()))
	}

	if presented.ClientID != request.ClientID {
		return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The refresh token was issued to a different client."))
	}

	if !presented.Active {
		return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The refresh token has been revoked."))
	}

	if _, err = g.RefreshTokens.RotateRefreshToken(ctx, presented); err != nil {
		return nil, err
	}

	// Refresh tokens are client-bound; the access token carries the
	// originally granted scopes and no resource owner subject.
	return g.AccessTokens.GenerateAccessToken(ctx, kyrie.User{}, presented.Scopes)
}

func (g *RefreshTokenAccessTokenGranter) GrantType() kyrie.GrantType {
	return kyrie.GrantTypeRefreshToken
}
