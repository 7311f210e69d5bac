// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"
	"errors"
	"time"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// AuthorizationCodeAccessTokenGranter redeems a single-use authorization code
// for an access token. The code is taken from storage atomically, so a second
// redemption of the same value always fails with invalid_grant.
type AuthorizationCodeAccessTokenGranter struct {
	Clients      kyrie.ClientManager
	Codes        AuthorizationCodeStorage
	AccessTokens AccessTokenIssuer
}

var _ kyrie.AccessTokenGranter = (*AuthorizationCodeAccessTokenGranter)(nil)

func NewAuthorizationCodeAccessTokenGranter(clients kyrie.ClientManager, codes AuthorizationCodeStorage, accessTokens AccessTokenIssuer) *AuthorizationCodeAccessTokenGranter {
	return &AuthorizationCodeAccessTokenGranter{Clients: clients, Codes: codes, AccessTokens: accessTokens}
}

func (g *AuthorizationCodeAccessTokenGranter) GrantAccessToken(ctx context.Context, request *kyrie.TokenRequest) (*kyrie.AccessToken, error) {
	if _, err := authenticateClient(ctx, g.Clients, request); err != nil {
		return nil, err
	}

	value := request.Parameters[consts.FormParameterCode]
	if value == "" {
		return nil, errorsx.WithStack(kyrie.ErrInvalidRequest.WithHint("Request parameter 'code' is missing."))
	}

	code, err := g.Codes.TakeAuthorizationCode(ctx, value)
	if err != nil {
		if errors.Is(err, kyrie.ErrNotFound) {
			return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The authorization code has already been redeemed or was never issued."))
		}

		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to look up the authorization code: %s.", err.Error()))
	}

	if kyrie.IsTokenExpired(code, time.Now().UTC()) {
		return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The authorization code has expired."))
	}

	return g.AccessTokens.GenerateAccessToken(ctx, code.User, code.Scopes)
}

func (g *AuthorizationCodeAccessTokenGranter) GrantType() kyrie.GrantType {
	return kyrie.GrantTypeAuthorizationCode
}
