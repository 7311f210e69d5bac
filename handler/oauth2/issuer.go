// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"

	"github.com/odeyalo/kyrie"
)

// AccessTokenIssuer mints access tokens for an authenticated user. The JWT
// implementation lives in token/jwt.
type AccessTokenIssuer interface {
	GenerateAccessToken(ctx context.Context, user kyrie.User, scopes kyrie.Arguments) (*kyrie.AccessToken, error)
}

// IDTokenIssuer mints OpenID Connect ID tokens audienced to a client.
type IDTokenIssuer interface {
	GenerateIDToken(ctx context.Context, clientID string, user kyrie.User, additionalClaims map[string]any) (*kyrie.AccessToken, error)
}
