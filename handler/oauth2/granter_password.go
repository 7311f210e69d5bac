// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"
	"time"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// PasswordAccessTokenGranter implements the resource owner password
// credentials grant. Credential verification is delegated to the
// authentication service; the granter only orchestrates and emits the
// login events.
type PasswordAccessTokenGranter struct {
	Clients      kyrie.ClientManager
	Users        kyrie.UserAuthenticationService
	AccessTokens AccessTokenIssuer
	Events       kyrie.EventPublisher
}

var _ kyrie.AccessTokenGranter = (*PasswordAccessTokenGranter)(nil)

func NewPasswordAccessTokenGranter(clients kyrie.ClientManager, users kyrie.UserAuthenticationService, accessTokens AccessTokenIssuer, events kyrie.EventPublisher) *PasswordAccessTokenGranter {
	return &PasswordAccessTokenGranter{Clients: clients, Users: users, AccessTokens: accessTokens, Events: events}
}

func (g *PasswordAccessTokenGranter) GrantAccessToken(ctx context.Context, request *kyrie.TokenRequest) (*kyrie.AccessToken, error) {
	if _, err := authenticateClient(ctx, g.Clients, request); err != nil {
		return nil, err
	}

	username := request.Parameters[consts.FormParameterUsername]
	if username == "" {
		return nil, errorsx.WithStack(kyrie.ErrInvalidRequest.WithHint("Request parameter 'username' is missing."))
	}

	password := request.Parameters[consts.FormParameterPassword]
	if password == "" {
		return nil, errorsx.WithStack(kyrie.ErrInvalidRequest.WithHint("Request parameter 'password' is missing."))
	}

	if len(request.Scopes) == 0 {
		return nil, errorsx.WithStack(kyrie.ErrInvalidScope.WithHint("Request parameter 'scope' is missing."))
	}

	user, err := g.Users.Authenticate(ctx, username, password)
	if err != nil {
		g.Events.Publish(ctx, kyrie.NewLoginFailedEvent(username, time.Now().UTC()))

		return nil, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The resource owner credentials are invalid."))
	}

	g.Events.Publish(ctx, kyrie.NewLoginGrantedEvent(user, time.Now().UTC()))

	return g.AccessTokens.GenerateAccessToken(ctx, user, request.Scopes)
}

func (g *PasswordAccessTokenGranter) GrantType() kyrie.GrantType {
	return kyrie.GrantTypePassword
}
