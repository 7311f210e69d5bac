// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

// Package kyrie implements the authorization-flow core of an OAuth2/OpenID
// Connect authorization server: request validation, grant/response-type
// resolution, per-flow token issuance, redirect URL construction and wire
// response assembly. HTTP transport, templates, sessions and persistence are
// external collaborators consumed through the interfaces defined here.
package kyrie

import (
	"context"
)

// FlowHandler produces the right token artifact set for one grant type, given
// an authenticated user. Handlers never degrade to a partial result: any
// failure to mint an artifact surfaces as an error carrying the OAuth2 error
// kind.
type FlowHandler interface {
	// HandleFlow mints the artifacts for the request.
	HandleFlow(ctx context.Context, request *AuthorizationRequest, user User) (Token, error)

	// FlowName returns the grant name this handler serves.
	FlowName() string
}

// FlowHandlerFactory selects the flow handler for a resolved grant type.
type FlowHandlerFactory interface {
	GetHandler(grantType GrantType) (FlowHandler, error)
}

// TokenRequest is an inbound request to the token endpoint.
type TokenRequest struct {
	ClientID  string
	GrantType GrantType
	Scopes    Arguments

	// Parameters holds the original, unmodified request parameters, e.g.
	// 'code', 'refresh_token', 'username' and 'password'.
	Parameters map[string]string
}

// AccessTokenGranter exchanges a token request for an access token; one
// granter exists per grant type reachable through the token endpoint.
type AccessTokenGranter interface {
	// GrantAccessToken validates the request's grant and mints an access token.
	GrantAccessToken(ctx context.Context, request *TokenRequest) (*AccessToken, error)

	// GrantType returns the grant type this granter serves.
	GrantType() GrantType
}

// AccessTokenGranterFactory selects the granter for a token request.
type AccessTokenGranterFactory interface {
	GetGranter(request *TokenRequest) (AccessTokenGranter, error)
}

// UserAuthenticationService authenticates resource owner credentials for the
// password grant. The core consumes it; it never stores passwords itself.
type UserAuthenticationService interface {
	// Authenticate returns the user on success, or an error for bad credentials.
	Authenticate(ctx context.Context, username, password string) (User, error)
}
