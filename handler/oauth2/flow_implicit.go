// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
)

// ImplicitFlowHandler serves 'response_type=token'. The access token is the
// only artifact; it is delivered straight in the redirect fragment with no
// token endpoint round trip.
type ImplicitFlowHandler struct {
	AccessTokens AccessTokenIssuer
}

var _ kyrie.FlowHandler = (*ImplicitFlowHandler)(nil)

func NewImplicitFlowHandler(accessTokens AccessTokenIssuer) *ImplicitFlowHandler {
	return &ImplicitFlowHandler{AccessTokens: accessTokens}
}

func (h *ImplicitFlowHandler) HandleFlow(ctx context.Context, request *kyrie.AuthorizationRequest, user kyrie.User) (kyrie.Token, error) {
	token, err := h.AccessTokens.GenerateAccessToken(ctx, user, request.Scopes)
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (h *ImplicitFlowHandler) FlowName() string {
	return consts.GrantTypeImplicit
}
