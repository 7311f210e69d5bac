// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
)

// AuthorizationCodeFlowHandler serves 'response_type=code'. It mints a
// single-use authorization code; access tokens are only issued later, at the
// token endpoint exchange.
type AuthorizationCodeFlowHandler struct {
	Codes AuthorizationCodeProvider
}

var _ kyrie.FlowHandler = (*AuthorizationCodeFlowHandler)(nil)

func NewAuthorizationCodeFlowHandler(codes AuthorizationCodeProvider) *AuthorizationCodeFlowHandler {
	return &AuthorizationCodeFlowHandler{Codes: codes}
}

func (h *AuthorizationCodeFlowHandler) HandleFlow(ctx context.Context, request *kyrie.AuthorizationRequest, user kyrie.User) (kyrie.Token, error) {
	code, err := h.Codes.GenerateAuthorizationCode(ctx, user, request.Scopes)
	if err != nil {
		return nil, err
	}

	return code, nil
}

func (h *AuthorizationCodeFlowHandler) FlowName() string {
	return consts.GrantTypeAuthorizationCode
}
