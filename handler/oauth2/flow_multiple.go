// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"
	"time"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
)

// MultipleResponseTypeFlowHandler serves hybrid requests carrying two or more
// response types, e.g. 'code token' or 'code token id_token'. Each requested
// response type contributes exactly one artifact to the combined result; a
// failure to mint any of them fails the whole flow.
type MultipleResponseTypeFlowHandler struct {
	Codes        AuthorizationCodeProvider
	AccessTokens AccessTokenIssuer
	IDTokens     IDTokenIssuer
}

var _ kyrie.FlowHandler = (*MultipleResponseTypeFlowHandler)(nil)

func NewMultipleResponseTypeFlowHandler(codes AuthorizationCodeProvider, accessTokens AccessTokenIssuer, idTokens IDTokenIssuer) *MultipleResponseTypeFlowHandler {
	return &MultipleResponseTypeFlowHandler{Codes: codes, AccessTokens: accessTokens, IDTokens: idTokens}
}

func (h *MultipleResponseTypeFlowHandler) HandleFlow(ctx context.Context, request *kyrie.AuthorizationRequest, user kyrie.User) (kyrie.Token, error) {
	combined := kyrie.NewCombinedToken()

	if request.HasResponseType(kyrie.ResponseTypeToken) {
		accessToken, err := h.AccessTokens.GenerateAccessToken(ctx, user, request.Scopes)
		if err != nil {
			return nil, err
		}

		combined.SetAccessToken(accessToken, time.Now().UTC())
	}

	if request.HasResponseType(kyrie.ResponseTypeCode) {
		code, err := h.Codes.GenerateAuthorizationCode(ctx, user, request.Scopes)
		if err != nil {
			return nil, err
		}

		combined.AddExtra(consts.FormParameterCode, code.CodeValue)
	}

	if request.HasResponseType(kyrie.ResponseTypeIDToken) {
		idToken, err := h.IDTokens.GenerateIDToken(ctx, request.ClientID, user, nil)
		if err != nil {
			return nil, err
		}

		combined.AddExtra(consts.FormParameterIDToken, idToken.TokenValue)
	}

	return combined, nil
}

func (h *MultipleResponseTypeFlowHandler) FlowName() string {
	return consts.GrantTypeMultiple
}
