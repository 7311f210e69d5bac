// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/errorsx"
	"github.com/odeyalo/kyrie/internal/randx"
)

// OpaqueRefreshTokenProvider issues opaque refresh tokens and manages
// their lifecycle. A client holds at most one live refresh token at a
// time; issuing a new one replaces the previous entry.
type OpaqueRefreshTokenProvider struct {
	Storage RefreshTokenStorage

	Config interface {
		kyrie.RefreshTokenLengthProvider
	}
}

var _ kyrie.RefreshTokenIssuer = (*OpaqueRefreshTokenProvider)(nil)

func (p *OpaqueRefreshTokenProvider) IssueRefreshToken(ctx context.Context, clientID string, scopes kyrie.Arguments) (*kyrie.RefreshToken, error) {
	value, err := randx.RuneSequence(p.Config.GetRefreshTokenLength(ctx), randx.AlphaNum)
	if err != nil {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to generate refresh token value: %s.", err.Error()))
	}

	token := &kyrie.RefreshToken{
		TokenValue: value,
		ClientID:   clientID,
		Scopes:     scopes,
		Active:     true,
	}

	if err = p.Storage.StoreRefreshToken(ctx, token); err != nil {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to persist the refresh token: %s.", err.Error()))
	}

	return token, nil
}

// RotateRefreshToken deactivates the presented token and issues a fresh
// one for the same client and scopes. The old value stays in storage,
// marked inactive, so replayed rotations can be told apart from tokens
// that never existed.
func (p *OpaqueRefreshTokenProvider) RotateRefreshToken(ctx context.Context, presented *kyrie.RefreshToken) (*kyrie.RefreshToken, error) {
	if err := p.Storage.DeactivateRefreshToken(ctx, presented.TokenValue); err != nil {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to deactivate the presented refresh token: %s.", err.Error()))
	}

	return p.IssueRefreshToken(ctx, presented.ClientID, presented.Scopes)
}
