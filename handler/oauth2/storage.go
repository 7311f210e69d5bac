// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"

	"github.com/odeyalo/kyrie"
)

// AuthorizationCodeStorage persists authorization codes between the
// authorization and token endpoints.
type AuthorizationCodeStorage interface {
	// StoreAuthorizationCode saves the code under its opaque value.
	StoreAuthorizationCode(ctx context.Context, code *kyrie.AuthorizationCode) error

	// TakeAuthorizationCode atomically retrieves the code and removes it
	// from storage so that no second redemption can observe it. It returns
	// kyrie.ErrNotFound when the value is unknown or already taken.
	TakeAuthorizationCode(ctx context.Context, value string) (*kyrie.AuthorizationCode, error)
}

// RefreshTokenStorage persists refresh tokens keyed by the client they
// were issued to.
type RefreshTokenStorage interface {
	// StoreRefreshToken saves the token, replacing any token previously
	// held for the same client.
	StoreRefreshToken(ctx context.Context, token *kyrie.RefreshToken) error

	// GetRefreshTokenByValue resolves a presented token value. It returns
	// kyrie.ErrNotFound for unknown values; inactive tokens are still
	// returned so that callers can distinguish revoked from unknown.
	GetRefreshTokenByValue(ctx context.Context, value string) (*kyrie.RefreshToken, error)

	// DeactivateRefreshToken marks the token inactive without removing it.
	DeactivateRefreshToken(ctx context.Context, value string) error

	// RemoveRefreshToken deletes the token entirely.
	RemoveRefreshToken(ctx context.Context, value string) error
}
