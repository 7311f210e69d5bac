// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odeyalo/kyrie"
	hoauth2 "github.com/odeyalo/kyrie/handler/oauth2"
	"github.com/odeyalo/kyrie/storage"
)

func TestStoringAuthorizationCodeProvider(t *testing.T) {
	store := storage.NewMemoryStore()

	provider := &hoauth2.StoringAuthorizationCodeProvider{
		Storage: store,
		Config:  &kyrie.Config{AuthorizeCodeLifespan: 10 * time.Minute, AuthorizeCodeLength: 32},
	}

	user := kyrie.User{ID: "u1", Username: "odeyalo"}

	code, err := provider.GenerateAuthorizationCode(context.Background(), user, kyrie.Arguments{"read", "openid"})
	require.NoError(t, err)

	assert.Len(t, code.CodeValue, 32)
	assert.Equal(t, user, code.User)
	assert.WithinDuration(t, code.IssuedAt.Add(10*time.Minute), code.ExpiresAt, time.Second)

	// The code must already be redeemable once it is handed out.
	stored, err := store.TakeAuthorizationCode(context.Background(), code.CodeValue)
	require.NoError(t, err)
	assert.Equal(t, code.CodeValue, stored.CodeValue)
	assert.Equal(t, kyrie.Arguments{"read", "openid"}, stored.Scopes)
}

func TestStoringAuthorizationCodeProviderMintsUniqueCodes(t *testing.T) {
	provider := &hoauth2.StoringAuthorizationCodeProvider{
		Storage: storage.NewMemoryStore(),
		Config:  &kyrie.Config{},
	}

	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := provider.GenerateAuthorizationCode(context.Background(), kyrie.User{ID: "u1"}, nil)
		require.NoError(t, err)
		require.False(t, seen[code.CodeValue])

		seen[code.CodeValue] = true
	}
}

func TestOpaqueRefreshTokenProvider(t *testing.T) {
	store := storage.NewMemoryStore()

	provider := &hoauth2.OpaqueRefreshTokenProvider{
		Storage: store,
		Config:  &kyrie.Config{RefreshTokenLength: 40},
	}

	issued, err := provider.IssueRefreshToken(context.Background(), "c1", kyrie.Arguments{"read"})
	require.NoError(t, err)

	assert.Len(t, issued.TokenValue, 40)
	assert.Equal(t, "c1", issued.ClientID)
	assert.True(t, issued.Active)

	t.Run("ShouldRotate", func(t *testing.T) {
		rotated, err := provider.RotateRefreshToken(context.Background(), issued)
		require.NoError(t, err)

		assert.NotEqual(t, issued.TokenValue, rotated.TokenValue)
		assert.Equal(t, "c1", rotated.ClientID)
		assert.True(t, rotated.Active)

		old, err := store.GetRefreshTokenByValue(context.Background(), issued.TokenValue)
		require.NoError(t, err)
		assert.False(t, old.Active)
	})
}
