// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odeyalo/kyrie"
)

func newTestProvider(t *testing.T, lifespan time.Duration) *SecretWordProvider {
	t.Helper()

	provider, err := NewSecretWordProvider([]byte("secret-word"), &kyrie.Config{AccessTokenLifespan: lifespan})
	require.NoError(t, err)

	return provider
}

func TestSecretWordProviderRoundTrip(t *testing.T) {
	provider := newTestProvider(t, time.Hour)
	user := kyrie.User{ID: "u1", Username: "odeyalo"}

	meta, err := provider.Generate(context.Background(), user, Claims{Scope: "read write"})
	require.NoError(t, err)

	assert.NotEmpty(t, meta.Token)
	assert.Equal(t, "u1", meta.Subject)
	assert.WithinDuration(t, meta.IssuedAt.Add(time.Hour), meta.ExpiresAt, time.Second)

	require.NoError(t, provider.Validate(context.Background(), meta.Token))

	parsed, err := provider.Parse(context.Background(), meta.Token)
	require.NoError(t, err)

	assert.Equal(t, "u1", parsed.Subject)
	assert.Equal(t, "read write", parsed.Scope)
	assert.WithinDuration(t, meta.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestSecretWordProviderRejectsForeignSignature(t *testing.T) {
	provider := newTestProvider(t, time.Hour)

	foreign, err := NewSecretWordProvider([]byte("other-secret"), &kyrie.Config{})
	require.NoError(t, err)

	meta, err := foreign.Generate(context.Background(), kyrie.User{ID: "u1"}, Claims{})
	require.NoError(t, err)

	err = provider.Validate(context.Background(), meta.Token)
	assert.ErrorIs(t, err, kyrie.ErrInvalidGrant)

	_, err = provider.Parse(context.Background(), meta.Token)
	assert.ErrorIs(t, err, kyrie.ErrInvalidGrant)
}

func TestSecretWordProviderRejectsMalformedToken(t *testing.T) {
	provider := newTestProvider(t, time.Hour)

	assert.ErrorIs(t, provider.Validate(context.Background(), "not-a-token"), kyrie.ErrInvalidGrant)
}

func TestSecretWordProviderRejectsExpiredToken(t *testing.T) {
	provider := newTestProvider(t, -time.Hour)

	meta, err := provider.Generate(context.Background(), kyrie.User{ID: "u1"}, Claims{})
	require.NoError(t, err)

	assert.ErrorIs(t, provider.Validate(context.Background(), meta.Token), kyrie.ErrInvalidGrant)
}

func TestAccessTokenGenerator(t *testing.T) {
	provider := newTestProvider(t, time.Hour)
	generator := NewAccessTokenGenerator(provider)

	token, err := generator.GenerateAccessToken(context.Background(), kyrie.User{ID: "u1"}, kyrie.Arguments{"read", "openid"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "read openid", token.Scope)
	assert.False(t, kyrie.IsTokenExpired(token, time.Now().UTC()))

	t.Run("ShouldIntrospect", func(t *testing.T) {
		introspected, err := generator.IntrospectAccessToken(context.Background(), token.TokenValue)
		require.NoError(t, err)

		assert.Equal(t, "read openid", introspected.Scope)
		assert.WithinDuration(t, token.ExpiresAt, introspected.ExpiresAt, time.Second)
	})

	t.Run("ShouldMapTamperedTokenToNotFound", func(t *testing.T) {
		_, err := generator.IntrospectAccessToken(context.Background(), token.TokenValue+"tampered")
		assert.ErrorIs(t, err, kyrie.ErrNotFound)
	})
}

func TestIDTokenGenerator(t *testing.T) {
	provider := newTestProvider(t, time.Hour)
	generator := NewIDTokenGenerator(provider, &kyrie.Config{
		IDTokenIssuer:   "https://auth.example",
		IDTokenLifespan: 10 * time.Minute,
	})

	user := kyrie.User{
		ID:             "u1",
		Username:       "odeyalo",
		AdditionalInfo: map[string]any{"email": "odeyalo@example.com"},
	}

	idToken, err := generator.GenerateIDToken(context.Background(), "c1", user, map[string]any{"nonce": "n-0S6_WzA2Mj"})
	require.NoError(t, err)

	meta, err := provider.Parse(context.Background(), idToken.TokenValue)
	require.NoError(t, err)
	assert.Equal(t, "u1", meta.Subject)

	t.Run("ShouldExpireAfterIDTokenLifespan", func(t *testing.T) {
		// The ID token lifespan, not the access token lifespan, governs 'exp'.
		assert.WithinDuration(t, idToken.IssuedAt.Add(10*time.Minute), idToken.ExpiresAt, time.Second)
		assert.WithinDuration(t, idToken.ExpiresAt, meta.ExpiresAt, time.Second)
	})

	t.Run("ShouldRequireClientID", func(t *testing.T) {
		_, err := generator.GenerateIDToken(context.Background(), "", user, nil)
		assert.ErrorIs(t, err, kyrie.ErrServerError)
	})
}
