// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/odeyalo/kyrie"
)

func TestMemoryStoreGetClient(t *testing.T) {
	store := NewMemoryStore()
	store.Clients["c1"] = &kyrie.DefaultClient{ID: "c1"}

	client, err := store.GetClient(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", client.GetID())

	_, err = store.GetClient(context.Background(), "unknown")
	assert.ErrorIs(t, err, kyrie.ErrNotFound)
}

func TestMemoryStoreTakeAuthorizationCode(t *testing.T) {
	store := NewMemoryStore()

	code := &kyrie.AuthorizationCode{
		CodeValue: "thecode",
		User:      kyrie.User{ID: "u1"},
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}
	require.NoError(t, store.StoreAuthorizationCode(context.Background(), code))

	taken, err := store.TakeAuthorizationCode(context.Background(), "thecode")
	require.NoError(t, err)
	assert.Equal(t, "u1", taken.User.ID)

	_, err = store.TakeAuthorizationCode(context.Background(), "thecode")
	assert.ErrorIs(t, err, kyrie.ErrNotFound)
}

func TestMemoryStoreTakeAuthorizationCodeIsAtomic(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.StoreAuthorizationCode(context.Background(), &kyrie.AuthorizationCode{CodeValue: "thecode"}))

	const workers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := store.TakeAuthorizationCode(context.Background(), "thecode"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestMemoryStoreRefreshTokens(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &kyrie.RefreshToken{TokenValue: "first", ClientID: "c1", Active: true}
	require.NoError(t, store.StoreRefreshToken(ctx, first))

	t.Run("ShouldDeactivateReplacedToken", func(t *testing.T) {
		second := &kyrie.RefreshToken{TokenValue: "second", ClientID: "c1", Active: true}
		require.NoError(t, store.StoreRefreshToken(ctx, second))

		old, err := store.GetRefreshTokenByValue(ctx, "first")
		require.NoError(t, err)
		assert.False(t, old.Active)

		current, err := store.GetRefreshTokenByValue(ctx, "second")
		require.NoError(t, err)
		assert.True(t, current.Active)
	})

	t.Run("ShouldDeactivateWithoutRemoving", func(t *testing.T) {
		require.NoError(t, store.DeactivateRefreshToken(ctx, "second"))

		token, err := store.GetRefreshTokenByValue(ctx, "second")
		require.NoError(t, err)
		assert.False(t, token.Active)
	})

	t.Run("ShouldRemove", func(t *testing.T) {
		require.NoError(t, store.RemoveRefreshToken(ctx, "second"))

		_, err := store.GetRefreshTokenByValue(ctx, "second")
		assert.ErrorIs(t, err, kyrie.ErrNotFound)
	})

	t.Run("ShouldFailUnknownValues", func(t *testing.T) {
		assert.ErrorIs(t, store.DeactivateRefreshToken(ctx, "ghost"), kyrie.ErrNotFound)
		assert.ErrorIs(t, store.RemoveRefreshToken(ctx, "ghost"), kyrie.ErrNotFound)
	})
}

func TestMemoryStoreRefreshTokenLookupsAreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, &kyrie.RefreshToken{TokenValue: "first", ClientID: "c1", Active: true}))

	presented, err := store.GetRefreshTokenByValue(ctx, "first")
	require.NoError(t, err)

	// Deactivating the stored entry must not reach through to a token a
	// caller already holds.
	require.NoError(t, store.StoreRefreshToken(ctx, &kyrie.RefreshToken{TokenValue: "second", ClientID: "c1", Active: true}))
	assert.True(t, presented.Active)

	stored, err := store.GetRefreshTokenByValue(ctx, "first")
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestMemoryStoreRefreshTokenConcurrentReplacement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, &kyrie.RefreshToken{TokenValue: "seed", ClientID: "c1", Active: true}))

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := 0; i < 200; i++ {
			token, err := store.GetRefreshTokenByValue(ctx, "seed")
			if err != nil {
				return
			}

			_ = token.Active
		}
	}()

	go func() {
		defer wg.Done()

		for i := 0; i < 200; i++ {
			_ = store.StoreRefreshToken(ctx, &kyrie.RefreshToken{
				TokenValue: fmt.Sprintf("replacement-%d", i),
				ClientID:   "c1",
				Active:     true,
			})
		}
	}()

	wg.Wait()
}

func TestMemoryStoreAuthenticate(t *testing.T) {
	store := NewMemoryStore()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 4)
	require.NoError(t, err)

	store.Users["odeyalo"] = MemoryUserRelation{
		User:         kyrie.User{ID: "u1", Username: "odeyalo"},
		PasswordHash: hash,
	}

	t.Run("ShouldAuthenticateValidCredentials", func(t *testing.T) {
		user, err := store.Authenticate(context.Background(), "odeyalo", "password123")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("ShouldRejectWrongPassword", func(t *testing.T) {
		_, err := store.Authenticate(context.Background(), "odeyalo", "wrong")
		assert.ErrorIs(t, err, kyrie.ErrInvalidGrant)
	})

	t.Run("ShouldRejectUnknownUser", func(t *testing.T) {
		_, err := store.Authenticate(context.Background(), "ghost", "password123")
		assert.ErrorIs(t, err, kyrie.ErrNotFound)
	})
}
