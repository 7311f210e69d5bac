// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/handler/oauth2"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// MemoryUserRelation pairs a username with its bcrypt password hash.
type MemoryUserRelation struct {
	User         kyrie.User
	PasswordHash []byte
}

// MemoryStore is an in-memory implementation of the storage collaborators:
// client lookup, authorization codes, refresh tokens and resource owner
// authentication. Each map carries its own mutex so unrelated lookups never
// contend.
type MemoryStore struct {
	Clients            map[string]kyrie.Client
	AuthorizationCodes map[string]*kyrie.AuthorizationCode

	// RefreshTokens holds values, not pointers: lookups hand out copies so a
	// caller holding a token never aliases memory the store mutates later.
	RefreshTokens map[string]kyrie.RefreshToken
	Users         map[string]MemoryUserRelation

	clientsMutex            sync.RWMutex
	authorizationCodesMutex sync.RWMutex
	refreshTokensMutex      sync.RWMutex
	usersMutex              sync.RWMutex

	// refreshTokensByClient indexes the live token per client so that issuing
	// a replacement can deactivate the previous entry.
	refreshTokensByClient map[string]string
}

var (
	_ kyrie.ClientManager             = (*MemoryStore)(nil)
	_ kyrie.UserAuthenticationService = (*MemoryStore)(nil)
	_ oauth2.AuthorizationCodeStorage = (*MemoryStore)(nil)
	_ oauth2.RefreshTokenStorage      = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Clients:               make(map[string]kyrie.Client),
		AuthorizationCodes:    make(map[string]*kyrie.AuthorizationCode),
		RefreshTokens:         make(map[string]kyrie.RefreshToken),
		Users:                 make(map[string]MemoryUserRelation),
		refreshTokensByClient: make(map[string]string),
	}
}

func (s *MemoryStore) GetClient(_ context.Context, id string) (kyrie.Client, error) {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	client, ok := s.Clients[id]
	if !ok {
		return nil, errorsx.WithStack(kyrie.ErrNotFound)
	}

	return client, nil
}

func (s *MemoryStore) StoreAuthorizationCode(_ context.Context, code *kyrie.AuthorizationCode) error {
	s.authorizationCodesMutex.Lock()
	defer s.authorizationCodesMutex.Unlock()

	s.AuthorizationCodes[code.CodeValue] = code

	return nil
}

// TakeAuthorizationCode looks the code up and deletes it under a single lock,
// so two concurrent redemptions of the same value cannot both succeed.
func (s *MemoryStore) TakeAuthorizationCode(_ context.Context, value string) (*kyrie.AuthorizationCode, error) {
	s.authorizationCodesMutex.Lock()
	defer s.authorizationCodesMutex.Unlock()

	code, ok := s.AuthorizationCodes[value]
	if !ok {
		return nil, errorsx.WithStack(kyrie.ErrNotFound)
	}

	delete(s.AuthorizationCodes, value)

	return code, nil
}

func (s *MemoryStore) StoreRefreshToken(_ context.Context, token *kyrie.RefreshToken) error {
	s.refreshTokensMutex.Lock()
	defer s.refreshTokensMutex.Unlock()

	if previous, ok := s.refreshTokensByClient[token.ClientID]; ok && previous != token.TokenValue {
		// The replaced token stays behind, inactive, so a replay reads as
		// revoked rather than unknown.
		if old, ok := s.RefreshTokens[previous]; ok {
			old.Active = false
			s.RefreshTokens[previous] = old
		}
	}

	s.RefreshTokens[token.TokenValue] = *token
	s.refreshTokensByClient[token.ClientID] = token.TokenValue

	return nil
}

// GetRefreshTokenByValue returns a copy of the stored token; later store
// mutations never reach it.
func (s *MemoryStore) GetRefreshTokenByValue(_ context.Context, value string) (*kyrie.RefreshToken, error) {
	s.refreshTokensMutex.RLock()
	defer s.refreshTokensMutex.RUnlock()

	token, ok := s.RefreshTokens[value]
	if !ok {
		return nil, errorsx.WithStack(kyrie.ErrNotFound)
	}

	return &token, nil
}

// DeactivateRefreshToken flips the stored token inactive. The entry stays
// behind so a later presentation reads as revoked, not unknown.
func (s *MemoryStore) DeactivateRefreshToken(_ context.Context, value string) error {
	s.refreshTokensMutex.Lock()
	defer s.refreshTokensMutex.Unlock()

	token, ok := s.RefreshTokens[value]
	if !ok {
		return errorsx.WithStack(kyrie.ErrNotFound)
	}

	token.Active = false
	s.RefreshTokens[value] = token

	return nil
}

func (s *MemoryStore) RemoveRefreshToken(_ context.Context, value string) error {
	s.refreshTokensMutex.Lock()
	defer s.refreshTokensMutex.Unlock()

	token, ok := s.RefreshTokens[value]
	if !ok {
		return errorsx.WithStack(kyrie.ErrNotFound)
	}

	delete(s.RefreshTokens, value)

	if s.refreshTokensByClient[token.ClientID] == value {
		delete(s.refreshTokensByClient, token.ClientID)
	}

	return nil
}

func (s *MemoryStore) Authenticate(_ context.Context, username, password string) (kyrie.User, error) {
	s.usersMutex.RLock()
	defer s.usersMutex.RUnlock()

	relation, ok := s.Users[username]
	if !ok {
		return kyrie.User{}, errorsx.WithStack(kyrie.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword(relation.PasswordHash, []byte(password)); err != nil {
		return kyrie.User{}, errorsx.WithStack(kyrie.ErrInvalidGrant.WithHint("The provided credentials are invalid."))
	}

	return relation.User, nil
}
