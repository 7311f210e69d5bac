// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"time"
)

const (
	defaultAuthorizeCodeLifespan = 15 * time.Minute
	defaultAccessTokenLifespan   = time.Hour
	defaultIDTokenLifespan       = time.Hour
	defaultAuthorizeCodeLength   = 24
	defaultRefreshTokenLength    = 30
)

type AuthorizeCodeLifespanProvider interface {
	GetAuthorizeCodeLifespan(ctx context.Context) time.Duration
}

type AccessTokenLifespanProvider interface {
	GetAccessTokenLifespan(ctx context.Context) time.Duration
}

type IDTokenLifespanProvider interface {
	GetIDTokenLifespan(ctx context.Context) time.Duration
}

type IDTokenIssuerProvider interface {
	GetIDTokenIssuer(ctx context.Context) string
}

type AuthorizeCodeLengthProvider interface {
	GetAuthorizeCodeLength(ctx context.Context) int
}

type RefreshTokenLengthProvider interface {
	GetRefreshTokenLength(ctx context.Context) int
}

// Config carries the tunables of the flow engine. Components consume it
// through the narrow provider interfaces above so each declares exactly what
// it reads.
type Config struct {
	// AuthorizeCodeLifespan sets how long an authorization code is going to be
	// valid. Defaults to fifteen minutes.
	AuthorizeCodeLifespan time.Duration

	// AccessTokenLifespan sets how long an access token is going to be valid.
	// Defaults to one hour.
	AccessTokenLifespan time.Duration

	// IDTokenLifespan sets the ID token lifetime. Defaults to one hour.
	IDTokenLifespan time.Duration

	// IDTokenIssuer sets the 'iss' claim of minted ID tokens.
	IDTokenIssuer string

	// AuthorizeCodeLength sets the length of generated authorization codes.
	// Defaults to 24 characters.
	AuthorizeCodeLength int

	// RefreshTokenLength sets the length of generated opaque refresh tokens.
	// Defaults to 30 characters.
	RefreshTokenLength int
}

var (
	_ AuthorizeCodeLifespanProvider = (*Config)(nil)
	_ AccessTokenLifespanProvider   = (*Config)(nil)
	_ IDTokenLifespanProvider       = (*Config)(nil)
	_ IDTokenIssuerProvider         = (*Config)(nil)
	_ AuthorizeCodeLengthProvider   = (*Config)(nil)
	_ RefreshTokenLengthProvider    = (*Config)(nil)
)

func (c *Config) GetAuthorizeCodeLifespan(_ context.Context) time.Duration {
	if c.AuthorizeCodeLifespan == 0 {
		return defaultAuthorizeCodeLifespan
	}

	return c.AuthorizeCodeLifespan
}

func (c *Config) GetAccessTokenLifespan(_ context.Context) time.Duration {
	if c.AccessTokenLifespan == 0 {
		return defaultAccessTokenLifespan
	}

	return c.AccessTokenLifespan
}

func (c *Config) GetIDTokenLifespan(_ context.Context) time.Duration {
	if c.IDTokenLifespan == 0 {
		return defaultIDTokenLifespan
	}

	return c.IDTokenLifespan
}

func (c *Config) GetIDTokenIssuer(_ context.Context) string {
	return c.IDTokenIssuer
}

func (c *Config) GetAuthorizeCodeLength(_ context.Context) int {
	if c.AuthorizeCodeLength == 0 {
		return defaultAuthorizeCodeLength
	}

	return c.AuthorizeCodeLength
}

func (c *Config) GetRefreshTokenLength(_ context.Context) int {
	if c.RefreshTokenLength == 0 {
		return defaultRefreshTokenLength
	}

	return c.RefreshTokenLength
}
