// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
)

// Client represents a registered OAuth2 client application.
type Client interface {
	// GetID returns the client id.
	GetID() string

	// GetRedirectURIs returns the client's registered redirect URI allow-list.
	GetRedirectURIs() []string

	// GetScopes returns the scopes the client may request.
	GetScopes() Arguments

	// GetSecret returns the client's secret for credential comparison.
	GetSecret() ClientSecret
}

// ClientManager looks up registered clients. A nil error implies a non-nil
// client; unknown ids yield ErrNotFound.
type ClientManager interface {
	GetClient(ctx context.Context, id string) (Client, error)
}

// DefaultClient is a simple Client implementation.
type DefaultClient struct {
	ID           string       `json:"id"`
	Secret       ClientSecret `json:"-"`
	RedirectURIs []string     `json:"redirect_uris"`
	Scopes       Arguments    `json:"scopes"`
}

func (c *DefaultClient) GetID() string {
	return c.ID
}

func (c *DefaultClient) GetRedirectURIs() []string {
	return c.RedirectURIs
}

func (c *DefaultClient) GetScopes() Arguments {
	return c.Scopes
}

func (c *DefaultClient) GetSecret() ClientSecret {
	return c.Secret
}
