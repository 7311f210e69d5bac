// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"
	"errors"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/consts"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// AccessTokenGranterFactory maps token endpoint grant types to their granters.
type AccessTokenGranterFactory struct {
	granters map[string]kyrie.AccessTokenGranter
}

var _ kyrie.AccessTokenGranterFactory = (*AccessTokenGranterFactory)(nil)

func NewAccessTokenGranterFactory(granters ...kyrie.AccessTokenGranter) *AccessTokenGranterFactory {
	byName := make(map[string]kyrie.AccessTokenGranter, len(granters))
	for _, g := range granters {
		byName[g.GrantType().GrantName] = g
	}

	return &AccessTokenGranterFactory{granters: byName}
}

func (f *AccessTokenGranterFactory) GetGranter(request *kyrie.TokenRequest) (kyrie.AccessTokenGranter, error) {
	g, ok := f.granters[request.GrantType.GrantName]
	if !ok {
		return nil, errorsx.WithStack(kyrie.ErrUnsupportedGrantType.WithHintf("No access token granter is registered for grant type '%s'.", request.GrantType.GrantName))
	}

	return g, nil
}

// authenticateClient resolves the requesting client and verifies its secret.
// Both an unknown client and a bad secret map to invalid_client so the caller
// cannot probe for registered client ids.
func authenticateClient(ctx context.Context, clients kyrie.ClientManager, request *kyrie.TokenRequest) (kyrie.Client, error) {
	client, err := clients.GetClient(ctx, request.ClientID)
	if err != nil {
		if errors.Is(err, kyrie.ErrNotFound) {
			return nil, errorsx.WithStack(kyrie.ErrInvalidClient.WithHint("Client authentication failed."))
		}

		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to load the client: %s.", err.Error()))
	}

	secret := request.Parameters[consts.FormParameterClientSecret]
	if err = client.GetSecret().Compare(ctx, []byte(secret)); err != nil {
		return nil, errorsx.WithStack(kyrie.ErrInvalidClient.WithHint("Client authentication failed."))
	}

	return client, nil
}
