// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"context"
	"time"

	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/errorsx"
	"github.com/odeyalo/kyrie/internal/randx"
)

// AuthorizationCodeProvider mints authorization codes bound to the
// resource owner and the granted scopes.
type AuthorizationCodeProvider interface {
	// GenerateAuthorizationCode returns a code that has already been
	// persisted and can be redeemed at the token endpoint.
	GenerateAuthorizationCode(ctx context.Context, user kyrie.User, scopes kyrie.Arguments) (*kyrie.AuthorizationCode, error)
}

// StoringAuthorizationCodeProvider generates random opaque codes and
// persists them before handing them out, so a code returned to the
// caller is always redeemable.
type StoringAuthorizationCodeProvider struct {
	Storage AuthorizationCodeStorage

	Config interface {
		kyrie.AuthorizeCodeLifespanProvider
		kyrie.AuthorizeCodeLengthProvider
	}
}

func (p *StoringAuthorizationCodeProvider) GenerateAuthorizationCode(ctx context.Context, user kyrie.User, scopes kyrie.Arguments) (*kyrie.AuthorizationCode, error) {
	value, err := randx.RuneSequence(p.Config.GetAuthorizeCodeLength(ctx), randx.Alpha)
	if err != nil {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to generate authorization code value: %s.", err.Error()))
	}

	now := time.Now().UTC()

	code := &kyrie.AuthorizationCode{
		CodeValue: value,
		User:      user,
		Scopes:    scopes,
		IssuedAt:  now,
		ExpiresAt: now.Add(p.Config.GetAuthorizeCodeLifespan(ctx)),
	}

	if err = p.Storage.StoreAuthorizationCode(ctx, code); err != nil {
		return nil, errorsx.WithStack(kyrie.ErrServerError.WithWrap(err).WithDebugf("Unable to persist the authorization code: %s.", err.Error()))
	}

	return code, nil
}
