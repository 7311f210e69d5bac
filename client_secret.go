// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/odeyalo/kyrie/internal/errorsx"
)

const DefaultBCryptWorkFactor = 12

// ClientSecret compares a presented secret against the stored credential.
type ClientSecret interface {
	Compare(ctx context.Context, secret []byte) (err error)
}

// BCryptClientSecret holds a bcrypt hash of the client secret.
type BCryptClientSecret struct {
	value []byte
}

// NewBCryptClientSecret returns a new BCryptClientSecret given a hash.
func NewBCryptClientSecret(hash string) *BCryptClientSecret {
	return &BCryptClientSecret{value: []byte(hash)}
}

// NewBCryptClientSecretPlain returns a new BCryptClientSecret given a
// plaintext secret. A cost of 0 selects DefaultBCryptWorkFactor.
func NewBCryptClientSecretPlain(rawSecret string, cost int) (secret *BCryptClientSecret, err error) {
	if cost == 0 {
		cost = DefaultBCryptWorkFactor
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawSecret), cost)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	return &BCryptClientSecret{value: hashed}, nil
}

func (s *BCryptClientSecret) Compare(_ context.Context, secret []byte) (err error) {
	if err = bcrypt.CompareHashAndPassword(s.value, secret); err != nil {
		return errorsx.WithStack(err)
	}

	return nil
}
