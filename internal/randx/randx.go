// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package randx

import (
	"crypto/rand"
	"math/big"

	"github.com/odeyalo/kyrie/internal/errorsx"
)

const (
	// AlphaNum is the character set used for opaque token values.
	AlphaNum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Alpha is the character set used for authorization code values.
	Alpha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RuneSequence returns a cryptographically random sequence of length l drawn
// from allowed.
func RuneSequence(l int, allowed string) (string, error) {
	chars := []rune(allowed)
	max := big.NewInt(int64(len(chars)))

	seq := make([]rune, l)

	for i := range seq {
		r, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errorsx.WithStack(err)
		}

		seq[i] = chars[r.Int64()]
	}

	return string(seq), nil
}
