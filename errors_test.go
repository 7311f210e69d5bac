// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odeyalo/kyrie/internal/errorsx"
)

func TestRFC6749ErrorChaining(t *testing.T) {
	cause := errors.New("underlying failure")

	err := ErrInvalidGrant.WithWrap(cause).WithHint("The code has expired.").WithDebugf("code issued at %d", 12345)

	// The sentinel itself must stay untouched.
	assert.Empty(t, ErrInvalidGrant.HintField)
	assert.Empty(t, ErrInvalidGrant.DebugField)

	assert.Equal(t, "invalid_grant", err.ErrorField)
	assert.Equal(t, "The code has expired.", err.HintField)
	assert.Equal(t, "code issued at 12345", err.DebugField)
	assert.ErrorIs(t, err, ErrInvalidGrant)
	assert.ErrorIs(t, err, cause)
}

func TestRFC6749ErrorIsMatchesByNameAndCode(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidGrant.WithHint("anything"), ErrInvalidGrant)
	assert.NotErrorIs(t, ErrInvalidGrant, ErrInvalidClient)
	assert.NotErrorIs(t, ErrInvalidGrant, ErrNotFound)
}

func TestErrorToRFC6749Error(t *testing.T) {
	t.Run("ShouldPassThroughKnownErrors", func(t *testing.T) {
		wrapped := errorsx.WithStack(ErrInvalidScope.WithHint("The scope is unknown."))

		converted := ErrorToRFC6749Error(wrapped)

		require.NotNil(t, converted)
		assert.Equal(t, "invalid_scope", converted.ErrorField)
		assert.Equal(t, "The scope is unknown.", converted.HintField)
	})

	t.Run("ShouldMapUnknownErrorsToFallback", func(t *testing.T) {
		converted := ErrorToRFC6749Error(fmt.Errorf("boom"))

		require.NotNil(t, converted)
		assert.Equal(t, "error", converted.ErrorField)
		assert.Equal(t, "boom", converted.DebugField)
	})
}

func TestResponseTypeRegistry(t *testing.T) {
	registry := NewDefaultResponseTypeRegistry()

	t.Run("ShouldLookupKnownTypes", func(t *testing.T) {
		code, ok := registry.Lookup("code")
		require.True(t, ok)
		assert.Equal(t, FlowSideServer, code.FlowSide)

		token, ok := registry.Lookup("token")
		require.True(t, ok)
		assert.Equal(t, FlowSideClient, token.FlowSide)
	})

	t.Run("ShouldParseNameList", func(t *testing.T) {
		types, err := registry.Parse([]string{"code", "id_token"})
		require.NoError(t, err)
		require.Len(t, types, 2)
		assert.Equal(t, "code", types[0].SimplifiedName)
		assert.Equal(t, "id_token", types[1].SimplifiedName)
	})

	t.Run("ShouldFailUnknownName", func(t *testing.T) {
		_, err := registry.Parse([]string{"code", "device_code"})
		assert.ErrorIs(t, err, ErrUnsupportedResponseType)
	})

	t.Run("ShouldRejectDuplicateRegistration", func(t *testing.T) {
		_, err := NewResponseTypeRegistry(ResponseTypeCode, ResponseTypeCode)
		assert.ErrorIs(t, err, ErrServerError)
	})
}
