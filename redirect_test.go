// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationCodeRedirectURLBuilder(t *testing.T) {
	builder := &AuthorizationCodeRedirectURLBuilder{}

	request := &AuthorizationRequest{
		ClientID:      "c1",
		RedirectURL:   "https://app.example/cb",
		ResponseTypes: []ResponseType{ResponseTypeCode},
		State:         "xyz",
	}

	code := &AuthorizationCode{CodeValue: "thecode"}

	redirectURL, err := builder.CreateRedirectURL(context.Background(), request, code)
	require.NoError(t, err)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)

	assert.Equal(t, "thecode", parsed.Query().Get("code"))
	assert.Equal(t, "xyz", parsed.Query().Get("state"))
	assert.Empty(t, parsed.Fragment)
}

func TestAuthorizationCodeRedirectURLBuilderRejectsWrongToken(t *testing.T) {
	builder := &AuthorizationCodeRedirectURLBuilder{}

	_, err := builder.CreateRedirectURL(context.Background(), &AuthorizationRequest{RedirectURL: "https://app.example/cb"}, &AccessToken{})

	assert.ErrorIs(t, err, ErrServerError)
}

func TestImplicitRedirectURLBuilder(t *testing.T) {
	builder := &ImplicitRedirectURLBuilder{}

	request := &AuthorizationRequest{
		ClientID:      "c1",
		RedirectURL:   "https://app.example/cb",
		ResponseTypes: []ResponseType{ResponseTypeToken},
		State:         "xyz",
	}

	now := time.Now().UTC()

	token := &AccessToken{
		TokenValue: "thetoken",
		TokenType:  "Bearer",
		Scope:      "read write",
		IssuedAt:   now,
		ExpiresAt:  now.Add(time.Hour),
	}

	redirectURL, err := builder.CreateRedirectURL(context.Background(), request, token)
	require.NoError(t, err)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)

	assert.Empty(t, parsed.RawQuery)

	fragment, err := url.ParseQuery(parsed.Fragment)
	require.NoError(t, err)

	assert.Equal(t, "thetoken", fragment.Get("access_token"))
	assert.Equal(t, "Bearer", fragment.Get("token_type"))
	assert.Equal(t, "read write", fragment.Get("scope"))
	assert.Equal(t, "xyz", fragment.Get("state"))
	assert.NotEmpty(t, fragment.Get("expires_in"))
}

func TestMultipleResponseTypeRedirectURLBuilder(t *testing.T) {
	builder := &MultipleResponseTypeRedirectURLBuilder{}

	request := &AuthorizationRequest{
		ClientID:      "c1",
		RedirectURL:   "https://app.example/cb",
		ResponseTypes: []ResponseType{ResponseTypeCode, ResponseTypeToken, ResponseTypeIDToken},
		State:         "xyz",
	}

	now := time.Now().UTC()

	combined := NewCombinedToken()
	combined.SetAccessToken(&AccessToken{
		TokenValue: "thetoken",
		TokenType:  "Bearer",
		IssuedAt:   now,
		ExpiresAt:  now.Add(time.Hour),
	}, now)
	combined.AddExtra("code", "thecode")
	combined.AddExtra("id_token", "theidtoken")

	redirectURL, err := builder.CreateRedirectURL(context.Background(), request, combined)
	require.NoError(t, err)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)

	// Server-side artifacts travel in the query string.
	assert.Equal(t, "thecode", parsed.Query().Get("code"))
	assert.Equal(t, "xyz", parsed.Query().Get("state"))

	// Client-side artifacts travel in the fragment.
	fragment, err := url.ParseQuery(parsed.Fragment)
	require.NoError(t, err)

	assert.Equal(t, "thetoken", fragment.Get("access_token"))
	assert.Equal(t, "Bearer", fragment.Get("token_type"))
	assert.Equal(t, "theidtoken", fragment.Get("id_token"))
}

func TestMultipleResponseTypeRedirectURLBuilderRequiresTwoResponseTypes(t *testing.T) {
	builder := &MultipleResponseTypeRedirectURLBuilder{}

	request := &AuthorizationRequest{
		RedirectURL:   "https://app.example/cb",
		ResponseTypes: []ResponseType{ResponseTypeCode},
	}

	_, err := builder.CreateRedirectURL(context.Background(), request, NewCombinedToken())

	assert.ErrorIs(t, err, ErrServerError)
}

type staticCustomizer struct {
	key   string
	value any
	err   error
	panic bool
}

func (c *staticCustomizer) CustomizeToken(_ context.Context, _ *AuthorizationRequest, _ Token, builder *CombinedToken) error {
	if c.panic {
		panic("broken customizer")
	}

	if c.err != nil {
		return c.err
	}

	builder.AddExtra(c.key, c.value)

	return nil
}

func TestCustomizingRedirectURLBuilder(t *testing.T) {
	request := &AuthorizationRequest{
		ClientID:      "c1",
		RedirectURL:   "https://app.example/cb",
		ResponseTypes: []ResponseType{ResponseTypeCode},
		State:         "xyz",
	}

	code := &AuthorizationCode{CodeValue: "thecode"}

	testCases := []struct {
		name        string
		customizers []TokenCustomizer
		expected    map[string]string
		absent      []string
	}{
		{
			name:        "ShouldAppendStringExtras",
			customizers: []TokenCustomizer{&staticCustomizer{key: "refresh_token", value: "therefresh"}},
			expected:    map[string]string{"code": "thecode", "refresh_token": "therefresh"},
		},
		{
			name: "ShouldIgnoreFailingCustomizer",
			customizers: []TokenCustomizer{
				&staticCustomizer{err: ErrServerError},
				&staticCustomizer{key: "refresh_token", value: "therefresh"},
			},
			expected: map[string]string{"code": "thecode", "refresh_token": "therefresh"},
		},
		{
			name: "ShouldIgnorePanickingCustomizer",
			customizers: []TokenCustomizer{
				&staticCustomizer{panic: true},
				&staticCustomizer{key: "refresh_token", value: "therefresh"},
			},
			expected: map[string]string{"code": "thecode", "refresh_token": "therefresh"},
		},
		{
			name:        "ShouldDropNonStringExtras",
			customizers: []TokenCustomizer{&staticCustomizer{key: "attempts", value: 3}},
			expected:    map[string]string{"code": "thecode"},
			absent:      []string{"attempts"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			builder := NewCustomizingRedirectURLBuilder(
				&AuthorizationCodeRedirectURLBuilder{},
				NewTokenCustomizerRegistry(tc.customizers...),
				nil,
			)

			redirectURL, err := builder.CreateRedirectURL(context.Background(), request, code)
			require.NoError(t, err)

			parsed, err := url.Parse(redirectURL)
			require.NoError(t, err)

			for key, value := range tc.expected {
				assert.Equal(t, value, parsed.Query().Get(key))
			}

			for _, key := range tc.absent {
				assert.False(t, parsed.Query().Has(key))
			}
		})
	}
}

func TestAuthorizeResponseToURLPreservesExistingQuery(t *testing.T) {
	resp := NewAuthorizeResponse()
	resp.AddQuery("code", "thecode")

	redirectURL, err := resp.ToURL("https://app.example/cb?tenant=t1")
	require.NoError(t, err)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)

	assert.Equal(t, "t1", parsed.Query().Get("tenant"))
	assert.Equal(t, "thecode", parsed.Query().Get("code"))
}

func TestAuthorizeResponseToURLEncodesFragmentOnce(t *testing.T) {
	resp := NewAuthorizeResponse()
	resp.AddFragment("scope", "read write")

	redirectURL, err := resp.ToURL("https://app.example/cb")
	require.NoError(t, err)

	require.True(t, strings.Contains(redirectURL, "#"))

	fragment, err := url.ParseQuery(redirectURL[strings.Index(redirectURL, "#")+1:])
	require.NoError(t, err)

	assert.Equal(t, "read write", fragment.Get("scope"))
}
