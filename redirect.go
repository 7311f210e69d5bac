// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/odeyalo/kyrie/internal/consts"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// RedirectURLBuilder turns a flow handler's token result into the final
// redirect URL sent back to the client.
type RedirectURLBuilder interface {
	// CreateRedirectURL assembles the redirect URL for the request.
	CreateRedirectURL(ctx context.Context, request *AuthorizationRequest, token Token) (string, error)

	// SupportedGrantType returns the grant type this builder serves.
	SupportedGrantType() GrantType
}

// RedirectURLBuilderFactory selects the builder for a resolved grant type.
type RedirectURLBuilderFactory struct {
	builders map[string]RedirectURLBuilder
}

func NewRedirectURLBuilderFactory(builders ...RedirectURLBuilder) *RedirectURLBuilderFactory {
	byName := make(map[string]RedirectURLBuilder, len(builders))
	for _, b := range builders {
		byName[b.SupportedGrantType().GrantName] = b
	}

	return &RedirectURLBuilderFactory{builders: byName}
}

func (f *RedirectURLBuilderFactory) GetBuilder(grantType GrantType) (RedirectURLBuilder, error) {
	b, ok := f.builders[grantType.GrantName]
	if !ok {
		return nil, errorsx.WithStack(ErrUnsupportedResponseType.WithHintf("No redirect URL builder is registered for grant type '%s'.", grantType.GrantName))
	}

	return b, nil
}

// AuthorizationCodeRedirectURLBuilder builds the redirect for the
// authorization code flow: 'code' and 'state' travel in the query string.
type AuthorizationCodeRedirectURLBuilder struct{}

func (b *AuthorizationCodeRedirectURLBuilder) CreateRedirectURL(_ context.Context, request *AuthorizationRequest, token Token) (string, error) {
	code, ok := token.(*AuthorizationCode)
	if !ok {
		return "", errorsx.WithStack(ErrServerError.WithDebugf("The authorization code redirect requires an authorization code, got %T.", token))
	}

	resp := NewAuthorizeResponse()
	if request.State != "" {
		resp.AddQuery(consts.FormParameterState, request.State)
	}

	resp.AddQuery(consts.FormParameterCode, code.CodeValue)

	return resp.ToURL(request.RedirectURL)
}

func (b *AuthorizationCodeRedirectURLBuilder) SupportedGrantType() GrantType {
	return GrantTypeAuthorizationCode
}

// ImplicitRedirectURLBuilder builds the redirect for the implicit flow. All
// artifacts are client-side and travel in the URL fragment.
type ImplicitRedirectURLBuilder struct{}

func (b *ImplicitRedirectURLBuilder) CreateRedirectURL(_ context.Context, request *AuthorizationRequest, token Token) (string, error) {
	accessToken, ok := token.(*AccessToken)
	if !ok {
		return "", errorsx.WithStack(ErrServerError.WithDebugf("The implicit redirect requires an access token, got %T.", token))
	}

	resp := NewAuthorizeResponse()
	resp.AddFragment(consts.FormParameterAccessToken, accessToken.TokenValue)
	resp.AddFragment(consts.FormParameterTokenType, accessToken.TokenType)
	resp.AddFragment(consts.FormParameterExpiresIn, strconv.FormatInt(accessToken.ExpiresIn(time.Now().UTC()), 10))

	if accessToken.Scope != "" {
		resp.AddFragment(consts.FormParameterScope, accessToken.Scope)
	}

	if request.State != "" {
		resp.AddFragment(consts.FormParameterState, request.State)
	}

	return resp.ToURL(request.RedirectURL)
}

func (b *ImplicitRedirectURLBuilder) SupportedGrantType() GrantType {
	return GrantTypeImplicit
}

// MultipleResponseTypeRedirectURLBuilder builds the redirect for the hybrid
// flow. The code, being server-side, goes to the query string; access token
// and ID token go to the fragment.
type MultipleResponseTypeRedirectURLBuilder struct{}

func (b *MultipleResponseTypeRedirectURLBuilder) CreateRedirectURL(_ context.Context, request *AuthorizationRequest, token Token) (string, error) {
	if len(request.ResponseTypes) < 2 {
		return "", errorsx.WithStack(ErrServerError.WithDebugf("The hybrid redirect requires at least two response types, got %d.", len(request.ResponseTypes)))
	}

	combined, ok := token.(*CombinedToken)
	if !ok {
		return "", errorsx.WithStack(ErrServerError.WithDebugf("The hybrid redirect requires a combined token, got %T.", token))
	}

	resp := NewAuthorizeResponse()

	if code, ok := combined.GetExtra(consts.FormParameterCode).(string); ok && code != "" {
		resp.AddQuery(consts.FormParameterCode, code)
	}

	if combined.TokenValue != "" {
		resp.AddFragment(consts.FormParameterAccessToken, combined.TokenValue)
		resp.AddFragment(consts.FormParameterTokenType, combined.TokenType)

		if expiresIn, ok := combined.GetExtra(consts.FormParameterExpiresIn).(int64); ok {
			resp.AddFragment(consts.FormParameterExpiresIn, strconv.FormatInt(expiresIn, 10))
		}
	}

	if idToken, ok := combined.GetExtra(consts.FormParameterIDToken).(string); ok && idToken != "" {
		resp.AddFragment(consts.FormParameterIDToken, idToken)
	}

	if request.State != "" {
		resp.AddQuery(consts.FormParameterState, request.State)
	}

	return resp.ToURL(request.RedirectURL)
}

func (b *MultipleResponseTypeRedirectURLBuilder) SupportedGrantType() GrantType {
	return GrantTypeMultiple
}

// CustomizingRedirectURLBuilder decorates a base builder with the customizer
// chain. It is composed explicitly at construction time, once, in a known
// order.
type CustomizingRedirectURLBuilder struct {
	Base        RedirectURLBuilder
	Customizers *TokenCustomizerRegistry
	Logger      *zap.Logger
}

func NewCustomizingRedirectURLBuilder(base RedirectURLBuilder, customizers *TokenCustomizerRegistry, logger *zap.Logger) *CustomizingRedirectURLBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CustomizingRedirectURLBuilder{Base: base, Customizers: customizers, Logger: logger}
}

func (b *CustomizingRedirectURLBuilder) CreateRedirectURL(ctx context.Context, request *AuthorizationRequest, token Token) (string, error) {
	rawURL, err := b.Base.CreateRedirectURL(ctx, request, token)
	if err != nil {
		return "", err
	}

	builder := NewCombinedToken()

	for _, customizer := range b.Customizers.Customizers() {
		// A misbehaving customizer must never abort redirect construction.
		if err := b.runCustomizer(ctx, customizer, request, token, builder); err != nil {
			b.Logger.Error("token customizer failed, ignoring its result",
				zap.String("client_id", request.ClientID),
				zap.Error(err))
		}
	}

	resp := NewAuthorizeResponse()

	// Only string-valued parameters are representable on the wire here;
	// everything else is dropped.
	for key, value := range builder.Extra {
		if s, ok := value.(string); ok {
			resp.AddQuery(key, s)
		}
	}

	return resp.ToURL(rawURL)
}

func (b *CustomizingRedirectURLBuilder) runCustomizer(ctx context.Context, customizer TokenCustomizer, request *AuthorizationRequest, token Token, builder *CombinedToken) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorsx.WithStack(fmt.Errorf("customizer panic: %v", r))
		}
	}()

	return customizer.CustomizeToken(ctx, request, token, builder)
}

func (b *CustomizingRedirectURLBuilder) SupportedGrantType() GrantType {
	return b.Base.SupportedGrantType()
}
