// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Orchestrator drives a complete authorization request: validate, resolve the
// grant type, run the flow handler, build the redirect URL, publish the
// completion event. It owns no long-lived state; every call is independent.
type Orchestrator struct {
	Validator *ChainAuthorizationRequestValidator
	Resolver  GrantTypeResolver
	Handlers  FlowHandlerFactory
	Redirects *RedirectURLBuilderFactory
	Events    EventPublisher
	Logger    *zap.Logger
}

// Authorize handles the request for an already-authenticated user and returns
// the redirect URL to send back to the client. Failures are RFC6749Errors the
// caller renders as an OAuth2 error redirect or body.
func (o *Orchestrator) Authorize(ctx context.Context, request *AuthorizationRequest, user User) (string, error) {
	if result := o.Validator.Validate(ctx, request); !result.Success {
		return "", result.Err()
	}

	grantType, err := o.Resolver.ResolveGrantType(request.ResponseTypes)
	if err != nil {
		return "", err
	}

	handler, err := o.Handlers.GetHandler(grantType)
	if err != nil {
		return "", err
	}

	token, err := handler.HandleFlow(ctx, request, user)
	if err != nil {
		return "", err
	}

	builder, err := o.Redirects.GetBuilder(grantType)
	if err != nil {
		return "", err
	}

	redirectURL, err := builder.CreateRedirectURL(ctx, request, token)
	if err != nil {
		return "", err
	}

	if o.Logger != nil {
		o.Logger.Debug("authorization request finished",
			zap.String("client_id", request.ClientID),
			zap.String("grant_type", grantType.GrantName))
	}

	if o.Events != nil {
		o.Events.Publish(ctx, NewAuthorizationProcessingFinishedEvent(
			request.ClientID, user.ID, grantType.GrantName, redirectURL, time.Now().UTC()))
	}

	return redirectURL, nil
}
