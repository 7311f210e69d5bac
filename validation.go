// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"net/url"
	"sort"

	"go.uber.org/zap"
)

// ValidationResult is the immutable outcome of a single validation step.
// Failure is always a structured result, never a raised error, so callers can
// render a deterministic OAuth2 error response.
type ValidationResult struct {
	Success   bool
	Message   string
	ErrorKind *RFC6749Error
}

// ValidationSuccess returns a passing result.
func ValidationSuccess() ValidationResult {
	return ValidationResult{Success: true}
}

// ValidationFailed returns a failing result carrying the OAuth2 error kind.
func ValidationFailed(kind *RFC6749Error, message string) ValidationResult {
	return ValidationResult{Success: false, Message: message, ErrorKind: kind}
}

// Err renders the result as an RFC6749Error, or nil for a passing result.
func (r ValidationResult) Err() error {
	if r.Success {
		return nil
	}

	return r.ErrorKind.WithHint(r.Message)
}

// AuthorizationRequestValidationStep is one independent check over an
// authorization request.
type AuthorizationRequestValidationStep interface {
	// Validate checks the request. It must not mutate it.
	Validate(ctx context.Context, request *AuthorizationRequest) ValidationResult

	// Priority declares the step's relative ordering; lower runs earlier.
	// Steps touching a data store declare high priorities so that requests
	// already malformed never pay for a lookup.
	Priority() int
}

// ChainAuthorizationRequestValidator runs registered steps in priority order
// and short-circuits on the first failure.
type ChainAuthorizationRequestValidator struct {
	steps  []AuthorizationRequestValidationStep
	logger *zap.Logger
}

// NewChainAuthorizationRequestValidator builds a validator from the given
// steps, sorted by their declared priority.
func NewChainAuthorizationRequestValidator(logger *zap.Logger, steps ...AuthorizationRequestValidationStep) *ChainAuthorizationRequestValidator {
	if logger == nil {
		logger = zap.NewNop()
	}

	sorted := make([]AuthorizationRequestValidationStep, len(steps))
	copy(sorted, steps)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})

	return &ChainAuthorizationRequestValidator{steps: sorted, logger: logger}
}

// Validate returns the first failing result, or success if all steps pass.
func (v *ChainAuthorizationRequestValidator) Validate(ctx context.Context, request *AuthorizationRequest) ValidationResult {
	for _, step := range v.steps {
		if result := step.Validate(ctx, request); !result.Success {
			v.logger.Debug("authorization request rejected",
				zap.String("client_id", request.ClientID),
				zap.String("error", result.ErrorKind.ErrorField),
				zap.String("message", result.Message))

			return result
		}
	}

	return ValidationSuccess()
}

// ClientIDValidationStep rejects requests whose client id does not resolve to
// a known client.
type ClientIDValidationStep struct {
	Clients ClientManager
}

func (s *ClientIDValidationStep) Validate(ctx context.Context, request *AuthorizationRequest) ValidationResult {
	if _, err := s.Clients.GetClient(ctx, request.ClientID); err != nil {
		return ValidationFailed(ErrInvalidClient, "The client id does not exist.")
	}

	return ValidationSuccess()
}

func (s *ClientIDValidationStep) Priority() int {
	return 10
}

// RedirectURISyntaxValidationStep rejects redirect URLs that are not
// well-formed absolute URLs. It performs no store lookups.
type RedirectURISyntaxValidationStep struct{}

func (s *RedirectURISyntaxValidationStep) Validate(_ context.Context, request *AuthorizationRequest) ValidationResult {
	parsed, err := url.Parse(request.RedirectURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return ValidationFailed(ErrInvalidRedirectURI, "The redirect_uri parameter is not a well-formed absolute URL.")
	}

	return ValidationSuccess()
}

func (s *RedirectURISyntaxValidationStep) Priority() int {
	return 20
}

// RegisteredRedirectURIValidationStep rejects redirect URLs missing from the
// client's registered allow-list. It is ordered last: the lookup it needs was
// already paid for by the client-identity check, and requests failed by the
// cheaper steps never reach it.
type RegisteredRedirectURIValidationStep struct {
	Clients ClientManager
}

func (s *RegisteredRedirectURIValidationStep) Validate(ctx context.Context, request *AuthorizationRequest) ValidationResult {
	client, err := s.Clients.GetClient(ctx, request.ClientID)
	if err != nil {
		return ValidationFailed(ErrInvalidClient, "The client id does not exist.")
	}

	if !StringInSlice(request.RedirectURL, client.GetRedirectURIs()) {
		return ValidationFailed(ErrInvalidRedirectURI, "The redirect uri is not registered as trusted.")
	}

	return ValidationSuccess()
}

func (s *RegisteredRedirectURIValidationStep) Priority() int {
	return 90
}

// ScopeValidationStep rejects requests asking for scopes outside the client's
// allow-list. Requests without scopes pass; scope defaulting is the caller's
// concern.
type ScopeValidationStep struct {
	Clients ClientManager
}

func (s *ScopeValidationStep) Validate(ctx context.Context, request *AuthorizationRequest) ValidationResult {
	if len(request.Scopes) == 0 {
		return ValidationSuccess()
	}

	client, err := s.Clients.GetClient(ctx, request.ClientID)
	if err != nil {
		return ValidationFailed(ErrInvalidClient, "The client id does not exist.")
	}

	if !client.GetScopes().Has(request.Scopes...) {
		return ValidationFailed(ErrInvalidScope, "The request asks for scopes the client may not request.")
	}

	return ValidationSuccess()
}

func (s *ScopeValidationStep) Priority() int {
	return 100
}

// NewDefaultAuthorizationRequestValidator wires the canonical step chain.
func NewDefaultAuthorizationRequestValidator(clients ClientManager, logger *zap.Logger) *ChainAuthorizationRequestValidator {
	return NewChainAuthorizationRequestValidator(
		logger,
		&ClientIDValidationStep{Clients: clients},
		&RedirectURISyntaxValidationStep{},
		&RegisteredRedirectURIValidationStep{Clients: clients},
		&ScopeValidationStep{Clients: clients},
	)
}
