// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	stderr "errors"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/odeyalo/kyrie/internal/errorsx"
)

var (
	// ErrInvalidRequest represents the 'invalid_request' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrInvalidRequest = &RFC6749Error{
		ErrorField:       errInvalidRequestName,
		DescriptionField: "The request is missing a required parameter, includes an invalid parameter value, includes a parameter more than once, or is otherwise malformed.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrInvalidClient represents the 'invalid_client' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-5.2.
	ErrInvalidClient = &RFC6749Error{
		ErrorField:       errInvalidClientName,
		DescriptionField: "Client authentication failed (e.g., unknown client, no client authentication included, or unsupported authentication method).",
		CodeField:        http.StatusUnauthorized,
	}

	// ErrInvalidRedirectURI represents the 'invalid_redirect_uri' error from OpenID Connect Dynamic Client Registration 1.0.
	//
	// See: https://openid.net/specs/openid-connect-registration-1_0.html#RegistrationError.
	ErrInvalidRedirectURI = &RFC6749Error{
		ErrorField:       errInvalidRedirectURIName,
		DescriptionField: "The value of one or more redirect_uris is invalid.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrUnsupportedResponseType represents the 'unsupported_response_type' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrUnsupportedResponseType = &RFC6749Error{
		ErrorField:       errUnsupportedResponseTypeName,
		DescriptionField: "The authorization server does not support obtaining a token using this method.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrUnsupportedGrantType represents the 'unsupported_grant_type' error from RFC6749 for the Access Token Exchange.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-5.2.
	ErrUnsupportedGrantType = &RFC6749Error{
		ErrorField:       errUnsupportedGrantTypeName,
		DescriptionField: "The authorization grant type is not supported by the authorization server.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrInvalidGrant represents the 'invalid_grant' error from RFC6749 for the Access Token Exchange.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-5.2.
	ErrInvalidGrant = &RFC6749Error{
		ErrorField:       errInvalidGrantName,
		DescriptionField: "The provided authorization grant (e.g., authorization code, resource owner credentials) or refresh token is invalid, expired, revoked, does not match the redirection URI used in the authorization request, or was issued to another client.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrInvalidScope represents the 'invalid_scope' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrInvalidScope = &RFC6749Error{
		ErrorField:       errInvalidScopeName,
		DescriptionField: "The requested scope is invalid, unknown, or malformed.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrServerError represents the 'server_error' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrServerError = &RFC6749Error{
		ErrorField:       errServerErrorName,
		DescriptionField: "The authorization server encountered an unexpected condition that prevented it from fulfilling the request.",
		CodeField:        http.StatusInternalServerError,
	}

	// ErrNotFound is returned by stores when the requested entry does not exist.
	ErrNotFound = &RFC6749Error{
		ErrorField:       errNotFoundName,
		DescriptionField: "Could not find the requested resource(s).",
		CodeField:        http.StatusNotFound,
	}
)

const (
	errInvalidRequestName          = "invalid_request"
	errInvalidClientName           = "invalid_client"
	errInvalidRedirectURIName      = "invalid_redirect_uri"
	errUnsupportedResponseTypeName = "unsupported_response_type"
	errUnsupportedGrantTypeName    = "unsupported_grant_type"
	errInvalidGrantName            = "invalid_grant"
	errInvalidScopeName            = "invalid_scope"
	errServerErrorName             = "server_error"
	errNotFoundName                = "not_found"
	errUnknownErrorName            = "error"
)

// RFC6749Error is the error type surfaced by every component in this module. It
// renders to the standard OAuth2 error object.
type RFC6749Error struct {
	ErrorField       string
	DescriptionField string
	HintField        string
	CodeField        int
	DebugField       string
	cause            error
}

// ErrorToRFC6749Error converts any error to an RFC6749Error, mapping unknown
// errors to a fallback value so callers can always render a deterministic
// OAuth2 error response.
func ErrorToRFC6749Error(err error) *RFC6749Error {
	var e *RFC6749Error

	if errors.As(err, &e) {
		return e
	}

	return &RFC6749Error{
		ErrorField:       errUnknownErrorName,
		DescriptionField: "The error is unrecognizable",
		DebugField:       err.Error(),
		CodeField:        http.StatusInternalServerError,
		cause:            err,
	}
}

// StackTrace returns the stack trace of the cause, if any.
func (e *RFC6749Error) StackTrace() (trace errors.StackTrace) {
	if e.cause == e || e.cause == nil {
		return
	}

	if st := errorsx.StackTracer(nil); stderr.As(e.cause, &st) {
		trace = st.StackTrace()
	}

	return
}

func (e RFC6749Error) Unwrap() error {
	return e.cause
}

func (e RFC6749Error) WithWrap(cause error) *RFC6749Error {
	e.cause = cause

	return &e
}

func (e RFC6749Error) WithHint(hint string) *RFC6749Error {
	e.HintField = hint

	return &e
}

func (e RFC6749Error) WithHintf(hint string, args ...any) *RFC6749Error {
	e.HintField = fmt.Sprintf(hint, args...)

	return &e
}

func (e RFC6749Error) WithDebug(debug string) *RFC6749Error {
	e.DebugField = debug

	return &e
}

func (e RFC6749Error) WithDebugf(debug string, args ...any) *RFC6749Error {
	e.DebugField = fmt.Sprintf(debug, args...)

	return &e
}

func (e RFC6749Error) WithDescription(description string) *RFC6749Error {
	e.DescriptionField = description

	return &e
}

func (e *RFC6749Error) Error() string {
	return e.ErrorField
}

// GetDescription returns the OAuth2 'error_description' field value.
func (e *RFC6749Error) GetDescription() string {
	if e.HintField == "" {
		return e.DescriptionField
	}

	return e.DescriptionField + " " + e.HintField
}

// StatusCode returns the HTTP status code the error maps to.
func (e *RFC6749Error) StatusCode() int {
	if e.CodeField == 0 {
		return http.StatusInternalServerError
	}

	return e.CodeField
}

// Is matches against the sentinel values above by OAuth2 error name and status
// code rather than pointer identity, so wrapped copies still compare equal.
func (e *RFC6749Error) Is(target error) bool {
	t, ok := target.(*RFC6749Error)
	if !ok {
		return false
	}

	return e.ErrorField == t.ErrorField && e.CodeField == t.CodeField
}
