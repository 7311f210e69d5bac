// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

// AuthorizationRequest is an inbound request to the authorization endpoint.
// It is immutable once constructed; a value is created per inbound request and
// lives for the duration of request handling. Callers thread it explicitly
// through the call chain, never via ambient thread or goroutine state.
type AuthorizationRequest struct {
	ClientID      string
	RedirectURL   string
	Scopes        Arguments
	ResponseTypes []ResponseType
	State         string
}

// HasResponseType reports whether the request asks for the given response type.
func (r *AuthorizationRequest) HasResponseType(t ResponseType) bool {
	for _, rt := range r.ResponseTypes {
		if rt.SimplifiedName == t.SimplifiedName {
			return true
		}
	}

	return false
}

// ResponseTypeNames returns the simplified names of the requested response types.
func (r *AuthorizationRequest) ResponseTypeNames() Arguments {
	names := make(Arguments, 0, len(r.ResponseTypes))
	for _, rt := range r.ResponseTypes {
		names = append(names, rt.SimplifiedName)
	}

	return names
}
