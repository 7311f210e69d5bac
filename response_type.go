// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"github.com/odeyalo/kyrie/internal/consts"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// FlowSide describes which part of the redirect URL a response type's artifact
// travels in: server-side response types go to the query string, client-side
// response types go to the URL fragment.
type FlowSide int

const (
	FlowSideServer FlowSide = iota
	FlowSideClient
)

func (s FlowSide) String() string {
	if s == FlowSideClient {
		return "client_side"
	}

	return "server_side"
}

// ResponseType is a value object describing a single OAuth2 response type as
// requested by a client in the authorization request.
//
// See: https://datatracker.ietf.org/doc/html/rfc6749#section-3.1.1.
type ResponseType struct {
	SimplifiedName string
	FlowSide       FlowSide
}

var (
	// ResponseTypeCode is the 'code' response type of the authorization code grant.
	ResponseTypeCode = ResponseType{SimplifiedName: consts.ResponseTypeCode, FlowSide: FlowSideServer}

	// ResponseTypeToken is the 'token' response type of the implicit grant.
	ResponseTypeToken = ResponseType{SimplifiedName: consts.ResponseTypeToken, FlowSide: FlowSideClient}

	// ResponseTypeIDToken is the 'id_token' response type defined by OpenID Connect.
	ResponseTypeIDToken = ResponseType{SimplifiedName: consts.ResponseTypeIDToken, FlowSide: FlowSideClient}
)

// ResponseTypeRegistry resolves simplified response type names to their value
// objects. It is constructed once at startup and never mutated afterwards.
type ResponseTypeRegistry struct {
	types map[string]ResponseType
}

// NewResponseTypeRegistry builds a registry from the given response types.
// Simplified names must be unique across the whole set, including OpenID
// Connect extensions.
func NewResponseTypeRegistry(types ...ResponseType) (*ResponseTypeRegistry, error) {
	registry := &ResponseTypeRegistry{types: make(map[string]ResponseType, len(types))}

	for _, t := range types {
		if _, ok := registry.types[t.SimplifiedName]; ok {
			return nil, errorsx.WithStack(ErrServerError.WithDebugf("Response type '%s' is registered twice.", t.SimplifiedName))
		}

		registry.types[t.SimplifiedName] = t
	}

	return registry, nil
}

// NewDefaultResponseTypeRegistry returns a registry holding the canonical
// OAuth2 response types plus the OpenID Connect 'id_token' extension.
func NewDefaultResponseTypeRegistry() *ResponseTypeRegistry {
	registry, _ := NewResponseTypeRegistry(ResponseTypeCode, ResponseTypeToken, ResponseTypeIDToken)

	return registry
}

// Lookup resolves a simplified name to its response type.
func (r *ResponseTypeRegistry) Lookup(simplifiedName string) (ResponseType, bool) {
	t, ok := r.types[simplifiedName]

	return t, ok
}

// Parse resolves a list of simplified names, failing on the first unknown one.
func (r *ResponseTypeRegistry) Parse(simplifiedNames []string) ([]ResponseType, error) {
	types := make([]ResponseType, 0, len(simplifiedNames))

	for _, name := range simplifiedNames {
		t, ok := r.types[name]
		if !ok {
			return nil, errorsx.WithStack(ErrUnsupportedResponseType.WithHintf("The response type '%s' is not registered.", name))
		}

		types = append(types, t)
	}

	return types, nil
}
