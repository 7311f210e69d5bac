// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"github.com/odeyalo/kyrie/internal/consts"
)

// GrantType is a value object describing an OAuth2 grant type together with
// the response types it can serve. The supported-response-type list is fixed
// at construction and consulted, not computed, during resolution.
//
// See: https://datatracker.ietf.org/doc/html/rfc6749#section-1.3.
type GrantType struct {
	GrantName              string
	SupportedResponseTypes []ResponseType
}

// Supports reports whether every requested response type is in this grant
// type's supported set. Order is irrelevant.
func (g GrantType) Supports(requested []ResponseType) bool {
	for _, rt := range requested {
		var found bool

		for _, st := range g.SupportedResponseTypes {
			if st.SimplifiedName == rt.SimplifiedName {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

var (
	// GrantTypeAuthorizationCode serves exactly the 'code' response type.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-1.3.1.
	GrantTypeAuthorizationCode = GrantType{
		GrantName:              consts.GrantTypeAuthorizationCode,
		SupportedResponseTypes: []ResponseType{ResponseTypeCode},
	}

	// GrantTypeImplicit serves exactly the 'token' response type.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-1.3.2.
	GrantTypeImplicit = GrantType{
		GrantName:              consts.GrantTypeImplicit,
		SupportedResponseTypes: []ResponseType{ResponseTypeToken},
	}

	// GrantTypeMultiple is the hybrid grant. It is the only grant type allowing
	// more than one response type at once and serves every combination of
	// 'code', 'token' and 'id_token'.
	//
	// See: https://openid.net/specs/oauth-v2-multiple-response-types-1_0.html#Combinations.
	GrantTypeMultiple = GrantType{
		GrantName:              consts.GrantTypeMultiple,
		SupportedResponseTypes: []ResponseType{ResponseTypeCode, ResponseTypeToken, ResponseTypeIDToken},
	}

	// GrantTypePassword is the resource owner password credentials grant. It is
	// reachable only through the token endpoint and serves no response type.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-1.3.3.
	GrantTypePassword = GrantType{
		GrantName: consts.GrantTypePassword,
	}

	// GrantTypeRefreshToken exchanges a refresh token for a new access token.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-1.5.
	GrantTypeRefreshToken = GrantType{
		GrantName: consts.GrantTypeRefreshToken,
	}
)

// GrantTypeRegistry holds the grant types known to the server. It is an
// explicit, constructed object passed to the resolver at startup.
type GrantTypeRegistry struct {
	byName map[string]GrantType
	all    []GrantType
}

// NewGrantTypeRegistry builds a registry preserving registration order.
func NewGrantTypeRegistry(types ...GrantType) *GrantTypeRegistry {
	registry := &GrantTypeRegistry{
		byName: make(map[string]GrantType, len(types)),
		all:    make([]GrantType, 0, len(types)),
	}

	for _, t := range types {
		registry.byName[t.GrantName] = t
		registry.all = append(registry.all, t)
	}

	return registry
}

// NewDefaultGrantTypeRegistry returns a registry with the canonical grant types.
func NewDefaultGrantTypeRegistry() *GrantTypeRegistry {
	return NewGrantTypeRegistry(
		GrantTypeAuthorizationCode,
		GrantTypeImplicit,
		GrantTypeMultiple,
		GrantTypePassword,
		GrantTypeRefreshToken,
	)
}

// Lookup resolves a grant name to its grant type.
func (r *GrantTypeRegistry) Lookup(grantName string) (GrantType, bool) {
	t, ok := r.byName[grantName]

	return t, ok
}

// All returns the registered grant types in registration order.
func (r *GrantTypeRegistry) All() []GrantType {
	return r.all
}
