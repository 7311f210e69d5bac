// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"time"
)

// IntrospectionResponse is the RFC 7662 token introspection wire shape.
//
// See: https://datatracker.ietf.org/doc/html/rfc7662#section-2.2.
type IntrospectionResponse struct {
	Active bool `json:"active"`

	// Scope is the space-separated list of scopes associated with the token.
	Scope string `json:"scope,omitempty"`

	// ExpiresAt is the expiry as seconds since the Unix epoch.
	ExpiresAt int64 `json:"exp,omitempty"`
}

// NewIntrospectionResponse assembles the introspection response for a token.
// Expired tokens render as {"active": false} with the optional fields omitted.
func NewIntrospectionResponse(token *AccessToken, now time.Time) *IntrospectionResponse {
	if IsTokenExpired(token, now) {
		return NonActiveIntrospectionResponse()
	}

	return &IntrospectionResponse{
		Active:    true,
		Scope:     token.Scope,
		ExpiresAt: token.ExpiresAt.Unix(),
	}
}

// NonActiveIntrospectionResponse is the sentinel used when the presented token
// is not found at all.
func NonActiveIntrospectionResponse() *IntrospectionResponse {
	return &IntrospectionResponse{Active: false}
}
