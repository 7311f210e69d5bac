// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"encoding/json"
	"time"
)

// AccessTokenResponse is the wire-level JSON response of the token endpoint.
// Absent optional fields are omitted, not null.
type AccessTokenResponse struct {
	Active      bool   `json:"active"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
	Scope       string `json:"scope,omitempty"`
	IDToken     string `json:"id_token,omitempty"`

	// Extra carries customizer-contributed parameters, e.g. 'refresh_token'.
	Extra map[string]any `json:"-"`
}

// NewAccessTokenResponse assembles the response for an access token. Expired
// tokens render as exactly {"active": false} with all other fields omitted,
// never as an error.
func NewAccessTokenResponse(token *AccessToken, now time.Time) *AccessTokenResponse {
	if IsTokenExpired(token, now) {
		return &AccessTokenResponse{Active: false}
	}

	return &AccessTokenResponse{
		Active:      true,
		AccessToken: token.TokenValue,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn(now),
		Scope:       token.Scope,
	}
}

// NewCombinedTokenResponse assembles the response for a combined token,
// carrying its string-valued extra parameters alongside the standard fields.
func NewCombinedTokenResponse(token *CombinedToken, now time.Time) *AccessTokenResponse {
	if IsTokenExpired(token, now) {
		return &AccessTokenResponse{Active: false}
	}

	resp := &AccessTokenResponse{
		Active:      true,
		AccessToken: token.TokenValue,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn(now),
		Scope:       token.Scope,
	}

	for key, value := range token.Extra {
		switch key {
		case "token_type", "expires_in", "access_token", "scope":
			// Already covered by the standard fields.
		case "id_token":
			if s, ok := value.(string); ok {
				resp.IDToken = s
			}
		default:
			if resp.Extra == nil {
				resp.Extra = make(map[string]any)
			}

			resp.Extra[key] = value
		}
	}

	return resp
}

// MarshalJSON flattens Extra into the top-level object.
func (r *AccessTokenResponse) MarshalJSON() ([]byte, error) {
	type alias AccessTokenResponse

	base, err := json.Marshal((*alias)(r))
	if err != nil {
		return nil, err
	}

	if len(r.Extra) == 0 {
		return base, nil
	}

	var merged map[string]any
	if err = json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}

	for key, value := range r.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}

	return json.Marshal(merged)
}
