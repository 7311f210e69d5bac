// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"net/url"
)

// AuthorizeResponse collects the parameters of the authorization redirect.
// Server-side response type artifacts belong in Query, client-side artifacts
// in Fragment.
type AuthorizeResponse struct {
	Query    url.Values
	Fragment url.Values
}

func NewAuthorizeResponse() *AuthorizeResponse {
	return &AuthorizeResponse{
		Query:    url.Values{},
		Fragment: url.Values{},
	}
}

// AddQuery appends a query string parameter.
func (a *AuthorizeResponse) AddQuery(key, value string) {
	a.Query.Add(key, value)
}

// AddFragment appends a URL fragment parameter.
func (a *AuthorizeResponse) AddFragment(key, value string) {
	a.Fragment.Add(key, value)
}

// ToURL renders the redirect URL for the given base redirect URI.
func (a *AuthorizeResponse) ToURL(redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for key, values := range a.Query {
		for _, value := range values {
			q.Add(key, value)
		}
	}

	u.RawQuery = q.Encode()

	out := u.String()

	// The fragment is already form-encoded; appending it raw avoids a second
	// round of escaping by url.URL.
	if len(a.Fragment) > 0 {
		out += "#" + a.Fragment.Encode()
	}

	return out, nil
}
