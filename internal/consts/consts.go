// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package consts

const (
	FormParameterState        = "state"
	FormParameterCode         = "code"
	FormParameterAccessToken  = "access_token"
	FormParameterTokenType    = "token_type"
	FormParameterExpiresIn    = "expires_in"
	FormParameterScope        = "scope"
	FormParameterIDToken      = "id_token"
	FormParameterRefreshToken = "refresh_token"
	FormParameterClientSecret = "client_secret"
	FormParameterUsername     = "username"
	FormParameterPassword     = "password"
)

const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeImplicit          = "implicit"
	GrantTypeMultiple          = "multiple"
	GrantTypePassword          = "password"
	GrantTypeRefreshToken      = "refresh_token"
)

const (
	ResponseTypeCode    = "code"
	ResponseTypeToken   = "token"
	ResponseTypeIDToken = "id_token"
)

const (
	TokenTypeBearer = "Bearer"
)
