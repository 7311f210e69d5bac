// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

// User is an already-authenticated end-user identity. The core never
// authenticates users itself; the identity is supplied by the session
// collaborator (or, for the password grant, by a UserAuthenticationService).
type User struct {
	ID          string
	Username    string
	Authorities []string

	// AdditionalInfo carries extra identity attributes, e.g. an email address,
	// surfaced as ID token claims.
	AdditionalInfo map[string]any
}
