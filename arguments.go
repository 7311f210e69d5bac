// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

// Arguments is a list of string arguments, e.g. requested scopes.
type Arguments []string

// Has checks, in a case-sensitive manner, that all of the items
// provided exist in arguments.
func (r Arguments) Has(items ...string) bool {
	for _, item := range items {
		if !StringInSlice(item, r) {
			return false
		}
	}

	return true
}

// StringInSlice returns true if needle exists in haystack.
func StringInSlice(needle string, haystack []string) bool {
	for _, b := range haystack {
		if b == needle {
			return true
		}
	}

	return false
}
