// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"sort"
	"strings"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	"github.com/odeyalo/kyrie/internal/errorsx"
)

// GrantTypeResolver maps the set of requested response types to the single
// grant type serving it.
type GrantTypeResolver interface {
	// ResolveGrantType returns the grant type whose supported response types
	// cover every requested one. Resolution is total: every reachable
	// combination maps to exactly one grant type or to
	// ErrUnsupportedResponseType. There is no silent default.
	ResolveGrantType(responseTypes []ResponseType) (GrantType, error)
}

// DefaultGrantTypeResolver resolves against an explicit registry, preferring
// grant types with the smallest supported-response-type set so that the
// single-type grants always win over the hybrid grant. Resolutions are cached.
type DefaultGrantTypeResolver struct {
	sorted []GrantType
	cache  *ristretto.Cache
	logger *zap.Logger
}

// NewGrantTypeResolver builds a resolver over the given registry.
func NewGrantTypeResolver(registry *GrantTypeRegistry, logger *zap.Logger) (*DefaultGrantTypeResolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	sorted := make([]GrantType, 0, len(registry.All()))
	sorted = append(sorted, registry.All()...)

	// Grant types with one supported response type must always match first.
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].SupportedResponseTypes) < len(sorted[j].SupportedResponseTypes)
	})

	return &DefaultGrantTypeResolver{sorted: sorted, cache: cache, logger: logger}, nil
}

func (r *DefaultGrantTypeResolver) ResolveGrantType(responseTypes []ResponseType) (GrantType, error) {
	if len(responseTypes) == 0 {
		return GrantType{}, errorsx.WithStack(ErrUnsupportedResponseType.WithHint("The request contains no response types."))
	}

	key := cacheKey(responseTypes)

	if cached, ok := r.cache.Get(key); ok {
		return cached.(GrantType), nil
	}

	for _, grantType := range r.sorted {
		if len(grantType.SupportedResponseTypes) == 0 {
			continue
		}

		if grantType.Supports(responseTypes) {
			r.cache.Set(key, grantType, 1)
			r.logger.Debug("resolved grant type",
				zap.String("grant_type", grantType.GrantName),
				zap.String("response_types", key))

			return grantType, nil
		}
	}

	return GrantType{}, errorsx.WithStack(ErrUnsupportedResponseType.WithHintf("The response type combination '%s' is not supported.", key))
}

// cacheKey canonicalizes the requested set: sorted simplified names joined by
// a space, so equal sets share one cache entry regardless of request order.
func cacheKey(responseTypes []ResponseType) string {
	names := make([]string, 0, len(responseTypes))
	for _, rt := range responseTypes {
		names = append(names, rt.SimplifiedName)
	}

	sort.Strings(names)

	return strings.Join(names, " ")
}
