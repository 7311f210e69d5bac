// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package oauth2

import (
	"github.com/odeyalo/kyrie"
	"github.com/odeyalo/kyrie/internal/errorsx"
)

// FlowHandlerFactory maps resolved grant types to their flow handlers. The
// table is assembled once at construction; there is no runtime registration.
type FlowHandlerFactory struct {
	handlers map[string]kyrie.FlowHandler
}

var _ kyrie.FlowHandlerFactory = (*FlowHandlerFactory)(nil)

func NewFlowHandlerFactory(handlers ...kyrie.FlowHandler) *FlowHandlerFactory {
	byName := make(map[string]kyrie.FlowHandler, len(handlers))
	for _, h := range handlers {
		byName[h.FlowName()] = h
	}

	return &FlowHandlerFactory{handlers: byName}
}

func (f *FlowHandlerFactory) GetHandler(grantType kyrie.GrantType) (kyrie.FlowHandler, error) {
	h, ok := f.handlers[grantType.GrantName]
	if !ok {
		return nil, errorsx.WithStack(kyrie.ErrUnsupportedGrantType.WithHintf("No flow handler is registered for grant type '%s'.", grantType.GrantName))
	}

	return h, nil
}
