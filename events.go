// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Event is a data-only domain notification emitted by the flow engine.
// Delivery is synchronous, in listener registration order; side effects such
// as remember-me and housekeeping live in the listeners, not the core.
type Event interface {
	// EventName identifies the event kind.
	EventName() string

	// OccurredAt returns the instant the event was recorded.
	OccurredAt() time.Time
}

type baseEvent struct {
	at time.Time
}

func (e baseEvent) OccurredAt() time.Time {
	return e.at
}

// AuthorizationProcessingFinishedEvent signals that an authorization request
// was fully handled and the redirect URL produced.
type AuthorizationProcessingFinishedEvent struct {
	baseEvent

	ClientID    string
	UserID      string
	GrantType   string
	RedirectURL string
}

func (AuthorizationProcessingFinishedEvent) EventName() string {
	return "authorization_processing_finished"
}

// LoginGrantedEvent signals that a resource owner authenticated successfully.
type LoginGrantedEvent struct {
	baseEvent

	User User
}

func (LoginGrantedEvent) EventName() string {
	return "user_login_granted"
}

// LoginFailedEvent signals a failed resource owner authentication attempt.
type LoginFailedEvent struct {
	baseEvent

	Username string
}

func (LoginFailedEvent) EventName() string {
	return "user_login_failed"
}

// EventListener consumes domain events.
type EventListener interface {
	OnEvent(ctx context.Context, event Event)
}

// EventListenerFunc adapts a function to the EventListener interface.
type EventListenerFunc func(ctx context.Context, event Event)

func (f EventListenerFunc) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}

// EventPublisher emits domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// SyncEventMulticaster delivers events synchronously to listeners registered
// at construction, in registration order. A panicking listener is isolated
// and logged; it never breaks delivery to the remaining listeners.
type SyncEventMulticaster struct {
	listeners []EventListener
	logger    *zap.Logger
}

func NewSyncEventMulticaster(logger *zap.Logger, listeners ...EventListener) *SyncEventMulticaster {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SyncEventMulticaster{listeners: listeners, logger: logger}
}

func (m *SyncEventMulticaster) Publish(ctx context.Context, event Event) {
	for _, listener := range m.listeners {
		m.deliver(ctx, listener, event)
	}
}

func (m *SyncEventMulticaster) deliver(ctx context.Context, listener EventListener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("event listener panicked",
				zap.String("event", event.EventName()),
				zap.Any("panic", r))
		}
	}()

	listener.OnEvent(ctx, event)
}

func newBaseEvent(now time.Time) baseEvent {
	return baseEvent{at: now}
}

// NewAuthorizationProcessingFinishedEvent builds the completion event.
func NewAuthorizationProcessingFinishedEvent(clientID, userID, grantType, redirectURL string, now time.Time) AuthorizationProcessingFinishedEvent {
	return AuthorizationProcessingFinishedEvent{
		baseEvent:   newBaseEvent(now),
		ClientID:    clientID,
		UserID:      userID,
		GrantType:   grantType,
		RedirectURL: redirectURL,
	}
}

// NewLoginGrantedEvent builds the successful-login event.
func NewLoginGrantedEvent(user User, now time.Time) LoginGrantedEvent {
	return LoginGrantedEvent{baseEvent: newBaseEvent(now), User: user}
}

// NewLoginFailedEvent builds the failed-login event.
func NewLoginFailedEvent(username string, now time.Time) LoginFailedEvent {
	return LoginFailedEvent{baseEvent: newBaseEvent(now), Username: username}
}
