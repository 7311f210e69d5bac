// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package kyrie

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncEventMulticasterDeliversInRegistrationOrder(t *testing.T) {
	var order []string

	multicaster := NewSyncEventMulticaster(
		nil,
		EventListenerFunc(func(_ context.Context, _ Event) { order = append(order, "first") }),
		EventListenerFunc(func(_ context.Context, _ Event) { order = append(order, "second") }),
		EventListenerFunc(func(_ context.Context, _ Event) { order = append(order, "third") }),
	)

	multicaster.Publish(context.Background(), NewLoginFailedEvent("odeyalo", time.Now().UTC()))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSyncEventMulticasterIsolatesPanickingListener(t *testing.T) {
	var delivered []string

	multicaster := NewSyncEventMulticaster(
		nil,
		EventListenerFunc(func(_ context.Context, _ Event) { panic("broken listener") }),
		EventListenerFunc(func(_ context.Context, event Event) { delivered = append(delivered, event.EventName()) }),
	)

	require.NotPanics(t, func() {
		multicaster.Publish(context.Background(), NewLoginGrantedEvent(User{ID: "u1"}, time.Now().UTC()))
	})

	assert.Equal(t, []string{"user_login_granted"}, delivered)
}

func TestEventConstructorsStampOccurredAt(t *testing.T) {
	now := time.Now().UTC()

	finished := NewAuthorizationProcessingFinishedEvent("c1", "u1", "authorization_code", "https://app.example/cb?code=x", now)

	assert.Equal(t, "authorization_processing_finished", finished.EventName())
	assert.Equal(t, now, finished.OccurredAt())
	assert.Equal(t, "c1", finished.ClientID)
	assert.Equal(t, "authorization_code", finished.GrantType)
}
