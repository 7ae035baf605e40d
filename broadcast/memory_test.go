package broadcast_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-storefront-client/broadcast"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToOtherContexts(t *testing.T) {
	bus := broadcast.NewBus()
	first := bus.NewBroadcaster()
	second := bus.NewBroadcaster()

	var received []string
	second.Subscribe(func(event string) {
		received = append(received, event)
	})

	require.NoError(t, first.Publish(context.Background(), broadcast.CredentialChanged))
	require.Equal(t, []string{broadcast.CredentialChanged}, received)
}

func TestBusSuppressesOwnPublishes(t *testing.T) {
	bus := broadcast.NewBus()
	b := bus.NewBroadcaster()

	var received []string
	b.Subscribe(func(event string) {
		received = append(received, event)
	})

	require.NoError(t, b.Publish(context.Background(), broadcast.CredentialChanged))
	require.Empty(t, received)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := broadcast.NewBus()
	first := bus.NewBroadcaster()
	second := bus.NewBroadcaster()

	var received []string
	unsubscribe := second.Subscribe(func(event string) {
		received = append(received, event)
	})
	unsubscribe()

	require.NoError(t, first.Publish(context.Background(), broadcast.CredentialChanged))
	require.Empty(t, received)
}
