package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type orgCreated struct {
	Name string
}

func TestPublish_DispatchesToMatchingHandler(t *testing.T) {
	bus := NewEventPublisher(nil)

	var got []string
	bus.Subscribe(func(ev orgCreated) {
		got = append(got, ev.Name)
	})

	bus.Publish(orgCreated{Name: "acme"})
	require.Equal(t, []string{"acme"}, got)
}

func TestPublish_SkipsNonMatchingHandler(t *testing.T) {
	bus := NewEventPublisher(nil)

	called := false
	bus.Subscribe(func(n int) { called = true })

	bus.Publish(orgCreated{Name: "acme"})
	require.False(t, called)
}

func TestPublish_RecoversFromHandlerPanic(t *testing.T) {
	bus := NewEventPublisher(nil)

	bus.Subscribe(func(ev orgCreated) { panic("boom") })
	require.NotPanics(t, func() {
		bus.Publish(orgCreated{Name: "acme"})
	})
}

func TestUnsubscribeAndClear(t *testing.T) {
	bus := NewEventPublisher(nil)

	h := func(ev orgCreated) {}
	bus.Subscribe(h)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(h)
	require.Equal(t, 0, bus.SubscribersCount())

	bus.Subscribe(h)
	bus.Clear()
	require.Equal(t, 0, bus.SubscribersCount())
}
