package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desearch/internal/domain"
)

func TestPublishReachesSubscribersOfType(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan DomainEvent, 1)
	var other atomic.Int32
	b.Subscribe(EventSearchSettled, func(e DomainEvent) { got <- e })
	b.Subscribe(EventSearchFailed, func(DomainEvent) { other.Add(1) })

	b.Publish(SearchSettledEvent{State: domain.State{Version: 7}})

	select {
	case e := <-got:
		sc, ok := e.(StateChangedEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(7), sc.Snapshot().Version)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Zero(t, other.Load())
}

func TestUnsubscribeRemovesHandler(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var first, second atomic.Int32
	unsub := b.Subscribe(EventFiltersChanged, func(DomainEvent) { first.Add(1) })
	b.Subscribe(EventFiltersChanged, func(DomainEvent) { second.Add(1) })

	unsub()
	b.Publish(FiltersChangedEvent{})

	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, first.Load())

	// calling it twice is harmless
	assert.NotPanics(t, unsub)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var delivered atomic.Int32
	b.Subscribe(EventSearchStarted, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventSearchStarted, func(DomainEvent) { delivered.Add(1) })

	b.Publish(SearchStartedEvent{})
	b.Publish(SearchStartedEvent{})

	require.Eventually(t, func() bool { return delivered.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	var calls atomic.Int32
	b.Subscribe(EventSearchSuperseded, func(DomainEvent) { calls.Add(1) })

	b.Close()
	b.Close()
	b.Publish(SearchSupersededEvent{RequestID: 1, LatestID: 2})

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
