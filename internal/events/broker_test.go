package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker()

	first := b.Subscribe()
	second := b.Subscribe()
	defer b.Unsubscribe(first)
	defer b.Unsubscribe(second)

	b.Publish(TypeConnectivityError, map[string]string{"message": "No response from server."})

	for _, ch := range []chan Event{first, second} {
		event := receive(t, ch)
		assert.Equal(t, TypeConnectivityError, event.Type)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe()
	b.Unsubscribe(ch)

	require.Eventually(t, func() bool {
		select {
		case _, open := <-ch:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	// Later publishes must not reach the departed subscriber.
	b.Publish(TypeOnline, nil)
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	b := NewBroker()

	slow := b.Subscribe()
	fast := b.Subscribe()
	defer b.Unsubscribe(slow)
	defer b.Unsubscribe(fast)

	// Overflow the slow subscriber's buffer; the broker drops for it
	// but keeps delivering to the fast one.
	for i := 0; i < 20; i++ {
		b.Publish(TypeOffline, i)
	}

	event := receive(t, fast)
	assert.Equal(t, TypeOffline, event.Type)
}
