package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"netlink-server/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber flips reachability on demand.
type fakeProber struct {
	up int32
}

func (f *fakeProber) Ping(ctx context.Context) bool {
	return atomic.LoadInt32(&f.up) == 1
}

func (f *fakeProber) set(up bool) {
	if up {
		atomic.StoreInt32(&f.up, 1)
	} else {
		atomic.StoreInt32(&f.up, 0)
	}
}

func TestWatcherStartsOffline(t *testing.T) {
	w := New(&fakeProber{}, 10*time.Millisecond, nil)
	assert.False(t, w.Online())
}

func TestWatcherDetectsTransitions(t *testing.T) {
	prober := &fakeProber{}
	broker := events.NewBroker()
	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	w := New(prober, 10*time.Millisecond, broker)
	w.Start()
	defer w.Stop()

	prober.set(true)
	require.Eventually(t, w.Online, time.Second, 5*time.Millisecond)

	select {
	case event := <-sub:
		assert.Equal(t, events.TypeOnline, event.Type)
	case <-time.After(time.Second):
		t.Fatal("expected an online event")
	}

	prober.set(false)
	require.Eventually(t, func() bool { return !w.Online() }, time.Second, 5*time.Millisecond)

	select {
	case event := <-sub:
		assert.Equal(t, events.TypeOffline, event.Type)
	case <-time.After(time.Second):
		t.Fatal("expected an offline event")
	}
}

func TestWatcherFiresOnOnlinePerTransition(t *testing.T) {
	prober := &fakeProber{}

	var mu sync.Mutex
	fired := 0
	w := New(prober, 10*time.Millisecond, nil)
	w.OnOnline = func(ctx context.Context) {
		mu.Lock()
		fired++
		mu.Unlock()
	}
	w.Start()
	defer w.Stop()

	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return fired
	}

	prober.set(true)
	require.Eventually(t, func() bool { return count() == 1 }, time.Second, 5*time.Millisecond)

	// Staying online fires nothing further.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, count())

	// A full offline/online round trip fires again.
	prober.set(false)
	require.Eventually(t, func() bool { return !w.Online() }, time.Second, 5*time.Millisecond)
	prober.set(true)
	require.Eventually(t, func() bool { return count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestWatcherDefaultsInterval(t *testing.T) {
	w := New(&fakeProber{}, 0, nil)
	assert.Equal(t, 3*time.Second, w.interval)
}
