package connectivity

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"netlink-server/internal/events"
)

// Prober answers whether the server is reachable right now.
// Satisfied by *client.Client.
type Prober interface {
	Ping(ctx context.Context) bool
}

// Watcher polls the server health endpoint and tracks the agent's
// online state. On an offline-to-online transition it fires OnOnline
// (the drain trigger) in a background goroutine.
type Watcher struct {
	prober   Prober
	interval time.Duration
	broker   *events.Broker
	online   int32
	stop     chan struct{}

	// OnOnline runs once per offline-to-online transition. Optional.
	OnOnline func(ctx context.Context)
}

func New(prober Prober, interval time.Duration, broker *events.Broker) *Watcher {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Watcher{
		prober:   prober,
		interval: interval,
		broker:   broker,
		stop:     make(chan struct{}),
	}
}

// Online reports the last observed connectivity state.
func (w *Watcher) Online() bool {
	return atomic.LoadInt32(&w.online) == 1
}

// Start begins probing in the background until Stop is called.
func (w *Watcher) Start() {
	log.Println("[Connectivity] Starting connectivity watcher...")
	go func() {
		w.check()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				w.check()
			}
		}
	}()
}

func (w *Watcher) Stop() {
	close(w.stop)
}

func (w *Watcher) check() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	now := w.prober.Ping(ctx)
	was := w.Online()
	if now == was {
		return
	}

	if now {
		atomic.StoreInt32(&w.online, 1)
		log.Println("[Connectivity] Connection restored")
		if w.broker != nil {
			w.broker.Publish(events.TypeOnline, nil)
		}
		if w.OnOnline != nil {
			go w.OnOnline(context.Background())
		}
	} else {
		atomic.StoreInt32(&w.online, 0)
		log.Println("[Connectivity] Connection lost - offline mode")
		if w.broker != nil {
			w.broker.Publish(events.TypeOffline, nil)
		}
	}
}
