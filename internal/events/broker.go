// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting

package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// Event types published on the broker.
const (
	TypeConnectivityError = "connectivityError"
	TypeOnline            = "online"
	TypeOffline           = "offline"
	TypeSyncComplete      = "syncComplete"
)

// Event is one broker message.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Broker fans events out to in-process subscribers and to SSE clients.
// The submission client publishes connectivity errors here; the
// connectivity watcher publishes online/offline transitions.
type Broker struct {
	notifier       chan Event
	newClients     chan chan Event
	closingClients chan chan Event
	clients        map[chan Event]bool
}

// NewBroker creates and starts a broker.
func NewBroker() *Broker {
	b := &Broker{
		notifier:       make(chan Event, 8),
		newClients:     make(chan chan Event),
		closingClients: make(chan chan Event),
		clients:        make(map[chan Event]bool),
	}
	go b.listen()
	return b
}

func (b *Broker) listen() {
	for {
		select {
		case ch := <-b.newClients:
			b.clients[ch] = true
		case ch := <-b.closingClients:
			delete(b.clients, ch)
			close(ch)
		case event := <-b.notifier:
			for ch := range b.clients {
				select {
				case ch <- event:
				default:
					// Slow subscriber; drop rather than block the broker.
				}
			}
		}
	}
}

// Publish broadcasts an event to every subscriber.
func (b *Broker) Publish(eventType string, data interface{}) {
	b.notifier <- Event{Type: eventType, Data: data}
}

// Subscribe registers a new subscriber channel. Callers must
// Unsubscribe when done.
func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, 8)
	b.newClients <- ch
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (b *Broker) Unsubscribe(ch chan Event) {
	b.closingClients <- ch
}

// ServeHTTP streams broker events to an SSE client.
func (b *Broker) ServeHTTP(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ch := b.Subscribe()
		defer b.Unsubscribe(ch)

		// Confirm the connection before the first real event.
		fmt.Fprintf(w, "event: connection\ndata: \"ok\"\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case event, open := <-ch:
				if !open {
					return
				}
				data, err := json.Marshal(event.Data)
				if err != nil {
					log.Printf("[SSE] Error marshalling event data: %v", err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-time.After(30 * time.Second):
				fmt.Fprintf(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
