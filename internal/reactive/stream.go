// Copyright (c) 2026 Netlink
// License: MIT
// Project: Netlink Network Issue Reporting - Reactive Core

package reactive

import (
	"context"

	"github.com/reactivex/rxgo/v2"
)

// Stream wraps an rxgo observable of poll results.
type Stream struct {
	observable rxgo.Observable
}

// NewStream builds a stream from a channel of items.
func NewStream(ctx context.Context, source <-chan rxgo.Item) *Stream {
	return &Stream{observable: rxgo.FromChannel(source, rxgo.WithContext(ctx))}
}

// Subscribe attaches handlers. Poll failures reach onError without
// terminating the stream; the next scheduled poll still runs.
func (s *Stream) Subscribe(onNext func(interface{}), onError func(error), onComplete func()) rxgo.Disposed {
	return s.observable.ForEach(
		func(v interface{}) {
			onNext(v)
		},
		func(err error) {
			if onError != nil {
				onError(err)
			}
		},
		func() {
			if onComplete != nil {
				onComplete()
			}
		},
		rxgo.WithErrorStrategy(rxgo.ContinueOnError),
	)
}

// Observable exposes the underlying rxgo observable.
func (s *Stream) Observable() rxgo.Observable {
	return s.observable
}
