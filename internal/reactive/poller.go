package reactive

import (
	"context"
	"time"

	"netlink-server/internal/models"

	"github.com/reactivex/rxgo/v2"
)

// StatsReader is the read surface the dashboard poller consumes.
// Satisfied by *client.Client.
type StatsReader interface {
	FetchCount(ctx context.Context) (int64, error)
	FetchCountByNetwork(ctx context.Context) (*models.NetworkCountResponse, error)
	FetchLocations(ctx context.Context, limit int) ([]models.LocationRecord, error)
}

// StatsSnapshot is one dashboard poll result.
type StatsSnapshot struct {
	Total     int64                        `json:"total"`
	ByNetwork *models.NetworkCountResponse `json:"byNetwork"`
	FetchedAt time.Time                    `json:"fetchedAt"`
}

// MapSnapshot is one map poll result.
type MapSnapshot struct {
	Locations []models.LocationRecord `json:"locations"`
	FetchedAt time.Time               `json:"fetchedAt"`
}

// StatsStream polls the count endpoints on a fixed interval and emits a
// snapshot per tick. Each tick is an independent request bounded by the
// interval; a slow or failed poll surfaces as an error item and never
// blocks the next tick.
func StatsStream(ctx context.Context, reader StatsReader, interval time.Duration) *Stream {
	ch := make(chan rxgo.Item)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		poll := func() rxgo.Item {
			tickCtx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()

			total, err := reader.FetchCount(tickCtx)
			if err != nil {
				return rxgo.Error(err)
			}
			byNetwork, err := reader.FetchCountByNetwork(tickCtx)
			if err != nil {
				return rxgo.Error(err)
			}
			return rxgo.Of(StatsSnapshot{Total: total, ByNetwork: byNetwork, FetchedAt: time.Now()})
		}

		emit(ctx, ch, poll())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				emit(ctx, ch, poll())
			}
		}
	}()

	return NewStream(ctx, ch)
}

// LocationsStream polls the map endpoint on a fixed interval.
func LocationsStream(ctx context.Context, reader StatsReader, interval time.Duration, limit int) *Stream {
	ch := make(chan rxgo.Item)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		poll := func() rxgo.Item {
			tickCtx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()

			locations, err := reader.FetchLocations(tickCtx, limit)
			if err != nil {
				return rxgo.Error(err)
			}
			return rxgo.Of(MapSnapshot{Locations: locations, FetchedAt: time.Now()})
		}

		emit(ctx, ch, poll())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				emit(ctx, ch, poll())
			}
		}
	}()

	return NewStream(ctx, ch)
}

func emit(ctx context.Context, ch chan rxgo.Item, item rxgo.Item) {
	select {
	case <-ctx.Done():
	case ch <- item:
	}
}
