package reactive

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"netlink-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyReader fails its first FetchCount and succeeds afterwards.
type flakyReader struct {
	mu    sync.Mutex
	calls int
}

func (f *flakyReader) FetchCount(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls == 1 {
		return 0, errors.New("count endpoint unavailable")
	}
	return int64(f.calls), nil
}

func (f *flakyReader) FetchCountByNetwork(ctx context.Context) (*models.NetworkCountResponse, error) {
	return &models.NetworkCountResponse{MTN: 1}, nil
}

func (f *flakyReader) FetchLocations(ctx context.Context, limit int) ([]models.LocationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("map endpoint unavailable")
	}
	return []models.LocationRecord{{ID: 1, NetworkType: "MTN"}}, nil
}

func TestStatsStreamSurvivesFailedTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var errCount int32
	var snapCount int32

	StatsStream(ctx, &flakyReader{}, 20*time.Millisecond).Subscribe(
		func(v interface{}) {
			if _, ok := v.(StatsSnapshot); ok {
				atomic.AddInt32(&snapCount, 1)
			}
		},
		func(err error) {
			atomic.AddInt32(&errCount, 1)
		},
		nil,
	)

	// The first tick fails; the stream keeps running and later ticks
	// still deliver snapshots.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&errCount) >= 1 && atomic.LoadInt32(&snapCount) >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestLocationsStreamSurvivesFailedTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var errCount int32
	snapshots := make(chan MapSnapshot, 16)

	LocationsStream(ctx, &flakyReader{}, 20*time.Millisecond, 10).Subscribe(
		func(v interface{}) {
			if snap, ok := v.(MapSnapshot); ok {
				select {
				case snapshots <- snap:
				default:
				}
			}
		},
		func(err error) {
			atomic.AddInt32(&errCount, 1)
		},
		nil,
	)

	select {
	case snap := <-snapshots:
		require.Len(t, snap.Locations, 1)
		assert.Equal(t, "MTN", snap.Locations[0].NetworkType)
		assert.False(t, snap.FetchedAt.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after the failed tick")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&errCount))
}
