// Package geo is the boundary to whatever location source the agent
// has. Every classified failure collapses to "no coordinates"; nothing
// here is fatal to a submission.
package geo

import (
	"context"
	"errors"
	"log"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Classified provider failures, mirroring the browser geolocation API.
var (
	ErrPermissionDenied    = errors.New("geo: permission denied")
	ErrPositionUnavailable = errors.New("geo: position unavailable")
	ErrTimeout             = errors.New("geo: timeout")
	ErrUnknown             = errors.New("geo: unknown error")
)

// Provider supplies the device position.
type Provider interface {
	Current(ctx context.Context) (Coordinates, error)
}

// Resolve asks the provider for a position. Any failure, classified or
// not, means "no coordinates available".
func Resolve(ctx context.Context, p Provider) (Coordinates, bool) {
	if p == nil {
		return Coordinates{}, false
	}
	coords, err := p.Current(ctx)
	if err != nil {
		log.Printf("[Geo] No position available: %v", err)
		return Coordinates{}, false
	}
	return coords, true
}

// StaticProvider returns a fixed position, for agents configured with
// known coordinates instead of a live location source.
type StaticProvider struct {
	Coordinates Coordinates
}

func (s StaticProvider) Current(ctx context.Context) (Coordinates, error) {
	return s.Coordinates, nil
}
