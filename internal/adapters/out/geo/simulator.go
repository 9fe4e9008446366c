// Package geo provides a simulated device location for the rider CLI.
package geo

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/rider"

	"github.com/jaswdr/faker"
)

const (
	DefaultInterval = 3 * time.Second
	// DefaultJitter is roughly 100 meters in degrees.
	DefaultJitter = 0.001

	highAccuracyMeters = 5
	lowAccuracyMeters  = 50
)

var ErrInvalidInterval = errors.New("watch interval must be positive")

var _ rider.Geolocator = (*Simulator)(nil)

// Simulator walks randomly around a start point and reports a fix on every tick.
type Simulator struct {
	interval time.Duration
	jitter   float64
	now      func() time.Time

	mu      sync.Mutex
	rnd     *rand.Rand
	current kernel.GeoPoint
}

func NewSimulator(start kernel.GeoPoint, interval time.Duration, seed uint64) (*Simulator, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	return &Simulator{
		interval: interval,
		jitter:   DefaultJitter,
		now:      time.Now,
		rnd:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		current:  start,
	}, nil
}

// RandomStart picks a plausible start point.
func RandomStart() kernel.GeoPoint {
	addr := faker.New().Address()
	for {
		p, err := kernel.NewGeoPoint(addr.Latitude(), addr.Longitude())
		if err == nil {
			return p
		}
	}
}

func (s *Simulator) CurrentPosition(ctx context.Context, opts rider.PositionOptions) (rider.Position, error) {
	if err := ctx.Err(); err != nil {
		return rider.Position{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position(opts), nil
}

// Watch moves the simulated device on every tick until stop is called.
func (s *Simulator) Watch(
	opts rider.PositionOptions,
	onPosition func(rider.Position),
	_ func(error),
) (func(), error) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				onPosition(s.step(opts))
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }, nil
}

func (s *Simulator) step(opts rider.PositionOptions) rider.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	lat := s.current.Lat() + (s.rnd.Float64()-0.5)*s.jitter
	lon := s.current.Lon() + (s.rnd.Float64()-0.5)*s.jitter
	if next, err := kernel.NewGeoPoint(lat, lon); err == nil {
		s.current = next
	}
	return s.position(opts)
}

func (s *Simulator) position(opts rider.PositionOptions) rider.Position {
	accuracy := float64(lowAccuracyMeters)
	if opts.HighAccuracy {
		accuracy = highAccuracyMeters
	}
	return rider.Position{
		Point:     s.current,
		Accuracy:  accuracy,
		Timestamp: s.now(),
	}
}
