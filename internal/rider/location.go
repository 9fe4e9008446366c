package rider

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// WatchOptions are used for both the initial fix and the continuous watch.
var WatchOptions = PositionOptions{
	HighAccuracy: true,
	MaxAge:       10 * time.Second,
	Timeout:      5 * time.Second,
}

// LocationReporter keeps the latest position in memory while started.
// Every Start and Stop bumps a generation counter; callbacks carrying an older
// generation are dropped, so nothing is recorded once Stop has returned.
type LocationReporter struct {
	geo    Geolocator
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	running    bool
	stopWatch  func()
	latest     *Position
}

func NewLocationReporter(geo Geolocator, logger *slog.Logger) *LocationReporter {
	return &LocationReporter{
		geo:    geo,
		logger: logger,
	}
}

// Start takes a best-effort initial fix and then watches the position.
// Calling Start while running is a no-op.
func (r *LocationReporter) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.generation++
	r.running = true
	gen := r.generation
	r.mu.Unlock()

	if pos, err := r.geo.CurrentPosition(ctx, WatchOptions); err != nil {
		r.reject(gen, err)
	} else {
		r.accept(gen, pos)
	}

	stop, err := r.geo.Watch(WatchOptions,
		func(pos Position) { r.accept(gen, pos) },
		func(err error) { r.reject(gen, err) },
	)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to watch position", "error", err)
		r.mu.Lock()
		if r.generation == gen {
			r.running = false
		}
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	if r.generation != gen {
		// stopped while the watch was being set up
		r.mu.Unlock()
		stop()
		return nil
	}
	r.stopWatch = stop
	r.mu.Unlock()
	return nil
}

// Stop cancels the watch. Callbacks delivered after Stop are ignored.
func (r *LocationReporter) Stop() {
	r.mu.Lock()
	r.generation++
	r.running = false
	stop := r.stopWatch
	r.stopWatch = nil
	r.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// Running reports whether the watch is active.
func (r *LocationReporter) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Latest returns the most recent accepted position.
func (r *LocationReporter) Latest() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.latest == nil {
		return Position{}, false
	}
	return *r.latest, true
}

func (r *LocationReporter) accept(gen uint64, pos Position) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		return
	}
	r.latest = &pos
}

func (r *LocationReporter) reject(gen uint64, err error) {
	r.mu.Lock()
	current := gen == r.generation
	r.mu.Unlock()

	if current {
		r.logger.Warn("Geolocation error", "error", err)
	}
}
