// Package simulation animates a driver along a computed route. It is purely
// cosmetic: progress is derived from wall-clock ticks and nothing is persisted.
package simulation

import (
	"context"
	"delivery-route-service/internal/domain"
	"math"
	"sync"
	"time"
)

const (
	DefaultInterval = 500 * time.Millisecond
	DefaultStep     = 1.0
)

// Progress is one simulation frame.
type Progress struct {
	Percent    float64
	StopIndex  int
	Coordinate domain.Coordinate
	Done       bool
}

// Driver advances a progress percentage on a ticker and reports the stop the
// driver is currently at. At most one run is active at a time.
type Driver struct {
	Interval time.Duration
	Step     float64

	mu     sync.Mutex
	cancel context.CancelFunc
	runID  uint64
}

func (d *Driver) interval() time.Duration {
	if d.Interval <= 0 {
		return DefaultInterval
	}
	return d.Interval
}

func (d *Driver) step() float64 {
	if d.Step <= 0 {
		return DefaultStep
	}
	return d.Step
}

// Start cancels any running simulation and starts a new one from 0%.
// The returned channel is closed after the final Done frame, or when ctx is
// cancelled or Stop is called. An empty route yields a closed channel.
func (d *Driver) Start(ctx context.Context, route []domain.Coordinate) <-chan Progress {
	out := make(chan Progress)

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if len(route) == 0 {
		d.mu.Unlock()
		close(out)
		return out
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.runID++
	id := d.runID
	d.mu.Unlock()

	points := make([]domain.Coordinate, len(route))
	copy(points, route)

	go func() {
		defer d.release(id, cancel)
		d.run(runCtx, points, out)
	}()
	return out
}

// release cancels a finished run's context and forgets it, unless a newer
// run has already replaced it.
func (d *Driver) release(id uint64, cancel context.CancelFunc) {
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.runID == id {
		d.cancel = nil
	}
}

func (d *Driver) active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// Stop cancels the running simulation, if any.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Driver) run(ctx context.Context, route []domain.Coordinate, out chan<- Progress) {
	defer close(out)

	ticker := time.NewTicker(d.interval())
	defer ticker.Stop()

	step := d.step()
	ticks := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Derived from the tick count so fractional steps do not drift.
		ticks++
		percent := math.Min(100, float64(ticks)*step)
		if percent >= 100 {
			last := len(route) - 1
			frame := Progress{Percent: 100, StopIndex: last, Coordinate: route[last], Done: true}
			select {
			case out <- frame:
			case <-ctx.Done():
			}
			return
		}

		idx := StopIndex(percent, len(route))
		select {
		case out <- Progress{Percent: percent, StopIndex: idx, Coordinate: route[idx]}:
		case <-ctx.Done():
			return
		}
	}
}

// StopIndex maps a progress percentage onto the route: floor(percent/100*n),
// clamped to the last stop.
func StopIndex(percent float64, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(percent / 100 * float64(n))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// CompletedStops reports how many of the n stops are done at percent.
// Stop i counts as done once percent exceeds i/n*100.
func CompletedStops(percent float64, n int) int {
	done := 0
	for i := 0; i < n; i++ {
		if percent > float64(i)/float64(n)*100 {
			done++
		}
	}
	return done
}
