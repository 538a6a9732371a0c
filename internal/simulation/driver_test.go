package simulation

import (
	"context"
	"testing"
	"time"

	"delivery-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() []domain.Coordinate {
	return []domain.Coordinate{
		{Latitude: 55.95, Longitude: -3.19},
		{Latitude: 55.96, Longitude: -3.18},
		{Latitude: 55.97, Longitude: -3.17},
		{Latitude: 55.98, Longitude: -3.16},
	}
}

func drain(t *testing.T, ch <-chan Progress) []Progress {
	t.Helper()

	var frames []Progress
	timeout := time.After(10 * time.Second)
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				return frames
			}
			frames = append(frames, p)
		case <-timeout:
			t.Fatal("simulation did not finish in time")
			return nil
		}
	}
}

func TestDriverRunsToCompletion(t *testing.T) {
	d := &Driver{Interval: time.Millisecond, Step: 10}
	route := testRoute()

	frames := drain(t, d.Start(context.Background(), route))
	require.Len(t, frames, 10)

	for i := 1; i < len(frames); i++ {
		assert.Greater(t, frames[i].Percent, frames[i-1].Percent)
		assert.GreaterOrEqual(t, frames[i].StopIndex, frames[i-1].StopIndex)
	}

	assert.Equal(t, 10.0, frames[0].Percent)
	assert.Equal(t, 0, frames[0].StopIndex)
	assert.Equal(t, route[0], frames[0].Coordinate)

	assert.Equal(t, 50.0, frames[4].Percent)
	assert.Equal(t, 2, frames[4].StopIndex)

	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Equal(t, 100.0, last.Percent)
	assert.Equal(t, route[3], last.Coordinate)
}

func TestDriverEmptyRoute(t *testing.T) {
	d := &Driver{Interval: time.Millisecond}

	_, ok := <-d.Start(context.Background(), nil)
	assert.False(t, ok)
}

func TestDriverRestartResetsProgress(t *testing.T) {
	d := &Driver{Interval: time.Millisecond, Step: 5}

	first := d.Start(context.Background(), testRoute())
	p := <-first
	p = <-first
	require.Equal(t, 10.0, p.Percent)

	second := d.Start(context.Background(), testRoute())
	drain(t, first)

	frames := drain(t, second)
	require.NotEmpty(t, frames)
	assert.Equal(t, 5.0, frames[0].Percent)
	assert.True(t, frames[len(frames)-1].Done)
}

func TestDriverStop(t *testing.T) {
	d := &Driver{Interval: time.Millisecond, Step: 1}

	ch := d.Start(context.Background(), testRoute())
	<-ch
	d.Stop()

	frames := drain(t, ch)
	for _, f := range frames {
		assert.False(t, f.Done)
	}
	d.Stop()
}

func TestDriverHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Driver{Interval: time.Millisecond, Step: 1}

	ch := d.Start(ctx, testRoute())
	<-ch
	cancel()

	frames := drain(t, ch)
	for _, f := range frames {
		assert.False(t, f.Done)
	}
}

func TestStopIndex(t *testing.T) {
	assert.Equal(t, 0, StopIndex(0, 4))
	assert.Equal(t, 0, StopIndex(24.9, 4))
	assert.Equal(t, 1, StopIndex(25, 4))
	assert.Equal(t, 3, StopIndex(99, 4))
	assert.Equal(t, 3, StopIndex(100, 4))
	assert.Equal(t, 0, StopIndex(50, 0))
}

func TestCompletedStops(t *testing.T) {
	assert.Equal(t, 0, CompletedStops(0, 4))
	assert.Equal(t, 1, CompletedStops(1, 4))
	assert.Equal(t, 1, CompletedStops(25, 4))
	assert.Equal(t, 2, CompletedStops(26, 4))
	assert.Equal(t, 4, CompletedStops(100, 4))
}

func TestDriverFractionalStepEndsOnSchedule(t *testing.T) {
	d := &Driver{Interval: time.Microsecond, Step: 0.1}

	frames := drain(t, d.Start(context.Background(), testRoute()))
	require.Len(t, frames, 1000)

	assert.InDelta(t, 99.9, frames[998].Percent, 1e-9)
	assert.False(t, frames[998].Done)
	assert.True(t, frames[999].Done)
	assert.Equal(t, 100.0, frames[999].Percent)
}

func TestDriverReleasesFinishedRun(t *testing.T) {
	d := &Driver{Interval: time.Millisecond, Step: 50}

	frames := drain(t, d.Start(context.Background(), testRoute()))
	require.Len(t, frames, 2)

	assert.Eventually(t, func() bool { return !d.active() }, time.Second, time.Millisecond)
}

func TestDriverReplacedRunKeepsNewerRunActive(t *testing.T) {
	d := &Driver{Interval: time.Hour}

	first := d.Start(context.Background(), testRoute())
	second := d.Start(context.Background(), testRoute())

	_, ok := <-first
	assert.False(t, ok)
	assert.Never(t, func() bool { return !d.active() }, 50*time.Millisecond, 5*time.Millisecond)

	d.Stop()
	_, ok = <-second
	assert.False(t, ok)
	assert.False(t, d.active())
}
