// Package mocksensor simulates a pedestrian walking a gentle arc, for
// development without real device sensors.
package mocksensor

import (
	"context"
	"sync"
	"time"

	"shelternav/pkg/config"
	"shelternav/pkg/geo"
)

// Source implements sensor.Source with a scripted walker.
type Source struct {
	mu       sync.Mutex
	pos      geo.Point
	heading  float64
	speed    float64 // meters per second
	turnRate float64 // degrees per tick
	interval time.Duration

	stopCh  chan struct{}
	stopped bool
}

// New creates a walker at the configured start position.
func New(cfg config.MockSensorConfig) *Source {
	interval := time.Duration(cfg.Interval)
	if interval <= 0 {
		interval = time.Second
	}
	return &Source{
		pos:      geo.Point{Lat: cfg.StartLat, Lon: cfg.StartLon},
		heading:  geo.NormalizeBearing(cfg.StartHeading),
		speed:    cfg.WalkSpeedMps,
		turnRate: cfg.TurnRateDeg,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// CurrentLocation returns the walker's position.
func (s *Source) CurrentLocation(_ context.Context) (geo.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, nil
}

// RequestHeadingPermission always succeeds for the mock.
func (s *Source) RequestHeadingPermission(_ context.Context) error {
	return nil
}

// WatchLocation emits the walker's position every tick, advancing it along
// the current heading.
func (s *Source) WatchLocation(ctx context.Context) (<-chan geo.Point, error) {
	ch := make(chan geo.Point)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				pos := s.step()
				select {
				case ch <- pos:
				case <-ctx.Done():
					return
				case <-s.stopCh:
					return
				}
			}
		}
	}()
	return ch, nil
}

// WatchHeading emits the walker's heading every tick.
func (s *Source) WatchHeading(ctx context.Context) (<-chan float64, error) {
	ch := make(chan float64)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.mu.Lock()
				h := s.heading
				s.mu.Unlock()
				select {
				case ch <- h:
				case <-ctx.Done():
					return
				case <-s.stopCh:
					return
				}
			}
		}
	}()
	return ch, nil
}

// step advances one tick: turn, then walk.
func (s *Source) step() geo.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.heading = geo.NormalizeBearing(s.heading + s.turnRate)
	dist := s.speed * s.interval.Seconds()
	s.pos = geo.DestinationPoint(s.pos, dist, s.heading)
	return s.pos
}

// Close stops all watches.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.stopCh)
	}
	return nil
}
