package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"shelternav/pkg/geo"
	"shelternav/pkg/region"
	"shelternav/pkg/rotation"
	"shelternav/pkg/sensor"
	"shelternav/pkg/shelter"
)

// State identifies the phase of the navigation session.
type State string

const (
	StateIdle                State = "idle"
	StateLocating            State = "locating"
	StateResolvingRegion     State = "resolving_region"
	StateLoadingShelters     State = "loading_shelters"
	StateAwaitingOrientation State = "awaiting_orientation"
	StateTracking            State = "tracking"
	StateFailed              State = "failed"
)

var statusText = map[State]string{
	StateIdle:                "Waiting to start",
	StateLocating:            "Locating you...",
	StateResolvingRegion:     "Identifying your area...",
	StateLoadingShelters:     "Loading shelter data...",
	StateAwaitingOrientation: "Compass access needed. Tap retry to enable.",
	StateTracking:            "Tracking",
	StateFailed:              "Navigation unavailable",
}

// Manager runs a navigation session: it locates the user, resolves
// their region, loads the shelter set and then tracks heading and
// position updates, keeping a render-ready view model current.
type Manager struct {
	src      sensor.Source
	resolver *region.Resolver
	repo     *shelter.Repository
	nearestK int
	logger   *slog.Logger

	mu         sync.RWMutex
	state      State
	failReason string
	location   geo.Point
	heading    float64
	regionCode region.Code
	features   []shelter.Feature
	nearest    []shelter.Ranked
	needle     *rotation.Tracker
	arrows     []*rotation.Tracker
	subs       map[string]chan ViewModel
}

// NewManager creates a session manager. nearestK is the number of
// shelters to track; values below 1 fall back to 3.
func NewManager(src sensor.Source, resolver *region.Resolver, repo *shelter.Repository, nearestK int) *Manager {
	if nearestK < 1 {
		nearestK = 3
	}
	return &Manager{
		src:      src,
		resolver: resolver,
		repo:     repo,
		nearestK: nearestK,
		logger:   slog.With("component", "session"),
		state:    StateIdle,
		needle:   rotation.New(0),
		subs:     make(map[string]chan ViewModel),
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Start drives the session through its setup chain. It returns nil
// once the session is tracking, or awaiting the orientation
// permission, and an error if setup failed terminally.
func (m *Manager) Start(ctx context.Context) error {
	m.setState(StateLocating, "")

	pt, err := m.src.CurrentLocation(ctx)
	if err != nil {
		return m.fail(fmt.Errorf("locate: %w", err))
	}
	m.mu.Lock()
	m.location = pt
	m.mu.Unlock()
	m.logger.Info("located", "lat", pt.Lat, "lon", pt.Lon)

	m.setState(StateResolvingRegion, "")
	code, err := m.resolver.Resolve(ctx, pt)
	if err != nil {
		return m.fail(fmt.Errorf("resolve region: %w", err))
	}
	m.mu.Lock()
	m.regionCode = code
	m.mu.Unlock()

	m.setState(StateLoadingShelters, "")
	features, err := m.repo.Fetch(ctx, code)
	if err != nil {
		return m.fail(fmt.Errorf("load shelters: %w", err))
	}
	m.mu.Lock()
	m.features = features
	m.recomputeLocked()
	m.mu.Unlock()
	m.logger.Info("shelters loaded", "region", code, "count", len(features))

	return m.requestOrientation(ctx)
}

// RetryOrientation re-requests the heading permission after a denial.
// The location, region and shelter work already done is kept.
func (m *Manager) RetryOrientation(ctx context.Context) error {
	if m.State() != StateAwaitingOrientation {
		return fmt.Errorf("session is %s, not awaiting orientation", m.State())
	}
	return m.requestOrientation(ctx)
}

func (m *Manager) requestOrientation(ctx context.Context) error {
	err := m.src.RequestHeadingPermission(ctx)
	switch {
	case err == nil:
		m.setState(StateTracking, "")
		return nil
	case errors.Is(err, sensor.ErrPermissionDenied):
		m.logger.Warn("heading permission denied")
		m.setState(StateAwaitingOrientation, "")
		return nil
	default:
		return m.fail(fmt.Errorf("heading permission: %w", err))
	}
}

// Serve runs the session as a long-lived service: it performs setup
// and then pumps sensor updates until ctx is cancelled or a sensor
// stream ends.
func (m *Manager) Serve(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}

	locCh, err := m.src.WatchLocation(ctx)
	if err != nil {
		return m.fail(fmt.Errorf("watch location: %w", err))
	}
	headCh, err := m.src.WatchHeading(ctx)
	if err != nil {
		return m.fail(fmt.Errorf("watch heading: %w", err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pt, ok := <-locCh:
			if !ok {
				return errors.New("location stream ended")
			}
			m.UpdateLocation(pt)
		case h, ok := <-headCh:
			if !ok {
				return errors.New("heading stream ended")
			}
			m.UpdateHeading(h)
		}
	}
}

// UpdateLocation recomputes shelter distances and bearings from the
// already-loaded shelter set. No region or shelter refetch happens.
func (m *Manager) UpdateLocation(pt geo.Point) {
	m.mu.Lock()
	m.location = pt
	m.recomputeLocked()
	m.mu.Unlock()
	m.publish()
}

// UpdateHeading advances the arrow and needle rotation targets for a
// new device heading in degrees.
func (m *Manager) UpdateHeading(deg float64) {
	m.mu.Lock()
	m.heading = geo.NormalizeBearing(deg)
	m.rotateLocked()
	m.mu.Unlock()
	m.publish()
}

// recomputeLocked reranks the shelter set from the current location
// and realigns the rotation trackers. Caller holds mu.
func (m *Manager) recomputeLocked() {
	m.nearest = shelter.SelectNearest(m.location, m.features, m.nearestK)
	for len(m.arrows) < len(m.nearest) {
		m.arrows = append(m.arrows, rotation.New(0))
	}
	m.arrows = m.arrows[:len(m.nearest)]
	m.rotateLocked()
}

// rotateLocked feeds fresh targets to the trackers so each arrow
// turns by the shortest arc. Caller holds mu.
func (m *Manager) rotateLocked() {
	for i, r := range m.nearest {
		m.arrows[i].Update(geo.NormalizeBearing(r.BearingDegrees - m.heading))
	}
	m.needle.Update(geo.NormalizeBearing(-m.heading))
}

// Snapshot returns the current render-ready view model.
func (m *Manager) Snapshot() ViewModel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() ViewModel {
	vm := ViewModel{
		State:      string(m.state),
		Status:     statusText[m.state],
		Error:      m.failReason,
		RegionCode: string(m.regionCode),
		Needle:     Needle{RotationDegrees: m.needle.Value()},
		Arrows:     make([]Arrow, 0, len(m.nearest)),
		Cards:      make([]Card, 0, len(m.nearest)),
	}
	for i, r := range m.nearest {
		vm.Arrows = append(vm.Arrows, Arrow{
			RotationDegrees: m.arrows[i].Value(),
			DistanceLabel:   geo.FormatDistance(r.DistanceMeters),
		})
		vm.Cards = append(vm.Cards, Card{
			Rank:           i + 1,
			RankLabel:      rankLabel(i + 1),
			Name:           r.Feature.Name(),
			Address:        r.Feature.Address(),
			DistanceLabel:  geo.FormatDistance(r.DistanceMeters),
			DirectionLabel: geo.DirectionLabel(r.BearingDegrees),
		})
	}
	return vm
}

// Subscribe registers a view model listener. The returned channel
// carries the latest snapshot after every change; a slow consumer
// only ever misses intermediate states. Call cancel to unregister.
func (m *Manager) Subscribe() (string, <-chan ViewModel, func()) {
	id := uuid.NewString()
	ch := make(chan ViewModel, 1)

	m.mu.Lock()
	m.subs[id] = ch
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
	return id, ch, cancel
}

func (m *Manager) setState(s State, reason string) {
	m.mu.Lock()
	m.state = s
	m.failReason = reason
	m.mu.Unlock()
	m.logger.Debug("state change", "state", s)
	m.publish()
}

func (m *Manager) fail(err error) error {
	m.setState(StateFailed, err.Error())
	m.logger.Error("session failed", "error", err)
	return err
}

// publish pushes the current snapshot to all subscribers, replacing
// any unconsumed previous snapshot.
func (m *Manager) publish() {
	m.mu.RLock()
	vm := m.snapshotLocked()
	subs := make([]chan ViewModel, 0, len(m.subs))
	for _, ch := range m.subs {
		subs = append(subs, ch)
	}
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- vm:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- vm:
			default:
			}
		}
	}
}
