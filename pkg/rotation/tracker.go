// Package rotation maintains accumulated rotation angles for display pointers.
//
// A pointer driven straight by absolute compass angles snaps the long way
// around whenever the target crosses the 0/360 boundary. A Tracker keeps an
// unbounded accumulated angle instead and moves it by the shortest signed arc
// on every update, so a renderer applying the value as a rotation never jumps
// more than 180 degrees per step.
package rotation

import (
	"math"

	"shelternav/pkg/geo"
)

// Tracker accumulates rotation for a single pointer.
//
// The accumulated value modulo 360 always equals the last target modulo 360.
// The raw value is unbounded and must only be consumed as rotate-by-angle,
// never read back as a compass heading.
type Tracker struct {
	accumulated float64
}

// New creates a Tracker starting at the given angle.
func New(initialDeg float64) *Tracker {
	return &Tracker{accumulated: initialDeg}
}

// Update moves the accumulated angle toward target by the shortest signed
// arc and returns the new accumulated value. The per-step change is always
// at most 180 degrees in magnitude.
func (t *Tracker) Update(targetDeg float64) float64 {
	current := math.Mod(t.accumulated, 360)
	diff := geo.NormalizeAngle(targetDeg - current)
	t.accumulated += diff
	return t.accumulated
}

// Value returns the current accumulated angle.
func (t *Tracker) Value() float64 {
	return t.accumulated
}
