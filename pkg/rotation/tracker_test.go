package rotation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Update(t *testing.T) {
	tests := []struct {
		name    string
		initial float64
		target  float64
		want    float64
	}{
		{"No Movement", 0, 0, 0},
		{"Simple Forward", 0, 90, 90},
		{"Simple Backward", 90, 45, 45},
		{"Wrap Forward", 350, 0, 360},
		{"Wrap Forward Past Zero", 350, 10, 370},
		{"Wrap Backward", 10, 350, -10},
		{"Half Turn", 0, 180, 180},
		{"Beyond One Turn", 700, 300, 660},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.initial)
			got := tr.Update(tt.target)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, got, tr.Value())
		})
	}
}

func TestTracker_ShortestArcSequence(t *testing.T) {
	// Sweep targets across the wrap boundary in both directions and verify
	// every step moves by at most 180 degrees and stays congruent with the
	// target.
	targets := []float64{0, 90, 179, 340, 10, 200, 359, 1, 181, 0}

	tr := New(targets[0])
	prev := tr.Value()
	for _, target := range targets[1:] {
		got := tr.Update(target)
		step := got - prev
		assert.LessOrEqual(t, math.Abs(step), 180.0, "step to target %v", target)

		mod := math.Mod(got, 360)
		if mod < 0 {
			mod += 360
		}
		assert.InDelta(t, target, mod, 1e-9, "accumulated %v not congruent with target %v", got, target)
		prev = got
	}
}

func TestTracker_UnboundedAccumulation(t *testing.T) {
	// Spinning steadily clockwise must grow the accumulated value past 360
	// instead of snapping back.
	tr := New(0)
	var last float64
	for i := 1; i <= 20; i++ {
		target := math.Mod(float64(i*90), 360)
		last = tr.Update(target)
	}
	assert.InDelta(t, 1800, last, 1e-9)
}
