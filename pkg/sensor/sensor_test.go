package sensor

import (
	"math"
	"testing"
)

func TestHeadingFromAlpha(t *testing.T) {
	tests := []struct {
		alpha float64
		want  float64
	}{
		{0, 0},
		{90, 270},
		{180, 180},
		{270, 90},
		{360, 0},
	}
	for _, tt := range tests {
		if got := HeadingFromAlpha(tt.alpha); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HeadingFromAlpha(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}
