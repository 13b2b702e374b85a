package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		p1   Point
		p2   Point
		want float64
	}{
		{
			name: "Same Point",
			p1:   Point{Lat: 35.0, Lon: 135.0},
			p2:   Point{Lat: 35.0, Lon: 135.0},
			want: 0,
		},
		{
			name: "Tokyo to Osaka",
			p1:   Point{Lat: 35.6895, Lon: 139.6917},
			p2:   Point{Lat: 34.6937, Lon: 135.5023},
			want: 402000, // Approx 402km
		},
		{
			name: "Equator 1 degree",
			p1:   Point{Lat: 0, Lon: 0},
			p2:   Point{Lat: 0, Lon: 1},
			want: 111319, // Approx 111km
		},
		{
			name: "Across antimeridian",
			p1:   Point{Lat: 0, Lon: 179.5},
			p2:   Point{Lat: 0, Lon: -179.5},
			want: 111319, // 1 degree of longitude, not 359
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p1, tt.p2)
			// Allow 1% margin of error due to float precision/earth radius var
			margin := tt.want * 0.01
			if math.Abs(got-tt.want) > margin && tt.want != 0 {
				t.Errorf("Distance() = %v, want %v (+/- %v)", got, tt.want, margin)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 43.0642, Lon: 141.3469}
	b := Point{Lat: 26.2124, Lon: 127.6809}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name string
		p1   Point
		p2   Point
		want float64
	}{
		{"Due North", Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0}, 0},
		{"Due East", Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1}, 90},
		{"Due South", Point{Lat: 1, Lon: 0}, Point{Lat: 0, Lon: 0}, 180},
		{"Due West", Point{Lat: 0, Lon: 1}, Point{Lat: 0, Lon: 0}, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.p1, tt.p2)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Bearing() = %v, want %v", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("Bearing() = %v, out of [0,360)", got)
			}
		})
	}
}

func TestBearingReciprocal(t *testing.T) {
	a := Point{Lat: 35.6895, Lon: 139.6917}
	b := Point{Lat: 34.6937, Lon: 135.5023}
	fwd := Bearing(a, b)
	back := Bearing(b, a)
	diff := math.Abs(NormalizeAngle(back - fwd - 180))
	// A few degrees of convergence error over ~400km is expected
	if diff > 5 {
		t.Errorf("Bearing(a,b)=%v and Bearing(b,a)=%v differ from 180 by %v", fwd, back, diff)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{720, 0},
		{-350, 10},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionLabel(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{0, "North"},
		{22, "North"},
		{23, "Northeast"},
		{46, "Northeast"},
		{90, "East"},
		{135, "Southeast"},
		{180, "South"},
		{225, "Southwest"},
		{270, "West"},
		{315, "Northwest"},
		{359, "North"},
	}
	for _, tt := range tests {
		if got := DirectionLabel(tt.bearing); got != tt.want {
			t.Errorf("DirectionLabel(%v) = %q, want %q", tt.bearing, got, tt.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{843.4, "843m"},
		{999.4, "999m"},
		{1000, "1.0km"},
		{1234, "1.2km"},
		{402000, "402.0km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}
