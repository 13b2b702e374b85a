// Package sensor defines the boundary to the device location and heading
// sources.
package sensor

import (
	"context"
	"errors"

	"shelternav/pkg/geo"
)

var (
	// ErrUnsupported indicates the platform provides no such sensor.
	ErrUnsupported = errors.New("sensor not supported")
	// ErrPermissionDenied indicates the user declined the sensor permission.
	ErrPermissionDenied = errors.New("sensor permission denied")
)

// Source delivers location fixes and heading samples.
//
// Headings are compass headings in [0, 360), clockwise from true north.
// Implementations own their channels and close them when the watch context
// ends or Close is called.
type Source interface {
	// CurrentLocation returns a one-shot location fix.
	CurrentLocation(ctx context.Context) (geo.Point, error)
	// WatchLocation delivers continuous location fixes.
	WatchLocation(ctx context.Context) (<-chan geo.Point, error)
	// RequestHeadingPermission performs the platform permission prompt,
	// where one is required. Idempotent once granted.
	RequestHeadingPermission(ctx context.Context) error
	// WatchHeading delivers continuous heading samples.
	WatchHeading(ctx context.Context) (<-chan float64, error)
	// Close releases sensor resources.
	Close() error
}

// HeadingFromAlpha converts a browser-style orientation alpha (counterclockwise
// rotation around the vertical axis) into a compass heading. Kept at the
// sensor boundary so the rest of the system only ever sees true headings.
func HeadingFromAlpha(alpha float64) float64 {
	return geo.NormalizeBearing(360 - alpha)
}
