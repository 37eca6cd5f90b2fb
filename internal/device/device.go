package device

import (
	"context"
	"errors"
)

// ErrCaptureCanceled is returned when the user backs out of a capture
// without selecting a photo. It is not a failure: the draft's photo
// field is simply left unchanged.
var ErrCaptureCanceled = errors.New("capture canceled")

// Position is a device location fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Address holds the reverse-geocoded segments of a position, in the
// order they are composed into a location name.
type Address struct {
	Name     string
	District string
	City     string
	Region   string
	Country  string
}

// Camera produces a device-local photo reference.
type Camera interface {
	Capture(ctx context.Context) (string, error)
}

// Locator resolves the current device position.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Geocoder resolves a position to a best-effort address. A nil address
// with a nil error means the position could not be named.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, pos Position) (*Address, error)
}

// MediaReleaser releases locally-cached media tied to a photo reference.
type MediaReleaser interface {
	Release(ctx context.Context, ref string) error
}
