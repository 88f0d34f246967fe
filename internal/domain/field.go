package domain

import (
	"errors"
	"time"
)

// UV is an ocean-current velocity sample in meters per second: U eastward,
// V northward.
type UV struct {
	U float64
	V float64
}

// Sampling conditions. Both are recoverable: ErrOutOfBounds accompanies a
// zero-velocity sample for the affected position, while ErrFieldUnavailable
// means the field as a whole cannot be sampled and the caller should fall
// back to a field-independent estimate.
var (
	ErrOutOfBounds      = errors.New("position outside field coverage")
	ErrFieldUnavailable = errors.New("velocity field unavailable")
)

// Sampler is the read-only accessor contract for a gridded ocean-current
// field. Implementations resolve (time, lat, lon) to the nearest available
// grid sample.
//
// Sample clamps times outside the covered range to the nearest time index.
// Positions outside the field's bounding box, or outside the geographic
// domain, return a zero UV together with ErrOutOfBounds so callers can count
// such occurrences. An empty or malformed field returns ErrFieldUnavailable.
type Sampler interface {
	Sample(t time.Time, lat, lon float64) (UV, error)
}
