// Package grid provides an in-memory 3-D (time, latitude, longitude) ocean
// current field with nearest-neighbor sampling.
package grid

import (
	"fmt"
	"math"
	"time"

	"github.com/oceandrift/drift-api/internal/domain"
)

// Field is an immutable gridded velocity field. Values[t][i][j] corresponds to
// (Times[t], Lats[i], Lons[j]). The time axis is strictly increasing; the
// latitude and longitude axes are monotonic in either direction.
//
// Absent cells are represented as NaN and sample as out of bounds.
type Field struct {
	times []time.Time
	lats  []float64
	lons  []float64
	u     [][][]float64
	v     [][][]float64

	minLat, maxLat float64
	minLon, maxLon float64
}

// NewField validates the axes and value arrays and returns a ready-to-sample
// field. Empty or structurally inconsistent data is reported as a
// field-unavailable condition rather than a panic later.
func NewField(times []time.Time, lats, lons []float64, u, v [][][]float64) (*Field, error) {
	if len(times) == 0 || len(lats) == 0 || len(lons) == 0 {
		return nil, fmt.Errorf("%w: empty axis (times=%d, lats=%d, lons=%d)",
			domain.ErrFieldUnavailable, len(times), len(lats), len(lons))
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("%w: time axis not strictly increasing at index %d",
				domain.ErrFieldUnavailable, i)
		}
	}
	if err := checkMonotonic("latitude", lats); err != nil {
		return nil, err
	}
	if err := checkMonotonic("longitude", lons); err != nil {
		return nil, err
	}
	if err := checkShape("u", u, len(times), len(lats), len(lons)); err != nil {
		return nil, err
	}
	if err := checkShape("v", v, len(times), len(lats), len(lons)); err != nil {
		return nil, err
	}

	minLat, maxLat := axisRange(lats)
	minLon, maxLon := axisRange(lons)

	return &Field{
		times:  times,
		lats:   lats,
		lons:   lons,
		u:      u,
		v:      v,
		minLat: minLat,
		maxLat: maxLat,
		minLon: minLon,
		maxLon: maxLon,
	}, nil
}

func checkMonotonic(name string, axis []float64) error {
	if len(axis) < 2 {
		return nil
	}
	ascending := axis[1] > axis[0]
	for i := 1; i < len(axis); i++ {
		if ascending && axis[i] <= axis[i-1] || !ascending && axis[i] >= axis[i-1] {
			return fmt.Errorf("%w: %s axis not monotonic at index %d", domain.ErrFieldUnavailable, name, i)
		}
	}
	return nil
}

func checkShape(name string, values [][][]float64, nTime, nLat, nLon int) error {
	if len(values) != nTime {
		return fmt.Errorf("%w: %s has %d time slices, expected %d",
			domain.ErrFieldUnavailable, name, len(values), nTime)
	}
	for t, slice := range values {
		if len(slice) != nLat {
			return fmt.Errorf("%w: %s[%d] has %d rows, expected %d",
				domain.ErrFieldUnavailable, name, t, len(slice), nLat)
		}
		for i, row := range slice {
			if len(row) != nLon {
				return fmt.Errorf("%w: %s[%d][%d] has %d values, expected %d",
					domain.ErrFieldUnavailable, name, t, i, len(row), nLon)
			}
		}
	}
	return nil
}

func axisRange(axis []float64) (minV, maxV float64) {
	minV, maxV = axis[0], axis[0]
	for _, v := range axis[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// Axes returns the time, latitude and longitude axes. The returned slices
// are the field's own backing arrays and must not be modified.
func (f *Field) Axes() (times []time.Time, lats, lons []float64) {
	return f.times, f.lats, f.lons
}

// Values returns the u and v value cubes indexed [time][lat][lon]. The
// returned slices are the field's own backing arrays and must not be modified.
func (f *Field) Values() (u, v [][][]float64) {
	return f.u, f.v
}

// Times returns the covered time range.
func (f *Field) Times() (first, last time.Time) {
	return f.times[0], f.times[len(f.times)-1]
}

// Bounds returns the geographic bounding box of the field.
func (f *Field) Bounds() (minLat, maxLat, minLon, maxLon float64) {
	return f.minLat, f.maxLat, f.minLon, f.maxLon
}

// Sample returns the nearest grid value for (t, lat, lon).
//
// Each axis resolves independently to its nearest index. Times outside the
// covered range clamp to the nearest available index. Positions outside the
// field's bounding box, or outside the geographic domain, return a zero
// velocity together with domain.ErrOutOfBounds.
func (f *Field) Sample(t time.Time, lat, lon float64) (domain.UV, error) {
	if !domain.ValidCoordinates(lat, lon) {
		return domain.UV{}, fmt.Errorf("sample at (%v, %v): %w", lat, lon, domain.ErrOutOfBounds)
	}
	if lat < f.minLat || lat > f.maxLat || lon < f.minLon || lon > f.maxLon {
		return domain.UV{}, fmt.Errorf("sample at (%v, %v) outside [%v, %v]x[%v, %v]: %w",
			lat, lon, f.minLat, f.maxLat, f.minLon, f.maxLon, domain.ErrOutOfBounds)
	}

	ti := f.nearestTime(t)
	li := nearestIndex(f.lats, lat)
	gi := nearestIndex(f.lons, lon)

	uv := domain.UV{U: f.u[ti][li][gi], V: f.v[ti][li][gi]}
	if math.IsNaN(uv.U) || math.IsNaN(uv.V) {
		// Explicitly absent cell.
		return domain.UV{}, fmt.Errorf("no data at (%v, %v): %w", lat, lon, domain.ErrOutOfBounds)
	}
	return uv, nil
}

func (f *Field) nearestTime(t time.Time) int {
	if !t.After(f.times[0]) {
		return 0
	}
	last := len(f.times) - 1
	if !t.Before(f.times[last]) {
		return last
	}
	best := 0
	bestDiff := absDuration(t.Sub(f.times[0]))
	for i := 1; i <= last; i++ {
		if d := absDuration(t.Sub(f.times[i])); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// nearestIndex returns the index whose axis value is closest to v. The axis
// may ascend or descend.
func nearestIndex(axis []float64, v float64) int {
	best := 0
	bestDiff := math.Abs(v - axis[0])
	for i := 1; i < len(axis); i++ {
		if d := math.Abs(v - axis[i]); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}
