package currents

import (
	"math/rand"
	"time"

	"github.com/oceandrift/drift-api/internal/adapter/grid"
)

const (
	// Synthetic fields cover a box of +/- this many degrees around the
	// requested center.
	syntheticHalfWidthDeg = 2.0

	// Grid points per spatial axis.
	syntheticGridPoints = 20

	// Standard deviation of the generated current speed components, m/s.
	// Typical open-ocean surface currents are a few decimeters per second.
	syntheticSigma = 0.2
)

// SyntheticField generates a deterministic velocity field around (lat, lon)
// for [start, end] at hourly resolution. The same seed always produces the
// same field, so cached and regenerated data agree.
func SyntheticField(lat, lon float64, start, end time.Time, seed int64) (*grid.Field, error) {
	lats := axisAround(lat, syntheticHalfWidthDeg, syntheticGridPoints)
	lons := axisAround(lon, syntheticHalfWidthDeg, syntheticGridPoints)

	start = start.UTC().Truncate(time.Hour)
	times := []time.Time{start}
	for t := start.Add(time.Hour); !t.After(end.UTC()); t = t.Add(time.Hour) {
		times = append(times, t)
	}

	rng := rand.New(rand.NewSource(seed))
	u := make([][][]float64, len(times))
	v := make([][][]float64, len(times))
	for ti := range times {
		u[ti] = make([][]float64, len(lats))
		v[ti] = make([][]float64, len(lats))
		for i := range lats {
			u[ti][i] = make([]float64, len(lons))
			v[ti][i] = make([]float64, len(lons))
			for j := range lons {
				u[ti][i][j] = rng.NormFloat64() * syntheticSigma
				v[ti][i][j] = rng.NormFloat64() * syntheticSigma
			}
		}
	}

	return grid.NewField(times, lats, lons, u, v)
}

// axisAround builds n evenly spaced values spanning center +/- halfWidth.
func axisAround(center, halfWidth float64, n int) []float64 {
	axis := make([]float64, n)
	step := 2 * halfWidth / float64(n-1)
	for i := range axis {
		axis[i] = center - halfWidth + float64(i)*step
	}
	return axis
}
