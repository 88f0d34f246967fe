package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput marks a drift request rejected before any stepping begins.
// Bad coordinates and non-positive durations are never silently corrected.
var ErrInvalidInput = errors.New("invalid drift input")

// DefaultStep is the integration time step used when none is configured.
const DefaultStep = 15 * time.Minute

// DefaultMaxSteps bounds the number of integration steps a single request may
// execute, keeping worst-case latency finite for very long durations.
const DefaultMaxSteps = 100_000

// TrajectoryPoint is one recorded position along a drift path. HoursElapsed
// is non-negative and non-decreasing along a trajectory; Timestamp is the
// incident time plus HoursElapsed.
type TrajectoryPoint struct {
	Lat          float64
	Lon          float64
	HoursElapsed float64
	Timestamp    time.Time
}

// DriftInput describes a single drift prediction request to the integrator.
type DriftInput struct {
	Lat    float64
	Lon    float64
	Start  time.Time
	Hours  float64
	Object ObjectType
}

// DriftResult is the outcome of one integration. The trajectory is ordered,
// non-empty, and starts at the initial position with HoursElapsed zero.
//
// OutOfBoundsSamples and DegradedSteps count recoverable conditions handled
// during stepping; Fallback marks a degraded, field-independent estimate
// produced because the velocity field could not be sampled at all.
type DriftResult struct {
	Trajectory         []TrajectoryPoint
	OutOfBoundsSamples int
	DegradedSteps      int
	Fallback           bool
}

// Final returns the last recorded point.
func (r *DriftResult) Final() TrajectoryPoint {
	return r.Trajectory[len(r.Trajectory)-1]
}

// DistanceKm returns the great-circle distance between the first and last
// recorded points.
func (r *DriftResult) DistanceKm() float64 {
	first := r.Trajectory[0]
	last := r.Final()
	return HaversineKm(first.Lat, first.Lon, last.Lat, last.Lon)
}

// Integrator advances a position through a velocity field using explicit
// forward Euler steps. It holds no per-request state and is safe to share
// across concurrent requests.
type Integrator struct {
	profiles *ProfileTable
	step     time.Duration
	maxSteps int
}

// NewIntegrator creates an integrator over the given profile table with the
// default step and ceiling.
func NewIntegrator(profiles *ProfileTable) *Integrator {
	return &Integrator{
		profiles: profiles,
		step:     DefaultStep,
		maxSteps: DefaultMaxSteps,
	}
}

// WithStep sets the integration step. The step must be positive and divide
// one hour evenly so recorded points land on hour boundaries; invalid values
// surface as ErrInvalidInput at integration time rather than being corrected.
func (ig *Integrator) WithStep(step time.Duration) *Integrator {
	ig.step = step
	return ig
}

// WithMaxSteps sets the per-request step ceiling.
func (ig *Integrator) WithMaxSteps(n int) *Integrator {
	ig.maxSteps = n
	return ig
}

func (ig *Integrator) validate(in DriftInput) error {
	if in.Hours <= 0 || math.IsNaN(in.Hours) {
		return fmt.Errorf("%w: duration must be positive, got %v hours", ErrInvalidInput, in.Hours)
	}
	if !ValidCoordinates(in.Lat, in.Lon) {
		return fmt.Errorf("%w: coordinates (%v, %v) outside valid range", ErrInvalidInput, in.Lat, in.Lon)
	}
	if ig.step <= 0 {
		return fmt.Errorf("%w: non-positive integration step %v", ErrInvalidInput, ig.step)
	}
	if time.Hour%ig.step != 0 {
		return fmt.Errorf("%w: step %v does not divide an hour evenly", ErrInvalidInput, ig.step)
	}
	stepHours := ig.step.Hours()
	if int(in.Hours/stepHours) > ig.maxSteps {
		return fmt.Errorf("%w: %v hours at step %v exceeds the %d step ceiling",
			ErrInvalidInput, in.Hours, ig.step, ig.maxSteps)
	}
	return nil
}

// Integrate computes a drift trajectory through the given field.
//
// The scheme is first-order: at each step the current velocity is sampled at
// the position and time reached so far, scaled by the object's coefficients
// (u · currentFactor · dragFactor), converted to a degree offset at the
// current latitude, and added to the position. Points are recorded on each
// hour boundary and at the final step.
//
// A nil or unavailable field does not fail the request; the result is the
// fallback estimate with Fallback set. Context cancellation between steps
// aborts with the context's error.
func (ig *Integrator) Integrate(ctx context.Context, field Sampler, in DriftInput) (*DriftResult, error) {
	if err := ig.validate(in); err != nil {
		return nil, err
	}

	profile := ig.profiles.Lookup(in.Object)

	if field == nil {
		return &DriftResult{
			Trajectory: FallbackTrajectory(in, profile),
			Fallback:   true,
		}, nil
	}
	// Resolve field availability before stepping begins.
	if _, err := field.Sample(in.Start, in.Lat, in.Lon); errors.Is(err, ErrFieldUnavailable) {
		return &DriftResult{
			Trajectory: FallbackTrajectory(in, profile),
			Fallback:   true,
		}, nil
	}

	result := &DriftResult{}
	lat, lon := in.Lat, in.Lon
	result.Trajectory = append(result.Trajectory, TrajectoryPoint{
		Lat:          round6(lat),
		Lon:          round6(lon),
		HoursElapsed: 0,
		Timestamp:    in.Start,
	})

	stepHours := ig.step.Hours()
	stepSeconds := ig.step.Seconds()
	numSteps := int(in.Hours / stepHours)
	recordEvery := int(time.Hour / ig.step)

	velocityScale := profile.CurrentFactor * profile.DragFactor

	for k := 1; k <= numSteps; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tk := in.Start.Add(time.Duration(k) * ig.step)

		uv, err := field.Sample(tk, lat, lon)
		switch {
		case err == nil:
			dx := uv.U * velocityScale * stepSeconds
			dy := uv.V * velocityScale * stepSeconds
			dLat, dLon := MetersToDegrees(dx, dy, lat)
			lat += dLat
			lon += dLon
		case errors.Is(err, ErrOutOfBounds):
			// Zero velocity for this sample: position holds.
			result.OutOfBoundsSamples++
		default:
			// Unexpected sampling fault: substitute a small deterministic
			// displacement for this step only and keep going.
			lat += 0.001 * profile.DragFactor * stepHours
			lon += 0.0015 * profile.DragFactor * stepHours
			result.DegradedSteps++
		}

		if k%recordEvery == 0 || k == numSteps {
			result.Trajectory = append(result.Trajectory, TrajectoryPoint{
				Lat:          round6(lat),
				Lon:          round6(lon),
				HoursElapsed: round2(float64(k) * stepHours),
				Timestamp:    tk,
			})
		}
	}

	// Durations shorter than one step record nothing beyond the start; close
	// the trajectory with the final position so it always has two points.
	if len(result.Trajectory) == 1 {
		result.Trajectory = append(result.Trajectory, TrajectoryPoint{
			Lat:          round6(lat),
			Lon:          round6(lon),
			HoursElapsed: round2(in.Hours),
			Timestamp:    in.Start.Add(time.Duration(in.Hours * float64(time.Hour))),
		})
	}

	return result, nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
