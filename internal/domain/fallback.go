package domain

import "time"

// Constant drift rates used when no field data is available. The values are
// a rough northeastward surface-current climatology, scaled by the object's
// coefficients.
const (
	fallbackLatPerHour = 0.01
	fallbackLonPerHour = 0.015
)

// FallbackTrajectory produces a simplified, field-independent trajectory:
// constant northward/eastward drift with one point per whole hour. The output
// is degraded but deterministic, never an error.
func FallbackTrajectory(in DriftInput, profile ObjectProfile) []TrajectoryPoint {
	scale := profile.CurrentFactor * profile.DragFactor
	latPerHour := fallbackLatPerHour * scale
	lonPerHour := fallbackLonPerHour * scale

	trajectory := []TrajectoryPoint{{
		Lat:          round6(in.Lat),
		Lon:          round6(in.Lon),
		HoursElapsed: 0,
		Timestamp:    in.Start,
	}}

	for h := 1; h <= int(in.Hours); h++ {
		trajectory = append(trajectory, TrajectoryPoint{
			Lat:          round6(in.Lat + latPerHour*float64(h)),
			Lon:          round6(in.Lon + lonPerHour*float64(h)),
			HoursElapsed: float64(h),
			Timestamp:    in.Start.Add(time.Duration(h) * time.Hour),
		})
	}

	return trajectory
}
