package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oceandrift/drift-api/internal/domain"
	"github.com/oceandrift/drift-api/internal/observability"
)

// FieldProvider supplies a velocity field covering an area and time window.
type FieldProvider interface {
	FieldForArea(lat, lon float64, start, end time.Time) (domain.Sampler, error)
}

// FieldProviderFunc adapts a function to the FieldProvider interface.
type FieldProviderFunc func(lat, lon float64, start, end time.Time) (domain.Sampler, error)

// FieldForArea calls f.
func (f FieldProviderFunc) FieldForArea(lat, lon float64, start, end time.Time) (domain.Sampler, error) {
	return f(lat, lon, start, end)
}

// PredictionRequest encapsulates a drift prediction request.
type PredictionRequest struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Hours      float64 `json:"hours"`
	ObjectType string  `json:"object_type"`

	// Incident time. Defaults to the current time when omitted.
	StartTime *time.Time `json:"start_time,omitempty"`
}

// Validate checks if the request is valid. Violations wrap
// domain.ErrInvalidInput so transports can map them to client errors.
func (r *PredictionRequest) Validate() error {
	if math.IsNaN(r.Hours) || r.Hours <= 0 {
		return fmt.Errorf("%w: hours must be positive", domain.ErrInvalidInput)
	}
	if math.IsNaN(r.Lat) || r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrInvalidInput)
	}
	if math.IsNaN(r.Lon) || r.Lon < -180 || r.Lon > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrInvalidInput)
	}
	return nil
}

// Position is a lat/lon pair in the response.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TrajectoryPoint represents a single position along the predicted path.
type TrajectoryPoint struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	HoursElapsed float64 `json:"hours_elapsed"`
	Time         string  `json:"time"`
}

// SearchPatternResponse carries the recommended search pattern.
type SearchPatternResponse struct {
	Pattern   string `json:"pattern"`
	Rationale string `json:"rationale"`
}

// PredictionResponse contains the drift prediction results.
type PredictionResponse struct {
	ObjectType         string                `json:"object_type"`
	StartTime          string                `json:"start_time"`
	Hours              float64               `json:"hours"`
	InitialPosition    Position              `json:"initial_position"`
	FinalPosition      Position              `json:"final_position"`
	Trajectory         []TrajectoryPoint     `json:"trajectory"`
	TotalDistanceKm    float64               `json:"total_distance_km"`
	BearingDeg         float64               `json:"bearing_deg"`
	SearchPattern      SearchPatternResponse `json:"search_pattern"`
	Degraded           bool                  `json:"degraded"`
	OutOfBoundsSamples int                   `json:"out_of_bounds_samples"`
	DegradedSteps      int                   `json:"degraded_steps"`
	Meta               map[string]string     `json:"meta"`
}

// ObjectInfo describes one entry of the profile table for the objects listing.
type ObjectInfo struct {
	Name          string  `json:"name"`
	DragFactor    float64 `json:"drag_factor"`
	CurrentFactor float64 `json:"current_factor"`
	WindFactor    float64 `json:"wind_factor"`
	SurvivalHours float64 `json:"survival_hours"`
}

// PredictionUseCase orchestrates drift prediction: it resolves the velocity
// field, runs the integrator and shapes the response.
type PredictionUseCase struct {
	fields     FieldProvider
	profiles   *domain.ProfileTable
	integrator *domain.Integrator
	clock      clockwork.Clock
	metrics    *observability.Metrics
}

// NewPredictionUseCase creates a new prediction use case.
func NewPredictionUseCase(
	fields FieldProvider,
	profiles *domain.ProfileTable,
	integrator *domain.Integrator,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) *PredictionUseCase {
	return &PredictionUseCase{
		fields:     fields,
		profiles:   profiles,
		integrator: integrator,
		clock:      clock,
		metrics:    metrics,
	}
}

// Execute performs the drift prediction.
func (uc *PredictionUseCase) Execute(ctx context.Context, req PredictionRequest) (*PredictionResponse, error) {
	begin := uc.clock.Now()
	defer func() {
		uc.metrics.PredictionDuration.Observe(uc.clock.Since(begin).Seconds())
	}()

	if err := req.Validate(); err != nil {
		uc.metrics.Predictions.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	object := domain.ParseObjectType(req.ObjectType)

	start := uc.clock.Now().UTC()
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}
	end := start.Add(time.Duration(req.Hours * float64(time.Hour)))

	// A provider failure is not fatal: the integrator falls back to the
	// field-independent estimate.
	var field domain.Sampler
	if uc.fields != nil {
		if f, err := uc.fields.FieldForArea(req.Lat, req.Lon, start, end); err == nil {
			field = f
		}
	}

	result, err := uc.integrator.Integrate(ctx, field, domain.DriftInput{
		Lat:    req.Lat,
		Lon:    req.Lon,
		Start:  start,
		Hours:  req.Hours,
		Object: object,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			uc.metrics.Predictions.WithLabelValues("invalid").Inc()
		} else {
			uc.metrics.Predictions.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	uc.metrics.PredictionHours.Observe(req.Hours)
	uc.metrics.OutOfBoundsSamples.Add(float64(result.OutOfBoundsSamples))
	uc.metrics.DegradedSteps.Add(float64(result.DegradedSteps))
	if result.Fallback {
		uc.metrics.FallbackUsed.Inc()
		uc.metrics.Predictions.WithLabelValues("fallback").Inc()
	} else {
		uc.metrics.Predictions.WithLabelValues("success").Inc()
	}

	return uc.buildResponse(req, object, start, result), nil
}

func (uc *PredictionUseCase) buildResponse(
	req PredictionRequest,
	object domain.ObjectType,
	start time.Time,
	result *domain.DriftResult,
) *PredictionResponse {
	trajectory := make([]TrajectoryPoint, len(result.Trajectory))
	for i, p := range result.Trajectory {
		trajectory[i] = TrajectoryPoint{
			Lat:          p.Lat,
			Lon:          p.Lon,
			HoursElapsed: p.HoursElapsed,
			Time:         p.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	first := result.Trajectory[0]
	final := result.Final()
	distanceKm := roundToDecimal(result.DistanceKm(), 2)

	var bearing float64
	if distanceKm > 0 {
		bearing = roundToDecimal(domain.BearingDeg(first.Lat, first.Lon, final.Lat, final.Lon), 2)
	}

	pattern := domain.RecommendSearchPattern(req.Hours, distanceKm, object)

	meta := map[string]string{
		"model": "drift_euler_v1",
	}
	if result.Fallback {
		meta["estimator"] = "fallback"
	}

	return &PredictionResponse{
		ObjectType:      object.String(),
		StartTime:       start.Format(time.RFC3339),
		Hours:           req.Hours,
		InitialPosition: Position{Lat: first.Lat, Lon: first.Lon},
		FinalPosition:   Position{Lat: final.Lat, Lon: final.Lon},
		Trajectory:      trajectory,
		TotalDistanceKm: distanceKm,
		BearingDeg:      bearing,
		SearchPattern: SearchPatternResponse{
			Pattern:   pattern.Pattern,
			Rationale: pattern.Rationale,
		},
		Degraded:           result.Fallback || result.DegradedSteps > 0,
		OutOfBoundsSamples: result.OutOfBoundsSamples,
		DegradedSteps:      result.DegradedSteps,
		Meta:               meta,
	}
}

// ListObjects returns the profile table entries in a stable order.
func (uc *PredictionUseCase) ListObjects() []ObjectInfo {
	types := domain.AllObjectTypes()
	objects := make([]ObjectInfo, len(types))
	for i, t := range types {
		p := uc.profiles.Lookup(t)
		objects[i] = ObjectInfo{
			Name:          t.String(),
			DragFactor:    p.DragFactor,
			CurrentFactor: p.CurrentFactor,
			WindFactor:    p.WindFactor,
			SurvivalHours: p.SurvivalHours,
		}
	}
	return objects
}

// roundToDecimal rounds to the given number of decimal places.
func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}
