// Command train-model fits a toy per-object drift distance model on synthetic
// Dutch coastal water drift logs and writes the coefficients to CSV. It has no
// bearing on the integrator; the output is reference material for comparing
// observed drift against the configured drag factors.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// driftSample is one simulated drift incident.
type driftSample struct {
	ObjectType string
	Lat        float64
	Lon        float64
	Hours      float64
	U          float64
	V          float64
	Drag       float64
	DriftKm    float64
}

// dragByObject lists the simulated object types with their drag factors.
var dragByObject = []struct {
	name string
	drag float64
}{
	{"Person_Adult_LifeJacket", 0.8},
	{"Person_Adult_NoLifeJacket", 1.1},
	{"Person_Adolescent_LifeJacket", 0.9},
	{"Person_Child_LifeJacket", 1.0},
	{"Catamaran", 0.4},
	{"Hobby_Cat", 0.5},
	{"Fishing_Trawler", 0.2},
	{"RHIB", 0.6},
	{"SUP_Board", 1.2},
	{"Windsurfer", 1.3},
	{"Kayak", 1.1},
}

func main() {
	samples := flag.Int("samples", 500, "Number of simulated drift incidents")
	seed := flag.Int64("seed", 42, "RNG seed")
	outDir := flag.String("out", "./ml", "Output directory")
	writeLogs := flag.Bool("logs", false, "Also write the raw drift logs CSV")

	flag.Parse()

	if *samples < len(dragByObject)*2 {
		log.Fatalf("-samples too small: need at least %d", len(dragByObject)*2)
	}

	logs := generateDutchCoastalData(*samples, *seed)
	log.Printf("Simulated %d drift incidents across %d object types", len(logs), len(dragByObject))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	coeffs := fitDriftModel(logs)
	modelPath := filepath.Join(*outDir, "model_drift.csv")
	if err := writeModelCSV(modelPath, coeffs); err != nil {
		log.Fatalf("Failed to write model: %v", err)
	}
	log.Printf("✓ Wrote %s (%d object types)", modelPath, len(coeffs))

	if *writeLogs {
		logsPath := filepath.Join(*outDir, "drift_logs.csv")
		if err := writeLogsCSV(logsPath, logs); err != nil {
			log.Fatalf("Failed to write logs: %v", err)
		}
		log.Printf("✓ Wrote %s", logsPath)
	}
}

// generateDutchCoastalData simulates drift incidents in the Dutch coastal
// box (52.3-52.7N, 3.8-4.5E) with uniform currents and durations. The drift
// distance follows the kinematic relation
// km = speed_m_s * 3.6 * hours * drag applied per component.
func generateDutchCoastalData(n int, seed int64) []driftSample {
	rng := rand.New(rand.NewSource(seed))
	logs := make([]driftSample, 0, n)

	for i := 0; i < n; i++ {
		profile := dragByObject[rng.Intn(len(dragByObject))]

		s := driftSample{
			ObjectType: profile.name,
			Lat:        52.3 + rng.Float64()*0.4,
			Lon:        3.8 + rng.Float64()*0.7,
			Hours:      0.5 + rng.Float64()*5.5,
			U:          0.2 + rng.Float64()*1.0,
			V:          0.2 + rng.Float64()*1.0,
			Drag:       profile.drag,
		}
		dx := s.U * 3.6 * s.Hours * s.Drag
		dy := s.V * 3.6 * s.Hours * s.Drag
		s.DriftKm = math.Hypot(dx, dy)
		logs = append(logs, s)
	}
	return logs
}

// modelCoeff holds the fitted line for one object type: predicted drift km as
// a function of hours * current speed in km/h. The slope estimates the drag
// factor.
type modelCoeff struct {
	ObjectType string
	Intercept  float64
	Slope      float64
	RSquared   float64
	Samples    int
}

// fitDriftModel runs an ordinary least squares fit per object type.
func fitDriftModel(logs []driftSample) []modelCoeff {
	byObject := make(map[string][]driftSample)
	for _, s := range logs {
		byObject[s.ObjectType] = append(byObject[s.ObjectType], s)
	}

	names := make([]string, 0, len(byObject))
	for name := range byObject {
		names = append(names, name)
	}
	sort.Strings(names)

	coeffs := make([]modelCoeff, 0, len(names))
	for _, name := range names {
		group := byObject[name]
		xs := make([]float64, len(group))
		ys := make([]float64, len(group))
		for i, s := range group {
			xs[i] = math.Hypot(s.U, s.V) * 3.6 * s.Hours
			ys[i] = s.DriftKm
		}

		alpha, beta := stat.LinearRegression(xs, ys, nil, false)

		estimates := make([]float64, len(xs))
		for i, x := range xs {
			estimates[i] = alpha + beta*x
		}
		r2 := stat.RSquaredFrom(estimates, ys, nil)

		coeffs = append(coeffs, modelCoeff{
			ObjectType: name,
			Intercept:  alpha,
			Slope:      beta,
			RSquared:   r2,
			Samples:    len(group),
		})
	}
	return coeffs
}

func writeModelCSV(path string, coeffs []modelCoeff) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"object_type", "intercept_km", "slope", "r_squared", "samples"}); err != nil {
		return err
	}
	for _, c := range coeffs {
		record := []string{
			c.ObjectType,
			strconv.FormatFloat(c.Intercept, 'f', 6, 64),
			strconv.FormatFloat(c.Slope, 'f', 6, 64),
			strconv.FormatFloat(c.RSquared, 'f', 6, 64),
			strconv.Itoa(c.Samples),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeLogsCSV(path string, logs []driftSample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"object_type", "latitude", "longitude", "hours_since", "uo", "vo", "drag", "drift_distance_km"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range logs {
		record := []string{
			s.ObjectType,
			fmt.Sprintf("%.4f", s.Lat),
			fmt.Sprintf("%.4f", s.Lon),
			fmt.Sprintf("%.2f", s.Hours),
			fmt.Sprintf("%.3f", s.U),
			fmt.Sprintf("%.3f", s.V),
			fmt.Sprintf("%.2f", s.Drag),
			fmt.Sprintf("%.3f", s.DriftKm),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
