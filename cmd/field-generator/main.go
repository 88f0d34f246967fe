// Command field-generator writes synthetic ocean current NetCDF files for
// development and testing of the drift API.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/oceandrift/drift-api/internal/adapter/store/currents"
)

func main() {
	// Command line flags
	lat := flag.Float64("lat", 52.5, "Center latitude of the generated field")
	lon := flag.Float64("lon", 4.2, "Center longitude of the generated field")
	startStr := flag.String("start", "", "Start time (RFC3339, default: now truncated to the hour)")
	hours := flag.Int("hours", 72, "Covered duration in hours")
	seed := flag.Int64("seed", 1, "RNG seed for the synthetic currents")
	outDir := flag.String("out", "./data/currents", "Output directory")
	name := flag.String("name", "", "Output file name (default: the store's cache name)")

	flag.Parse()

	start := time.Now().UTC().Truncate(time.Hour)
	if *startStr != "" {
		parsed, err := time.Parse(time.RFC3339, *startStr)
		if err != nil {
			log.Fatalf("Invalid -start (expected RFC3339): %v", err)
		}
		start = parsed.UTC()
	}
	if *hours <= 0 {
		log.Fatalf("-hours must be positive, got %d", *hours)
	}
	end := start.Add(time.Duration(*hours) * time.Hour)

	log.Printf("Generating synthetic current field")
	log.Printf("Center: (%.4f, %.4f)", *lat, *lon)
	log.Printf("Window: %s to %s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	field, err := currents.SyntheticField(*lat, *lon, start, end, *seed)
	if err != nil {
		log.Fatalf("Failed to generate field: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	fileName := *name
	if fileName == "" {
		fileName = currents.CacheFileName(*lat, *lon, start, end)
	}
	path := filepath.Join(*outDir, fileName)

	if err := currents.WriteField(path, field); err != nil {
		log.Fatalf("Failed to write NetCDF file: %v", err)
	}

	times, lats, lons := field.Axes()
	log.Printf("✓ Wrote %s", path)
	log.Printf("Grid: %d time steps × %d × %d points", len(times), len(lats), len(lons))
	minLat, maxLat, minLon, maxLon := field.Bounds()
	log.Printf("Coverage: %.2f°-%.2f°N, %.2f°-%.2f°E", minLat, maxLat, minLon, maxLon)
}
