// Package config loads service settings from environment variables and an
// optional YAML object-profile file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oceandrift/drift-api/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	DataDir         string
	AllowedOrigins  string
	ShutdownTimeout time.Duration

	// Integration settings.
	Step     time.Duration
	MaxSteps int

	// Optional YAML file with object profile overrides.
	ProfilePath      string
	ProfileOverrides map[string]domain.ObjectProfile
}

// profileFile is the YAML layout of the profile override file.
type profileFile struct {
	Objects map[string]domain.ObjectProfile `yaml:"objects"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	step, err := parseStepMinutes()
	if err != nil {
		return nil, err
	}

	maxSteps := domain.DefaultMaxSteps
	if s := os.Getenv("MAX_STEPS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, errors.New("invalid MAX_STEPS")
		}
		maxSteps = n
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DataDir:         envOrDefault("DATA_DIR", "./data/currents"),
		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
		ShutdownTimeout: shutdownTimeout,
		Step:            step,
		MaxSteps:        maxSteps,
		ProfilePath:     os.Getenv("PROFILE_CONFIG"),
	}

	if cfg.ProfilePath != "" {
		overrides, err := loadProfileFile(cfg.ProfilePath)
		if err != nil {
			return nil, err
		}
		cfg.ProfileOverrides = overrides
	}

	return cfg, nil
}

// loadProfileFile parses a YAML file of object profile overrides.
func loadProfileFile(path string) (map[string]domain.ObjectProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile config: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse profile config: %w", err)
	}
	return pf.Objects, nil
}

func parseStepMinutes() (time.Duration, error) {
	s := os.Getenv("STEP_MINUTES")
	if s == "" {
		return domain.DefaultStep, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid STEP_MINUTES")
	}
	step := time.Duration(n) * time.Minute
	if time.Hour%step != 0 {
		return 0, errors.New("STEP_MINUTES must divide 60")
	}
	return step, nil
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
