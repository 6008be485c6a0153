package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig
	Extractor ExtractorConfig
	Matcher   MatcherConfig
	Cameras   []CameraConfig
}

type DatabaseConfig struct {
	URL          string // MySQL DSN (e.g., attendance:attendance@tcp(mariadb:3306)/attendance) or postgres:// URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type ExtractorConfig struct {
	URL   string // defaults to http://localhost:8000
	Model string // model name for reference only
	Dim   int    // descriptor dimensionality, defaults to 128
}

type MatcherConfig struct {
	Tolerance float64 // maximum Euclidean distance for a match, defaults to 0.6
}

// CameraConfig describes one snapshot camera in the cameras file.
type CameraConfig struct {
	Name       string  `yaml:"name"`
	URL        string  `yaml:"url"`
	IntervalMS int     `yaml:"interval_ms"`
	Tolerance  float64 `yaml:"tolerance,omitempty"` // per-camera override, 0 = use global
}

type camerasFile struct {
	Cameras []CameraConfig `yaml:"cameras"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// loadCameras reads the optional cameras YAML file named by CAMERAS_FILE.
// A missing or unset file yields no cameras; a malformed file is an error the
// caller may choose to ignore.
func loadCameras(path string) ([]CameraConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cameras file: %w", err)
	}
	var f camerasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing cameras file %s: %w", path, err)
	}
	return f.Cameras, nil
}

func Load() *Config {
	cameras, err := loadCameras(os.Getenv("CAMERAS_FILE"))
	if err != nil {
		// Cameras are optional; a broken file should not take the whole app down.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Extractor: ExtractorConfig{
			URL:   os.Getenv("EXTRACTOR_URL"),
			Model: os.Getenv("EXTRACTOR_MODEL"),
			Dim:   envInt("EXTRACTOR_DIM", 128),
		},
		Matcher: MatcherConfig{
			Tolerance: envFloat("MATCH_TOLERANCE", 0.6),
		},
		Cameras: cameras,
	}
}

// Camera returns the camera with the given name, or nil if not configured.
func (c *Config) Camera(name string) *CameraConfig {
	for i := range c.Cameras {
		if c.Cameras[i].Name == name {
			return &c.Cameras[i]
		}
	}
	return nil
}
