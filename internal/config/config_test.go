package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "")
	t.Setenv("EXTRACTOR_DIM", "")
	t.Setenv("MATCH_TOLERANCE", "")
	t.Setenv("CAMERAS_FILE", "")

	cfg := Load()

	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected default MaxOpenConns 25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("expected default MaxIdleConns 5, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Extractor.Dim != 128 {
		t.Errorf("expected default extractor dim 128, got %d", cfg.Extractor.Dim)
	}
	if cfg.Matcher.Tolerance != 0.6 {
		t.Errorf("expected default tolerance 0.6, got %f", cfg.Matcher.Tolerance)
	}
	if len(cfg.Cameras) != 0 {
		t.Errorf("expected no cameras, got %d", len(cfg.Cameras))
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "user:pass@tcp(localhost:3306)/attendance")
	t.Setenv("EXTRACTOR_URL", "http://extractor:8000")
	t.Setenv("EXTRACTOR_DIM", "512")
	t.Setenv("MATCH_TOLERANCE", "0.45")

	cfg := Load()

	if cfg.Database.URL != "user:pass@tcp(localhost:3306)/attendance" {
		t.Errorf("unexpected database URL: %s", cfg.Database.URL)
	}
	if cfg.Extractor.URL != "http://extractor:8000" {
		t.Errorf("unexpected extractor URL: %s", cfg.Extractor.URL)
	}
	if cfg.Extractor.Dim != 512 {
		t.Errorf("expected dim 512, got %d", cfg.Extractor.Dim)
	}
	if cfg.Matcher.Tolerance != 0.45 {
		t.Errorf("expected tolerance 0.45, got %f", cfg.Matcher.Tolerance)
	}
}

func TestEnvInt_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty", "", 10},
		{"garbage", "abc", 10},
		{"negative", "-3", 10},
		{"zero", "0", 10},
		{"valid", "42", 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tc.value)
			if got := envInt("TEST_ENV_INT", 10); got != tc.want {
				t.Errorf("envInt(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestEnvFloat_Invalid(t *testing.T) {
	t.Setenv("TEST_ENV_FLOAT", "not-a-number")
	if got := envFloat("TEST_ENV_FLOAT", 0.6); got != 0.6 {
		t.Errorf("expected fallback 0.6, got %f", got)
	}

	t.Setenv("TEST_ENV_FLOAT", "0.35")
	if got := envFloat("TEST_ENV_FLOAT", 0.6); got != 0.35 {
		t.Errorf("expected 0.35, got %f", got)
	}
}

func TestLoadCameras(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cameras.yaml")
	content := `cameras:
  - name: entrance
    url: http://cam1.local/capture
    interval_ms: 500
  - name: backdoor
    url: http://cam2.local/capture
    interval_ms: 1000
    tolerance: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write cameras file: %v", err)
	}

	t.Setenv("CAMERAS_FILE", path)
	cfg := Load()

	if len(cfg.Cameras) != 2 {
		t.Fatalf("expected 2 cameras, got %d", len(cfg.Cameras))
	}

	cam := cfg.Camera("entrance")
	if cam == nil {
		t.Fatal("expected camera 'entrance' to exist")
	}
	if cam.URL != "http://cam1.local/capture" {
		t.Errorf("unexpected camera URL: %s", cam.URL)
	}
	if cam.IntervalMS != 500 {
		t.Errorf("expected interval 500, got %d", cam.IntervalMS)
	}

	if cfg.Camera("missing") != nil {
		t.Error("expected nil for unknown camera name")
	}

	back := cfg.Camera("backdoor")
	if back == nil || back.Tolerance != 0.5 {
		t.Error("expected backdoor camera with tolerance override 0.5")
	}
}

func TestLoadCameras_MissingFile(t *testing.T) {
	cams, err := loadCameras("/nonexistent/cameras.yaml")
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if cams != nil {
		t.Errorf("expected nil cameras, got %v", cams)
	}
}
