package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %s, expected %s", cfg.Port, DefaultPort)
	}
	if cfg.WorkerCommand != DefaultWorkerCommand {
		t.Errorf("WorkerCommand = %s, expected %s", cfg.WorkerCommand, DefaultWorkerCommand)
	}
	if cfg.JobTTL().Seconds() != DefaultJobTTLSec {
		t.Errorf("JobTTL = %v, expected %ds", cfg.JobTTL(), DefaultJobTTLSec)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunegrab.toml")
	content := `
port = "8080"
downloads_dir = "/var/lib/tunegrab"
max_concurrent_jobs = 2
job_ttl_seconds = 600
allowed_origins = ["https://example.com"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, expected 8080", cfg.Port)
	}
	if cfg.DownloadsDir != "/var/lib/tunegrab" {
		t.Errorf("DownloadsDir = %s", cfg.DownloadsDir)
	}
	if cfg.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, expected 2", cfg.MaxConcurrent)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	// File values that were not set keep defaults
	if cfg.SweepSec != DefaultSweepSec {
		t.Errorf("SweepSec = %d, expected default %d", cfg.SweepSec, DefaultSweepSec)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunegrab.toml")
	if err := os.WriteFile(path, []byte(`port = "8080"`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, expected env override 9090", cfg.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_JOBS", "0")

	if _, err := Load(""); err == nil {
		t.Error("Expected validation error for zero max_concurrent_jobs")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.toml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
