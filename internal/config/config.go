package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults
const (
	DefaultPort          = "3000"
	DefaultDownloadsDir  = "downloads"
	DefaultWorkerCommand = "yt-dlp"
	DefaultMaxConcurrent = 4
	DefaultJobTTLSec     = 300
	DefaultSweepSec      = 30
)

// Config holds all service settings. Values come from defaults, then an
// optional TOML file, then environment variable overrides, in that order.
type Config struct {
	Port           string   `toml:"port"`
	DownloadsDir   string   `toml:"downloads_dir"`
	WorkerCommand  string   `toml:"worker_command"`
	MaxConcurrent  int64    `toml:"max_concurrent_jobs"`
	JobTTLSec      int      `toml:"job_ttl_seconds"`
	SweepSec       int      `toml:"sweep_interval_seconds"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:           DefaultPort,
		DownloadsDir:   DefaultDownloadsDir,
		WorkerCommand:  DefaultWorkerCommand,
		MaxConcurrent:  DefaultMaxConcurrent,
		JobTTLSec:      DefaultJobTTLSec,
		SweepSec:       DefaultSweepSec,
		AllowedOrigins: []string{"*"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.DownloadsDir = getEnv("DOWNLOADS_DIR", c.DownloadsDir)
	c.WorkerCommand = getEnv("WORKER_COMMAND", c.WorkerCommand)
	c.MaxConcurrent = int64(getEnvInt("MAX_CONCURRENT_JOBS", int(c.MaxConcurrent)))
	c.JobTTLSec = getEnvInt("JOB_TTL_SECONDS", c.JobTTLSec)
	c.SweepSec = getEnvInt("SWEEP_INTERVAL_SECONDS", c.SweepSec)
}

// Validate reports the first configuration problem found
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.DownloadsDir == "" {
		return errors.New("downloads_dir must not be empty")
	}
	if c.WorkerCommand == "" {
		return errors.New("worker_command must not be empty")
	}
	if c.MaxConcurrent < 1 {
		return errors.New("max_concurrent_jobs must be at least 1")
	}
	if c.JobTTLSec < 1 {
		return errors.New("job_ttl_seconds must be at least 1")
	}
	if c.SweepSec < 1 {
		return errors.New("sweep_interval_seconds must be at least 1")
	}
	return nil
}

// JobTTL returns the job retention window as a duration
func (c *Config) JobTTL() time.Duration {
	return time.Duration(c.JobTTLSec) * time.Second
}

// SweepInterval returns the expiry sweep period as a duration
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepSec) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
