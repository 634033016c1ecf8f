package config

import "time"

// Config holds all settings for a converter run.
type Config struct {
	File      string
	BatchID   string
	SubmitURL string
	Timeout   time.Duration
	Quiet     bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchID: "csv-batch-001",
		Timeout: 45 * time.Second,
		Quiet:   false,
	}
}
