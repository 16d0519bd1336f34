// Package config defines service configuration and its loading rules.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers a dotenv file, a YAML file and environment variables on top.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`
	// StaticDir serves the UI from disk instead of the embedded copy when set.
	StaticDir string `koanf:"static_dir"`
	// CatalogFile replaces the built-in activity catalog with a YAML file when set.
	CatalogFile string `koanf:"catalog_file"`
	// EnforceCapacity rejects signups once max_participants is reached.
	EnforceCapacity bool `koanf:"enforce_capacity"`
	// EventQueueSize bounds the in-memory signup event queue.
	EventQueueSize int `koanf:"event_queue_size"`
	// WorkerCount sets the number of signup event publishers.
	WorkerCount int `koanf:"worker_count"`
	// KafkaBrokers is a comma separated broker list. Empty disables Kafka.
	KafkaBrokers string `koanf:"kafka_brokers"`
	// KafkaTopic receives signup events when Kafka is enabled.
	KafkaTopic string `koanf:"kafka_topic"`
}

// New creates a Config with defaults. The context is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8000",
		EventQueueSize: 1024,
		WorkerCount:    runtime.NumCPU(),
		KafkaTopic:     "activity-signups",
	}
}

// Brokers splits KafkaBrokers into a clean list.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalid("addr must not be empty")
	case c.EventQueueSize < 0:
		return invalid("event_queue_size must not be negative")
	case c.WorkerCount < 0:
		return invalid("worker_count must not be negative")
	case len(c.Brokers()) > 0 && strings.TrimSpace(c.KafkaTopic) == "":
		return invalid("kafka_topic must be set when kafka_brokers is set")
	}
	return nil
}
