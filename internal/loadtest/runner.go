package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes a complete load run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting signup load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("signups", config.NumSignups),
		logger.Float64("duplicateRatio", config.DuplicateRatio),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	client := newHTTPClient(config.BaseURL, config.Timeout)

	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	before, err := client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("activity listing failed: %w", err)
	}

	signups, err := generateSignups(ctx, config, before.Names(), stats)
	if err != nil {
		return stats, fmt.Errorf("signup generation failed: %w", err)
	}

	accepted := submitSignups(ctx, config, client, signups, stats)

	after, err := client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("activity listing failed: %w", err)
	}
	if err := verifyResults(ctx, after, accepted, stats); err != nil {
		return stats, err
	}
	if err := checkAccounting(config, stats); err != nil {
		return stats, err
	}

	if config.OutputFile != "" {
		if err := saveSignupsToFile(ctx, config.OutputFile, signups); err != nil {
			log.Warn(ctx, "failed to save signups to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// saveSignupsToFile writes the generated signups as a JSON array.
func saveSignupsToFile(ctx context.Context, filename string, signups []Signup) error {
	if len(signups) == 0 {
		return fmt.Errorf("no signups to save")
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(signups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal signups: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "signups saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.Submitted > 0 {
		acceptRate = float64(stats.Accepted) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicates),
		logger.Int("full", stats.Full),
		logger.Int("notFound", stats.NotFound),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("signupsPerSecond", perSecond),
	)
}
