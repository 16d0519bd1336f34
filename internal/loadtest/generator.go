package loadtest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/mergington/pkg/logger"
)

// generateSignups spreads NumSignups unique emails round-robin over names and
// appends resubmissions of the first DuplicateRatio share.
func generateSignups(ctx context.Context, config *Config, names []string, stats *Stats) ([]Signup, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no activities to sign up for")
	}
	if config.NumSignups <= 0 {
		return nil, fmt.Errorf("number of signups must be positive")
	}

	dupes := int(float64(config.NumSignups) * clampRatio(config.DuplicateRatio))
	signups := make([]Signup, 0, config.NumSignups+dupes)
	for i := 0; i < config.NumSignups; i++ {
		signups = append(signups, Signup{
			Activity: names[i%len(names)],
			Email:    "load-" + uuid.NewString() + "@" + emailDomain,
		})
	}
	for i := 0; i < dupes; i++ {
		d := signups[i]
		d.Duplicate = true
		signups = append(signups, d)
	}

	stats.Generated = len(signups)
	logger.Get().Info(ctx, "generated signups",
		logger.Int("unique", config.NumSignups),
		logger.Int("duplicates", dupes),
	)
	return signups, nil
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
