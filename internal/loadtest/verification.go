package loadtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// ErrVerification is returned when the final catalog disagrees with the
// accepted signups.
var ErrVerification = errors.New("signup verification failed")

// verifyResults checks that every accepted signup appears exactly once in
// its activity and that no activity lists a participant twice.
func verifyResults(ctx context.Context, catalog model.Catalog, accepted []Signup, stats *Stats) error {
	logger.Get().Info(ctx, "verifying results", logger.Int("accepted", len(accepted)))

	seen := make(map[string]map[string]int, len(catalog))
	for _, item := range catalog {
		counts := make(map[string]int, len(item.Activity.Participants))
		for _, p := range item.Activity.Participants {
			counts[p]++
			if counts[p] > 1 {
				return fmt.Errorf("%w: %s listed twice in %q", ErrVerification, p, item.Name)
			}
		}
		seen[item.Name] = counts
	}

	for _, s := range accepted {
		counts, ok := seen[s.Activity]
		if !ok {
			return fmt.Errorf("%w: activity %q missing from catalog", ErrVerification, s.Activity)
		}
		if counts[s.Email] != 1 {
			return fmt.Errorf("%w: %s not found in %q", ErrVerification, s.Email, s.Activity)
		}
	}

	stats.Verified = len(accepted)
	logger.Get().Info(ctx, "result verification completed", logger.Int("verified", stats.Verified))
	return nil
}

// checkAccounting confirms no unique signup was accepted more than once.
func checkAccounting(config *Config, stats *Stats) error {
	if stats.Accepted > config.NumSignups {
		return fmt.Errorf("%w: %d signups accepted for %d unique emails",
			ErrVerification, stats.Accepted, config.NumSignups)
	}
	return nil
}
