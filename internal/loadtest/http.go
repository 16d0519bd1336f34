package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// HTTPClient wraps http.Client for the activities API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp, body, nil
}

// Health returns nil when /healthz answers 200.
func (c *HTTPClient) Health(ctx context.Context) error {
	resp, _, err := c.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// Activities fetches the catalog in service order.
func (c *HTTPClient) Activities(ctx context.Context) (model.Catalog, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list activities failed with status: %d", resp.StatusCode)
	}
	var catalog model.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return catalog, nil
}

// Signup submits one signup and classifies the response.
func (c *HTTPClient) Signup(ctx context.Context, s Signup) outcome {
	path := "/activities/" + url.PathEscape(s.Activity) + "/signup?" + url.Values{"email": {s.Email}}.Encode()
	resp, body, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return outcomeFailed
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return outcomeAccepted
	case http.StatusNotFound:
		return outcomeNotFound
	case http.StatusBadRequest:
		if err := json.Unmarshal(body, &detail); err == nil && detail.Detail == "Activity is full" {
			return outcomeFull
		}
		return outcomeDuplicate
	default:
		return outcomeFailed
	}
}

// submitSignups submits signups concurrently and returns the accepted ones.
func submitSignups(ctx context.Context, config *Config, client *HTTPClient, signups []Signup, stats *Stats) []Signup {
	log := logger.Get()
	log.Info(ctx, "submitting signups", logger.Int("count", len(signups)), logger.Int("workers", config.Workers))

	var (
		counts    [outcomeFailed + 1]int64
		submitted int64
		mu        sync.Mutex
		accepted  = make([]Signup, 0, len(signups))
	)

	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}
	signupChan := make(chan Signup, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range signupChan {
				result := client.Signup(ctx, s)
				atomic.AddInt64(&counts[result], 1)
				n := atomic.AddInt64(&submitted, 1)

				if result == outcomeAccepted {
					mu.Lock()
					accepted = append(accepted, s)
					mu.Unlock()
				}
				if config.Verbose {
					log.Debug(ctx, "signup submitted",
						logger.String("activity", s.Activity),
						logger.String("email", s.Email),
						logger.String("outcome", result.String()),
						logger.Int("progress", int(n)),
					)
				}
			}
		}()
	}

	go func() {
		defer close(signupChan)
		for _, s := range signups {
			select {
			case <-ctx.Done():
				return
			case signupChan <- s:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Accepted = int(counts[outcomeAccepted])
	stats.Duplicates = int(counts[outcomeDuplicate])
	stats.Full = int(counts[outcomeFull])
	stats.NotFound = int(counts[outcomeNotFound])
	stats.Failed = int(counts[outcomeFailed])

	log.Info(ctx, "signup submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicates),
		logger.Int("full", stats.Full),
		logger.Int("notFound", stats.NotFound),
		logger.Int("failed", stats.Failed),
	)
	return accepted
}
