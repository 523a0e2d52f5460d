package names

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"raid-status-bot/core/utils"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver translates pokemon, move and raid level ids into display names.
//
// Lookups never fail: ids missing from the loaded data fall back to
// "Pokemon N", "Move N" and "N* Raid". A failed Refresh keeps the data loaded
// before it.
type Resolver struct {
	url      string
	client   *http.Client
	attempts uint
	delay    time.Duration
	logger   *zap.Logger

	group singleflight.Group

	mu        sync.RWMutex
	data      map[string]string
	updatedAt time.Time
}

// NewResolver creates a resolver loading a flat JSON translation document from url.
func NewResolver(url string, attempts int, logger *zap.Logger) *Resolver {
	if attempts <= 0 {
		attempts = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		url:      url,
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: uint(attempts),
		delay:    time.Second,
		logger:   logger,
		data:     map[string]string{},
	}
}

// Species returns the pokemon name for id.
func (r *Resolver) Species(id int) string {
	if name, ok := r.lookup("poke_" + strconv.Itoa(id)); ok {
		return name
	}
	return fmt.Sprintf("Pokemon %d", id)
}

// Move returns the move name for id.
func (r *Resolver) Move(id int) string {
	if name, ok := r.lookup("move_" + strconv.Itoa(id)); ok {
		return name
	}
	return fmt.Sprintf("Move %d", id)
}

// RaidLevel returns the label of a raid level, optionally in plural form.
func (r *Resolver) RaidLevel(level int, plural bool) string {
	key := "raid_" + strconv.Itoa(level)
	if plural {
		key += "_plural"
	}
	if name, ok := r.lookup(key); ok {
		return name
	}
	return fmt.Sprintf("%d* Raid", level)
}

// Len returns the number of loaded names.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// UpdatedAt returns the time of the last successful refresh.
func (r *Resolver) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

// Refresh downloads the translation document and swaps it in.
// Concurrent calls share a single download.
func (r *Resolver) Refresh(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (any, error) {
		data, err := r.fetch(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.data = data
		r.updatedAt = time.Now()
		r.mu.Unlock()

		r.logger.Info("Name data updated", zap.Int("entries", len(data)))
		return nil, nil
	})
	return err
}

func (r *Resolver) lookup(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.data[key]
	return name, ok && name != ""
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}

func (r *Resolver) fetch(ctx context.Context) (map[string]string, error) {
	var data map[string]string

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			resp, err := r.client.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					r.logger.Warn("Failed to close response body", zap.Error(closeErr))
				}
			}()

			if resp.StatusCode != http.StatusOK {
				return &statusError{code: resp.StatusCode}
			}

			data, err = decode(resp.Body)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.MaxDelay(30*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Info("Retrying name data fetch", zap.Uint("attempt", n+1), zap.Error(err))
		}),
		retry.RetryIf(func(err error) bool {
			// 4xx other than rate limiting will not fix itself
			var se *statusError
			if errors.As(err, &se) {
				return se.code >= 500 || se.code == http.StatusTooManyRequests
			}
			return true
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch name data from %s: %w", r.url, err)
	}
	return data, nil
}

func decode(body io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode name data: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("decode name data: document is empty")
	}

	data := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		data[k] = utils.ToString(v)
	}
	return data, nil
}
