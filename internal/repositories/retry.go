package repositories

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/models"
)

// RetryConfig configures retry behavior for store operations
type RetryConfig struct {
	MaxAttempts    int           `json:"max_attempts" yaml:"max_attempts"`
	InitialDelay   time.Duration `json:"initial_delay" yaml:"initial_delay"`
	MaxDelay       time.Duration `json:"max_delay" yaml:"max_delay"`
	BackoffFactor  float64       `json:"backoff_factor" yaml:"backoff_factor"`
	JitterEnabled  bool          `json:"jitter_enabled" yaml:"jitter_enabled"`
	AttemptTimeout time.Duration `json:"attempt_timeout" yaml:"attempt_timeout"` // zero disables
}

// DefaultRetryConfig returns a sensible default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// RetryableOperation represents an operation that can be retried
type RetryableOperation func(ctx context.Context) error

// WithRetry executes an operation with retry logic
func WithRetry(ctx context.Context, config *RetryConfig, op RetryableOperation) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := config.run(ctx, op)
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt >= config.MaxAttempts || !IsRetryable(err) {
			break
		}

		delay := config.calculateDelay(attempt)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay.String(),
			"error":   err.Error(),
		}).Debug("Retrying store operation")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// run executes a single attempt, bounded by AttemptTimeout when set
func (c *RetryConfig) run(ctx context.Context, op RetryableOperation) error {
	if c.AttemptTimeout <= 0 {
		return op(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.AttemptTimeout)
	defer cancel()

	err := op(attemptCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		// Only this attempt ran out of time
		return ErrTimeout
	}
	return err
}

// calculateDelay calculates the delay before the next retry attempt
func (c *RetryConfig) calculateDelay(attempt int) time.Duration {
	// Exponential backoff: delay = initial_delay * (backoff_factor ^ (attempt - 1))
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))

	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.JitterEnabled {
		jitter := rand.Float64() * 0.1 * delay // Up to 10% jitter
		delay += jitter
	}

	return time.Duration(delay)
}

// RetryableStore wraps a Store implementation with retry logic
type RetryableStore struct {
	store  Store
	config *RetryConfig
}

// NewRetryableStore creates a new RetryableStore
func NewRetryableStore(store Store, config *RetryConfig) *RetryableStore {
	if config == nil {
		config = DefaultRetryConfig()
	}

	return &RetryableStore{
		store:  store,
		config: config,
	}
}

// GetByKey implements Store.GetByKey with retry logic
func (r *RetryableStore) GetByKey(ctx context.Context, table string, key Key) (models.Record, error) {
	var result models.Record
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		item, err := r.store.GetByKey(ctx, table, key)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	return result, err
}

// Query implements Store.Query with retry logic
func (r *RetryableStore) Query(ctx context.Context, q *Query) ([]models.Record, error) {
	var result []models.Record
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		items, err := r.store.Query(ctx, q)
		if err != nil {
			return err
		}
		result = items
		return nil
	})
	return result, err
}

// Close implements Store.Close
func (r *RetryableStore) Close() error {
	return r.store.Close()
}

// HealthCheck forwards to the wrapped store
func (r *RetryableStore) HealthCheck(ctx context.Context) error {
	return CheckHealth(ctx, r.store)
}
