package repositories

import (
	"context"
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when an item does not exist
	ErrNotFound = errors.New("item not found")

	// ErrInvalidQuery is returned when a query cannot be built
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = errors.New("store unavailable")

	// ErrThrottled is returned when the store rejects a request because of load
	ErrThrottled = errors.New("request throttled")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timeout")
)

// RepositoryError represents a store operation error with additional context
type RepositoryError struct {
	Op        string // Operation that failed ("GetByKey", "Query")
	Table     string
	Key       string
	Err       error
	Retryable bool
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s on table %s failed for key %s: %v", e.Op, e.Table, e.Key, e.Err)
	}
	return fmt.Sprintf("%s on table %s failed: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError
func NewRepositoryError(op, table string, key fmt.Stringer, err error, retryable bool) *RepositoryError {
	var k string
	if key != nil {
		k = key.String()
	}
	return &RepositoryError{
		Op:        op,
		Table:     table,
		Key:       k,
		Err:       err,
		Retryable: retryable,
	}
}

// String renders the key as attribute=value
func (k Key) String() string {
	return fmt.Sprintf("%s=%d", k.Attribute, k.Value)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable checks if an error indicates a transient condition
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.Retryable
	}

	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrThrottled) ||
		errors.Is(err, ErrTimeout)
}
