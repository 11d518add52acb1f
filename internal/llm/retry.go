package llm

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"strings"
	"time"
)

// ErrorType represents the classification of an error for retry purposes
type ErrorType int

const (
	// ErrorTypeRetryable indicates the error is transient and can be retried
	ErrorTypeRetryable ErrorType = iota
	// ErrorTypeNonRetryable indicates the error is permanent and should not be retried
	ErrorTypeNonRetryable
	// ErrorTypeUnknown indicates the error type is unknown (conservative: don't retry)
	ErrorTypeUnknown
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeRetryable:
		return "Retryable"
	case ErrorTypeNonRetryable:
		return "NonRetryable"
	default:
		return "Unknown"
	}
}

// HTTPStatusError is an interface for errors that carry an HTTP status code
type HTTPStatusError interface {
	error
	HTTPStatusCode() int
}

// ClassifyError determines if an error is retryable based on its type and content
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeNonRetryable
	}

	// Context cancellation means the user interrupted; never retry
	if errors.Is(err, context.Canceled) {
		return ErrorTypeNonRetryable
	}

	// Deadline exceeded is a timeout; retryable
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeRetryable
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrorTypeRetryable
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorTypeRetryable
	}

	if statusErr, ok := err.(HTTPStatusError); ok {
		return classifyHTTPStatus(statusErr.HTTPStatusCode())
	}

	// Context-window overflows are permanent for a given diff
	errMsg := strings.ToLower(err.Error())
	contextKeywords := []string{
		"context length",
		"context_length",
		"maximum context",
		"token limit",
		"tokens exceeded",
	}
	for _, keyword := range contextKeywords {
		if strings.Contains(errMsg, keyword) {
			return ErrorTypeNonRetryable
		}
	}

	if strings.Contains(errMsg, "timeout") {
		return ErrorTypeRetryable
	}

	// Conservative approach: unknown errors are not retried
	return ErrorTypeUnknown
}

// classifyHTTPStatus classifies HTTP status codes
func classifyHTTPStatus(statusCode int) ErrorType {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return ErrorTypeRetryable
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound:
		return ErrorTypeNonRetryable
	default:
		if statusCode >= 500 {
			return ErrorTypeRetryable
		}
		if statusCode >= 400 {
			return ErrorTypeNonRetryable
		}
		return ErrorTypeUnknown
	}
}

// CalculateBackoff calculates the backoff duration for a retry attempt using
// exponential backoff: min(base * 2^(attempt-1), max)
func CalculateBackoff(attempt int, base, max float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	backoff := base * math.Pow(2, float64(attempt-1))
	if backoff > max {
		backoff = max
	}

	return time.Duration(backoff * float64(time.Second))
}

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	Enabled     bool    // Whether retry is enabled
	MaxAttempts int     // Maximum number of retry attempts
	BackoffBase float64 // Base backoff duration in seconds
	BackoffMax  float64 // Maximum backoff duration in seconds
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Enabled:     true,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// RetryableFuncWithResult is a function that can be retried and returns a result
type RetryableFuncWithResult[T any] func() (T, error)

// WithRetryResult executes a function with retry logic and returns a result
func WithRetryResult[T any](ctx context.Context, cfg RetryConfig, fn RetryableFuncWithResult[T]) (T, error) {
	var zero T

	if !cfg.Enabled || cfg.MaxAttempts <= 0 {
		// Retry disabled, execute once
		return fn()
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts+1; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if ClassifyError(err) != ErrorTypeRetryable {
			return zero, err
		}

		if attempt > cfg.MaxAttempts {
			return zero, err
		}

		backoff := CalculateBackoff(attempt, cfg.BackoffBase, cfg.BackoffMax)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
			// Continue to next attempt
		}
	}

	return zero, lastErr
}
