package llm

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) HTTPStatusCode() int {
	return e.Code
}

func TestClassifyError_NetworkErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "network timeout",
			err:  &net.OpError{Op: "dial", Err: errors.New("timeout")},
			want: ErrorTypeRetryable,
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			want: ErrorTypeRetryable,
		},
		{
			name: "DNS error",
			err:  &net.DNSError{Err: "no such host"},
			want: ErrorTypeRetryable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyError_ContextErrors(t *testing.T) {
	if got := ClassifyError(context.DeadlineExceeded); got != ErrorTypeRetryable {
		t.Errorf("deadline exceeded: got %v, want Retryable", got)
	}
	// User cancellation should not retry
	if got := ClassifyError(context.Canceled); got != ErrorTypeNonRetryable {
		t.Errorf("canceled: got %v, want NonRetryable", got)
	}
}

func TestClassifyError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want ErrorType
	}{
		{"rate limited", 429, ErrorTypeRetryable},
		{"bad gateway", 502, ErrorTypeRetryable},
		{"service unavailable", 503, ErrorTypeRetryable},
		{"gateway timeout", 504, ErrorTypeRetryable},
		{"internal server error", 500, ErrorTypeRetryable},
		{"bad request", 400, ErrorTypeNonRetryable},
		{"unauthorized", 401, ErrorTypeNonRetryable},
		{"forbidden", 403, ErrorTypeNonRetryable},
		{"not found", 404, ErrorTypeNonRetryable},
		{"teapot", 418, ErrorTypeNonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &HTTPError{Code: tt.code, Message: "http error"}
			got := ClassifyError(err)
			if got != tt.want {
				t.Errorf("ClassifyError(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestClassifyError_ContextLengthErrors(t *testing.T) {
	err := errors.New("request exceeds maximum context length of the model")
	if got := ClassifyError(err); got != ErrorTypeNonRetryable {
		t.Errorf("context length error: got %v, want NonRetryable", got)
	}
}

func TestClassifyError_UnknownErrors(t *testing.T) {
	err := errors.New("something strange happened")
	if got := ClassifyError(err); got != ErrorTypeUnknown {
		t.Errorf("unknown error: got %v, want Unknown", got)
	}
}

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		name    string
		attempt int
		base    float64
		max     float64
		want    time.Duration
	}{
		{"first attempt", 1, 1.0, 8.0, 1 * time.Second},
		{"second attempt", 2, 1.0, 8.0, 2 * time.Second},
		{"third attempt", 3, 1.0, 8.0, 4 * time.Second},
		{"capped at max", 5, 1.0, 8.0, 8 * time.Second},
		{"attempt below one", 0, 1.0, 8.0, 1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBackoff(tt.attempt, tt.base, tt.max)
			if got != tt.want {
				t.Errorf("CalculateBackoff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRetryResult_SuccessFirstAttempt(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.01}

	calls := 0
	result, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithRetryResult_RetriesRetryableError(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.01}

	calls := 0
	result, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", &HTTPError{Code: 503, Message: "service unavailable"}
		}
		return "recovered", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "recovered" {
		t.Errorf("result = %q, want %q", result, "recovered")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetryResult_NonRetryableFailsImmediately(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.01}

	calls := 0
	_, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		return "", &HTTPError{Code: 401, Message: "unauthorized"}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithRetryResult_Disabled(t *testing.T) {
	cfg := RetryConfig{Enabled: false}

	calls := 0
	_, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		return "", &HTTPError{Code: 503, Message: "service unavailable"}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithRetryResult_ExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 2, BackoffBase: 0.001, BackoffMax: 0.01}

	calls := 0
	_, err := WithRetryResult(context.Background(), cfg, func() (string, error) {
		calls++
		return "", &HTTPError{Code: 503, Message: "service unavailable"}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	// Initial attempt plus MaxAttempts retries
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetryResult_ContextCanceled(t *testing.T) {
	cfg := RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 1.0, BackoffMax: 8.0}

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := WithRetryResult(ctx, cfg, func() (string, error) {
		calls++
		cancel()
		return "", &HTTPError{Code: 503, Message: "service unavailable"}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
