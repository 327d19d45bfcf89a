package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// failing returns fn that fails with err for the first n calls.
func failing(n int, err error) (func() error, *int) {
	calls := 0
	return func() error {
		calls++
		if calls <= n {
			return err
		}
		return nil
	}, &calls
}

func TestWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		err       error
		wantErr   bool
		wantCalls int
	}{
		{name: "first attempt succeeds", failures: 0, wantCalls: 1},
		{name: "succeeds after connection refused", failures: 2, err: syscall.ECONNREFUSED, wantCalls: 3},
		{name: "database starting up", failures: 1, err: &pgconn.PgError{Code: "57P03"}, wantCalls: 2},
		{name: "attempts exhausted", failures: 10, err: syscall.ECONNRESET, wantErr: true, wantCalls: 3},
		{name: "bad password is final", failures: 10, err: &pgconn.PgError{Code: "28P01"}, wantErr: true, wantCalls: 1},
		{name: "generic error is final", failures: 10, err: errors.New("boom"), wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, calls := failing(tt.failures, tt.err)

			err := WithBackoff(context.Background(), fastConfig(3), fn)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, *calls)
		})
	}
}

func TestWithBackoff_ExhaustedMessage(t *testing.T) {
	fn, _ := failing(10, syscall.ECONNREFUSED)

	err := WithBackoff(context.Background(), fastConfig(2), fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retry attempts (2) exceeded")
}

func TestWithBackoff_CustomRetryable(t *testing.T) {
	sentinel := errors.New("try again")
	cfg := fastConfig(4)
	cfg.Retryable = func(err error) bool { return errors.Is(err, sentinel) }

	fn, calls := failing(3, sentinel)
	require.NoError(t, WithBackoff(context.Background(), cfg, fn))
	assert.Equal(t, 4, *calls)
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(10)
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour

	calls := 0
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		cancel()
		return syscall.ECONNREFUSED
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: false},
		{name: "connection refused", err: syscall.ECONNREFUSED, want: true},
		{name: "wrapped connection reset", err: fmt.Errorf("dial: %w", syscall.ECONNRESET), want: true},
		{name: "timed out", err: syscall.ETIMEDOUT, want: true},
		{name: "network unreachable", err: syscall.ENETUNREACH, want: true},
		{name: "host unreachable", err: syscall.EHOSTUNREACH, want: true},
		{name: "cannot connect now", err: &pgconn.PgError{Code: "57P03"}, want: true},
		{name: "invalid password", err: &pgconn.PgError{Code: "28P01"}, want: false},
		{name: "unknown database", err: &pgconn.PgError{Code: "3D000"}, want: false},
		{name: "generic error", err: errors.New("some error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestDBStartupConfig(t *testing.T) {
	cfg := DBStartupConfig()

	assert.Equal(t, 6, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.Nil(t, cfg.Retryable)
}

func TestAddJitter(t *testing.T) {
	d := 100 * time.Millisecond

	seen := make(map[time.Duration]bool)
	for range 20 {
		got := addJitter(d, 0.2)
		assert.GreaterOrEqual(t, got, d)
		assert.LessOrEqual(t, got, 120*time.Millisecond)
		seen[got] = true
	}
	assert.Greater(t, len(seen), 1, "jitter should vary")

	assert.Equal(t, d, addJitter(d, 0))
	assert.LessOrEqual(t, addJitter(d, 5), 200*time.Millisecond)
}
