package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitAndHelpers(t *testing.T) {
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.Background()
	Info(ctx, "info")
	Warn(ctx, "warn")
	Error(ctx, "error")
	Debug(ctx, "debug")
	LogRequest(ctx, "GET", "/auth/redeem", 302, 10*time.Millisecond, "127.0.0.1")
}

func TestWithContext_NilAndAnnotated(t *testing.T) {
	Init("development")

	require.NotNil(t, WithContext(nil))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithCorrelationID(ctx, "corr-1")
	require.NotNil(t, WithContext(ctx))
}
