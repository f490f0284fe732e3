package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithContextAndFromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_ReturnsNopWhenMissing(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	// Must be safe to use without panicking
	logger.Info("no-op")
}

func TestWithRequestID(t *testing.T) {
	ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))
}

func TestWithClaimID(t *testing.T) {
	ctx, enriched := WithClaimID(context.Background(), zap.NewNop(), "claim-abc")

	assert.Equal(t, "claim-abc", GetClaimID(ctx))
	assert.Same(t, enriched, FromContext(ctx))
}

func TestGetters_ReturnEmptyWhenMissing(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetClaimID(ctx))
}

func TestChainedEnrichment(t *testing.T) {
	ctx := context.Background()
	base := zap.NewNop()

	ctx, _ = WithRequestID(ctx, base, "req-1")
	ctx, _ = WithClaimID(ctx, FromContext(ctx), "claim-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "claim-1", GetClaimID(ctx))
}
