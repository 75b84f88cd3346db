package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_RoundTripsThroughContext(t *testing.T) {
	current := NewCurrent()
	current.Set("request_id", "abc-123")
	current.Set("attempt", 2)

	ctx := WithCurrent(context.Background(), current)

	assert.Equal(t, "abc-123", RequestID(ctx))
	assert.Same(t, current, GetCurrent(ctx))

	_, ok := current.GetString("attempt")
	assert.False(t, ok)
	assert.True(t, current.Exists("attempt"))
	assert.Len(t, current.All(), 2)
}

func TestRequestID_EmptyWithoutCurrent(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.NotNil(t, GetCurrent(context.Background()))
}
