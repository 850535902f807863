package indexer

import (
	"testing"
	"time"

	config "github.com/blobscan/indexer/configs"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackOffFactory_Defaults(t *testing.T) {
	factory := NewBackOffFactory(config.RetryConfig{})

	b, ok := factory().(*backoff.ExponentialBackOff)
	require.True(t, ok)

	assert.Equal(t, DefaultInitialInterval, b.InitialInterval)
	assert.Equal(t, DefaultMultiplier, b.Multiplier)
	assert.Equal(t, DefaultMaxInterval, b.MaxInterval)
	assert.Equal(t, DefaultMaxElapsedTime, b.MaxElapsedTime)
}

func TestNewBackOffFactory_FromConfig(t *testing.T) {
	factory := NewBackOffFactory(config.RetryConfig{
		InitialIntervalMs: 250,
		Multiplier:        3,
		MaxIntervalMs:     5000,
		MaxElapsedTimeMs:  60000,
	})

	b, ok := factory().(*backoff.ExponentialBackOff)
	require.True(t, ok)

	assert.Equal(t, 250*time.Millisecond, b.InitialInterval)
	assert.Equal(t, float64(3), b.Multiplier)
	assert.Equal(t, 5*time.Second, b.MaxInterval)
	assert.Equal(t, time.Minute, b.MaxElapsedTime)
}

func TestNewBackOffFactory_ReturnsFreshPolicies(t *testing.T) {
	factory := NewBackOffFactory(config.RetryConfig{})
	first := factory()
	second := factory()
	assert.NotSame(t, first, second)
}

func TestSlotErrorClassification(t *testing.T) {
	transient := transientErr(assert.AnError)
	permanent := permanentErr(assert.AnError)

	assert.False(t, IsPermanent(transient))
	assert.True(t, IsPermanent(permanent))
	assert.False(t, IsPermanent(assert.AnError))
	assert.False(t, IsPermanent(nil))

	assert.ErrorIs(t, transient, assert.AnError)
	assert.ErrorIs(t, permanent, assert.AnError)
}
