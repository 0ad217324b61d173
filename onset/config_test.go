package onset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate(48000, 1, 60))
}

func TestValidateRejectsNonPositiveFPS(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate(48000, 1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidateRejectsNonPowerOfTwoFFTSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FFTSize = 2000
	err := cfg.Validate(48000, 1, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidateRejectsNonPositiveSampleRate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate(0, 1, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidateClampsHysteresisBand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HysteresisLow = 0.5
	cfg.HysteresisHigh = 0.5
	require.NoError(t, cfg.Validate(48000, 1, 60))
	assert.GreaterOrEqual(t, cfg.HysteresisHigh, cfg.HysteresisLow+0.01)
}

func TestWithDefaultsReturnsFreshConfigWhenNil(t *testing.T) {
	cfg := withDefaults(nil)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestWithDefaultsPassesThroughNonNil(t *testing.T) {
	custom := &Config{FFTSize: 512}
	assert.Same(t, custom, withDefaults(custom))
}
