package shelflife

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedEstimator(t *testing.T) *Estimator {
	t.Helper()
	e, err := New(DefaultConfig())
	require.NoError(t, err)
	return e.WithClock(func() time.Time {
		return time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)
	})
}

func TestEstimate_ExactKey(t *testing.T) {
	e := pinnedEstimator(t)

	got := e.Estimate("mjölk")
	assert.Equal(t, "mjölk", got.Category)
	assert.Equal(t, 5, got.MinDays)
	assert.Equal(t, 10, got.MaxDays)
	assert.Equal(t, 7, got.TypicalDays)
	assert.Equal(t, ConfidenceHigh, got.Confidence)
	assert.Equal(t, time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC), got.ExpiryDate)
}

func TestEstimate_Alias(t *testing.T) {
	e := pinnedEstimator(t)

	got := e.Estimate("MILK")
	assert.Equal(t, "mjölk", got.Category)
	assert.Equal(t, 7, got.TypicalDays)
}

func TestEstimate_ChillBonus(t *testing.T) {
	e := pinnedEstimator(t)

	// Eggs keep longer refrigerated, so the 21-35 day range is extended.
	got := e.Estimate("ägg")
	assert.Equal(t, "ägg", got.Category)
	assert.Equal(t, 31, got.MinDays)
	assert.Equal(t, 52, got.MaxDays)
	assert.Equal(t, 42, got.TypicalDays)
	assert.Equal(t, ConfidenceMedium, got.Confidence)
	assert.Contains(t, got.Rationale, "refrigeration")
}

func TestEstimate_Keyword(t *testing.T) {
	e := pinnedEstimator(t)

	got := e.Estimate("mellanmjölk arla")
	assert.Equal(t, "mjölk", got.Category)
	assert.Equal(t, 7, got.TypicalDays)
}

func TestEstimate_Cue(t *testing.T) {
	e := pinnedEstimator(t)

	got := e.Estimate("grillbiff")
	assert.Equal(t, "kött", got.Category)
	assert.Equal(t, 3, got.TypicalDays)
	assert.Contains(t, got.Rationale, "resembles")
}

func TestEstimate_UnknownFallsBackToDefault(t *testing.T) {
	e := pinnedEstimator(t)

	got := e.Estimate("mango")
	assert.Equal(t, "unknown", got.Category)
	assert.Equal(t, 7, got.MinDays)
	assert.Equal(t, 14, got.MaxDays)
	assert.Equal(t, 10, got.TypicalDays)
	assert.Equal(t, ConfidenceLow, got.Confidence)
	assert.Equal(t, time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC), got.ExpiryDate)
}

func TestEstimate_WideRangeIsLowConfidence(t *testing.T) {
	e := pinnedEstimator(t)

	got := e.Estimate("smör")
	assert.Equal(t, "smör", got.Category)
	assert.Equal(t, ConfidenceLow, got.Confidence)
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	e, err := New(Config{})
	require.NoError(t, err)
	got := e.Estimate("zzqqxx")
	assert.Equal(t, 10, got.TypicalDays)
}
