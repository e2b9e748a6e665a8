package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/dates"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/testutil"
)

// newPinnedScanner builds a scanner over the fake engine with the date
// clock pinned so plausibility checks are stable.
func newPinnedScanner(t *testing.T, engine *testutil.FakeEngine) *Scanner {
	t.Helper()
	s, err := NewBuilder().WithEngine(engine).Build()
	require.NoError(t, err)
	s.Dates().WithClock(func() time.Time {
		return time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	})
	return s
}

func TestBuilder_RequiresEngine(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.Error(t, err)
}

func TestBuilder_RejectsBadSegmentGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SegmentHeight = 100
	cfg.SegmentOverlap = 200
	_, err := NewBuilder().WithEngine(&testutil.FakeEngine{}).WithConfig(cfg).Build()
	assert.Error(t, err)
}

func TestBuilder_SegmentGeometryOverride(t *testing.T) {
	s, err := NewBuilder().
		WithEngine(&testutil.FakeEngine{}).
		WithSegmentGeometry(600, 100, 5).
		Build()
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, 600, cfg.SegmentHeight)
	assert.Equal(t, 600, cfg.TallThreshold)
	assert.Equal(t, 100, cfg.SegmentOverlap)
	assert.Equal(t, 5, cfg.MaxSegments)
}

func TestBuilder_DateWindowOverride(t *testing.T) {
	s, err := NewBuilder().
		WithEngine(&testutil.FakeEngine{}).
		WithDateWindow(dates.Config{MaxFutureYears: 5, CenturyPivot: 2000}).
		Build()
	require.NoError(t, err)

	lo, hi := s.Dates().Window()
	assert.Equal(t, 5, hi.Year()-lo.Year())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1800, cfg.TallThreshold)
	assert.Equal(t, 1800, cfg.SegmentHeight)
	assert.Equal(t, 400, cfg.SegmentOverlap)
	assert.Equal(t, 20, cfg.MaxSegments)
	assert.Len(t, cfg.Variants, 3)
}

func TestScanner_Close(t *testing.T) {
	engine := &testutil.FakeEngine{}
	s, err := NewBuilder().WithEngine(engine).Build()
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.True(t, engine.Closed())
	// Closing again is a no-op.
	require.NoError(t, s.Close())
}
