package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/dates"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/testutil"
)

func TestScanExpiry_PoolsAndDeduplicates(t *testing.T) {
	engine := &testutil.FakeEngine{
		Script: map[string]string{
			"digits_word":       "20251031",
			"digits_separators": "2025-10-31",
			"date_labels":       "BÄST FÖRE 2025-12-24",
		},
	}
	s := newPinnedScanner(t, engine)

	got, err := s.ScanExpiry(context.Background(), testutil.LabelFrame("BÄST FÖRE 2025-10-31"), nil)
	require.NoError(t, err)

	require.True(t, got.Found)
	assert.Equal(t, "2025-10-31", got.Best.ISO())
	require.Len(t, got.Dates, 2)
	assert.Equal(t, "2025-10-31", got.Dates[0].ISO())
	assert.Equal(t, "2025-12-24", got.Dates[1].ISO())

	assert.Equal(t, map[string]int{
		"digits_word":       1,
		"digits_separators": 1,
		"date_labels":       1,
	}, got.Strategies)

	// Every strategy in the ladder ran once.
	assert.Len(t, engine.Calls(), len(ocr.DigitStrategies()))
}

func TestScanExpiry_NoDates(t *testing.T) {
	engine := &testutil.FakeEngine{Default: "no digits here"}
	s := newPinnedScanner(t, engine)

	got, err := s.ScanExpiry(context.Background(), testutil.LabelFrame("blank"), nil)
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Empty(t, got.Dates)
	assert.Empty(t, got.Strategies)
}

func TestScanExpiry_ToleratesStrategyFailure(t *testing.T) {
	engine := &testutil.FakeEngine{
		Script: map[string]string{"digits_raw": "311025"},
		FailWith: map[string]error{
			"digits_word":       errors.New("timeout"),
			"digits_separators": errors.New("timeout"),
		},
	}
	s := newPinnedScanner(t, engine)

	got, err := s.ScanExpiry(context.Background(), testutil.LabelFrame("311025"), nil)
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, "2025-10-31", got.Best.ISO())
}

func TestScanExpiry_AllStrategiesFailed(t *testing.T) {
	engine := &testutil.FakeEngine{FailAll: errors.New("engine crashed")}
	s := newPinnedScanner(t, engine)

	_, err := s.ScanExpiry(context.Background(), testutil.LabelFrame("311025"), nil)
	assert.ErrorIs(t, err, ocr.ErrEngineUnavailable)
}

func TestScanExpiry_EmptyFrame(t *testing.T) {
	s := newPinnedScanner(t, &testutil.FakeEngine{})

	_, err := s.ScanExpiry(context.Background(), raster.Frame{}, nil)
	assert.ErrorIs(t, err, ocr.ErrEngineUnavailable)
}

func TestScanExpiry_CancelMidRunReturnsAccumulated(t *testing.T) {
	engine := &testutil.FakeEngine{
		Script: map[string]string{"digits_word": "2025-10-31"},
	}
	s := newPinnedScanner(t, engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel once the first strategies have reported.
	progress := func(percent int) {
		if percent >= 30 {
			cancel()
		}
	}
	got, err := s.ScanExpiry(ctx, testutil.LabelFrame("2025-10-31"), progress)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, got.Found)
	assert.Equal(t, "2025-10-31", got.Best.ISO())
}

func TestDedupeDates(t *testing.T) {
	d := func(iso string) dates.Date {
		switch iso {
		case "2025-10-31":
			return dates.Date{Year: 2025, Month: 10, Day: 31}
		case "2025-12-24":
			return dates.Date{Year: 2025, Month: 12, Day: 24}
		default:
			return dates.Date{Year: 2026, Month: 1, Day: 5}
		}
	}

	got := dedupeDates([]dates.Date{
		d("2025-12-24"), d("2025-10-31"), d("2025-12-24"), d("2026-01-05"), d("2025-10-31"),
	})
	require.Len(t, got, 3)
	assert.Equal(t, "2025-10-31", got[0].ISO())
	assert.Equal(t, "2025-12-24", got[1].ISO())
	assert.Equal(t, "2026-01-05", got[2].ISO())

	assert.Nil(t, dedupeDates(nil))
}
