package ocr

import (
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Lines(t *testing.T) {
	r := Result{Text: "  MJÖLK 15.90 \n\n BANANER 12.90\n   \nSUMMA"}
	assert.Equal(t, []string{"MJÖLK 15.90", "BANANER 12.90", "SUMMA"}, r.Lines())

	assert.Empty(t, Result{}.Lines())
	assert.Empty(t, Result{Text: " \n \n"}.Lines())
}

func TestReceiptParams(t *testing.T) {
	p := ReceiptParams("receipt_standard")
	assert.Equal(t, "receipt_standard", p.Name)
	assert.Equal(t, SegUniformBlock, p.SegMode)
	assert.Equal(t, EngineNeural, p.EngineMode)
	assert.Empty(t, p.Whitelist)
	assert.Equal(t, "1", p.Variables["preserve_interword_spaces"])
}

func TestDigitStrategies(t *testing.T) {
	strategies := DigitStrategies()
	require.Len(t, strategies, 6)

	names := make([]string, 0, len(strategies))
	seen := make(map[string]struct{})
	for _, s := range strategies {
		require.NotEmpty(t, s.Name)
		_, dup := seen[s.Name]
		require.False(t, dup, "duplicate strategy name %q", s.Name)
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"digits_word", "digits_separators", "digits_raw",
		"date_labels", "digits_sparse", "legacy_fallback",
	}, names)

	// The ladder must include at least one unrestricted fallback so dates
	// printed with unusual glyphs are not lost to a whitelist.
	assert.Empty(t, strategies[5].Whitelist)
	assert.Equal(t, EngineLegacy, strategies[5].EngineMode)

	// Digit-only strategies must allow nothing but digits.
	assert.Equal(t, "0123456789", strategies[0].Whitelist)
	assert.Equal(t, SegSingleWord, strategies[0].SegMode)
}

func TestSegModeFor(t *testing.T) {
	assert.Equal(t, gosseract.PSM_SINGLE_BLOCK, segModeFor(SegUniformBlock))
	assert.Equal(t, gosseract.PSM_SINGLE_WORD, segModeFor(SegSingleWord))
	assert.Equal(t, gosseract.PSM_SPARSE_TEXT, segModeFor(SegSparseText))
	assert.Equal(t, gosseract.PSM_RAW_LINE, segModeFor(SegRawLine))
}

func TestEngineModeFor(t *testing.T) {
	assert.Equal(t, 1, engineModeFor(EngineNeural))
	assert.Equal(t, 0, engineModeFor(EngineLegacy))
	assert.Equal(t, 2, engineModeFor(EngineHybrid))
}
