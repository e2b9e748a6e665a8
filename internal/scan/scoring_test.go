package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/products"
)

func newTestScorer(t *testing.T) *scorer {
	t.Helper()
	vocab, err := products.LoadVocabulary()
	require.NoError(t, err)
	return newScorer(DefaultWeights(), vocab)
}

func scoreText(s *scorer, text string) int {
	return s.score(ocr.Result{Text: text})
}

func TestScore_EmptyTextIsZero(t *testing.T) {
	s := newTestScorer(t)
	assert.Zero(t, scoreText(s, ""))
	assert.Zero(t, scoreText(s, "  \n  "))
}

func TestScore_ReceiptBeatsGarbage(t *testing.T) {
	s := newTestScorer(t)

	receipt := strings.Join([]string{
		"ICA KVANTUM",
		"MJÖLK ARLA 15.90 kr",
		"BANANER KLASS 1 12.90 kr",
		"ÄGG FRIGÅENDE 32.00 kr",
		"SUMMA 60.80",
	}, "\n")
	garbage := "xj kzv 8 qwt 93 llo"

	assert.Greater(t, scoreText(s, receipt), scoreText(s, garbage))
}

func TestScore_GrowsWithProductLines(t *testing.T) {
	s := newTestScorer(t)

	two := "MJÖLK 15.90 kr\nBANANER 12.90 kr"
	three := two + "\nÄGG 32.00 kr"
	assert.Greater(t, scoreText(s, three), scoreText(s, two))
}

func TestScore_VendorSignalCounts(t *testing.T) {
	s := newTestScorer(t)

	// Same shape either way so only the vendor signal differs.
	base := "XYZ\nMJÖLK 15.90 kr"
	withVendor := "ICA\nMJÖLK 15.90 kr"
	assert.Equal(t, DefaultWeights().VendorHit, scoreText(s, withVendor)-scoreText(s, base))
}

func TestScore_DenseLineFalloff(t *testing.T) {
	w := DefaultWeights()
	s := newTestScorer(t)
	s.w = w

	line := "MJÖLK 15.90 kr"
	var sparse, dense []string
	for range w.DenseLineCount {
		sparse = append(sparse, line)
	}
	dense = append(sparse, line)

	gain := scoreText(s, strings.Join(dense, "\n")) - scoreText(s, strings.Join(sparse, "\n"))
	// The 21st line earns the dense per-line weight plus the one-time
	// bonus, not the sparse weight.
	assert.Less(t, gain-w.DenseBonus, w.ProductLineSparse+w.PriceToken+w.KeywordHit+10)
	assert.Greater(t, gain, 0)
}

func TestCountProductLines(t *testing.T) {
	s := newTestScorer(t)

	n := s.countProductLines([]string{
		"MJÖLK ARLA 15.90",
		"SUMMA 100.00",
		"",
		"BANANER 12.90",
	})
	assert.Equal(t, 2, n)
}

func TestCountKeywords(t *testing.T) {
	s := newTestScorer(t)

	assert.Equal(t, 2, s.countKeywords("banan och mjölk"))
	assert.Equal(t, 1, s.countKeywords("OATLY havredryck premium"))
	assert.Zero(t, s.countKeywords("qwerty zxcvb"))
}

func TestCountVendors(t *testing.T) {
	s := newTestScorer(t)

	assert.Equal(t, 1, s.countVendors("ICA KVANTUM STORGATAN"))
	assert.Zero(t, s.countVendors("okänd butik"))
}

func TestScore_ExtraProductLineNeverLowersScore(t *testing.T) {
	s := newTestScorer(t)

	// Seven currency-marked lines over ten product lines sits right at the
	// old lower density bound; one more unpriced line must not cost points.
	var lines []string
	for i := 0; i < 7; i++ {
		lines = append(lines, "MJÖLK 15.90 kr")
	}
	for i := 0; i < 3; i++ {
		lines = append(lines, "BANANER 12.90")
	}

	base := scoreText(s, strings.Join(lines, "\n"))
	more := scoreText(s, strings.Join(lines, "\n")+"\nÄGG 32.00")
	assert.GreaterOrEqual(t, more, base)
}

func TestScore_PriceDensityBonus(t *testing.T) {
	w := DefaultWeights()
	s := newTestScorer(t)

	// One product line, one price token: ratio 1.0 lands in the band.
	inBand := scoreText(s, "MJÖLK 15.90 kr")
	// Same line without a currency marker: price token count drops to
	// zero and the bonus is lost.
	outOfBand := scoreText(s, "MJÖLK 15.90")
	assert.GreaterOrEqual(t, inBand-outOfBand, w.DensityBonus)
}
