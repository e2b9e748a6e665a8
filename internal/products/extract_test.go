package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(newTestValidator(t))
}

func TestExtractProducts_Receipt(t *testing.T) {
	e := newTestExtractor(t)

	lines := []string{
		"ICA KVANTUM",
		"MJÖLK ARLA 15.90",
		"BANANER KLASS 1 12.90",
		"KONTOKORT 245.00",
		"SUMMA 245.00",
		"MJÖLK ARLA 15.90",
	}
	got := e.ExtractProducts(lines)
	require.Len(t, got, 2)

	byName := make(map[string]Validated, len(got))
	for _, p := range got {
		byName[p.Name] = p
	}

	milk, ok := byName["mjölk arla"]
	require.True(t, ok)
	assert.InDelta(t, 15.90, milk.Price, 0.001)
	assert.True(t, milk.HasPrice)
	assert.Equal(t, UnitLiter, milk.Unit)
	assert.Equal(t, TierWord, milk.Tier)

	bananas, ok := byName["bananer"]
	require.True(t, ok)
	assert.InDelta(t, 12.90, bananas.Price, 0.001)
	assert.Equal(t, UnitPiece, bananas.Unit)
	assert.Equal(t, TierExact, bananas.Tier)
}

func TestExtractProducts_WeightedLine(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractProducts([]string{"KYCKLINGFILÉ 0.85 kg x 89.00/kg"})
	require.Len(t, got, 1)
	assert.Equal(t, "kycklingfilé", got[0].Name)
	assert.InDelta(t, 0.85, got[0].Quantity, 0.001)
	assert.Equal(t, UnitKilogram, got[0].Unit)
	assert.InDelta(t, 0.85*89.00, got[0].Price, 0.001)
}

func TestExtractProducts_ShoppingList(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractProducts([]string{"mjölk, bröd, ägg"})
	require.Len(t, got, 3)
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	assert.ElementsMatch(t, []string{"mjölk", "bröd", "ägg"}, names)
	for _, p := range got {
		assert.False(t, p.HasPrice)
		assert.InDelta(t, 1.0, p.Quantity, 0.001)
	}
}

func TestExtractProducts_EmptyAndNoise(t *testing.T) {
	e := newTestExtractor(t)

	assert.Empty(t, e.ExtractProducts(nil))
	assert.Empty(t, e.ExtractProducts([]string{"SUMMA 100.00", "KONTOKORT", "------"}))
}

func TestInferUnit(t *testing.T) {
	assert.Equal(t, UnitLiter, InferUnit("mjölk arla"))
	assert.Equal(t, UnitKilogram, InferUnit("kycklingfilé"))
	assert.Equal(t, UnitPiece, InferUnit("pasta"))
}

func TestValidated_Key(t *testing.T) {
	a := Validated{Name: "mjölk", Price: 15.90, Unit: UnitLiter}
	b := Validated{Name: "mjölk", Price: 15.90, Unit: UnitLiter, RawLine: "other"}
	c := Validated{Name: "mjölk", Price: 12.90, Unit: UnitLiter}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
