package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grammarByName(t *testing.T, chain []Grammar, name string) Grammar {
	t.Helper()
	for _, g := range chain {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("grammar %q not in chain", name)
	return Grammar{}
}

func TestGenericGrammars_Priced(t *testing.T) {
	g := grammarByName(t, GenericGrammars(), "priced")
	cands, ok := g.TryMatch("MJÖLK ARLA 15.90")
	require.True(t, ok)
	require.Len(t, cands, 1)
	assert.Equal(t, "MJÖLK ARLA", cands[0].Name)
	assert.InDelta(t, 15.90, cands[0].Price, 0.001)
	assert.True(t, cands[0].HasPrice)
	assert.InDelta(t, 1.0, cands[0].Quantity, 0.001)
}

func TestGenericGrammars_Weighted(t *testing.T) {
	g := grammarByName(t, GenericGrammars(), "weighted")
	cands, ok := g.TryMatch("KYCKLINGFILÉ 0.85 kg x 89.00/kg")
	require.True(t, ok)
	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "KYCKLINGFILÉ", c.Name)
	assert.InDelta(t, 0.85, c.Quantity, 0.001)
	assert.Equal(t, UnitKilogram, c.Unit)
	assert.InDelta(t, 0.85*89.00, c.Price, 0.001)
	assert.True(t, c.UnitExplicit)
}

func TestGenericGrammars_QuantityPriced(t *testing.T) {
	g := grammarByName(t, GenericGrammars(), "quantity_priced")
	cands, ok := g.TryMatch("YOGHURT 2 st 25.90")
	require.True(t, ok)
	require.Len(t, cands, 1)
	assert.Equal(t, "YOGHURT", cands[0].Name)
	assert.InDelta(t, 2.0, cands[0].Quantity, 0.001)
	assert.InDelta(t, 25.90, cands[0].Price, 0.001)
}

func TestGenericGrammars_CommaList(t *testing.T) {
	g := grammarByName(t, GenericGrammars(), "comma_list")
	cands, ok := g.TryMatch("mjölk, bröd, ägg")
	require.True(t, ok)
	require.Len(t, cands, 3)
	assert.Equal(t, "mjölk", cands[0].Name)
	assert.Equal(t, "bröd", cands[1].Name)
	assert.Equal(t, "ägg", cands[2].Name)

	// Lines containing digits are left to the priced grammars.
	_, ok = g.TryMatch("mjölk, 2 bröd")
	assert.False(t, ok)
}

func TestGenericGrammars_BareName(t *testing.T) {
	g := grammarByName(t, GenericGrammars(), "bare_name")
	cands, ok := g.TryMatch("Bananer")
	require.True(t, ok)
	assert.Equal(t, "Bananer", cands[0].Name)

	_, ok = g.TryMatch("123 456")
	assert.False(t, ok)
}

func TestDetectVendor(t *testing.T) {
	tests := []struct {
		text   string
		vendor string
	}{
		{"ICA KVANTUM MALMBORGS\nMJÖLK 15.90", "ICA"},
		{"Coop Konsum Storgatan", "Coop"},
		{"WILLYS HEMMA", "Willys"},
		{"HEMKÖP CITY", "Hemköp"},
		{"LIDL Sverige KB", "Lidl"},
		{"CITY GROSS", "City Gross"},
	}
	for _, tt := range tests {
		v, ok := DetectVendor(tt.text)
		require.True(t, ok, "text %q", tt.text)
		assert.Equal(t, tt.vendor, v.Name, "text %q", tt.text)
	}

	_, ok := DetectVendor("Okänd butik AB")
	assert.False(t, ok)
}

func TestVendorGrammars_ICADotted(t *testing.T) {
	v, ok := DetectVendor("ICA NÄRA")
	require.True(t, ok)
	g := grammarByName(t, v.Grammars(), "ica_dotted")
	cands, ok := g.TryMatch("MJÖLK....15.90")
	require.True(t, ok)
	assert.Equal(t, "MJÖLK", cands[0].Name)
	assert.InDelta(t, 15.90, cands[0].Price, 0.001)
}

func TestVendorGrammars_LidlTaxClass(t *testing.T) {
	v, ok := DetectVendor("LIDL")
	require.True(t, ok)
	g := grammarByName(t, v.Grammars(), "lidl_tax_class")
	cands, ok := g.TryMatch("SMÖR 32.50 A")
	require.True(t, ok)
	assert.Equal(t, "SMÖR", cands[0].Name)
	assert.InDelta(t, 32.50, cands[0].Price, 0.001)
}

func TestVendorNames(t *testing.T) {
	names := VendorNames()
	assert.Contains(t, names, "ICA")
	assert.Contains(t, names, "Coop")
	assert.Len(t, names, 6)
}
