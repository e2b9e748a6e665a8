package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	vocab, err := LoadVocabulary()
	require.NoError(t, err)
	return NewValidator(vocab, DefaultMatchConfig())
}

func TestValidator_Tiers(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name string
		tier MatchTier
	}{
		{"banan", TierExact},
		{"mjölk", TierExact},
		{"mjölk arla", TierWord},
		{"bananerna", TierSubstring},
		{"bansner", TierFuzzy},
	}
	for _, tt := range tests {
		tier, ok := v.Match(tt.name)
		require.True(t, ok, "name %q", tt.name)
		assert.Equal(t, tt.tier, tier, "name %q", tt.name)
	}
}

func TestValidator_RejectsNonFood(t *testing.T) {
	v := newTestValidator(t)

	for _, name := range []string{"", "x", "zzqqxx", "wxyzwxyz"} {
		_, ok := v.Match(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("banan", "banan"), 0.001)
	assert.InDelta(t, 1.0-1.0/7.0, similarity("bananer", "bansner"), 0.001)
	assert.InDelta(t, 0.0, similarity("", ""), 0.001)
}

func TestPhoneticKey(t *testing.T) {
	// Vowel swaps and c/k confusion map to one key.
	assert.Equal(t, phoneticKey("kyckling"), phoneticKey("cyckling"))
	assert.Equal(t, phoneticKey("banan"), phoneticKey("benan"))
	assert.NotEqual(t, phoneticKey("banan"), phoneticKey("tomat"))
}

func TestLoadVocabulary(t *testing.T) {
	vocab, err := LoadVocabulary()
	require.NoError(t, err)
	assert.Positive(t, vocab.Len())
	assert.True(t, vocab.Contains("banan"))
	assert.True(t, vocab.Contains("mjölk"))
	assert.False(t, vocab.Contains("kontokort"))
	assert.Equal(t, vocab.Len(), len(vocab.Terms()))
}
