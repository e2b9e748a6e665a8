package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BANANER KLASS 1 12.90", "bananer"},
		{"*MJÖLK 3% 15.90 kr", "mjölk"},
		{"Äpple Royal Gala", "äpple royal gala"},
		{"GURKA 2 st 18,00", "gurka"},
		{"  kaffe  bryggmalet  ", "kaffe bryggmalet"},
		{"ost ca 500 g", "ost"},
		{"RÖD-LÖK", "röd-lök"},
		{"1 2 3", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanName(tt.in), "input %q", tt.in)
	}
}

func TestCleanName_Idempotent(t *testing.T) {
	for _, in := range []string{
		"BANANER KLASS 1 12.90",
		"*MJÖLK 3% 15.90 kr",
		"Äpple Royal Gala",
	} {
		once := CleanName(in)
		assert.Equal(t, once, CleanName(once), "input %q", in)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "mjölk arla", NormalizeName(" MJÖLK  Arla "))
	assert.Equal(t, "banan", NormalizeName("Banan"))
	assert.Equal(t, "", NormalizeName("   "))
}
