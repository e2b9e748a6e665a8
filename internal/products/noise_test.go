package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoise(t *testing.T) {
	noisy := []string{
		"",
		"KONTOKORT 245.00",
		"SUMMA 245.00",
		"Tack och välkommen åter!",
		"2025-10-31 14:32",
		"----------------",
		"Org nr 556677-8899",
		"Tel 08-123 45 67",
		"BONUS 12.50",
		"PLASTPÅSE 3.00",
		"TOALETTPAPPER 8-PACK 34.90",
		"PANT RETUR -2.00",
		"Kassör: Anna Kassa 3",
	}
	for _, line := range noisy {
		assert.True(t, IsNoise(line), "expected noise: %q", line)
	}

	clean := []string{
		"MJÖLK ARLA 15.90",
		"BANANER KLASS 1 12.90",
		"KYCKLINGFILÉ 0.85 kg x 89.00/kg",
		"Bananer",
	}
	for _, line := range clean {
		assert.False(t, IsNoise(line), "expected product line: %q", line)
	}
}
