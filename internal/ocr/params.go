package ocr

// Named parameter sets for the two operating modes. Receipt scanning favors
// precision over a uniform text block; date scanning walks a ladder of
// progressively more restrictive digit-focused configurations.

const (
	digitWhitelist     = "0123456789"
	digitSepWhitelist  = "0123456789-./:_| "
	dateLabelWhitelist = "0123456789-./: ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyzÅÄÖåäö"
)

// ReceiptParams returns the precision-tuned configuration used for receipt
// segments and for the enhancement-variant ensemble.
func ReceiptParams(name string) Params {
	return Params{
		Name:       name,
		SegMode:    SegUniformBlock,
		EngineMode: EngineNeural,
		Variables: map[string]string{
			"preserve_interword_spaces": "1",
		},
	}
}

// DigitStrategies returns the ordered digit-focus strategy ladder. The
// strategies are complementary: every strategy's output is harvested for
// date candidates and the candidates are pooled, so order only affects
// progress reporting, not the result set.
func DigitStrategies() []Params {
	return []Params{
		{
			Name:       "digits_word",
			Whitelist:  digitWhitelist,
			SegMode:    SegSingleWord,
			EngineMode: EngineNeural,
		},
		{
			Name:       "digits_separators",
			Whitelist:  digitSepWhitelist,
			SegMode:    SegRawLine,
			EngineMode: EngineNeural,
		},
		{
			Name:       "digits_raw",
			Whitelist:  digitWhitelist,
			SegMode:    SegRawLine,
			EngineMode: EngineNeural,
		},
		{
			Name:       "date_labels",
			Whitelist:  dateLabelWhitelist,
			SegMode:    SegSparseText,
			EngineMode: EngineNeural,
		},
		{
			Name:       "digits_sparse",
			Whitelist:  digitSepWhitelist,
			SegMode:    SegSparseText,
			EngineMode: EngineNeural,
		},
		{
			Name:       "legacy_fallback",
			SegMode:    SegUniformBlock,
			EngineMode: EngineLegacy,
		},
	}
}
