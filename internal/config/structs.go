// Package config loads and validates application configuration from files,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/dates"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/enhance"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/products"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/shelflife"
)

// Config represents the complete configuration for the svinnscan application.
// It covers all commands (receipt, expiry, estimate, serve) and supports
// loading from configuration files, environment variables, and flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine" json:"engine"`
	Enhance   EnhanceConfig   `mapstructure:"enhance" yaml:"enhance" json:"enhance"`
	Scan      ScanConfig      `mapstructure:"scan" yaml:"scan" json:"scan"`
	Dates     DatesConfig     `mapstructure:"dates" yaml:"dates" json:"dates"`
	Match     MatchConfig     `mapstructure:"match" yaml:"match" json:"match"`
	ShelfLife ShelfLifeConfig `mapstructure:"shelf_life" yaml:"shelf_life" json:"shelf_life"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server" json:"server"`
}

// EngineConfig contains OCR engine settings.
type EngineConfig struct {
	// Languages passed to the engine, in preference order.
	Languages []string `mapstructure:"languages" yaml:"languages" json:"languages"`
}

// EnhanceConfig contains image enhancement settings.
type EnhanceConfig struct {
	TileSize       int     `mapstructure:"tile_size" yaml:"tile_size" json:"tile_size"`
	ClipLimit      float64 `mapstructure:"clip_limit" yaml:"clip_limit" json:"clip_limit"`
	UnsharpAmount  float64 `mapstructure:"unsharp_amount" yaml:"unsharp_amount" json:"unsharp_amount"`
	NoiseThreshold int     `mapstructure:"noise_threshold" yaml:"noise_threshold" json:"noise_threshold"`
	TargetLuma     float64 `mapstructure:"target_luma" yaml:"target_luma" json:"target_luma"`
	TargetContrast float64 `mapstructure:"target_contrast" yaml:"target_contrast" json:"target_contrast"`
}

// ScanConfig contains orchestrator settings: document segmentation geometry
// and the variant scoring weights.
type ScanConfig struct {
	TallThreshold  int `mapstructure:"tall_threshold" yaml:"tall_threshold" json:"tall_threshold"`
	SegmentHeight  int `mapstructure:"segment_height" yaml:"segment_height" json:"segment_height"`
	SegmentOverlap int `mapstructure:"segment_overlap" yaml:"segment_overlap" json:"segment_overlap"`
	MaxSegments    int `mapstructure:"max_segments" yaml:"max_segments" json:"max_segments"`

	Weights WeightsConfig `mapstructure:"weights" yaml:"weights" json:"weights"`
}

// WeightsConfig contains the document-mode scoring weights.
type WeightsConfig struct {
	ProductLineSparse int     `mapstructure:"product_line_sparse" yaml:"product_line_sparse" json:"product_line_sparse"`
	ProductLineDense  int     `mapstructure:"product_line_dense" yaml:"product_line_dense" json:"product_line_dense"`
	DenseLineCount    int     `mapstructure:"dense_line_count" yaml:"dense_line_count" json:"dense_line_count"`
	DenseBonus        int     `mapstructure:"dense_bonus" yaml:"dense_bonus" json:"dense_bonus"`
	TextLengthCap     int     `mapstructure:"text_length_cap" yaml:"text_length_cap" json:"text_length_cap"`
	TextLengthDivisor int     `mapstructure:"text_length_divisor" yaml:"text_length_divisor" json:"text_length_divisor"`
	KeywordHit        int     `mapstructure:"keyword_hit" yaml:"keyword_hit" json:"keyword_hit"`
	PriceToken        int     `mapstructure:"price_token" yaml:"price_token" json:"price_token"`
	VendorHit         int     `mapstructure:"vendor_hit" yaml:"vendor_hit" json:"vendor_hit"`
	DensityBonus      int     `mapstructure:"density_bonus" yaml:"density_bonus" json:"density_bonus"`
	DensityHigh       float64 `mapstructure:"density_high" yaml:"density_high" json:"density_high"`
}

// DatesConfig contains date recovery settings.
type DatesConfig struct {
	MaxFutureYears int `mapstructure:"max_future_years" yaml:"max_future_years" json:"max_future_years"`
	CenturyPivot   int `mapstructure:"century_pivot" yaml:"century_pivot" json:"century_pivot"`
}

// MatchConfig contains food-vocabulary matching thresholds.
type MatchConfig struct {
	FuzzySimilarity    float64 `mapstructure:"fuzzy_similarity" yaml:"fuzzy_similarity" json:"fuzzy_similarity"`
	PhoneticSimilarity float64 `mapstructure:"phonetic_similarity" yaml:"phonetic_similarity" json:"phonetic_similarity"`
	MinSubstringLen    int     `mapstructure:"min_substring_len" yaml:"min_substring_len" json:"min_substring_len"`
}

// ShelfLifeConfig contains shelf-life estimation settings.
type ShelfLifeConfig struct {
	ChillBonus         float64 `mapstructure:"chill_bonus" yaml:"chill_bonus" json:"chill_bonus"`
	DefaultMinDays     int     `mapstructure:"default_min_days" yaml:"default_min_days" json:"default_min_days"`
	DefaultMaxDays     int     `mapstructure:"default_max_days" yaml:"default_max_days" json:"default_max_days"`
	DefaultTypicalDays int     `mapstructure:"default_typical_days" yaml:"default_typical_days" json:"default_typical_days"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Engine: EngineConfig{
			Languages: []string{"swe", "eng"},
		},
		Enhance:   defaultEnhanceConfig(),
		Scan:      defaultScanConfig(),
		Dates:     defaultDatesConfig(),
		Match:     defaultMatchConfig(),
		ShelfLife: defaultShelfLifeConfig(),
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      60,
			ShutdownTimeout: 10,
		},
	}
}

func defaultEnhanceConfig() EnhanceConfig {
	cfg := enhance.DefaultConfig()
	return EnhanceConfig{
		TileSize:       cfg.TileSize,
		ClipLimit:      cfg.ClipLimit,
		UnsharpAmount:  cfg.UnsharpAmount,
		NoiseThreshold: cfg.NoiseThreshold,
		TargetLuma:     cfg.TargetLuma,
		TargetContrast: cfg.TargetContrast,
	}
}

func defaultScanConfig() ScanConfig {
	cfg := scan.DefaultConfig()
	w := scan.DefaultWeights()
	return ScanConfig{
		TallThreshold:  cfg.TallThreshold,
		SegmentHeight:  cfg.SegmentHeight,
		SegmentOverlap: cfg.SegmentOverlap,
		MaxSegments:    cfg.MaxSegments,
		Weights: WeightsConfig{
			ProductLineSparse: w.ProductLineSparse,
			ProductLineDense:  w.ProductLineDense,
			DenseLineCount:    w.DenseLineCount,
			DenseBonus:        w.DenseBonus,
			TextLengthCap:     w.TextLengthCap,
			TextLengthDivisor: w.TextLengthDivisor,
			KeywordHit:        w.KeywordHit,
			PriceToken:        w.PriceToken,
			VendorHit:         w.VendorHit,
			DensityBonus:      w.DensityBonus,
			DensityHigh:       w.DensityHigh,
		},
	}
}

func defaultDatesConfig() DatesConfig {
	cfg := dates.DefaultConfig()
	return DatesConfig{
		MaxFutureYears: cfg.MaxFutureYears,
		CenturyPivot:   cfg.CenturyPivot,
	}
}

func defaultMatchConfig() MatchConfig {
	cfg := products.DefaultMatchConfig()
	return MatchConfig{
		FuzzySimilarity:    cfg.FuzzySimilarity,
		PhoneticSimilarity: cfg.PhoneticSimilarity,
		MinSubstringLen:    cfg.MinSubstringLen,
	}
}

func defaultShelfLifeConfig() ShelfLifeConfig {
	cfg := shelflife.DefaultConfig()
	return ShelfLifeConfig{
		ChillBonus:         cfg.ChillBonus,
		DefaultMinDays:     cfg.DefaultMinDays,
		DefaultMaxDays:     cfg.DefaultMaxDays,
		DefaultTypicalDays: cfg.DefaultTypicalDays,
	}
}

// ToScanConfig materializes the orchestrator configuration.
func (c *Config) ToScanConfig() scan.Config {
	cfg := scan.DefaultConfig()
	cfg.TallThreshold = c.Scan.TallThreshold
	cfg.SegmentHeight = c.Scan.SegmentHeight
	cfg.SegmentOverlap = c.Scan.SegmentOverlap
	cfg.MaxSegments = c.Scan.MaxSegments
	cfg.Weights = scan.Weights{
		ProductLineSparse: c.Scan.Weights.ProductLineSparse,
		ProductLineDense:  c.Scan.Weights.ProductLineDense,
		DenseLineCount:    c.Scan.Weights.DenseLineCount,
		DenseBonus:        c.Scan.Weights.DenseBonus,
		TextLengthCap:     c.Scan.Weights.TextLengthCap,
		TextLengthDivisor: c.Scan.Weights.TextLengthDivisor,
		KeywordHit:        c.Scan.Weights.KeywordHit,
		PriceToken:        c.Scan.Weights.PriceToken,
		VendorHit:         c.Scan.Weights.VendorHit,
		DensityBonus:      c.Scan.Weights.DensityBonus,
		DensityHigh:       c.Scan.Weights.DensityHigh,
	}
	cfg.Enhance = enhance.Config{
		TileSize:       c.Enhance.TileSize,
		ClipLimit:      c.Enhance.ClipLimit,
		UnsharpAmount:  c.Enhance.UnsharpAmount,
		NoiseThreshold: c.Enhance.NoiseThreshold,
		SoftBrightness: enhance.DefaultConfig().SoftBrightness,
		TargetLuma:     c.Enhance.TargetLuma,
		TargetContrast: c.Enhance.TargetContrast,
	}
	cfg.Match = products.MatchConfig{
		FuzzySimilarity:    c.Match.FuzzySimilarity,
		PhoneticSimilarity: c.Match.PhoneticSimilarity,
		MinSubstringLen:    c.Match.MinSubstringLen,
		MinNameLen:         products.DefaultMatchConfig().MinNameLen,
	}
	cfg.DateCfg = dates.Config{
		MaxFutureYears: c.Dates.MaxFutureYears,
		CenturyPivot:   c.Dates.CenturyPivot,
	}
	return cfg
}

// ToShelfLifeConfig materializes the estimator configuration.
func (c *Config) ToShelfLifeConfig() shelflife.Config {
	return shelflife.Config{
		ChillBonus:         c.ShelfLife.ChillBonus,
		DefaultMinDays:     c.ShelfLife.DefaultMinDays,
		DefaultMaxDays:     c.ShelfLife.DefaultMaxDays,
		DefaultTypicalDays: c.ShelfLife.DefaultTypicalDays,
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "csv"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	if len(c.Engine.Languages) == 0 {
		return fmt.Errorf("engine.languages must not be empty")
	}

	if c.Enhance.TileSize <= 0 {
		return fmt.Errorf("enhance.tile_size must be positive, got %d", c.Enhance.TileSize)
	}
	if c.Enhance.ClipLimit < 1.0 {
		return fmt.Errorf("enhance.clip_limit must be at least 1.0, got %g", c.Enhance.ClipLimit)
	}

	if c.Scan.SegmentHeight <= 0 {
		return fmt.Errorf("scan.segment_height must be positive, got %d", c.Scan.SegmentHeight)
	}
	if c.Scan.SegmentOverlap < 0 || c.Scan.SegmentOverlap >= c.Scan.SegmentHeight {
		return fmt.Errorf("scan.segment_overlap must be in [0, %d), got %d",
			c.Scan.SegmentHeight, c.Scan.SegmentOverlap)
	}
	if c.Scan.MaxSegments <= 0 {
		return fmt.Errorf("scan.max_segments must be positive, got %d", c.Scan.MaxSegments)
	}

	if c.Dates.MaxFutureYears <= 0 {
		return fmt.Errorf("dates.max_future_years must be positive, got %d", c.Dates.MaxFutureYears)
	}

	if c.Match.FuzzySimilarity < 0 || c.Match.FuzzySimilarity > 1 {
		return fmt.Errorf("match.fuzzy_similarity must be in [0,1], got %g", c.Match.FuzzySimilarity)
	}
	if c.Match.PhoneticSimilarity < 0 || c.Match.PhoneticSimilarity > 1 {
		return fmt.Errorf("match.phonetic_similarity must be in [0,1], got %g", c.Match.PhoneticSimilarity)
	}

	if c.ShelfLife.ChillBonus < 1.0 {
		return fmt.Errorf("shelf_life.chill_bonus must be at least 1.0, got %g", c.ShelfLife.ChillBonus)
	}
	if c.ShelfLife.DefaultMinDays > c.ShelfLife.DefaultMaxDays {
		return fmt.Errorf("shelf_life default range inverted: min %d > max %d",
			c.ShelfLife.DefaultMinDays, c.ShelfLife.DefaultMaxDays)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
