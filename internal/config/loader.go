package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "svinnscan"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "SVINNSCAN"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. It uses the global viper
// instance so cobra flag bindings resolve against the same state.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from the standard search paths, environment
// variables and defaults, then validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()

	cfg, err := l.read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithFile loads configuration from a specific file path. An empty path
// falls back to the standard search.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}
	l.v.SetConfigFile(configFile)

	cfg, err := l.read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) read() (*Config, error) {
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Get returns a value from the configuration.
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

// Set sets a value in the configuration.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/svinnscan")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "svinnscan"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "svinnscan"))
	}
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("engine.languages", defaults.Engine.Languages)

	l.v.SetDefault("enhance.tile_size", defaults.Enhance.TileSize)
	l.v.SetDefault("enhance.clip_limit", defaults.Enhance.ClipLimit)
	l.v.SetDefault("enhance.unsharp_amount", defaults.Enhance.UnsharpAmount)
	l.v.SetDefault("enhance.noise_threshold", defaults.Enhance.NoiseThreshold)
	l.v.SetDefault("enhance.target_luma", defaults.Enhance.TargetLuma)
	l.v.SetDefault("enhance.target_contrast", defaults.Enhance.TargetContrast)

	l.v.SetDefault("scan.tall_threshold", defaults.Scan.TallThreshold)
	l.v.SetDefault("scan.segment_height", defaults.Scan.SegmentHeight)
	l.v.SetDefault("scan.segment_overlap", defaults.Scan.SegmentOverlap)
	l.v.SetDefault("scan.max_segments", defaults.Scan.MaxSegments)

	l.v.SetDefault("scan.weights.product_line_sparse", defaults.Scan.Weights.ProductLineSparse)
	l.v.SetDefault("scan.weights.product_line_dense", defaults.Scan.Weights.ProductLineDense)
	l.v.SetDefault("scan.weights.dense_line_count", defaults.Scan.Weights.DenseLineCount)
	l.v.SetDefault("scan.weights.dense_bonus", defaults.Scan.Weights.DenseBonus)
	l.v.SetDefault("scan.weights.text_length_cap", defaults.Scan.Weights.TextLengthCap)
	l.v.SetDefault("scan.weights.text_length_divisor", defaults.Scan.Weights.TextLengthDivisor)
	l.v.SetDefault("scan.weights.keyword_hit", defaults.Scan.Weights.KeywordHit)
	l.v.SetDefault("scan.weights.price_token", defaults.Scan.Weights.PriceToken)
	l.v.SetDefault("scan.weights.vendor_hit", defaults.Scan.Weights.VendorHit)
	l.v.SetDefault("scan.weights.density_bonus", defaults.Scan.Weights.DensityBonus)
	l.v.SetDefault("scan.weights.density_high", defaults.Scan.Weights.DensityHigh)

	l.v.SetDefault("dates.max_future_years", defaults.Dates.MaxFutureYears)
	l.v.SetDefault("dates.century_pivot", defaults.Dates.CenturyPivot)

	l.v.SetDefault("match.fuzzy_similarity", defaults.Match.FuzzySimilarity)
	l.v.SetDefault("match.phonetic_similarity", defaults.Match.PhoneticSimilarity)
	l.v.SetDefault("match.min_substring_len", defaults.Match.MinSubstringLen)

	l.v.SetDefault("shelf_life.chill_bonus", defaults.ShelfLife.ChillBonus)
	l.v.SetDefault("shelf_life.default_min_days", defaults.ShelfLife.DefaultMinDays)
	l.v.SetDefault("shelf_life.default_max_days", defaults.ShelfLife.DefaultMaxDays)
	l.v.SetDefault("shelf_life.default_typical_days", defaults.ShelfLife.DefaultTypicalDays)

	l.v.SetDefault("output.format", defaults.Output.Format)

	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.cors_origin", defaults.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
}

// GetResolvedConfig returns the current resolved configuration for debugging.
func (l *Loader) GetResolvedConfig() map[string]interface{} {
	return l.v.AllSettings()
}

// WriteConfigToFile writes the current configuration to a file.
func (l *Loader) WriteConfigToFile(filename string) error {
	return l.v.WriteConfigAs(filename)
}

// GenerateDefaultConfigFile generates a default configuration file.
func GenerateDefaultConfigFile(filename string) error {
	loader := NewLoader()
	loader.setDefaults()

	if filename == "" {
		filename = "svinnscan.yaml"
	}
	return loader.WriteConfigToFile(filename)
}

// GetConfigSearchPaths returns the paths where configuration files are searched.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home, filepath.Join(home, ".config", "svinnscan"))
	}
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "svinnscan"))
	}

	paths = append(paths, "/etc/svinnscan")
	return paths
}
