package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIsolatedLoader returns a loader over a private viper instance so tests
// do not leak state through the global one.
func newIsolatedLoader() *Loader {
	return &Loader{v: viper.New()}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"swe", "eng"}, cfg.Engine.Languages)
	assert.Equal(t, 1800, cfg.Scan.SegmentHeight)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }},
		{"no languages", func(c *Config) { c.Engine.Languages = nil }},
		{"zero tile size", func(c *Config) { c.Enhance.TileSize = 0 }},
		{"clip limit below one", func(c *Config) { c.Enhance.ClipLimit = 0.5 }},
		{"zero segment height", func(c *Config) { c.Scan.SegmentHeight = 0 }},
		{"overlap exceeds height", func(c *Config) { c.Scan.SegmentOverlap = c.Scan.SegmentHeight }},
		{"zero max segments", func(c *Config) { c.Scan.MaxSegments = 0 }},
		{"zero future years", func(c *Config) { c.Dates.MaxFutureYears = 0 }},
		{"similarity above one", func(c *Config) { c.Match.FuzzySimilarity = 1.5 }},
		{"chill bonus below one", func(c *Config) { c.ShelfLife.ChillBonus = 0.5 }},
		{"inverted shelf-life range", func(c *Config) { c.ShelfLife.DefaultMinDays = 30; c.ShelfLife.DefaultMaxDays = 10 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"zero upload cap", func(c *Config) { c.Server.MaxUploadMB = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestToScanConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.SegmentHeight = 1200
	cfg.Scan.Weights.VendorHit = 99
	cfg.Dates.MaxFutureYears = 5

	sc := cfg.ToScanConfig()
	assert.Equal(t, 1200, sc.SegmentHeight)
	assert.Equal(t, 99, sc.Weights.VendorHit)
	assert.Equal(t, 5, sc.DateCfg.MaxFutureYears)
	assert.Len(t, sc.Variants, 3)
}

func TestToShelfLifeConfig(t *testing.T) {
	cfg := DefaultConfig()
	sl := cfg.ToShelfLifeConfig()
	assert.InDelta(t, 1.5, sl.ChillBonus, 0.001)
	assert.Equal(t, 7, sl.DefaultMinDays)
	assert.Equal(t, 14, sl.DefaultMaxDays)
	assert.Equal(t, 10, sl.DefaultTypicalDays)
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svinnscan.yaml")
	content := `
log_level: debug
scan:
  segment_height: 1200
  segment_overlap: 300
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := newIsolatedLoader().LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1200, cfg.Scan.SegmentHeight)
	assert.Equal(t, 300, cfg.Scan.SegmentOverlap)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, []string{"swe", "eng"}, cfg.Engine.Languages)
	assert.Equal(t, 20, cfg.Scan.MaxSegments)
}

func TestLoadWithFile_Missing(t *testing.T) {
	_, err := newIsolatedLoader().LoadWithFile("/no/such/svinnscan.yaml")
	assert.Error(t, err)
}

func TestLoadWithFile_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svinnscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: trace\n"), 0o600))

	_, err := newIsolatedLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestLoadWithFile_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svinnscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{不 valid: ["), 0o600))

	_, err := newIsolatedLoader().LoadWithFile(path)
	assert.Error(t, err)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generated.yaml")
	require.NoError(t, GenerateDefaultConfigFile(path))

	cfg, err := newIsolatedLoader().LoadWithFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
	assert.Contains(t, paths, "/etc/svinnscan")
}
