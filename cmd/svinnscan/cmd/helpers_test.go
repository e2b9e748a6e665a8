package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/config"
)

func TestResolveFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfgPtr := &cfg

	tests := []struct {
		name     string
		flag     string
		cfgValue string
		allowCSV bool
		want     string
		wantErr  bool
	}{
		{name: "flag wins over config", flag: "json", cfgValue: "text", want: "json"},
		{name: "config used when flag empty", cfgValue: "text", want: "text"},
		{name: "csv allowed", flag: "csv", allowCSV: true, want: "csv"},
		{name: "csv rejected when not allowed", flag: "csv", wantErr: true},
		{name: "unknown format", flag: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfgValue != "" {
				cfgPtr.Output.Format = tt.cfgValue
			}
			got, err := resolveFormat(tt.flag, cfgPtr, tt.allowCSV)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteOutput_File(t *testing.T) {
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, writeOutput(&cfg, path, "hello\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestWriteOutput_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Output.File = filepath.Join(dir, "from-config.txt")
	flagPath := filepath.Join(dir, "from-flag.txt")

	require.NoError(t, writeOutput(&cfg, flagPath, "content"))

	assert.FileExists(t, flagPath)
	assert.NoFileExists(t, cfg.Output.File)
}
