package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boxarb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefaultScan(t *testing.T) {
	cfg := DefaultScan()
	assert.Equal(t, "adjacent", cfg.Mode)
	assert.Equal(t, 0.25, cfg.MinProfit)
	assert.Equal(t, 0.25, cfg.MaxSpreadPct)
	assert.Equal(t, 250, cfg.MaxStrikesPerExp)
	assert.Zero(t, cfg.RiskFreeRate)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestLoadScan(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadScan("")
		require.NoError(t, err)
		assert.Equal(t, DefaultScan(), cfg)
	})

	t.Run("yaml overrides defaults, omitted keys keep them", func(t *testing.T) {
		path := writeConfig(t, "mode: allpairs\nmin_profit: 0.10\nrisk_free_rate: 0.045\n")

		cfg, err := LoadScan(path)
		require.NoError(t, err)
		assert.Equal(t, "allpairs", cfg.Mode)
		assert.Equal(t, 0.10, cfg.MinProfit)
		assert.Equal(t, 0.045, cfg.RiskFreeRate)
		assert.Equal(t, 0.25, cfg.MaxSpreadPct)
		assert.Equal(t, 250, cfg.MaxStrikesPerExp)
	})

	t.Run("non-positive workers fall back to NumCPU", func(t *testing.T) {
		path := writeConfig(t, "workers: -3\n")

		cfg, err := LoadScan(path)
		require.NoError(t, err)
		assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadScan(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "mode: [unclosed\n")
		_, err := LoadScan(path)
		assert.Error(t, err)
	})
}
