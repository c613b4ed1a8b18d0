package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := load(nil)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8081", cfg.UpstreamURL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 1.0, cfg.SymbolRate)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Warnings)
}

func TestOverrides(t *testing.T) {
	cfg := load(map[string]string{
		"PORT":             "9000",
		"UPSTREAM_URL":     "http://encoder:5000",
		"UPSTREAM_TIMEOUT": "5s",
		"SYMBOL_RATE":      "44100",
		"LOG_LEVEL":        "debug",
		"UNRELATED":        "x",
	})
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://encoder:5000", cfg.UpstreamURL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 44100.0, cfg.SymbolRate)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.Warnings)
}

func TestInvalidValuesFallBack(t *testing.T) {
	cfg := load(map[string]string{
		"PORT":             "9000",
		"UPSTREAM_TIMEOUT": "soon",
		"SYMBOL_RATE":      "-3",
	})
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 1.0, cfg.SymbolRate)
	require.Len(t, cfg.Warnings, 2)
	assert.Contains(t, cfg.Warnings[0], "UPSTREAM_TIMEOUT")
	assert.Contains(t, cfg.Warnings[1], "SYMBOL_RATE")
}

func TestUnparsableRateFallsBack(t *testing.T) {
	cfg := load(map[string]string{"SYMBOL_RATE": "fast", "UPSTREAM_TIMEOUT": "-2s"})
	assert.Equal(t, 1.0, cfg.SymbolRate)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	require.Len(t, cfg.Warnings, 2)
	assert.Contains(t, cfg.Warnings[0], "SYMBOL_RATE")
	assert.Contains(t, cfg.Warnings[1], "UPSTREAM_TIMEOUT")
}
