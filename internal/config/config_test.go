package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "futsalboard.db", cfg.DBPath)
	assert.False(t, cfg.RequireFormation)
	assert.True(t, cfg.Persist)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("REQUIRE_FORMATION", "true")
	t.Setenv("PERSIST", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.True(t, cfg.RequireFormation)
	assert.False(t, cfg.Persist)
}
