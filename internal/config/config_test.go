package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginseng_paisho/internal/game"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"addr": ":9000",
		"logLevel": "debug",
		"db": { "driver": "postgres", "dsn": "host=db user=paisho" },
		"game": { "bisonFlight": true, "flightPolicy": "always", "lineOfSightProtection": true }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9000", s.Addr)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "postgres", s.DBDriver)
	assert.Equal(t, "host=db user=paisho", s.DBDSN)
	assert.True(t, s.Game.BisonFlight)
	assert.Equal(t, game.FlightAlways, s.Game.Flight)
	assert.True(t, s.Game.LineOfSightProtection)
	assert.False(t, s.Game.PushIgnoresTurtle)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", s.Addr)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "sqlite", s.DBDriver)
	assert.Equal(t, "ginseng.db", s.DBPath)
	assert.Equal(t, game.Options{Flight: game.FlightGameToggle}, s.Game)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("GINSENG_DB_DRIVER", "postgres")
	t.Setenv("GINSENG_GAME_BISONFLIGHT", "true")

	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "postgres", s.DBDriver)
	assert.True(t, s.Game.BisonFlight)
}

func TestLoad_BadFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"addr":`), 0644))
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_UnknownFlightPolicy(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"game":{"flightPolicy":"sometimes"}}`), 0644))
	_, err := Load(dir)
	require.ErrorContains(t, err, "sometimes")
}
