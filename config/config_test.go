package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ofc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, 5000, cfg.StartingStake)
	assert.Equal(t, 0, cfg.HumanSeat)
	assert.False(t, cfg.CapNetToOpponentStake)
	assert.True(t, cfg.AutoNextHand)
	assert.Equal(t, 300*time.Millisecond, cfg.Delays.Deal)
	assert.Equal(t, 750*time.Millisecond, cfg.Delays.AIThinking)
	assert.Equal(t, time.Second, cfg.Delays.Showdown)
	assert.Equal(t, 5*time.Second, cfg.Delays.NextHand)
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	path := writeConfig(t, `
players: 2
starting_stake: 100
cap_net_to_opponent_stake: true
delays:
  ai_thinking: 2s
  next_hand: 0s
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Players)
	assert.Equal(t, 100, cfg.StartingStake)
	assert.True(t, cfg.Rules().CapNetToOpponentStake)
	assert.Equal(t, 2*time.Second, cfg.Delays.AIThinking)
	assert.Zero(t, cfg.Delays.NextHand)
	assert.Equal(t, 300*time.Millisecond, cfg.Delays.Deal, "unset keys keep their default")
	assert.Equal(t, "0.0.0.0:7777", cfg.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "players: 2\n")
	t.Setenv("OFC_PLAYERS", "3")
	t.Setenv("OFC_HUMAN_SEAT", "-1")
	t.Setenv("OFC_DELAY_DEAL", "1ms")
	t.Setenv("OFC_DEBUG", "true")
	t.Setenv("OFC_SEED", "99")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, -1, cfg.Rules().HumanSeat)
	assert.Equal(t, time.Millisecond, cfg.LoopDelays().Deal)
	assert.True(t, cfg.Debug)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "players: [\n"))
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("OFC_STARTING_STAKE", "lots")
		_, err := Load("")
		assert.ErrorContains(t, err, "OFC_STARTING_STAKE")
	})

	t.Run("invalid result", func(t *testing.T) {
		_, err := Load(writeConfig(t, "players: 4\n"))
		assert.ErrorIs(t, err, ErrInvalidPlayers)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"one player", func(c *Config) { c.Players = 1 }, ErrInvalidPlayers},
		{"four players", func(c *Config) { c.Players = 4 }, ErrInvalidPlayers},
		{"human seat out of range", func(c *Config) { c.HumanSeat = 3 }, ErrInvalidHumanSeat},
		{"negative stake", func(c *Config) { c.StartingStake = -5 }, ErrNegativeStake},
		{"negative delay", func(c *Config) { c.Delays.Showdown = -time.Second }, ErrNegativeDelay},
		{"all seats automated", func(c *Config) { c.HumanSeat = -1 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
