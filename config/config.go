package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/table"
)

// EnvPrefix prefixes every environment override, e.g. OFC_PLAYERS
const EnvPrefix = "OFC_"

var (
	ErrInvalidPlayers   = errors.New("players must be between 2 and 3")
	ErrInvalidHumanSeat = errors.New("human_seat must be -1 or a seat number")
	ErrNegativeStake    = errors.New("starting_stake must not be negative")
	ErrNegativeDelay    = errors.New("delays must not be negative")
)

type Delays struct {
	Deal       time.Duration `yaml:"deal"`
	AIThinking time.Duration `yaml:"ai_thinking"`
	Showdown   time.Duration `yaml:"showdown"`
	NextHand   time.Duration `yaml:"next_hand"`
}

// Config holds the server and session settings
type Config struct {
	Addr                  string `yaml:"addr"`
	Players               int    `yaml:"players"`
	StartingStake         int    `yaml:"starting_stake"`
	HumanSeat             int    `yaml:"human_seat"`
	CapNetToOpponentStake bool   `yaml:"cap_net_to_opponent_stake"`
	Seed                  int64  `yaml:"seed"` // 0 seeds from the clock
	Delays                Delays `yaml:"delays"`
	AutoNextHand          bool   `yaml:"auto_next_hand"`
	Debug                 bool   `yaml:"debug"`
}

// Default returns a human against two opponents
func Default() Config {
	return Config{
		Addr:          "0.0.0.0:7777",
		Players:       3,
		StartingStake: 5000,
		HumanSeat:     0,
		Delays: Delays{
			Deal:       300 * time.Millisecond,
			AIThinking: 750 * time.Millisecond,
			Showdown:   time.Second,
			NextHand:   5 * time.Second,
		},
		AutoNextHand: true,
	}
}

// Load reads the YAML file at path over the defaults, then applies OFC_*
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings a session cannot be started with
func (c Config) Validate() error {
	if c.Players < domain.MinPlayers || c.Players > domain.MaxPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidPlayers, c.Players)
	}
	if c.HumanSeat < -1 || c.HumanSeat >= c.Players {
		return fmt.Errorf("%w: %d", ErrInvalidHumanSeat, c.HumanSeat)
	}
	if c.StartingStake < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeStake, c.StartingStake)
	}
	for name, d := range map[string]time.Duration{
		"deal":        c.Delays.Deal,
		"ai_thinking": c.Delays.AIThinking,
		"showdown":    c.Delays.Showdown,
		"next_hand":   c.Delays.NextHand,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s is %s", ErrNegativeDelay, name, d)
		}
	}
	return nil
}

// Rules are the engine rules for a session
func (c Config) Rules() domain.Rules {
	return domain.Rules{
		CapNetToOpponentStake: c.CapNetToOpponentStake,
		HumanSeat:             c.HumanSeat,
	}
}

// LoopDelays converts the delays for the game loop
func (c Config) LoopDelays() table.Delays {
	return table.Delays{
		Deal:       c.Delays.Deal,
		AIThinking: c.Delays.AIThinking,
		Showdown:   c.Delays.Showdown,
		NextHand:   c.Delays.NextHand,
	}
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strVars := map[string]*string{
		"ADDR": &c.Addr,
	}
	intVars := map[string]*int{
		"PLAYERS":        &c.Players,
		"STARTING_STAKE": &c.StartingStake,
		"HUMAN_SEAT":     &c.HumanSeat,
	}
	boolVars := map[string]*bool{
		"CAP_NET_TO_OPPONENT_STAKE": &c.CapNetToOpponentStake,
		"AUTO_NEXT_HAND":            &c.AutoNextHand,
		"DEBUG":                     &c.Debug,
	}
	durationVars := map[string]*time.Duration{
		"DELAY_DEAL":        &c.Delays.Deal,
		"DELAY_AI_THINKING": &c.Delays.AIThinking,
		"DELAY_SHOWDOWN":    &c.Delays.Showdown,
		"DELAY_NEXT_HAND":   &c.Delays.NextHand,
	}

	for key, dst := range strVars {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	for key, dst := range intVars {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}
	for key, dst := range boolVars {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}
	for key, dst := range durationVars {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = seed
	}
	return nil
}
