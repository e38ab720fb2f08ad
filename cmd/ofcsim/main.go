// Command ofcsim plays automated hands and prints every board and the showdown.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/lazharichir/ofc/config"
	"github.com/lazharichir/ofc/domain"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a YAML config file")
	hands := flag.Int("hands", 1, "number of hands to play")
	players := flag.Int("players", 0, "players at the table (2-3), overrides the config")
	seed := flag.Int64("seed", 0, "shuffle seed, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Printfln("config: %v", err)
		os.Exit(1)
	}
	if *players != 0 {
		cfg.Players = *players
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	// every seat is played by the policy
	cfg.HumanSeat = -1
	if err := cfg.Validate(); err != nil {
		pterm.Error.Printfln("config: %v", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if cfg.Debug {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	pterm.Info.Printfln("seed %d, %d players, %d hands", cfg.Seed, cfg.Players, *hands)

	if err := simulate(cfg, *hands, logger); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func simulate(cfg config.Config, hands int, logger *zap.Logger) error {
	g := domain.NewGame(
		domain.WithLogger(logger),
		domain.WithRules(cfg.Rules()),
		domain.WithRand(rand.New(rand.NewSource(cfg.Seed))),
	)

	for i := 0; i < hands; i++ {
		var err error
		if i == 0 {
			err = g.StartGame(cfg.Players, cfg.StartingStake)
		} else {
			err = g.StartNextHand()
		}
		if err != nil {
			return err
		}

		if err := g.RunUntilInput(); err != nil {
			return err
		}

		report, err := handReport(g)
		if err != nil {
			return err
		}
		pterm.Println(report)
	}

	return nil
}
