package main

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/soleohess/poker/internal/bot"
	"github.com/soleohess/poker/internal/tournament"
)

// RunCmd plays tournaments between the bots named in the config file.
type RunCmd struct {
	Config      string `kong:"default='holdem.hcl',help='HCL configuration file'"`
	Count       int    `kong:"default='1',help='Number of tournaments to play'"`
	Parallelism int    `kong:"default='0',help='Concurrent tournaments (0 = GOMAXPROCS)'"`
	Seed        *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *RunCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := tournament.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", c.Config, err)
	}
	settings := cfg.Settings()

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("starting", "bots", len(cfg.Bots), "seed", seed,
		"chips", settings.StartingChips, "blinds",
		fmt.Sprintf("%d/%d", settings.SmallBlind, settings.BigBlind))

	if c.Count <= 1 {
		return c.runOne(cfg, settings, seed, logger)
	}
	return c.runSeries(cfg, settings, seed, logger)
}

func (c *RunCmd) runOne(cfg *tournament.Config, settings tournament.Settings, seed int64, logger *log.Logger) error {
	t, err := buildTournament(cfg, settings, seed, logger)
	if err != nil {
		return err
	}
	standings, err := t.Run()
	if err != nil {
		return err
	}
	fmt.Println(renderStandings(standings, t.Stats()))
	return nil
}

func (c *RunCmd) runSeries(cfg *tournament.Config, settings tournament.Settings, seed int64, logger *log.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Hands inside a tournament are loud; keep series output to the summary.
	quiet := setupLogger(false)
	quiet.SetLevel(log.WarnLevel)
	if c.Debug {
		quiet = logger
	}

	series := &tournament.Series{
		Count:       c.Count,
		Parallelism: c.Parallelism,
		Build: func(i int) (*tournament.Tournament, error) {
			return buildTournament(cfg, settings, seed+int64(i), quiet)
		},
	}
	result, err := series.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(renderSeries(cfg, result))
	return nil
}

// buildTournament wires fresh bots for one tournament. Bots keep state
// between hands, so every tournament gets its own set.
func buildTournament(cfg *tournament.Config, settings tournament.Settings, seed int64, logger *log.Logger) (*tournament.Tournament, error) {
	rng := rand.New(rand.NewSource(seed))
	entrants := make([]tournament.Entrant, 0, len(cfg.Bots))
	for _, b := range cfg.Bots {
		agent, err := bot.New(b.Strategy, rng, logger)
		if err != nil {
			return nil, fmt.Errorf("bot %s: %w", b.Name, err)
		}
		entrants = append(entrants, tournament.Entrant{ID: b.Name, Agent: agent})
	}
	return tournament.New(settings, entrants, rng, tournament.WithLogger(logger))
}
