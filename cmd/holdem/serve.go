package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/soleohess/poker/internal/server"
	"github.com/soleohess/poker/internal/tournament"
)

// ServeCmd hosts a tournament for remote players connecting over websockets.
type ServeCmd struct {
	Config  string `kong:"default='holdem.hcl',help='HCL configuration file'"`
	Addr    string `kong:"help='Listen address (overrides config)'"`
	Players int    `kong:"default='0',help='Remote players to wait for (overrides config)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := tournament.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	settings := cfg.Settings()

	addr := cfg.Server.ListenAddr()
	if c.Addr != "" {
		addr = c.Addr
	}
	players := cfg.Server.PlayerCount()
	if c.Players >= 2 {
		players = c.Players
	}

	var opts []server.Option
	if timeout := cfg.Server.DecisionTimeout(); timeout > 0 {
		opts = append(opts, server.WithDecisionTimeout(timeout))
		// The agent wrapper deadline must outlast the transport deadline,
		// otherwise remote folds get double-counted as timeouts.
		settings.ActionTimeout = timeout + time.Second
	} else {
		settings.ActionTimeout = server.DefaultDecisionTimeout + time.Second
	}

	srv := server.New(logger, opts...)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("waiting for players", "addr", addr, "players", players)
	var entrants []tournament.Entrant
	waitDone := make(chan error, 1)
	go func() {
		var err error
		entrants, err = srv.WaitForPlayers(ctx, players)
		waitDone <- err
	}()
	select {
	case err := <-waitDone:
		if err != nil {
			return fmt.Errorf("waiting for players: %w", err)
		}
	case err := <-serverErr:
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	t, err := tournament.New(settings, entrants, rng, tournament.WithLogger(logger))
	if err != nil {
		return err
	}
	standings, err := t.Run()
	if err != nil {
		return err
	}
	fmt.Println(renderStandings(standings, t.Stats()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
