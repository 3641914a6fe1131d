// path: cmd/server/main.go
// Command server hosts one local Ginseng Pai Sho session over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ginseng_paisho/internal/config"
	"ginseng_paisho/internal/game/tiles"
	"ginseng_paisho/internal/httpx"
	"ginseng_paisho/internal/logging"
	"ginseng_paisho/internal/store"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	addr := flag.String("addr", "", "listen address (overrides config)")
	noStore := flag.Bool("no-store", false, "run without saved-game persistence")
	flag.Parse()

	if err := run(*configDir, *addr, *noStore); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir, addr string, noStore bool) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	var files []io.Writer
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		files = append(files, f)
	}
	log := logging.New(cfg.LogLevel, os.Stdout, files...)
	log.Info().
		Bool("bisonFlight", cfg.Game.BisonFlight).
		Stringer("flightPolicy", cfg.Game.Flight).
		Bool("lineOfSightProtection", cfg.Game.LineOfSightProtection).
		Msg("rules")

	var saves httpx.SaveStore
	if !noStore {
		st, err := store.Open(store.Config{Driver: cfg.DBDriver, Path: cfg.DBPath, DSN: cfg.DBDSN}, log)
		if err != nil {
			return fmt.Errorf("store: %w", err)
		}
		defer st.Close()
		saves = st
	}

	srv, err := httpx.NewServer(tiles.MustDefault(), cfg.Game, saves, log)
	if err != nil {
		return fmt.Errorf("http init: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go shutdownOnDone(ctx, srv, log)

	return srv.Listen(cfg.Addr)
}

func shutdownOnDone(ctx context.Context, srv *httpx.Server, log zerolog.Logger) {
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
