package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaminalder/tic-tac-toe-bot/internal/app"
	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
	"github.com/jaminalder/tic-tac-toe-bot/internal/config"
	"github.com/jaminalder/tic-tac-toe-bot/internal/web"
)

func main() {
	config.LoadEnv(".env", "../.env")
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "listen address")
	levelStr := flag.String("log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")
	level := flag.String("difficulty", cfg.DefaultDifficulty.String(), "default difficulty: easy|medium|hard")
	flag.Parse()

	lvl := cfg.LogLevel
	if *levelStr != "" {
		lvl = config.ParseLevel(*levelStr)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	d, err := bot.ParseDifficulty(*level)
	if err != nil {
		logger.Error("bad -difficulty", "err", err)
		os.Exit(2)
	}

	sel := bot.New(bot.NewLockedRandom(cfg.RandSeed), bot.WithBypassRate(cfg.MediumBypassRate))
	svc := app.NewService(sel, app.WithLogger(logger))
	handler := web.NewServer(svc, sel, web.Options{
		Logger:            logger,
		DefaultDifficulty: d,
		Heartbeat:         cfg.Heartbeat,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", *addr, "difficulty", d, "bypass", cfg.MediumBypassRate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
