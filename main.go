package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/field"
	"github.com/iburimskiy/constellation/internal/game"
	"github.com/iburimskiy/constellation/internal/logger"
	"github.com/iburimskiy/constellation/internal/terminal"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	logCfg := logger.Config{
		Environment: settings.Environment,
		LogLevel:    settings.LogLevel,
		ServiceName: "constellation",
	}
	if settings.LogFile != "" {
		logCfg.OutputPaths = []string{settings.LogFile}
	} else if settings.Backend == config.BackendTerminal {
		// stderr would scribble over the terminal screen
		logCfg.Discard = true
	}
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting",
		zap.String("backend", settings.Backend),
		zap.Int64("seed", seed))
	opts := []field.Option{
		field.WithRand(rand.New(rand.NewSource(seed))),
		field.WithLogger(log.Named("field")),
	}

	switch settings.Backend {
	case config.BackendTerminal:
		err = runTerminal(settings, log, opts)
	default:
		err = runWindow(settings, log, opts)
	}
	if err != nil {
		log.Error("exited with error", zap.Error(err))
		if settings.Backend == config.BackendWindow {
			_ = zenity.Error(err.Error(), zenity.Title("Constellation"), zenity.ErrorIcon)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		_ = log.Sync()
		os.Exit(1)
	}
}

func runWindow(settings config.Settings, log *zap.Logger, opts []field.Option) error {
	g := game.New(settings.Width, settings.Height, log.Named("window"))
	g.SetDebug(settings.Debug)

	a := field.NewAnimator(g, opts...)
	g.SetStatus(func() string { return fmt.Sprintf("%d links", a.Links()) })

	vp := g.Viewport()
	if err := a.Start(vp.Width, vp.Height); err != nil {
		return err
	}
	defer a.Stop()

	return game.Run(g, config.WindowTitle)
}

func runTerminal(settings config.Settings, log *zap.Logger, opts []field.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	h := terminal.New(screen, settings.TerminalGain, log.Named("terminal"))
	a := field.NewAnimator(h, opts...)

	vp := h.Viewport()
	if err := a.Start(vp.Width, vp.Height); err != nil {
		return err
	}
	defer a.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := h.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
