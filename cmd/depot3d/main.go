package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"depot3d/internal/camera"
	"depot3d/internal/commands"
	"depot3d/internal/config"
	"depot3d/internal/debug"
	"depot3d/internal/env"
	"depot3d/internal/graphics"
	"depot3d/internal/inventory"
	"depot3d/internal/logger"
	"depot3d/internal/render"
	"depot3d/internal/viewer"
)

func main() {
	log := logger.New("depot3d")
	if err := run(log); err != nil {
		log.Error("exit", logger.Fields{"error": err.Error()})
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	if err := env.Load(".env"); err != nil {
		log.Warn("ignoring .env", logger.Fields{"error": err.Error()})
	}
	cfg, err := config.Load(config.Path)
	if err != nil {
		log.Warn("using default config", logger.Fields{"error": err.Error()})
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	fac, err := cfg.LoadFacility()
	if err != nil {
		return fmt.Errorf("facility: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := inventory.Open(ctx, cfg.Inventory.DBPath)
	if err != nil {
		return fmt.Errorf("open inventory: %w", err)
	}
	defer store.Close()
	if err := seed(ctx, store, cfg, fac, log); err != nil {
		return err
	}
	snap, err := store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read inventory: %w", err)
	}

	var v *viewer.Viewer
	v, err = viewer.Initialize(
		camera.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
		fac, snap.Items(),
		viewer.Options{Log: log, OnBoxSelected: func(id string) { boxSelected(log, v, id) }},
	)
	if err != nil {
		return err
	}

	dbg := debug.New()
	dbg.SetShowFPS(cfg.Debug.ShowFPS)
	dbg.SetShowMemAlloc(cfg.Debug.ShowMemAlloc)
	dbg.SetShowStatus(cfg.Debug.ShowStatus)
	dbg.Status = func() string { return statusLine(v) }

	a := &app{ctx: ctx, cfg: cfg, store: store, v: v, dbg: dbg, log: log}
	reg := commands.NewRegistry()
	commands.RegisterViewer(reg, a)
	lines := make(chan string, 16)
	go func() {
		if err := commands.ReadLines(ctx, os.Stdin, lines); err != nil && ctx.Err() == nil {
			log.Warn("console closed", logger.Fields{"error": err.Error()})
		}
	}()

	rnd := render.New()
	var in render.Input
	update := func(dt float32) {
		reg.Drain(lines, log)
		in.Poll(v, v)
		v.Tick(dt)
	}
	draw := func() {
		rnd.Draw(v.Frame())
		dbg.Draw()
	}
	return graphics.Run(graphics.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		TargetFPS:  cfg.Window.TargetFPS,
		Background: cfg.BackgroundRGB(),
		Cleanup:    rnd.Close,
	}, update, draw, v.Resize)
}
