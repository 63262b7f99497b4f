package main

import (
	"context"
	"fmt"

	"depot3d/internal/config"
	"depot3d/internal/debug"
	"depot3d/internal/facility"
	"depot3d/internal/inventory"
	"depot3d/internal/logger"
	"depot3d/internal/navigation"
	"depot3d/internal/viewer"
)

// app is the console command target. It runs on the frame loop, like the viewer.
type app struct {
	ctx   context.Context
	cfg   config.Config
	store *inventory.Store
	v     *viewer.Viewer
	dbg   *debug.Debug
	log   *logger.Logger
}

func (a *app) ResetToOverview() { a.v.ResetToOverview() }

func (a *app) Select(rackID string, shelf int) error { return a.v.Select(rackID, shelf) }

// Reload re-reads the facility and the inventory. A changed facility resets the view; an
// inventory-only change keeps the current selection when it still exists.
func (a *app) Reload() error {
	fac, err := a.cfg.LoadFacility()
	if err != nil {
		return err
	}
	if !fac.Equal(a.v.Config()) {
		if err := a.v.UpdateConfig(fac); err != nil {
			return err
		}
	}
	snap, err := a.store.Snapshot(a.ctx)
	if err != nil {
		return err
	}
	if err := a.v.UpdateInventory(snap.Items()); err != nil {
		return err
	}
	a.log.Info("reloaded", logger.Fields{"items": snap.Len(), "dropped": len(a.v.Diagnostics())})
	return nil
}

func (a *app) SetShowFPS(on bool) {
	a.dbg.SetShowFPS(on)
	a.cfg.Debug.ShowFPS = on
	a.savePrefs()
}

func (a *app) SetShowMemAlloc(on bool) {
	a.dbg.SetShowMemAlloc(on)
	a.cfg.Debug.ShowMemAlloc = on
	a.savePrefs()
}

func (a *app) SetShowStatus(on bool) {
	a.dbg.SetShowStatus(on)
	a.cfg.Debug.ShowStatus = on
	a.savePrefs()
}

func (a *app) savePrefs() {
	if err := config.Save(config.Path, a.cfg); err != nil {
		a.log.Warn("save config", logger.Fields{"error": err.Error()})
	}
}

// seed fills an empty store with generated boxes when the config asks for it.
func seed(ctx context.Context, store *inventory.Store, cfg config.Config, fac facility.Config, log *logger.Logger) error {
	if !cfg.Inventory.SeedDemo {
		return nil
	}
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	items := inventory.GenerateDemo(fac, cfg.Inventory.DemoSeed)
	if err := store.Replace(ctx, items); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}
	log.Info("seeded demo inventory", logger.Fields{"items": len(items), "seed": cfg.Inventory.DemoSeed})
	return nil
}

// boxSelected stands in for the host's box detail view.
func boxSelected(log *logger.Logger, v *viewer.Viewer, id string) {
	it, ok := v.Inventory().ByID(id)
	if !ok {
		return
	}
	log.Info("box", logger.Fields{
		"id": it.ID, "position": it.PositionString(), "department": it.Department,
		"status": it.Status, "label": it.Label,
	})
}

func statusLine(v *viewer.Viewer) string {
	s := v.State()
	switch s.Mode {
	case navigation.Overview:
		return "overview"
	case navigation.RackDetail:
		return fmt.Sprintf("rack %s", s.SelectedRack)
	}
	return fmt.Sprintf("shelf %s/%d", s.SelectedRack, s.SelectedShelf)
}
