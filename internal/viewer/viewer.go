// Package viewer is the host-facing facade of the 3D facility view. It owns the configuration,
// the inventory snapshot, the built scene, the camera and the navigation controller, and
// rebuilds the scene when the host hands in new data.
package viewer

import (
	"fmt"

	"depot3d/internal/camera"
	"depot3d/internal/facility"
	"depot3d/internal/inventory"
	"depot3d/internal/layout"
	"depot3d/internal/logger"
	"depot3d/internal/navigation"
	"depot3d/internal/overlay"
	"depot3d/internal/scene"
)

// Options configures a Viewer.
type Options struct {
	// Log receives build diagnostics and navigation events. Nil discards them.
	Log *logger.Logger
	// OnBoxSelected is called with a box id when a row of the shelf-info panel is clicked.
	OnBoxSelected func(boxID string)
}

// Frame is everything the renderer needs to draw one frame. It is only valid until the next
// call that mutates the viewer.
type Frame struct {
	Scene  *scene.Scene
	Camera camera.Camera
	State  navigation.State
	// Panel is nil when no shelf is focused.
	Panel *overlay.Panel
	// Hovering is set while the pointer is over a pickable shelf.
	Hovering bool
}

// Viewer is single-threaded: every method must be called from the frame loop.
type Viewer struct {
	cfg    facility.Config
	layout layout.Layout
	inv    inventory.Snapshot
	sc     *scene.Scene
	cam    *camera.Camera
	nav    *navigation.Controller
	log    *logger.Logger

	onBoxSelected func(string)
	panel         *overlay.Panel
	hovering      bool
	diagnostics   []error
}

// Initialize lays out cfg, builds the scene for items and starts in Overview. An invalid
// configuration is returned as an error wrapping facility.ErrInvalidConfig.
func Initialize(vp camera.Viewport, cfg facility.Config, items []inventory.Item, opts Options) (*Viewer, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	v := &Viewer{
		cfg:           cfg,
		inv:           inventory.NewSnapshot(items),
		cam:           camera.New(navigation.OverviewPose, vp),
		log:           log,
		onBoxSelected: opts.OnBoxSelected,
	}
	l, sc, diags, err := v.build(cfg, v.inv)
	if err != nil {
		return nil, err
	}
	v.layout, v.sc, v.diagnostics = l, sc, diags
	v.nav = navigation.New(cfg, l, sc, v.inv, v.cam, log)
	v.refreshPanel()
	log.Info("viewer initialized", logger.Fields{"facility": cfg.Name, "racks": len(cfg.Racks), "items": v.inv.Len()})
	return v, nil
}

func (v *Viewer) build(cfg facility.Config, inv inventory.Snapshot) (layout.Layout, *scene.Scene, []error, error) {
	l, err := layout.Compute(cfg)
	if err != nil {
		return layout.Layout{}, nil, nil, fmt.Errorf("layout: %w", err)
	}
	res, err := scene.Build(l, cfg, inv, v.log)
	if err != nil {
		return layout.Layout{}, nil, nil, fmt.Errorf("build scene: %w", err)
	}
	return l, res.Scene, res.Diagnostics, nil
}

// UpdateInventory rebuilds the scene for a new inventory snapshot. The navigation state and
// camera are kept when the selected shelf still exists.
func (v *Viewer) UpdateInventory(items []inventory.Item) error {
	inv := inventory.NewSnapshot(items)
	l, sc, diags, err := v.build(v.cfg, inv)
	if err != nil {
		return err
	}
	v.inv, v.layout, v.sc, v.diagnostics = inv, l, sc, diags
	v.hovering = false
	v.nav.Rebind(v.cfg, l, sc, inv)
	v.refreshPanel()
	return nil
}

// UpdateConfig replaces the facility configuration, rebuilds the scene and returns to
// Overview. An invalid configuration leaves the viewer unchanged.
func (v *Viewer) UpdateConfig(cfg facility.Config) error {
	l, sc, diags, err := v.build(cfg, v.inv)
	if err != nil {
		return err
	}
	v.cfg, v.layout, v.sc, v.diagnostics = cfg, l, sc, diags
	v.hovering = false
	v.nav.Rebind(cfg, l, sc, v.inv)
	v.nav.ResetToOverview()
	v.refreshPanel()
	v.log.Info("facility config replaced", logger.Fields{"facility": cfg.Name, "racks": len(cfg.Racks)})
	return nil
}

// Resize updates the viewport. Camera pose and navigation mode are unchanged.
func (v *Viewer) Resize(width, height int) {
	v.cam.Resize(camera.Viewport{Width: width, Height: height})
	v.refreshPanel()
}

// ResetToOverview returns to the overview framing.
func (v *Viewer) ResetToOverview() {
	v.nav.ResetToOverview()
	v.refreshPanel()
}

// Select focuses a shelf as if it had been clicked.
func (v *Viewer) Select(rackID string, shelf int) error {
	if err := v.nav.Select(rackID, shelf); err != nil {
		return err
	}
	v.refreshPanel()
	return nil
}

// PointerDown handles a click. Clicks on the shelf-info panel never reach the scene; a click
// on a box row fires OnBoxSelected.
func (v *Viewer) PointerDown(x, y float32) {
	if v.panel != nil && v.panel.Contains(x, y) {
		if id, ok := v.panel.HitRow(x, y); ok {
			v.log.Debug("box selected", logger.Fields{"box": id})
			if v.onBoxSelected != nil {
				v.onBoxSelected(id)
			}
		}
		return
	}
	v.nav.PointerDown(x, y)
	v.refreshPanel()
}

// PointerMove updates hover feedback.
func (v *Viewer) PointerMove(x, y float32) {
	if v.panel != nil && v.panel.Contains(x, y) {
		v.nav.ClearHover()
		_, v.hovering = v.panel.HitRow(x, y)
		return
	}
	v.hovering = v.nav.PointerMove(x, y).Hit
}

// Tick advances the camera transition by dt seconds.
func (v *Viewer) Tick(dt float32) {
	v.cam.Advance(dt)
}

// State returns the navigation state.
func (v *Viewer) State() navigation.State {
	return v.nav.State()
}

// Config returns the current facility configuration.
func (v *Viewer) Config() facility.Config {
	return v.cfg
}

// Inventory returns the current inventory snapshot.
func (v *Viewer) Inventory() inventory.Snapshot {
	return v.inv
}

// Diagnostics returns the recovered data errors of the last build.
func (v *Viewer) Diagnostics() []error {
	return v.diagnostics
}

// Frame returns the current render state.
func (v *Viewer) Frame() Frame {
	return Frame{
		Scene:    v.sc,
		Camera:   *v.cam,
		State:    v.nav.State(),
		Panel:    v.panel,
		Hovering: v.hovering,
	}
}

func (v *Viewer) refreshPanel() {
	info, ok := v.nav.ShelfInfo()
	if !ok {
		v.panel = nil
		return
	}
	p := overlay.Layout(info, v.cam.Viewport.Height)
	v.panel = &p
}
