package navigation

import (
	"fmt"

	"depot3d/internal/camera"
	"depot3d/internal/facility"
	"depot3d/internal/inventory"
	"depot3d/internal/layout"
	"depot3d/internal/logger"
	"depot3d/internal/picking"
	"depot3d/internal/scene"
)

// shelfInfoRows is how many boxes the shelf-info overlay lists before "+N more".
const shelfInfoRows = 4

// BoxEntry is one row of the shelf-info overlay.
type BoxEntry struct {
	ID         string
	Department string
	Color      uint32
	Status     string
}

// ShelfInfo is the overlay content for the focused shelf.
type ShelfInfo struct {
	RackID string
	Shelf  int
	// DisplayShelf is the shelf number as labelled in the scene (top shelf is 1).
	DisplayShelf int
	Total        int
	Entries      []BoxEntry
	// More is the number of boxes not listed in Entries.
	More int
}

// Controller owns the navigation state and is the only writer of camera targets, rack
// visibility, label placement and region highlights. All methods must be called from the
// frame loop.
type Controller struct {
	cfg    facility.Config
	layout layout.Layout
	sc     *scene.Scene
	inv    inventory.Snapshot
	cam    *camera.Camera
	log    *logger.Logger

	mode Mode
	rack string
	// focus is the shelf the camera frames; it is the committed selection.
	focus     int
	hover     int
	committed int
	info      *ShelfInfo
}

// New returns a controller in Overview. The camera is placed at OverviewPose immediately.
func New(cfg facility.Config, l layout.Layout, sc *scene.Scene, inv inventory.Snapshot, cam *camera.Camera, log *logger.Logger) *Controller {
	c := &Controller{cfg: cfg, layout: l, sc: sc, inv: inv, cam: cam, log: log, hover: -1, committed: -1}
	c.showOverview()
	cam.AnimateTo(OverviewPose, 0)
	return c
}

// State returns the current navigation state.
func (c *Controller) State() State {
	s := State{
		Position:     c.cam.Position,
		LookTarget:   c.cam.Target,
		Mode:         c.mode,
		SelectedRack: c.rack,
	}
	if c.mode == ShelfDetail {
		s.SelectedShelf = c.focus
	}
	return s
}

// Focus returns the committed selection (rack and shelf), if any.
func (c *Controller) Focus() (rackID string, shelf int, ok bool) {
	if c.mode == Overview {
		return "", 0, false
	}
	return c.rack, c.focus, true
}

// ShelfInfo returns the overlay content while a shelf is focused.
func (c *Controller) ShelfInfo() (ShelfInfo, bool) {
	if c.info == nil {
		return ShelfInfo{}, false
	}
	return *c.info, true
}

// Hovered returns the region index under the pointer, or -1.
func (c *Controller) Hovered() int {
	return c.hover
}

// Pick resolves pixel (x, y) against the regions of visible racks.
func (c *Controller) Pick(x, y float32) picking.Result {
	return picking.Pick(c.cam.ScreenRay(x, y), c.sc.Regions, c.sc.RackVisible)
}

// PointerDown handles a click at pixel (x, y).
func (c *Controller) PointerDown(x, y float32) picking.Result {
	res := c.Pick(x, y)
	if !res.Hit {
		if c.mode != Overview {
			c.ResetToOverview()
		}
		return res
	}
	c.apply(res.RackID, res.Shelf, res.Region)
	return res
}

// PointerMove updates the hover highlight for pixel (x, y).
func (c *Controller) PointerMove(x, y float32) picking.Result {
	res := c.Pick(x, y)
	c.ClearHover()
	if res.Hit && res.Region != c.committed {
		c.sc.Regions[res.Region].Highlight = scene.HighlightHover
		c.hover = res.Region
	}
	return res
}

// ClearHover removes the hover highlight.
func (c *Controller) ClearHover() {
	if c.hover >= 0 && c.hover != c.committed {
		c.sc.Regions[c.hover].Highlight = scene.HighlightNone
	}
	c.hover = -1
}

// Select behaves like clicking the given shelf, whether or not it is currently visible.
func (c *Controller) Select(rackID string, shelf int) error {
	i := c.sc.RegionIndex(rackID, shelf)
	if i < 0 {
		return fmt.Errorf("no selectable shelf %s/%d", rackID, shelf)
	}
	c.apply(rackID, shelf, i)
	return nil
}

func (c *Controller) apply(rackID string, shelf, region int) {
	if c.mode != Overview && rackID == c.rack && shelf == c.focus {
		c.ResetToOverview()
		return
	}
	r, _ := c.cfg.Rack(rackID)
	p, _ := c.layout.Get(rackID)
	sameRack := c.mode != Overview && rackID == c.rack

	c.setCommitted(region)
	c.focus = shelf
	pose := ShelfPose(r, p.CenterZ, p.Opening, shelf)
	if sameRack {
		c.mode = ShelfDetail
		c.showDetailLabels(rackID, shelf)
		c.cam.AnimateTo(pose, ShelfDuration)
	} else {
		c.mode = RackDetail
		c.rack = rackID
		c.isolate(rackID)
		c.showDetailLabels(rackID, shelf)
		c.cam.AnimateTo(pose, RackDuration)
	}
	c.info = c.shelfInfo(rackID, shelf)
	c.debug("selected", logger.Fields{"rack": rackID, "shelf": shelf, "mode": c.mode.String()})
}

// ResetToOverview restores every rack and rack label, hides the detail labels, clears both
// highlights and moves the camera back to OverviewPose.
func (c *Controller) ResetToOverview() {
	c.mode = Overview
	c.rack = ""
	c.focus = 0
	c.info = nil
	c.showOverview()
	c.cam.AnimateTo(OverviewPose, OverviewDuration)
	c.debug("overview", nil)
}

// Rebind switches to a rebuilt scene. A selection that still exists in the new scene is kept
// without moving the camera; otherwise the controller returns to Overview.
func (c *Controller) Rebind(cfg facility.Config, l layout.Layout, sc *scene.Scene, inv inventory.Snapshot) {
	c.cfg, c.layout, c.sc, c.inv = cfg, l, sc, inv
	c.hover, c.committed = -1, -1
	if c.mode == Overview {
		c.showOverview()
		return
	}
	region := sc.RegionIndex(c.rack, c.focus)
	if region < 0 {
		c.ResetToOverview()
		return
	}
	c.setCommitted(region)
	c.isolate(c.rack)
	c.showDetailLabels(c.rack, c.focus)
	c.info = c.shelfInfo(c.rack, c.focus)
}

func (c *Controller) showOverview() {
	for _, id := range c.sc.RackIDs() {
		c.sc.SetRackVisible(id, true)
		if l := c.sc.Labels.Rack(id); l != nil {
			l.Visible = true
			l.Position = l.OverviewAnchor
		}
		for _, d := range c.sc.Labels.Detail(id) {
			d.Visible = false
			if d.Kind == scene.LabelTray {
				d.Scale = scene.TrayLabelScale
			}
		}
	}
	c.sc.ClearHighlights()
	c.hover, c.committed = -1, -1
}

// isolate hides every rack but keep, moves keep's label to its detail anchor and hides the
// detail labels of the other racks.
func (c *Controller) isolate(keep string) {
	for _, id := range c.sc.RackIDs() {
		visible := id == keep
		c.sc.SetRackVisible(id, visible)
		if l := c.sc.Labels.Rack(id); l != nil {
			l.Visible = visible
			if visible {
				l.Position = l.DetailAnchor
			} else {
				l.Position = l.OverviewAnchor
			}
		}
		if !visible {
			for _, d := range c.sc.Labels.Detail(id) {
				d.Visible = false
			}
		}
	}
}

func (c *Controller) showDetailLabels(rackID string, shelf int) {
	r, _ := c.cfg.Rack(rackID)
	for _, d := range c.sc.Labels.Detail(rackID) {
		d.Visible = true
		switch d.Kind {
		case scene.LabelShelf:
			d.Lines[1] = fmt.Sprintf("%02d", r.DisplayShelf(shelf))
		case scene.LabelTray:
			if d.Shelf == shelf {
				d.Scale = scene.TrayLabelSelectedScale
			} else {
				d.Scale = scene.TrayLabelScale
			}
		}
	}
}

func (c *Controller) setCommitted(region int) {
	if c.committed >= 0 && c.committed < len(c.sc.Regions) {
		c.sc.Regions[c.committed].Highlight = scene.HighlightNone
	}
	if c.hover == region {
		c.hover = -1
	}
	c.committed = region
	c.sc.Regions[region].Highlight = scene.HighlightCommitted
}

func (c *Controller) shelfInfo(rackID string, shelf int) *ShelfInfo {
	r, _ := c.cfg.Rack(rackID)
	ids := c.sc.ShelfBoxes(rackID, shelf)
	info := &ShelfInfo{RackID: rackID, Shelf: shelf, DisplayShelf: r.DisplayShelf(shelf), Total: len(ids)}
	for i, id := range ids {
		if i == shelfInfoRows {
			info.More = len(ids) - shelfInfoRows
			break
		}
		it, _ := c.inv.ByID(id)
		info.Entries = append(info.Entries, BoxEntry{
			ID:         id,
			Department: it.Department,
			Color:      inventory.DepartmentColor(it.Department),
			Status:     it.Status,
		})
	}
	return info
}

func (c *Controller) debug(msg string, fields logger.Fields) {
	if c.log != nil {
		c.log.Debug(msg, fields)
	}
}
