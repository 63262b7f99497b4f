package navigation

import (
	"fmt"
	"testing"

	"depot3d/internal/camera"
	"depot3d/internal/facility"
	"depot3d/internal/geom"
	"depot3d/internal/inventory"
	"depot3d/internal/layout"
	"depot3d/internal/logger"
	"depot3d/internal/scene"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPhysical() facility.Config {
	return facility.Config{Racks: []facility.RackSpec{
		{ID: "R01", Shelves: 3, Trays: 1, BoxesPerTray: 8, Physical: true, Width: 1, Height: 0.9},
		{ID: "R02", Shelves: 3, Trays: 1, BoxesPerTray: 8, Physical: true, Width: 1, Height: 0.9},
	}}
}

type fixture struct {
	cfg  facility.Config
	l    layout.Layout
	sc   *scene.Scene
	inv  inventory.Snapshot
	cam  *camera.Camera
	ctrl *Controller
}

func newFixture(t *testing.T, cfg facility.Config, items []inventory.Item) *fixture {
	t.Helper()
	f := &fixture{cfg: cfg, inv: inventory.NewSnapshot(items)}
	f.l, f.sc = buildScene(t, cfg, f.inv)
	f.cam = camera.New(OverviewPose, camera.Viewport{Width: 800, Height: 600})
	f.ctrl = New(cfg, f.l, f.sc, f.inv, f.cam, logger.Discard())
	return f
}

func buildScene(t *testing.T, cfg facility.Config, inv inventory.Snapshot) (layout.Layout, *scene.Scene) {
	t.Helper()
	l, err := layout.Compute(cfg)
	require.NoError(t, err)
	res, err := scene.Build(l, cfg, inv, logger.Discard())
	require.NoError(t, err)
	return l, res.Scene
}

func (f *fixture) settle() {
	for f.cam.Advance(0.05) {
	}
}

// pixelFor returns a pixel whose ray hits the region of rackID/shelf before any other region.
// It aims at the point of the region box nearest the camera, slightly inset.
func (f *fixture) pixelFor(t *testing.T, rackID string, shelf int) (float32, float32) {
	t.Helper()
	i := f.sc.RegionIndex(rackID, shelf)
	require.GreaterOrEqual(t, i, 0)
	b := f.sc.Regions[i].Bounds
	const inset = 0.01
	clamp := func(v, lo, hi float32) float32 {
		return math32.Max(lo+inset, math32.Min(hi-inset, v))
	}
	p := f.cam.Position
	aim := geom.V3(clamp(p.X, b.Min.X, b.Max.X), clamp(p.Y, b.Min.Y, b.Max.Y), clamp(p.Z, b.Min.Z, b.Max.Z))
	x, y, ok := f.cam.Project(aim)
	require.True(t, ok)
	return x, y
}

func (f *fixture) click(t *testing.T, rackID string, shelf int) {
	t.Helper()
	x, y := f.pixelFor(t, rackID, shelf)
	res := f.ctrl.PointerDown(x, y)
	require.True(t, res.Hit)
	require.Equal(t, rackID, res.RackID)
	require.Equal(t, shelf, res.Shelf)
}

func (f *fixture) assertOverview(t *testing.T) {
	t.Helper()
	s := f.ctrl.State()
	assert.Equal(t, Overview, s.Mode)
	assert.Empty(t, s.SelectedRack)
	assert.Zero(t, s.SelectedShelf)
	assert.Equal(t, OverviewPose, f.cam.Destination())
	for _, id := range f.sc.RackIDs() {
		assert.True(t, f.sc.RackVisible(id), id)
		l := f.sc.Labels.Rack(id)
		require.NotNil(t, l)
		assert.True(t, l.Visible, id)
		assert.Equal(t, l.OverviewAnchor, l.Position, id)
		for _, d := range f.sc.Labels.Detail(id) {
			assert.False(t, d.Visible, id)
		}
	}
	for _, rg := range f.sc.Regions {
		assert.Equal(t, scene.HighlightNone, rg.Highlight)
	}
	_, ok := f.ctrl.ShelfInfo()
	assert.False(t, ok)
	require.NoError(t, s.Check(f.cfg))
}

func TestStartsInOverview(t *testing.T) {
	f := newFixture(t, facility.Demo(), nil)
	assert.False(t, f.cam.Animating())
	assert.Equal(t, OverviewPose, f.cam.Pose)
	f.assertOverview(t)
}

func TestClickShelfEntersRackDetail(t *testing.T) {
	items := []inventory.Item{{ID: "B1", RackID: "R02", Shelf: 2, Tray: 1, Slot: 1, Department: "Finanzen", Status: inventory.StatusStored}}
	f := newFixture(t, twoPhysical(), items)
	require.Len(t, f.sc.Regions, 6)

	f.click(t, "R02", 2)
	s := f.ctrl.State()
	assert.Equal(t, RackDetail, s.Mode)
	assert.Equal(t, "R02", s.SelectedRack)
	assert.Zero(t, s.SelectedShelf)
	require.NoError(t, s.Check(f.cfg))

	assert.True(t, f.sc.RackVisible("R02"))
	assert.False(t, f.sc.RackVisible("R01"))
	assert.False(t, f.sc.Labels.Rack("R01").Visible)
	r02 := f.sc.Labels.Rack("R02")
	assert.True(t, r02.Visible)
	assert.Equal(t, r02.DetailAnchor, r02.Position)

	r, _ := f.cfg.Rack("R02")
	p, _ := f.l.Get("R02")
	assert.Equal(t, ShelfPose(r, p.CenterZ, p.Opening, 2), f.cam.Destination())
	assert.True(t, f.cam.Animating())

	i := f.sc.RegionIndex("R02", 2)
	assert.Equal(t, scene.HighlightCommitted, f.sc.Regions[i].Highlight)

	info, ok := f.ctrl.ShelfInfo()
	require.True(t, ok)
	assert.Equal(t, 1, info.Total)
	assert.Zero(t, info.More)
	require.Len(t, info.Entries, 1)
	assert.Equal(t, BoxEntry{ID: "B1", Department: "Finanzen", Color: 0x00A99D, Status: inventory.StatusStored}, info.Entries[0])

	rack, shelf, ok := f.ctrl.Focus()
	assert.True(t, ok)
	assert.Equal(t, "R02", rack)
	assert.Equal(t, 2, shelf)
}

func TestRackDurationThenShelfDuration(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	f.click(t, "R02", 2)
	f.cam.Advance(RackDuration - 0.01)
	assert.True(t, f.cam.Animating())
	f.cam.Advance(0.02)
	assert.False(t, f.cam.Animating())

	f.click(t, "R02", 3)
	f.cam.Advance(ShelfDuration - 0.01)
	assert.True(t, f.cam.Animating())
	f.cam.Advance(0.02)
	assert.False(t, f.cam.Animating())
}

func TestClickSameShelfReturnsToOverview(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	f.click(t, "R02", 2)
	f.settle()
	f.click(t, "R02", 2)
	f.assertOverview(t)
	f.settle()
	assert.Equal(t, OverviewPose, f.cam.Pose)
}

func TestResetToOverviewIsIdempotent(t *testing.T) {
	f := newFixture(t, facility.Demo(), nil)
	require.NoError(t, f.ctrl.Select("R03", 1))
	f.ctrl.ResetToOverview()
	f.assertOverview(t)
	f.settle()
	f.ctrl.ResetToOverview()
	f.assertOverview(t)
	assert.Equal(t, OverviewPose, f.cam.Pose)
}

func TestShelfToShelfWithinRack(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	f.click(t, "R02", 2)
	f.settle()
	before := f.cam.Pose

	f.click(t, "R02", 3)
	s := f.ctrl.State()
	assert.Equal(t, ShelfDetail, s.Mode)
	assert.Equal(t, "R02", s.SelectedRack)
	assert.Equal(t, 3, s.SelectedShelf)
	require.NoError(t, s.Check(f.cfg))
	assert.True(t, f.sc.RackVisible("R02"))
	assert.False(t, f.sc.RackVisible("R01"))

	after := f.cam.Destination()
	assert.Equal(t, before.Position.X, after.Position.X)
	assert.Equal(t, before.Position.Z, after.Position.Z)
	assert.Equal(t, before.Target.Z, after.Target.Z)
	r, _ := f.cfg.Rack("R02")
	assert.InDelta(t, r.ShelfSpacing(), after.Target.Y-before.Target.Y, 1e-6)

	assert.Equal(t, scene.HighlightNone, f.sc.Regions[f.sc.RegionIndex("R02", 2)].Highlight)
	assert.Equal(t, scene.HighlightCommitted, f.sc.Regions[f.sc.RegionIndex("R02", 3)].Highlight)
	assert.Equal(t, scene.TrayLabelSelectedScale, f.sc.Labels.Tray("R02", 3).Scale)
	assert.Equal(t, scene.TrayLabelScale, f.sc.Labels.Tray("R02", 2).Scale)

	// Clicking the focused shelf from ShelfDetail also toggles back.
	f.settle()
	f.click(t, "R02", 3)
	f.assertOverview(t)
}

func TestDetailLabels(t *testing.T) {
	f := newFixture(t, facility.Demo(), nil)
	require.NoError(t, f.ctrl.Select("R02", 1))
	var header *scene.Label
	trays := 0
	for _, d := range f.sc.Labels.Detail("R02") {
		assert.True(t, d.Visible)
		switch d.Kind {
		case scene.LabelShelf:
			header = d
		case scene.LabelTray:
			trays++
		}
	}
	require.NotNil(t, header)
	assert.Equal(t, "03", header.Lines[1], "shelf numbers count from the top")
	assert.Equal(t, 3, trays)
	for _, d := range f.sc.Labels.Detail("R03") {
		assert.False(t, d.Visible)
	}
}

func TestClickOtherRackAfterReset(t *testing.T) {
	f := newFixture(t, facility.Demo(), nil)
	require.NoError(t, f.ctrl.Select("R02", 2))
	f.ctrl.ResetToOverview()
	f.settle()

	f.click(t, "R03", 1)
	s := f.ctrl.State()
	assert.Equal(t, RackDetail, s.Mode)
	assert.Equal(t, "R03", s.SelectedRack)
	assert.False(t, f.sc.RackVisible("R02"))
	assert.False(t, f.sc.RackVisible("R01"))
	assert.True(t, f.sc.RackVisible("R03"))
	for _, d := range f.sc.Labels.Detail("R02") {
		assert.False(t, d.Visible)
	}
}

func TestMissReturnsToOverview(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	// Straight up from the overview camera there is nothing.
	res := f.ctrl.PointerDown(400, 0)
	assert.False(t, res.Hit)
	f.assertOverview(t)
	assert.False(t, f.cam.Animating(), "miss in overview does not restart the camera")

	f.click(t, "R02", 1)
	f.settle()
	res = f.ctrl.PointerDown(0, 0)
	assert.False(t, res.Hit)
	f.assertOverview(t)
}

func TestHiddenRacksAreNotPickable(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	// Aim at R01 from the overview, then isolate R02 and try the same pixel.
	x, y := f.pixelFor(t, "R01", 1)
	require.NoError(t, f.ctrl.Select("R02", 1))
	res := f.ctrl.Pick(x, y)
	if res.Hit {
		assert.Equal(t, "R02", res.RackID)
	}
}

func TestHoverAndCommittedAreSeparate(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	x, y := f.pixelFor(t, "R02", 1)
	res := f.ctrl.PointerMove(x, y)
	require.True(t, res.Hit)
	i := f.sc.RegionIndex("R02", 1)
	assert.Equal(t, scene.HighlightHover, f.sc.Regions[i].Highlight)
	assert.Equal(t, i, f.ctrl.Hovered())

	f.ctrl.PointerMove(400, 0)
	assert.Equal(t, scene.HighlightNone, f.sc.Regions[i].Highlight)
	assert.Equal(t, -1, f.ctrl.Hovered())

	f.click(t, "R02", 1)
	f.settle()
	assert.Equal(t, scene.HighlightCommitted, f.sc.Regions[i].Highlight)

	// Hovering the committed shelf keeps the committed highlight.
	x, y = f.pixelFor(t, "R02", 1)
	f.ctrl.PointerMove(x, y)
	assert.Equal(t, scene.HighlightCommitted, f.sc.Regions[i].Highlight)
	assert.Equal(t, -1, f.ctrl.Hovered())

	x, y = f.pixelFor(t, "R02", 2)
	f.ctrl.PointerMove(x, y)
	j := f.sc.RegionIndex("R02", 2)
	assert.Equal(t, scene.HighlightHover, f.sc.Regions[j].Highlight)
	assert.Equal(t, scene.HighlightCommitted, f.sc.Regions[i].Highlight)

	hovered, committed := 0, 0
	for _, rg := range f.sc.Regions {
		switch rg.Highlight {
		case scene.HighlightHover:
			hovered++
		case scene.HighlightCommitted:
			committed++
		}
	}
	assert.Equal(t, 1, hovered)
	assert.Equal(t, 1, committed)
}

func TestShelfInfoLimitsRows(t *testing.T) {
	var items []inventory.Item
	for i := 1; i <= 6; i++ {
		items = append(items, inventory.Item{ID: fmt.Sprintf("B%d", i), RackID: "R01", Shelf: 1, Tray: 1, Slot: i, Department: "Unbekannt"})
	}
	f := newFixture(t, twoPhysical(), items)
	require.NoError(t, f.ctrl.Select("R01", 1))
	info, ok := f.ctrl.ShelfInfo()
	require.True(t, ok)
	assert.Equal(t, 6, info.Total)
	assert.Len(t, info.Entries, 4)
	assert.Equal(t, 2, info.More)
	assert.Equal(t, uint32(0x6B7280), info.Entries[0].Color)

	require.NoError(t, f.ctrl.Select("R01", 2))
	info, _ = f.ctrl.ShelfInfo()
	assert.Zero(t, info.Total)
	assert.Empty(t, info.Entries)
}

func TestSelectUnknownShelf(t *testing.T) {
	f := newFixture(t, facility.Demo(), nil)
	assert.Error(t, f.ctrl.Select("R01", 1), "placeholder racks have no regions")
	assert.Error(t, f.ctrl.Select("R02", 9))
	assert.Error(t, f.ctrl.Select("R99", 1))
	f.assertOverview(t)
}

func TestRebindKeepsSelection(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	require.NoError(t, f.ctrl.Select("R02", 2))
	f.settle()
	pose := f.cam.Pose

	inv := inventory.NewSnapshot([]inventory.Item{{ID: "N1", RackID: "R02", Shelf: 2, Tray: 1, Slot: 3}})
	l, sc := buildScene(t, f.cfg, inv)
	f.ctrl.Rebind(f.cfg, l, sc, inv)
	f.sc = sc

	assert.Equal(t, pose, f.cam.Pose)
	assert.False(t, f.cam.Animating())
	s := f.ctrl.State()
	assert.Equal(t, RackDetail, s.Mode)
	assert.Equal(t, "R02", s.SelectedRack)
	assert.False(t, sc.RackVisible("R01"))
	assert.Equal(t, scene.HighlightCommitted, sc.Regions[sc.RegionIndex("R02", 2)].Highlight)
	info, ok := f.ctrl.ShelfInfo()
	require.True(t, ok)
	assert.Equal(t, 1, info.Total)
}

func TestRebindResetsVanishedSelection(t *testing.T) {
	f := newFixture(t, twoPhysical(), nil)
	require.NoError(t, f.ctrl.Select("R02", 3))
	f.settle()

	cfg := twoPhysical()
	cfg.Racks[1].Shelves = 2
	cfg.Racks[1].Height = 0.6
	l, sc := buildScene(t, cfg, inventory.Snapshot{})
	f.ctrl.Rebind(cfg, l, sc, inventory.Snapshot{})
	f.cfg, f.l, f.sc = cfg, l, sc
	f.assertOverview(t)
	assert.True(t, f.cam.Animating())
}

func TestStateCheck(t *testing.T) {
	cfg := facility.Demo()
	cases := []struct {
		name string
		s    State
		ok   bool
	}{
		{"overview", State{Mode: Overview}, true},
		{"overview with rack", State{Mode: Overview, SelectedRack: "R02"}, false},
		{"rack detail", State{Mode: RackDetail, SelectedRack: "R02"}, true},
		{"rack detail with shelf", State{Mode: RackDetail, SelectedRack: "R02", SelectedShelf: 1}, false},
		{"rack detail unknown rack", State{Mode: RackDetail, SelectedRack: "R09"}, false},
		{"shelf detail", State{Mode: ShelfDetail, SelectedRack: "R02", SelectedShelf: 3}, true},
		{"shelf detail out of range", State{Mode: ShelfDetail, SelectedRack: "R02", SelectedShelf: 4}, false},
		{"shelf detail without shelf", State{Mode: ShelfDetail, SelectedRack: "R02"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Check(cfg)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestShelfPose(t *testing.T) {
	r := facility.RackSpec{Shelves: 3, Height: 0.9}
	p := ShelfPose(r, 0.95, -1, 2)
	assert.InDelta(t, 0.45, p.Target.Y, 1e-6)
	assert.InDelta(t, 0.95, p.Position.Y, 1e-6)
	assert.InDelta(t, 0.95-4, p.Position.Z, 1e-6)
	assert.Equal(t, float32(0.95), p.Target.Z)
	assert.Equal(t, "rack", RackDetail.String())
}
