package scene

import (
	"fmt"
	"strings"

	"depot3d/internal/facility"
	"depot3d/internal/geom"
	"depot3d/internal/inventory"
	"depot3d/internal/layout"
	"depot3d/internal/logger"

	"github.com/google/uuid"
)

// Archive box size (front width, height, depth into the rack).
const (
	BoxWidth  float32 = 0.12
	BoxHeight float32 = 0.27
	BoxDepth  float32 = 0.33
)

// PlaceholderOpacity is applied to every volume of a placeholder rack.
const PlaceholderOpacity float32 = 0.25

const (
	panelThickness = 0.02
	backThickness  = 0.01
	railHeight     = 0.03
	deckHeight     = 0.02
	markDepth      = 0.002
	floorWidth     = 20
	floorDepth     = 15
)

type palette struct {
	frame, deck, back, box uint32
	backOpacity, opacity   float32
}

var (
	physicalPalette    = palette{frame: 0x505050, deck: 0x707070, back: 0x606060, box: 0xE8E6E3, backOpacity: 0.6, opacity: 1}
	placeholderPalette = palette{frame: 0x888888, deck: 0xA0A0A0, back: 0x999999, box: 0xCCCCCC, backOpacity: 0.15, opacity: PlaceholderOpacity}
)

const (
	floorColor  = 0xD0D4D8
	qrColor     = 0x333333
	numberColor = 0x666666
)

// OrphanItemError reports an inventory item that cannot be placed. It is a recovered error:
// the item is dropped from rendering and the build continues.
type OrphanItemError struct {
	ItemID string
	RackID string
	Reason string
}

func (e *OrphanItemError) Error() string {
	return fmt.Sprintf("orphan inventory item %s (rack %s): %s", e.ItemID, e.RackID, e.Reason)
}

// Result is the output of Build.
type Result struct {
	Scene       *Scene
	Diagnostics []error
}

// Build constructs the scene graph. Configuration errors are returned; inventory data errors
// become Diagnostics and are logged on log (which may be nil).
func Build(l layout.Layout, cfg facility.Config, inv inventory.Snapshot, log *logger.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	sc := &Scene{
		ID:         uuid.NewString(),
		Root:       &Node{Name: "facility", Visible: true},
		Labels:     newLabelSet(),
		racks:      make(map[string]int, len(cfg.Racks)),
		regions:    make(map[string][]int),
		shelfBoxes: make(map[shelfKey][]string),
	}
	sc.Root.Volumes = append(sc.Root.Volumes, Volume{
		Role: RoleFloor, Size: geom.V3(floorWidth, 0, floorDepth), Color: floorColor, Opacity: 1,
	})

	for _, r := range cfg.Racks {
		p, ok := l.Get(r.ID)
		if !ok {
			return Result{}, fmt.Errorf("%w: rack %s missing from layout", facility.ErrInvalidConfig, r.ID)
		}
		sc.racks[r.ID] = len(sc.Root.Children)
		sc.Root.Children = append(sc.Root.Children, buildRack(sc, r, p))
		addLabels(sc, r, p)
	}

	var res Result
	res.Scene = sc
	for _, it := range inv.Items() {
		if oe := placeBox(sc, cfg, l, it); oe != nil {
			res.Diagnostics = append(res.Diagnostics, oe)
			if log != nil {
				log.Warn("inventory item dropped", logger.Fields{
					"build": sc.ID, "item": it.ID, "rack": it.RackID,
					"shelf": it.Shelf, "tray": it.Tray, "slot": it.Slot, "reason": oe.Reason,
				})
			}
		}
	}
	if log != nil {
		log.Info("scene built", logger.Fields{
			"build": sc.ID, "racks": len(cfg.Racks), "regions": len(sc.Regions),
			"items": inv.Len(), "dropped": len(res.Diagnostics),
		})
	}
	return res, nil
}

func paletteFor(r facility.RackSpec) palette {
	if r.Physical {
		return physicalPalette
	}
	return placeholderPalette
}

// shelfFloor returns the Y of the top of a shelf's deck (shelf is 1-based).
func shelfFloor(r facility.RackSpec, shelf int) float32 {
	return float32(shelf-1)*r.ShelfSpacing() + deckHeight/2
}

func buildRack(sc *Scene, r facility.RackSpec, p layout.Placement) *Node {
	pal := paletteFor(r)
	n := &Node{Name: "rack " + r.ID, RackID: r.ID, Visible: true}
	z := p.CenterZ
	add := func(role Role, center, size geom.Vec3, color uint32, opacity float32) {
		n.Volumes = append(n.Volumes, Volume{Role: role, Center: center, Size: size, Color: color, Opacity: opacity})
	}

	// Back panel on the closed side.
	add(RoleBackPanel, geom.V3(0, r.Height/2, z-p.Opening*p.Depth/2), geom.V3(r.Width, r.Height, backThickness), pal.back, pal.backOpacity)
	for _, side := range []float32{-1, 1} {
		add(RoleSidePanel, geom.V3(side*r.Width/2, r.Height/2, z), geom.V3(panelThickness, r.Height, p.Depth), pal.frame, pal.opacity)
	}
	add(RoleTopRail, geom.V3(0, r.Height, z), geom.V3(r.Width, railHeight, p.Depth), pal.frame, pal.opacity)

	spacing := r.ShelfSpacing()
	for s := 1; s <= r.Shelves; s++ {
		y := shelfFloor(r, s)
		add(RoleShelfDeck, geom.V3(0, y, z), geom.V3(r.Width-2*panelThickness, deckHeight, p.Depth-0.02), pal.deck, pal.opacity)
		if !r.Physical {
			continue
		}
		h := spacing - 0.04
		sc.regions[r.ID] = append(sc.regions[r.ID], len(sc.Regions))
		sc.Regions = append(sc.Regions, Region{
			RackID: r.ID,
			Shelf:  s,
			Bounds: geom.BoxAt(geom.V3(0, y+deckHeight+h/2, z), geom.V3(r.Width-0.08, h, p.Depth-0.04)),
		})
	}
	return n
}

// placeBox validates an item and appends its volumes to the rack node. Boxes are placed in two
// levels: the tray picks an equal slice of the shelf width, the slot a position inside it.
func placeBox(sc *Scene, cfg facility.Config, l layout.Layout, it inventory.Item) *OrphanItemError {
	orphan := func(format string, args ...any) *OrphanItemError {
		return &OrphanItemError{ItemID: it.ID, RackID: it.RackID, Reason: fmt.Sprintf(format, args...)}
	}
	r, ok := cfg.Rack(it.RackID)
	if !ok {
		return orphan("unknown rack")
	}
	slot := it.SlotIndex()
	switch {
	case it.Shelf < 1 || it.Shelf > r.Shelves:
		return orphan("shelf %d outside 1..%d", it.Shelf, r.Shelves)
	case it.Tray < 1 || it.Tray > r.Trays:
		return orphan("tray %d outside 1..%d", it.Tray, r.Trays)
	case slot < 1 || slot > r.Slots():
		return orphan("slot %d outside 1..%d", slot, r.Slots())
	}
	p, _ := l.Get(r.ID)
	n := sc.Root.Children[sc.racks[r.ID]]
	pal := paletteFor(r)

	trayWidth := r.Width / float32(r.Trays)
	slotWidth := trayWidth / float32(r.Slots())
	x := -r.Width/2 + float32(it.Tray-1)*trayWidth + float32(slot-1)*slotWidth + slotWidth/2
	y := shelfFloor(r, it.Shelf) + deckHeight + BoxHeight/2 + 0.01
	center := geom.V3(x, y, p.CenterZ)

	n.Volumes = append(n.Volumes, Volume{
		Role: RoleBox, Center: center, Size: geom.V3(min(BoxWidth, slotWidth), BoxHeight, BoxDepth),
		Color: pal.box, Opacity: pal.opacity, BoxID: it.ID,
	})
	if r.Physical {
		face := p.CenterZ + p.Opening*(BoxDepth/2+0.001)
		bottom := y - BoxHeight/2
		n.Volumes = append(n.Volumes,
			Volume{Role: RoleQRMark, Center: geom.V3(x, bottom+0.03, face), Size: geom.V3(0.02, 0.02, markDepth), Color: qrColor, Opacity: 1, BoxID: it.ID},
			Volume{Role: RoleNumberMark, Center: geom.V3(x, bottom+0.045, face), Size: geom.V3(0.03, 0.005, markDepth), Color: numberColor, Opacity: 1, BoxID: it.ID},
		)
	}
	k := shelfKey{r.ID, it.Shelf}
	sc.shelfBoxes[k] = append(sc.shelfBoxes[k], it.ID)
	return nil
}

// rackNumber returns the numeric part of a rack id ("R02" -> "02").
func rackNumber(id string) string {
	if n := strings.TrimPrefix(id, "R"); n != "" {
		return n
	}
	return id
}

// DetailZ returns the Z of the plane in front of a rack where detail labels sit.
func DetailZ(p layout.Placement) float32 {
	return p.CenterZ + p.Opening*0.4
}

func addLabels(sc *Scene, r facility.RackSpec, p layout.Placement) {
	overview := geom.V3(-r.Width/2-0.35, r.Height+0.2, p.CenterZ)
	detail := overview
	if r.Physical {
		detail.Z = DetailZ(p)
	}
	sc.Labels.addRack(Label{
		Kind:           LabelRack,
		RackID:         r.ID,
		Lines:          [2]string{"Rack", rackNumber(r.ID)},
		Position:       overview,
		Scale:          RackLabelScale,
		Visible:        true,
		Dim:            !r.Physical,
		OverviewAnchor: overview,
		DetailAnchor:   detail,
	})
	if !r.Physical {
		return
	}

	dz := DetailZ(p)
	sc.Labels.addDetail(Label{
		Kind:     LabelShelf,
		RackID:   r.ID,
		Lines:    [2]string{"Shelf", "01"},
		Position: geom.V3(0, r.Height+0.2, dz),
		Scale:    ShelfLabelScale,
	})
	for s := 1; s <= r.Shelves; s++ {
		sc.Labels.addDetail(Label{
			Kind:     LabelTray,
			RackID:   r.ID,
			Shelf:    s,
			Lines:    [2]string{"Tray", fmt.Sprintf("%02d", r.DisplayShelf(s))},
			Position: geom.V3(r.Width/2+0.3, (float32(s)-0.5)*r.ShelfSpacing(), dz),
			Scale:    TrayLabelScale,
		})
	}
}
