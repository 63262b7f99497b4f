// Package overlay lays out the shelf-info panel shown while a shelf is focused. Drawing is
// done by the renderer; this package only computes text and rectangles so clicks on box
// rows can be resolved without a graphics context.
package overlay

import (
	"fmt"

	"depot3d/internal/navigation"
)

const (
	PanelWidth  = 320
	Margin      = 16
	Padding     = 10
	TitleSize   = 20
	RowSize     = 16
	RowHeight   = RowSize + 10
	SwatchWidth = 6
)

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether pixel (x, y) is inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Row is one clickable box entry.
type Row struct {
	BoxID  string
	Text   string
	Status string
	Color  uint32
	Bounds Rect
}

// Panel is a laid-out shelf-info panel.
type Panel struct {
	Bounds   Rect
	Title    string
	Subtitle string
	Rows     []Row
	// Footer is "+N more" or empty.
	Footer string
}

// Layout places the panel for info in the top-left corner of a viewport of the given height.
// The panel never grows taller than the viewport.
func Layout(info navigation.ShelfInfo, viewportHeight int) Panel {
	p := Panel{
		Title:    fmt.Sprintf("Rack %s / Shelf %02d", info.RackID, info.DisplayShelf),
		Subtitle: boxCount(info.Total),
	}
	y := float32(Margin + Padding + TitleSize + 6 + RowSize + 8)
	for _, e := range info.Entries {
		p.Rows = append(p.Rows, Row{
			BoxID:  e.ID,
			Text:   fmt.Sprintf("%s  %s", e.ID, e.Department),
			Status: e.Status,
			Color:  e.Color,
			Bounds: Rect{X: Margin, Y: y, W: PanelWidth, H: RowHeight},
		})
		y += RowHeight
	}
	if info.More > 0 {
		p.Footer = fmt.Sprintf("+%d more", info.More)
		y += RowHeight
	}
	h := y + Padding - Margin
	if vh := float32(viewportHeight - 2*Margin); viewportHeight > 0 && h > vh {
		h = vh
	}
	p.Bounds = Rect{X: Margin, Y: Margin, W: PanelWidth, H: h}
	return p
}

func boxCount(n int) string {
	switch n {
	case 0:
		return "no boxes"
	case 1:
		return "1 box"
	}
	return fmt.Sprintf("%d boxes", n)
}

// Contains reports whether pixel (x, y) is over the panel.
func (p Panel) Contains(x, y float32) bool {
	return p.Bounds.Contains(x, y)
}

// HitRow returns the box id of the row under pixel (x, y).
func (p Panel) HitRow(x, y float32) (string, bool) {
	for _, r := range p.Rows {
		if r.Bounds.Contains(x, y) && p.Bounds.Contains(x, y) {
			return r.BoxID, true
		}
	}
	return "", false
}
