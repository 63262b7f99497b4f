// Package render draws a viewer frame with raylib. It reads the frame and makes no decisions.
package render

import (
	"sort"

	"depot3d/internal/camera"
	"depot3d/internal/geom"
	"depot3d/internal/overlay"
	"depot3d/internal/scene"
	"depot3d/internal/viewer"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Highlight colors and opacities.
const (
	hoverColor       = 0x00D4C8
	hoverOpacity     = 0.35
	committedColor   = 0x00A99D
	committedOpacity = 0.25
)

var (
	labelColor    = rl.NewColor(34, 34, 34, 255)
	labelDimColor = rl.NewColor(120, 120, 120, 200)
	panelBg       = rl.NewColor(255, 255, 255, 235)
	panelBorder   = rl.NewColor(0, 169, 157, 255)
	panelText     = rl.NewColor(40, 40, 40, 255)
	panelMuted    = rl.NewColor(110, 110, 110, 255)
)

// Renderer draws frames. It must only be used on the window's thread.
type Renderer struct {
	box    *boxMesh
	cursor int32
	// transparent is reused every frame for back-to-front sorting.
	transparent []drawItem
}

type drawItem struct {
	center, size geom.Vec3
	color        rl.Color
	depth        float32
}

// New returns a renderer. GPU resources are created on first draw.
func New() *Renderer {
	return &Renderer{box: newBoxMesh(), cursor: rl.MouseCursorDefault}
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.box.unload()
}

// Color converts 0xRRGGBB and an opacity in [0, 1] to a raylib color.
func Color(rgb uint32, opacity float32) rl.Color {
	a := opacity
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), uint8(a*255+0.5))
}

func vec(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func camera3D(c camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(c.Position),
		Target:     vec(c.Target),
		Up:         vec(camera.Up),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene, the labels, the shelf-info panel and sets the mouse cursor.
func (r *Renderer) Draw(fr viewer.Frame) {
	if fr.Scene == nil {
		return
	}
	r.drawScene(fr)
	r.drawLabels(fr)
	if fr.Panel != nil {
		drawPanel(*fr.Panel)
	}
	r.setCursor(fr.Hovering)
}

func (r *Renderer) drawScene(fr viewer.Frame) {
	cam := fr.Camera
	forward := cam.Forward()
	r.transparent = r.transparent[:0]
	queue := func(center, size geom.Vec3, c rl.Color) {
		r.transparent = append(r.transparent, drawItem{
			center: center, size: size, color: c, depth: center.Sub(cam.Position).Dot(forward),
		})
	}

	rl.BeginMode3D(camera3D(cam))
	r.box.setView(cam.Position)
	fr.Scene.Root.Walk(func(n *scene.Node) {
		for _, v := range n.Volumes {
			c := Color(v.Color, v.Opacity)
			if c.A < 255 {
				queue(v.Center, v.Size, c)
				continue
			}
			r.box.draw(v.Center, v.Size, c)
		}
	})
	for _, rg := range fr.Scene.Regions {
		if !fr.Scene.RackVisible(rg.RackID) {
			continue
		}
		switch rg.Highlight {
		case scene.HighlightHover:
			queue(rg.Bounds.Center(), rg.Bounds.Size(), Color(hoverColor, hoverOpacity))
		case scene.HighlightCommitted:
			queue(rg.Bounds.Center(), rg.Bounds.Size(), Color(committedColor, committedOpacity))
		}
	}
	sort.Slice(r.transparent, func(i, j int) bool { return r.transparent[i].depth > r.transparent[j].depth })
	for _, it := range r.transparent {
		r.box.draw(it.center, it.size, it.color)
	}
	rl.EndMode3D()
}

// drawLabels draws every visible label as screen-space text sized by its world scale.
func (r *Renderer) drawLabels(fr viewer.Frame) {
	cam := fr.Camera
	for _, l := range fr.Scene.Labels.Visible() {
		x, y, ok := cam.Project(l.Position)
		if !ok {
			continue
		}
		px := l.Scale * cam.PixelScale(l.Position)
		if px < 4 {
			continue
		}
		col := labelColor
		if l.Dim {
			col = labelDimColor
		}
		big := int32(px)
		small := int32(px * 0.45)
		if small < 8 {
			small = 8
		}
		w0 := rl.MeasureText(l.Lines[0], small)
		w1 := rl.MeasureText(l.Lines[1], big)
		top := int32(y) - (small+big)/2
		rl.DrawText(l.Lines[0], int32(x)-w0/2, top, small, col)
		rl.DrawText(l.Lines[1], int32(x)-w1/2, top+small, big, col)
	}
}

func drawPanel(p overlay.Panel) {
	b := p.Bounds
	rl.DrawRectangle(int32(b.X), int32(b.Y), int32(b.W), int32(b.H), panelBg)
	rl.DrawRectangle(int32(b.X), int32(b.Y), int32(b.W), 3, panelBorder)
	x := int32(b.X + overlay.Padding)
	y := int32(b.Y + overlay.Padding)
	rl.DrawText(p.Title, x, y, overlay.TitleSize, panelText)
	y += overlay.TitleSize + 6
	rl.DrawText(p.Subtitle, x, y, overlay.RowSize, panelMuted)

	bottom := b.Y + b.H
	for _, row := range p.Rows {
		rb := row.Bounds
		if rb.Y+rb.H > bottom {
			return
		}
		ty := int32(rb.Y + (rb.H-overlay.RowSize)/2)
		rl.DrawRectangle(x, int32(rb.Y)+4, overlay.SwatchWidth, int32(rb.H)-8, Color(row.Color, 1))
		rl.DrawText(row.Text, x+overlay.SwatchWidth+8, ty, overlay.RowSize, panelText)
		if row.Status != "" {
			w := rl.MeasureText(row.Status, overlay.RowSize-4)
			rl.DrawText(row.Status, int32(rb.X+rb.W)-w-overlay.Padding, ty+2, overlay.RowSize-4, panelMuted)
		}
	}
	if p.Footer != "" && len(p.Rows) > 0 {
		last := p.Rows[len(p.Rows)-1].Bounds
		fy := last.Y + last.H
		if fy+overlay.RowHeight <= bottom {
			rl.DrawText(p.Footer, x+overlay.SwatchWidth+8, int32(fy)+4, overlay.RowSize, panelMuted)
		}
	}
}

func (r *Renderer) setCursor(hovering bool) {
	want := int32(rl.MouseCursorDefault)
	if hovering {
		want = rl.MouseCursorPointingHand
	}
	if want != r.cursor {
		rl.SetMouseCursor(want)
		r.cursor = want
	}
}
