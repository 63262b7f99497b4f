package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointerHandler receives pointer events in window pixels.
type PointerHandler interface {
	PointerDown(x, y float32)
	PointerMove(x, y float32)
}

// KeyHandler receives the reset key.
type KeyHandler interface {
	ResetToOverview()
}

// Input polls raylib's mouse and keyboard once per frame and forwards changes.
type Input struct {
	lastX, lastY float32
	moved        bool
}

// Poll forwards a move when the mouse moved since the last frame and a down on a left click.
// ESC returns to the overview.
func (in *Input) Poll(p PointerHandler, k KeyHandler) {
	m := rl.GetMousePosition()
	if !in.moved || m.X != in.lastX || m.Y != in.lastY {
		p.PointerMove(m.X, m.Y)
		in.lastX, in.lastY, in.moved = m.X, m.Y, true
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		p.PointerDown(m.X, m.Y)
	}
	if k != nil && rl.IsKeyPressed(rl.KeyEscape) {
		k.ResetToOverview()
	}
}
