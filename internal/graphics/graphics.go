package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrRenderContextUnavailable is returned by Run when the window or its GL context could not be created.
var ErrRenderContextUnavailable = errors.New("graphics: render context unavailable")

// Options configures the window.
type Options struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int32
	// Background is the clear color, 0xRRGGBB.
	Background uint32
	// Cleanup runs after the last frame while the GL context is still alive.
	Cleanup func()
}

// Run opens a resizable window and runs the main loop until it is closed. Each frame it reports
// a changed window size to onResize (may be nil), calls update with the frame time in seconds,
// then clears the screen and calls draw.
func Run(opts Options, update func(dt float32), draw func(), onResize func(width, height int)) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return ErrRenderContextUnavailable
	}
	defer rl.CloseWindow()
	if opts.Cleanup != nil {
		defer opts.Cleanup()
	}

	rl.SetExitKey(rl.KeyNull) // ESC resets the view; close via window button
	fps := opts.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)
	bg := rl.NewColor(uint8(opts.Background>>16), uint8(opts.Background>>8), uint8(opts.Background), 255)

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() && onResize != nil {
			onResize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		draw()
		rl.EndDrawing()
	}
	return nil
}
