// Package camera holds the perspective camera, its screen-to-world ray and the eased
// transitions between framings.
package camera

import (
	"depot3d/internal/geom"

	"github.com/chewxy/math32"
)

// DefaultFovY is the vertical field of view in degrees.
const DefaultFovY float32 = 50

// Up is the world up vector.
var Up = geom.V3(0, 1, 0)

// Pose is where the camera is and what it looks at.
type Pose struct {
	Position geom.Vec3
	Target   geom.Vec3
}

// Lerp interpolates both position and look target.
func (p Pose) Lerp(to Pose, t float32) Pose {
	return Pose{Position: p.Position.Lerp(to.Position, t), Target: p.Target.Lerp(to.Target, t)}
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height int
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Camera is a perspective camera with at most one running transition.
type Camera struct {
	Pose
	FovY     float32
	Viewport Viewport

	tr Transition
}

// New returns a camera at pose for the given viewport.
func New(pose Pose, vp Viewport) *Camera {
	return &Camera{Pose: pose, FovY: DefaultFovY, Viewport: vp}
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float32 {
	return c.Viewport.Aspect()
}

// Resize updates the viewport. Pose and any running transition are untouched.
func (c *Camera) Resize(vp Viewport) {
	c.Viewport = vp
}

// Forward returns the unit view direction.
func (c *Camera) Forward() geom.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ScreenRay returns the world ray through pixel (x, y); (0, 0) is the top-left corner.
func (c *Camera) ScreenRay(x, y float32) geom.Ray {
	w, h := float32(c.Viewport.Width), float32(c.Viewport.Height)
	if w <= 0 || h <= 0 {
		return geom.NewRay(c.Position, c.Forward())
	}
	ndcX := 2*x/w - 1
	ndcY := 1 - 2*y/h

	forward := c.Forward()
	right := forward.Cross(Up).Normalize()
	up := right.Cross(forward)
	tanHalf := math32.Tan(c.FovY * math32.Pi / 360)

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * c.Aspect())).
		Add(up.Scale(ndcY * tanHalf))
	return geom.NewRay(c.Position, dir)
}

// Project returns the pixel position of world point p. ok is false when p is behind the camera.
func (c *Camera) Project(p geom.Vec3) (x, y float32, ok bool) {
	forward := c.Forward()
	right := forward.Cross(Up).Normalize()
	up := right.Cross(forward)
	v := p.Sub(c.Position)
	depth := v.Dot(forward)
	if depth <= 0 {
		return 0, 0, false
	}
	tanHalf := math32.Tan(c.FovY * math32.Pi / 360)
	ndcX := v.Dot(right) / (depth * tanHalf * c.Aspect())
	ndcY := v.Dot(up) / (depth * tanHalf)
	x = (ndcX + 1) / 2 * float32(c.Viewport.Width)
	y = (1 - ndcY) / 2 * float32(c.Viewport.Height)
	return x, y, true
}

// PixelScale returns how many pixels one world unit spans at the depth of p, or 0 when p is
// behind the camera. Labels use it to keep a constant world size.
func (c *Camera) PixelScale(p geom.Vec3) float32 {
	depth := p.Sub(c.Position).Dot(c.Forward())
	if depth <= 0 || c.Viewport.Height <= 0 {
		return 0
	}
	return float32(c.Viewport.Height) / (2 * depth * math32.Tan(c.FovY*math32.Pi/360))
}

// AnimateTo starts a transition from the current pose to pose. A transition already in
// flight is replaced; the new one starts from wherever the camera is now. A non-positive
// duration jumps immediately.
func (c *Camera) AnimateTo(pose Pose, duration float32) {
	if duration <= 0 {
		c.Pose = pose
		c.tr = Transition{}
		return
	}
	c.tr = Transition{From: c.Pose, To: pose, Duration: duration, Ease: EaseInOutQuad, active: true}
}

// Animating reports whether a transition is in flight.
func (c *Camera) Animating() bool {
	return c.tr.active
}

// Destination returns the pose the camera is heading to (its current pose when idle).
func (c *Camera) Destination() Pose {
	if c.tr.active {
		return c.tr.To
	}
	return c.Pose
}

// Advance moves the running transition forward by dt seconds. Position and look target are
// both updated every step. It returns true while the transition is still running.
func (c *Camera) Advance(dt float32) bool {
	if !c.tr.active {
		return false
	}
	c.Pose = c.tr.Step(dt)
	if c.tr.Done() {
		c.Pose = c.tr.To
		c.tr.active = false
	}
	return c.tr.active
}
