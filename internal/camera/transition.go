package camera

// EasingFunc maps linear progress in [0, 1] to eased progress in [0, 1].
type EasingFunc func(t float32) float32

// Linear does not ease.
func Linear(t float32) float32 { return t }

// EaseInOutQuad accelerates through the first half and decelerates through the second.
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Transition interpolates between two poses over Duration seconds.
type Transition struct {
	From     Pose
	To       Pose
	Elapsed  float32
	Duration float32
	Ease     EasingFunc

	active bool
}

// Progress returns linear progress clamped to [0, 1].
func (t *Transition) Progress() float32 {
	if t.Duration <= 0 {
		return 1
	}
	p := t.Elapsed / t.Duration
	return max(0, min(1, p))
}

// Done reports whether the transition reached its end.
func (t *Transition) Done() bool {
	return t.Progress() >= 1
}

// Step advances Elapsed by dt and returns the interpolated pose.
func (t *Transition) Step(dt float32) Pose {
	t.Elapsed += dt
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return t.From.Lerp(t.To, ease(t.Progress()))
}
