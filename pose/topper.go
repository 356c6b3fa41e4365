package pose

import (
	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/scene"
)

// Topper sits at the tree apex, shown in TREE and shrunk to a speck otherwise
type Topper struct {
	scale float32
	spin  float32
	blend float32
}

// Topper constants
const (
	TopperHeight      = 7
	TopperSpinRate    = -0.5
	TopperHiddenScale = 0.01
	DefaultTopperLerp = 0.05
)

// NewTopper creates a full-size topper
func NewTopper(blend float32) *Topper {
	if blend <= 0 {
		blend = DefaultTopperLerp
	}
	return &Topper{scale: 1, blend: blend}
}

// Update sets the spin from elapsed seconds and, when advance is set, eases the scale
func (t *Topper) Update(kind scene.ModeKind, elapsed float32, advance bool) {
	t.spin = elapsed * TopperSpinRate
	if !advance {
		return
	}
	target := float32(1)
	if kind != scene.KindTree {
		target = TopperHiddenScale
	}
	t.scale = math32.Lerp(t.scale, target, t.blend)
}

// Pose returns the topper transform
func (t *Topper) Pose() Pose {
	return Pose{
		Position:    math32.Vec3(0, TopperHeight, 0),
		Orientation: YawQuat(t.spin),
		Scale:       t.scale,
	}
}
