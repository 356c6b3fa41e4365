package camera

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/wishtree/scene"
)

func assertVec(t *testing.T, want, got math32.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

func TestNewRigStartsAtDefault(t *testing.T) {
	r := NewRig(60)
	assertVec(t, DefaultPosition, r.Position(), 1e-3)

	v := r.View()
	assert.InDelta(t, 1, v.Direction.Length(), 1e-5)
	assert.Less(t, v.Direction.Z, float32(0), "looking toward the scene")
}

func TestAutoRotateOnlyInTree(t *testing.T) {
	r := NewRig(60)
	yaw := r.Yaw()
	r.Update(scene.KindTree, 1)
	assert.InDelta(t, yaw-autoRotateRate*AutoRotateSpeed, r.Yaw(), 1e-5)

	yaw = r.Yaw()
	r.Update(scene.KindGalaxy, 1)
	assert.Equal(t, yaw, r.Yaw())
}

func TestZeroDtIsNoop(t *testing.T) {
	r := NewRig(60)
	r.Impulse(0.1, 0, 0)
	before := r.Position()
	r.Update(scene.KindTree, 0)
	assert.Equal(t, before, r.Position())
}

func TestImpulseDecays(t *testing.T) {
	r := NewRig(60)
	r.Impulse(0.05, 0, 0)
	r.Update(scene.KindGalaxy, 1.0/60)
	first := r.Yaw()
	assert.NotZero(t, first)

	for i := 0; i < 600; i++ {
		r.Update(scene.KindGalaxy, 1.0/60)
	}
	settled := r.Yaw()
	r.Update(scene.KindGalaxy, 1.0/60)
	assert.InDelta(t, settled, r.Yaw(), 1e-5, "velocity decays to rest")
}

func TestZoomClamped(t *testing.T) {
	r := NewRig(60)
	for i := 0; i < 50; i++ {
		r.Impulse(0, 0, 5)
		r.Update(scene.KindGalaxy, 1.0/60)
	}
	assert.Equal(t, float32(MaxDistance), r.Distance())

	for i := 0; i < 50; i++ {
		r.Impulse(0, -1, -5)
		r.Update(scene.KindGalaxy, 1.0/60)
	}
	assert.Equal(t, float32(MinDistance), r.Distance())
	assert.GreaterOrEqual(t, r.Polar(), float32(minPolar))
}

func TestFocusDisablesControls(t *testing.T) {
	r := NewRig(60)
	r.Update(scene.KindFocus, 1.0/60)
	assert.False(t, r.Enabled())

	before := r.Position()
	r.Impulse(1, 1, 1)
	r.Update(scene.KindFocus, 1.0/60)
	assert.Equal(t, before, r.Position())
}
