package pose

import (
	"math/rand"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wishtree/camera"
	"github.com/lixenwraith/wishtree/scene"
)

func poseIsFinite(p Pose) bool {
	vals := []float32{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Orientation.X, p.Orientation.Y, p.Orientation.Z, p.Orientation.W,
		p.Scale,
	}
	for _, v := range vals {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestBlendFactorBounds(t *testing.T) {
	cur := Identity()
	tgt := TreeTarget(3, 8)

	assert.Equal(t, cur, Blend(cur, tgt, 0))
	assert.Equal(t, cur, Blend(cur, tgt, float32(math32.NaN())))
	assert.Equal(t, tgt, Blend(cur, tgt, 1.5))
}

func TestBlendDisplacementBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cur := GalaxyAnchor(rng)
	tgt := TreeTarget(0, 5)
	dist := cur.Position.DistanceTo(tgt.Position)

	next := Blend(cur, tgt, DefaultBlend)
	step := cur.Position.DistanceTo(next.Position)
	assert.InDelta(t, DefaultBlend*dist, step, 1e-4)
	assert.Less(t, next.Position.DistanceTo(tgt.Position), dist)
	assert.True(t, poseIsFinite(next))
}

func TestBlendIdenticalOrientationsStayFinite(t *testing.T) {
	p := TreeTarget(2, 4)
	out := Blend(p, p, DefaultBlend)
	assert.True(t, poseIsFinite(out))
	assert.InDelta(t, p.Orientation.W, out.Orientation.W, 1e-5)
}

func TestBlendRetargetKeepsProgress(t *testing.T) {
	rec := Record{Current: Identity(), Target: TreeTarget(0, 1)}
	for i := 0; i < 10; i++ {
		rec.Step(DefaultBlend)
	}
	mid := rec.Current
	rec.Target = FocusTarget(camera.NewRig(60).View(), 0)
	rec.Step(DefaultBlend)
	assert.InDelta(t, 0, LerpVec(mid.Position, rec.Target.Position, DefaultBlend).DistanceTo(rec.Current.Position), 1e-4)
}

func TestTreeTargetLayout(t *testing.T) {
	const total = 12
	prevY := float32(-100)
	for i := 0; i < total; i++ {
		p := TreeTarget(i, total)
		assert.Greater(t, p.Position.Y, prevY, "rises with index")
		prevY = p.Position.Y
		assert.Equal(t, float32(TreeScale), p.Scale)

		r := math32.Sqrt(p.Position.X*p.Position.X + p.Position.Z*p.Position.Z)
		assert.GreaterOrEqual(t, r, float32(0.5))
		assert.LessOrEqual(t, r, float32(TreeBaseRadius+0.5))
	}
	first := TreeTarget(0, 1)
	assert.InDelta(t, -6+1+0.5*8.4, first.Position.Y, 1e-4)
}

func TestTreeTargetZeroTotal(t *testing.T) {
	assert.True(t, poseIsFinite(TreeTarget(0, 0)))
}

func TestGalaxyAnchorDeterministic(t *testing.T) {
	a := GalaxyAnchor(rand.New(rand.NewSource(9)))
	b := GalaxyAnchor(rand.New(rand.NewSource(9)))
	assert.Equal(t, a, b)

	r := math32.Sqrt(a.Position.X*a.Position.X + a.Position.Z*a.Position.Z)
	assert.LessOrEqual(t, r, float32(20))
	assert.LessOrEqual(t, math32.Abs(a.Position.Y), float32(5))
}

func TestGalaxyTargetBobs(t *testing.T) {
	a := GalaxyAnchor(rand.New(rand.NewSource(2)))
	g := GalaxyTarget(a, math32.Pi/2, 0)
	assert.InDelta(t, a.Position.Y+0.05, g.Position.Y, 1e-5)
	assert.Equal(t, a.Orientation, g.Orientation)
}

func TestFocusTargetInFrontOfCamera(t *testing.T) {
	view := camera.View{Position: math32.Vec3(0, 0, 20), Direction: math32.Vec3(0, 0, -1)}
	p := FocusTarget(view, 0)
	assert.InDelta(t, 10, p.Position.Z, 1e-4)
	assert.Equal(t, float32(FocusScale), p.Scale)

	// Facing the camera: front +Z maps onto +Z
	front := math32.Vec3(0, 0, 1).MulQuat(p.Orientation)
	assert.InDelta(t, 1, front.Z, 1e-4)

	// Rotated group: local point rotated back by the group yaw lands at the same world spot
	const yaw = 0.7
	local := FocusTarget(view, yaw)
	world := RotateY(local.Position, yaw)
	assert.InDelta(t, 0, world.DistanceTo(p.Position), 1e-4)
}

func TestArenaReusesSlots(t *testing.T) {
	a := NewArena(2)
	s0 := a.Alloc(Identity())
	s1 := a.Alloc(Identity())
	a.Release(s0)
	a.Release(s0)
	assert.Equal(t, 1, a.Live())

	s2 := a.Alloc(TreeTarget(0, 1))
	assert.Equal(t, s0, s2)
	assert.Equal(t, 2, a.Slots())
	assert.NotEqual(t, s1, s2)
	assert.Equal(t, TreeTarget(0, 1), a.At(s2).Current)
}

func photos(ids ...scene.PhotoID) []scene.Photo {
	out := make([]scene.Photo, len(ids))
	for i, id := range ids {
		out[i] = scene.Photo{ID: id}
	}
	return out
}

func TestGallerySyncKeepsCurrent(t *testing.T) {
	g := NewGallery(rand.New(rand.NewSource(3)), DefaultBlend)
	g.Sync(photos(1))
	view := camera.NewRig(60).View()
	for i := 0; i < 20; i++ {
		g.Update(scene.Galaxy(), float32(i)/60, view, true)
	}
	rec, ok := g.Record(1)
	require.True(t, ok)
	moved := rec.Current

	g.Sync(photos(2, 1))
	rec, _ = g.Record(1)
	assert.Equal(t, moved, rec.Current)
	assert.Equal(t, 2, g.Len())

	g.Sync(photos(2))
	_, ok = g.Record(1)
	assert.False(t, ok)
	assert.Equal(t, 1, g.arena.Live())
}

func TestGalleryFocusOnlyFocused(t *testing.T) {
	g := NewGallery(rand.New(rand.NewSource(4)), DefaultBlend)
	g.Sync(photos(2, 1))
	view := camera.NewRig(60).View()

	g.Update(scene.Focus(1), 1, view, false)
	r1, _ := g.Record(1)
	r2, _ := g.Record(2)
	assert.Equal(t, float32(FocusScale), r1.Target.Scale)
	assert.Equal(t, float32(GalaxyScale), r2.Target.Scale)
	assert.Equal(t, Identity(), r1.Current, "no blend without advance")
}

func TestGalleryYawOnlyInTree(t *testing.T) {
	g := NewGallery(rand.New(rand.NewSource(5)), DefaultBlend)
	view := camera.NewRig(60).View()
	g.Update(scene.Tree(), 10, view, true)
	assert.InDelta(t, 0.5, g.Yaw(), 1e-6)
	g.Update(scene.Galaxy(), 20, view, true)
	assert.InDelta(t, 0.5, g.Yaw(), 1e-6)
}

func TestTopperShrinksOutsideTree(t *testing.T) {
	top := NewTopper(DefaultTopperLerp)
	top.Update(scene.KindGalaxy, 1, true)
	assert.InDelta(t, 1+(TopperHiddenScale-1)*DefaultTopperLerp, top.Pose().Scale, 1e-6)

	before := top.Pose().Scale
	top.Update(scene.KindGalaxy, 2, false)
	assert.Equal(t, before, top.Pose().Scale)
	assert.Equal(t, float32(TopperHeight), top.Pose().Position.Y)
}
