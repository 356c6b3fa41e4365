package particle

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wishtree/scene"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 100, 511, 512, 4000, 4001} {
		hits := make([]int32, n)
		ParallelFor(n, 4, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			require.Equal(t, int32(1), h, "n=%d index %d", n, i)
		}
	}
}

func TestSwarmDeterministic(t *testing.T) {
	a := NewSwarm(500, seeded(11), DefaultSwarmBlend, 1)
	b := NewSwarm(500, seeded(11), DefaultSwarmBlend, 4)
	assert.Equal(t, a.buf.Positions, b.buf.Positions)
	assert.Equal(t, a.buf.Colors, b.buf.Colors)

	a.Update(scene.KindGalaxy, 1, 1.0/60)
	b.Update(scene.KindGalaxy, 1, 1.0/60)
	assert.Equal(t, a.buf.Positions, b.buf.Positions, "worker count does not change results")
}

func TestSwarmLayouts(t *testing.T) {
	s := NewSwarm(DefaultSwarmCount, seeded(1), DefaultSwarmBlend, 4)
	for i := 0; i < s.buf.Len(); i++ {
		p := s.TreeBase(i)
		require.GreaterOrEqual(t, p.Y, float32(-swarmHeight/2))
		require.LessOrEqual(t, p.Y, float32(swarmHeight/2))
		r := math32.Sqrt(p.X*p.X + p.Z*p.Z)
		require.LessOrEqual(t, r, float32(swarmRadius)+1e-4)

		g := s.GalaxyBase(i)
		require.LessOrEqual(t, math32.Abs(g.Y), float32((galaxyMinRadius+galaxyRadiusVar)*galaxyFlatten)+1e-3)
		require.Greater(t, s.buf.Sizes[i], float32(0))
	}
	assert.Equal(t, s.tree, s.buf.Positions, "starts on the tree")
}

func TestSwarmBlendStep(t *testing.T) {
	s := NewSwarm(10, seeded(2), DefaultSwarmBlend, 1)
	before := s.buf.Position(3)
	target := s.GalaxyBase(3)
	s.Update(scene.KindTree, 0, 1.0/60)
	assert.Equal(t, before, s.buf.Position(3), "already at the tree target")

	s.Update(scene.KindFocus, 0, 1.0/60)
	moved := s.buf.Position(3)
	lerped := before.Add(target.Sub(before).MulScalar(DefaultSwarmBlend))
	assert.InDelta(t, 0, moved.DistanceTo(lerped), swarmDrift*1.5+1e-4)
}

func TestSwarmZeroDt(t *testing.T) {
	s := NewSwarm(100, seeded(3), DefaultSwarmBlend, 2)
	pos := append([]float32(nil), s.buf.Positions...)
	s.Update(scene.KindGalaxy, 5, 0)
	assert.Equal(t, pos, s.buf.Positions)
	assert.Zero(t, s.Yaw())
}

func TestSwarmYaw(t *testing.T) {
	s := NewSwarm(10, seeded(4), DefaultSwarmBlend, 1)
	s.Update(scene.KindTree, 0, 1.0/60)
	s.Update(scene.KindGalaxy, 0, 1.0/60)
	assert.InDelta(t, swarmYawTree+swarmYawGalaxy, s.Yaw(), 1e-7)
}

func TestSpiralExpansion(t *testing.T) {
	s := NewSpiral(DefaultSpiralCount, seeded(5), 1, 2)
	s.Update(scene.KindGalaxy, 0, 1.0/60, 0)
	for i := 0; i < s.buf.Len(); i++ {
		j := i * 3
		require.InDelta(t, s.base[j]*4, s.buf.Positions[j], 1e-4)
		require.InDelta(t, s.base[j+1]+math32.Sin(float32(i))*spiralBobHeight, s.buf.Positions[j+1], 1e-4)
	}
	assert.InDelta(t, 0.2, s.buf.Colors[0], 1e-6)
}

func TestSpiralSpeedFromBoost(t *testing.T) {
	s := NewSpiral(20, seeded(6), DefaultSpiralBlend, 1)
	s.Update(scene.KindTree, 0, 0.5, 1)
	assert.InDelta(t, (spiralBaseSpeed+spiralBoostSpeed)*0.5, s.Yaw(), 1e-6)
	s.Update(scene.KindTree, 0, 0, 1)
	assert.InDelta(t, (spiralBaseSpeed+spiralBoostSpeed)*0.5, s.Yaw(), 1e-6)
}

func TestDecayBoost(t *testing.T) {
	assert.InDelta(t, 0.49, DecayBoost(0.5), 1e-6)
	assert.Equal(t, float32(0), DecayBoost(0.005))
	assert.Equal(t, float32(0), DecayBoost(0))
}

func TestTrailParkedWhenInactive(t *testing.T) {
	tr := NewTrail(DefaultTrailCount, seeded(7))
	tr.Update(math32.Vec3(1, 2, 3), false, 1.0/60)
	assert.Zero(t, tr.Alive())
	for i := 0; i < tr.buf.Len(); i++ {
		require.Equal(t, float32(0), tr.buf.Sizes[i])
		require.Equal(t, Parked, tr.buf.Position(i))
	}
}

func TestTrailEmissionBudget(t *testing.T) {
	tr := NewTrail(DefaultTrailCount, seeded(8))
	head := math32.Vec3(0, 8, 0)
	tr.Update(head, true, 1.0/60)
	assert.Equal(t, EmitBudget, tr.Alive())
	assert.Equal(t, EmitBudget, tr.Spawned())

	for i := 0; i < EmitBudget; i++ {
		p := tr.buf.Position(i)
		require.Less(t, p.DistanceTo(head), float32(0.3), "spawned near the head")
		require.InDelta(t, trailSize, tr.buf.Sizes[i], 1e-6)
	}
}

func TestTrailSizesNeverNegative(t *testing.T) {
	tr := NewTrail(DefaultTrailCount, seeded(9))
	head := math32.Vec3(0, 0, 0)
	for tick := 0; tick < 300; tick++ {
		active := tick < 150
		tr.Update(head, active, 1.0/60)
		for i := 0; i < tr.buf.Len(); i++ {
			size := tr.buf.Sizes[i]
			require.GreaterOrEqual(t, size, float32(0))
			if tr.Life(i) <= 0 {
				require.Equal(t, float32(0), size)
				require.Equal(t, Parked, tr.buf.Position(i))
			}
		}
	}
	assert.Zero(t, tr.Alive(), "all slots die once emission stops")
}

func TestTrailExhaustion(t *testing.T) {
	tr := NewTrail(15, seeded(10))
	for tick := 0; tick < 5; tick++ {
		tr.Update(math32.Vector3{}, true, 1.0/60)
	}
	assert.LessOrEqual(t, tr.Alive(), 15)
}

func TestSnowfallWraps(t *testing.T) {
	s := NewSnowfall(DefaultSnowCount, seeded(12))
	s.buf.Positions[1] = snowBottom + 0.01
	s.Update(1, 1.0/60)
	assert.Equal(t, float32(snowTop), s.buf.Positions[1])

	y := s.buf.Positions[4]
	s.Update(2, 1.0/60)
	if y-s.Speed(1) >= snowBottom {
		assert.InDelta(t, y-s.Speed(1), s.buf.Positions[4], 1e-5)
	}
}

func TestSnowfallSwayBounded(t *testing.T) {
	s := NewSnowfall(50, seeded(13))
	before := append([]float32(nil), s.buf.Positions...)
	s.Update(0.5, 1.0/60)
	for i := 0; i < 50; i++ {
		j := i * 3
		require.LessOrEqual(t, math32.Abs(s.buf.Positions[j]-before[j]), float32(snowSway*2))
	}
	s.Update(0.7, 0)
}

func TestGemini(t *testing.T) {
	c := Gemini()
	assert.Equal(t, 10, c.Buffers().Len())
	assert.Len(t, c.Links(), 9)
	assert.Equal(t, math32.Vec3(-7.5, 25, -20), c.Buffers().Position(0))
	for _, l := range c.Links() {
		assert.Less(t, l.From, 10)
		assert.Less(t, l.To, 10)
	}
}
