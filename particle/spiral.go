package particle

import (
	"math/rand"

	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/scene"
)

// Spiral layout and motion
const (
	DefaultSpiralCount = 800
	DefaultSpiralBlend = 0.02

	spiralHeight     = 14
	spiralRadius     = 7
	spiralTurns      = 3
	spiralJitter     = 0.2
	spiralBaseSpeed  = 0.3
	spiralBoostSpeed = 5
	spiralSize       = 0.15
	spiralBobHeight  = 2

	// BoostDecay is subtracted from a positive boost every tick
	BoostDecay = 0.01
)

// Spiral is the helix of points orbiting the tree; its spin is driven by the spiral boost
type Spiral struct {
	buf  Buffers
	base []float32

	yaw     float32
	blend   float32
	workers int
}

// NewSpiral builds the helix with jitter from rng
func NewSpiral(n int, rng *rand.Rand, blend float32, workers int) *Spiral {
	if blend <= 0 {
		blend = DefaultSpiralBlend
	}
	s := &Spiral{
		buf:     NewBuffers(n),
		base:    make([]float32, n*3),
		blend:   blend,
		workers: workers,
	}
	for i := 0; i < n; i++ {
		j := i * 3
		t := float32(i) / float32(n)
		y := t*spiralHeight - spiralHeight/2
		r := spiralRadius * (1 - (y+spiralHeight/2)/spiralHeight*0.5)
		theta := t * math32.Pi * 2 * spiralTurns

		s.base[j] = r*math32.Cos(theta) + (rng.Float32()-0.5)*spiralJitter
		s.base[j+1] = y + (rng.Float32()-0.5)*spiralJitter
		s.base[j+2] = r*math32.Sin(theta) + (rng.Float32()-0.5)*spiralJitter
		s.buf.Sizes[i] = spiralSize
	}
	copy(s.buf.Positions, s.base)
	s.setOpacity(scene.KindTree)
	return s
}

// SetBlend changes the per-tick factor
func (s *Spiral) SetBlend(f float32) {
	if f > 0 {
		s.blend = f
	}
}

// Speed returns the spin rate in radians per second for boost
func Speed(boost float32) float32 {
	return spiralBaseSpeed + boost*spiralBoostSpeed
}

// DecayBoost returns the boost after one tick of decay
func DecayBoost(boost float32) float32 {
	if boost <= 0 {
		return boost
	}
	return max(0, boost-BoostDecay)
}

// Update expands or contracts the helix for kind and spins it at Speed(boost); dt <= 0 is a no-op
func (s *Spiral) Update(kind scene.ModeKind, elapsed, dt, boost float32) {
	if dt <= 0 {
		return
	}
	var expansion float32
	bob := false
	switch kind {
	case scene.KindTree:
		expansion = 1
	case scene.KindGalaxy, scene.KindFocus:
		expansion = 4
		bob = true
	default:
		return
	}

	pos, base, f := s.buf.Positions, s.base, s.blend
	ParallelFor(s.buf.Len(), s.workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			j := i * 3
			tx, ty, tz := base[j]*expansion, base[j+1], base[j+2]*expansion
			if bob {
				ty += math32.Sin(elapsed+float32(i)) * spiralBobHeight
			}
			pos[j] += (tx - pos[j]) * f
			pos[j+1] += (ty - pos[j+1]) * f
			pos[j+2] += (tz - pos[j+2]) * f
		}
	})

	s.yaw += Speed(boost) * dt
	s.setOpacity(kind)
}

// setOpacity folds the mode opacity into the additive colors
func (s *Spiral) setOpacity(kind scene.ModeKind) {
	a := float32(0.2)
	if kind == scene.KindTree {
		a = 0.6
	}
	for i := 0; i < s.buf.Len(); i++ {
		s.buf.SetColor(i, a, a, a)
	}
}

// Buffers returns the render buffers
func (s *Spiral) Buffers() *Buffers { return &s.buf }

// Yaw returns the group rotation about +Y
func (s *Spiral) Yaw() float32 { return s.yaw }
