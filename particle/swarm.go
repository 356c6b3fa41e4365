package particle

import (
	"math/rand"

	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/scene"
)

// Swarm layout and motion
const (
	DefaultSwarmCount = 4000
	DefaultSwarmBlend = 0.03

	swarmHeight     = 14
	swarmRadius     = 5.5
	swarmDrift      = 0.02
	swarmYawTree    = 0.002
	swarmYawGalaxy  = 0.0005
	colorPink       = 0xB03060
	colorBlueWhite  = 0x507090
	galaxyMinRadius = 25
	galaxyRadiusVar = 15
	galaxyFlatten   = 0.4
)

// Swarm is the primary point cloud: a filled cone in TREE, a flattened shell otherwise
type Swarm struct {
	buf    Buffers
	tree   []float32
	galaxy []float32

	yaw     float32
	blend   float32
	workers int
}

// NewSwarm precomputes both layouts, colors and sizes from rng; points start on the tree layout
func NewSwarm(n int, rng *rand.Rand, blend float32, workers int) *Swarm {
	if blend <= 0 {
		blend = DefaultSwarmBlend
	}
	s := &Swarm{
		buf:     NewBuffers(n),
		tree:    make([]float32, n*3),
		galaxy:  make([]float32, n*3),
		blend:   blend,
		workers: workers,
	}
	pink, blue := hexRGB(colorPink), hexRGB(colorBlueWhite)

	for i := 0; i < n; i++ {
		j := i * 3

		y := rng.Float32() * swarmHeight
		hNorm := y / swarmHeight
		r := swarmRadius * math32.Pow(1-hNorm, 1.2)
		theta := rng.Float32() * 2 * math32.Pi
		dist := math32.Sqrt(rng.Float32()) * r
		offset := y * 0.8
		s.tree[j] = dist * math32.Cos(theta+offset)
		s.tree[j+1] = y - swarmHeight/2
		s.tree[j+2] = dist * math32.Sin(theta+offset)

		gr := galaxyMinRadius + rng.Float32()*galaxyRadiusVar
		gTheta := rng.Float32() * 2 * math32.Pi
		gPhi := math32.Acos(rng.Float32()*2 - 1)
		s.galaxy[j] = gr * math32.Sin(gPhi) * math32.Cos(gTheta)
		s.galaxy[j+1] = gr * math32.Sin(gPhi) * math32.Sin(gTheta) * galaxyFlatten
		s.galaxy[j+2] = gr * math32.Cos(gPhi)

		brightness := 0.9 - hNorm*0.5
		c := blue
		if rng.Float32() > 0.5 {
			c = pink
		}
		s.buf.SetColor(i, c.r*brightness, c.g*brightness, c.b*brightness)
		s.buf.Sizes[i] = (rng.Float32()*0.15 + 0.05) * (1 - hNorm*0.3)
	}
	copy(s.buf.Positions, s.tree)
	return s
}

// SetBlend changes the per-tick factor
func (s *Swarm) SetBlend(f float32) {
	if f > 0 {
		s.blend = f
	}
}

// Update blends every point toward the layout for kind and spins the group
// Outside TREE a low-frequency flow field is added; dt <= 0 is a no-op
func (s *Swarm) Update(kind scene.ModeKind, elapsed, dt float32) {
	if dt <= 0 {
		return
	}
	var base []float32
	drift := false
	switch kind {
	case scene.KindTree:
		base = s.tree
		s.yaw += swarmYawTree
	case scene.KindGalaxy, scene.KindFocus:
		base = s.galaxy
		drift = true
		s.yaw += swarmYawGalaxy
	default:
		return
	}

	pos, f, t := s.buf.Positions, s.blend, elapsed
	ParallelFor(s.buf.Len(), s.workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			j := i * 3
			pos[j] += (base[j] - pos[j]) * f
			pos[j+1] += (base[j+1] - pos[j+1]) * f
			pos[j+2] += (base[j+2] - pos[j+2]) * f
			if drift {
				x, y := pos[j], pos[j+1]
				pos[j] += math32.Sin(t*0.5+y*0.1) * swarmDrift
				pos[j+1] += math32.Cos(t*0.3+x*0.1) * swarmDrift * 0.5
				pos[j+2] += math32.Sin(t*0.4+y*0.1) * swarmDrift
			}
		}
	})
}

// Buffers returns the render buffers
func (s *Swarm) Buffers() *Buffers { return &s.buf }

// Yaw returns the group rotation about +Y
func (s *Swarm) Yaw() float32 { return s.yaw }

// TreeBase returns the tree layout point i
func (s *Swarm) TreeBase(i int) math32.Vector3 {
	j := i * 3
	return math32.Vec3(s.tree[j], s.tree[j+1], s.tree[j+2])
}

// GalaxyBase returns the galaxy layout point i
func (s *Swarm) GalaxyBase(i int) math32.Vector3 {
	j := i * 3
	return math32.Vec3(s.galaxy[j], s.galaxy[j+1], s.galaxy[j+2])
}
