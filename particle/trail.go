package particle

import (
	"math/rand"

	"cogentcore.org/core/math32"
)

// Trail tuning
const (
	DefaultTrailCount = 600
	// EmitBudget caps respawns per tick
	EmitBudget = 10

	trailSpread  = 0.3
	trailGravity = 0.005
	trailDrag    = 0.96
	trailSize    = 0.8
	lifeDecayMin = 0.02
	lifeDecayVar = 0.03
)

// Parked is where dead trail slots and the idle head sit
var Parked = math32.Vec3(0, -9999, 0)

// Trail is the emitter following the wish head; slots are reused as they die
type Trail struct {
	buf  Buffers
	life []float32
	vel  []math32.Vector3
	rng  *rand.Rand

	alive   int
	spawned int
}

// NewTrail creates n parked slots
func NewTrail(n int, rng *rand.Rand) *Trail {
	t := &Trail{
		buf:  NewBuffers(n),
		life: make([]float32, n),
		vel:  make([]math32.Vector3, n),
		rng:  rng,
	}
	for i := 0; i < n; i++ {
		t.park(i)
	}
	return t
}

func (t *Trail) park(i int) {
	t.buf.SetPosition(i, Parked)
	t.buf.SetColor(i, 0, 0, 0)
	t.buf.Sizes[i] = 0
}

// Update ages every slot, respawns dead ones at head while active, and integrates the living
// Slots are visited in order so the emission budget goes to the lowest dead indices; dt <= 0 is a no-op
func (t *Trail) Update(head math32.Vector3, active bool, dt float32) {
	if dt <= 0 {
		return
	}
	emitted, alive := 0, 0
	for i := range t.life {
		t.life[i] -= lifeDecayMin + t.rng.Float32()*lifeDecayVar

		if t.life[i] <= 0 {
			if !active || emitted >= EmitBudget {
				t.park(i)
				continue
			}
			t.life[i] = 1
			t.buf.SetPosition(i, head)
			t.vel[i] = math32.Vec3(
				(t.rng.Float32()-0.5)*trailSpread,
				(t.rng.Float32()-0.5)*trailSpread,
				(t.rng.Float32()-0.5)*trailSpread,
			)
			emitted++
		}

		v := t.vel[i]
		v.Y -= trailGravity
		v = v.MulScalar(trailDrag)
		t.vel[i] = v
		t.buf.SetPosition(i, t.buf.Position(i).Add(v))

		life := t.life[i]
		t.buf.Sizes[i] = life * trailSize
		t.buf.SetColor(i, life, 0.8*life, 0.2*life)
		alive++
	}
	t.alive = alive
	t.spawned += emitted
}

// Alive returns the live slot count after the last Update
func (t *Trail) Alive() int { return t.alive }

// Spawned returns the total number of respawns
func (t *Trail) Spawned() int { return t.spawned }

// Life returns the remaining life of slot i
func (t *Trail) Life(i int) float32 { return t.life[i] }

// Buffers returns the render buffers
func (t *Trail) Buffers() *Buffers { return &t.buf }
