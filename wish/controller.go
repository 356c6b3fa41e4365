// Package wish drives the scripted wish sequence: a head point launches to the apex,
// spirals down around the tree and then completes the wish in the store
package wish

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/particle"
)

// Phase is the controller state
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseLaunch
	PhaseDescend
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLaunch:
		return "launch"
	case PhaseDescend:
		return "descend"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Sequence timing and geometry, seconds and content units
const (
	LaunchDuration  = 2.0
	DescendDuration = 3.5

	treeHeight     = 14
	treeRadius     = 5.5
	apexHeight     = treeHeight/2 + 1
	descendDrop    = treeHeight + 2
	revolutions    = 5
	minRadius      = 0.5
	boostGain      = 1.5
	maxSpiralBoost = 1
)

var (
	LaunchStart = math32.Vec3(5, -5, 15)
	Apex        = math32.Vec3(0, apexHeight, 0)
)

// Store is the part of the scene store the controller drives
type Store interface {
	WishActive() bool
	CompleteWish()
	SetSpiralBoost(float32)
}

// Controller owns the head position; the trail emitter only reads it
type Controller struct {
	store  Store
	phase  Phase
	anchor float32
	head   math32.Vector3

	completed int
	onPhase   func(from, to Phase)
}

// NewController creates an idle controller with the head parked
func NewController(store Store) *Controller {
	return &Controller{store: store, head: particle.Parked}
}

// OnPhaseChange registers fn to run on every phase transition, on the tick goroutine
func (c *Controller) OnPhaseChange(fn func(from, to Phase)) {
	c.onPhase = fn
}

func (c *Controller) enter(p Phase, elapsed float32) {
	from := c.phase
	c.phase = p
	c.anchor = elapsed
	if p == PhaseIdle {
		c.head = particle.Parked
	}
	if c.onPhase != nil && from != p {
		c.onPhase(from, p)
	}
}

// Update advances the sequence to elapsed seconds of scene time
// When advance is false nothing moves
func (c *Controller) Update(elapsed float32, advance bool) {
	if !advance {
		return
	}
	if !c.store.WishActive() {
		if c.phase != PhaseIdle {
			c.enter(PhaseIdle, elapsed)
		}
		return
	}

	switch c.phase {
	case PhaseIdle:
		c.enter(PhaseLaunch, elapsed)
		c.head = LaunchStart

	case PhaseLaunch:
		p := progress(elapsed-c.anchor, LaunchDuration)
		c.head = LaunchHead(p)
		if p >= 1 {
			c.enter(PhaseDescend, elapsed)
		}

	case PhaseDescend:
		p := progress(elapsed-c.anchor, DescendDuration)
		c.store.SetSpiralBoost(min(p*boostGain, maxSpiralBoost))
		c.head = DescendHead(p)
		if p >= 1 {
			c.store.CompleteWish()
			c.completed++
			c.enter(PhaseIdle, elapsed)
		}
	}
}

// LaunchHead is the head position at launch progress p, eased by √p
func LaunchHead(p float32) math32.Vector3 {
	e := math32.Sqrt(p)
	return LaunchStart.Add(Apex.Sub(LaunchStart).MulScalar(e))
}

// DescendHead is the head position at descend progress p, following the tree profile
func DescendHead(p float32) math32.Vector3 {
	y := apexHeight - p*descendDrop
	hNorm := 1 - p
	r := treeRadius*math32.Pow(1-hNorm, 1.2)*(1-hNorm) + minRadius
	theta := p * 2 * math32.Pi * revolutions
	return math32.Vec3(r*math32.Cos(theta), y, r*math32.Sin(theta))
}

func progress(elapsed, duration float32) float32 {
	p := elapsed / duration
	switch {
	case !(p > 0):
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Phase returns the current phase
func (c *Controller) Phase() Phase { return c.phase }

// Head returns the head position, particle.Parked while idle
func (c *Controller) Head() math32.Vector3 { return c.head }

// Emitting reports whether the trail should spawn at the head
func (c *Controller) Emitting() bool { return c.phase != PhaseIdle }

// Completed returns the number of wishes run to completion
func (c *Controller) Completed() int { return c.completed }
