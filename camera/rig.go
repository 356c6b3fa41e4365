// Package camera models the orbiting viewer in content space
package camera

import (
	"cogentcore.org/core/math32"
	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/wishtree/scene"
)

// Orbit limits and defaults, content space
const (
	MinDistance     = 10
	MaxDistance     = 40
	MaxPolar        = math32.Pi / 1.8
	minPolar        = 0.01
	AutoRotateSpeed = 0.5
	// autoRotateRate is radians per second at AutoRotateSpeed 1
	autoRotateRate = 2 * math32.Pi / 60

	springFrequency = 4.0
	springDamping   = 1.0
)

var (
	DefaultPosition = math32.Vec3(0, 6, 25)
	DefaultTarget   = math32.Vec3(0, 4, 0)
)

// View is what the FOCUS layout needs from the camera
type View struct {
	Position  math32.Vector3
	Direction math32.Vector3
}

// axis is one orbit coordinate whose user velocity decays through a critically damped spring
type axis struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newAxis(fps int) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)}
}

// step returns the displacement for this tick and decays velocity toward 0
func (a *axis) step() float64 {
	d := a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	return d
}

func (a *axis) stop() {
	a.velocity, a.accel = 0, 0
}

// Rig is an orbit camera around a fixed target
type Rig struct {
	target   math32.Vector3
	yaw      float32
	polar    float32
	distance float32

	yawAxis, polarAxis, zoomAxis axis

	enabled    bool
	autoRotate bool
}

// NewRig creates a rig at DefaultPosition looking at DefaultTarget, with springs tuned for fps
func NewRig(fps int) *Rig {
	if fps < 1 {
		fps = 60
	}
	r := &Rig{
		target:    DefaultTarget,
		yawAxis:   newAxis(fps),
		polarAxis: newAxis(fps),
		zoomAxis:  newAxis(fps),
		enabled:   true,
	}
	off := DefaultPosition.Sub(DefaultTarget)
	r.distance = off.Length()
	r.yaw = math32.Atan2(off.X, off.Z)
	r.polar = math32.Acos(off.Y / r.distance)
	return r
}

// Impulse adds user velocity in radians (yaw, polar) and units (zoom) per tick
// Ignored while controls are disabled
func (r *Rig) Impulse(yaw, polar, zoom float32) {
	if !r.enabled {
		return
	}
	r.yawAxis.velocity += float64(yaw)
	r.polarAxis.velocity += float64(polar)
	r.zoomAxis.velocity += float64(zoom)
}

// Update applies mode-dependent control state, auto-rotation and damped user motion
// dt <= 0 changes nothing but control state
func (r *Rig) Update(mode scene.ModeKind, dt float32) {
	switch mode {
	case scene.KindTree:
		r.enabled, r.autoRotate = true, true
	case scene.KindGalaxy:
		r.enabled, r.autoRotate = true, false
	case scene.KindFocus:
		r.enabled, r.autoRotate = false, false
	}
	if !r.enabled {
		r.yawAxis.stop()
		r.polarAxis.stop()
		r.zoomAxis.stop()
	}
	if dt <= 0 {
		return
	}

	if r.autoRotate {
		r.yaw -= autoRotateRate * AutoRotateSpeed * dt
	}
	r.yaw += float32(r.yawAxis.step())
	r.polar += float32(r.polarAxis.step())
	r.distance += float32(r.zoomAxis.step())

	r.polar = clamp(r.polar, minPolar, MaxPolar)
	r.distance = clamp(r.distance, MinDistance, MaxDistance)
}

// Enabled reports whether user controls are active
func (r *Rig) Enabled() bool { return r.enabled }

// Distance returns the orbit radius
func (r *Rig) Distance() float32 { return r.distance }

// Yaw returns the azimuth around the vertical axis
func (r *Rig) Yaw() float32 { return r.yaw }

// Polar returns the angle from the vertical axis
func (r *Rig) Polar() float32 { return r.polar }

// Position returns the camera position
func (r *Rig) Position() math32.Vector3 {
	s := math32.Sin(r.polar)
	off := math32.Vec3(
		r.distance*s*math32.Sin(r.yaw),
		r.distance*math32.Cos(r.polar),
		r.distance*s*math32.Cos(r.yaw),
	)
	return r.target.Add(off)
}

// View returns the position and unit look direction
func (r *Rig) View() View {
	pos := r.Position()
	return View{Position: pos, Direction: r.target.Sub(pos).Normal()}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
