// Package pose blends per-entity transforms toward mode-dependent targets
package pose

import (
	"cogentcore.org/core/math32"
)

// DefaultBlend is the per-tick factor for photo frames
const DefaultBlend = 0.08

// Pose is a placed, oriented and uniformly scaled transform
type Pose struct {
	Position    math32.Vector3
	Orientation math32.Quat
	Scale       float32
}

// Identity is the origin pose at unit scale
func Identity() Pose {
	return Pose{Orientation: math32.Quat{W: 1}, Scale: 1}
}

// Record persists an entity's current pose across ticks alongside its latest target
type Record struct {
	Current Pose
	Target  Pose
}

// Step blends Current toward Target
func (r *Record) Step(factor float32) {
	r.Current = Blend(r.Current, r.Target, factor)
}

// Blend moves current toward target by factor: lerp for position and scale, slerp for orientation
// factor is clamped to [0,1]; NaN acts as 0
func Blend(current, target Pose, factor float32) Pose {
	switch {
	case !(factor > 0):
		return current
	case factor >= 1:
		return target
	}

	out := Pose{
		Position: LerpVec(current.Position, target.Position, factor),
		Scale:    math32.Lerp(current.Scale, target.Scale, factor),
	}
	q := current.Orientation
	q.Slerp(target.Orientation, factor)
	if quatIsNaN(q) {
		q = current.Orientation
	}
	out.Orientation = q
	return out
}

// LerpVec returns a + (b-a)·f
func LerpVec(a, b math32.Vector3, f float32) math32.Vector3 {
	return a.Add(b.Sub(a).MulScalar(f))
}

func quatIsNaN(q math32.Quat) bool {
	return math32.IsNaN(q.X) || math32.IsNaN(q.Y) || math32.IsNaN(q.Z) || math32.IsNaN(q.W)
}

// YawQuat is a rotation of angle radians about +Y
func YawQuat(angle float32) math32.Quat {
	return math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), angle)
}

// RotateY rotates v about +Y by angle radians
func RotateY(v math32.Vector3, angle float32) math32.Vector3 {
	s, c := math32.Sincos(angle)
	return math32.Vec3(v.X*c+v.Z*s, v.Y, -v.X*s+v.Z*c)
}
