package pose

import (
	"math/rand"

	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/camera"
)

// Photo tree layout
const (
	TreeHeight     = 12
	TreeBaseRadius = 5
	TreeScale      = 0.8
	goldenRatio    = 1.618

	GalaxyScale = 1.0

	FocusDistance = 10
	FocusScale    = 2.0
)

// TreeTarget places photo index of total on a rising spiral facing outward
func TreeTarget(index, total int) Pose {
	if total < 1 {
		total = 1
	}
	const h = TreeHeight
	y := (float32(index)+0.5)/float32(total)*(h*0.7) - h/2 + 1
	hNorm := (y + h/2) / h
	r := TreeBaseRadius*math32.Pow(1-hNorm, 0.8) + 0.5
	theta := float32(index) * (2 * math32.Pi / goldenRatio)

	return Pose{
		Position:    math32.Vec3(r*math32.Cos(theta), y, r*math32.Sin(theta)),
		Orientation: math32.NewQuatEuler(math32.Vec3(0, -theta-math32.Pi/2, 0)),
		Scale:       TreeScale,
	}
}

// GalaxyAnchor draws the fixed shell point and tilt for one photo
func GalaxyAnchor(rng *rand.Rand) Pose {
	r := 10 + rng.Float32()*10
	theta := rng.Float32() * 2 * math32.Pi
	phi := rng.Float32() * math32.Pi
	y := (rng.Float32() - 0.5) * 10
	tilt := math32.Vec3(rng.Float32(), rng.Float32(), rng.Float32())

	return Pose{
		Position: math32.Vec3(
			r*math32.Sin(phi)*math32.Cos(theta),
			y,
			r*math32.Sin(phi)*math32.Sin(theta),
		),
		Orientation: math32.NewQuatEuler(tilt),
		Scale:       GalaxyScale,
	}
}

// GalaxyTarget bobs the anchor vertically with elapsed seconds
func GalaxyTarget(anchor Pose, elapsed float32, index int) Pose {
	out := anchor
	out.Position.Y += math32.Sin(elapsed+float32(index)) * 0.05
	out.Scale = GalaxyScale
	return out
}

// FocusTarget puts a photo FocusDistance in front of the viewer, facing it
// groupYaw is the gallery group rotation; the result is in the group's local frame
func FocusTarget(view camera.View, groupYaw float32) Pose {
	world := view.Position.Add(view.Direction.MulScalar(FocusDistance))

	// Front face (+Z) turned toward the camera
	toCam := view.Direction.MulScalar(-1)
	yaw := math32.Atan2(toCam.X, toCam.Z)
	pitch := -math32.Asin(clampUnit(toCam.Y))
	q := YawQuat(yaw)
	q = q.Mul(math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), pitch))
	group := YawQuat(-groupYaw)

	return Pose{
		Position:    RotateY(world, -groupYaw),
		Orientation: group.Mul(q),
		Scale:       FocusScale,
	}
}

func clampUnit(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
