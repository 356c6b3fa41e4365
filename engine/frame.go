package engine

import (
	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/camera"
	"github.com/lixenwraith/wishtree/particle"
	"github.com/lixenwraith/wishtree/pose"
	"github.com/lixenwraith/wishtree/scene"
	"github.com/lixenwraith/wishtree/wish"
)

// ContentOffset places content space inside world space
// Everything in a Frame is in content space except Stars, which is world space
var ContentOffset = math32.Vec3(0, -4, 0)

// Frame is the per-tick output for the renderer
// Slices and buffers are owned by the scene and valid until the next tick
type Frame struct {
	Tick    uint64
	Elapsed float32
	Paused  bool

	Mode  scene.Mode
	Wish  wish.Phase
	Boost float32

	// Photos are in the gallery group's frame, rotated by GalleryYaw
	Photos     []pose.EntityView
	GalleryYaw float32

	Swarm     *particle.Buffers
	SwarmYaw  float32
	Spiral    *particle.Buffers
	SpiralYaw float32
	Trail     *particle.Buffers
	Snow      *particle.Buffers
	Stars     *particle.Buffers
	Links     []particle.Link

	Head   math32.Vector3
	Topper pose.Pose
	Camera camera.View
}
