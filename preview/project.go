package preview

import (
	"cogentcore.org/core/math32"

	"github.com/lixenwraith/wishtree/camera"
)

const (
	// near clips points behind or too close to the camera
	near = 0.5
	// cellAspect is the height/width ratio of a terminal cell
	cellAspect = 2.0
	// focal scales view-space slope to half the screen height
	focal = 1.6
)

// Projector maps content-space points onto terminal cells
type Projector struct {
	w, h               int
	pos                math32.Vector3
	right, up, forward math32.Vector3
}

// NewProjector builds a pinhole projection for view on a w×h grid
func NewProjector(view camera.View, w, h int) Projector {
	fwd := view.Direction.Normal()
	right := fwd.Cross(math32.Vec3(0, 1, 0)).Normal()
	if right.Length() == 0 {
		right = math32.Vec3(1, 0, 0)
	}
	up := right.Cross(fwd)
	return Projector{w: w, h: h, pos: view.Position, right: right, up: up, forward: fwd}
}

// Project returns the cell for p and its view depth; ok is false when off-screen or clipped
func (pr Projector) Project(p math32.Vector3) (x, y int, depth float32, ok bool) {
	r := p.Sub(pr.pos)
	depth = r.Dot(pr.forward)
	if !(depth > near) {
		return 0, 0, depth, false
	}
	half := float32(pr.h) / 2
	sx := float32(pr.w)/2 + r.Dot(pr.right)/depth*focal*half*cellAspect
	sy := half - r.Dot(pr.up)/depth*focal*half
	x, y = int(math32.Floor(sx)), int(math32.Floor(sy))
	if x < 0 || y < 0 || x >= pr.w || y >= pr.h {
		return x, y, depth, false
	}
	return x, y, depth, true
}
