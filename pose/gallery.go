package pose

import (
	"math/rand"

	"github.com/lixenwraith/wishtree/camera"
	"github.com/lixenwraith/wishtree/scene"
)

// GalleryYawRate is the group spin in radians per second while in TREE
const GalleryYawRate = 0.05

// EntityView is one photo frame as the renderer sees it, in the gallery group's frame
type EntityView struct {
	ID    scene.PhotoID
	Index int
	Pose  Pose
}

type galleryEntry struct {
	id     scene.PhotoID
	slot   int
	anchor Pose
}

// Gallery keeps one pose record per photo, keyed by id, and moves them between layouts
type Gallery struct {
	arena   *Arena
	entries []galleryEntry
	byID    map[scene.PhotoID]galleryEntry

	rng   *rand.Rand
	blend float32
	yaw   float32
}

// NewGallery creates an empty gallery drawing galaxy anchors from rng
func NewGallery(rng *rand.Rand, blend float32) *Gallery {
	if blend <= 0 {
		blend = DefaultBlend
	}
	return &Gallery{
		arena: NewArena(scene.MaxPhotos),
		byID:  make(map[scene.PhotoID]galleryEntry, scene.MaxPhotos),
		rng:   rng,
		blend: blend,
	}
}

// SetBlend changes the per-tick factor
func (g *Gallery) SetBlend(f float32) {
	if f > 0 {
		g.blend = f
	}
}

// Sync matches records to photos: new ids get a slot and anchor, missing ids release theirs
// Existing records keep their current pose
func (g *Gallery) Sync(photos []scene.Photo) {
	keep := make(map[scene.PhotoID]struct{}, len(photos))
	next := make([]galleryEntry, 0, len(photos))
	for _, p := range photos {
		keep[p.ID] = struct{}{}
		e, ok := g.byID[p.ID]
		if !ok {
			e = galleryEntry{
				id:     p.ID,
				slot:   g.arena.Alloc(Identity()),
				anchor: GalaxyAnchor(g.rng),
			}
			g.byID[p.ID] = e
		}
		next = append(next, e)
	}
	for id, e := range g.byID {
		if _, ok := keep[id]; !ok {
			g.arena.Release(e.slot)
			delete(g.byID, id)
		}
	}
	g.entries = next
}

// Update recomputes every target for mode and blends when advance is set
func (g *Gallery) Update(mode scene.Mode, elapsed float32, view camera.View, advance bool) {
	if mode.Kind() == scene.KindTree {
		g.yaw = elapsed * GalleryYawRate
	}

	total := len(g.entries)
	for i, e := range g.entries {
		rec := g.arena.At(e.slot)
		switch mode.Kind() {
		case scene.KindTree:
			rec.Target = TreeTarget(i, total)
		case scene.KindGalaxy:
			rec.Target = GalaxyTarget(e.anchor, elapsed, i)
		case scene.KindFocus:
			if mode.IsFocusOn(e.id) {
				rec.Target = FocusTarget(view, g.yaw)
			} else {
				rec.Target = GalaxyTarget(e.anchor, elapsed, i)
			}
		}
		if advance {
			rec.Step(g.blend)
		}
	}
}

// Yaw returns the gallery group rotation about +Y
func (g *Gallery) Yaw() float32 {
	return g.yaw
}

// Len returns the number of tracked photos
func (g *Gallery) Len() int {
	return len(g.entries)
}

// Record returns the record for id
func (g *Gallery) Record(id scene.PhotoID) (*Record, bool) {
	e, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.arena.At(e.slot), true
}

// Views appends the current pose of every photo in list order to dst
func (g *Gallery) Views(dst []EntityView) []EntityView {
	for i, e := range g.entries {
		dst = append(dst, EntityView{ID: e.id, Index: i, Pose: g.arena.At(e.slot).Current})
	}
	return dst
}
