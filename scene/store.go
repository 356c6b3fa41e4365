// Package scene owns the scene state: display mode, photo list, wish flag and spiral boost
// Every consumer holds the same *Store and mutates it only through its methods
package scene

import (
	"math"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/lixenwraith/wishtree/clock"
)

// Store is the scene state owner
// Invalid requests are ignored; no method blocks beyond the internal lock
type Store struct {
	mu sync.RWMutex

	mode        Mode
	photos      []Photo
	wishActive  bool
	spiralBoost float32

	clk    clock.Provider
	lastID PhotoID
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source for photo ids
func WithClock(p clock.Provider) Option {
	return func(s *Store) { s.clk = p }
}

// NewStore creates a store in TREE mode with no photos
func NewStore(opts ...Option) *Store {
	s := &Store{
		mode:   Tree(),
		photos: make([]Photo, 0, MaxPhotos),
		clk:    clock.SystemProvider{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the current mode
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Photos returns a copy of the photo list, most recent first
func (s *Store) Photos() []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

// WishActive reports whether a wish sequence is running
func (s *Store) WishActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishActive
}

// SpiralBoost returns the boost in [0,1]
func (s *Store) SpiralBoost() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spiralBoost
}

// Snapshot returns a deep copy of the state; image buffers are not shared
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Mode:        s.mode,
		WishActive:  s.wishActive,
		SpiralBoost: s.spiralBoost,
	}
	if err := copier.CopyWithOption(&st.Photos, &s.photos, copier.Option{DeepCopy: true}); err != nil {
		// Fallback keeps the snapshot usable; thumbnails become shared
		st.Photos = make([]Photo, len(s.photos))
		copy(st.Photos, s.photos)
	}
	return st
}

// SetMode switches mode; Focus on an unknown id is ignored
func (s *Store) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(m)
}

func (s *Store) setModeLocked(m Mode) {
	switch m.kind {
	case KindTree, KindGalaxy:
		s.mode = Mode{kind: m.kind}
	case KindFocus:
		if s.indexLocked(m.focus) < 0 {
			return
		}
		s.mode = m
	}
}

// ToggleMode cycles TREE to GALAXY, GALAXY to TREE, FOCUS to GALAXY
func (s *Store) ToggleMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode.kind {
	case KindTree:
		s.mode = Galaxy()
	case KindGalaxy:
		s.mode = Tree()
	case KindFocus:
		s.mode = Galaxy()
	}
}

// SetFocusedEntity focuses id when ok; clearing focus (ok=false) while focused returns to GALAXY
func (s *Store) SetFocusedEntity(id PhotoID, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok {
		if s.mode.kind == KindFocus {
			s.mode = Galaxy()
		}
		return
	}
	s.setModeLocked(Focus(id))
}

// SelectPhoto handles a click on a photo: the focused photo releases focus, any other is focused
func (s *Store) SelectPhoto(id PhotoID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode.IsFocusOn(id) {
		s.mode = Galaxy()
		return
	}
	s.setModeLocked(Focus(id))
}

// UploadPhoto prepends a photo for ref and evicts past MaxPhotos
// Evicting the focused photo drops the scene back to GALAXY
func (s *Store) UploadPhoto(ref ImageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := PhotoID(s.clk.Now().UnixMilli())
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	next := make([]Photo, 0, MaxPhotos)
	next = append(next, Photo{ID: id, Image: ref, Title: DefaultTitle})
	next = append(next, s.photos...)
	if len(next) > MaxPhotos {
		next = next[:MaxPhotos]
	}
	s.photos = next

	if fid, ok := s.mode.Focused(); ok && s.indexLocked(fid) < 0 {
		s.mode = Galaxy()
	}
}

// TriggerWish starts a wish; no-op while one is active
func (s *Store) TriggerWish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wishActive {
		return
	}
	s.wishActive = true
	s.spiralBoost = 0
}

// CompleteWish clears the active flag
func (s *Store) CompleteWish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishActive = false
}

// SetSpiralBoost stores v clamped to [0,1]; NaN stores 0
func (s *Store) SetSpiralBoost(v float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spiralBoost = clampUnit(v)
}

func clampUnit(v float32) float32 {
	switch {
	case math.IsNaN(float64(v)), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// indexLocked returns the list index of id or -1
func (s *Store) indexLocked(id PhotoID) int {
	for i := range s.photos {
		if s.photos[i].ID == id {
			return i
		}
	}
	return -1
}
