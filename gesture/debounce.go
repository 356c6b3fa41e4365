package gesture

import (
	"sync/atomic"

	"github.com/lixenwraith/wishtree/scene"
)

// DefaultThreshold is the run length a gesture must exceed to be stable
const DefaultThreshold = 5

// Debouncer tracks the run length of identical classifications
type Debouncer struct {
	threshold atomic.Int32
	last      Gesture
	count     int
}

// NewDebouncer creates a debouncer; threshold < 1 uses DefaultThreshold
func NewDebouncer(threshold int) *Debouncer {
	d := &Debouncer{}
	d.SetThreshold(threshold)
	return d
}

// SetThreshold changes the stability threshold; safe from any goroutine
func (d *Debouncer) SetThreshold(threshold int) {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	d.threshold.Store(int32(threshold))
}

// Observe classifies s and returns the current gesture and whether it is stable
// A nil sample means no hand: the run is held and nothing is reported stable
func (d *Debouncer) Observe(s *Sample) (Gesture, bool) {
	if s == nil {
		return d.last, false
	}
	g := Classify(s)
	if g != d.last {
		d.last = g
		d.count = 0
	}
	d.count++
	return g, d.count > int(d.threshold.Load())
}

// Last returns the most recent classification and its run length
func (d *Debouncer) Last() (Gesture, int) {
	return d.last, d.count
}

// Policy maps a stable gesture to a requested mode
// Fist asks for TREE from anywhere else, OpenPalm asks for GALAXY only from TREE
func Policy(g Gesture, current scene.ModeKind) (scene.ModeKind, bool) {
	switch g {
	case Fist:
		if current != scene.KindTree {
			return scene.KindTree, true
		}
	case OpenPalm:
		if current == scene.KindTree {
			return scene.KindGalaxy, true
		}
	}
	return 0, false
}

// ModeStore is the slice of the scene store the classifier needs
type ModeStore interface {
	Mode() scene.Mode
	SetMode(scene.Mode)
}

// Classifier feeds samples through a Debouncer and applies Policy to a store
type Classifier struct {
	deb         *Debouncer
	store       ModeStore
	transitions int
}

// NewClassifier creates a classifier writing to store
func NewClassifier(store ModeStore, threshold int) *Classifier {
	return &Classifier{deb: NewDebouncer(threshold), store: store}
}

// Debouncer exposes the underlying debouncer
func (c *Classifier) Debouncer() *Debouncer {
	return c.deb
}

// Observe processes one sample (nil for no hand) and reports whether a mode change was requested
func (c *Classifier) Observe(s *Sample) bool {
	g, stable := c.deb.Observe(s)
	if !stable {
		return false
	}
	next, ok := Policy(g, c.store.Mode().Kind())
	if !ok {
		return false
	}
	switch next {
	case scene.KindTree:
		c.store.SetMode(scene.Tree())
	case scene.KindGalaxy:
		c.store.SetMode(scene.Galaxy())
	default:
		return false
	}
	c.transitions++
	return true
}

// Transitions returns the number of mode changes requested so far
func (c *Classifier) Transitions() int {
	return c.transitions
}
