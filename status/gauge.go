package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 metric stored as raw bits
// Zero value reads as 0.0
type Gauge struct {
	bits atomic.Uint64
}

// Set stores val
func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Add adds delta and returns the new value
func (g *Gauge) Add(delta float64) float64 {
	for {
		old := g.bits.Load()
		next := math.Float64frombits(old) + delta
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// maxLabelLen bounds label metrics so a status line stays one row wide
const maxLabelLen = 24

// Label is a short string metric (phase names, mode names)
type Label struct {
	ptr atomic.Pointer[string]
}

// Set stores val, truncated to maxLabelLen bytes
func (l *Label) Set(val string) {
	if len(val) > maxLabelLen {
		val = val[:maxLabelLen]
	}
	l.ptr.Store(&val)
}

// Get returns the current label, empty if never set
func (l *Label) Get() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
