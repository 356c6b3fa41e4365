package status

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Metric keys written by the scene engine
const (
	KeyTicks       = "scene.ticks"
	KeyMode        = "scene.mode"
	KeyPhotos      = "photos.count"
	KeyTrailAlive  = "trail.alive"
	KeyTrailSpawn  = "trail.spawned"
	KeyBoost       = "spiral.boost"
	KeyWishPhase   = "wish.phase"
	KeyWishCount   = "wish.completed"
	KeyGesture     = "gesture.stable"
	KeyTransitions = "gesture.transitions"
	KeyFeedOpen    = "gesture.feed"
	KeyCapture     = "gesture.capture"
	KeyPaused      = "clock.paused"
)

// Registry groups metric maps by value type
// Components cache pointers at construction and write them every tick
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Gauge]
	Labels *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Gauge](),
		Labels: NewMetricMap[Label](),
	}
}

// TotalCount returns the number of metrics across all maps
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Labels.Count()
}

// Lines renders every metric as "key=value", sorted by key
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *Gauge) {
		out = append(out, fmt.Sprintf("%s=%.4f", k, v.Get()))
	})
	r.Labels.Range(func(k string, v *Label) {
		out = append(out, fmt.Sprintf("%s=%s", k, v.Get()))
	})
	sort.Strings(out)
	return out
}
