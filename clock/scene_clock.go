package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// SceneClock measures scene time: wall time minus every paused interval
// Step hands the tick loop a delta in seconds that is zero while paused
type SceneClock struct {
	mu sync.Mutex

	src   Provider
	start time.Time

	paused      atomic.Bool
	pauseStart  time.Time
	pausedTotal time.Duration

	lastStep time.Duration
}

// NewSceneClock creates a running clock anchored at src.Now()
func NewSceneClock(src Provider) *SceneClock {
	if src == nil {
		src = SystemProvider{}
	}
	return &SceneClock{src: src, start: src.Now()}
}

// elapsedLocked requires mu
func (c *SceneClock) elapsedLocked() time.Duration {
	ref := c.src.Now()
	if c.paused.Load() {
		ref = c.pauseStart
	}
	return ref.Sub(c.start) - c.pausedTotal
}

// Elapsed returns scene time since construction, frozen while paused
func (c *SceneClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

// Seconds returns Elapsed as float32 seconds
func (c *SceneClock) Seconds() float32 {
	return float32(c.Elapsed().Seconds())
}

// Step returns the scene time advanced since the previous Step, in seconds
func (c *SceneClock) Step() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.elapsedLocked()
	dt := now - c.lastStep
	c.lastStep = now
	if dt < 0 {
		return 0
	}
	return float32(dt.Seconds())
}

// Pause freezes scene time
func (c *SceneClock) Pause() {
	if c.paused.CompareAndSwap(false, true) {
		c.mu.Lock()
		c.pauseStart = c.src.Now()
		c.mu.Unlock()
	}
}

// Resume continues scene time, discarding the paused interval
func (c *SceneClock) Resume() {
	if c.paused.CompareAndSwap(true, false) {
		c.mu.Lock()
		if !c.pauseStart.IsZero() {
			c.pausedTotal += c.src.Now().Sub(c.pauseStart)
			c.pauseStart = time.Time{}
		}
		c.mu.Unlock()
	}
}

// Toggle flips pause state and returns the new value
func (c *SceneClock) Toggle() bool {
	if c.paused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused reports the pause state
func (c *SceneClock) IsPaused() bool {
	return c.paused.Load()
}

// PausedTotal returns cumulative pause time including a pause in progress
func (c *SceneClock) PausedTotal() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.pausedTotal
	if c.paused.Load() && !c.pauseStart.IsZero() {
		total += c.src.Now().Sub(c.pauseStart)
	}
	return total
}
