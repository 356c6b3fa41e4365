package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickRate is ticks per second when the tuning gives none
const DefaultTickRate = 60

// Loop ticks a Scene at a fixed interval on its own goroutine
type Loop struct {
	scene    *Scene
	interval time.Duration
	onFrame  func(*Frame)
	onPanic  PanicHandler

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a stopped loop; onFrame runs after every tick on the loop goroutine
func NewLoop(s *Scene, tickRate int, onFrame func(*Frame)) *Loop {
	if tickRate < 1 {
		tickRate = DefaultTickRate
	}
	return &Loop{
		scene:    s,
		interval: time.Second / time.Duration(tickRate),
		onFrame:  onFrame,
		stopChan: make(chan struct{}),
	}
}

// SetPanicHandler routes a panic on the loop goroutine to fn; call before Start
func (l *Loop) SetPanicHandler(fn PanicHandler) {
	l.onPanic = fn
}

// Start launches the loop; later calls are ignored
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		Go(l.run, l.onPanic)
	}
}

// Stop halts the loop and waits for the current tick to finish
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
		}
	})
}

// Running reports whether the loop goroutine is active
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Pause freezes scene time; ticks keep running with zero delta
func (l *Loop) Pause() { l.scene.clock.Pause() }

// Resume continues scene time
func (l *Loop) Resume() { l.scene.clock.Resume() }

// TogglePause flips pause state and returns the new value
func (l *Loop) TogglePause() bool { return l.scene.clock.Toggle() }

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			frame := l.scene.Advance()
			if l.onFrame != nil {
				l.onFrame(frame)
			}
		}
	}
}
