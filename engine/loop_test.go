package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoopStartStop(t *testing.T) {
	s := New(testTuning())
	var frames atomic.Int64
	l := NewLoop(s, 200, func(f *Frame) {
		frames.Add(1)
	})

	l.Start()
	l.Start()
	assert.True(t, l.Running())
	time.Sleep(100 * time.Millisecond)
	l.Stop()
	l.Stop()

	assert.False(t, l.Running())
	n := frames.Load()
	assert.Greater(t, n, int64(0))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, frames.Load(), "no frames after Stop")
}

func TestLoopPanicHandler(t *testing.T) {
	s := New(testTuning())
	got := make(chan any, 1)
	l := NewLoop(s, 200, func(*Frame) { panic("boom") })
	l.SetPanicHandler(func(r any) { got <- r })
	l.Start()

	select {
	case r := <-got:
		assert.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("panic not routed")
	}
}

func TestLoopPauseToggle(t *testing.T) {
	s := New(testTuning())
	l := NewLoop(s, 0, nil)
	assert.True(t, l.TogglePause())
	assert.True(t, s.Clock().IsPaused())
	l.Resume()
	assert.False(t, s.Clock().IsPaused())
	l.Pause()
	assert.True(t, s.Clock().IsPaused())
}
