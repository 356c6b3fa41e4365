// Package audio plays the wish cues and the ambient pad through beep's speaker
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/wishtree/wish"
)

// SoundManager owns the mixer; every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	ambient     *beep.Ctrl
	ambientVol  *effects.Volume
	fader       *Fader
	cache       *soundCache
	volume      float64
	muted       bool
	initialized bool

	lock, unlock func()
	stop         chan struct{}
	wg           sync.WaitGroup
}

// NewSoundManager creates a manager at the given master volume
func NewSoundManager(volume float64) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: newVolume(mixer, volume),
		fader:  NewFader(AmbientMax, AmbientFadeStep),
		cache:  newSoundCache(),
		volume: volume,
	}
}

// Initialize opens the speaker and starts the ambient pad fade-in
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	if sm.initialized {
		sm.mu.Unlock()
		return nil
	}
	sm.mu.Unlock()

	rate := beep.SampleRate(SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.master)
	sm.start(speaker.Lock, speaker.Unlock)
	log.Printf("[audio] speaker ready at %d Hz", SampleRate)
	return nil
}

// start attaches the ambient pad and launches the fader; lock guards streamer state
func (sm *SoundManager) start(lock, unlock func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock, sm.unlock = lock, unlock
	sm.cache.preload()

	sm.fader.Reset()
	sm.ambientVol = newVolume(NewPad(beep.SampleRate(SampleRate)), 0)
	sm.ambient = &beep.Ctrl{Streamer: sm.ambientVol}

	sm.lock()
	sm.mixer.Add(sm.ambient)
	sm.unlock()

	sm.stop = make(chan struct{})
	sm.initialized = true
	sm.wg.Add(1)
	go sm.fadeIn(sm.stop)
}

func (sm *SoundManager) fadeIn(stop <-chan struct{}) {
	defer sm.wg.Done()
	ticker := time.NewTicker(AmbientFadeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sm.lock()
			level, more := sm.fader.Step()
			setLevel(sm.ambientVol, level)
			sm.unlock()
			if !more {
				return
			}
		}
	}
}

// Cleanup stops every stream
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	if !sm.initialized {
		sm.mu.Unlock()
		return
	}
	sm.initialized = false
	close(sm.stop)
	sm.mu.Unlock()

	sm.wg.Wait()

	sm.lock()
	sm.ambient.Paused = true
	sm.mixer.Clear()
	sm.unlock()
}

// Play mixes in a one-shot cue
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	buf := sm.cache.get(st)
	if buf == nil {
		return
	}
	sm.lock()
	sm.mixer.Add(buf.Streamer(0, buf.Len()))
	sm.unlock()
}

// OnWishPhase maps wish transitions to cues
func (sm *SoundManager) OnWishPhase(from, to wish.Phase) {
	switch {
	case to == wish.PhaseLaunch:
		sm.Play(SoundLaunch)
	case from == wish.PhaseDescend && to == wish.PhaseIdle:
		sm.Play(SoundComplete)
	}
}

// SetMuted silences the master output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	sm.applyMaster()
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	sm.applyMaster()
	return sm.muted
}

// Muted reports mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// SetVolume sets the master level in [0,1]
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = max(0, min(v, 1))
	sm.applyMaster()
}

func (sm *SoundManager) applyMaster() {
	level := sm.volume
	if sm.muted {
		level = 0
	}
	if sm.initialized {
		sm.lock()
		defer sm.unlock()
	}
	setLevel(sm.master, level)
}
