package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/wishtree/wish"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

// TestOscillatorLength verifies oscillators stop after their duration
func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(SampleRate)
	for _, w := range []WaveType{WaveSine, WaveTriangle, WaveNoise} {
		osc := NewOscillator(440, 50*time.Millisecond, w, rate)
		n, peak := drain(osc)
		if n != rate.N(50*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", w, rate.N(50*time.Millisecond), n)
		}
		if peak > 1 {
			t.Errorf("Wave %d: sample out of range: %f", w, peak)
		}
	}
}

// TestEnvelopeRamps verifies the envelope starts and ends at silence
func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveTriangle, rate) // constant 1 at phase 0
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("Expected full level in sustain, got %f", buf[500][0])
	}
	if v := buf[999][0]; v < 0 || v > 0.011 {
		t.Errorf("Expected near silence at the end, got %f", v)
	}
}

// TestChimesAreBounded verifies cues render finite and unclipped
func TestChimesAreBounded(t *testing.T) {
	for st := SoundType(0); st < soundTypeCount; st++ {
		buf := generateSound(st)
		if buf.Len() == 0 {
			t.Fatalf("%s: empty buffer", st)
		}
		_, peak := drain(buf.Streamer(0, buf.Len()))
		if peak == 0 || peak > 1 {
			t.Errorf("%s: unexpected peak %f", st, peak)
		}
	}
}

// TestCacheReuse verifies cues render once
func TestCacheReuse(t *testing.T) {
	c := newSoundCache()
	a := c.get(SoundLaunch)
	if a != c.get(SoundLaunch) {
		t.Error("Expected cached buffer to be reused")
	}
	if c.get(soundTypeCount) != nil {
		t.Error("Expected nil for unknown sound")
	}
}

// TestFaderReachesCeiling verifies the ambient ramp: 0.01 per step up to 0.4
func TestFaderReachesCeiling(t *testing.T) {
	f := NewFader(AmbientMax, AmbientFadeStep)
	steps := 0
	for {
		level, more := f.Step()
		steps++
		if level > AmbientMax {
			t.Fatalf("Level %f above ceiling", level)
		}
		if !more {
			break
		}
		if steps > 100 {
			t.Fatal("Fader never reached ceiling")
		}
	}
	if steps < 40 || steps > 41 {
		t.Errorf("Expected about 40 steps, got %d", steps)
	}
	if f.Level() != AmbientMax {
		t.Errorf("Expected level %f, got %f", AmbientMax, f.Level())
	}
}

// TestSoundManagerGracefulDegradation verifies calls are safe before Initialize
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(0.5)
	sm.Play(SoundLaunch)
	sm.OnWishPhase(wish.PhaseIdle, wish.PhaseLaunch)
	sm.SetVolume(2)
	sm.ToggleMute()
	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Errorf("Expected empty mixer, got %d", sm.mixer.Len())
	}
}

// TestSoundManagerWishCues verifies phase changes queue cues
func TestSoundManagerWishCues(t *testing.T) {
	sm := NewSoundManager(0.5)
	noop := func() {}
	sm.start(noop, noop)
	defer sm.Cleanup()

	if sm.mixer.Len() != 1 {
		t.Fatalf("Expected ambient pad only, got %d streams", sm.mixer.Len())
	}
	sm.OnWishPhase(wish.PhaseIdle, wish.PhaseLaunch)
	sm.OnWishPhase(wish.PhaseLaunch, wish.PhaseDescend)
	sm.OnWishPhase(wish.PhaseDescend, wish.PhaseIdle)
	if sm.mixer.Len() != 3 {
		t.Errorf("Expected pad plus two cues, got %d", sm.mixer.Len())
	}

	if !sm.ToggleMute() {
		t.Fatal("Expected muted")
	}
	sm.Play(SoundLaunch)
	if sm.mixer.Len() != 3 {
		t.Errorf("Expected no cue while muted, got %d", sm.mixer.Len())
	}
	if !sm.master.Silent {
		t.Error("Expected silent master while muted")
	}
}
