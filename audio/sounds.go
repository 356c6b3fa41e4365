package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note frequencies in Hz
const (
	noteC3 = 130.81
	noteG3 = 196.00
	noteE4 = 329.63
	noteG5 = 783.99
	noteC6 = 1046.50
	noteE6 = 1318.51
	noteG6 = 1567.98
	noteC7 = 2093.00
)

// bell is a sine fundamental with a quieter octave overtone that dies first
func bell(freq float64, rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(freq, chimeDuration, WaveSine, rate),
		chimeDuration, chimeAttack, chimeRelease, rate)
	over := NewEnvelope(NewOscillator(freq*2, chimeDuration, WaveSine, rate),
		chimeDuration, chimeAttack, chimeRelease/2, rate)
	return beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
}

// delayed prefixes s with silence
func delayed(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	if d <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

// CreateLaunchChime is a rising three-note arpeggio
func CreateLaunchChime(rate beep.SampleRate) beep.Streamer {
	notes := []float64{noteG5, noteC6, noteE6}
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = delayed(bell(f, rate), time.Duration(i)*noteGap, rate)
	}
	return newVolume(beep.Mix(parts...), 0.35)
}

// CreateCompleteChime is a bright chord with a short noise sparkle on top
func CreateCompleteChime(rate beep.SampleRate) beep.Streamer {
	chord := beep.Mix(
		bell(noteC6, rate),
		bell(noteE6, rate),
		bell(noteG6, rate),
		delayed(bell(noteC7, rate), noteGap, rate),
	)
	sparkle := NewEnvelope(NewOscillator(0, 250*time.Millisecond, WaveNoise, rate),
		250*time.Millisecond, time.Millisecond, 240*time.Millisecond, rate)
	return beep.Mix(newVolume(chord, 0.25), newVolume(sparkle, 0.05))
}

// generateSound renders a cue to a unity buffer
func generateSound(st SoundType) *beep.Buffer {
	rate := beep.SampleRate(SampleRate)
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	switch st {
	case SoundLaunch:
		buf.Append(CreateLaunchChime(rate))
	case SoundComplete:
		buf.Append(CreateCompleteChime(rate))
	}
	return buf
}

// padGenerator is an endless soft drone with a slow tremolo
type padGenerator struct {
	rate beep.SampleRate
	pos  int
}

// NewPad creates the ambient drone
func NewPad(rate beep.SampleRate) beep.Streamer {
	return &padGenerator{rate: rate}
}

func (g *padGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.rate)
		lfo := 0.75 + 0.25*math.Sin(2*math.Pi*0.2*t)

		v := 0.5*math.Sin(2*math.Pi*noteC3*t) +
			0.3*math.Sin(2*math.Pi*noteG3*t) +
			0.2*math.Sin(2*math.Pi*noteE4*t+math.Sin(2*math.Pi*0.1*t))
		v *= 0.5 * lfo

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *padGenerator) Err() error { return nil }
