package audio

import "time"

// SoundType identifies a one-shot cue
type SoundType int

const (
	SoundLaunch   SoundType = iota // Wish leaves the ground
	SoundComplete                  // Wish reaches the tree
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundLaunch:
		return "launch"
	case SoundComplete:
		return "complete"
	}
	return "unknown"
}

const (
	// SampleRate of every generated stream
	SampleRate = 44100

	// AmbientMax is the ceiling the ambient pad fades in to
	AmbientMax = 0.4
	// AmbientFadeStep is added to the ambient level every AmbientFadeInterval
	AmbientFadeStep     = 0.01
	AmbientFadeInterval = 100 * time.Millisecond

	chimeAttack   = 5 * time.Millisecond
	chimeDuration = 900 * time.Millisecond
	chimeRelease  = 800 * time.Millisecond
	noteGap       = 110 * time.Millisecond
)
