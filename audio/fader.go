package audio

// Fader ramps a level toward a ceiling in fixed steps
type Fader struct {
	level, max, step float64
}

// NewFader starts at zero
func NewFader(max, step float64) *Fader {
	return &Fader{max: max, step: step}
}

// Step raises the level once and reports whether it can rise further
func (f *Fader) Step() (float64, bool) {
	f.level = min(f.level+f.step, f.max)
	return f.level, f.level < f.max
}

// Level returns the current level
func (f *Fader) Level() float64 { return f.level }

// Reset drops the level to zero
func (f *Fader) Reset() { f.level = 0 }
