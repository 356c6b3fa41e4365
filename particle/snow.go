package particle

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/aquilax/go-perlin"
)

// Snowfall tuning
const (
	DefaultSnowCount = 200

	snowSpread   = 30
	snowTop      = 15
	snowBottom   = -15
	snowMinSpeed = 0.05
	snowSpeedVar = 0.05
	snowSway     = 0.01
	snowSize     = 0.4
	snowTint     = 0xAADDFF

	noiseAlpha = 2
	noiseBeta  = 2
	noiseOct   = 3
)

// Snowfall drops flakes through a cube and wraps them back to the top
type Snowfall struct {
	buf   Buffers
	speed []float32
	phase []float32
	noise *perlin.Perlin
}

// NewSnowfall scatters n flakes through the cube
func NewSnowfall(n int, rng *rand.Rand) *Snowfall {
	s := &Snowfall{
		buf:   NewBuffers(n),
		speed: make([]float32, n),
		phase: make([]float32, n),
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOct, rng.Int63()),
	}
	tint := hexRGB(snowTint)
	for i := 0; i < n; i++ {
		s.buf.SetPosition(i, math32.Vec3(
			(rng.Float32()-0.5)*snowSpread,
			(rng.Float32()-0.5)*snowSpread,
			(rng.Float32()-0.5)*snowSpread,
		))
		s.speed[i] = snowMinSpeed + rng.Float32()*snowSpeedVar
		s.phase[i] = rng.Float32() * 10
		s.buf.SetColor(i, tint.r, tint.g, tint.b)
		s.buf.Sizes[i] = snowSize
	}
	return s
}

// Update moves every flake down by its speed and sways it with noise; dt <= 0 is a no-op
func (s *Snowfall) Update(elapsed, dt float32) {
	if dt <= 0 {
		return
	}
	pos := s.buf.Positions
	for i := range s.speed {
		j := i * 3
		pos[j+1] -= s.speed[i]
		if pos[j+1] < snowBottom {
			pos[j+1] = snowTop
		}
		t, p := float64(elapsed), float64(s.phase[i])
		pos[j] += float32(s.noise.Noise2D(t, p)) * snowSway
		pos[j+2] += float32(s.noise.Noise2D(p, t)) * snowSway
	}
}

// Speed returns the fall speed of flake i
func (s *Snowfall) Speed(i int) float32 { return s.speed[i] }

// Buffers returns the render buffers
func (s *Snowfall) Buffers() *Buffers { return &s.buf }
