// Package particle runs the fixed-size point pools: swarm, spiral, trail, snow and the constellation
package particle

import "cogentcore.org/core/math32"

// Buffers are the packed arrays handed to the renderer: N×3 positions, N×3 colors, N sizes
type Buffers struct {
	Positions []float32
	Colors    []float32
	Sizes     []float32
}

// NewBuffers allocates zeroed buffers for n points
func NewBuffers(n int) Buffers {
	return Buffers{
		Positions: make([]float32, n*3),
		Colors:    make([]float32, n*3),
		Sizes:     make([]float32, n),
	}
}

// Len returns the point count
func (b *Buffers) Len() int {
	return len(b.Sizes)
}

// Position reads point i
func (b *Buffers) Position(i int) math32.Vector3 {
	j := i * 3
	return math32.Vec3(b.Positions[j], b.Positions[j+1], b.Positions[j+2])
}

// SetPosition writes point i
func (b *Buffers) SetPosition(i int, v math32.Vector3) {
	j := i * 3
	b.Positions[j], b.Positions[j+1], b.Positions[j+2] = v.X, v.Y, v.Z
}

// SetColor writes the color of point i
func (b *Buffers) SetColor(i int, r, g, bl float32) {
	j := i * 3
	b.Colors[j], b.Colors[j+1], b.Colors[j+2] = r, g, bl
}

// rgb is a linear color triple
type rgb struct{ r, g, b float32 }

// hexRGB converts 0xRRGGBB to an sRGB triple in [0,1]
func hexRGB(hex uint32) rgb {
	return rgb{
		r: float32(hex>>16&0xff) / 255,
		g: float32(hex>>8&0xff) / 255,
		b: float32(hex&0xff) / 255,
	}
}
