package particle

import "cogentcore.org/core/math32"

// Link joins two constellation stars by index
type Link struct {
	From, To int
}

// Constellation is a static star figure placed behind the scene
type Constellation struct {
	buf   Buffers
	links []Link
}

var (
	geminiStars = []math32.Vector2{
		{X: -1.5, Y: 3.0}, {X: 1.5, Y: 2.8},
		{X: -1.2, Y: 1.5}, {X: 1.3, Y: 1.4},
		{X: -1.0, Y: 0.0}, {X: 1.0, Y: -0.2},
		{X: -1.8, Y: -1.5}, {X: -0.5, Y: -1.8},
		{X: 0.8, Y: -1.6}, {X: 2.0, Y: -1.4},
	}
	geminiLinks = []Link{
		{0, 2}, {2, 4}, {4, 6}, {4, 7},
		{1, 3}, {3, 5}, {5, 8}, {5, 9},
		{2, 3},
	}
	geminiOffset = math32.Vec3(0, 10, -20)
)

const (
	geminiScale    = 5
	geminiStarSize = 0.15
)

// Gemini builds the twins figure
func Gemini() *Constellation {
	c := &Constellation{
		buf:   NewBuffers(len(geminiStars)),
		links: geminiLinks,
	}
	for i, s := range geminiStars {
		c.buf.SetPosition(i, math32.Vec3(s.X*geminiScale, s.Y*geminiScale, 0).Add(geminiOffset))
		c.buf.SetColor(i, 1, 1, 1)
		c.buf.Sizes[i] = geminiStarSize
	}
	return c
}

// Buffers returns the star buffers
func (c *Constellation) Buffers() *Buffers { return &c.buf }

// Links returns the star pairs to connect
func (c *Constellation) Links() []Link { return c.links }
