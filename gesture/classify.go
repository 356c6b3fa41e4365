// Package gesture turns hand landmark samples into debounced mode requests
package gesture

import "fmt"

// Landmark is one tracked hand point; X and Y are normalized image coordinates, Z is relative depth
type Landmark struct {
	X, Y, Z float32
}

// LandmarkCount is the number of points per sample
const LandmarkCount = 21

// Sample is one detected hand
type Sample [LandmarkCount]Landmark

// Landmark indices
const (
	Wrist     = 0
	IndexPIP  = 6
	IndexTip  = 8
	MiddlePIP = 10
	MiddleTip = 12
	RingPIP   = 14
	RingTip   = 16
	PinkyPIP  = 18
	PinkyTip  = 20
)

// fingers lists (pip, tip) pairs; the thumb is not considered
var fingers = [4][2]int{
	{IndexPIP, IndexTip},
	{MiddlePIP, MiddleTip},
	{RingPIP, RingTip},
	{PinkyPIP, PinkyTip},
}

// Gesture is a per-sample hand classification
type Gesture uint8

const (
	None Gesture = iota
	Fist
	OpenPalm
)

func (g Gesture) String() string {
	switch g {
	case None:
		return "none"
	case Fist:
		return "fist"
	case OpenPalm:
		return "open_palm"
	default:
		return fmt.Sprintf("gesture(%d)", uint8(g))
	}
}

// planarDist2 is the squared distance in the image plane, depth ignored
func planarDist2(a, b Landmark) float32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Extended reports whether the finger (pip, tip) reaches further from the wrist at its tip
func (s *Sample) Extended(pip, tip int) bool {
	w := s[Wrist]
	return planarDist2(s[tip], w) > planarDist2(s[pip], w)
}

// Classify labels a sample: all four fingers curled is Fist, all extended is OpenPalm
func Classify(s *Sample) Gesture {
	if s == nil {
		return None
	}
	extended := 0
	for _, f := range fingers {
		if s.Extended(f[0], f[1]) {
			extended++
		}
	}
	switch extended {
	case 0:
		return Fist
	case len(fingers):
		return OpenPalm
	default:
		return None
	}
}
