package scene

import "fmt"

// ModeKind enumerates the display configurations
type ModeKind uint8

const (
	KindTree ModeKind = iota
	KindGalaxy
	KindFocus
)

func (k ModeKind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindGalaxy:
		return "galaxy"
	case KindFocus:
		return "focus"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseModeKind maps a name to a kind; focus is not accepted since it needs an id
func ParseModeKind(name string) (ModeKind, bool) {
	switch name {
	case "tree":
		return KindTree, true
	case "galaxy":
		return KindGalaxy, true
	}
	return 0, false
}

// Mode is the display mode; the focused photo id travels with the Focus variant
// Construct through Tree, Galaxy or Focus
type Mode struct {
	kind  ModeKind
	focus PhotoID
}

// Tree is the cone layout
func Tree() Mode { return Mode{kind: KindTree} }

// Galaxy is the scattered shell layout
func Galaxy() Mode { return Mode{kind: KindGalaxy} }

// Focus brings photo id in front of the viewer
func Focus(id PhotoID) Mode { return Mode{kind: KindFocus, focus: id} }

// Kind returns the variant tag
func (m Mode) Kind() ModeKind { return m.kind }

// Focused returns the focused id, ok only for the Focus variant
func (m Mode) Focused() (PhotoID, bool) {
	if m.kind != KindFocus {
		return 0, false
	}
	return m.focus, true
}

// IsFocusOn reports whether m focuses id
func (m Mode) IsFocusOn(id PhotoID) bool {
	return m.kind == KindFocus && m.focus == id
}

func (m Mode) String() string {
	if m.kind == KindFocus {
		return fmt.Sprintf("focus(%d)", m.focus)
	}
	return m.kind.String()
}
