package preview

import "github.com/gdamore/tcell/v2"

// Action is a preview command bound to a key
type Action int

const (
	ActionNone Action = iota
	ActionToggleMode
	ActionTree
	ActionGalaxy
	ActionFocusNext
	ActionSelect
	ActionClearFocus
	ActionWish
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionPause
	ActionMute
	ActionGestures
	ActionQuit
)

var runeActions = map[rune]Action{
	' ': ActionToggleMode,
	't': ActionTree,
	'g': ActionGalaxy,
	'n': ActionFocusNext,
	'w': ActionWish,
	'+': ActionZoomIn,
	'=': ActionZoomIn,
	'-': ActionZoomOut,
	'p': ActionPause,
	'm': ActionMute,
	'c': ActionGestures,
	'q': ActionQuit,
}

var keyActions = map[tcell.Key]Action{
	tcell.KeyEscape: ActionClearFocus,
	tcell.KeyEnter:  ActionSelect,
	tcell.KeyLeft:   ActionOrbitLeft,
	tcell.KeyRight:  ActionOrbitRight,
	tcell.KeyUp:     ActionOrbitUp,
	tcell.KeyDown:   ActionOrbitDown,
	tcell.KeyCtrlC:  ActionQuit,
}

// KeyAction resolves a key event
func KeyAction(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return runeActions[ev.Rune()]
	}
	return keyActions[ev.Key()]
}

// helpLine lists the bindings on the bottom row, quit first so narrow terminals keep it
const helpLine = "q quit  spc mode  t/g tree/galaxy  n next  ⏎ select  esc back  w wish  ←↑→↓ orbit  +- zoom  c gestures  p pause  m mute"
