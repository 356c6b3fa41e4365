// Package preview draws scene frames on a terminal and maps keys to scene commands
package preview

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wishtree/engine"
	"github.com/lixenwraith/wishtree/particle"
	"github.com/lixenwraith/wishtree/pose"
	"github.com/lixenwraith/wishtree/scene"
	"github.com/lixenwraith/wishtree/upload"
)

// Orbit impulses per key press
const (
	orbitStep = 0.04
	zoomStep  = 0.6
)

// Controller is the scene surface the preview drives; *engine.Scene implements it
type Controller interface {
	Post(fn func(*scene.Store))
	Orbit(yaw, polar, zoom float32)
	Store() *scene.Store
}

// Toggler flips a boolean state and returns the new value
type Toggler interface {
	Toggle() bool
}

// ToggleFunc adapts a function to Toggler
type ToggleFunc func() bool

func (f ToggleFunc) Toggle() bool { return f() }

// Toggles are the switches outside the scene; nil entries ignore their key
// Muted and Capture report live state for the status row
type Toggles struct {
	Pause    Toggler
	Mute     Toggler
	Gestures Toggler
	Muted    func() bool
	Capture  func() bool
}

var (
	styleSnow    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(230, 230, 240))
	styleHead    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 240, 180)).Bold(true)
	styleTopper  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 215, 0)).Bold(true)
	styleLink    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 110, 160))
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(212, 175, 55))
	styleHelp    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 140, 140))
	defaultPhoto = tcell.NewRGBColor(250, 245, 235)
)

// Preview owns the screen between Draw calls from the tick goroutine and Run on the caller
type Preview struct {
	screen  tcell.Screen
	scene   Controller
	toggles Toggles

	mu     sync.Mutex
	tints  map[scene.PhotoID]tcell.Color
	canvas canvas
}

// New creates a preview
func New(screen tcell.Screen, sc Controller, toggles Toggles) *Preview {
	return &Preview{
		screen:  screen,
		scene:   sc,
		toggles: toggles,
		tints:   make(map[scene.PhotoID]tcell.Color),
	}
}

// Run handles input until quit or ctx ends
func (p *Preview) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !p.Apply(KeyAction(ev)) {
					return nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		}
	}
}

// Apply performs a; it returns false for quit
func (p *Preview) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionToggleMode:
		p.scene.Post(func(s *scene.Store) { s.ToggleMode() })
	case ActionTree:
		p.scene.Post(func(s *scene.Store) { s.SetMode(scene.Tree()) })
	case ActionGalaxy:
		p.scene.Post(func(s *scene.Store) { s.SetMode(scene.Galaxy()) })
	case ActionFocusNext:
		p.scene.Post(focusNext)
	case ActionSelect:
		p.scene.Post(selectCurrent)
	case ActionClearFocus:
		p.scene.Post(func(s *scene.Store) {
			if s.Mode().Kind() == scene.KindFocus {
				s.SetMode(scene.Galaxy())
			}
		})
	case ActionWish:
		p.scene.Post(func(s *scene.Store) { s.TriggerWish() })
	case ActionOrbitLeft:
		p.scene.Orbit(-orbitStep, 0, 0)
	case ActionOrbitRight:
		p.scene.Orbit(orbitStep, 0, 0)
	case ActionOrbitUp:
		p.scene.Orbit(0, -orbitStep, 0)
	case ActionOrbitDown:
		p.scene.Orbit(0, orbitStep, 0)
	case ActionZoomIn:
		p.scene.Orbit(0, 0, -zoomStep)
	case ActionZoomOut:
		p.scene.Orbit(0, 0, zoomStep)
	case ActionPause:
		flip(p.toggles.Pause)
	case ActionMute:
		flip(p.toggles.Mute)
	case ActionGestures:
		flip(p.toggles.Gestures)
	}
	return true
}

// focusNext focuses the photo after the focused one, wrapping; the first photo when none is focused
func focusNext(s *scene.Store) {
	photos := s.Photos()
	if len(photos) == 0 {
		return
	}
	next := 0
	if id, ok := s.Mode().Focused(); ok {
		for i, ph := range photos {
			if ph.ID == id {
				next = (i + 1) % len(photos)
				break
			}
		}
	}
	s.SetMode(scene.Focus(photos[next].ID))
}

// selectCurrent clicks the focused photo, or the newest photo when none is focused
func selectCurrent(s *scene.Store) {
	id, ok := s.Mode().Focused()
	if !ok {
		photos := s.Photos()
		if len(photos) == 0 {
			return
		}
		id = photos[0].ID
	}
	s.SelectPhoto(id)
}

func flip(t Toggler) {
	if t != nil {
		t.Toggle()
	}
}

// Draw renders f; call from the loop's frame callback
func (p *Preview) Draw(f *engine.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, h := p.screen.Size()
	if w <= 0 || h <= 2 {
		return
	}
	p.screen.Clear()
	c := &p.canvas
	c.reset(p.screen, w, h-2)
	pr := NewProjector(f.Camera, w, h-2)

	// Stars are in world space
	for i := 0; i < f.Stars.Len(); i++ {
		c.point(pr, f.Stars.Position(i).Sub(engine.ContentOffset), '*', colorAt(f.Stars, i))
	}
	for _, l := range f.Links {
		a := f.Stars.Position(l.From).Sub(engine.ContentOffset)
		b := f.Stars.Position(l.To).Sub(engine.ContentOffset)
		c.line(pr, a, b, '·', styleLink)
	}
	for i := 0; i < f.Snow.Len(); i++ {
		c.point(pr, f.Snow.Position(i), '·', styleSnow)
	}
	for i := 0; i < f.Swarm.Len(); i++ {
		c.point(pr, pose.RotateY(f.Swarm.Position(i), f.SwarmYaw), '.', colorAt(f.Swarm, i))
	}
	for i := 0; i < f.Spiral.Len(); i++ {
		c.point(pr, pose.RotateY(f.Spiral.Position(i), f.SpiralYaw), '+', colorAt(f.Spiral, i))
	}
	for i := 0; i < f.Trail.Len(); i++ {
		if f.Trail.Sizes[i] > 0 {
			c.point(pr, f.Trail.Position(i), '•', colorAt(f.Trail, i))
		}
	}
	c.point(pr, f.Head, '✦', styleHead)
	if f.Topper.Scale > 0.1 {
		c.point(pr, f.Topper.Position, '★', styleTopper)
	}

	p.refreshTints(f.Photos)
	for _, v := range f.Photos {
		style := tcell.StyleDefault.Foreground(p.tints[v.ID])
		pos := pose.RotateY(v.Pose.Position, f.GalleryYaw)
		if f.Mode.IsFocusOn(v.ID) {
			c.card(pr, pos, v.Pose.Scale, style)
			continue
		}
		c.point(pr, pos, '▣', style)
	}

	p.drawStatus(f, w, h)
	p.screen.Show()
}

// refreshTints rebuilds the tint table when the photo set changes; evicted photos drop out
func (p *Preview) refreshTints(views []pose.EntityView) {
	if len(views) == len(p.tints) {
		current := true
		for _, v := range views {
			if _, ok := p.tints[v.ID]; !ok {
				current = false
				break
			}
		}
		if current {
			return
		}
	}

	tints := make(map[scene.PhotoID]tcell.Color, len(views))
	for _, ph := range p.scene.Store().Snapshot().Photos {
		if c, ok := p.tints[ph.ID]; ok {
			tints[ph.ID] = c
			continue
		}
		color := defaultPhoto
		if r, g, b, ok := upload.Tint(ph.Image); ok {
			color = tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		tints[ph.ID] = color
	}
	p.tints = tints
}

func (p *Preview) drawStatus(f *engine.Frame, w, h int) {
	state := ""
	if f.Paused {
		state += " [paused]"
	}
	if on(p.toggles.Muted) {
		state += " [muted]"
	}
	if p.toggles.Capture != nil && !p.toggles.Capture() {
		state += " [gestures off]"
	}
	line := fmt.Sprintf(" %s | wish %s | boost %.2f | photos %d%s", f.Mode, f.Wish, f.Boost, len(f.Photos), state)
	drawText(p.screen, 0, h-2, w, line, styleStatus, true)
	drawText(p.screen, 0, h-1, w, helpLine, styleHelp, false)
}

func on(state func() bool) bool {
	return state != nil && state()
}

// drawText writes text from x; fill pads the rest of the row with the style
func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style, fill bool) {
	col := x
	for _, r := range text {
		if col >= w {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; fill && col < w; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

func colorAt(b *particle.Buffers, i int) tcell.Style {
	j := i * 3
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		channel(b.Colors[j]), channel(b.Colors[j+1]), channel(b.Colors[j+2])))
}

func channel(v float32) int32 {
	return int32(max(0, min(v, 1)) * 255)
}
