package main

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/wishtree/audio"
	"github.com/lixenwraith/wishtree/config"
	"github.com/lixenwraith/wishtree/engine"
	"github.com/lixenwraith/wishtree/gesture"
	"github.com/lixenwraith/wishtree/service"
	"github.com/lixenwraith/wishtree/status"
	"github.com/lixenwraith/wishtree/upload"
)

// background runs fn until Stop cancels it
type background struct {
	cancel context.CancelFunc
	group  *errgroup.Group
}

func (b *background) start(ctx context.Context, fns ...func(context.Context) error) {
	ctx, b.cancel = context.WithCancel(ctx)
	b.group, ctx = errgroup.WithContext(ctx)
	for _, fn := range fns {
		b.group.Go(func() error { return fn(ctx) })
	}
}

func (b *background) stop() error {
	if b.cancel == nil {
		return nil
	}
	b.cancel()
	err := b.group.Wait()
	b.cancel = nil
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func audioService(sound *audio.SoundManager, enabled bool) service.Service {
	return &service.Func{
		ID: "audio",
		OnStart: func(context.Context) error {
			if !enabled {
				return nil
			}
			// Audio is optional; the scene runs silent without a device
			if err := sound.Initialize(); err != nil {
				log.Printf("[audio] disabled: %v", err)
			}
			return nil
		},
		OnStop: func() error {
			sound.Cleanup()
			return nil
		},
	}
}

func configService(path string, sc *engine.Scene) service.Service {
	bg := &background{}
	return &service.Func{
		ID: "config",
		OnStart: func(ctx context.Context) error {
			bg.start(ctx, func(ctx context.Context) error {
				err := config.Watch(ctx, path, sc.ApplyTuning)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("[config] watch stopped: %v", err)
				}
				return nil
			})
			return nil
		},
		OnStop: bg.stop,
	}
}

// gestureInput owns the gesture feed; capture can be switched on and off while the scene runs
type gestureInput struct {
	addr string
	sc   SamplePusher
	reg  *status.Registry

	mu      sync.Mutex
	parent  context.Context
	enabled bool
	bg      background
	ln      net.Listener
}

func newGestureInput(addr string, sc SamplePusher, reg *status.Registry, enabled bool) *gestureInput {
	return &gestureInput{addr: addr, sc: sc, reg: reg, enabled: enabled}
}

func (g *gestureInput) Name() string           { return "gesture" }
func (g *gestureInput) Dependencies() []string { return nil }

// Start opens the feed when capture is enabled; a busy port leaves capture off
func (g *gestureInput) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.parent = ctx
	if g.enabled {
		if err := g.openLocked(); err != nil {
			log.Printf("[gesture] capture off: %v", err)
			g.enabled = false
		}
	}
	g.reg.Bools.Get(status.KeyCapture).Store(g.enabled)
	return nil
}

func (g *gestureInput) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closeLocked()
}

// Toggle switches capture and returns the new state
// Switching off closes the listener and every client connection
func (g *gestureInput) Toggle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.parent == nil {
		return g.enabled
	}
	if g.enabled {
		if err := g.closeLocked(); err != nil {
			log.Printf("[gesture] close: %v", err)
		}
		g.enabled = false
	} else if err := g.openLocked(); err != nil {
		log.Printf("[gesture] capture on: %v", err)
	} else {
		g.enabled = true
	}
	log.Printf("[gesture] capture %t", g.enabled)
	g.reg.Bools.Get(status.KeyCapture).Store(g.enabled)
	return g.enabled
}

// Enabled reports whether capture is on
func (g *gestureInput) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}

// Addr returns the bound feed address, empty while capture is off
func (g *gestureInput) Addr() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ln == nil {
		return ""
	}
	return g.ln.Addr().String()
}

func (g *gestureInput) openLocked() error {
	feed := gesture.NewFeed(g.addr, gesture.DefaultFeedBuffer)
	ln, err := feed.Listen()
	if err != nil {
		return err
	}
	g.ln = ln
	g.bg.start(g.parent,
		func(ctx context.Context) error {
			if err := feed.Serve(ctx, ln); err != nil {
				log.Printf("[gesture] feed stopped: %v", err)
			}
			return nil
		},
		func(ctx context.Context) error {
			pumpGestures(ctx, feed, g.sc, g.reg)
			return nil
		},
	)
	return nil
}

func (g *gestureInput) closeLocked() error {
	g.ln = nil
	return g.bg.stop()
}

func inboxService(in *upload.Inbox) service.Service {
	bg := &background{}
	return &service.Func{
		ID: "inbox",
		OnStart: func(ctx context.Context) error {
			bg.start(ctx, func(ctx context.Context) error {
				if err := in.Watch(ctx); err != nil {
					log.Printf("[upload] inbox stopped: %v", err)
				}
				return nil
			})
			return nil
		},
		OnStop: bg.stop,
	}
}

func loopService(loop *engine.Loop) service.Service {
	return &service.Func{
		ID:   "loop",
		Deps: []string{"audio"},
		OnStart: func(context.Context) error {
			loop.Start()
			return nil
		},
		OnStop: func() error {
			loop.Stop()
			return nil
		},
	}
}

// SamplePusher receives classified hand frames
type SamplePusher interface {
	PushSample(*gesture.Sample)
	PushNoHand()
}

// pumpGestures forwards feed events into the scene mailbox
func pumpGestures(ctx context.Context, feed *gesture.Feed, sc SamplePusher, reg *status.Registry) {
	open := reg.Bools.Get(status.KeyFeedOpen)
	defer open.Store(false)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-feed.Events():
			open.Store(feed.OpenConns() > 0)
			if ev.Hand {
				s := ev.Sample
				sc.PushSample(&s)
			} else {
				sc.PushNoHand()
			}
		}
	}
}
