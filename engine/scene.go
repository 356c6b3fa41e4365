// Package engine runs one scene tick: input, layout, particles, sequence and frame assembly
package engine

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wishtree/camera"
	"github.com/lixenwraith/wishtree/clock"
	"github.com/lixenwraith/wishtree/config"
	"github.com/lixenwraith/wishtree/gesture"
	"github.com/lixenwraith/wishtree/particle"
	"github.com/lixenwraith/wishtree/pose"
	"github.com/lixenwraith/wishtree/scene"
	"github.com/lixenwraith/wishtree/status"
	"github.com/lixenwraith/wishtree/wish"
)

// Scene owns the store and every subsystem
// Tick and Advance must be called from a single goroutine; everything else may be called from any
type Scene struct {
	cfg   config.Tuning
	store *scene.Store
	clock *clock.SceneClock
	rng   *rand.Rand

	classifier *gesture.Classifier
	rig        *camera.Rig
	gallery    *pose.Gallery
	topper     *pose.Topper
	wish       *wish.Controller
	swarm      *particle.Swarm
	spiral     *particle.Spiral
	trail      *particle.Trail
	snow       *particle.Snowfall
	stars      *particle.Constellation

	mail mailbox
	cmds []command
	obs  []observation

	frame Frame
	ticks uint64

	reg         *status.Registry
	statTicks   *atomic.Int64
	statPhotos  *atomic.Int64
	statAlive   *atomic.Int64
	statSpawned *atomic.Int64
	statTrans   *atomic.Int64
	statWishes  *atomic.Int64
	statPaused  *atomic.Bool
	statBoost   *status.Gauge
	statMode    *status.Label
	statPhase   *status.Label
	statGesture *status.Label
}

// Option configures a Scene
type Option func(*options)

type options struct {
	provider clock.Provider
	registry *status.Registry
}

// WithClock drives scene time and photo ids from p
func WithClock(p clock.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithRegistry writes metrics into reg
func WithRegistry(reg *status.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New builds a scene from tuning; Seed 0 seeds layouts from the wall clock
func New(cfg config.Tuning, opts ...Option) *Scene {
	cfg.Normalize()
	o := options{provider: clock.SystemProvider{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = status.NewRegistry()
	}

	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	p := cfg.Particle

	store := scene.NewStore(scene.WithClock(o.provider))
	s := &Scene{
		cfg:        cfg,
		store:      store,
		clock:      clock.NewSceneClock(o.provider),
		rng:        rng,
		classifier: gesture.NewClassifier(store, cfg.Gesture.Threshold),
		rig:        camera.NewRig(cfg.Scene.TickRate),
		gallery:    pose.NewGallery(rng, cfg.Pose.Blend),
		topper:     pose.NewTopper(cfg.Pose.TopperBlend),
		wish:       wish.NewController(store),
		swarm:      particle.NewSwarm(p.SwarmCount, rng, p.SwarmBlend, p.Workers),
		spiral:     particle.NewSpiral(p.SpiralCount, rng, p.SpiralBlend, p.Workers),
		trail:      particle.NewTrail(p.TrailCount, rng),
		snow:       particle.NewSnowfall(p.SnowCount, rng),
		stars:      particle.Gemini(),
		reg:        o.registry,
	}
	s.cacheMetrics()
	return s
}

func (s *Scene) cacheMetrics() {
	r := s.reg
	s.statTicks = r.Ints.Get(status.KeyTicks)
	s.statPhotos = r.Ints.Get(status.KeyPhotos)
	s.statAlive = r.Ints.Get(status.KeyTrailAlive)
	s.statSpawned = r.Ints.Get(status.KeyTrailSpawn)
	s.statTrans = r.Ints.Get(status.KeyTransitions)
	s.statWishes = r.Ints.Get(status.KeyWishCount)
	s.statPaused = r.Bools.Get(status.KeyPaused)
	s.statBoost = r.Floats.Get(status.KeyBoost)
	s.statMode = r.Labels.Get(status.KeyMode)
	s.statPhase = r.Labels.Get(status.KeyWishPhase)
	s.statGesture = r.Labels.Get(status.KeyGesture)
}

// Store returns the scene store; mutate it from other goroutines through Post
func (s *Scene) Store() *scene.Store { return s.store }

// Clock returns the pausable scene clock
func (s *Scene) Clock() *clock.SceneClock { return s.clock }

// Metrics returns the metric registry
func (s *Scene) Metrics() *status.Registry { return s.reg }

// Tuning returns the active tuning
func (s *Scene) Tuning() config.Tuning { return s.cfg }

// Post queues fn to run against the store at the start of the next tick
func (s *Scene) Post(fn func(*scene.Store)) {
	s.mail.post(func(sc *Scene) { fn(sc.store) })
}

// PushSample queues a detected hand for classification on the next tick
func (s *Scene) PushSample(sample *gesture.Sample) {
	if sample == nil {
		s.PushNoHand()
		return
	}
	cp := *sample
	s.mail.observe(observation{sample: &cp})
}

// PushNoHand queues a frame without a hand
func (s *Scene) PushNoHand() {
	s.mail.observe(observation{})
}

// Orbit queues a camera impulse
func (s *Scene) Orbit(yaw, polar, zoom float32) {
	s.mail.post(func(sc *Scene) { sc.rig.Impulse(yaw, polar, zoom) })
}

// ApplyTuning queues the live-tunable values of t: blend factors and gesture threshold
func (s *Scene) ApplyTuning(t config.Tuning) {
	t.Normalize()
	s.mail.post(func(sc *Scene) {
		sc.cfg.Pose = t.Pose
		sc.cfg.Particle.SwarmBlend = t.Particle.SwarmBlend
		sc.cfg.Particle.SpiralBlend = t.Particle.SpiralBlend
		sc.cfg.Gesture.Threshold = t.Gesture.Threshold

		sc.gallery.SetBlend(t.Pose.Blend)
		sc.swarm.SetBlend(t.Particle.SwarmBlend)
		sc.spiral.SetBlend(t.Particle.SpiralBlend)
		sc.classifier.Debouncer().SetThreshold(t.Gesture.Threshold)
	})
}

// OnWishPhase registers fn for wish phase transitions; call before the loop starts
func (s *Scene) OnWishPhase(fn func(from, to wish.Phase)) {
	s.wish.OnPhaseChange(fn)
}

// Advance steps the scene clock and ticks with its delta
func (s *Scene) Advance() *Frame {
	dt := s.clock.Step()
	return s.Tick(s.clock.Seconds(), dt)
}

// Tick runs one update at elapsed scene seconds; dt <= 0 recomputes targets but integrates nothing
func (s *Scene) Tick(elapsed, dt float32) *Frame {
	advance := dt > 0

	s.cmds, s.obs = s.mail.drain(s.cmds, s.obs)
	for _, c := range s.cmds {
		c(s)
	}
	for _, o := range s.obs {
		if s.classifier.Observe(o.sample) {
			s.statTrans.Add(1)
		}
	}

	mode := s.store.Mode()
	kind := mode.Kind()
	photos := s.store.Photos()
	s.gallery.Sync(photos)

	s.rig.Update(kind, dt)
	view := s.rig.View()
	s.gallery.Update(mode, elapsed, view, advance)

	s.wish.Update(elapsed, advance)

	boost := s.store.SpiralBoost()
	s.spiral.Update(kind, elapsed, dt, boost)
	// The descending head drives the boost itself
	if advance && s.wish.Phase() != wish.PhaseDescend {
		if next := particle.DecayBoost(boost); next != boost {
			s.store.SetSpiralBoost(next)
		}
	}

	s.swarm.Update(kind, elapsed, dt)
	s.trail.Update(s.wish.Head(), s.wish.Emitting(), dt)
	s.snow.Update(elapsed, dt)
	s.topper.Update(kind, elapsed, advance)

	if advance {
		s.ticks++
	}
	s.publish(mode, len(photos))
	return s.assemble(mode, elapsed, view)
}

func (s *Scene) publish(mode scene.Mode, photos int) {
	s.statTicks.Store(int64(s.ticks))
	s.statPhotos.Store(int64(photos))
	s.statAlive.Store(int64(s.trail.Alive()))
	s.statSpawned.Store(int64(s.trail.Spawned()))
	s.statWishes.Store(int64(s.wish.Completed()))
	s.statPaused.Store(s.clock.IsPaused())
	s.statBoost.Set(float64(s.store.SpiralBoost()))
	s.statMode.Set(mode.String())
	s.statPhase.Set(s.wish.Phase().String())
	g, _ := s.classifier.Debouncer().Last()
	s.statGesture.Set(g.String())
}

func (s *Scene) assemble(mode scene.Mode, elapsed float32, view camera.View) *Frame {
	f := &s.frame
	f.Tick = s.ticks
	f.Elapsed = elapsed
	f.Paused = s.clock.IsPaused()
	f.Mode = mode
	f.Wish = s.wish.Phase()
	f.Boost = s.store.SpiralBoost()
	f.Photos = s.gallery.Views(f.Photos[:0])
	f.GalleryYaw = s.gallery.Yaw()
	f.Swarm = s.swarm.Buffers()
	f.SwarmYaw = s.swarm.Yaw()
	f.Spiral = s.spiral.Buffers()
	f.SpiralYaw = s.spiral.Yaw()
	f.Trail = s.trail.Buffers()
	f.Snow = s.snow.Buffers()
	f.Stars = s.stars.Buffers()
	f.Links = s.stars.Links()
	f.Head = s.wish.Head()
	f.Topper = s.topper.Pose()
	f.Camera = view
	return f
}
