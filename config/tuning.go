// Package config holds the scene tuning file: defaults, TOML load/save, clamping and live reload
package config

import (
	"errors"
	"math"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// ErrInvalid marks a tuning file that could not be parsed
var ErrInvalid = errors.New("invalid tuning file")

// Tuning is the on-disk tuning document
// Zero-valued fields after decode fall back to defaults in Normalize
type Tuning struct {
	Scene    SceneTuning    `toml:"scene"`
	Pose     PoseTuning     `toml:"pose"`
	Particle ParticleTuning `toml:"particle"`
	Gesture  GestureTuning  `toml:"gesture"`
	Audio    AudioTuning    `toml:"audio"`
	Upload   UploadTuning   `toml:"upload"`
}

// SceneTuning controls the tick loop
type SceneTuning struct {
	// Seed for every random layout, 0 draws from the wall clock
	Seed     int64 `toml:"seed"`
	TickRate int   `toml:"tick_rate"`
}

// PoseTuning controls photo and topper blending
type PoseTuning struct {
	Blend       float32 `toml:"blend"`
	TopperBlend float32 `toml:"topper_blend"`
}

// ParticleTuning sizes the particle pools
type ParticleTuning struct {
	SwarmCount  int     `toml:"swarm_count"`
	SpiralCount int     `toml:"spiral_count"`
	TrailCount  int     `toml:"trail_count"`
	SnowCount   int     `toml:"snow_count"`
	SwarmBlend  float32 `toml:"swarm_blend"`
	SpiralBlend float32 `toml:"spiral_blend"`
	Workers     int     `toml:"workers"`
}

// GestureTuning controls the debouncer and the websocket feed
type GestureTuning struct {
	Threshold int    `toml:"threshold"`
	FeedAddr  string `toml:"feed_addr"`
}

// AudioTuning controls the sound collaborator
type AudioTuning struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// UploadTuning controls runtime photo intake
type UploadTuning struct {
	// InboxDir is watched for dropped images, empty disables it
	InboxDir string `toml:"inbox_dir"`
}

// Default values
const (
	DefaultTickRate    = 60
	DefaultBlend       = 0.08
	DefaultTopperBlend = 0.05
	DefaultSwarmCount  = 4000
	DefaultSpiralCount = 800
	DefaultTrailCount  = 600
	DefaultSnowCount   = 200
	DefaultSwarmBlend  = 0.03
	DefaultSpiralBlend = 0.02
	DefaultWorkers     = 4
	DefaultThreshold   = 5
	DefaultFeedAddr    = "127.0.0.1:8765"
	DefaultVolume      = 0.4
)

// Pool caps
const (
	MaxTickRate  = 240
	MaxPool      = 50000
	MaxWorkers   = 64
	MaxThreshold = 120
)

// Default returns the built-in tuning
func Default() Tuning {
	return Tuning{
		Scene: SceneTuning{TickRate: DefaultTickRate},
		Pose: PoseTuning{
			Blend:       DefaultBlend,
			TopperBlend: DefaultTopperBlend,
		},
		Particle: ParticleTuning{
			SwarmCount:  DefaultSwarmCount,
			SpiralCount: DefaultSpiralCount,
			TrailCount:  DefaultTrailCount,
			SnowCount:   DefaultSnowCount,
			SwarmBlend:  DefaultSwarmBlend,
			SpiralBlend: DefaultSpiralBlend,
			Workers:     DefaultWorkers,
		},
		Gesture: GestureTuning{
			Threshold: DefaultThreshold,
			FeedAddr:  DefaultFeedAddr,
		},
		Audio: AudioTuning{
			Enabled: true,
			Volume:  DefaultVolume,
		},
	}
}

// Normalize replaces unset values with defaults and clamps the rest into range
func (t *Tuning) Normalize() {
	t.Scene.TickRate = clampInt(t.Scene.TickRate, DefaultTickRate, 1, MaxTickRate)

	t.Pose.Blend = clampFactor(t.Pose.Blend, DefaultBlend)
	t.Pose.TopperBlend = clampFactor(t.Pose.TopperBlend, DefaultTopperBlend)

	p := &t.Particle
	p.SwarmCount = clampInt(p.SwarmCount, DefaultSwarmCount, 1, MaxPool)
	p.SpiralCount = clampInt(p.SpiralCount, DefaultSpiralCount, 1, MaxPool)
	p.TrailCount = clampInt(p.TrailCount, DefaultTrailCount, 1, MaxPool)
	p.SnowCount = clampInt(p.SnowCount, DefaultSnowCount, 1, MaxPool)
	p.SwarmBlend = clampFactor(p.SwarmBlend, DefaultSwarmBlend)
	p.SpiralBlend = clampFactor(p.SpiralBlend, DefaultSpiralBlend)
	p.Workers = clampInt(p.Workers, DefaultWorkers, 1, MaxWorkers)

	t.Gesture.Threshold = clampInt(t.Gesture.Threshold, DefaultThreshold, 1, MaxThreshold)
	if t.Gesture.FeedAddr == "" {
		t.Gesture.FeedAddr = DefaultFeedAddr
	}

	if math.IsNaN(t.Audio.Volume) || t.Audio.Volume < 0 {
		t.Audio.Volume = 0
	}
	if t.Audio.Volume > 1 {
		t.Audio.Volume = 1
	}

	if t.Upload.InboxDir != "" {
		if dir, err := homedir.Expand(t.Upload.InboxDir); err == nil {
			t.Upload.InboxDir = filepath.Clean(dir)
		}
	}
}

// clampInt maps zero to def and bounds the rest to [lo, hi]
func clampInt(v, def, lo, hi int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampFactor maps zero or NaN to def and bounds the rest to (0, 1]
func clampFactor(v, def float32) float32 {
	if v == 0 || v != v {
		return def
	}
	if v < 0 {
		return def
	}
	if v > 1 {
		return 1
	}
	return v
}
