package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// soundCache stores rendered cues
type soundCache struct {
	mu    sync.RWMutex
	store [soundTypeCount]*beep.Buffer
}

func newSoundCache() *soundCache {
	return &soundCache{}
}

// get returns the cached buffer, rendering on first use
func (c *soundCache) get(st SoundType) *beep.Buffer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}

	c.mu.RLock()
	buf := c.store[st]
	c.mu.RUnlock()
	if buf != nil {
		return buf
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store[st] != nil {
		return c.store[st]
	}
	buf = generateSound(st)
	c.store[st] = buf
	return buf
}

// preload renders every cue
func (c *soundCache) preload() {
	for st := SoundType(0); st < soundTypeCount; st++ {
		c.get(st)
	}
}
