package engine

import (
	"sync"

	"github.com/lixenwraith/wishtree/gesture"
)

// command runs on the tick goroutine with exclusive access to the scene
type command func(*Scene)

// observation is one gesture input; nil sample means no hand
type observation struct {
	sample *gesture.Sample
}

// mailbox queues work from other goroutines until the next tick drains it
type mailbox struct {
	mu       sync.Mutex
	commands []command
	samples  []observation
}

func (m *mailbox) post(c command) {
	m.mu.Lock()
	m.commands = append(m.commands, c)
	m.mu.Unlock()
}

func (m *mailbox) observe(o observation) {
	m.mu.Lock()
	m.samples = append(m.samples, o)
	m.mu.Unlock()
}

// drain takes everything queued so far, reusing the caller's slices
func (m *mailbox) drain(cmds []command, obs []observation) ([]command, []observation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmds = append(cmds[:0], m.commands...)
	obs = append(obs[:0], m.samples...)
	clear(m.commands)
	m.commands = m.commands[:0]
	m.samples = m.samples[:0]
	return cmds, obs
}
