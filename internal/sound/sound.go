// Package sound plays terminal bell cues. Cues are best effort: write errors
// are dropped and never reach gameplay.
package sound

import (
	"io"
	"strings"
	"sync"
)

// Cue identifies a gameplay sound.
type Cue int

const (
	Flip Cue = iota
	Match
	Mismatch
	Win
	PowerUp
)

// Bell counts per cue. The terminal only has one tone, so cues differ by
// repetition.
var bells = map[Cue]int{
	Flip:     1,
	Match:    2,
	Mismatch: 1,
	Win:      3,
	PowerUp:  2,
}

// Player writes BEL characters to an output stream.
type Player struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
}

// New returns a player writing to out. A nil out or enabled=false yields a
// silent player.
func New(out io.Writer, enabled bool) *Player {
	return &Player{out: out, enabled: enabled && out != nil}
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Toggle flips the enabled state and returns the new value.
func (p *Player) Toggle() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out != nil {
		p.enabled = !p.enabled
	}
	return p.enabled
}

// Play emits cue.
func (p *Player) Play(cue Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	n := bells[cue]
	if n == 0 {
		return
	}
	_, _ = io.WriteString(p.out, strings.Repeat("\a", n))
}
