package sound

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Output accepts finished streamers for playback. speaker-backed outputs
// return immediately and mix in the background.
type Output interface {
	Play(s ...beep.Streamer)
}

// Player forwards cues to an Output. A Player without output, or a nil
// Player, drops every cue, so hosts never need to check whether audio works.
type Player struct {
	out    Output
	volume float64
	muted  atomic.Bool
}

// NewPlayer creates a player. out may be nil for silent operation.
func NewPlayer(out Output, volume float64) *Player {
	if volume <= 0 || volume > 1 {
		volume = 1
	}
	return &Player{out: out, volume: volume}
}

// Degraded returns a silent player and logs why audio is unavailable.
func Degraded(logger *log.Logger, err error) *Player {
	if logger != nil {
		logger.Warn("audio disabled", "err", err)
	}
	return NewPlayer(nil, 1)
}

// Play starts the effect for c without blocking.
func (p *Player) Play(c core.Cue) {
	if p == nil || p.out == nil || p.muted.Load() {
		return
	}
	if s := Effect(c, p.volume); s != nil {
		p.out.Play(s)
	}
}

// PlayAll plays every cue of a step result.
func (p *Player) PlayAll(cues []core.Cue) {
	for _, c := range cues {
		p.Play(c)
	}
}

// Enabled reports whether an output is attached.
func (p *Player) Enabled() bool {
	return p != nil && p.out != nil
}

// Muted reports the mute toggle.
func (p *Player) Muted() bool {
	return p != nil && p.muted.Load()
}

// SetMuted sets the mute toggle.
func (p *Player) SetMuted(m bool) {
	if p != nil {
		p.muted.Store(m)
	}
}

// ToggleMute flips the mute toggle and returns the new value.
func (p *Player) ToggleMute() bool {
	if p == nil {
		return true
	}
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
