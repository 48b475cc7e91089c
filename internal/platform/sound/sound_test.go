package sound

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	limit := SampleRate.N(2 * time.Second)
	for n < limit {
		got, ok := s.Stream(buf)
		for i := 0; i < got; i++ {
			peak = math.Max(peak, math.Max(math.Abs(buf[i][0]), math.Abs(buf[i][1])))
		}
		n += got
		if !ok {
			return n, peak
		}
	}
	t.Fatalf("streamer still running after %d samples", n)
	return n, peak
}

func TestEffectsAreShortAndAudible(t *testing.T) {
	cues := []core.Cue{core.CueHit, core.CueWall, core.CueGoal, core.CueEscalation, core.CuePass, core.CueGameOver}
	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			s := Effect(c, 1)
			if s == nil {
				t.Fatal("Effect() = nil")
			}
			n, peak := drain(t, s)
			if n == 0 {
				t.Error("effect produced no samples")
			}
			if peak <= 0.01 {
				t.Errorf("effect is silent, peak %v", peak)
			}
			if peak > 1 {
				t.Errorf("effect clips, peak %v", peak)
			}
		})
	}
}

func TestEffectNone(t *testing.T) {
	if Effect(core.CueNone, 1) != nil {
		t.Error("CueNone produced a sound")
	}
}

func TestEffectVolume(t *testing.T) {
	_, loud := drain(t, Effect(core.CueHit, 1))
	_, quiet := drain(t, Effect(core.CueHit, 0.25))
	if quiet >= loud {
		t.Errorf("volume 0.25 peak %v not below volume 1 peak %v", quiet, loud)
	}
	if _, silent := drain(t, Effect(core.CueHit, 0)); silent != 0 {
		t.Errorf("volume 0 peak = %v", silent)
	}
}

func TestToneLength(t *testing.T) {
	n, _ := drain(t, Tone(440, 0, 100*time.Millisecond, WaveSquare))
	if want := SampleRate.N(100 * time.Millisecond); n != want {
		t.Errorf("tone length = %d samples, expected %d", n, want)
	}
}

type recorder struct {
	played int
}

func (r *recorder) Play(s ...beep.Streamer) {
	r.played += len(s)
}

func TestPlayerForwardsCues(t *testing.T) {
	out := &recorder{}
	p := NewPlayer(out, 0.8)

	p.PlayAll([]core.Cue{core.CueHit, core.CueNone, core.CueGoal})
	if out.played != 2 {
		t.Errorf("played %d effects, expected 2", out.played)
	}

	if !p.ToggleMute() || !p.Muted() {
		t.Fatal("ToggleMute() did not mute")
	}
	p.Play(core.CueHit)
	if out.played != 2 {
		t.Error("muted player still played")
	}

	p.SetMuted(false)
	p.Play(core.CueWall)
	if out.played != 3 {
		t.Error("unmuted player did not play")
	}
}

func TestSilentPlayers(t *testing.T) {
	var nilPlayer *Player
	nilPlayer.Play(core.CueHit)
	nilPlayer.SetMuted(true)
	if nilPlayer.Enabled() || nilPlayer.Muted() {
		t.Error("nil player reports state")
	}

	var buf bytes.Buffer
	p := Degraded(log.New(&buf), errors.New("no device"))
	p.Play(core.CueGoal)
	if p.Enabled() {
		t.Error("degraded player claims an output")
	}
	if !strings.Contains(buf.String(), "no device") {
		t.Errorf("degradation not logged: %q", buf.String())
	}
}
