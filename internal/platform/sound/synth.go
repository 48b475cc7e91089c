// Package sound turns game cues into short synthesised effects. Nothing here
// touches an audio device; speakerout does that, so everything in this
// package can be tested headless.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq, slide float64 // Start frequency and change in Hz per second
	phase       float64
	length      int
	pos         int
	wave        Wave
	rate        beep.SampleRate
	rng         *rand.Rand
}

// Tone returns a streamer of the given shape whose frequency moves linearly by
// slide Hz per second.
func Tone(freq, slide float64, d time.Duration, w Wave) beep.Streamer {
	return &oscillator{
		freq:   freq,
		slide:  slide,
		length: SampleRate.N(d),
		wave:   w,
		rate:   SampleRate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + 1)), //nolint:gosec // noise timbre
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		f := o.freq + o.slide*float64(o.pos)/float64(o.rate)
		o.phase += math.Max(f, 0) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	s           beep.Streamer
	pos         int
	attack, rel int
	total       int
}

// Shape applies a linear attack and release to a stream of length d.
func Shape(s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{
		s:      s,
		attack: SampleRate.N(attack),
		rel:    SampleRate.N(release),
		total:  SampleRate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.rel > 0 && left < e.rel {
			vol = math.Min(vol, float64(left)/float64(e.rel))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a stream linearly; zero or less is silence.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func note(freq float64, d time.Duration, w Wave) beep.Streamer {
	return Shape(Tone(freq, 0, d, w), d, 5*time.Millisecond, d/2)
}

// Effect builds the streamer for a cue at the given master volume. CueNone and
// unknown cues return nil.
func Effect(c core.Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case core.CueHit:
		s = gain(note(660, 45*time.Millisecond, WaveSquare), 0.35)
	case core.CueWall:
		d := 35 * time.Millisecond
		sine, err := generators.SineTone(SampleRate, 220)
		if err != nil {
			return nil
		}
		s = gain(Shape(beep.Take(SampleRate.N(d), sine), d, 2*time.Millisecond, d/2), 0.5)
	case core.CueGoal:
		s = gain(beep.Seq(
			note(523.25, 90*time.Millisecond, WaveSquare),
			note(783.99, 160*time.Millisecond, WaveSquare),
		), 0.3)
	case core.CueEscalation:
		d := 400 * time.Millisecond
		s = beep.Mix(
			gain(Shape(Tone(180, 600, d, WaveSaw), d, 20*time.Millisecond, 150*time.Millisecond), 0.25),
			gain(Shape(Tone(0, 0, d, WaveNoise), d, 5*time.Millisecond, 300*time.Millisecond), 0.1),
		)
	case core.CuePass:
		d := 120 * time.Millisecond
		s = gain(Shape(Tone(0, 0, d, WaveNoise), d, 30*time.Millisecond, 80*time.Millisecond), 0.3)
	case core.CueGameOver:
		s = gain(beep.Seq(
			note(523.25, 110*time.Millisecond, WaveSine),
			note(659.25, 110*time.Millisecond, WaveSine),
			note(783.99, 110*time.Millisecond, WaveSine),
			note(1046.5, 300*time.Millisecond, WaveSine),
		), 0.6)
	default:
		return nil
	}
	return gain(s, volume)
}
