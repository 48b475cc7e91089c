package engine

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// ErrLoopStarted is returned when Run is called on a loop that already ran.
var ErrLoopStarted = errors.New("engine: loop already started")

// Sim is the part of a game the loop drives.
type Sim interface {
	HandleAction(a core.Action)
	HandlePointer(ev core.PointerEvent)
	Step(now time.Time) core.StepResult
}

// FrameFunc observes each completed tick. Returning false stops the loop.
type FrameFunc func(tick uint64, res core.StepResult) bool

// LoopConfig controls scheduling.
type LoopConfig struct {
	TickRate  int           // Ticks per second (default 60)
	QueueSize int           // Buffered inputs before new ones are dropped (default 64)
	Clock     core.Clock    // Time source passed to Step (default wall clock)
	Virtual   *FakeClock    // When set, ticks run back to back and advance this clock
	OnFrame   FrameFunc     // Optional per-tick observer
	MaxTicks  uint64        // Stop after this many ticks; 0 means unbounded
	Interval  time.Duration // Derived from TickRate when zero
}

type input struct {
	action  core.Action
	pointer *core.PointerEvent
}

// Loop owns one game instance on a single goroutine. Inputs are queued from any
// goroutine and applied between ticks, so the game itself needs no locking.
type Loop struct {
	sim     Sim
	cfg     LoopConfig
	inputs  chan input
	done    chan struct{}
	started chan struct{}
	ticks   uint64
}

// NewLoop prepares a loop for sim. Nothing runs until Run.
func NewLoop(sim Sim, cfg LoopConfig) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second / time.Duration(cfg.TickRate)
	}
	switch {
	case cfg.Virtual != nil:
		cfg.Clock = cfg.Virtual
	case cfg.Clock == nil:
		cfg.Clock = core.SystemClock{}
	}

	return &Loop{
		sim:     sim,
		cfg:     cfg,
		inputs:  make(chan input, cfg.QueueSize),
		done:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
}

// SendPointer queues a pointer event. It never blocks: false means the loop has
// stopped or the queue is full and the event was dropped.
func (l *Loop) SendPointer(ev core.PointerEvent) bool {
	return l.send(input{pointer: &ev})
}

// SendAction queues a shell action with the same semantics as SendPointer.
func (l *Loop) SendAction(a core.Action) bool {
	return l.send(input{action: a})
}

func (l *Loop) send(in input) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.inputs <- in:
		return true
	default:
		return false
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Ticks returns the number of completed ticks. Only meaningful after Done.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Run ticks the game until ctx is cancelled, OnFrame returns false or MaxTicks
// is reached. Once it returns no further tick is scheduled and queued inputs
// are discarded. It returns ctx.Err() on cancellation and nil otherwise.
func (l *Loop) Run(ctx context.Context) error {
	select {
	case l.started <- struct{}{}:
	default:
		return ErrLoopStarted
	}
	defer close(l.done)

	if l.cfg.Virtual != nil {
		return l.runVirtual(ctx)
	}

	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-l.inputs:
			// select picks among ready cases at random, so a cancelled ctx
			// can lose to a queued input or a pending tick.
			if err := ctx.Err(); err != nil {
				return err
			}
			l.apply(in)
		case <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			if !l.tick() {
				return nil
			}
		}
	}
}

// runVirtual advances the fake clock one interval per tick without sleeping.
func (l *Loop) runVirtual(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.drain(ctx); err != nil {
			return err
		}
		l.cfg.Virtual.Advance(l.cfg.Interval)
		if !l.tick() {
			return nil
		}
	}
}

func (l *Loop) drain(ctx context.Context) error {
	for {
		select {
		case in := <-l.inputs:
			if err := ctx.Err(); err != nil {
				return err
			}
			l.apply(in)
		default:
			return ctx.Err()
		}
	}
}

func (l *Loop) apply(in input) {
	if in.pointer != nil {
		l.sim.HandlePointer(*in.pointer)
		return
	}
	l.sim.HandleAction(in.action)
}

// tick runs one step and reports whether the loop should continue.
func (l *Loop) tick() bool {
	res := l.sim.Step(l.cfg.Clock.Now())
	l.ticks++

	if l.cfg.OnFrame != nil && !l.cfg.OnFrame(l.ticks, res) {
		return false
	}
	return l.cfg.MaxTicks == 0 || l.ticks < l.cfg.MaxTicks
}
