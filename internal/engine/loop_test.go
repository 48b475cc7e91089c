package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// recordingSim logs every call in order. It is only touched by the loop goroutine
// until the loop is done.
type recordingSim struct {
	calls []string
	times []time.Time
}

func (s *recordingSim) HandleAction(a core.Action) {
	s.calls = append(s.calls, "action:"+a.String())
}

func (s *recordingSim) HandlePointer(ev core.PointerEvent) {
	s.calls = append(s.calls, "pointer")
}

func (s *recordingSim) Step(now time.Time) core.StepResult {
	s.calls = append(s.calls, "step")
	s.times = append(s.times, now)
	return core.StepResult{State: core.GameState{Phase: "playing"}}
}

func (s *recordingSim) steps() int {
	n := 0
	for _, c := range s.calls {
		if c == "step" {
			n++
		}
	}
	return n
}

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestVirtualLoopMaxTicks(t *testing.T) {
	sim := &recordingSim{}
	clock := NewFakeClock(epoch)
	loop := NewLoop(sim, LoopConfig{TickRate: 50, Virtual: clock, MaxTicks: 10})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sim.steps() != 10 || loop.Ticks() != 10 {
		t.Errorf("steps = %d, ticks = %d, expected 10", sim.steps(), loop.Ticks())
	}
	if got := clock.Now().Sub(epoch); got != 200*time.Millisecond {
		t.Errorf("virtual clock advanced %v, expected 200ms", got)
	}
	if !sim.times[0].Equal(epoch.Add(20 * time.Millisecond)) {
		t.Errorf("first step time = %v", sim.times[0])
	}
}

func TestLoopAppliesQueuedInputBeforeNextTick(t *testing.T) {
	sim := &recordingSim{}
	loop := NewLoop(sim, LoopConfig{Virtual: NewFakeClock(epoch), MaxTicks: 2})

	if !loop.SendAction(core.ActionConfirm) || !loop.SendPointer(core.PointerEvent{}) {
		t.Fatal("queue rejected input before start")
	}
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"action:Confirm", "pointer", "step", "step"}
	if len(sim.calls) != len(want) {
		t.Fatalf("calls = %v, expected %v", sim.calls, want)
	}
	for i := range want {
		if sim.calls[i] != want[i] {
			t.Errorf("call %d = %q, expected %q", i, sim.calls[i], want[i])
		}
	}
}

func TestLoopFrameHookStops(t *testing.T) {
	sim := &recordingSim{}
	loop := NewLoop(sim, LoopConfig{
		Virtual: NewFakeClock(epoch),
		OnFrame: func(tick uint64, _ core.StepResult) bool { return tick < 3 },
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sim.steps() != 3 {
		t.Errorf("steps = %d, expected 3", sim.steps())
	}
}

func TestLoopStopsSchedulingAfterCancel(t *testing.T) {
	sim := &recordingSim{}
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(sim, LoopConfig{
		TickRate: 1000,
		OnFrame: func(tick uint64, _ core.StepResult) bool {
			if tick == 5 {
				cancel()
			}
			return true
		},
	})

	err := loop.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, expected context.Canceled", err)
	}

	<-loop.Done()
	steps := sim.steps()
	time.Sleep(20 * time.Millisecond)
	if sim.steps() != steps {
		t.Errorf("loop kept stepping after cancellation: %d -> %d", steps, sim.steps())
	}
	if loop.SendPointer(core.PointerEvent{}) {
		t.Error("SendPointer() accepted input after the loop stopped")
	}
}

// slowSim steps slower than the tick interval so the ticker always has a tick
// pending when the context is cancelled.
type slowSim struct {
	recordingSim
}

func (s *slowSim) Step(now time.Time) core.StepResult {
	time.Sleep(3 * time.Millisecond)
	return s.recordingSim.Step(now)
}

func TestLoopNoStepAfterCancellingFrame(t *testing.T) {
	for run := 0; run < 50; run++ {
		sim := &slowSim{}
		ctx, cancel := context.WithCancel(context.Background())
		loop := NewLoop(sim, LoopConfig{
			Interval: time.Millisecond,
			OnFrame: func(tick uint64, _ core.StepResult) bool {
				if tick == 2 {
					cancel()
				}
				return true
			},
		})
		for i := 0; i < 8; i++ {
			loop.SendAction(core.ActionConfirm)
		}

		if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Fatalf("run %d: Run() error = %v, expected context.Canceled", run, err)
		}
		if got := sim.steps(); got != 2 {
			t.Fatalf("run %d: steps = %d, expected 2", run, got)
		}
		if last := sim.calls[len(sim.calls)-1]; last != "step" {
			t.Fatalf("run %d: %q applied after the cancelling frame", run, last)
		}
	}
}

func TestVirtualLoopDiscardsInputAfterCancel(t *testing.T) {
	sim := &recordingSim{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := NewLoop(sim, LoopConfig{Virtual: NewFakeClock(epoch)})
	loop.SendAction(core.ActionConfirm)

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, expected context.Canceled", err)
	}
	if len(sim.calls) != 0 {
		t.Errorf("calls = %v, expected none", sim.calls)
	}
}

func TestLoopRunTwice(t *testing.T) {
	loop := NewLoop(&recordingSim{}, LoopConfig{Virtual: NewFakeClock(epoch), MaxTicks: 1})
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := loop.Run(context.Background()); !errors.Is(err, ErrLoopStarted) {
		t.Errorf("second Run() error = %v, expected ErrLoopStarted", err)
	}
}

func TestLoopDropsWhenQueueFull(t *testing.T) {
	loop := NewLoop(&recordingSim{}, LoopConfig{QueueSize: 1})
	if !loop.SendAction(core.ActionUp) {
		t.Fatal("first send should fit")
	}
	if loop.SendAction(core.ActionDown) {
		t.Error("second send should be dropped, not block")
	}
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(epoch)
	c.Advance(time.Second)
	if !c.Now().Equal(epoch.Add(time.Second)) {
		t.Errorf("Now() = %v", c.Now())
	}
	c.Set(epoch)
	if !c.Now().Equal(epoch) {
		t.Errorf("Set() did not move the clock")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Int63() != b.Int63() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
