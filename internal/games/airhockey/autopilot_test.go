package airhockey

import (
	"testing"

	"github.com/vovakirdan/duel-arcade/internal/config"
	"github.com/vovakirdan/duel-arcade/internal/core"
)

func TestAutopilotIdleOutsidePlay(t *testing.T) {
	cfg := config.DefaultHockeyConfig().Autopilot
	a := NewAutopilot(core.Player2, cfg, 3)

	h := newHarness(t)
	if _, ok := a.Next(h.g.Snapshot()); ok {
		t.Error("autopilot moved while configuring")
	}

	h.g.HandleAction(core.ActionConfirm)
	if _, ok := a.Next(h.g.Snapshot()); !ok {
		t.Error("autopilot idle while waiting")
	}

	h.play().goal(core.Player1)
	if _, ok := a.Next(h.g.Snapshot()); ok {
		t.Error("autopilot moved during the scoring pause")
	}
}

func TestAutopilotStaysOnItsHalf(t *testing.T) {
	cfg := config.DefaultHockeyConfig().Autopilot
	for _, side := range []core.PlayerID{core.Player1, core.Player2} {
		a := NewAutopilot(side, cfg, 9)
		h := newHarness(t).play()

		for i := 0; i < 300; i++ {
			target, ok := a.Next(h.g.Snapshot())
			if !ok {
				break
			}
			h.g.HandlePointer(h.g.PointerAt(target))
			if got := h.g.table.side(target.Y); got != side {
				t.Fatalf("P%d autopilot aimed at the other half: %v", side, target)
			}
			h.step(frame)
		}
	}
}

func TestAutopilotsRally(t *testing.T) {
	cfg := config.DefaultHockeyConfig().Autopilot
	pilots := []*Autopilot{
		NewAutopilot(core.Player1, cfg, 21),
		NewAutopilot(core.Player2, cfg, 22),
	}
	h := newHarness(t)
	h.g.HandleAction(core.ActionConfirm)

	hits := 0
	for i := 0; i < 600; i++ {
		snap := h.g.Snapshot()
		var points []core.Vec2
		for _, p := range pilots {
			if target, ok := p.Next(snap); ok {
				points = append(points, target)
			}
		}
		h.g.HandlePointer(h.g.PointerAt(points...))
		if hasCue(h.step(frame).Cues, core.CueHit) {
			hits++
		}
		if h.g.Phase() == PhaseScoring {
			h.finishPause()
		}
	}
	if hits == 0 {
		t.Error("autopilots never touched the puck")
	}
}

func TestCPUDrivesThroughRouter(t *testing.T) {
	h := newHarness(t)
	cpu := NewCPU(h.g, core.Player2, 4)

	if _, ok := cpu.Drive(); ok {
		t.Error("CPU produced input while configuring")
	}

	h.g.HandleAction(core.ActionConfirm)
	ev, ok := cpu.Drive()
	if !ok {
		t.Fatal("CPU idle while waiting")
	}
	h.g.HandlePointer(ev)
	if h.g.Phase() != PhasePlaying {
		t.Errorf("CPU touch did not start play, phase = %v", h.g.Phase())
	}
}

func TestCPUDisabledByTuning(t *testing.T) {
	cfg := config.DefaultHockeyConfig()
	cfg.Autopilot.Enabled = false

	g := New()
	g.ResetWith(core.RuntimeConfig{}, cfg)
	g.HandleAction(core.ActionConfirm)

	if _, ok := NewCPU(g, core.Player1, 1).Drive(); ok {
		t.Error("disabled autopilot produced input")
	}
}
