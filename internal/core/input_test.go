package core

import "testing"

func TestPointerEventToLogical(t *testing.T) {
	ev := PointerEvent{
		Surface: SurfaceRect{Left: 10, Top: 20, Width: 160, Height: 240},
		Logical: V(320, 480),
	}

	tests := []struct {
		name string
		in   Point
		want Vec2
	}{
		{"origin", Point{10, 20}, V(0, 0)},
		{"centre", Point{90, 140}, V(160, 240)},
		{"far corner", Point{170, 260}, V(320, 480)},
		{"outside is not clamped here", Point{0, 0}, V(-20, -40)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ev.ToLogical(tc.in)
			if !ok {
				t.Fatal("ToLogical() reported a degenerate surface")
			}
			if got != tc.want {
				t.Errorf("ToLogical(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPointerEventDegenerateSurface(t *testing.T) {
	ev := PointerEvent{Surface: SurfaceRect{Width: 0, Height: 100}, Logical: V(320, 480)}
	if _, ok := ev.ToLogical(Point{1, 1}); ok {
		t.Error("zero-width surface should not map")
	}
}

func TestIdentitySurface(t *testing.T) {
	logical := V(320, 480)
	ev := PointerEvent{Surface: IdentitySurface(logical), Logical: logical}
	got, ok := ev.ToLogical(Point{123, 456})
	if !ok || got != V(123, 456) {
		t.Errorf("identity mapping = %v (ok=%v), expected (123, 456)", got, ok)
	}
}

func TestPlayerOpponent(t *testing.T) {
	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("players should oppose each other")
	}
	if NoPlayer.Opponent() != NoPlayer {
		t.Error("NoPlayer has no opponent")
	}
}

func TestActionString(t *testing.T) {
	if ActionConfirm.String() != "Confirm" {
		t.Errorf("ActionConfirm.String() = %q", ActionConfirm.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
