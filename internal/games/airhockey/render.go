package airhockey

import (
	"fmt"
	"math"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar     = '●'
	PuckChar       = '◉'
	CenterLineChar = '┄'
	GoalChar       = '━'
)

// Minimum screen that still fits a playable table.
const (
	minScreenW = 24
	minScreenH = 14
)

// Layout returns the interior of the table on a w by h cell screen. Terminal
// cells are about twice as tall as wide, so each logical unit spans twice the
// columns it spans rows. ok is false when the screen is too small.
func Layout(w, h int, field core.Vec2) (inner core.Rect, ok bool) {
	if w < minScreenW || h < minScreenH || field.X <= 0 || field.Y <= 0 {
		return core.Rect{}, false
	}

	availW := w - 2 // Side borders
	availH := h - 4 // HUD, borders, hint line

	rows := availH
	cols := int(math.Round(float64(rows) * field.X / field.Y * 2))
	if cols > availW {
		cols = availW
		rows = int(math.Round(float64(cols) * field.Y / field.X / 2))
	}

	return core.NewRect((w-cols)/2, 2, cols, rows), true
}

// PointerSurface returns the device rectangle, in cells, that pointer events on
// a w by h screen must be mapped through.
func (g *Game) PointerSurface(w, h int) core.SurfaceRect {
	inner, ok := Layout(w, h, g.table.field)
	if !ok {
		return core.SurfaceRect{}
	}
	return core.SurfaceRect{
		Left:   float64(inner.X),
		Top:    float64(inner.Y),
		Width:  float64(inner.W),
		Height: float64(inner.H),
	}
}

// Render draws the current state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot())
}

// RenderSnapshot paints a frame from a snapshot alone.
func RenderSnapshot(dst *core.Screen, s Snapshot) {
	inner, ok := Layout(dst.Width(), dst.Height(), s.Field)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorYellow)
		return
	}

	drawHUD(dst, s)
	drawTable(dst, inner, s)
	drawEntities(dst, inner, s)
	drawOverlay(dst, inner, s)
	dst.DrawTextCentered(dst.Height()-1, hint(s.Round.Phase), core.ColorGray)
}

func drawHUD(dst *core.Screen, s Snapshot) {
	r := s.Round
	dst.DrawTextColored(1, 0, fmt.Sprintf("P1 %d", r.Score1), core.PlayerColor(core.Player1))
	right := fmt.Sprintf("%d P2", r.Score2)
	dst.DrawTextColored(dst.Width()-1-len(right), 0, right, core.PlayerColor(core.Player2))

	title := fmt.Sprintf("AIR HOCKEY  to %d", r.Target)
	if r.Escalated {
		title = fmt.Sprintf("FIRE! goals x%d", s.EscalationPoints)
		dst.DrawTextCentered(0, title, core.ColorOrange)
		return
	}
	dst.DrawTextCentered(0, title, core.ColorWhite)
}

func drawTable(dst *core.Screen, inner core.Rect, s Snapshot) {
	border := core.NewRect(inner.X-1, inner.Y-1, inner.W+2, inner.H+2)
	boxColor := core.ColorCyan
	if s.Round.Escalated {
		boxColor = core.ColorOrange
	}
	dst.DrawBox(border, boxColor)

	// Goal mouths on the top and bottom borders
	for cx := 0; cx < inner.W; cx++ {
		lx := (float64(cx) + 0.5) / float64(inner.W) * s.Field.X
		if lx > s.GoalSpan[0] && lx < s.GoalSpan[1] {
			dst.SetColored(inner.X+cx, border.Y, GoalChar, core.PlayerColor(core.Player1))
			dst.SetColored(inner.X+cx, border.Bottom()-1, GoalChar, core.PlayerColor(core.Player2))
		}
	}

	dst.DrawHLine(inner.X, inner.Y+inner.H/2, inner.W, CenterLineChar, core.ColorGray)
}

func drawEntities(dst *core.Screen, inner core.Rect, s Snapshot) {
	e := s.Entities
	drawBody(dst, inner, s.Field, e.Paddle1, PaddleChar, core.PlayerColor(core.Player1))
	drawBody(dst, inner, s.Field, e.Paddle2, PaddleChar, core.PlayerColor(core.Player2))

	puckColor := core.ColorBrightWhite
	if s.Round.Escalated {
		puckColor = core.ColorOrange
	}
	drawBody(dst, inner, s.Field, e.Puck, PuckChar, puckColor)
}

// drawBody maps an entity from table units into cells and fills its disc.
func drawBody(dst *core.Screen, inner core.Rect, field core.Vec2, e Entity, r rune, c core.Color) {
	sx := float64(inner.W) / field.X
	sy := float64(inner.H) / field.Y
	dst.DrawDisc(
		float64(inner.X)+e.Pos.X*sx,
		float64(inner.Y)+e.Pos.Y*sy,
		e.Radius*sx,
		e.Radius*sy,
		r, c,
	)
}

func drawOverlay(dst *core.Screen, inner core.Rect, s Snapshot) {
	mid := inner.Y + inner.H/2
	r := s.Round

	switch r.Phase {
	case PhaseConfiguring:
		rows := []string{
			"AIR HOCKEY",
			"",
			option(s.Cursor == rowTarget, fmt.Sprintf("Target  < %d >", s.TargetOption)),
			option(s.Cursor == rowPaddle, fmt.Sprintf("Paddle  < %s >", s.PaddleOption)),
			"",
			"ENTER to start",
		}
		top := mid - len(rows)/2
		dst.DrawRect(core.NewRect(inner.X, top-1, inner.W, len(rows)+2), ' ')
		for i, line := range rows {
			color := core.ColorWhite
			if i == 0 {
				color = core.ColorCyan
			}
			dst.DrawTextCentered(top+i, line, color)
		}

	case PhaseWaiting:
		dst.DrawTextCentered(mid-1, "TOUCH YOUR HALF", core.ColorYellow)
		dst.DrawTextCentered(mid+1, "TO START", core.ColorYellow)

	case PhaseScoring:
		msg := fmt.Sprintf("GOAL! P%d +%d", int(r.LastScorer), r.LastAward)
		dst.DrawTextCentered(mid, msg, core.PlayerColor(r.LastScorer))

	case PhaseGameOver:
		dst.DrawRect(core.NewRect(inner.X, mid-2, inner.W, 5), ' ')
		dst.DrawTextCentered(mid-1, fmt.Sprintf("PLAYER %d WINS", int(r.Winner)), core.PlayerColor(r.Winner))
		dst.DrawTextCentered(mid+1, fmt.Sprintf("%d - %d", r.Score1, r.Score2), core.ColorWhite)
	}
}

func option(selected bool, text string) string {
	if selected {
		return "> " + text
	}
	return "  " + text
}

func hint(p Phase) string {
	switch p {
	case PhaseConfiguring:
		return "↑↓ option  ←→ value  Enter start  Esc menu"
	case PhaseWaiting, PhasePlaying:
		return "Mouse or WASD / arrows  Esc menu"
	case PhaseGameOver:
		return "R play again  Esc menu"
	default:
		return ""
	}
}
