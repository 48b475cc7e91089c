package bombpass

import (
	"fmt"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

const (
	minScreenW = 24
	minScreenH = 12
	bandH      = 5 // Rows of the centre band holding the bomb
)

var (
	bombArt = []string{
		"  ,*  ",
		" (##) ",
		"  ''  ",
	}
	boomArt = []string{
		"\\ | /",
		"BOOM!",
		"/ | \\",
	}
)

// Layout splits a w by h screen into the two player halves. ok is false when
// the screen is too small.
func Layout(w, h int) (top, bottom core.Rect, ok bool) {
	if w < minScreenW || h < minScreenH {
		return core.Rect{}, core.Rect{}, false
	}
	avail := h - 2 - bandH // HUD and hint rows
	half := avail / 2
	top = core.NewRect(0, 1, w, half)
	bottom = core.NewRect(0, h-1-half, w, half)
	return top, bottom, true
}

// PointerSurface maps the whole play area, centre band included, onto the
// logical field so a click lands in the half it is drawn in.
func (g *Game) PointerSurface(w, h int) core.SurfaceRect {
	if _, _, ok := Layout(w, h); !ok {
		return core.SurfaceRect{}
	}
	return core.SurfaceRect{Left: 0, Top: 1, Width: float64(w), Height: float64(h - 2)}
}

// FuseColor is the bomb colour for the fuse left.
func FuseColor(left time.Duration) core.Color {
	switch {
	case left < 3*time.Second:
		return core.ColorRed
	case left < 6*time.Second:
		return core.ColorOrange
	default:
		return core.ColorYellow
	}
}

// Render draws the current state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	top, bottom, ok := Layout(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorYellow)
		return
	}
	now := g.clock.Now()

	title := "BOMB PASS"
	if g.phase == PhasePlaying {
		title = fmt.Sprintf("BOMB PASS  passes %d", g.passes)
	}
	dst.DrawTextCentered(0, title, core.ColorWhite)

	g.drawHalf(dst, top, core.Player1)
	g.drawHalf(dst, bottom, core.Player2)

	bandTop := top.Bottom()
	dst.DrawHLine(0, bandTop, dst.Width(), '─', core.ColorGray)
	dst.DrawHLine(0, bottom.Y-1, dst.Width(), '─', core.ColorGray)
	mid := bandTop + bandH/2

	switch g.phase {
	case PhaseIdle:
		dst.DrawTextCentered(mid, "[ ENTER to light the fuse ]", core.ColorCyan)
	case PhasePlaying:
		c := FuseColor(g.Remaining(now))
		for i, line := range bombArt {
			dst.DrawTextCentered(mid-1+i, line, c)
		}
	case PhaseExploded:
		for i, line := range boomArt {
			dst.DrawTextCentered(mid-1+i, line, core.ColorBrightRed)
		}
	}

	dst.DrawTextCentered(dst.Height()-1, hint(g.phase), core.ColorGray)
}

func (g *Game) drawHalf(dst *core.Screen, area core.Rect, p core.PlayerID) {
	var fill rune
	var fillColor core.Color
	switch {
	case g.phase == PhaseExploded && g.holder == p:
		fill, fillColor = '▓', core.ColorRed
	case g.phase == PhasePlaying && g.holder == p:
		fill, fillColor = '░', core.PlayerColor(p)
	}
	if fill != 0 {
		for y := area.Y; y < area.Bottom(); y++ {
			dst.DrawHLine(area.X, y, area.W, fill, fillColor)
		}
	}

	mid := area.Y + area.H/2
	dst.DrawTextCentered(mid-1, fmt.Sprintf("PLAYER %d", int(p)), core.PlayerColor(p))
	switch {
	case g.phase == PhasePlaying && g.holder == p:
		dst.DrawTextCentered(mid+1, "PASS IT!", core.ColorBrightWhite)
	case g.phase == PhaseExploded && g.winner == p:
		dst.DrawTextCentered(mid+1, "WINNER", core.ColorGreen)
	case g.phase == PhaseExploded:
		dst.DrawTextCentered(mid+1, "BOOM", core.ColorBrightRed)
	}
}

func hint(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Enter start  Esc menu"
	case PhasePlaying:
		return "Holder: click your half, WASD (P1) or arrows (P2)"
	default:
		return "R play again  Esc menu"
	}
}
