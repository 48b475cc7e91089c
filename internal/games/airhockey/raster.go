package airhockey

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Raster palette
var (
	rasterTable  = colorful.Color{R: 0.05, G: 0.09, B: 0.16}
	rasterLine   = colorful.Color{R: 0.35, G: 0.42, B: 0.52}
	rasterP1     = colorful.Color{R: 0.25, G: 0.55, B: 1.00}
	rasterP2     = colorful.Color{R: 1.00, G: 0.30, B: 0.30}
	rasterPuck   = colorful.Color{R: 0.95, G: 0.95, B: 0.95}
	rasterFireLo = colorful.Color{R: 1.00, G: 0.62, B: 0.11}
	rasterFireHi = colorful.Color{R: 1.00, G: 0.18, B: 0.18}
	rasterWhite  = colorful.Color{R: 1, G: 1, B: 1}
)

const goalDepth = 4 // Pixel thickness of the goal mouth bars at scale 1

// RenderImage draws the current frame at one pixel per table unit times scale.
func (g *Game) RenderImage(scale int) *image.RGBA {
	return RasterSnapshot(g.Snapshot(), scale)
}

// RasterSnapshot paints a snapshot onto a new RGBA image.
func RasterSnapshot(s Snapshot, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	k := float64(scale)
	w := int(math.Ceil(s.Field.X * k))
	h := int(math.Ceil(s.Field.Y * k))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(rasterTable)), image.Point{}, draw.Src)

	// Centre line, dashed
	cy := h / 2
	for x := 0; x < w; x++ {
		if (x/(6*scale))%2 == 0 {
			img.Set(x, cy, rgba(rasterLine))
		}
	}

	// Goal mouths
	lo := int(s.GoalSpan[0] * k)
	hi := int(s.GoalSpan[1] * k)
	depth := goalDepth * scale
	fillRect(img, image.Rect(lo, 0, hi, depth), rgba(rasterP1))
	fillRect(img, image.Rect(lo, h-depth, hi, h), rgba(rasterP2))

	e := s.Entities
	fillDisc(img, e.Paddle1, k, rasterP1)
	fillDisc(img, e.Paddle2, k, rasterP2)
	fillDisc(img, e.Puck, k, puckTint(s))

	drawRasterText(img, s, scale)
	return img
}

// puckTint pulses between the fire colours once a second while escalated.
func puckTint(s Snapshot) colorful.Color {
	if !s.Round.Escalated {
		return rasterPuck
	}
	phase := float64(s.Now.Sub(s.Round.EscalationStart)%time.Second) / float64(time.Second)
	t := 0.5 - 0.5*math.Cos(2*math.Pi*phase)
	return rasterFireLo.BlendHcl(rasterFireHi, t).Clamped()
}

// fillDisc shades an entity with a radial highlight toward its centre.
func fillDisc(img *image.RGBA, e Entity, k float64, base colorful.Color) {
	cx, cy, r := e.Pos.X*k, e.Pos.Y*k, e.Radius*k
	if r <= 0 || !e.Pos.IsFinite() {
		return
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / r
			if d > 1 {
				continue
			}
			img.Set(x, y, rgba(rasterWhite.BlendLab(base, 0.55+0.45*d).Clamped()))
		}
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawRasterText(img *image.RGBA, s Snapshot, scale int) {
	r := s.Round
	h := img.Bounds().Dy()
	mid := h / 2

	drawString(img, fmt.Sprintf("P1 %d", r.Score1), 6, 20*scale, rgba(rasterP1))
	drawString(img, fmt.Sprintf("P2 %d", r.Score2), 6, h-12*scale, rgba(rasterP2))

	if r.Escalated {
		drawCentered(img, fmt.Sprintf("FIRE x%d", s.EscalationPoints), mid-8*scale, rgba(rasterFireLo))
	}

	switch r.Phase {
	case PhaseConfiguring:
		drawCentered(img, fmt.Sprintf("TARGET %d  PADDLE %s", s.TargetOption, s.PaddleOption), mid-20, rgba(rasterWhite))
	case PhaseWaiting:
		drawCentered(img, "TOUCH YOUR HALF TO START", mid-20, rgba(rasterWhite))
	case PhaseScoring:
		drawCentered(img, fmt.Sprintf("GOAL! P%d +%d", int(r.LastScorer), r.LastAward), mid-20, rgba(playerTint(r.LastScorer)))
	case PhaseGameOver:
		drawCentered(img, fmt.Sprintf("PLAYER %d WINS %d-%d", int(r.Winner), r.Score1, r.Score2), mid-20, rgba(playerTint(r.Winner)))
	}
}

func playerTint(p core.PlayerID) colorful.Color {
	switch p {
	case core.Player1:
		return rasterP1
	case core.Player2:
		return rasterP2
	default:
		return rasterWhite
	}
}

func drawString(img *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func drawCentered(img *image.RGBA, s string, y int, c color.Color) {
	width := font.MeasureString(basicfont.Face7x13, s).Ceil()
	drawString(img, s, (img.Bounds().Dx()-width)/2, y, c)
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// WritePNG encodes a frame as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("airhockey: encode png: %w", err)
	}
	return nil
}
