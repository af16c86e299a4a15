//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Painter draws scenes onto an ebiten image.
type Painter struct {
	Background color.Color
}

// NewPainter returns a painter with a dark background.
func NewPainter() *Painter {
	return &Painter{Background: color.RGBA{R: 12, G: 12, B: 16, A: 255}}
}

// Draw clears dst and paints s.
func (p *Painter) Draw(dst *ebiten.Image, s Scene) {
	dst.Fill(p.Background)
	for _, l := range s.Lines {
		vector.StrokeLine(dst, float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1), 1, l.Color, true)
	}
	for _, sp := range s.Sprites {
		r := float32(max(sp.Radius, 1))
		vector.DrawFilledCircle(dst, float32(sp.X), float32(sp.Y), r, sp.Color, true)
		vector.StrokeCircle(dst, float32(sp.X), float32(sp.Y), r, 1, shade(sp.Color), true)
	}
}

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
