//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// DrawStatus writes lines in the top-left corner of screen.
func DrawStatus(screen *ebiten.Image, lines []string) {
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, panelPadding, panelPadding+headerBaseline+i*readoutHeight, labelColor)
	}
}

// DrawHelp lists the key bindings along the bottom edge of screen.
func DrawHelp(screen *ebiten.Image, height int) {
	const help = "space pause  n step  e edges  r reset  +/- speed  arrows orbit  wheel zoom  f fit  q quit"
	text.Draw(screen, help, basicfont.Face7x13, panelPadding, height-panelPadding, color.RGBA{R: 120, G: 120, B: 130, A: 255})
}
