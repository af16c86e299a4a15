package render

import (
	"image/color"
	"math"
	"sort"

	"lafont/internal/scheduler"
	"lafont/pkg/inet"
)

// Colours of the three agent kinds.
var (
	ConstructorColor = color.RGBA{R: 70, G: 130, B: 240, A: 255}
	DuplicatorColor  = color.RGBA{R: 80, G: 200, B: 110, A: 255}
	EraserColor      = color.RGBA{R: 230, G: 70, B: 70, A: 255}

	wireColor   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	activeColor = color.RGBA{R: 250, G: 220, B: 90, A: 255}
)

// KindColor returns the colour used for agents of kind k.
func KindColor(k inet.Kind) color.RGBA {
	switch k {
	case inet.Constructor:
		return ConstructorColor
	case inet.Duplicator:
		return DuplicatorColor
	case inet.Eraser:
		return EraserColor
	}
	return color.RGBA{A: 255}
}

// AgentRadius is the world-space radius of an agent sphere.
const AgentRadius = 0.35

// Sprite is a projected agent.
type Sprite struct {
	ID     inet.AgentID
	X, Y   float64
	Radius float64
	Depth  float64
	Color  color.RGBA
}

// Line is a projected wire.
type Line struct {
	X0, Y0, X1, Y1 float64
	Color          color.RGBA
}

// Scene is a frame ready to be painted, sprites sorted far to near.
type Scene struct {
	Lines   []Line
	Sprites []Sprite
	// Extent is the distance of the farthest agent from the origin.
	Extent float64
}

// Build projects f through cam.
func Build(f scheduler.Frame, cam Camera) Scene {
	var s Scene
	focal := cam.Focal()
	for _, a := range f.Agents {
		s.Extent = math.Max(s.Extent, a.Pos.Len())
		x, y, depth, ok := cam.Project(a.Pos)
		if !ok {
			continue
		}
		s.Sprites = append(s.Sprites, Sprite{
			ID:     a.ID,
			X:      x,
			Y:      y,
			Radius: AgentRadius * focal / depth,
			Depth:  depth,
			Color:  KindColor(a.Kind),
		})
	}
	sort.SliceStable(s.Sprites, func(i, j int) bool { return s.Sprites[i].Depth > s.Sprites[j].Depth })

	for _, e := range f.Edges {
		x0, y0, _, ok0 := cam.Project(e.From)
		x1, y1, _, ok1 := cam.Project(e.To)
		if !ok0 || !ok1 {
			continue
		}
		col := wireColor
		if e.Active {
			col = activeColor
		}
		s.Lines = append(s.Lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: col})
	}
	return s
}
