// Package render projects frames onto the screen.
package render

import (
	"math"

	"lafont/internal/physics"
)

// Camera orbits the origin and projects with a pinhole model.
type Camera struct {
	Yaw, Pitch float64
	Distance   float64
	// FOV is the vertical field of view in radians.
	FOV           float64
	Width, Height int
}

const (
	near        = 0.1
	maxPitch    = 1.5
	minDistance = 2
	maxDistance = 500
)

// NewCamera returns a camera for a w by h view.
func NewCamera(w, h int) Camera {
	return Camera{Yaw: 0.6, Pitch: 0.35, Distance: 30, FOV: 1, Width: w, Height: h}
}

// Orbit rotates the camera around the origin.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

// Zoom multiplies the distance to the origin by factor.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(minDistance, math.Min(maxDistance, c.Distance*factor))
}

// Fit moves the camera so that a sphere of the given radius around the origin
// fills most of the view.
func (c *Camera) Fit(radius float64) {
	if radius <= 0 {
		return
	}
	c.Distance = math.Max(minDistance, math.Min(maxDistance, radius/math.Tan(c.FOV/2)*1.2+radius))
}

// Focal returns the focal length in pixels.
func (c Camera) Focal() float64 {
	return float64(c.Height) / 2 / math.Tan(c.FOV/2)
}

// Project maps p to screen coordinates. depth is the distance along the view
// axis; ok is false for points behind the near plane.
func (c Camera) Project(p physics.Vec3) (x, y, depth float64, ok bool) {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)

	// yaw around Y, then pitch around X
	x1 := p.X*cy - p.Z*sy
	z1 := p.X*sy + p.Z*cy
	y2 := p.Y*cp - z1*sp
	z2 := p.Y*sp + z1*cp

	depth = z2 + c.Distance
	if depth < near {
		return 0, 0, depth, false
	}
	f := c.Focal() / depth
	return float64(c.Width)/2 + x1*f, float64(c.Height)/2 - y2*f, depth, true
}
