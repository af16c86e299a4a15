package physics

import "math"

// Vec3 is a point or direction in layout space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Mid returns the point halfway between v and w.
func (v Vec3) Mid(w Vec3) Vec3 { return v.Add(w).Scale(0.5) }
