package physics

import (
	"math"

	"lafont/pkg/inet"

	"golang.org/x/sync/errgroup"
)

// nearZero is the distance below which two bodies are treated as coincident.
const nearZero = 1e-9

// substep integrates one step and returns the largest displacement.
func (l *Layout) substep(dt float64) float64 {
	for i, id := range l.ids {
		l.pos[i] = l.bodies[id].Pos
	}
	l.accumulate()

	maxMove := 0.0
	for i, id := range l.ids {
		b := l.bodies[id]
		b.Vel = b.Vel.Add(l.forces[i].Scale(dt / l.cfg.Mass)).Scale(l.cfg.Damping)
		move := b.Vel.Scale(dt)
		b.Pos = b.Pos.Add(move)
		maxMove = math.Max(maxMove, move.Len())
	}
	return maxMove
}

// accumulate fills l.forces from the position snapshot. The force on each
// body is summed in the same order whether or not the work is split across
// goroutines, so both paths give identical results.
func (l *Layout) accumulate() {
	n := len(l.ids)
	workers := min(l.cfg.Workers, n)
	if workers <= 1 {
		for i := range n {
			l.forces[i] = l.force(i)
		}
		return
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				l.forces[i] = l.force(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// force returns the net force on body i.
func (l *Layout) force(i int) Vec3 {
	c := l.cfg
	p := l.pos[i]
	f := p.Scale(-c.Gravity)

	for j, q := range l.pos {
		if j == i {
			continue
		}
		d := p.Sub(q)
		dist := d.Len()
		if c.Cutoff > 0 && dist > c.Cutoff {
			continue
		}
		var dir Vec3
		if dist < nearZero {
			dir = pairDirection(l.ids[i], l.ids[j])
		} else {
			dir = d.Scale(1 / dist)
		}
		r := math.Max(dist, c.MinDistance)
		f = f.Add(dir.Scale(c.Repulsion / (r * r)))
	}

	for _, s := range l.springs[i] {
		d := l.pos[s.to].Sub(p)
		dist := d.Len()
		if dist < nearZero {
			continue
		}
		f = f.Add(d.Scale(c.Spring * (dist - s.rest) / dist))
	}
	return f
}

// pairDirection returns a fixed unit vector for the pair (a, b) used when the
// two bodies coincide. Swapping a and b flips it, so the pair is pushed apart.
func pairDirection(a, b inet.AgentID) Vec3 {
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}
	h := splitmix64(uint64(a)<<32 | uint64(b))
	z := float64(h&0xffffffff)/float64(1<<32)*2 - 1
	phi := float64(h>>32) / float64(1<<32) * 2 * math.Pi
	s := math.Sqrt(1 - z*z)
	return Vec3{s * math.Cos(phi), s * math.Sin(phi), z}.Scale(sign)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
