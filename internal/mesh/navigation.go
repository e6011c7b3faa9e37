package mesh

import (
	mgmath "github.com/mgear-dev/mgear/pkg/math"
)

// ClosestFace returns the index of the face whose surface is nearest to
// p, along with the closest point on it. Faces are fan-triangulated for
// the query. This is a brute-force scan; it replaces the host DCC's
// accelerated closest-point lookup in standalone use.
func (m *Mesh) ClosestFace(p mgmath.Vec3) (int, mgmath.Vec3) {
	bestFace := -1
	bestDistSq := 0.0
	var bestPoint mgmath.Vec3

	idx := 0
	for f, count := range m.FaceVertCounts {
		a := m.Point(m.FaceVertIndices[idx])
		for i := 1; i < count-1; i++ {
			b := m.Point(m.FaceVertIndices[idx+i])
			c := m.Point(m.FaceVertIndices[idx+i+1])
			q := closestPointOnTriangle(p, a, b, c)
			d := q.Sub(p).LengthSq()
			if bestFace < 0 || d < bestDistSq {
				bestFace = f
				bestDistSq = d
				bestPoint = q
			}
		}
		idx += count
	}
	return bestFace, bestPoint
}

// SeedVertices returns the vertex indices of the face nearest to p,
// which is the seed set the recorders expect for a guide at p.
func (m *Mesh) SeedVertices(p mgmath.Vec3) []int {
	f, _ := m.ClosestFace(p)
	if f < 0 {
		return nil
	}
	verts := m.FaceVerts(f)
	out := make([]int, len(verts))
	copy(out, verts)
	return out
}

// closestPointOnTriangle projects p onto triangle abc, clamping to edges
// and corners when the projection falls outside.
func closestPointOnTriangle(p, a, b, c mgmath.Vec3) mgmath.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}
