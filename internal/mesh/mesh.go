// Package mesh holds the polygon mesh container used by the standalone
// tooling, plus the closest-point query that stands in for the host
// DCC's seed lookup.
package mesh

import (
	"fmt"

	mgmath "github.com/mgear-dev/mgear/pkg/math"
	"github.com/mgear-dev/mgear/pkg/placement"
)

// Mesh is a polygon mesh in flat-buffer form. Faces may have any arity.
type Mesh struct {
	Points          []float64 // V*3
	FaceVertCounts  []int
	FaceVertIndices []int
	FaceNormals     []float64 // F*3, filled by ComputeFaceNormals
}

// NumVerts returns the vertex count.
func (m *Mesh) NumVerts() int {
	return len(m.Points) / 3
}

// NumFaces returns the face count.
func (m *Mesh) NumFaces() int {
	return len(m.FaceVertCounts)
}

// Point returns vertex v as a Vec3.
func (m *Mesh) Point(v int) mgmath.Vec3 {
	return mgmath.Vec3{X: m.Points[v*3], Y: m.Points[v*3+1], Z: m.Points[v*3+2]}
}

// FaceVerts returns the vertex indices of face f.
func (m *Mesh) FaceVerts(f int) []int {
	start := 0
	for i := 0; i < f; i++ {
		start += m.FaceVertCounts[i]
	}
	return m.FaceVertIndices[start : start+m.FaceVertCounts[f]]
}

// Validate checks buffer consistency and index ranges.
func (m *Mesh) Validate() error {
	if len(m.Points)%3 != 0 {
		return fmt.Errorf("points length %d is not a multiple of 3", len(m.Points))
	}
	total := 0
	for f, count := range m.FaceVertCounts {
		if count < 3 {
			return fmt.Errorf("face %d has %d vertices, need at least 3", f, count)
		}
		total += count
	}
	if total != len(m.FaceVertIndices) {
		return fmt.Errorf("face vertex stream has %d indices, counts sum to %d",
			len(m.FaceVertIndices), total)
	}
	numVerts := m.NumVerts()
	for i, v := range m.FaceVertIndices {
		if v < 0 || v >= numVerts {
			return fmt.Errorf("face vertex index %d out of range [0, %d) at position %d",
				v, numVerts, i)
		}
	}
	return nil
}

// ComputeFaceNormals fills FaceNormals using Newell's method, which is
// stable for non-convex and slightly non-planar polygons.
func (m *Mesh) ComputeFaceNormals() {
	m.FaceNormals = make([]float64, m.NumFaces()*3)

	idx := 0
	for f, count := range m.FaceVertCounts {
		var n mgmath.Vec3
		for i := 0; i < count; i++ {
			cur := m.Point(m.FaceVertIndices[idx+i])
			next := m.Point(m.FaceVertIndices[idx+(i+1)%count])
			n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
			n.Y += (cur.Z - next.Z) * (cur.X + next.X)
			n.Z += (cur.X - next.X) * (cur.Y + next.Y)
		}
		n = n.Normalized()
		m.FaceNormals[f*3] = n.X
		m.FaceNormals[f*3+1] = n.Y
		m.FaceNormals[f*3+2] = n.Z
		idx += count
	}
}

// Data returns the flat representation consumed by the placement engine.
func (m *Mesh) Data() placement.MeshData {
	return placement.MeshData{
		NumVerts:        m.NumVerts(),
		Points:          m.Points,
		FaceNormals:     m.FaceNormals,
		FaceVertCounts:  m.FaceVertCounts,
		FaceVertIndices: m.FaceVertIndices,
	}
}
