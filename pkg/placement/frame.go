package placement

import (
	mgmath "github.com/mgear-dev/mgear/pkg/math"
	"github.com/mgear-dev/mgear/pkg/topology"
)

// Centroid averages the positions of the given vertices. points is the
// flat V*3 position buffer.
func Centroid(vertIDs []int, points []float64) mgmath.Vec3 {
	var c mgmath.Vec3
	for _, vid := range vertIDs {
		c.X += points[vid*3]
		c.Y += points[vid*3+1]
		c.Z += points[vid*3+2]
	}
	inv := 1.0 / float64(len(vertIDs))
	return c.Scale(inv)
}

// ReferenceFrame builds the topology-relative anchor for a vertex
// neighborhood: the centroid plus the normalized sum of the normals of
// every face incident to any member vertex. A face shared by several
// members contributes exactly once.
func ReferenceFrame(vertIDs []int, points, faceNormals []float64, topo *topology.Topology) mgmath.Mat4 {
	centroid := Centroid(vertIDs, points)

	var normal mgmath.Vec3
	seen := make(map[int]struct{}, len(vertIDs)*4)
	for _, vid := range vertIDs {
		for _, f := range topo.FacesOf(vid) {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			normal.X += faceNormals[f*3]
			normal.Y += faceNormals[f*3+1]
			normal.Z += faceNormals[f*3+2]
		}
	}

	return mgmath.FromPositionAndNormal(centroid, normal.Normalized())
}
