package topology

import (
	"sort"

	mgmath "github.com/mgear-dev/mgear/pkg/math"
)

type distVert struct {
	dist float64
	vid  int
}

// FindNClosestVertices runs a level-synchronous BFS over the vertex graph
// starting from seeds and returns up to count vertex indices ordered by
// Euclidean distance from refPos. points is the flat V*3 position buffer.
//
// The BFS stops as soon as count vertices are reachable, not when those
// count are proven closest: surface-graph proximity prunes the candidate
// set before the Euclidean sort, so every returned vertex lies on the
// connected component around the seeds even when a geometrically closer
// vertex exists on a disconnected flap.
func (t *Topology) FindNClosestVertices(seeds []int, refPos mgmath.Vec3, points []float64, count int) []int {
	visited := make(map[int]struct{}, count*2)
	frontier := make([]int, len(seeds))
	copy(frontier, seeds)

	collected := make([]distVert, 0, count*2)
	for _, vid := range seeds {
		visited[vid] = struct{}{}
		collected = append(collected, distVert{vertexDistance(points, vid, refPos), vid})
	}

	for len(collected) < count && len(frontier) > 0 {
		var next []int
		for _, vid := range frontier {
			for _, n := range t.NeighborsOf(vid) {
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				next = append(next, n)
				collected = append(collected, distVert{vertexDistance(points, n, refPos), n})
			}
		}
		frontier = next
	}

	// Ties break on vertex id so identical inputs always yield identical
	// output.
	sort.Slice(collected, func(i, j int) bool {
		if collected[i].dist != collected[j].dist {
			return collected[i].dist < collected[j].dist
		}
		return collected[i].vid < collected[j].vid
	})

	n := count
	if len(collected) < n {
		n = len(collected)
	}
	result := make([]int, n)
	for i := 0; i < n; i++ {
		result[i] = collected[i].vid
	}
	return result
}

func vertexDistance(points []float64, vid int, p mgmath.Vec3) float64 {
	v := mgmath.Vec3{X: points[vid*3], Y: points[vid*3+1], Z: points[vid*3+2]}
	return v.Distance(p)
}
