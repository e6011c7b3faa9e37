// Package topology converts polygon meshes into compressed adjacency
// tables and runs seeded breadth-first searches over the vertex graph.
package topology

import "sort"

// Topology holds vertex adjacency for a polygon mesh in CSR form: for
// vertex v, Neighbors[NeighborOffsets[v]:NeighborOffsets[v+1]] lists the
// vertices sharing a polygon edge with v, sorted ascending, and
// VertFaces[VertFaceOffsets[v]:VertFaceOffsets[v+1]] lists the faces
// incident to v in face order.
type Topology struct {
	NeighborOffsets []int
	Neighbors       []int
	VertFaceOffsets []int
	VertFaces       []int
}

// Build constructs both adjacency tables from flat polygon streams.
// faceVertCounts holds the vertex count of each face; faceVertIndices is
// the concatenation of every face's vertex indices. Faces of any arity
// are accepted.
func Build(numVerts int, faceVertCounts, faceVertIndices []int) *Topology {
	t := &Topology{}
	t.buildNeighbors(numVerts, faceVertCounts, faceVertIndices)
	t.buildVertFaces(numVerts, faceVertCounts, faceVertIndices)
	return t
}

func (t *Topology) buildNeighbors(numVerts int, faceVertCounts, faceVertIndices []int) {
	adj := make([]map[int]struct{}, numVerts)

	idx := 0
	for _, count := range faceVertCounts {
		for i := 0; i < count; i++ {
			v0 := faceVertIndices[idx+i]
			v1 := faceVertIndices[idx+(i+1)%count]
			if adj[v0] == nil {
				adj[v0] = make(map[int]struct{}, 8)
			}
			if adj[v1] == nil {
				adj[v1] = make(map[int]struct{}, 8)
			}
			adj[v0][v1] = struct{}{}
			adj[v1][v0] = struct{}{}
		}
		idx += count
	}

	t.NeighborOffsets = make([]int, numVerts+1)
	for v := 0; v < numVerts; v++ {
		t.NeighborOffsets[v+1] = t.NeighborOffsets[v] + len(adj[v])
	}

	t.Neighbors = make([]int, t.NeighborOffsets[numVerts])
	for v := 0; v < numVerts; v++ {
		start := t.NeighborOffsets[v]
		i := start
		for n := range adj[v] {
			t.Neighbors[i] = n
			i++
		}
		// Sorted slices keep BFS expansion deterministic.
		sort.Ints(t.Neighbors[start:t.NeighborOffsets[v+1]])
	}
}

func (t *Topology) buildVertFaces(numVerts int, faceVertCounts, faceVertIndices []int) {
	counts := make([]int, numVerts)
	idx := 0
	for _, count := range faceVertCounts {
		for i := 0; i < count; i++ {
			counts[faceVertIndices[idx+i]]++
		}
		idx += count
	}

	t.VertFaceOffsets = make([]int, numVerts+1)
	for v := 0; v < numVerts; v++ {
		t.VertFaceOffsets[v+1] = t.VertFaceOffsets[v] + counts[v]
	}

	t.VertFaces = make([]int, t.VertFaceOffsets[numVerts])
	writePos := make([]int, numVerts)
	idx = 0
	for f, count := range faceVertCounts {
		for i := 0; i < count; i++ {
			v := faceVertIndices[idx+i]
			t.VertFaces[t.VertFaceOffsets[v]+writePos[v]] = f
			writePos[v]++
		}
		idx += count
	}
}

// NumVerts returns the vertex count the tables were built for.
func (t *Topology) NumVerts() int {
	return len(t.NeighborOffsets) - 1
}

// NeighborsOf returns the sorted neighbor slice of vertex v.
func (t *Topology) NeighborsOf(v int) []int {
	return t.Neighbors[t.NeighborOffsets[v]:t.NeighborOffsets[v+1]]
}

// FacesOf returns the face indices incident to vertex v.
func (t *Topology) FacesOf(v int) []int {
	return t.VertFaces[t.VertFaceOffsets[v]:t.VertFaceOffsets[v+1]]
}
