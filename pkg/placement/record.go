// Package placement records topology-relative placements of guide frames
// against a reference mesh and repositions them when the mesh deforms.
//
// The engine is a pure function of flat numeric buffers: recording walks
// each guide's surface neighborhood (seeded BFS over the vertex graph),
// derives a reference frame from it, and reflects the guide through that
// frame to locate its mirror neighborhood. Repositioning replays the
// stored records against new vertex positions. All matrices are
// row-major 4x4 doubles under the row-vector convention.
package placement

import (
	mgmath "github.com/mgear-dev/mgear/pkg/math"
	"github.com/mgear-dev/mgear/pkg/topology"
)

// MeshData is the flat mesh representation consumed by the recorders.
// Points holds V*3 vertex positions, FaceNormals F*3 world-space face
// normals; FaceVertCounts and FaceVertIndices describe polygon
// connectivity in stream form.
type MeshData struct {
	NumVerts        int
	Points          []float64
	FaceNormals     []float64
	FaceVertCounts  []int
	FaceVertIndices []int
}

// Topology builds the vertex adjacency tables for the mesh.
func (m MeshData) Topology() *topology.Topology {
	return topology.Build(m.NumVerts, m.FaceVertCounts, m.FaceVertIndices)
}

// PrimaryResult holds the flat-packed outputs of RecordPrimary:
// sampleCount vertex ids, a 16-double reference matrix and a 3-double
// mirror position per guide, in guide order.
type PrimaryResult struct {
	VertIDs         []int
	RefMatrices     []float64
	MirrorPositions []float64
}

// MirrorResult holds the flat-packed outputs of RecordMirror.
type MirrorResult struct {
	VertIDs     []int
	RefMatrices []float64
}

// RecordPrimary records the primary neighborhood of every guide. For
// guide g, seedVertIDs[seedOffsets[g]:seedOffsets[g+1]] are the vertices
// of the polygon containing the guide (host closest-point query). Each
// guide yields sampleCount vertex ids (padded when the BFS comes up
// short), a reference frame, and the mirror position obtained by
// reflecting the guide matrix through the reference frame.
func RecordPrimary(guidePositions, guideMatrices []float64, seedVertIDs, seedOffsets []int,
	sampleCount int, mesh MeshData, progress ProgressReporter) PrimaryResult {
	return RecordPrimaryWithTopology(guidePositions, guideMatrices, seedVertIDs, seedOffsets,
		sampleCount, mesh, mesh.Topology(), progress)
}

// RecordPrimaryWithTopology is RecordPrimary with caller-provided
// adjacency tables, for hosts that record both sides against one mesh
// and want to build the tables once.
func RecordPrimaryWithTopology(guidePositions, guideMatrices []float64, seedVertIDs, seedOffsets []int,
	sampleCount int, mesh MeshData, topo *topology.Topology, progress ProgressReporter) PrimaryResult {

	guideCount := len(guidePositions) / 3
	result := PrimaryResult{
		VertIDs:         make([]int, guideCount*sampleCount),
		RefMatrices:     make([]float64, guideCount*16),
		MirrorPositions: make([]float64, guideCount*3),
	}

	for g := 0; g < guideCount; g++ {
		gpos := mgmath.Vec3{
			X: guidePositions[g*3],
			Y: guidePositions[g*3+1],
			Z: guidePositions[g*3+2],
		}
		seeds := seedVertIDs[seedOffsets[g]:seedOffsets[g+1]]

		closest := topo.FindNClosestVertices(seeds, gpos, mesh.Points, sampleCount)
		packVertIDs(result.VertIDs[g*sampleCount:(g+1)*sampleCount], closest)

		refMat := ReferenceFrame(closest, mesh.Points, mesh.FaceNormals, topo)
		copy(result.RefMatrices[g*16:(g+1)*16], refMat[:])

		guideMat := mgmath.FromSlice(guideMatrices[g*16 : (g+1)*16])
		mirror := MirrorPosition(guideMat, refMat)
		result.MirrorPositions[g*3] = mirror.X
		result.MirrorPositions[g*3+1] = mirror.Y
		result.MirrorPositions[g*3+2] = mirror.Z

		reportProgress(progress, g+1, guideCount)
	}
	return result
}

// MirrorPosition reflects a guide frame through its reference frame and
// returns the translation row of the result. The reflection is the full
// element-wise matrix arithmetic ((ref - guide) * -1) + guide, not a
// plane reflection; the whole matrix is computed even though only the
// translation entries are consumed, because the reference matrix's
// element 15 participates in the arithmetic.
func MirrorPosition(guideMat, refMat mgmath.Mat4) mgmath.Vec3 {
	mm := refMat.Sub(guideMat).MulScalar(-1).Add(guideMat)
	return mm.Translation()
}

// RecordMirror records the mirror neighborhood of every guide. Seeds
// come from a host closest-point query evaluated at each mirror
// position; the BFS reference point is the mirror position itself.
func RecordMirror(seedVertIDs, seedOffsets []int, sampleCount int, mesh MeshData,
	mirrorPositions []float64, progress ProgressReporter) MirrorResult {
	return RecordMirrorWithTopology(seedVertIDs, seedOffsets, sampleCount, mesh,
		mirrorPositions, mesh.Topology(), progress)
}

// RecordMirrorWithTopology is RecordMirror with caller-provided
// adjacency tables.
func RecordMirrorWithTopology(seedVertIDs, seedOffsets []int, sampleCount int, mesh MeshData,
	mirrorPositions []float64, topo *topology.Topology, progress ProgressReporter) MirrorResult {

	guideCount := len(seedOffsets) - 1
	result := MirrorResult{
		VertIDs:     make([]int, guideCount*sampleCount),
		RefMatrices: make([]float64, guideCount*16),
	}

	for g := 0; g < guideCount; g++ {
		refPos := mgmath.Vec3{
			X: mirrorPositions[g*3],
			Y: mirrorPositions[g*3+1],
			Z: mirrorPositions[g*3+2],
		}
		seeds := seedVertIDs[seedOffsets[g]:seedOffsets[g+1]]

		closest := topo.FindNClosestVertices(seeds, refPos, mesh.Points, sampleCount)
		packVertIDs(result.VertIDs[g*sampleCount:(g+1)*sampleCount], closest)

		refMat := ReferenceFrame(closest, mesh.Points, mesh.FaceNormals, topo)
		copy(result.RefMatrices[g*16:(g+1)*16], refMat[:])

		reportProgress(progress, g+1, guideCount)
	}
	return result
}

// packVertIDs writes closest into dst, padding short BFS results with
// the last found vertex, or 0 when nothing was reachable. The engine
// never rejects short returns.
func packVertIDs(dst, closest []int) {
	for i := range dst {
		switch {
		case i < len(closest):
			dst[i] = closest[i]
		case len(closest) > 0:
			dst[i] = closest[len(closest)-1]
		default:
			dst[i] = 0
		}
	}
}
