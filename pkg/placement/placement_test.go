package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mgmath "github.com/mgear-dev/mgear/pkg/math"
)

// Unit cube with outward face normals. The six normals sum to zero, so a
// neighborhood touching all faces yields an identity-basis reference
// frame, which keeps expectations exact.
func cubeMesh() MeshData {
	return MeshData{
		NumVerts: 8,
		Points: []float64{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			0, 0, 1,
			1, 0, 1,
			1, 1, 1,
			0, 1, 1,
		},
		FaceNormals: []float64{
			0, 0, -1, // z = 0
			0, 0, 1, // z = 1
			0, -1, 0, // y = 0
			0, 1, 0, // y = 1
			-1, 0, 0, // x = 0
			1, 0, 0, // x = 1
		},
		FaceVertCounts: []int{4, 4, 4, 4, 4, 4},
		FaceVertIndices: []int{
			0, 1, 2, 3,
			4, 5, 6, 7,
			0, 1, 5, 4,
			2, 3, 7, 6,
			0, 3, 7, 4,
			1, 2, 6, 5,
		},
	}
}

func TestCentroid(t *testing.T) {
	mesh := cubeMesh()
	c := Centroid([]int{0, 1, 2, 3}, mesh.Points)
	assert.InDelta(t, 0.5, c.X, 1e-12)
	assert.InDelta(t, 0.5, c.Y, 1e-12)
	assert.InDelta(t, 0.0, c.Z, 1e-12)
}

func TestReferenceFrameDeduplicatesFaces(t *testing.T) {
	mesh := cubeMesh()
	topo := mesh.Topology()

	// The eight verts cover all six faces, each seen four times; every
	// face must contribute its normal once, so the sum cancels and the
	// basis falls back to identity.
	ref := ReferenceFrame([]int{0, 1, 2, 3, 4, 5, 6, 7}, mesh.Points, mesh.FaceNormals, topo)

	assert.InDelta(t, 0.5, ref[12], 1e-12)
	assert.InDelta(t, 0.5, ref[13], 1e-12)
	assert.InDelta(t, 0.5, ref[14], 1e-12)
	id := mgmath.Identity()
	for i := 0; i < 12; i++ {
		assert.InDelta(t, id[i], ref[i], 1e-12, "element %d", i)
	}
}

func TestMirrorPosition(t *testing.T) {
	guide := mgmath.Identity()
	ref := mgmath.TranslationMatrix(mgmath.Vec3{X: 1})

	m := MirrorPosition(guide, ref)
	assert.Equal(t, mgmath.Vec3{X: -1}, m)
}

func TestMirrorPositionOffsetGuide(t *testing.T) {
	guide := mgmath.TranslationMatrix(mgmath.Vec3{X: 2, Y: 1, Z: 0})
	ref := mgmath.TranslationMatrix(mgmath.Vec3{X: 1, Y: 1, Z: 0})

	// 2*t(guide) - t(ref)
	m := MirrorPosition(guide, ref)
	assert.Equal(t, mgmath.Vec3{X: 3, Y: 1, Z: 0}, m)
}

func guideAt(pos mgmath.Vec3) (positions, matrices []float64) {
	m := mgmath.TranslationMatrix(pos)
	return []float64{pos.X, pos.Y, pos.Z}, m[:]
}

func TestRecordPrimaryCube(t *testing.T) {
	mesh := cubeMesh()
	pos, mat := guideAt(mgmath.Vec3{X: 0.5, Y: 0.5, Z: 0})

	res := RecordPrimary(pos, mat, []int{0, 1, 2, 3}, []int{0, 4}, 4, mesh, nil)

	assert.Equal(t, []int{0, 1, 2, 3}, res.VertIDs)
	// Guide sits exactly on the reference frame, so its mirror is itself.
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0}, res.MirrorPositions, 1e-12)

	ref := mgmath.FromSlice(res.RefMatrices)
	assert.InDelta(t, 0.5, ref[12], 1e-12)
	assert.InDelta(t, 0.5, ref[13], 1e-12)
	assert.InDelta(t, 0.0, ref[14], 1e-12)
}

func TestRecordPrimaryExpandsBeyondSeeds(t *testing.T) {
	mesh := cubeMesh()
	pos, mat := guideAt(mgmath.Vec3{X: 0.5, Y: 0.5, Z: 0})

	res := RecordPrimary(pos, mat, []int{0, 1, 2, 3}, []int{0, 4}, 8, mesh, nil)

	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, res.VertIDs)
}

func TestRecordPrimaryDeterministic(t *testing.T) {
	mesh := cubeMesh()
	pos, mat := guideAt(mgmath.Vec3{X: 0.3, Y: 0.7, Z: 0.1})

	first := RecordPrimary(pos, mat, []int{0, 1, 2, 3}, []int{0, 4}, 6, mesh, nil)
	for i := 0; i < 5; i++ {
		again := RecordPrimary(pos, mat, []int{0, 1, 2, 3}, []int{0, 4}, 6, mesh, nil)
		require.Equal(t, first.VertIDs, again.VertIDs)
		require.Equal(t, first.RefMatrices, again.RefMatrices)
		require.Equal(t, first.MirrorPositions, again.MirrorPositions)
	}
}

func TestRecordPrimaryPadsShortResults(t *testing.T) {
	tri := MeshData{
		NumVerts:        3,
		Points:          []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		FaceNormals:     []float64{0, 0, 1},
		FaceVertCounts:  []int{3},
		FaceVertIndices: []int{0, 1, 2},
	}
	pos, mat := guideAt(mgmath.Vec3{})

	res := RecordPrimary(pos, mat, []int{0}, []int{0, 1}, 5, tri, nil)

	// Only three vertices reachable; the tail pads with the last one.
	require.Len(t, res.VertIDs, 5)
	assert.Equal(t, []int{0, 1, 2}, res.VertIDs[:3])
	assert.Equal(t, res.VertIDs[2], res.VertIDs[3])
	assert.Equal(t, res.VertIDs[2], res.VertIDs[4])
}

func TestRecordPrimaryEmptySeedsPadsZero(t *testing.T) {
	mesh := cubeMesh()
	pos, mat := guideAt(mgmath.Vec3{})

	res := RecordPrimary(pos, mat, nil, []int{0, 0}, 4, mesh, nil)

	assert.Equal(t, []int{0, 0, 0, 0}, res.VertIDs)
}

func TestRecordMirrorUsesMirrorPositionAsReference(t *testing.T) {
	mesh := cubeMesh()

	// Seeds on the z=1 face, mirror position at its centroid.
	res := RecordMirror([]int{4, 5, 6, 7}, []int{0, 4}, 4, mesh,
		[]float64{0.5, 0.5, 1}, nil)

	assert.Equal(t, []int{4, 5, 6, 7}, res.VertIDs)
	ref := mgmath.FromSlice(res.RefMatrices)
	assert.InDelta(t, 0.5, ref[12], 1e-12)
	assert.InDelta(t, 0.5, ref[13], 1e-12)
	assert.InDelta(t, 1.0, ref[14], 1e-12)
}

func TestProgressReported(t *testing.T) {
	mesh := cubeMesh()

	positions := []float64{0.5, 0.5, 0, 0.5, 0.5, 1}
	id := mgmath.Identity()
	matrices := append(append([]float64{}, id[:]...), id[:]...)
	seeds := []int{0, 1, 2, 3, 4, 5, 6, 7}
	offsets := []int{0, 4, 8}

	var calls [][2]int
	RecordPrimary(positions, matrices, seeds, offsets, 4, mesh,
		ProgressFunc(func(current, total int) {
			calls = append(calls, [2]int{current, total})
		}))

	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}

func repeatIDs(id, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func TestRepositionIdentityRoundTrip(t *testing.T) {
	mesh := cubeMesh()

	// Record both sides on the cube, then reposition against the very
	// same points: every guide must come back where it was.
	node := mgmath.FromEulerXYZ(mgmath.Vec3{X: 0.2, Y: -0.4, Z: 0.9})
	node.SetTranslation(mgmath.Vec3{X: 0.5, Y: 0.5, Z: 0})

	pos := []float64{0.5, 0.5, 0}
	primary := RecordPrimary(pos, node[:], []int{0, 1, 2, 3}, []int{0, 4}, 4, mesh, nil)
	mirror := RecordMirror([]int{4, 5, 6, 7}, []int{0, 4}, 4, mesh,
		[]float64{0.5, 0.5, 1}, nil)

	out := RepositionAllGuides(node[:], primary.RefMatrices, mirror.RefMatrices,
		primary.VertIDs, mirror.VertIDs, 4, mesh.Points, nil)

	require.Len(t, out, 16)
	for i := 0; i < 16; i++ {
		assert.InDelta(t, node[i], out[i], 1e-6, "element %d", i)
	}
}

func TestRepositionZeroLengthsKeepsRatioOne(t *testing.T) {
	mesh := cubeMesh()

	// Primary and mirror collapse onto the same neighborhood: recorded
	// and current lengths are both zero, so the ratio stays 1.
	node := mgmath.TranslationMatrix(mgmath.Vec3{X: 0.5, Y: 0.5, Z: 0})
	pos := []float64{0.5, 0.5, 0}
	primary := RecordPrimary(pos, node[:], []int{0, 1, 2, 3}, []int{0, 4}, 4, mesh, nil)
	mirror := RecordMirror([]int{0, 1, 2, 3}, []int{0, 4}, 4, mesh,
		[]float64{0.5, 0.5, 0}, nil)

	out := RepositionAllGuides(node[:], primary.RefMatrices, mirror.RefMatrices,
		primary.VertIDs, mirror.VertIDs, 4, mesh.Points, nil)

	for i := 0; i < 16; i++ {
		assert.InDelta(t, node[i], out[i], 1e-6, "element %d", i)
	}
}

func TestRepositionUniformScale(t *testing.T) {
	mesh := cubeMesh()

	// Guide placed at the midpoint of its primary and mirror reference
	// translations, with a non-trivial rotation.
	node := mgmath.FromEulerXYZ(mgmath.Vec3{X: 0.1, Y: 0.3, Z: -0.5})
	node.SetTranslation(mgmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	pos := []float64{0.5, 0.5, 0}
	primary := RecordPrimary(pos, node[:], []int{0, 1, 2, 3}, []int{0, 4}, 4, mesh, nil)
	mirror := RecordMirror([]int{4, 5, 6, 7}, []int{0, 4}, 4, mesh,
		[]float64{0.5, 0.5, 1}, nil)

	scaled := make([]float64, len(mesh.Points))
	for i, p := range mesh.Points {
		scaled[i] = p * 2
	}

	out := RepositionAllGuides(node[:], primary.RefMatrices, mirror.RefMatrices,
		primary.VertIDs, mirror.VertIDs, 4, scaled, nil)

	m := mgmath.FromSlice(out)
	// Scale is absorbed into position, not the basis.
	tr := m.Translation()
	assert.InDelta(t, 1.0, tr.X, 1e-9)
	assert.InDelta(t, 1.0, tr.Y, 1e-9)
	assert.InDelta(t, 1.0, tr.Z, 1e-9)
	for r := 0; r < 3; r++ {
		assert.InDelta(t, 1.0, m.Row(r).Length(), 1e-9, "row %d", r)
	}
	assert.InDelta(t, 0, m.Row(0).Dot(m.Row(1)), 1e-9)
	assert.InDelta(t, 0, m.Row(0).Dot(m.Row(2)), 1e-9)
	assert.InDelta(t, 0, m.Row(1).Dot(m.Row(2)), 1e-9)
}

func TestRepositionZeroOriginalLength(t *testing.T) {
	mesh := cubeMesh()

	// Recorded reference translations coincide but the current centroids
	// do not: the literal ratio guard divides by zero. The reference
	// implementation does exactly this, so the behavior is pinned here:
	// the output carries non-finite entries for the host to detect.
	node := mgmath.Identity()
	ref := mgmath.TranslationMatrix(mgmath.Vec3{})
	mrRef := mgmath.TranslationMatrix(mgmath.Vec3{})

	out := RepositionAllGuides(node[:], ref[:], mrRef[:],
		repeatIDs(0, 4), repeatIDs(1, 4), 4, mesh.Points, nil)

	nonFinite := false
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			nonFinite = true
			break
		}
	}
	assert.True(t, nonFinite, "zero original length should surface as non-finite output")
}
