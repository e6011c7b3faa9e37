package placement

import (
	mgmath "github.com/mgear-dev/mgear/pkg/math"
)

// RepositionAllGuides computes each guide's new world matrix against the
// deformed mesh. Inputs are the records emitted by RecordPrimary and
// RecordMirror plus newPoints, the flat V*3 positions of a mesh sharing
// the recorded topology. The result is guideCount*16 doubles, row-major,
// in guide order.
func RepositionAllGuides(nodeMatrices, refMatrices, mrRefMatrices []float64,
	vertIDs, mrVertIDs []int, sampleCount int, newPoints []float64,
	progress ProgressReporter) []float64 {

	guideCount := len(nodeMatrices) / 16
	results := make([]float64, guideCount*16)

	for g := 0; g < guideCount; g++ {
		nodeMat := mgmath.FromSlice(nodeMatrices[g*16 : (g+1)*16])
		refMat := mgmath.FromSlice(refMatrices[g*16 : (g+1)*16])
		mrRefMat := mgmath.FromSlice(mrRefMatrices[g*16 : (g+1)*16])

		repoMat := repositionSingleGuide(nodeMat, refMat, mrRefMat,
			vertIDs[g*sampleCount:(g+1)*sampleCount],
			mrVertIDs[g*sampleCount:(g+1)*sampleCount],
			newPoints)
		copy(results[g*16:(g+1)*16], repoMat[:])

		reportProgress(progress, g+1, guideCount)
	}
	return results
}

// repositionSingleGuide rebuilds one guide's world matrix: the delta from
// the original neighborhood center to the guide pose is scaled by the
// primary/mirror length ratio and re-anchored at the new center.
func repositionSingleGuide(nodeMat, refMat, mrRefMat mgmath.Mat4,
	vertIDs, mrVertIDs []int, newPoints []float64) mgmath.Mat4 {

	currentPos := Centroid(vertIDs, newPoints)
	mrCurrentPos := Centroid(mrVertIDs, newPoints)
	currentLength := currentPos.Distance(mrCurrentPos)

	origTranslate := refMat.Translation()
	mrOrigTranslate := mrRefMat.Translation()
	origLength := origTranslate.Distance(mrOrigTranslate)

	origCenterMat := mgmath.TranslationMatrix(mgmath.Midpoint(origTranslate, mrOrigTranslate))
	currentCenter := mgmath.Midpoint(currentPos, mrCurrentPos)

	// Guard kept exactly as the host expects: when origLength is zero and
	// currentLength is not, the ratio is +Inf and the result carries
	// non-finite entries. Downstream consumers validate.
	lengthPercentage := 1.0
	if currentLength != 0 || origLength != 0 {
		lengthPercentage = currentLength / origLength
	}

	refPositionMat := mgmath.TranslationMatrix(currentCenter)

	delta := nodeMat.Mul(origCenterMat.Inverse())
	// Scaling all 16 elements then normalizing is not a no-op: element 15
	// becomes lengthPercentage and NormalizeScale divides the translation
	// by it, so the net effect is a scaled translation with the 3x3
	// restored to pure rotation. Scaling only the translation row would
	// diverge on non-identity deltas.
	delta = delta.MulScalar(lengthPercentage)
	delta.NormalizeScale()

	return delta.Mul(refPositionMat)
}
