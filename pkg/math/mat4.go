package math

import "math"

// Mat4 is a 4x4 matrix of float64 in row-major order, used with the
// row-vector convention (v' = v * M).
// Layout: [m0  m1  m2  m3 ]   rows 0-2 hold the basis vectors,
//
//	[m4  m5  m6  m7 ]   row 3 (m12, m13, m14) holds the
//	[m8  m9  m10 m11]   translation, m15 the homogeneous
//	[m12 m13 m14 m15]   scale.
type Mat4 [16]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TranslationMatrix returns an identity matrix with translation t.
func TranslationMatrix(t Vec3) Mat4 {
	m := Identity()
	m.SetTranslation(t)
	return m
}

// FromSlice copies 16 doubles into a Mat4.
func FromSlice(s []float64) Mat4 {
	var m Mat4
	copy(m[:], s)
	return m
}

// Translation returns row 3 (elements 12-14) as a Vec3.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// SetTranslation writes t into row 3 (elements 12-14).
func (m *Mat4) SetTranslation(t Vec3) {
	m[12], m[13], m[14] = t.X, t.Y, t.Z
}

// Row returns the first three elements of row r as a Vec3.
func (m Mat4) Row(r int) Vec3 {
	return Vec3{m[r*4], m[r*4+1], m[r*4+2]}
}

func (m *Mat4) setRow(r int, v Vec3) {
	m[r*4], m[r*4+1], m[r*4+2] = v.X, v.Y, v.Z
}

// Mul returns m * other. Under the row-vector convention, "first m, then
// other" composes as m.Mul(other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = m[r*4]*other[c] +
				m[r*4+1]*other[4+c] +
				m[r*4+2]*other[8+c] +
				m[r*4+3]*other[12+c]
		}
	}
	return out
}

// MulScalar returns m with all 16 elements scaled by s. Note this scales
// element 15 too; NormalizeScale accounts for that.
func (m Mat4) MulScalar(s float64) Mat4 {
	var out Mat4
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// Add returns the element-wise sum m + other.
func (m Mat4) Add(other Mat4) Mat4 {
	var out Mat4
	for i := range m {
		out[i] = m[i] + other[i]
	}
	return out
}

// Sub returns the element-wise difference m - other.
func (m Mat4) Sub(other Mat4) Mat4 {
	var out Mat4
	for i := range m {
		out[i] = m[i] - other[i]
	}
	return out
}

// Inverse returns the full cofactor inverse of m. Near-singular matrices
// (|det| < 1e-30) return identity instead of propagating NaNs.
func (m Mat4) Inverse() Mat4 {
	var inv Mat4

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if math.Abs(det) < 1e-30 {
		return Identity()
	}

	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]

	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]

	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv
}

// EulerXYZ extracts XYZ euler angles (radians) from the upper-left 3x3,
// matching Maya's MEulerRotation kXYZ order under the row-vector
// convention where M = Rx * Ry * Rz:
//
//	m(0,0) = cy*cz             m(0,1) = cy*sz             m(0,2) = -sy
//	m(1,0) = sx*sy*cz - cx*sz  m(1,1) = sx*sy*sz + cx*cz  m(1,2) = sx*cy
//	m(2,0) = cx*sy*cz + sx*sz  m(2,1) = cx*sy*sz - sx*cz  m(2,2) = cx*cy
func (m Mat4) EulerXYZ() Vec3 {
	// m(0,2) = -sin(y); clamp so asin never sees |v| > 1.
	negSy := m[2]
	if negSy > 1 {
		negSy = 1
	} else if negSy < -1 {
		negSy = -1
	}
	y := math.Asin(-negSy)

	var x, z float64
	if math.Abs(math.Cos(y)) > 1e-10 {
		x = math.Atan2(m[6], m[10])
		z = math.Atan2(m[1], m[0])
	} else {
		// Gimbal lock: x and z rotate about the same axis; fold into x.
		x = math.Atan2(-m[9], m[5])
		z = 0
	}
	return Vec3{x, y, z}
}

// FromEulerXYZ builds a rotation matrix from XYZ euler angles (radians)
// under the row-vector convention (M = Rx * Ry * Rz).
func FromEulerXYZ(e Vec3) Mat4 {
	cx, sx := math.Cos(e.X), math.Sin(e.X)
	cy, sy := math.Cos(e.Y), math.Sin(e.Y)
	cz, sz := math.Cos(e.Z), math.Sin(e.Z)

	return Mat4{
		cy * cz, cy * sz, -sy, 0,
		sx*sy*cz - cx*sz, sx*sy*sz + cx*cz, sx * cy, 0,
		cx*sy*cz + sx*sz, cx*sy*sz - sx*cz, cx * cy, 0,
		0, 0, 0, 1,
	}
}

// FromPositionAndNormal builds a frame whose orientation derives from a
// surface normal. It reproduces Maya's getOrient/setRotation pipeline: a
// raw basis is assembled as row0 = normal, row1 = (0,1,0),
// row2 = normal x (0,1,0) with no orthogonalization, euler angles are
// extracted from that raw matrix, and a clean rotation is rebuilt from
// them. The euler round-trip is the canonical cleanup of the
// non-orthonormal basis; a Gram-Schmidt pass here would produce subtly
// different rotations and break recorded sessions.
func FromPositionAndNormal(pos, normal Vec3) Mat4 {
	tangent := Vec3{0, 1, 0}
	cross := normal.Cross(tangent)

	var raw Mat4
	raw.setRow(0, normal)
	raw.setRow(1, tangent)
	raw.setRow(2, cross)
	raw[15] = 1

	result := FromEulerXYZ(raw.EulerXYZ())
	result.SetTranslation(pos)
	return result
}

// NormalizeScale removes scale and shear in place, leaving a pure
// rotation basis and element 15 = 1. When element 15 is not 1 (after a
// whole-matrix scalar multiply) the translation is first divided by it,
// matching Maya's MTransformationMatrix decomposition.
func (m *Mat4) NormalizeScale() {
	if math.Abs(m[15]) > 1e-30 && math.Abs(m[15]-1.0) > 1e-15 {
		invW := 1.0 / m[15]
		m[12] *= invW
		m[13] *= invW
		m[14] *= invW
	}

	r0 := m.Row(0).Normalized()
	r1 := m.Row(1)
	r1 = r1.Sub(r0.Scale(r1.Dot(r0))).Normalized()
	r2 := r0.Cross(r1) // right-handed

	m.setRow(0, r0)
	m.setRow(1, r1)
	m.setRow(2, r2)
	m[3], m[7], m[11] = 0, 0, 0
	m[15] = 1
}
