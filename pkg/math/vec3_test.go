package math

import "testing"

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %+v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: got %+v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %+v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: got %f, want 32", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y: got %+v, want (0, 0, 1)", got)
	}
	if got := y.Cross(x); got != (Vec3{0, 0, -1}) {
		t.Errorf("y cross x: got %+v, want (0, 0, -1)", got)
	}
}

func TestVec3NormalizedDegenerate(t *testing.T) {
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("normalizing zero vector: got %+v, want zero", got)
	}
	if got := (Vec3{1e-31, 0, 0}).Normalized(); got != (Vec3{}) {
		t.Errorf("normalizing sub-threshold vector: got %+v, want zero", got)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalized()
	if !almostEqual(n.Length(), 1, 1e-12) {
		t.Errorf("normalized length: got %g, want 1", n.Length())
	}
	if !almostEqual(n.X, 0.6, 1e-12) || !almostEqual(n.Z, 0.8, 1e-12) {
		t.Errorf("normalized direction: got %+v", n)
	}
}

func TestLerpMidpoint(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}

	if got := Lerp(a, b, 0.25); got != (Vec3{0.5, 1, 1.5}) {
		t.Errorf("Lerp: got %+v", got)
	}
	if got := Midpoint(a, b); got != (Vec3{1, 2, 3}) {
		t.Errorf("Midpoint: got %+v", got)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{1, 1, 4}
	if got := a.Distance(b); got != 3 {
		t.Errorf("Distance: got %f, want 3", got)
	}
}
