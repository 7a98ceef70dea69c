package vect

import (
	"math"
	"testing"
)

type addTest struct {
	in1, in2 Vect
	out      Vect
}

var addTests = []addTest{
	{Vect{0, 0}, Vect{0, 0}, Vect{0, 0}},
	{Vect{0, 1}, Vect{0, 0}, Vect{0, 1}},
	{Vect{1, 0}, Vect{0, 0}, Vect{1, 0}},
	{Vect{1, 2}, Vect{0, 0}, Vect{1, 2}},
	{Vect{0, 0}, Vect{1, 2}, Vect{1, 2}},
	{Vect{2, 4}, Vect{1, 3}, Vect{3, 7}},
	{Vect{3, 1}, Vect{4, 2}, Vect{7, 3}},
	{Vect{5, 5}, Vect{-2, 2}, Vect{3, 7}},
}

func TestAdd(t *testing.T) {
	for _, at := range addTests {
		v := Add(at.in1, at.in2)
		if !Equals(at.out, v) {
			t.Errorf("Add(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

type minMaxTest struct {
	in1, in2 Vect
	min, max Vect
}

var minMaxTests = []minMaxTest{
	{Vect{0, 0}, Vect{0, 0}, Vect{0, 0}, Vect{0, 0}},
	{Vect{1, 2}, Vect{9, 9}, Vect{1, 2}, Vect{9, 9}},
	{Vect{5, 2}, Vect{1, 4}, Vect{1, 2}, Vect{5, 4}},
	{Vect{9, 6}, Vect{7, 8}, Vect{7, 6}, Vect{9, 8}},
}

func TestMinMax(t *testing.T) {
	for _, at := range minMaxTests {
		if v := Min(at.in1, at.in2); !Equals(at.min, v) {
			t.Errorf("Min(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.min)
		}
		if v := Max(at.in1, at.in2); !Equals(at.max, v) {
			t.Errorf("Max(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.max)
		}
	}
}

type distTest struct {
	in1, in2 Vect
	out      float64
}

var distTests = []distTest{
	{Vect{0, 0}, Vect{0, 0}, 0},
	{Vect{0, 2}, Vect{0, 0}, 2},
	{Vect{0, 0}, Vect{4, 0}, 4},
	{Vect{1, 1}, Vect{0, 0}, math.Sqrt(2)},
	{Vect{1, 1}, Vect{2, 2}, math.Sqrt(2)},
}

func TestDist(t *testing.T) {
	for _, at := range distTests {
		v := Dist(at.in1, at.in2)
		if float64(v) != at.out {
			t.Errorf("Dist(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

func TestSafeNormalize(t *testing.T) {
	n, l, ok := SafeNormalize(Vect{3, 4})
	if !ok || l != 5 || !Equals(n, Vect{0.6, 0.8}) {
		t.Errorf("SafeNormalize({3 4}) = %v, %v, %v, want {0.6 0.8}, 5, true.", n, l, ok)
	}

	n, l, ok = SafeNormalize(Vect{})
	if ok || l != 0 || !Equals(n, Vector_Zero) {
		t.Errorf("SafeNormalize({0 0}) = %v, %v, %v, want {0 0}, 0, false.", n, l, ok)
	}

	if v := NormalizeOr(Vect{}, Vect{1, 0}); !Equals(v, Vect{1, 0}) {
		t.Errorf("NormalizeOr({0 0}, {1 0}) = %v, want {1 0}.", v)
	}
}

func TestPerp(t *testing.T) {
	v := Vect{1, 2}
	if p := Perp(v); !Equals(p, Vect{-2, 1}) {
		t.Errorf("Perp(%v) = %v, want {-2 1}.", v, p)
	}
	if p := RPerp(v); !Equals(p, Vect{2, -1}) {
		t.Errorf("RPerp(%v) = %v, want {2 -1}.", v, p)
	}
}

func TestLerp(t *testing.T) {
	v := Lerp(Vect{0, 0}, Vect{10, -4}, 0.25)
	if !Equals(v, Vect{2.5, -1}) {
		t.Errorf("Lerp = %v, want {2.5 -1}.", v)
	}
}

func TestTruncate(t *testing.T) {
	v := Truncate(Vect{6, 8}, 5)
	if !Equals(v, Vect{3, 4}) {
		t.Errorf("Truncate({6 8}, 5) = %v, want {3 4}.", v)
	}
	v = Truncate(Vect{1, 1}, 5)
	if !Equals(v, Vect{1, 1}) {
		t.Errorf("Truncate({1 1}, 5) = %v, want {1 1}.", v)
	}
}

func TestMat33Solve(t *testing.T) {
	m := Mat33{
		2, 0, 1,
		0, 3, 0,
		1, 0, 4,
	}
	want := Vect3{1, -2, 0.5}
	b := Vect3{
		m.M11*want.X + m.M12*want.Y + m.M13*want.Z,
		m.M21*want.X + m.M22*want.Y + m.M23*want.Z,
		m.M31*want.X + m.M32*want.Y + m.M33*want.Z,
	}
	got := m.Solve(b)
	if FAbs(got.X-want.X) > 1e-12 || FAbs(got.Y-want.Y) > 1e-12 || FAbs(got.Z-want.Z) > 1e-12 {
		t.Errorf("Solve(%v) = %v, want %v.", b, got, want)
	}

	xy := m.Solve2x2(Vect{4, 9})
	if !Equals(xy, Vect{2, 3}) {
		t.Errorf("Solve2x2({4 9}) = %v, want {2 3}.", xy)
	}

	if z := (Mat33{}).Solve(b); z != (Vect3{}) {
		t.Errorf("singular Solve = %v, want zero.", z)
	}
}

func TestJSON(t *testing.T) {
	data, err := Vect{1.5, -2}.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[1.5,-2]" {
		t.Errorf("MarshalJSON = %s, want [1.5,-2].", data)
	}

	var v Vect
	if err := v.UnmarshalJSON([]byte(`{"X":3,"Y":4}`)); err != nil {
		t.Fatal(err)
	}
	if !Equals(v, Vect{3, 4}) {
		t.Errorf("UnmarshalJSON object form = %v, want {3 4}.", v)
	}

	if err := v.UnmarshalJSON([]byte(`"nope"`)); err == nil {
		t.Errorf("UnmarshalJSON(\"nope\") returned nil error.")
	}
}
