package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}

		if a[i] != c[i] {
			same = false
		}

		if a[i] < -1 || a[i] >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}

	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := ScaledImpulse(8, 3, 0.5)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 0.5
		}

		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	for i, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-range pos", i, v)
		}
	}
}

func TestRoomIRPeak(t *testing.T) {
	ir := RoomIR(2000, 100, -0.8, 200, 7)

	peak := 0
	for i, v := range ir {
		if math.Abs(v) > math.Abs(ir[peak]) {
			peak = i
		}
	}

	if peak != 100 {
		t.Fatalf("peak at %d, want 100", peak)
	}

	for i := range 100 {
		if ir[i] != 0 {
			t.Fatalf("ir[%d] = %v, head must be silent", i, ir[i])
		}
	}

	if ir[150] == 0 {
		t.Fatal("expected a non-zero tail")
	}
}

func TestDelayed(t *testing.T) {
	src := []float64{1, 2, 3, 4}

	RequireSliceNearlyEqual(t, Delayed(src, 2), []float64{0, 0, 1, 2}, 0)
	RequireSliceNearlyEqual(t, Delayed(src, -1), []float64{2, 3, 4, 0}, 0)
}
