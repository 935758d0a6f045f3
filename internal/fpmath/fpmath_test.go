package fpmath

import (
	"math"
	"testing"
)

func TestClampPreservesNaN(t *testing.T) {
	nan := float32(math.NaN())
	if got := Clamp(nan, 0, 1); !IsNaN(got) {
		t.Errorf("Clamp(NaN, 0, 1) = %v, want NaN", got)
	}
}

func TestClampOrdering(t *testing.T) {
	cases := []struct {
		f, lo, hi, want float32
	}{
		{-2, 0, 1, 0},
		{2, 0, 1, 1},
		{0.5, 0, 1, 0.5},
		{-5, -1, 1, -1},
	}
	for _, c := range cases {
		if got := Clamp(c.f, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.f, c.lo, c.hi, got, c.want)
		}
	}
}

func TestIsNaNOrInf(t *testing.T) {
	if !IsNaNOrInf(float32(math.Inf(1))) {
		t.Error("+Inf should be NaNOrInf")
	}
	if !IsNaNOrInf(float32(math.Inf(-1))) {
		t.Error("-Inf should be NaNOrInf")
	}
	if !IsNaNOrInf(float32(math.NaN())) {
		t.Error("NaN should be NaNOrInf")
	}
	if IsNaNOrInf(1.0) {
		t.Error("1.0 should not be NaNOrInf")
	}
}

func TestSinCosIdentity(t *testing.T) {
	sin, cos := SinCos(0)
	if sin != 0 || cos != 1 {
		t.Errorf("SinCos(0) = (%v, %v), want (0, 1)", sin, cos)
	}
}

func TestSinCosHalfPi(t *testing.T) {
	// 1 unit == pi/2 radians, so Sin(1) == sin(pi/2) == 1.
	if got := Sin(1); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("Sin(1) = %v, want ~1", got)
	}
	if got := Cos(1); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("Cos(1) = %v, want ~0", got)
	}
}

func TestHalfFloatRoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 2, 3.14, -123.5, 65504}
	for _, v := range values {
		got := ExpandHalf(ShrinkToHalf(v))
		if math.Abs(float64(got-v)) > math.Abs(float64(v))*0.01+1e-3 {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}

func TestHalfFloatZero(t *testing.T) {
	if got := ExpandHalf(ShrinkToHalf(0)); got != 0 {
		t.Errorf("round trip of 0 = %v", got)
	}
	neg := float32(math.Copysign(0, -1))
	got := ExpandHalf(ShrinkToHalf(neg))
	if math.Signbit(float64(got)) != true {
		t.Errorf("round trip of -0 lost its sign: %v", got)
	}
}

func TestHalfFloatInfAndNaN(t *testing.T) {
	inf := float32(math.Inf(1))
	if got := ExpandHalf(ShrinkToHalf(inf)); !IsInf(got) {
		t.Errorf("round trip of +Inf = %v, want Inf", got)
	}
	nan := float32(math.NaN())
	if got := ExpandHalf(ShrinkToHalf(nan)); !IsNaN(got) {
		t.Errorf("round trip of NaN = %v, want NaN", got)
	}
}

func TestRoundVFPU(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{-0.5, 0},
		{3.2, 3},
	}
	for _, c := range cases {
		if got := RoundVFPU(c.in); got != c.want {
			t.Errorf("RoundVFPU(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
