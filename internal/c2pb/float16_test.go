package c2pb

import (
	"math"
	"testing"
)

// TestFloat16RoundTrip checks exactly representable halves survive packing.
func TestFloat16RoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 1.5, -2.25, 65504}
	got := UnpackFloat16(PackFloat16(values))
	if len(got) != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), len(got))
	}
	for i, want := range values {
		if got[i] != want {
			t.Errorf("value %d: expected %v, got %v", i, want, got[i])
		}
	}
}

// TestFloat16Precision checks non-representable values land within half
// precision tolerance.
func TestFloat16Precision(t *testing.T) {
	values := []float32{0.1, 3.14159, 1e-3}
	got := UnpackFloat16(PackFloat16(values))
	for i, want := range values {
		if diff := math.Abs(float64(got[i] - want)); diff > 1e-3*math.Abs(float64(want))+1e-6 {
			t.Errorf("value %d: %v decoded as %v", i, want, got[i])
		}
	}
}

// TestNewFloat16Tensor checks layout of the packed tensor.
func TestNewFloat16Tensor(t *testing.T) {
	tensor := NewFloat16Tensor("w", []int64{2, 2}, []float32{1, 2, 3, 4})
	if tensor.DataType != TensorFloat16 {
		t.Errorf("expected FLOAT16 data type, got %v", tensor.DataType)
	}
	if len(tensor.ByteData) != 8 {
		t.Errorf("expected 8 bytes, got %d", len(tensor.ByteData))
	}
	if tensor.Name != "w" || len(tensor.Dims) != 2 {
		t.Errorf("unexpected tensor metadata: %+v", tensor)
	}
}
