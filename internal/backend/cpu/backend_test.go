package cpu

import (
	"math"
	"testing"

	"github.com/ember-ml/ember/internal/tensor"
)

func fromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func assertFloats(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Errorf("element %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestCPUBackend_Add(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)
	assertFloats(t, result.AsFloat32(), []float32{11, 22, 33, 44})
}

func TestCPUBackend_Add_InPlaceFastPath(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 2}, tensor.Shape{2})
	b := fromSlice(t, []float32{3, 4}, tensor.Shape{2})

	result := backend.Add(a, b)
	if result != a {
		t.Error("unique left operand should be reused in place")
	}

	// A shared buffer must not be reused.
	c := fromSlice(t, []float32{1, 2}, tensor.Shape{2})
	clone := c.Clone()
	result = backend.Add(c, b)
	if result == c {
		t.Error("shared left operand must not be reused in place")
	}
	assertFloats(t, clone.AsFloat32(), []float32{1, 2})
}

func TestCPUBackend_Broadcasting(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3, 1})
	b := fromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{1, 4})

	result := backend.Mul(a, b)
	if !result.Shape().Equal(tensor.Shape{3, 4}) {
		t.Fatalf("shape = %v, want [3 4]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{
		10, 20, 30, 40,
		20, 40, 60, 80,
		30, 60, 90, 120,
	})
}

func TestCPUBackend_ShapeMismatchPanics(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := fromSlice(t, []float32{1, 2}, tensor.Shape{2})

	defer func() {
		if recover() == nil {
			t.Error("Add with incompatible shapes should panic")
		}
	}()
	backend.Add(a, b)
}

func TestCPUBackend_UnaryMath(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 4, 9}, tensor.Shape{3})

	assertFloats(t, backend.Sqrt(x).AsFloat32(), []float32{1, 2, 3})

	y := fromSlice(t, []float32{0, 1}, tensor.Shape{2})
	assertFloats(t, backend.Exp(y).AsFloat32(), []float32{1, float32(math.E)})

	z := fromSlice(t, []float32{1, float32(math.E)}, tensor.Shape{2})
	assertFloats(t, backend.Log(z).AsFloat32(), []float32{0, 1})

	w := fromSlice(t, []float32{1, -2}, tensor.Shape{2})
	assertFloats(t, backend.Neg(w).AsFloat32(), []float32{-1, 2})
}

func TestCPUBackend_Scalar(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})
	assertFloats(t, backend.AddScalar(x, 1.5).AsFloat32(), []float32{2.5, 3.5, 4.5})

	y := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})
	assertFloats(t, backend.MulScalar(y, 2).AsFloat32(), []float32{2, 4, 6})
}

func TestCPUBackend_MatMul(t *testing.T) {
	backend := New()
	// [2,3] @ [3,2] -> [2,2]
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := fromSlice(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	result := backend.MatMul(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{58, 64, 139, 154})
}

func TestCPUBackend_Sum(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Sum(x)
	if !result.Shape().Equal(tensor.Shape{}) {
		t.Fatalf("shape = %v, want scalar", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{10})
}

func TestCPUBackend_SumDim(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	rows := backend.SumDim(x, 1, false)
	if !rows.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", rows.Shape())
	}
	assertFloats(t, rows.AsFloat32(), []float32{6, 15})

	cols := backend.SumDim(x, 0, true)
	if !cols.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("shape = %v, want [1 3]", cols.Shape())
	}
	assertFloats(t, cols.AsFloat32(), []float32{5, 7, 9})
}

func TestCPUBackend_MeanDim(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.MeanDim(x, 1, false)
	assertFloats(t, result.AsFloat32(), []float32{2, 5})
}

func TestCPUBackend_Reshape(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Reshape(x, tensor.Shape{3, 2})
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2, 3, 4, 5, 6})

	defer func() {
		if recover() == nil {
			t.Error("Reshape with mismatched element count should panic")
		}
	}()
	backend.Reshape(x, tensor.Shape{4, 2})
}

func TestCPUBackend_Transpose(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Transpose(x)
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 4, 2, 5, 3, 6})
}

func TestCPUBackend_Transpose3D(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, tensor.Shape{2, 2, 2})

	// Swap the first two axes only.
	result := backend.Transpose(x, 1, 0, 2)
	if !result.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2, 5, 6, 3, 4, 7, 8})
}

func TestCPUBackend_Expand(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	result := backend.Expand(x, tensor.Shape{3, 2})
	assertFloats(t, result.AsFloat32(), []float32{1, 1, 2, 2, 3, 3})

	// Rank promotion.
	y := fromSlice(t, []float32{5}, tensor.Shape{1})
	result = backend.Expand(y, tensor.Shape{2, 3})
	assertFloats(t, result.AsFloat32(), []float32{5, 5, 5, 5, 5, 5})
}

func TestCPUBackend_Comparisons(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 5, 3}, tensor.Shape{3})
	b := fromSlice(t, []float32{2, 5, 1}, tensor.Shape{3})

	greater := backend.Greater(a, b)
	if greater.DType() != tensor.Bool {
		t.Fatalf("Greater dtype = %s, want bool", greater.DType())
	}

	wantGreater := []bool{false, false, true}
	for i, v := range wantGreater {
		if greater.AsBool()[i] != v {
			t.Errorf("Greater[%d] = %v, want %v", i, greater.AsBool()[i], v)
		}
	}

	equal := backend.Equal(a, b)
	wantEqual := []bool{false, true, false}
	for i, v := range wantEqual {
		if equal.AsBool()[i] != v {
			t.Errorf("Equal[%d] = %v, want %v", i, equal.AsBool()[i], v)
		}
	}
}

func TestCPUBackend_Int64Arithmetic(t *testing.T) {
	backend := New()
	raw, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsInt64(), []int64{1, 2, 3})

	other, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(other.AsInt64(), []int64{10, 20, 30})

	result := backend.Add(raw, other)
	want := []int64{11, 22, 33}
	for i, v := range want {
		if result.AsInt64()[i] != v {
			t.Errorf("element %d = %d, want %d", i, result.AsInt64()[i], v)
		}
	}
}
