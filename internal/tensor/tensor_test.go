package tensor

import (
	"testing"
)

func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if !x.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", x.Shape())
	}
	if x.DType() != Float32 {
		t.Errorf("DType() = %s, want float32", x.DType())
	}
	if x.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %f, want 6", x.At(1, 2))
	}
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	backend := NewMockBackend()
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}, backend); err == nil {
		t.Error("FromSlice accepted 3 elements for shape [2 2]")
	}
}

func TestTensor_SetAt(t *testing.T) {
	backend := NewMockBackend()
	x := Zeros[float64](Shape{2, 2}, backend)

	x.Set(3.5, 1, 0)
	if x.At(1, 0) != 3.5 {
		t.Errorf("At(1,0) = %f, want 3.5", x.At(1, 0))
	}

	defer func() {
		if recover() == nil {
			t.Error("At with out-of-bounds index should panic")
		}
	}()
	x.At(2, 0)
}

func TestTensor_Item(t *testing.T) {
	backend := NewMockBackend()
	x, err := FromSlice([]float32{42}, Shape{1}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if x.Item() != 42 {
		t.Errorf("Item() = %f, want 42", x.Item())
	}

	y := Zeros[float32](Shape{2}, backend)
	defer func() {
		if recover() == nil {
			t.Error("Item() on multi-element tensor should panic")
		}
	}()
	y.Item()
}

// Operations must reach the backend only through the capability
// interface; the mock records every entry point it serves.
func TestTensor_DispatchesThroughBackend(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2}, Shape{2}, backend)
	b, _ := FromSlice([]float32{3, 4}, Shape{2}, backend)

	c := a.Add(b).Mul(b)
	_ = a.Greater(b)
	_ = c.Sum()

	want := []string{"Add", "Mul", "Greater", "Sum"}
	if len(backend.Calls) != len(want) {
		t.Fatalf("Calls = %v, want %v", backend.Calls, want)
	}
	for i, name := range want {
		if backend.Calls[i] != name {
			t.Errorf("Calls[%d] = %s, want %s", i, backend.Calls[i], name)
		}
	}
}

func TestMockBackend_Broadcasting(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3}, Shape{3, 1}, backend)
	b, _ := FromSlice([]float32{10, 20}, Shape{1, 2}, backend)

	c := a.Add(b)
	if !c.Shape().Equal(Shape{3, 2}) {
		t.Fatalf("broadcast result shape = %v, want [3 2]", c.Shape())
	}
	want := []float32{11, 21, 12, 22, 13, 23}
	for i, v := range want {
		if c.Data()[i] != v {
			t.Errorf("data[%d] = %f, want %f", i, c.Data()[i], v)
		}
	}
}

func TestCreation(t *testing.T) {
	backend := NewMockBackend()

	ones := Ones[float32](Shape{2, 2}, backend)
	for i, v := range ones.Data() {
		if v != 1 {
			t.Errorf("Ones data[%d] = %f, want 1", i, v)
		}
	}

	full := Full[int32](Shape{3}, 7, backend)
	for i, v := range full.Data() {
		if v != 7 {
			t.Errorf("Full data[%d] = %d, want 7", i, v)
		}
	}

	ar := Arange[float32](2, 6, backend)
	want := []float32{2, 3, 4, 5}
	if !ar.Shape().Equal(Shape{4}) {
		t.Fatalf("Arange shape = %v, want [4]", ar.Shape())
	}
	for i, v := range want {
		if ar.Data()[i] != v {
			t.Errorf("Arange data[%d] = %f, want %f", i, ar.Data()[i], v)
		}
	}
}
