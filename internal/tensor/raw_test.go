package tensor

import (
	"testing"
)

func TestRawTensor_New(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}

	// Zero-initialized
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %f, want 0", i, v)
		}
	}

	if _, err := NewRaw(Shape{2, -1}, Float32, CPU); err == nil {
		t.Error("NewRaw accepted an invalid shape")
	}
}

func TestRawTensor_Refcounting(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	if !raw.IsUnique() {
		t.Error("fresh tensor should be unique")
	}

	clone := raw.Clone()
	if raw.IsUnique() || clone.IsUnique() {
		t.Error("clone should make both references non-unique")
	}

	// Clones share memory.
	raw.AsFloat32()[0] = 42
	if clone.AsFloat32()[0] != 42 {
		t.Error("clone does not share the buffer")
	}

	clone.Release()
	if !raw.IsUnique() {
		t.Error("releasing the clone should restore uniqueness")
	}
}

func TestRawTensor_ForceNonUnique(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	restore := raw.ForceNonUnique()
	if raw.IsUnique() {
		t.Error("ForceNonUnique should pin the buffer as shared")
	}
	restore()
	if !raw.IsUnique() {
		t.Error("restore should release the extra reference")
	}
}

func TestRawTensor_TypedViews(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Int64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	data := raw.AsInt64()
	data[1] = 7
	if raw.AsInt64()[1] != 7 {
		t.Error("typed view is not zero-copy")
	}

	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on Int64 tensor should panic")
		}
	}()
	raw.AsFloat32()
}
