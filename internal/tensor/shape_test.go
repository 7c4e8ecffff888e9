package tensor

import (
	"testing"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"scalar", Shape{}, 1},
		{"vector", Shape{5}, 5},
		{"matrix", Shape{3, 4}, 12},
		{"3d", Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.NumElements(); got != tt.want {
				t.Errorf("NumElements() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate() on valid shape returned %v", err)
	}
	if err := (Shape{}).Validate(); err != nil {
		t.Errorf("Validate() on scalar shape returned %v", err)
	}
	if err := (Shape{2, 0, 3}).Validate(); err == nil {
		t.Error("Validate() accepted a zero dimension")
	}
	if err := (Shape{-1, 4}).Validate(); err == nil {
		t.Error("Validate() accepted a negative dimension")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i, s := range want {
		if strides[i] != s {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], s)
		}
	}

	if got := len(Shape{}.ComputeStrides()); got != 0 {
		t.Errorf("scalar strides length = %d, want 0", got)
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name       string
		a, b, want Shape
		broadcast  bool
	}{
		{"same", Shape{3, 4}, Shape{3, 4}, Shape{3, 4}, false},
		{"stretch dim", Shape{3, 1}, Shape{3, 4}, Shape{3, 4}, true},
		{"rank promote", Shape{4}, Shape{3, 4}, Shape{3, 4}, true},
		{"scalar", Shape{}, Shape{2, 2}, Shape{2, 2}, true},
		{"both stretch", Shape{3, 1}, Shape{1, 4}, Shape{3, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if err != nil {
				t.Fatalf("BroadcastShapes(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if broadcast != tt.broadcast {
				t.Errorf("broadcast flag = %v, want %v", broadcast, tt.broadcast)
			}
		})
	}

	if _, _, err := BroadcastShapes(Shape{3, 2}, Shape{3, 4}); err == nil {
		t.Error("BroadcastShapes accepted incompatible shapes [3,2] and [3,4]")
	}
}
