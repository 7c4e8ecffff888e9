package autodiff

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// Type constraints re-exported so call sites need only this package.
type (
	// DType is the set of supported element types.
	DType = tensor.DType
	// Backend is the tensor capability interface gradients flow through.
	Backend = tensor.Backend
)

// Tensor is a differentiable tensor: a typed handle on a computation
// graph node plus the backend used for both forward and backward math.
// Operations on it run eagerly through the backend and extend the graph;
// the graph lives only in these handles and their nodes, so dropping all
// handles to a subgraph releases it.
type Tensor[T DType, B Backend] struct {
	node    *Node
	backend B
}

// FromSlice creates a leaf tensor from a Go slice. The data is copied.
// The leaf does not require grad until RequireGrad is called.
func FromSlice[T DType, B Backend](data []T, shape tensor.Shape, b B) (*Tensor[T, B], error) {
	inner, err := tensor.FromSlice[T, B](data, shape, b)
	if err != nil {
		return nil, err
	}
	return &Tensor[T, B]{
		node:    newLeaf(inner.Raw(), false),
		backend: b,
	}, nil
}

// FromTensor wraps an existing eager tensor as a graph leaf.
func FromTensor[T DType, B Backend](t *tensor.Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{
		node:    newLeaf(t.Raw(), false),
		backend: t.Backend(),
	}
}

// Zeros creates a leaf tensor filled with zeros.
func Zeros[T DType, B Backend](shape tensor.Shape, b B) *Tensor[T, B] {
	return FromTensor(tensor.Zeros[T, B](shape, b))
}

// Ones creates a leaf tensor filled with ones.
func Ones[T DType, B Backend](shape tensor.Shape, b B) *Tensor[T, B] {
	return FromTensor(tensor.Ones[T, B](shape, b))
}

// Randn creates a leaf tensor with standard normal values.
func Randn[T DType, B Backend](shape tensor.Shape, b B) *Tensor[T, B] {
	return FromTensor(tensor.Randn[T, B](shape, b))
}

// RequireGrad marks a leaf as a differentiation target and returns the
// tensor for chaining. Interior nodes derive the flag from their parents
// at recording time, so flipping it afterwards cannot take effect; doing
// so is a programming error.
func (t *Tensor[T, B]) RequireGrad() *Tensor[T, B] {
	if !t.node.IsLeaf() {
		panic("autodiff: RequireGrad is only valid on leaf tensors")
	}
	t.node.requiresGrad = true
	return t
}

// RequiresGrad reports whether gradients flow through this tensor.
func (t *Tensor[T, B]) RequiresGrad() bool {
	return t.node.requiresGrad
}

// Node returns the tensor's graph node.
func (t *Tensor[T, B]) Node() *Node {
	return t.node
}

// ID returns the graph node id, the key for gradient lookups.
func (t *Tensor[T, B]) ID() uint64 {
	return t.node.id
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() tensor.Shape {
	return t.node.value.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() tensor.DataType {
	return t.node.value.DType()
}

// Device returns the tensor's compute device.
func (t *Tensor[T, B]) Device() tensor.Device {
	return t.node.value.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.node.value.NumElements()
}

// Raw returns the retained forward value.
func (t *Tensor[T, B]) Raw() *tensor.RawTensor {
	return t.node.value
}

// Backend returns the computation backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Inner returns the forward value as an eager tensor, leaving the graph.
// Operations on the result are not recorded.
func (t *Tensor[T, B]) Inner() *tensor.Tensor[T, B] {
	return tensor.New[T, B](t.node.value, t.backend)
}

// Detach returns a new leaf holding the same value with no provenance
// and no grad requirement. Gradients never flow across a Detach.
func (t *Tensor[T, B]) Detach() *Tensor[T, B] {
	return &Tensor[T, B]{
		node:    newLeaf(t.node.value, false),
		backend: t.backend,
	}
}

// Data returns a typed view of the tensor's data (zero-copy).
func (t *Tensor[T, B]) Data() []T {
	return t.Inner().Data()
}

// Item returns the scalar value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	return t.Inner().Item()
}

// String returns a human-readable representation.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s (node %d, grad %v)",
		t.DType(), t.Shape(), t.Device(), t.node.id, t.node.requiresGrad)
}
