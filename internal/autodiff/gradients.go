package autodiff

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Gradients holds the result of one backward pass, keyed by node id.
// Each Backward call returns a fresh store; repeated calls on the same
// graph are independent and never accumulate into each other.
//
// A Gradients value is not safe for concurrent mutation; the backward
// pass that fills it runs on a single goroutine.
type Gradients struct {
	grads map[uint64]*tensor.RawTensor
}

// NewGradients creates an empty gradient store.
func NewGradients() *Gradients {
	return &Gradients{
		grads: make(map[uint64]*tensor.RawTensor),
	}
}

// Raw looks up the gradient recorded for a node id.
func (g *Gradients) Raw(id uint64) (*tensor.RawTensor, bool) {
	grad, ok := g.grads[id]
	return grad, ok
}

// Len returns the number of recorded gradients.
func (g *Gradients) Len() int {
	return len(g.grads)
}

// IDs returns the node ids with recorded gradients, sorted for
// deterministic iteration.
func (g *Gradients) IDs() []uint64 {
	ids := make([]uint64, 0, len(g.grads))
	for id := range g.grads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// set stores a gradient under id, retaining it via Clone so later
// backend calls cannot reuse its buffer in place.
func (g *Gradients) set(id uint64, grad *tensor.RawTensor) {
	g.grads[id] = grad.Clone()
}

// accumulate adds a contribution to the gradient stored under id.
// The first contribution is retained as-is; later ones are summed
// through the backend, which handles fan-in of any arity.
func (g *Gradients) accumulate(id uint64, grad *tensor.RawTensor, backend tensor.Backend) {
	existing, ok := g.grads[id]
	if !ok {
		g.set(id, grad)
		return
	}
	g.grads[id] = backend.Add(existing, grad)
}

// GradOf looks up the gradient of t in g and wraps it as a typed tensor
// on t's backend. The gradient has t's shape and dtype.
//
// Returns ErrNoGradient if t has no entry, either because it does not
// require grad, because it was not part of the differentiated graph, or
// because its subtree was pruned.
func GradOf[T DType, B Backend](g *Gradients, t *Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	grad, ok := g.Raw(t.node.id)
	if !ok {
		return nil, errors.Wrapf(ErrNoGradient, "node %d", t.node.id)
	}
	return tensor.New[T, B](grad, t.backend), nil
}
