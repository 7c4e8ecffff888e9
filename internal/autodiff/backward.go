package autodiff

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Backward runs reverse-mode differentiation from t with an implicit
// seed gradient of ones. The implicit seed is only defined for terminals
// with a single element (the usual loss value); differentiating a larger
// tensor needs an explicit seed via BackwardWithSeed.
//
// The returned store holds one gradient per participating node, keyed by
// node id. If t does not require grad the store is empty.
func (t *Tensor[T, B]) Backward() (*Gradients, error) {
	if !t.node.requiresGrad {
		return NewGradients(), nil
	}
	if t.node.value.NumElements() != 1 {
		return nil, errors.Wrapf(ErrMissingSeed, "terminal shape %v", t.Shape())
	}

	seed := onesLike(t.node.value)
	return runBackward(t.node, seed, t.backend), nil
}

// BackwardWithSeed runs reverse-mode differentiation from t, seeding the
// terminal with an explicit gradient. The seed must have t's shape.
func (t *Tensor[T, B]) BackwardWithSeed(seed *tensor.Tensor[T, B]) (*Gradients, error) {
	if !t.node.requiresGrad {
		return NewGradients(), nil
	}
	if !seed.Shape().Equal(t.Shape()) {
		return nil, errors.Wrapf(ErrSeedShape, "terminal %v, seed %v", t.Shape(), seed.Shape())
	}

	return runBackward(t.node, seed.Raw(), t.backend), nil
}

// runBackward drives the reverse pass: assemble the tape, seed the
// terminal, then walk the tape back-to-front pushing each node's
// gradient through its backward rule into its parents.
func runBackward(terminal *Node, seed *tensor.RawTensor, backend tensor.Backend) *Gradients {
	grads := NewGradients()
	tape := buildTape(terminal)
	if len(tape) == 0 {
		return grads
	}

	grads.set(terminal.id, seed)

	for i := len(tape) - 1; i >= 0; i-- {
		node := tape[i]
		if node.op == nil {
			continue
		}

		grad, ok := grads.Raw(node.id)
		if !ok {
			// The tape guarantees consumers run before their parents, so
			// a missing entry here is a graph-construction bug.
			panic(fmt.Sprintf("autodiff: node %d (%s) reached without a gradient", node.id, node.Kind()))
		}

		// Keep the upstream gradient off the in-place fast path while the
		// backward rule computes with it.
		restore := grad.ForceNonUnique()
		parentGrads := node.op.Backward(grad, backend)
		restore()

		if len(parentGrads) != len(node.parents) {
			panic(fmt.Sprintf("autodiff: op %s returned %d gradients for %d parents",
				node.Kind(), len(parentGrads), len(node.parents)))
		}

		for j, parent := range node.parents {
			if !parent.requiresGrad {
				continue
			}
			grads.accumulate(parent.id, parentGrads[j], backend)
		}
	}

	return grads
}

// onesLike builds a gradient of ones with the value's shape and dtype.
func onesLike(v *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(v.Shape(), v.DType(), v.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: seed allocation: %v", err))
	}

	switch v.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	case tensor.Int32:
		data := out.AsInt32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Int64:
		data := out.AsInt64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("autodiff: cannot seed dtype %s", v.DType()))
	}
	return out
}
