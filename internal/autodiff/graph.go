// Package autodiff implements reverse-mode automatic differentiation on
// top of any tensor backend.
//
// Differentiable tensors record their provenance as a dynamic computation
// graph: every operation produces a Node pointing at the nodes of its
// inputs, together with an operation descriptor holding the backward
// rule. Nothing else is recorded anywhere; there is no global tape.
// Calling Backward on a tensor walks the subgraph reachable from it,
// orders it so every node is visited after everything that depends on it,
// and accumulates gradients into an id-keyed store.
//
// Usage:
//
//	backend := cpu.New()
//	x, _ := autodiff.FromSlice([]float32{3}, tensor.Shape{1}, backend)
//	x.RequireGrad()
//	y := x.Mul(x) // y = x²
//
//	grads, _ := y.Backward()
//	gx, _ := autodiff.GradOf(grads, x)
//	fmt.Println(gx.Data()) // dy/dx = 2x = [6]
package autodiff

import (
	"sync/atomic"

	"github.com/ember-ml/ember/internal/autodiff/ops"
	"github.com/ember-ml/ember/internal/tensor"
)

// nextNodeID issues process-unique node identifiers. Identity, not order:
// ids only key gradient lookups and visited sets.
var nextNodeID atomic.Uint64

// Node is one vertex of the computation graph. It owns a retained copy of
// the value produced at this point of the forward pass, the descriptor
// that knows how to push gradients to its parents, and the parent nodes
// themselves. Leaves have no descriptor and no parents.
//
// Nodes are immutable after construction except for the requiresGrad flag
// on leaves, which RequireGrad may switch on before the node is consumed
// by an operation.
type Node struct {
	id           uint64
	value        *tensor.RawTensor
	op           ops.Operation
	parents      []*Node
	requiresGrad bool
}

// newLeaf creates a graph node with no provenance. The value is retained
// via Clone, so its buffer is marked shared and backends will not reuse
// it in place.
func newLeaf(value *tensor.RawTensor, requiresGrad bool) *Node {
	return &Node{
		id:           nextNodeID.Add(1),
		value:        value.Clone(),
		requiresGrad: requiresGrad,
	}
}

// newNode creates an interior node recording an operation. The node
// requires grad iff any parent does; callers should skip descriptor
// construction entirely when no parent requires grad and record a leaf
// instead.
func newNode(value *tensor.RawTensor, op ops.Operation, parents ...*Node) *Node {
	requiresGrad := false
	for _, p := range parents {
		if p.requiresGrad {
			requiresGrad = true
			break
		}
	}
	return &Node{
		id:           nextNodeID.Add(1),
		value:        value.Clone(),
		op:           op,
		parents:      parents,
		requiresGrad: requiresGrad,
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() uint64 {
	return n.id
}

// Value returns the retained forward value.
func (n *Node) Value() *tensor.RawTensor {
	return n.value
}

// Op returns the recorded operation descriptor, or nil for leaves.
func (n *Node) Op() ops.Operation {
	return n.op
}

// Parents returns the input nodes of the recorded operation.
func (n *Node) Parents() []*Node {
	return n.parents
}

// RequiresGrad reports whether gradients flow through this node.
func (n *Node) RequiresGrad() bool {
	return n.requiresGrad
}

// IsLeaf reports whether the node has no recorded provenance.
func (n *Node) IsLeaf() bool {
	return n.op == nil
}

// Kind returns the recorded operation kind, or ops.KindLeaf.
func (n *Node) Kind() ops.Kind {
	if n.op == nil {
		return ops.KindLeaf
	}
	return n.op.Kind()
}
