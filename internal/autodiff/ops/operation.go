// Package ops defines the operation descriptors recorded in the
// computation graph during the forward pass.
//
// Each descriptor implements the Operation interface: it captures the raw
// values its backward rule needs (inputs, sometimes the output) and, given
// the gradient flowing into the operation's result, produces one gradient
// per parent in parent order. All tensor math inside backward rules goes
// through the backend capability interface, so the same descriptors work
// on any backend.
package ops

import "github.com/ember-ml/ember/internal/tensor"

// Kind identifies an operation in the differentiable catalog. The set is
// closed: graph consumers can switch over it exhaustively.
type Kind int

const (
	KindLeaf Kind = iota
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindNeg
	KindExp
	KindLog
	KindSqrt
	KindAddScalar
	KindMulScalar
	KindMatMul
	KindSum
	KindSumDim
	KindMeanDim
	KindReshape
	KindTranspose
	KindExpand
)

var kindNames = map[Kind]string{
	KindLeaf:      "leaf",
	KindAdd:       "add",
	KindSub:       "sub",
	KindMul:       "mul",
	KindDiv:       "div",
	KindNeg:       "neg",
	KindExp:       "exp",
	KindLog:       "log",
	KindSqrt:      "sqrt",
	KindAddScalar: "add_scalar",
	KindMulScalar: "mul_scalar",
	KindMatMul:    "matmul",
	KindSum:       "sum",
	KindSumDim:    "sum_dim",
	KindMeanDim:   "mean_dim",
	KindReshape:   "reshape",
	KindTranspose: "transpose",
	KindExpand:    "expand",
}

// String returns the operation name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Operation is a recorded differentiable operation. Implementations hold
// whatever forward values their derivative needs; they never hold graph
// nodes, so a descriptor alone keeps no subgraph alive.
type Operation interface {
	// Kind identifies the operation.
	Kind() Kind

	// Backward computes the gradients of the operation's inputs given the
	// gradient of its output. The returned slice matches the recording
	// node's parents in length and order.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
