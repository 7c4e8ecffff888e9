package ops

import "github.com/ember-ml/ember/internal/tensor"

// NegOp records element-wise negation: output = -x.
//
// Backward pass: d(-x)/dx = -1, so grad_x = -outputGrad.
type NegOp struct{}

// NewNegOp creates a NegOp. Negation needs nothing from the forward pass.
func NewNegOp() *NegOp { return &NegOp{} }

// Kind identifies the operation.
func (op *NegOp) Kind() Kind { return KindNeg }

// Backward negates the output gradient.
func (op *NegOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Neg(outputGrad)}
}
