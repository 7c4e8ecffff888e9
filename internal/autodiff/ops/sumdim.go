package ops

import "github.com/ember-ml/ember/internal/tensor"

// SumDimOp records a reduction along one dimension:
// output = sum of x along dim.
//
// Backward pass: the gradient is restored to the kept-dimension shape
// (re-inserting the reduced axis when keepDim was false) and stretched
// back over the reduced dimension.
type SumDimOp struct {
	inputShape tensor.Shape
	dim        int
	keepDim    bool
}

// NewSumDimOp creates a SumDimOp.
func NewSumDimOp(x *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		inputShape: x.Shape(),
		dim:        dim,
		keepDim:    keepDim,
	}
}

// Kind identifies the operation.
func (op *SumDimOp) Kind() Kind { return KindSumDim }

// Backward stretches the gradient back over the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		kept := op.inputShape.Clone()
		kept[op.dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return []*tensor.RawTensor{broadcastGrad(grad, op.inputShape, backend)}
}
