package ops

import "github.com/ember-ml/ember/internal/tensor"

// MeanDimOp records an average along one dimension:
// output = mean of x along dim.
//
// Backward pass: like SumDimOp, with each restored gradient scaled by
// 1/n where n is the size of the reduced dimension.
type MeanDimOp struct {
	inputShape tensor.Shape
	dim        int
	keepDim    bool
}

// NewMeanDimOp creates a MeanDimOp.
func NewMeanDimOp(x *tensor.RawTensor, dim int, keepDim bool) *MeanDimOp {
	return &MeanDimOp{
		inputShape: x.Shape(),
		dim:        dim,
		keepDim:    keepDim,
	}
}

// Kind identifies the operation.
func (op *MeanDimOp) Kind() Kind { return KindMeanDim }

// Backward stretches the gradient over the reduced dimension and divides
// by its size.
func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		kept := op.inputShape.Clone()
		kept[op.dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	grad = broadcastGrad(grad, op.inputShape, backend)
	grad = backend.MulScalar(grad, 1.0/float64(op.inputShape[op.dim]))
	return []*tensor.RawTensor{grad}
}
