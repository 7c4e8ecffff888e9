package ops

import "github.com/ember-ml/ember/internal/tensor"

// reduceBroadcast reduces a gradient to the shape an input had before
// broadcasting: summed over stretched dimensions, reshaped at the end if
// the ranks differ.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was stretched along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone on the no-op path so accumulation cannot write through to a
	// gradient another consumer still holds.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// Broadcasting aligns shapes from the right: leading extra dimensions
	// were created wholesale, so sum them away first.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	// Then sum over the dimensions that were stretched from size 1.
	for d := range targetShape {
		if targetShape[d] == 1 && result.Shape()[d] > 1 {
			result = backend.SumDim(result, d, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// broadcastGrad stretches a reduced gradient back to the input shape,
// giving every element that fed the reduction the same gradient.
func broadcastGrad(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad.Clone()
	}
	return backend.Expand(grad, targetShape)
}
