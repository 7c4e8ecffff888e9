package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// transposeData materializes the permuted layout into out's buffer.
func transposeData(out, in *tensor.RawTensor, axes []int) {
	switch in.DType() {
	case tensor.Float32:
		permuteLoop(out.AsFloat32(), in.AsFloat32(), in.Shape(), out.Shape(), axes)
	case tensor.Float64:
		permuteLoop(out.AsFloat64(), in.AsFloat64(), in.Shape(), out.Shape(), axes)
	case tensor.Int32:
		permuteLoop(out.AsInt32(), in.AsInt32(), in.Shape(), out.Shape(), axes)
	case tensor.Int64:
		permuteLoop(out.AsInt64(), in.AsInt64(), in.Shape(), out.Shape(), axes)
	case tensor.Uint8:
		permuteLoop(out.AsUint8(), in.AsUint8(), in.Shape(), out.Shape(), axes)
	case tensor.Bool:
		permuteLoop(out.AsBool(), in.AsBool(), in.Shape(), out.Shape(), axes)
	default:
		panic(fmt.Sprintf("cpu: transpose: unsupported dtype %s", in.DType()))
	}
}

func permuteLoop[E any](out, in []E, inShape, outShape tensor.Shape, axes []int) {
	inStrides := inShape.ComputeStrides()
	outStrides := outShape.ComputeStrides()

	for i := range out {
		// Decompose the output index, then map each output coordinate
		// back to the input dimension it came from.
		rem := i
		srcIdx := 0
		for d := range outShape {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			srcIdx += coord * inStrides[axes[d]]
		}
		out[i] = in[srcIdx]
	}
}

// Expand broadcasts the tensor to the given shape, materializing the
// stretched dimensions. Every dimension of x must be 1 or match shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	srcShape := x.Shape()
	if len(srcShape) > len(shape) {
		panic(fmt.Sprintf("cpu: expand: cannot expand %v to smaller rank %v", srcShape, shape))
	}
	offset := len(shape) - len(srcShape)
	for d, size := range srcShape {
		if size != 1 && size != shape[offset+d] {
			panic(fmt.Sprintf("cpu: expand: cannot expand %v to %v", srcShape, shape))
		}
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: expand: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		expandLoop(result.AsFloat32(), x.AsFloat32(), shape, srcShape)
	case tensor.Float64:
		expandLoop(result.AsFloat64(), x.AsFloat64(), shape, srcShape)
	case tensor.Int32:
		expandLoop(result.AsInt32(), x.AsInt32(), shape, srcShape)
	case tensor.Int64:
		expandLoop(result.AsInt64(), x.AsInt64(), shape, srcShape)
	case tensor.Uint8:
		expandLoop(result.AsUint8(), x.AsUint8(), shape, srcShape)
	case tensor.Bool:
		expandLoop(result.AsBool(), x.AsBool(), shape, srcShape)
	default:
		panic(fmt.Sprintf("cpu: expand: unsupported dtype %s", x.DType()))
	}
	return result
}

func expandLoop[E any](out, in []E, outShape, srcShape tensor.Shape) {
	idx := newBroadcastIndexer(outShape, srcShape)
	for i := range out {
		out[i] = in[idx.at(i)]
	}
}
