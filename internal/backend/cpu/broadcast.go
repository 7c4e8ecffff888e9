package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// binOp selects the arithmetic kernel for element-wise binary dispatch.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

// number covers the dtypes arithmetic kernels operate on. Bool tensors
// only appear as comparison results and never enter arithmetic.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

func kernel[E number](op binOp) func(E, E) E {
	switch op {
	case opAdd:
		return func(x, y E) E { return x + y }
	case opSub:
		return func(x, y E) E { return x - y }
	case opMul:
		return func(x, y E) E { return x * y }
	case opDiv:
		return func(x, y E) E { return x / y }
	default:
		panic(fmt.Sprintf("cpu: unknown binary op %d", op))
	}
}

// applyBinaryInto runs a same-shape element-wise kernel. out may alias a.
func applyBinaryInto(out, a, b *tensor.RawTensor, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		binaryLoop(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kernel[float32](op))
	case tensor.Float64:
		binaryLoop(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kernel[float64](op))
	case tensor.Int32:
		binaryLoop(out.AsInt32(), a.AsInt32(), b.AsInt32(), kernel[int32](op))
	case tensor.Int64:
		binaryLoop(out.AsInt64(), a.AsInt64(), b.AsInt64(), kernel[int64](op))
	case tensor.Uint8:
		binaryLoop(out.AsUint8(), a.AsUint8(), b.AsUint8(), kernel[uint8](op))
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %s for arithmetic", a.DType()))
	}
}

func binaryLoop[E number](out, a, b []E, f func(E, E) E) {
	for i := range out {
		out[i] = f(a[i], b[i])
	}
}

// applyBinaryBroadcast runs an element-wise kernel where a and b broadcast
// to out's shape. The output buffer never aliases the inputs.
func applyBinaryBroadcast(out, a, b *tensor.RawTensor, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		broadcastLoop(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
			out.Shape(), a.Shape(), b.Shape(), kernel[float32](op))
	case tensor.Float64:
		broadcastLoop(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(),
			out.Shape(), a.Shape(), b.Shape(), kernel[float64](op))
	case tensor.Int32:
		broadcastLoop(out.AsInt32(), a.AsInt32(), b.AsInt32(),
			out.Shape(), a.Shape(), b.Shape(), kernel[int32](op))
	case tensor.Int64:
		broadcastLoop(out.AsInt64(), a.AsInt64(), b.AsInt64(),
			out.Shape(), a.Shape(), b.Shape(), kernel[int64](op))
	case tensor.Uint8:
		broadcastLoop(out.AsUint8(), a.AsUint8(), b.AsUint8(),
			out.Shape(), a.Shape(), b.Shape(), kernel[uint8](op))
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %s for arithmetic", a.DType()))
	}
}

func broadcastLoop[E number](out, a, b []E, outShape, aShape, bShape tensor.Shape, f func(E, E) E) {
	aIdx := newBroadcastIndexer(outShape, aShape)
	bIdx := newBroadcastIndexer(outShape, bShape)
	for i := range out {
		out[i] = f(a[aIdx.at(i)], b[bIdx.at(i)])
	}
}

// broadcastIndexer maps flat indices in the output shape to flat indices
// in a source shape whose size-1 dimensions are stretched.
type broadcastIndexer struct {
	outStrides []int
	srcStrides []int // aligned to outShape; 0 stride for stretched dims
}

func newBroadcastIndexer(outShape, srcShape tensor.Shape) broadcastIndexer {
	outStrides := outShape.ComputeStrides()
	srcStrides := make([]int, len(outShape))

	realStrides := srcShape.ComputeStrides()
	offset := len(outShape) - len(srcShape)
	for d := range srcShape {
		if srcShape[d] != 1 {
			srcStrides[offset+d] = realStrides[d]
		}
	}
	return broadcastIndexer{outStrides: outStrides, srcStrides: srcStrides}
}

func (bi broadcastIndexer) at(i int) int {
	src := 0
	rem := i
	for d := range bi.outStrides {
		coord := rem / bi.outStrides[d]
		rem %= bi.outStrides[d]
		src += coord * bi.srcStrides[d]
	}
	return src
}
