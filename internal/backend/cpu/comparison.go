package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// Greater compares element-wise: a > b.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater", a, b, cmpGT)
}

// Lower compares element-wise: a < b.
func (cpu *CPUBackend) Lower(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lower", a, b, cmpLT)
}

// GreaterEqual compares element-wise: a >= b.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater_equal", a, b, cmpGE)
}

// LowerEqual compares element-wise: a <= b.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lower_equal", a, b, cmpLE)
}

// Equal compares element-wise: a == b.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("equal", a, b, cmpEQ)
}

// NotEqual compares element-wise: a != b.
func (cpu *CPUBackend) NotEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("not_equal", a, b, cmpNE)
}

type cmpOp int

const (
	cmpGT cmpOp = iota
	cmpLT
	cmpGE
	cmpLE
	cmpEQ
	cmpNE
)

func cmpKernel[E number](op cmpOp) func(E, E) bool {
	switch op {
	case cmpGT:
		return func(x, y E) bool { return x > y }
	case cmpLT:
		return func(x, y E) bool { return x < y }
	case cmpGE:
		return func(x, y E) bool { return x >= y }
	case cmpLE:
		return func(x, y E) bool { return x <= y }
	case cmpEQ:
		return func(x, y E) bool { return x == y }
	case cmpNE:
		return func(x, y E) bool { return x != y }
	default:
		panic(fmt.Sprintf("cpu: unknown comparison op %d", op))
	}
}

// compare produces a Bool tensor; inputs broadcast like arithmetic.
func (cpu *CPUBackend) compare(name string, a, b *tensor.RawTensor, op cmpOp) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: %s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, tensor.Bool, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		compareLoop(result.AsBool(), a.AsFloat32(), b.AsFloat32(),
			outShape, a.Shape(), b.Shape(), cmpKernel[float32](op))
	case tensor.Float64:
		compareLoop(result.AsBool(), a.AsFloat64(), b.AsFloat64(),
			outShape, a.Shape(), b.Shape(), cmpKernel[float64](op))
	case tensor.Int32:
		compareLoop(result.AsBool(), a.AsInt32(), b.AsInt32(),
			outShape, a.Shape(), b.Shape(), cmpKernel[int32](op))
	case tensor.Int64:
		compareLoop(result.AsBool(), a.AsInt64(), b.AsInt64(),
			outShape, a.Shape(), b.Shape(), cmpKernel[int64](op))
	case tensor.Uint8:
		compareLoop(result.AsBool(), a.AsUint8(), b.AsUint8(),
			outShape, a.Shape(), b.Shape(), cmpKernel[uint8](op))
	default:
		panic(fmt.Sprintf("cpu: %s: unsupported dtype %s", name, a.DType()))
	}
	return result
}

func compareLoop[E number](out []bool, a, b []E, outShape, aShape, bShape tensor.Shape, f func(E, E) bool) {
	aIdx := newBroadcastIndexer(outShape, aShape)
	bIdx := newBroadcastIndexer(outShape, bShape)
	for i := range out {
		out[i] = f(a[aIdx.at(i)], b[bIdx.at(i)])
	}
}
