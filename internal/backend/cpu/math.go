package cpu

import (
	"fmt"
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// Neg returns the element-wise negation.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, x, func(v float32) float32 { return -v })
	case tensor.Float64:
		return unaryOp(cpu, x, func(v float64) float64 { return -v })
	case tensor.Int32:
		return unaryOp(cpu, x, func(v int32) int32 { return -v })
	case tensor.Int64:
		return unaryOp(cpu, x, func(v int64) int64 { return -v })
	default:
		panic(fmt.Sprintf("cpu: neg: unsupported dtype %s", x.DType()))
	}
}

// Exp returns the element-wise exponential. Float types only.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, x, math.Exp)
	default:
		panic(fmt.Sprintf("cpu: exp: unsupported dtype %s", x.DType()))
	}
}

// Log returns the element-wise natural logarithm. Float types only.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, x, func(v float32) float32 { return float32(math.Log(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, x, math.Log)
	default:
		panic(fmt.Sprintf("cpu: log: unsupported dtype %s", x.DType()))
	}
}

// Sqrt returns the element-wise square root. Float types only.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, x, math.Sqrt)
	default:
		panic(fmt.Sprintf("cpu: sqrt: unsupported dtype %s", x.DType()))
	}
}

// unaryOp applies f element-wise, writing in place when x is unshared.
func unaryOp[E number](cpu *CPUBackend, x *tensor.RawTensor, f func(E) E) *tensor.RawTensor {
	out := x
	if !x.IsUnique() {
		var err error
		out, err = tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
		if err != nil {
			panic(fmt.Sprintf("cpu: unary: %v", err))
		}
	}

	src := asSlice[E](x)
	dst := asSlice[E](out)
	for i := range dst {
		dst[i] = f(src[i])
	}
	return out
}

// asSlice views the raw buffer as a typed slice.
func asSlice[E number](t *tensor.RawTensor) []E {
	switch any(*new(E)).(type) {
	case float32:
		return any(t.AsFloat32()).([]E)
	case float64:
		return any(t.AsFloat64()).([]E)
	case int32:
		return any(t.AsInt32()).([]E)
	case int64:
		return any(t.AsInt64()).([]E)
	case uint8:
		return any(t.AsUint8()).([]E)
	default:
		panic("cpu: unsupported element type")
	}
}
