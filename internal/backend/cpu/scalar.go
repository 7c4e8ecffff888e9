package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// AddScalar adds a scalar to every element. The scalar is converted to
// the tensor's dtype; it must be a numeric Go value.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64(scalar)
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, x, func(v float32) float32 { return v + float32(s) })
	case tensor.Float64:
		return unaryOp(cpu, x, func(v float64) float64 { return v + s })
	case tensor.Int32:
		return unaryOp(cpu, x, func(v int32) int32 { return v + int32(s) })
	case tensor.Int64:
		return unaryOp(cpu, x, func(v int64) int64 { return v + int64(s) })
	case tensor.Uint8:
		return unaryOp(cpu, x, func(v uint8) uint8 { return v + uint8(s) })
	default:
		panic(fmt.Sprintf("cpu: add_scalar: unsupported dtype %s", x.DType()))
	}
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64(scalar)
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, x, func(v float32) float32 { return v * float32(s) })
	case tensor.Float64:
		return unaryOp(cpu, x, func(v float64) float64 { return v * s })
	case tensor.Int32:
		return unaryOp(cpu, x, func(v int32) int32 { return v * int32(s) })
	case tensor.Int64:
		return unaryOp(cpu, x, func(v int64) int64 { return v * int64(s) })
	case tensor.Uint8:
		return unaryOp(cpu, x, func(v uint8) uint8 { return v * uint8(s) })
	default:
		panic(fmt.Sprintf("cpu: mul_scalar: unsupported dtype %s", x.DType()))
	}
}

func toFloat64(v any) float64 {
	switch s := v.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	case int32:
		return float64(s)
	case int64:
		return float64(s)
	case uint8:
		return float64(s)
	default:
		panic(fmt.Sprintf("cpu: unsupported scalar type %T", v))
	}
}
