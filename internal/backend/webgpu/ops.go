package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// gpuEligible reports whether the float32 1D kernels can serve these
// operands: broadcasting and other dtypes go to the host engine.
func gpuEligible(a, b *tensor.RawTensor) bool {
	return a.DType() == tensor.Float32 && b.DType() == tensor.Float32 && a.Shape().Equal(b.Shape())
}

// Add performs element-wise addition, on GPU when the shapes match.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !gpuEligible(a, other) {
		return b.host.Add(a, other)
	}
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction, on GPU when the shapes match.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !gpuEligible(a, other) {
		return b.host.Sub(a, other)
	}
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication, on GPU when the shapes match.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !gpuEligible(a, other) {
		return b.host.Mul(a, other)
	}
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division, on GPU when the shapes match.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !gpuEligible(a, other) {
		return b.host.Div(a, other)
	}
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// Neg returns the element-wise negation.
func (b *Backend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Neg(x)
	}
	result, err := b.runUnaryOp(x, "neg", negShader, nil)
	if err != nil {
		panic("webgpu: Neg: " + err.Error())
	}
	return result
}

// Exp returns the element-wise exponential.
func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Exp(x)
	}
	result, err := b.runUnaryOp(x, "exp", expShader, nil)
	if err != nil {
		panic("webgpu: Exp: " + err.Error())
	}
	return result
}

// Log returns the element-wise natural logarithm.
func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Log(x)
	}
	result, err := b.runUnaryOp(x, "log", logShader, nil)
	if err != nil {
		panic("webgpu: Log: " + err.Error())
	}
	return result
}

// Sqrt returns the element-wise square root.
func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Sqrt(x)
	}
	result, err := b.runUnaryOp(x, "sqrt", sqrtShader, nil)
	if err != nil {
		panic("webgpu: Sqrt: " + err.Error())
	}
	return result
}

// scalarParams packs a float32 scalar as the uniform payload after the
// element count.
func scalarParams(scalar any) []byte {
	var v float32
	switch s := scalar.(type) {
	case float32:
		v = s
	case float64:
		v = float32(s)
	case int:
		v = float32(s)
	case int32:
		v = float32(s)
	case int64:
		v = float32(s)
	default:
		panic("webgpu: unsupported scalar type")
	}
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, math.Float32bits(v))
	return out
}

// AddScalar adds a scalar to every element.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.AddScalar(x, scalar)
	}
	result, err := b.runUnaryOp(x, "add_scalar", addScalarShader, scalarParams(scalar))
	if err != nil {
		panic("webgpu: AddScalar: " + err.Error())
	}
	return result
}

// MulScalar multiplies every element by a scalar.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.MulScalar(x, scalar)
	}
	result, err := b.runUnaryOp(x, "mul_scalar", mulScalarShader, scalarParams(scalar))
	if err != nil {
		panic("webgpu: MulScalar: " + err.Error())
	}
	return result
}

// MatMul performs 2D matrix multiplication on GPU.
func (b *Backend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != tensor.Float32 || other.DType() != tensor.Float32 ||
		len(a.Shape()) != 2 || len(other.Shape()) != 2 {
		return b.host.MatMul(a, other)
	}
	if a.Shape()[1] != other.Shape()[0] {
		panic("webgpu: matmul: inner dimensions do not match")
	}
	result, err := b.runMatMul(a, other)
	if err != nil {
		panic("webgpu: MatMul: " + err.Error())
	}
	return result
}

// Reductions, shape changes, and comparisons run on the host engine:
// they are memory-bound bookkeeping where a round trip through GPU
// buffers costs more than it saves.

// Sum reduces all elements to a single-element tensor.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Sum(x)
}

// SumDim sums along a dimension.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.host.SumDim(x, dim, keepDim)
}

// MeanDim averages along a dimension.
func (b *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.host.MeanDim(x, dim, keepDim)
}

// Reshape returns a tensor with the same data and a new shape.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return b.host.Reshape(t, newShape)
}

// Transpose permutes the tensor's dimensions.
func (b *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	return b.host.Transpose(t, axes...)
}

// Expand broadcasts the tensor to the given shape.
func (b *Backend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return b.host.Expand(x, shape)
}

// Greater compares element-wise: a > b.
func (b *Backend) Greater(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Greater(a, other)
}

// Lower compares element-wise: a < b.
func (b *Backend) Lower(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Lower(a, other)
}

// GreaterEqual compares element-wise: a >= b.
func (b *Backend) GreaterEqual(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.GreaterEqual(a, other)
}

// LowerEqual compares element-wise: a <= b.
func (b *Backend) LowerEqual(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.LowerEqual(a, other)
}

// Equal compares element-wise: a == b.
func (b *Backend) Equal(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Equal(a, other)
}

// NotEqual compares element-wise: a != b.
func (b *Backend) NotEqual(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.NotEqual(a, other)
}
