package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a call-recording backend for tests. Every catalog entry
// point appends its name to Calls before producing a naive float64-based
// result, so tests can verify that higher layers dispatch through the
// capability interface only.
type MockBackend struct {
	Calls []string
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

func (m *MockBackend) record(op string) {
	m.Calls = append(m.Calls, op)
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	m.record("Add")
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	m.record("Sub")
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	m.record("Mul")
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	m.record("Div")
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// Neg negates element-wise.
func (m *MockBackend) Neg(x *RawTensor) *RawTensor {
	m.record("Neg")
	return m.unary(x, func(v float64) float64 { return -v })
}

// Exp is unsupported on the mock; tests needing math use the CPU engine.
func (m *MockBackend) Exp(x *RawTensor) *RawTensor {
	m.record("Exp")
	panic("mock: Exp not implemented")
}

// Log is unsupported on the mock.
func (m *MockBackend) Log(x *RawTensor) *RawTensor {
	m.record("Log")
	panic("mock: Log not implemented")
}

// Sqrt is unsupported on the mock.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	m.record("Sqrt")
	panic("mock: Sqrt not implemented")
}

// AddScalar adds a scalar element-wise.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	m.record("AddScalar")
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v + s })
}

// MulScalar multiplies by a scalar element-wise.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	m.record("MulScalar")
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v * s })
}

// MatMul performs naive 2D matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	m.record("MatMul")
	if len(a.Shape()) != 2 || len(b.Shape()) != 2 || a.Shape()[1] != b.Shape()[0] {
		panic(fmt.Sprintf("mock: matmul shape mismatch: %v @ %v", a.Shape(), b.Shape()))
	}
	rows, inner, cols := a.Shape()[0], a.Shape()[1], b.Shape()[1]

	result, err := NewRaw(Shape{rows, cols}, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float64
			for k := 0; k < inner; k++ {
				sum += m.at(a, i*inner+k) * m.at(b, k*cols+j)
			}
			m.set(result, i*cols+j, sum)
		}
	}
	return result
}

// Sum reduces all elements to a scalar.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	m.record("Sum")
	result, err := NewRaw(Shape{}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	var sum float64
	for i := 0; i < x.NumElements(); i++ {
		sum += m.at(x, i)
	}
	m.set(result, 0, sum)
	return result
}

// SumDim is unsupported on the mock.
func (m *MockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	m.record("SumDim")
	panic("mock: SumDim not implemented")
}

// MeanDim is unsupported on the mock.
func (m *MockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	m.record("MeanDim")
	panic("mock: MeanDim not implemented")
}

// Reshape copies data into a tensor with the new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	m.record("Reshape")
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("mock: reshape %v -> %v element count mismatch", t.Shape(), newShape))
	}
	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose is unsupported on the mock.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	m.record("Transpose")
	panic("mock: Transpose not implemented")
}

// Expand is unsupported on the mock.
func (m *MockBackend) Expand(x *RawTensor, shape Shape) *RawTensor {
	m.record("Expand")
	panic("mock: Expand not implemented")
}

// Greater compares element-wise.
func (m *MockBackend) Greater(a, b *RawTensor) *RawTensor {
	m.record("Greater")
	return m.compare(a, b, func(x, y float64) bool { return x > y })
}

// Lower compares element-wise.
func (m *MockBackend) Lower(a, b *RawTensor) *RawTensor {
	m.record("Lower")
	return m.compare(a, b, func(x, y float64) bool { return x < y })
}

// GreaterEqual compares element-wise.
func (m *MockBackend) GreaterEqual(a, b *RawTensor) *RawTensor {
	m.record("GreaterEqual")
	return m.compare(a, b, func(x, y float64) bool { return x >= y })
}

// LowerEqual compares element-wise.
func (m *MockBackend) LowerEqual(a, b *RawTensor) *RawTensor {
	m.record("LowerEqual")
	return m.compare(a, b, func(x, y float64) bool { return x <= y })
}

// Equal compares element-wise.
func (m *MockBackend) Equal(a, b *RawTensor) *RawTensor {
	m.record("Equal")
	return m.compare(a, b, func(x, y float64) bool { return x == y })
}

// NotEqual compares element-wise.
func (m *MockBackend) NotEqual(a, b *RawTensor) *RawTensor {
	m.record("NotEqual")
	return m.compare(a, b, func(x, y float64) bool { return x != y })
}

// elementWise performs binary operations with broadcasting over float64.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		av := m.at(a, broadcastIndex(i, outShape, a.Shape()))
		bv := m.at(b, broadcastIndex(i, outShape, b.Shape()))
		m.set(result, i, op(av, bv))
	}
	return result
}

func (m *MockBackend) compare(a, b *RawTensor, op func(float64, float64) bool) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}
	result, err := NewRaw(outShape, Bool, m.Device())
	if err != nil {
		panic(err)
	}
	out := result.AsBool()
	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		av := m.at(a, broadcastIndex(i, outShape, a.Shape()))
		bv := m.at(b, broadcastIndex(i, outShape, b.Shape()))
		out[i] = op(av, bv)
	}
	return result
}

func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	for i := 0; i < x.NumElements(); i++ {
		m.set(result, i, op(m.at(x, i)))
	}
	return result
}

func (m *MockBackend) at(t *RawTensor, i int) float64 {
	switch t.DType() {
	case Float32:
		return float64(t.AsFloat32()[i])
	case Float64:
		return t.AsFloat64()[i]
	case Int32:
		return float64(t.AsInt32()[i])
	case Int64:
		return float64(t.AsInt64()[i])
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}

func (m *MockBackend) set(t *RawTensor, i int, v float64) {
	switch t.DType() {
	case Float32:
		t.AsFloat32()[i] = float32(v)
	case Float64:
		t.AsFloat64()[i] = v
	case Int32:
		t.AsInt32()[i] = int32(v)
	case Int64:
		t.AsInt64()[i] = int64(v)
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}

// broadcastIndex maps a flat index in the output shape to the flat index
// of the (possibly smaller) source shape under NumPy broadcasting.
func broadcastIndex(i int, outShape, srcShape Shape) int {
	outStrides := outShape.ComputeStrides()
	srcStrides := srcShape.ComputeStrides()

	srcIdx := 0
	rem := i
	for d := 0; d < len(outShape); d++ {
		coord := rem / outStrides[d]
		rem %= outStrides[d]

		srcDim := d - (len(outShape) - len(srcShape))
		if srcDim >= 0 {
			if srcShape[srcDim] == 1 {
				coord = 0
			}
			srcIdx += coord * srcStrides[srcDim]
		}
	}
	return srcIdx
}

func scalarToFloat64(v any) float64 {
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
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", v))
	}
}
