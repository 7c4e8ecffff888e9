package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/tensor"
)

// checkGradients compares analytic gradients against central finite
// differences of f. Float64 keeps the difference quotient usable.
func checkGradients(t *testing.T, f func(x *autodiff.Tensor[float64, *cpu.CPUBackend]) *autodiff.Tensor[float64, *cpu.CPUBackend], point []float64, shape tensor.Shape) {
	t.Helper()
	backend := cpu.New()
	const eps = 1e-6

	x, err := autodiff.FromSlice(append([]float64(nil), point...), shape, backend)
	require.NoError(t, err)
	x.RequireGrad()

	grads, err := f(x).Backward()
	require.NoError(t, err)
	grad, err := autodiff.GradOf(grads, x)
	require.NoError(t, err)

	eval := func(data []float64) float64 {
		v, err := autodiff.FromSlice(data, shape, backend)
		require.NoError(t, err)
		return f(v).Item()
	}

	for i := range point {
		plus := append([]float64(nil), point...)
		minus := append([]float64(nil), point...)
		plus[i] += eps
		minus[i] -= eps

		numeric := (eval(plus) - eval(minus)) / (2 * eps)
		require.InDelta(t, numeric, grad.Data()[i], 1e-4,
			"gradient mismatch at element %d", i)
	}
}

func TestGradientCheck_Polynomial(t *testing.T) {
	// f(x) = sum(x*x + 3x)
	f := func(x *autodiff.Tensor[float64, *cpu.CPUBackend]) *autodiff.Tensor[float64, *cpu.CPUBackend] {
		return x.Mul(x).Add(x.MulScalar(3)).Sum()
	}
	checkGradients(t, f, []float64{1.5, -2.0, 0.5}, tensor.Shape{3})
}

func TestGradientCheck_ExpLog(t *testing.T) {
	// f(x) = sum(exp(x) * log(x))
	f := func(x *autodiff.Tensor[float64, *cpu.CPUBackend]) *autodiff.Tensor[float64, *cpu.CPUBackend] {
		return x.Exp().Mul(x.Log()).Sum()
	}
	checkGradients(t, f, []float64{0.5, 1.0, 2.5}, tensor.Shape{3})
}

func TestGradientCheck_SqrtDiv(t *testing.T) {
	// f(x) = sum(sqrt(x) / (x + 1))
	f := func(x *autodiff.Tensor[float64, *cpu.CPUBackend]) *autodiff.Tensor[float64, *cpu.CPUBackend] {
		return x.Sqrt().Div(x.AddScalar(1.0)).Sum()
	}
	checkGradients(t, f, []float64{0.25, 1.0, 4.0}, tensor.Shape{3})
}

func TestGradientCheck_MatMulReduce(t *testing.T) {
	// f(x) = sum(mean(x @ x, dim 1))
	f := func(x *autodiff.Tensor[float64, *cpu.CPUBackend]) *autodiff.Tensor[float64, *cpu.CPUBackend] {
		return x.MatMul(x).MeanDim(1, false).Sum()
	}
	checkGradients(t, f, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
}
