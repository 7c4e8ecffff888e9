package autodiff_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/tensor"
)

func tracked(t *testing.T, data []float32, shape tensor.Shape, backend *cpu.CPUBackend) *autodiff.Tensor[float32, *cpu.CPUBackend] {
	t.Helper()
	x, err := autodiff.FromSlice(data, shape, backend)
	require.NoError(t, err)
	return x.RequireGrad()
}

func gradData(t *testing.T, g *autodiff.Gradients, x *autodiff.Tensor[float32, *cpu.CPUBackend]) []float32 {
	t.Helper()
	grad, err := autodiff.GradOf(g, x)
	require.NoError(t, err)
	return grad.Data()
}

func TestBackward_Mul(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{3}, tensor.Shape{1}, backend)
	y := tracked(t, []float32{2}, tensor.Shape{1}, backend)

	z := x.Mul(y)
	grads, err := z.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{2}, gradData(t, grads, x), "dz/dx = y")
	assert.Equal(t, []float32{3}, gradData(t, grads, y), "dz/dy = x")
}

// The same tensor used twice must accumulate both contributions.
func TestBackward_SelfAdd(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{5}, tensor.Shape{1}, backend)

	z := x.Add(x)
	grads, err := z.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{2}, gradData(t, grads, x))
}

func TestBackward_ChainRule(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{3}, tensor.Shape{1}, backend)

	// z = (x²) * 2; dz/dx = 4x = 12
	z := x.Mul(x).MulScalar(2)
	grads, err := z.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{12}, gradData(t, grads, x))
}

func TestBackward_Diamond(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{7}, tensor.Shape{1}, backend)

	// y = 2x + 3x; dy/dx = 5
	a := x.MulScalar(2)
	b := x.MulScalar(3)
	y := a.Add(b)

	grads, err := y.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{5}, gradData(t, grads, x))
}

// Gradient of a broadcast input folds back to the input shape: the
// reverse of stretching is summing.
func TestBackward_BroadcastReduction(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{2}, tensor.Shape{1}, backend)
	y := tracked(t, []float32{1, 2, 3, 4}, tensor.Shape{4}, backend)

	z := x.Mul(y).Sum()
	grads, err := z.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{10}, gradData(t, grads, x), "dz/dx = sum(y)")
	assert.Equal(t, []float32{2, 2, 2, 2}, gradData(t, grads, y), "dz/dy = x broadcast")
}

func TestBackward_PrunedSubgraphHasNoGradient(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{3}, tensor.Shape{1}, backend)
	c, err := autodiff.FromSlice([]float32{4}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	z := x.Mul(c)
	grads, err := z.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{4}, gradData(t, grads, x))

	_, err = autodiff.GradOf(grads, c)
	assert.True(t, errors.Is(err, autodiff.ErrNoGradient))
}

func TestBackward_NonScalarNeedsSeed(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 2, 3}, tensor.Shape{3}, backend)

	z := x.MulScalar(2)
	_, err := z.Backward()
	assert.True(t, errors.Is(err, autodiff.ErrMissingSeed))
}

func TestBackward_WithSeed(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 2}, tensor.Shape{2}, backend)

	z := x.MulScalar(3)
	seed, err := tensor.FromSlice([]float32{10, 100}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	grads, err := z.BackwardWithSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, []float32{30, 300}, gradData(t, grads, x))
}

func TestBackward_SeedShapeMismatch(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 2}, tensor.Shape{2}, backend)

	z := x.MulScalar(3)
	seed, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	_, err = z.BackwardWithSeed(seed)
	assert.True(t, errors.Is(err, autodiff.ErrSeedShape))
}

func TestBackward_UntrackedTerminal(t *testing.T) {
	backend := cpu.New()
	x, err := autodiff.FromSlice([]float32{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	z := x.MulScalar(2)
	grads, err := z.Backward()
	require.NoError(t, err)
	assert.Zero(t, grads.Len())
}

// Lookups are reads: repeating them, and repeating whole backward
// passes, must keep producing the same values.
func TestBackward_RepeatableAndIndependent(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{3}, tensor.Shape{1}, backend)

	z := x.Mul(x)
	grads1, err := z.Backward()
	require.NoError(t, err)

	first := gradData(t, grads1, x)
	second := gradData(t, grads1, x)
	assert.Equal(t, first, second)

	grads2, err := z.Backward()
	require.NoError(t, err)
	assert.Equal(t, []float32{6}, gradData(t, grads2, x))
	assert.Equal(t, []float32{6}, gradData(t, grads1, x), "first store unchanged by second pass")
}

func TestBackward_MatMul(t *testing.T) {
	backend := cpu.New()
	a := tracked(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b := tracked(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)

	loss := a.MatMul(b).Sum()
	grads, err := loss.Backward()
	require.NoError(t, err)

	// dL/dA = 1 @ Bᵀ: rows of ones times B columns summed.
	assert.Equal(t, []float32{11, 15, 11, 15}, gradData(t, grads, a))
	// dL/dB = Aᵀ @ 1.
	assert.Equal(t, []float32{4, 4, 6, 6}, gradData(t, grads, b))
}

func TestBackward_SubDivNeg(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{8}, tensor.Shape{1}, backend)
	y := tracked(t, []float32{2}, tensor.Shape{1}, backend)

	// z = -(x / y) - y; dz/dx = -1/y = -0.5; dz/dy = x/y² - 1 = 1
	z := x.Div(y).Neg().Sub(y)
	grads, err := z.Backward()
	require.NoError(t, err)

	assert.InDelta(t, -0.5, gradData(t, grads, x)[0], 1e-6)
	assert.InDelta(t, 1.0, gradData(t, grads, y)[0], 1e-6)
}

func TestBackward_ExpLogSqrt(t *testing.T) {
	backend := cpu.New()

	x := tracked(t, []float32{2}, tensor.Shape{1}, backend)
	grads, err := x.Exp().Backward()
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(2), float64(gradData(t, grads, x)[0]), 1e-4)

	y := tracked(t, []float32{4}, tensor.Shape{1}, backend)
	grads, err = y.Log().Backward()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, float64(gradData(t, grads, y)[0]), 1e-6)

	w := tracked(t, []float32{9}, tensor.Shape{1}, backend)
	grads, err = w.Sqrt().Backward()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6.0, float64(gradData(t, grads, w)[0]), 1e-6)
}

func TestBackward_SumDim(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	loss := x.SumDim(1, false).Sum()
	grads, err := loss.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, gradData(t, grads, x))
}

func TestBackward_MeanDim(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	loss := x.MeanDim(1, true).Sum()
	grads, err := loss.Backward()
	require.NoError(t, err)

	third := float32(1.0 / 3.0)
	for _, g := range gradData(t, grads, x) {
		assert.InDelta(t, third, g, 1e-6)
	}
}

func TestBackward_ReshapeTranspose(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	scale := tracked(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, backend)

	// Shape round trips must route gradients back untouched apart from
	// layout: loss = sum(transpose(x) * scale).
	loss := x.T().Mul(scale).Sum()
	grads, err := loss.Backward()
	require.NoError(t, err)

	// grad of x is scale transposed back to x's layout.
	assert.Equal(t, []float32{1, 3, 5, 2, 4, 6}, gradData(t, grads, x))

	y := tracked(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	loss = y.Reshape(4).Sum()
	grads, err = loss.Backward()
	require.NoError(t, err)

	gy, err := autodiff.GradOf(grads, y)
	require.NoError(t, err)
	assert.True(t, gy.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{1, 1, 1, 1}, gy.Data())
}

func TestBackward_Expand(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{2}, tensor.Shape{1}, backend)

	loss := x.Expand(tensor.Shape{4}).Sum()
	grads, err := loss.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{4}, gradData(t, grads, x))
}

// The forward value a node recorded must survive later in-place-eligible
// operations on the same tensors.
func TestBackward_ValuesSurviveInPlaceReuse(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{3}, tensor.Shape{1}, backend)
	y := tracked(t, []float32{2}, tensor.Shape{1}, backend)

	z := x.Mul(y)
	// More forward work touching the same tensors before backward.
	_ = x.Add(y)
	_ = z.AddScalar(1)

	grads, err := z.Backward()
	require.NoError(t, err)

	assert.Equal(t, []float32{2}, gradData(t, grads, x))
	assert.Equal(t, []float32{3}, gradData(t, grads, y))
}

func TestBackward_Detach(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{3}, tensor.Shape{1}, backend)

	detached := x.Mul(x).Detach()
	z := detached.MulScalar(2)

	grads, err := z.Backward()
	require.NoError(t, err)
	assert.Zero(t, grads.Len(), "gradients must not flow across Detach")

	_, err = autodiff.GradOf(grads, x)
	assert.True(t, errors.Is(err, autodiff.ErrNoGradient))
}

func TestBackward_ComparisonsLeaveGraph(t *testing.T) {
	backend := cpu.New()
	x := tracked(t, []float32{1, 5}, tensor.Shape{2}, backend)
	y := tracked(t, []float32{3, 3}, tensor.Shape{2}, backend)

	mask := x.Greater(y)
	assert.Equal(t, []bool{false, true}, mask.Data())
}
