package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// Sum reduces all elements to a single-element tensor with scalar shape.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumAll(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumAll(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = sumAll(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sumAll(x.AsInt64())
	default:
		panic(fmt.Sprintf("cpu: sum: unsupported dtype %s", x.DType()))
	}
	return result
}

func sumAll[E number](data []E) E {
	var total E
	for _, v := range data {
		total += v
	}
	return total
}

// SumDim sums along the given dimension. With keepDim the reduced
// dimension stays as size 1, otherwise it is removed.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("cpu: sum_dim: dimension %d out of range for shape %v", dim, shape))
	}

	result, err := tensor.NewRaw(reducedShape(shape, dim, keepDim), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: sum_dim: %v", err))
	}

	outer, size, inner := splitAt(shape, dim)
	switch x.DType() {
	case tensor.Float32:
		reduceDimLoop(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		reduceDimLoop(result.AsFloat64(), x.AsFloat64(), outer, size, inner)
	case tensor.Int32:
		reduceDimLoop(result.AsInt32(), x.AsInt32(), outer, size, inner)
	case tensor.Int64:
		reduceDimLoop(result.AsInt64(), x.AsInt64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("cpu: sum_dim: unsupported dtype %s", x.DType()))
	}
	return result
}

// MeanDim averages along the given dimension. Float types only, since
// integer means would silently truncate.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("cpu: mean_dim: dimension %d out of range for shape %v", dim, shape))
	}

	sum := cpu.SumDim(x, dim, keepDim)
	n := shape[dim]

	switch x.DType() {
	case tensor.Float32:
		scaleInPlace(sum.AsFloat32(), 1/float32(n))
	case tensor.Float64:
		scaleInPlace(sum.AsFloat64(), 1/float64(n))
	default:
		panic(fmt.Sprintf("cpu: mean_dim: unsupported dtype %s", x.DType()))
	}
	return sum
}

func scaleInPlace[E ~float32 | ~float64](data []E, factor E) {
	for i := range data {
		data[i] *= factor
	}
}

// reducedShape drops or keeps the reduced dimension. Reducing the only
// dimension without keepDim yields the scalar shape.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	out = append(out, shape[dim+1:]...)
	return out
}

// splitAt factors a shape into (outer, size, inner) around dimension dim,
// so a flat index decomposes as (o*size + s)*inner + i.
func splitAt(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, size, inner = 1, shape[dim], 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	return outer, size, inner
}

func reduceDimLoop[E number](out, in []E, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for s := 0; s < size; s++ {
			base := (o*size + s) * inner
			outBase := o * inner
			for i := 0; i < inner; i++ {
				out[outBase+i] += in[base+i]
			}
		}
	}
}
