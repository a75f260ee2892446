package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// CategoricalExpansion replaces scalar categorical columns with one-hot
// encodings. For each (index, size) pair the scalar column at `index` is
// replaced by `size` columns, with subsequent columns shifted right.
//
// Index positions are evaluated against the current, progressively widened
// channel layout: expanding a column moves every later column, so pairs must
// be supplied in ascending original-index order for the raw indexes to land
// on the intended columns. This matches how the expansion parameters are
// passed on the command line of the training collaborator.
type CategoricalExpansion struct {
	indexes []int
	sizes   []int
}

// NewCategoricalExpansion validates the parallel index/size lists and creates
// the step. Length mismatch is a construction-time configuration error.
func NewCategoricalExpansion(indexes, sizes []int) (*CategoricalExpansion, error) {
	if len(indexes) != len(sizes) {
		return nil, errors.NewConfigError("to_categorical", "index and size lists must have equal length",
			[]interface{}{indexes, sizes})
	}
	for i, size := range sizes {
		if size < 1 {
			return nil, errors.NewConfigError("to_categorical_sizes", "each size must be at least 1", sizes)
		}
		if indexes[i] < 0 {
			return nil, errors.NewConfigError("to_categorical_indexes", "each index must be non-negative", indexes)
		}
	}
	return &CategoricalExpansion{
		indexes: append([]int(nil), indexes...),
		sizes:   append([]int(nil), sizes...),
	}, nil
}

// Name implements Step.
func (c *CategoricalExpansion) Name() string { return "categorical_expansion" }

// Empty reports whether the step is a no-op.
func (c *CategoricalExpansion) Empty() bool { return len(c.indexes) == 0 }

// Apply implements Step.
func (c *CategoricalExpansion) Apply(x *mat.Dense) (*mat.Dense, error) {
	for i := range c.indexes {
		var err error
		x, err = expandColumn(x, c.indexes[i], c.sizes[i])
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// expandColumn replaces column idx with a one-hot block of the given size.
// Values outside [0, size) produce an all-zero encoding rather than an
// out-of-bounds write; corrupt categorical values are a data-integrity
// problem for the caller, not something to crash an epoch over.
func expandColumn(x *mat.Dense, idx, size int) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if idx >= cols {
		return nil, errors.NewDimensionError("CategoricalExpansion.Apply", idx+1, cols, 1)
	}

	out := mat.NewDense(rows, cols-1+size, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < idx; j++ {
			out.Set(i, j, x.At(i, j))
		}
		class := int(x.At(i, idx))
		if class >= 0 && class < size {
			out.Set(i, idx+class, 1)
		}
		for j := idx + 1; j < cols; j++ {
			out.Set(i, j-1+size, x.At(i, j))
		}
	}
	return out, nil
}

// OutputChannels implements Step.
func (c *CategoricalExpansion) OutputChannels(in int) int {
	out := in
	for _, size := range c.sizes {
		out += size - 1
	}
	return out
}
