package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// Batch is one stacked batch of fixed-size samples: a (B, K, C) value buffer
// plus the per-example labels and class weights. The point data is stored in
// a single contiguous float64 buffer; Example returns a gonum matrix view
// backed by that buffer, so augmentation can mutate examples in place without
// copies.
type Batch struct {
	data    []float64
	b, k, c int

	// Labels holds the class id of each example.
	Labels []int

	// Weights holds the class weight of each example, aligned with Labels.
	Weights []float64
}

// NewBatch allocates a zeroed batch of b examples with k points and c
// channels each.
func NewBatch(b, k, c int) *Batch {
	return &Batch{
		data:    make([]float64, b*k*c),
		b:       b,
		k:       k,
		c:       c,
		Labels:  make([]int, b),
		Weights: make([]float64, b),
	}
}

// Dims returns the (examples, points, channels) shape of the batch.
func (bt *Batch) Dims() (b, k, c int) {
	return bt.b, bt.k, bt.c
}

// Len returns the number of examples. Together with Example it satisfies the
// augment.PointBatch interface.
func (bt *Batch) Len() int {
	return bt.b
}

// Example returns a mutable (K, C) view of example i. The view shares
// storage with the batch: writes through it modify the batch directly.
func (bt *Batch) Example(i int) *mat.Dense {
	stride := bt.k * bt.c
	return mat.NewDense(bt.k, bt.c, bt.data[i*stride:(i+1)*stride])
}

// SetExample copies the given (K, C) sample into example slot i.
func (bt *Batch) SetExample(i int, x mat.Matrix) error {
	r, c := x.Dims()
	if r != bt.k {
		return errors.NewDimensionError("Batch.SetExample", bt.k, r, 0)
	}
	if c != bt.c {
		return errors.NewDimensionError("Batch.SetExample", bt.c, c, 1)
	}
	bt.Example(i).Copy(x)
	return nil
}

// Data returns the underlying contiguous buffer in (B, K, C) row-major
// order. The slice is shared with the batch, not copied.
func (bt *Batch) Data() []float64 {
	return bt.data
}

// Clone returns a deep copy of the batch.
func (bt *Batch) Clone() *Batch {
	out := NewBatch(bt.b, bt.k, bt.c)
	copy(out.data, bt.data)
	copy(out.Labels, bt.Labels)
	copy(out.Weights, bt.Weights)
	return out
}

// Float32Values returns the point data as a nested [B][K][C] float32 slice,
// the layout tensor libraries accept directly.
func (bt *Batch) Float32Values() [][][]float32 {
	out := make([][][]float32, bt.b)
	for i := 0; i < bt.b; i++ {
		example := make([][]float32, bt.k)
		for p := 0; p < bt.k; p++ {
			row := make([]float32, bt.c)
			base := (i*bt.k + p) * bt.c
			for j := 0; j < bt.c; j++ {
				row[j] = float32(bt.data[base+j])
			}
			example[p] = row
		}
		out[i] = example
	}
	return out
}
