package preprocessing

import (
	"gonum.org/v1/gonum/mat"
)

// PositionalChannel appends one channel equal to rank/points for point rank
// 0..points-1 in the current (already resampled, fixed-size) point order. The
// value is deterministic and data-independent; it gives the downstream
// network access to the iteration order of the points.
//
// When point-order shuffling is enabled in augmentation, the shuffle runs
// after this channel is appended, so the channel then reflects the canonical
// pre-shuffle order rather than the augmented rank. That interaction is
// deliberate and covered by tests.
type PositionalChannel struct{}

// Name implements Step.
func (PositionalChannel) Name() string { return "positional_channel" }

// Apply implements Step.
func (PositionalChannel) Apply(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, x.At(i, j))
		}
		out.Set(i, cols, float64(i)/float64(rows))
	}
	return out, nil
}

// OutputChannels implements Step.
func (PositionalChannel) OutputChannels(in int) int { return in + 1 }
