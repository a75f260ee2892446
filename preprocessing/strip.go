package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// StripToXYZ truncates a sample to its first three columns. It is the very
// last stage when normal and extra channels are disabled for a pipeline
// instance; note that it also removes a positional channel appended earlier,
// matching the behaviour of the original training pipeline in that mode.
type StripToXYZ struct{}

// Name implements Step.
func (StripToXYZ) Name() string { return "strip_to_xyz" }

// Apply implements Step.
func (StripToXYZ) Apply(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if cols < 3 {
		return nil, errors.NewDimensionError("StripToXYZ.Apply", 3, cols, 1)
	}
	if cols == 3 {
		return x, nil
	}

	out := mat.NewDense(rows, 3, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, x.At(i, j))
		}
	}
	return out, nil
}

// OutputChannels implements Step.
func (StripToXYZ) OutputChannels(in int) int { return 3 }
