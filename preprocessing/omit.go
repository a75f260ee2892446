package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// RangeOmission removes half-open column ranges [start, end) from the channel
// axis. It runs at decode time, before a sample enters the cache, so cached
// entries are already range-omitted and the removal cost is paid once per
// sample rather than once per access.
//
// Ranges are supplied as a flat even-length list [s0, e0, s1, e1, ...],
// conventionally with pairs in descending end-index order. Removal is done
// through a keep mask over the original column indices, so the result does
// not depend on pair order.
type RangeOmission struct {
	ranges []int
}

// NewRangeOmission validates the flat range list and creates the step.
// Validation happens here, at pipeline construction, so a malformed list
// fails fast instead of surfacing mid-epoch.
func NewRangeOmission(ranges []int) (*RangeOmission, error) {
	if len(ranges)%2 != 0 {
		return nil, errors.NewConfigError("omit_parameter_ranges", "length must be even", ranges)
	}
	for i := 0; i < len(ranges); i += 2 {
		start, end := ranges[i], ranges[i+1]
		if start < 0 || end < start {
			return nil, errors.NewConfigError("omit_parameter_ranges", "each pair must satisfy 0 <= start <= end", ranges)
		}
	}
	return &RangeOmission{ranges: append([]int(nil), ranges...)}, nil
}

// Name implements Step.
func (o *RangeOmission) Name() string { return "range_omission" }

// Empty reports whether the step is a no-op.
func (o *RangeOmission) Empty() bool { return len(o.ranges) == 0 }

// Apply implements Step. Every pair marks its columns in a keep mask over
// the original indices, then the surviving columns are copied out in order,
// so all indices refer to the pre-omission layout.
func (o *RangeOmission) Apply(x *mat.Dense) (*mat.Dense, error) {
	if len(o.ranges) == 0 {
		return x, nil
	}

	rows, cols := x.Dims()
	keep := make([]bool, cols)
	for j := range keep {
		keep[j] = true
	}
	for i := len(o.ranges) - 1; i >= 1; i -= 2 {
		start, end := o.ranges[i-1], o.ranges[i]
		if end > cols {
			return nil, errors.NewDimensionError("RangeOmission.Apply", end, cols, 1)
		}
		for j := start; j < end; j++ {
			keep[j] = false
		}
	}

	kept := make([]int, 0, cols)
	for j, k := range keep {
		if k {
			kept = append(kept, j)
		}
	}
	if len(kept) == 0 {
		return nil, errors.NewValueError("RangeOmission.Apply", "omission ranges remove every channel")
	}

	out := mat.NewDense(rows, len(kept), nil)
	for i := 0; i < rows; i++ {
		for jj, j := range kept {
			out.Set(i, jj, x.At(i, j))
		}
	}
	return out, nil
}

// OutputChannels implements Step.
func (o *RangeOmission) OutputChannels(in int) int {
	removed := 0
	for i := 0; i < len(o.ranges); i += 2 {
		start, end := o.ranges[i], o.ranges[i+1]
		if start > in {
			start = in
		}
		if end > in {
			end = in
		}
		removed += end - start
	}
	return in - removed
}
