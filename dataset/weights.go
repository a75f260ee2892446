package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// ClassWeights computes inverse-frequency class weights from per-class
// sample counts. The raw weight of class i is 1/counts[i]; the vector is
// then divided by its mean so the weights average to 1 and a uniformly
// distributed dataset yields all-ones. The result is index-aligned with the
// catalog's class ids.
func ClassWeights(counts []int) ([]float64, error) {
	if len(counts) == 0 {
		return nil, errors.NewValueError("ClassWeights", "no classes to weight")
	}
	w := make([]float64, len(counts))
	for i, n := range counts {
		if n <= 0 {
			return nil, errors.NewValueError("ClassWeights", "every class needs at least one sample")
		}
		w[i] = 1.0 / float64(n)
	}
	floats.Scale(1.0/stat.Mean(w, nil), w)
	return w, nil
}
