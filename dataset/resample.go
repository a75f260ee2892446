package dataset

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// Resample returns a (k, channels) matrix of k rows drawn at random from x.
// Clouds with more than k points are subsampled without replacement; clouds
// with k or fewer points are sampled with replacement, so small clouds reach
// the target by repeating points. Selected row indexes are sorted ascending
// before gathering, which keeps the spatial reading order of the original
// cloud and gives the positional channel a monotone meaning.
func Resample(x *mat.Dense, k int, rng *rand.Rand) (*mat.Dense, error) {
	n, c := x.Dims()
	if n == 0 {
		return nil, errors.NewResampleError("Resample", n, k)
	}
	if k <= 0 {
		return nil, errors.NewConfigError("num_points", "must be positive", k)
	}

	idx := make([]int, k)
	if n > k {
		perm := rng.Perm(n)
		copy(idx, perm[:k])
	} else {
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
	}
	sort.Ints(idx)

	out := mat.NewDense(k, c, nil)
	for dst, src := range idx {
		for j := 0; j < c; j++ {
			out.Set(dst, j, x.At(src, j))
		}
	}
	return out, nil
}
