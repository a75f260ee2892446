// Package augment implements geometric augmentation of stacked point-cloud
// batches: full rotation about the vertical axis, a bounded rotation
// perturbation, random isotropic scaling, random translation, clipped
// Gaussian jitter and optional point-order shuffling.
//
// One Apply call transforms a whole batch of B examples with B independent
// random parameter draws. Random parameters are derived from per-example
// seeds drawn up front from the caller's source, so results are reproducible
// for a given seed regardless of how the work is split across CPU cores.
// Augmentation never changes point or channel counts; it is purely a value
// transform over the position (and, for rotations, normal) columns.
package augment

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/core/parallel"
	"github.com/tryptofanik/bios2net/pkg/errors"
)

// Defaults for the bounded rotation perturbation and jitter clipping, matching
// the values used by the original training pipeline.
const (
	DefaultPerturbSigma = 0.06
	DefaultPerturbClip  = 0.18
	DefaultJitterClip   = 0.1
)

// parallelThreshold is the batch size below which examples are augmented
// sequentially instead of across cores.
const parallelThreshold = 4

// PointBatch is the surface the augmenter needs from a stacked batch: a fixed
// number of examples, each exposed as a mutable points×channels matrix view.
type PointBatch interface {
	// Len returns the number of examples in the batch.
	Len() int

	// Example returns a mutable view of example i. Writes through the view
	// must modify the underlying batch storage.
	Example(i int) *mat.Dense
}

// Augmenter holds the augmentation parameters for one pipeline instance.
// The zero value is not useful; construct with New.
type Augmenter struct {
	ScaleLow  float64
	ScaleHigh float64
	// ShiftRange is the symmetric translation bound; shifts are drawn from
	// [-ShiftRange, ShiftRange] per axis per example.
	ShiftRange float64
	// JitterSigma is the standard deviation of the per-point Gaussian jitter.
	JitterSigma float64
	// JitterClip bounds the magnitude of each jitter component.
	JitterClip float64
	// PerturbSigma and PerturbClip control the small random rotation applied
	// after the full vertical-axis rotation.
	PerturbSigma float64
	PerturbClip  float64
	// WithNormals rotates channels 3..6 with the same matrices as positions.
	WithNormals bool
	// ShufflePoints permutes point order independently per example as the
	// final stage.
	ShufflePoints bool
}

// New creates an Augmenter with the given scale, shift and jitter parameters
// and the package defaults for perturbation and jitter clipping.
func New(scaleLow, scaleHigh, shiftRange, jitterSigma float64, withNormals, shufflePoints bool) (*Augmenter, error) {
	if scaleLow <= 0 || scaleHigh < scaleLow {
		return nil, errors.NewConfigError("scale_range", "must satisfy 0 < low <= high",
			[]float64{scaleLow, scaleHigh})
	}
	if shiftRange < 0 {
		return nil, errors.NewConfigError("shift_range", "must be non-negative", shiftRange)
	}
	if jitterSigma < 0 {
		return nil, errors.NewConfigError("jitter_sigma", "must be non-negative", jitterSigma)
	}
	return &Augmenter{
		ScaleLow:      scaleLow,
		ScaleHigh:     scaleHigh,
		ShiftRange:    shiftRange,
		JitterSigma:   jitterSigma,
		JitterClip:    DefaultJitterClip,
		PerturbSigma:  DefaultPerturbSigma,
		PerturbClip:   DefaultPerturbClip,
		WithNormals:   withNormals,
		ShufflePoints: shufflePoints,
	}, nil
}

// Apply augments every example of the batch in place. The stage order is
// fixed: full vertical-axis rotation, rotation perturbation, isotropic scale,
// translation shift, clipped jitter, then optional point shuffling. Normals
// participate only in the two rotation stages.
func (a *Augmenter) Apply(b PointBatch, rng *rand.Rand) error {
	n := b.Len()
	if n == 0 {
		return nil
	}

	// Validate the channel layout once; every example shares it.
	_, c := b.Example(0).Dims()
	if c < 3 {
		return errors.NewDimensionError("Augmenter.Apply", 3, c, 1)
	}
	if a.WithNormals && c < 6 {
		return errors.NewDimensionError("Augmenter.Apply", 6, c, 1)
	}

	// Per-example seeds are drawn sequentially so the augmentation of each
	// example is deterministic for a given source regardless of worker
	// scheduling.
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	// Workers run in their own goroutines, so gonum shape panics must be
	// recovered inside the worker to reach the caller as errors.
	augErrs := make([]error, n)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			x := b.Example(i)
			r := rand.New(rand.NewSource(seeds[i]))
			augErrs[i] = errors.SafeExecute("Augmenter.Apply", func() error {
				a.augmentExample(x, r)
				return nil
			})
		}
	})
	for _, err := range augErrs {
		if err != nil {
			return err
		}
	}
	return nil
}

// augmentExample runs the full stage chain on one example. The draw order is
// fixed and documented because it defines the reproducible random stream:
// rotation angle, 3 perturbation angles, scale, 3 shift components, K×3
// jitter components, then the shuffle permutation.
func (a *Augmenter) augmentExample(x *mat.Dense, r *rand.Rand) {
	rows, _ := x.Dims()

	// Stage 1: full rotation about the vertical axis.
	angle := r.Float64() * 2 * math.Pi
	rotateVertical(x, angle, a.WithNormals)

	// Stage 2: small bounded rotation about all three axes.
	var perturb [3]float64
	for j := range perturb {
		perturb[j] = clip(a.PerturbSigma*r.NormFloat64(), a.PerturbClip)
	}
	rotateEuler(x, perturb, a.WithNormals)

	// Stage 3: isotropic scale on positions only.
	scale := a.ScaleLow + r.Float64()*(a.ScaleHigh-a.ScaleLow)
	for i := 0; i < rows; i++ {
		for j := 0; j < 3; j++ {
			x.Set(i, j, x.At(i, j)*scale)
		}
	}

	// Stage 4: translation shift on positions only.
	var shift [3]float64
	for j := range shift {
		shift[j] = (r.Float64()*2 - 1) * a.ShiftRange
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < 3; j++ {
			x.Set(i, j, x.At(i, j)+shift[j])
		}
	}

	// Stage 5: clipped Gaussian jitter per point per position component.
	if a.JitterSigma > 0 {
		for i := 0; i < rows; i++ {
			for j := 0; j < 3; j++ {
				x.Set(i, j, x.At(i, j)+clip(a.JitterSigma*r.NormFloat64(), a.JitterClip))
			}
		}
	}

	// Stage 6: optional point-order shuffle over all channels. Runs after
	// any positional channel was appended, so that channel keeps the
	// canonical pre-shuffle ranks.
	if a.ShufflePoints {
		shuffleRows(x, r)
	}
}

// clip bounds v to [-limit, limit].
func clip(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// shuffleRows permutes the rows of x in place using a freshly drawn
// permutation.
func shuffleRows(x *mat.Dense, r *rand.Rand) {
	rows, cols := x.Dims()
	perm := r.Perm(rows)

	shuffled := make([]float64, rows*cols)
	for dst, src := range perm {
		for j := 0; j < cols; j++ {
			shuffled[dst*cols+j] = x.At(src, j)
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x.Set(i, j, shuffled[i*cols+j])
		}
	}
}
