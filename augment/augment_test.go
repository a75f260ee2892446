package augment

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"

	bioserrors "github.com/tryptofanik/bios2net/pkg/errors"
)

// sliceBatch is a minimal PointBatch over independent matrices, enough to
// exercise Apply without pulling in the dataset package.
type sliceBatch []*mat.Dense

func (s sliceBatch) Len() int                 { return len(s) }
func (s sliceBatch) Example(i int) *mat.Dense { return s[i] }

func randomBatch(rng *rand.Rand, b, k, c int) sliceBatch {
	out := make(sliceBatch, b)
	for i := range out {
		data := make([]float64, k*c)
		for j := range data {
			data[j] = rng.NormFloat64()
		}
		out[i] = mat.NewDense(k, c, data)
	}
	return out
}

func cloneBatch(s sliceBatch) sliceBatch {
	out := make(sliceBatch, len(s))
	for i, m := range s {
		out[i] = mat.DenseCopyOf(m)
	}
	return out
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name				string
		scaleLow, scaleHigh		float64
		shiftRange, jitterSigma		float64
		withNormals, shufflePoints	bool
		wantErr				bool
	}{
		{"valid defaults", 0.7, 1.3, 0.3, 0.005, true, false, false},
		{"degenerate scale", 1.0, 1.0, 0.0, 0.0, false, false, false},
		{"inverted scale range", 1.3, 0.7, 0.3, 0.005, false, false, true},
		{"non-positive scale low", 0.0, 1.3, 0.3, 0.005, false, false, true},
		{"negative shift", 0.7, 1.3, -0.1, 0.005, false, false, true},
		{"negative jitter", 0.7, 1.3, 0.3, -0.005, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.scaleLow, tt.scaleHigh, tt.shiftRange, tt.jitterSigma, tt.withNormals, tt.shufflePoints)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var cfgErr *bioserrors.ConfigError
				if !bioserrors.As(err, &cfgErr) {
					t.Errorf("expected ConfigError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyPreservesShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	batch := randomBatch(rng, 5, 32, 6)

	aug, err := New(0.7, 1.3, 0.3, 0.005, true, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := aug.Apply(batch, rng); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i := 0; i < batch.Len(); i++ {
		r, c := batch.Example(i).Dims()
		if r != 32 || c != 6 {
			t.Errorf("example %d: shape (%d, %d), want (32, 6)", i, r, c)
		}
	}
}

func TestApplyChannelValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("fewer than 3 channels", func(t *testing.T) {
		batch := randomBatch(rng, 1, 8, 2)
		aug, _ := New(0.7, 1.3, 0.3, 0.005, false, false)
		err := aug.Apply(batch, rng)
		var dimErr *bioserrors.DimensionError
		if !bioserrors.As(err, &dimErr) {
			t.Fatalf("expected DimensionError, got %v", err)
		}
	})

	t.Run("normals need 6 channels", func(t *testing.T) {
		batch := randomBatch(rng, 1, 8, 4)
		aug, _ := New(0.7, 1.3, 0.3, 0.005, true, false)
		err := aug.Apply(batch, rng)
		var dimErr *bioserrors.DimensionError
		if !bioserrors.As(err, &dimErr) {
			t.Fatalf("expected DimensionError, got %v", err)
		}
	})
}

// Channel validation only inspects the first example, so a batch whose later
// examples are narrower reaches the gonum accessors and panics there. Apply
// must surface that as an error instead of crashing the worker.
func TestApplyRecoversMalformedExample(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	batch := sliceBatch{
		randomBatch(rng, 1, 8, 6)[0],
		randomBatch(rng, 1, 8, 2)[0],
	}

	aug, err := New(0.7, 1.3, 0.3, 0.005, true, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = aug.Apply(batch, rng)
	if err == nil {
		t.Fatal("expected error for malformed example, got nil")
	}
	var panicErr *bioserrors.PanicError
	if !bioserrors.As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %T: %v", err, err)
	}
	if panicErr.Operation != "Augmenter.Apply" {
		t.Errorf("Operation = %q, want %q", panicErr.Operation, "Augmenter.Apply")
	}
}

func TestApplyDeterministic(t *testing.T) {
	mk := func() sliceBatch {
		rng := rand.New(rand.NewSource(42))
		return randomBatch(rng, 6, 16, 6)
	}
	run := func(b sliceBatch) {
		aug, err := New(0.7, 1.3, 0.3, 0.005, true, true)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := aug.Apply(b, rand.New(rand.NewSource(99))); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	a, b := mk(), mk()
	run(a)
	run(b)
	for i := range a {
		if !mat.EqualApprox(a[i], b[i], 0) {
			t.Fatalf("example %d differs between identically seeded runs", i)
		}
	}
}

// With the scale range pinned at 1.0 and shift/jitter disabled, only
// rotation, perturbation and shuffling remain. Rotations are isometries, so
// every point keeps its distance to the origin.
func TestApplyPreservesNormsWithoutScaleShiftJitter(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	batch := randomBatch(rng, 3, 24, 3)
	before := cloneBatch(batch)

	aug, err := New(1.0, 1.0, 0.0, 0.0, false, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	aug.PerturbSigma = 0
	aug.PerturbClip = 0
	if err := aug.Apply(batch, rng); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range batch {
		for p := 0; p < 24; p++ {
			got := rowNorm(batch[i], p)
			want := rowNorm(before[i], p)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("example %d point %d: norm %v, want %v", i, p, got, want)
			}
		}
	}
}

func rowNorm(m *mat.Dense, row int) float64 {
	var sum float64
	for j := 0; j < 3; j++ {
		v := m.At(row, j)
		sum += v * v
	}
	return math.Sqrt(sum)
}

func TestRotateVerticalKeepsY(t *testing.T) {
	data := []float64{
		1, 2, 3,
		-4, 5, 6,
		0.5, -1, 2,
	}
	x := mat.NewDense(3, 3, data)
	before := mat.DenseCopyOf(x)

	rotateVertical(x, math.Pi/3, false)

	for p := 0; p < 3; p++ {
		if got, want := x.At(p, 1), before.At(p, 1); math.Abs(got-want) > 1e-12 {
			t.Errorf("point %d: y = %v, want %v", p, got, want)
		}
		gotXZ := math.Hypot(x.At(p, 0), x.At(p, 2))
		wantXZ := math.Hypot(before.At(p, 0), before.At(p, 2))
		if math.Abs(gotXZ-wantXZ) > 1e-12 {
			t.Errorf("point %d: xz norm %v, want %v", p, gotXZ, wantXZ)
		}
	}
}

// Normals must rotate with the same matrix as the positions so that the
// angle between a point and its normal is invariant.
func TestRotateVerticalRotatesNormalsConsistently(t *testing.T) {
	data := []float64{
		1, 0, 0, 0, 1, 0,
		0, 2, 1, 1, 0, 0,
	}
	x := mat.NewDense(2, 6, data)
	before := mat.DenseCopyOf(x)

	rotateVertical(x, 1.1, true)

	for p := 0; p < 2; p++ {
		got := dot3(x, p, 0, x, p, 3)
		want := dot3(before, p, 0, before, p, 3)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("point %d: position-normal dot %v, want %v", p, got, want)
		}
	}
}

func dot3(a *mat.Dense, ar, ac int, b *mat.Dense, br, bc int) float64 {
	var sum float64
	for j := 0; j < 3; j++ {
		sum += a.At(ar, ac+j) * b.At(br, bc+j)
	}
	return sum
}

func TestRotateEulerPreservesNorms(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := make([]float64, 10*3)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	x := mat.NewDense(10, 3, data)
	before := mat.DenseCopyOf(x)

	rotateEuler(x, [3]float64{0.1, -0.07, 0.15}, false)

	for p := 0; p < 10; p++ {
		if got, want := rowNorm(x, p), rowNorm(before, p); math.Abs(got-want) > 1e-9 {
			t.Errorf("point %d: norm %v, want %v", p, got, want)
		}
	}
}

// Point shuffling reorders rows within an example but never changes the set
// of rows. Sorting the serialized rows of input and output must agree.
func TestShuffleRowsPreservesRowMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	batch := randomBatch(rng, 2, 12, 4)
	before := cloneBatch(batch)

	aug, err := New(1.0, 1.0, 0.0, 0.0, false, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	aug.PerturbSigma = 0
	aug.PerturbClip = 0
	// Keep rotation out of the picture too: a zero-width perturbation and a
	// vertical angle are still drawn, so compare via sorted row keys of the
	// rotated-but-unshuffled twin.
	if err := aug.Apply(batch, rand.New(rand.NewSource(77))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	ref := before
	refAug, err := New(1.0, 1.0, 0.0, 0.0, false, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	refAug.PerturbSigma = 0
	refAug.PerturbClip = 0
	if err := refAug.Apply(ref, rand.New(rand.NewSource(77))); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range batch {
		if got, want := sortedRowKeys(batch[i]), sortedRowKeys(ref[i]); !equalKeys(got, want) {
			t.Errorf("example %d: shuffled rows are not a permutation of the unshuffled rows", i)
		}
	}
}

func sortedRowKeys(m *mat.Dense) []float64 {
	r, c := m.Dims()
	keys := make([]float64, r)
	for p := 0; p < r; p++ {
		var k float64
		for j := 0; j < c; j++ {
			k = k*31 + m.At(p, j)
		}
		keys[p] = k
	}
	sort.Float64s(keys)
	return keys
}

func equalKeys(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// The positional channel, when present, is appended before shuffling and
// therefore travels with its point. Extra channels beyond xyz and normals
// must pass through augmentation untouched except for reordering.
func TestExtraChannelsUntouchedUpToPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	batch := randomBatch(rng, 1, 8, 7)
	before := cloneBatch(batch)

	aug, err := New(0.7, 1.3, 0.3, 0.005, true, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := aug.Apply(batch, rng); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := make([]float64, 8)
	got := make([]float64, 8)
	for p := 0; p < 8; p++ {
		want[p] = before[0].At(p, 6)
		got[p] = batch[0].At(p, 6)
	}
	sort.Float64s(want)
	sort.Float64s(got)
	for p := range want {
		if math.Abs(want[p]-got[p]) > 1e-12 {
			t.Fatalf("channel 6 values changed: got %v, want %v", got, want)
		}
	}
}
