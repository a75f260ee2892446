package dataset

import (
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/augment"
	"github.com/tryptofanik/bios2net/pkg/errors"
	"github.com/tryptofanik/bios2net/pkg/log"
	"github.com/tryptofanik/bios2net/preprocessing"
)

// Config collects every tunable of a Dataset. Fields are set through the
// functional options passed to New; zero values are replaced by defaults
// before validation.
type Config struct {
	BatchSize int
	NumPoints int
	CacheSize int

	// Normalize centers each cloud on its centroid and scales it into the
	// unit ball after resampling.
	Normalize bool
	// NormalChannel keeps surface-normal columns 3..6; when false, decoded
	// samples are narrowed to xyz and the derived channels are stripped
	// before batching.
	NormalChannel bool
	// PositionalChannel appends the normalized point rank as an extra
	// channel after resampling.
	PositionalChannel bool

	// Shuffle controls sample-order shuffling per epoch. Nil selects the
	// split default: shuffled for train, catalog order for test.
	Shuffle *bool
	// ShufflePoints permutes point order within each example during
	// augmentation.
	ShufflePoints bool

	ScaleLow    float64
	ScaleHigh   float64
	ShiftRange  float64
	JitterSigma float64

	// OmitRanges lists half-open [start, end) column ranges removed from
	// every decoded sample, as flat start/end pairs.
	OmitRanges []int
	// CategoricalIndexes and CategoricalSizes describe integer-coded
	// columns expanded one-hot after resampling. The indexes refer to the
	// column layout current at expansion time.
	CategoricalIndexes []int
	CategoricalSizes   []int

	Seed int64
}

func defaultConfig() Config {
	return Config{
		BatchSize:         32,
		NumPoints:         1024,
		CacheSize:         15000,
		Normalize:         true,
		NormalChannel:     true,
		PositionalChannel: true,
		ShufflePoints:     false,
		ScaleLow:          0.7,
		ScaleHigh:         1.3,
		ShiftRange:        0.3,
		JitterSigma:       0.005,
	}
}

// Option mutates the configuration during New.
type Option func(*Config)

// WithBatchSize sets the number of examples per batch.
func WithBatchSize(n int) Option { return func(c *Config) { c.BatchSize = n } }

// WithNumPoints sets the fixed per-example point count K.
func WithNumPoints(k int) Option { return func(c *Config) { c.NumPoints = k } }

// WithCacheSize bounds the number of decoded samples kept in memory.
func WithCacheSize(n int) Option { return func(c *Config) { c.CacheSize = n } }

// WithNormalize toggles unit-ball normalization of each resampled cloud.
func WithNormalize(v bool) Option { return func(c *Config) { c.Normalize = v } }

// WithNormalChannel toggles the surface-normal columns.
func WithNormalChannel(v bool) Option { return func(c *Config) { c.NormalChannel = v } }

// WithPositionalChannel toggles the appended point-rank channel.
func WithPositionalChannel(v bool) Option { return func(c *Config) { c.PositionalChannel = v } }

// WithShuffle overrides the split's default sample-order shuffling.
func WithShuffle(v bool) Option { return func(c *Config) { c.Shuffle = &v } }

// WithShufflePoints toggles per-example point-order shuffling during
// augmentation.
func WithShufflePoints(v bool) Option { return func(c *Config) { c.ShufflePoints = v } }

// WithScaleRange sets the isotropic augmentation scale bounds.
func WithScaleRange(low, high float64) Option {
	return func(c *Config) { c.ScaleLow, c.ScaleHigh = low, high }
}

// WithShiftRange sets the symmetric augmentation translation bound.
func WithShiftRange(r float64) Option { return func(c *Config) { c.ShiftRange = r } }

// WithJitterSigma sets the per-point augmentation jitter deviation.
func WithJitterSigma(s float64) Option { return func(c *Config) { c.JitterSigma = s } }

// WithOmitRanges sets the column ranges removed at decode time, as flat
// [start, end) pairs.
func WithOmitRanges(ranges ...int) Option {
	return func(c *Config) { c.OmitRanges = ranges }
}

// WithCategorical registers integer-coded columns for one-hot expansion.
func WithCategorical(indexes, sizes []int) Option {
	return func(c *Config) {
		c.CategoricalIndexes = indexes
		c.CategoricalSizes = sizes
	}
}

// WithSeed fixes the random source, making resampling, shuffling and
// augmentation reproducible.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// Dataset serves fixed-size, optionally augmented batches from one split of
// an on-disk point-cloud dataset. It is not safe for concurrent use; drive
// it from a single goroutine per epoch.
type Dataset struct {
	cfg     Config
	split   string
	catalog *Catalog
	weights []float64

	cache    *sampleCache
	omit     *preprocessing.RangeOmission
	pipeline *preprocessing.Pipeline
	aug      *augment.Augmenter

	rng      *rand.Rand
	state    epochState
	channels int

	logger *slog.Logger
}

// New scans root for the given split and builds a ready-to-iterate Dataset.
// The catalog is read eagerly and configuration errors surface here, never
// during iteration. The first mandated Reset of a fresh Dataset is a no-op;
// the constructor already primes the epoch state.
func New(root, split string, opts ...Option) (*Dataset, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.NewConfigError("batch_size", "must be positive", cfg.BatchSize)
	}
	if cfg.NumPoints <= 0 {
		return nil, errors.NewConfigError("num_points", "must be positive", cfg.NumPoints)
	}
	if cfg.CacheSize < 0 {
		return nil, errors.NewConfigError("cache_size", "must be non-negative", cfg.CacheSize)
	}
	// NaN slips through the ordered comparisons in the augmenter's own
	// validation, so the float knobs are checked for finiteness here.
	if err := errors.CheckValues("Config",
		[]float64{cfg.ScaleLow, cfg.ScaleHigh, cfg.ShiftRange, cfg.JitterSigma}); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	omit, err := preprocessing.NewRangeOmission(cfg.OmitRanges)
	if err != nil {
		return nil, err
	}
	var steps []preprocessing.Step
	if len(cfg.CategoricalIndexes) > 0 {
		cat, err := preprocessing.NewCategoricalExpansion(cfg.CategoricalIndexes, cfg.CategoricalSizes)
		if err != nil {
			return nil, err
		}
		steps = append(steps, cat)
	}
	if cfg.PositionalChannel {
		steps = append(steps, preprocessing.PositionalChannel{})
	}
	if cfg.Normalize {
		steps = append(steps, preprocessing.UnitBallNormalize{})
	}
	if !cfg.NormalChannel {
		steps = append(steps, preprocessing.StripToXYZ{})
	}

	aug, err := augment.New(cfg.ScaleLow, cfg.ScaleHigh, cfg.ShiftRange, cfg.JitterSigma,
		cfg.NormalChannel, cfg.ShufflePoints)
	if err != nil {
		return nil, err
	}

	catalog, err := ScanCatalog(root, split)
	if err != nil {
		return nil, err
	}
	weights, err := ClassWeights(catalog.Counts)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		cfg:      cfg,
		split:    split,
		catalog:  catalog,
		weights:  weights,
		cache:    newSampleCache(cfg.CacheSize),
		omit:     omit,
		pipeline: preprocessing.NewPipeline(steps...),
		aug:      aug,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		logger:   slog.Default().With(log.SplitKey, split),
	}

	// The channel count depends on the sample files, not only on the
	// configuration: decode the first catalogued sample to measure it.
	x, err := d.loadSample(0)
	if err != nil {
		return nil, err
	}
	_, decoded := x.Dims()
	d.channels = d.pipeline.OutputChannels(decoded)

	d.Reset()
	d.logger.Info("catalog scanned",
		slog.String(log.DatasetRootKey, root),
		slog.Int(log.SamplesKey, catalog.Len()),
		slog.Int(log.ClassesKey, catalog.NumClasses()),
		slog.Int(log.ChannelsKey, d.channels),
		slog.Int(log.BatchSizeKey, cfg.BatchSize),
		slog.Int(log.PointsKey, cfg.NumPoints),
	)
	return d, nil
}

// ClassNames returns the sorted class name table; a label indexes it.
func (d *Dataset) ClassNames() []string { return d.catalog.Classes }

// NumClasses returns the number of classes in the catalog.
func (d *Dataset) NumClasses() int { return d.catalog.NumClasses() }

// Len returns the number of samples in the split.
func (d *Dataset) Len() int { return d.catalog.Len() }

// NumChannels returns the per-point channel count of batches this Dataset
// produces.
func (d *Dataset) NumChannels() int { return d.channels }

// NumBatches returns the number of batches per epoch; the trailing batch
// may hold fewer examples than the configured batch size.
func (d *Dataset) NumBatches() int {
	return (d.catalog.Len() + d.cfg.BatchSize - 1) / d.cfg.BatchSize
}

// Weights returns the inverse-frequency class weights, index-aligned with
// ClassNames.
func (d *Dataset) Weights() []float64 { return d.weights }

// CacheStats returns the cumulative sample-cache hit and miss counts and
// the number of cached entries.
func (d *Dataset) CacheStats() (hits, misses uint64, size int) {
	return d.cache.stats()
}

// shuffleEnabled resolves the configured shuffle override against the split
// default.
func (d *Dataset) shuffleEnabled() bool {
	if d.cfg.Shuffle != nil {
		return *d.cfg.Shuffle
	}
	return d.split == SplitTrain
}

// Reset starts a new epoch: the sample order is rebuilt (reshuffled when
// shuffling is on) and the batch cursor returns to zero.
func (d *Dataset) Reset() {
	d.state.reset(d.catalog.Len(), d.cfg.BatchSize, d.shuffleEnabled(), d.rng)
	d.logger.Debug("epoch reset",
		slog.String(log.OperationKey, log.OperationReset),
		slog.Int(log.NumBatchesKey, d.state.numBatches),
		slog.Bool(log.ShuffleKey, d.shuffleEnabled()),
	)
}

// HasNextBatch reports whether the current epoch has another batch.
func (d *Dataset) HasNextBatch() bool {
	return d.state.hasNext()
}

// NextBatch assembles and returns the next batch of the epoch. Each sample
// is decoded (or served from cache), resampled to the configured point
// count and run through the feature pipeline; with augment set, the stacked
// batch is then geometrically augmented in place. After the last batch of
// the epoch, NextBatch fails with an IterationError until Reset is called.
func (d *Dataset) NextBatch(augmentBatch bool) (*Batch, error) {
	batchIdx := d.state.cursor
	indexes, err := d.state.nextRange()
	if err != nil {
		return nil, err
	}

	batch := NewBatch(len(indexes), d.cfg.NumPoints, d.channels)
	for slot, idx := range indexes {
		x, err := d.loadSample(idx)
		if err != nil {
			return nil, err
		}
		x, err = Resample(x, d.cfg.NumPoints, d.rng)
		if err != nil {
			return nil, errors.Wrapf(err, "bios2net: sample %s", d.catalog.Samples[idx].Name)
		}
		x, err = d.pipeline.Apply(x)
		if err != nil {
			return nil, errors.Wrapf(err, "bios2net: sample %s", d.catalog.Samples[idx].Name)
		}
		if err := batch.SetExample(slot, x); err != nil {
			return nil, errors.Wrapf(err, "bios2net: sample %s", d.catalog.Samples[idx].Name)
		}
		class := d.catalog.Samples[idx].Class
		batch.Labels[slot] = class
		batch.Weights[slot] = d.weights[class]
	}

	if augmentBatch {
		if err := d.aug.Apply(batch, d.rng); err != nil {
			return nil, err
		}
	}

	d.logger.Debug("batch served",
		slog.String(log.OperationKey, log.OperationNextBatch),
		slog.Int(log.BatchIndexKey, batchIdx),
		slog.Int(log.NumBatchesKey, d.state.numBatches),
		slog.Bool(log.AugmentKey, augmentBatch),
	)
	return batch, nil
}

// loadSample returns the decoded, range-omitted cloud of catalog index idx,
// via the bounded cache.
func (d *Dataset) loadSample(idx int) (*mat.Dense, error) {
	return d.cache.getOrDecode(idx, func() (*mat.Dense, error) {
		return decodeSample(d.catalog.Samples[idx].Path, d.omit, d.cfg.NormalChannel)
	})
}
