// Package log defines standard attribute keys for data pipeline operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in bios2net. Using these standard keys enables better
// log analysis, monitoring, and debugging of dataset preparation workflows.
//
// The attributes are organized into categories:
//   - Dataset and Operation Context
//   - Data Shape and Characteristics
//   - Cache Behaviour
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "dataset.root",
// "data.points") to enable structured log analysis and filtering.

package log

// Dataset and Operation Context
// These attributes identify the dataset instance and the operation being performed.
const (
	// DatasetRootKey identifies the root directory the catalog was scanned from.
	DatasetRootKey = "dataset.root"

	// SplitKey identifies the dataset split ("train" or "test").
	SplitKey = "dataset.split"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "scan", "decode", "resample", "transform", "augment", "next_batch", "reset"
	OperationKey = "pipeline.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "dataset", "preprocessing", "augment", "metrics"
	ComponentKey = "pipeline.component"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples in the catalog.
	SamplesKey = "data.samples"

	// ClassesKey indicates the number of classes in the catalog.
	ClassesKey = "data.classes"

	// PointsKey indicates the number of points per sample after resampling.
	PointsKey = "data.points"

	// ChannelsKey indicates the number of channels per point after transformation.
	ChannelsKey = "data.channels"

	// RawPointsKey indicates the point count of a sample before resampling.
	// Useful for spotting degenerate samples and resampling hot spots.
	RawPointsKey = "data.raw_points"

	// BatchSizeKey indicates the configured batch size.
	BatchSizeKey = "data.batch_size"
)

// Cache Behaviour
// These attributes describe the bounded decoded-sample cache.
const (
	// CacheSizeKey records the current number of cached samples.
	CacheSizeKey = "cache.size"

	// CacheCapacityKey records the configured cache capacity.
	CacheCapacityKey = "cache.capacity"

	// CacheHitsKey records the cumulative number of cache hits.
	CacheHitsKey = "cache.hits"

	// CacheMissesKey records the cumulative number of cache misses.
	CacheMissesKey = "cache.misses"
)

// Iteration Context
// These attributes track epoch and batch progress.
const (
	// EpochKey records the current epoch number.
	EpochKey = "iter.epoch"

	// BatchIndexKey records the index of the batch within the epoch.
	BatchIndexKey = "iter.batch_index"

	// NumBatchesKey records the number of batches per epoch.
	NumBatchesKey = "iter.num_batches"

	// ShuffleKey records whether the epoch permutation is shuffled.
	ShuffleKey = "iter.shuffle"

	// AugmentKey records whether augmentation was applied to a batch.
	AugmentKey = "iter.augment"
)

// Performance Metrics
// These attributes capture timing and resource usage information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MemoryUsageKey records memory usage in bytes during the operation.
	MemoryUsageKey = "perf.memory_bytes"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "CatalogError", "ConfigError", "ResampleError", "IterationError"
	ErrorTypeKey = "error.type"

	// SamplePathKey identifies the sample file involved in a decode failure.
	SamplePathKey = "error.sample_path"
)

// Configuration
// These attributes capture pipeline configuration for reproducibility.
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// NormalizeKey records whether unit-ball normalization is enabled.
	NormalizeKey = "config.normalize"

	// NormalChannelKey records whether normal channels are kept.
	NormalChannelKey = "config.normal_channel"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard pipeline operations
	OperationScan      = "scan"
	OperationDecode    = "decode"
	OperationResample  = "resample"
	OperationTransform = "transform"
	OperationAugment   = "augment"
	OperationNextBatch = "next_batch"
	OperationReset     = "reset"
)
