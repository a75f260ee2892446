// Package bios2net prepares 3-D point-cloud datasets for neural-network
// training: it catalogs per-class sample files, resamples every cloud to a
// fixed point count, derives training features and inverse-frequency class
// weights, and serves shuffled, geometrically augmented batches epoch by
// epoch.
//
// # Features
//
// - Deterministic catalogs: class ids and sample order are stable across runs
// - Fixed-size batches: every cloud is resampled to K points with C channels
// - Feature pipeline: one-hot expansion, positional channel, unit-ball normalization
// - Geometric augmentation: rotation, perturbation, scale, shift, jitter, shuffle
// - Bounded sample cache: decoded clouds are reused across epochs up to a capacity
// - Tensor adapter: batches convert directly to gomlx tensors for training
//
// # Quick Start
//
// Iterate augmented training batches from a dataset root:
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/tryptofanik/bios2net/dataset"
//	)
//
//	func main() {
//	    ds, err := dataset.New("data", dataset.SplitTrain,
//	        dataset.WithBatchSize(32),
//	        dataset.WithNumPoints(1024),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for epoch := 0; epoch < 10; epoch++ {
//	        ds.Reset()
//	        for ds.HasNextBatch() {
//	            batch, err := ds.NextBatch(true)
//	            if err != nil {
//	                log.Fatal(err)
//	            }
//	            // batch.Data(), batch.Labels and batch.Weights feed the
//	            // training step.
//	            _ = batch
//	        }
//	    }
//	}
//
// # Packages
//
//   - dataset: catalog scanning, sample cache, resampling, batch iteration
//   - preprocessing: the per-sample feature transform chain
//   - augment: geometric batch augmentation
//   - metrics: classification metrics (confusion matrix, accuracy, top-K)
//   - pkg/errors: typed errors with stack traces
//   - pkg/log: structured logging setup
package bios2net
