package dataset

import (
	"io"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// TensorDataset adapts a Dataset to gomlx's train.Dataset interface: Yield
// hands out (B, K, C) input tensors with int32 label and float32 weight
// tensors, returning io.EOF at the end of each epoch, and Restart begins the
// next epoch.
type TensorDataset struct {
	ds *Dataset

	// Augment applies geometric augmentation to every yielded batch.
	Augment bool
}

// NewTensorDataset wraps ds for tensor-based training. Augmentation is
// enabled for the train split and disabled otherwise; override through the
// Augment field.
func NewTensorDataset(ds *Dataset) *TensorDataset {
	return &TensorDataset{
		ds:      ds,
		Augment: ds.split == SplitTrain,
	}
}

// Name identifies the dataset by its split.
func (t *TensorDataset) Name() string {
	return "bios2net-" + t.ds.split
}

// Yield returns the next batch as gomlx tensors. The single input tensor has
// shape (B, K, C); the label slot carries the int32 class ids followed by
// the float32 class weights. io.EOF signals the end of the epoch.
func (t *TensorDataset) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if !t.ds.HasNextBatch() {
		return nil, nil, nil, io.EOF
	}
	batch, err := t.ds.NextBatch(t.Augment)
	if err != nil {
		return nil, nil, nil, err
	}

	classIDs := make([]int32, len(batch.Labels))
	for i, l := range batch.Labels {
		classIDs[i] = int32(l)
	}
	weights := make([]float32, len(batch.Weights))
	for i, w := range batch.Weights {
		weights[i] = float32(w)
	}

	inputs = []*tensors.Tensor{tensors.FromAnyValue(batch.Float32Values())}
	labels = []*tensors.Tensor{
		tensors.FromAnyValue(classIDs),
		tensors.FromAnyValue(weights),
	}
	return nil, inputs, labels, nil
}

// Restart begins a new epoch, reshuffling the sample order when shuffling is
// enabled.
func (t *TensorDataset) Restart() error {
	t.ds.Reset()
	return nil
}
