// Package preprocessing implements the per-sample feature transform chain for
// point-cloud samples: column-range omission at decode time, categorical
// one-hot expansion, an appended positional channel, unit-ball spatial
// normalization and normal-channel stripping.
//
// Each stage is a Step that declares its effect on the channel layout, so the
// output width of a whole chain can be computed without decoding any data.
// Steps are applied in a fixed order by a Pipeline; the order matters because
// later steps see the channel layout produced by earlier ones.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// Step is a single stage of the feature transform chain.
//
// Apply transforms one sample matrix (points × channels) and may return the
// input matrix mutated in place or a freshly allocated one. OutputChannels
// reports the channel count the step produces for a given input width; it
// must agree with what Apply actually does, since batch buffers are sized
// from it before any sample is decoded.
type Step interface {
	// Name identifies the step in logs and error messages.
	Name() string

	// Apply transforms a single sample of shape (points, channels).
	Apply(x *mat.Dense) (*mat.Dense, error)

	// OutputChannels returns the channel count after this step given the
	// input channel count.
	OutputChannels(in int) int
}

// Pipeline applies an ordered sequence of steps to a sample.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline over the given steps. Nil steps are skipped
// so callers can build the chain from optional stages without filtering.
func NewPipeline(steps ...Step) *Pipeline {
	kept := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Pipeline{steps: kept}
}

// Steps returns the ordered steps of the pipeline.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Apply runs every step in order on the given sample. A gonum shape panic in
// a step is recovered and reported as an error.
func (p *Pipeline) Apply(x *mat.Dense) (out *mat.Dense, err error) {
	defer errors.Recover(&err, "Pipeline.Apply")
	for _, s := range p.steps {
		x, err = s.Apply(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// OutputChannels folds the channel bookkeeping of every step over the given
// input width. This is the statically auditable counterpart of Apply: the
// value it returns for the decoded sample width is the width every produced
// sample will have.
func (p *Pipeline) OutputChannels(in int) int {
	out := in
	for _, s := range p.steps {
		out = s.OutputChannels(out)
	}
	return out
}
