package dataset

import (
	"math/rand"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// epochState tracks iteration through one epoch: the (optionally shuffled)
// sample order and the batch cursor. It is reset at every epoch boundary
// and refuses to hand out batches past the end, so a missed Reset surfaces
// as an error instead of a silent repeat of stale data.
type epochState struct {
	perm       []int
	cursor     int
	numBatches int
	batchSize  int
}

// reset rebuilds the sample order for a new epoch. With shuffling enabled
// the order is a fresh permutation from rng; otherwise it is the catalog
// order. The number of batches is the ceiling of samples over batch size:
// the trailing batch may be smaller than the rest.
func (s *epochState) reset(total, batchSize int, shuffle bool, rng *rand.Rand) {
	s.batchSize = batchSize
	s.numBatches = (total + batchSize - 1) / batchSize
	s.cursor = 0
	if shuffle {
		s.perm = rng.Perm(total)
		return
	}
	s.perm = make([]int, total)
	for i := range s.perm {
		s.perm[i] = i
	}
}

// hasNext reports whether another batch remains in the epoch.
func (s *epochState) hasNext() bool {
	return s.cursor < s.numBatches
}

// nextRange returns the catalog indexes of the next batch and advances the
// cursor. Calling past the last batch returns an IterationError.
func (s *epochState) nextRange() ([]int, error) {
	if !s.hasNext() {
		return nil, errors.NewIterationError(s.cursor, s.numBatches)
	}
	start := s.cursor * s.batchSize
	end := start + s.batchSize
	if end > len(s.perm) {
		end = len(s.perm)
	}
	s.cursor++
	return s.perm[start:end], nil
}
