package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/tryptofanik/bios2net/pkg/errors"
	"github.com/tryptofanik/bios2net/preprocessing"
)

// decodeSample reads one sample CSV file into a points×channels matrix and
// applies the configured channel-range omission. Every row must carry the
// same number of fields; values parse as float64. When the normal channel
// is disabled the omission step is skipped and only the first three columns
// are kept, matching the narrow layout used without normals.
func decodeSample(path string, omit *preprocessing.RangeOmission, normalChannel bool) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bios2net: opening sample %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "bios2net: decoding sample %s", path)
	}
	if len(records) == 0 {
		return nil, errors.NewResampleError("DecodeSample", 0, 1)
	}

	cols := len(records[0])
	if !normalChannel {
		if cols < 3 {
			return nil, errors.NewDimensionError("DecodeSample", 3, cols, 1)
		}
		cols = 3
	}

	data := make([]float64, len(records)*cols)
	for i, rec := range records {
		if len(rec) < cols {
			return nil, errors.NewDimensionError("DecodeSample", cols, len(rec), 1)
		}
		for j := 0; j < cols; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bios2net: sample %s row %d column %d", path, i, j)
			}
			data[i*cols+j] = v
		}
	}
	x := mat.NewDense(len(records), cols, data)
	if err := errors.CheckMatrix("DecodeSample", x, len(records), cols); err != nil {
		return nil, errors.Wrapf(err, "bios2net: sample %s", path)
	}

	if normalChannel && omit != nil && !omit.Empty() {
		return omit.Apply(x)
	}
	return x, nil
}
