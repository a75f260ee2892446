package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tryptofanik/bios2net/preprocessing"

	bioserrors "github.com/tryptofanik/bios2net/pkg/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeSample(t *testing.T) {
	path := writeCSV(t, "1,2,3,0.1,0.2,0.3\n4,5,6,0.4,0.5,0.6\n")

	x, err := decodeSample(path, nil, true)
	if err != nil {
		t.Fatalf("decodeSample: %v", err)
	}
	r, c := x.Dims()
	if r != 2 || c != 6 {
		t.Fatalf("shape (%d, %d), want (2, 6)", r, c)
	}
	if x.At(1, 3) != 0.4 {
		t.Errorf("At(1, 3) = %v, want 0.4", x.At(1, 3))
	}
}

func TestDecodeSampleAppliesOmission(t *testing.T) {
	path := writeCSV(t, "1,2,3,9,9,9,0.5\n")
	omit, err := preprocessing.NewRangeOmission([]int{3, 6})
	if err != nil {
		t.Fatal(err)
	}

	x, err := decodeSample(path, omit, true)
	if err != nil {
		t.Fatalf("decodeSample: %v", err)
	}
	r, c := x.Dims()
	if r != 1 || c != 4 {
		t.Fatalf("shape (%d, %d), want (1, 4)", r, c)
	}
	if x.At(0, 3) != 0.5 {
		t.Errorf("column after omitted range = %v, want 0.5", x.At(0, 3))
	}
}

func TestDecodeSampleWithoutNormalsNarrowsToXYZ(t *testing.T) {
	path := writeCSV(t, "1,2,3,0.1,0.2,0.3\n")
	omit, err := preprocessing.NewRangeOmission([]int{3, 6})
	if err != nil {
		t.Fatal(err)
	}

	// Omission is skipped in the narrow layout; only xyz survives.
	x, err := decodeSample(path, omit, false)
	if err != nil {
		t.Fatalf("decodeSample: %v", err)
	}
	_, c := x.Dims()
	if c != 3 {
		t.Fatalf("channels = %d, want 3", c)
	}
}

func TestDecodeSampleErrors(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")
		_, err := decodeSample(path, nil, true)
		var resErr *bioserrors.ResampleError
		if !bioserrors.As(err, &resErr) {
			t.Fatalf("expected ResampleError, got %v", err)
		}
	})

	t.Run("unparseable value", func(t *testing.T) {
		path := writeCSV(t, "1,2,x\n")
		if _, err := decodeSample(path, nil, false); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("non-finite value", func(t *testing.T) {
		path := writeCSV(t, "1,2,NaN\n")
		_, err := decodeSample(path, nil, false)
		var valErr *bioserrors.ValueError
		if !bioserrors.As(err, &valErr) {
			t.Fatalf("expected ValueError, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := decodeSample(filepath.Join(t.TempDir(), "absent.csv"), nil, true); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
