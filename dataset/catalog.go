// Package dataset loads per-class point-cloud sample files from a directory
// tree, resamples every cloud to a fixed point count, derives training
// features and inverse-frequency class weights, and serves shuffled,
// optionally augmented batches epoch by epoch.
//
// The expected on-disk layout is one subdirectory per class under the
// dataset root, each holding one subdirectory per split with the sample
// files as CSV, one point per row:
//
//	root/
//	  <class>/
//	    train/
//	      <sample>.csv
//	    test/
//	      <sample>.csv
//
// A Dataset is constructed for one split with New, then driven through
// epochs with Reset, HasNextBatch and NextBatch.
package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tryptofanik/bios2net/pkg/errors"
)

// Dataset splits. The split selects which subdirectory of each class is
// scanned.
const (
	SplitTrain = "train"
	SplitTest  = "test"
)

// SamplePath identifies one catalogued sample: its class and the path of
// its data file.
type SamplePath struct {
	// Class is the class id, an index into Catalog.Classes.
	Class int
	// Name is the sample file name without extension.
	Name string
	// Path is the path of the sample's data file.
	Path string
}

// Catalog is the sorted result of scanning a dataset root for one split:
// the class name table and every sample of the split in deterministic
// order.
type Catalog struct {
	// Classes holds the class names ordered by the compound sort key; a
	// sample's Class field indexes this slice.
	Classes []string
	// Samples holds every catalogued sample, grouped by class in class-id
	// order, file names sorted within each class.
	Samples []SamplePath
	// Counts holds the number of samples per class, aligned with Classes.
	Counts []int
}

// NumClasses returns the number of classes in the catalog.
func (c *Catalog) NumClasses() int { return len(c.Classes) }

// Len returns the total number of samples.
func (c *Catalog) Len() int { return len(c.Samples) }

// ScanCatalog walks the class subdirectories of root and builds the
// deterministic sample catalog for one split. Class ids are assigned after
// sorting class names by a compound key: the text before the first '.'
// compares lexicographically and the token after it compares numerically,
// so "category.10" sorts after "category.9" rather than between
// "category.1" and "category.2". Every class must have at least one sample
// file under <class>/<split>/, otherwise the scan fails with a
// CatalogError.
func ScanCatalog(root, split string) (*Catalog, error) {
	if split != SplitTrain && split != SplitTest {
		return nil, errors.NewConfigError("split", "must be \"train\" or \"test\"", split)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "bios2net: catalog scan of %s", root)
	}

	classes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			classes = append(classes, e.Name())
		}
	}
	if len(classes) == 0 {
		return nil, errors.NewCatalogError(root, split, "no class directories found")
	}
	sort.SliceStable(classes, func(i, j int) bool {
		return lessCompoundKey(classes[i], classes[j])
	})

	cat := &Catalog{
		Classes: classes,
		Counts:  make([]int, len(classes)),
	}
	for id, class := range classes {
		dir := filepath.Join(root, class, split)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.NewCatalogError(root, split, "class "+class+" has no "+split+" directory")
		}
		var names []string
		for _, f := range files {
			if !f.IsDir() {
				names = append(names, f.Name())
			}
		}
		if len(names) == 0 {
			return nil, errors.NewCatalogError(root, split, "class "+class+" has no samples")
		}
		sort.Strings(names)
		for _, name := range names {
			cat.Samples = append(cat.Samples, SamplePath{
				Class: id,
				Name:  strings.TrimSuffix(name, filepath.Ext(name)),
				Path:  filepath.Join(dir, name),
			})
		}
		cat.Counts[id] = len(names)
	}
	return cat, nil
}

// lessCompoundKey orders names by the compound key: the token before the
// first '.' lexicographically, then the token after it as an integer.
// Names without a parseable numeric second token get the fallback key -1,
// which sorts them before numbered names of the same prefix.
func lessCompoundKey(a, b string) bool {
	ap, an := splitCompoundKey(a)
	bp, bn := splitCompoundKey(b)
	if ap != bp {
		return ap < bp
	}
	return an < bn
}

func splitCompoundKey(name string) (prefix string, num int) {
	parts := strings.SplitN(name, ".", 3)
	prefix = parts[0]
	num = -1
	if len(parts) > 1 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			num = n
		}
	}
	return prefix, num
}

// CheckSplits scans both splits of root and verifies that they expose the
// same classes with matching class tables. Returns the per-class sample
// counts of each split, index-aligned with the shared class table. The
// pipeline does not enforce this invariant itself; callers should run this
// once at startup before constructing datasets.
func CheckSplits(root string) (train, test *Catalog, err error) {
	train, err = ScanCatalog(root, SplitTrain)
	if err != nil {
		return nil, nil, err
	}
	test, err = ScanCatalog(root, SplitTest)
	if err != nil {
		return nil, nil, err
	}

	if len(train.Classes) != len(test.Classes) {
		return nil, nil, errors.NewCatalogError(root, "train/test",
			"splits disagree on the number of classes")
	}
	for i := range train.Classes {
		if train.Classes[i] != test.Classes[i] {
			return nil, nil, errors.NewCatalogError(root, "train/test",
				"splits disagree on class "+train.Classes[i])
		}
	}
	return train, test, nil
}
