// Package split generates cross-validation folds over row indices.
package split

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/cv"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Splitter produces folds for a label vector.
type Splitter interface {
	Split(y *mat.VecDense) ([]cv.Fold, error)
	GetNSplits() int
}

// KFold implements k-fold cross-validation splitter
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewKFold creates a new k-fold splitter
func NewKFold(nSplits int, shuffle bool, randomSeed uint64) *KFold {
	if nSplits < 2 {
		nSplits = 5 // Default to 5-fold
	}
	return &KFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// GetNSplits returns the number of splits
func (kf *KFold) GetNSplits() int {
	return kf.NSplits
}

// Split deals rows into NSplits contiguous validation blocks (after an
// optional shuffle). The first n%NSplits folds get one extra row.
func (kf *KFold) Split(y *mat.VecDense) ([]cv.Fold, error) {
	nSamples, err := checkSize(y, kf.NSplits)
	if err != nil {
		return nil, err
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		newRand(kf.RandomSeed).Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	validSets := make([][]int, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	currentIdx := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}
		validSets[i] = append([]int(nil), indices[currentIdx:currentIdx+testSize]...)
		currentIdx += testSize
	}

	return complete(validSets, nSamples), nil
}

// StratifiedKFold implements stratified k-fold cross-validation
type StratifiedKFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewStratifiedKFold creates a new stratified k-fold splitter
func NewStratifiedKFold(nSplits int, shuffle bool, randomSeed uint64) *StratifiedKFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &StratifiedKFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// GetNSplits returns the number of splits
func (skf *StratifiedKFold) GetNSplits() int {
	return skf.NSplits
}

// Split distributes each class across folds so every fold keeps roughly the
// overall class ratio. Classes are visited in ascending label order.
func (skf *StratifiedKFold) Split(y *mat.VecDense) ([]cv.Fold, error) {
	nSamples, err := checkSize(y, skf.NSplits)
	if err != nil {
		return nil, err
	}

	classIndices := make(map[float64][]int)
	for i := 0; i < nSamples; i++ {
		label := y.AtVec(i)
		classIndices[label] = append(classIndices[label], i)
	}
	labels := make([]float64, 0, len(classIndices))
	for label := range classIndices {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	if skf.Shuffle {
		r := newRand(skf.RandomSeed)
		for _, label := range labels {
			indices := classIndices[label]
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
	}

	validSets := make([][]int, skf.NSplits)
	// Each class starts where the previous one stopped, so small classes do
	// not all land in the first folds.
	next := 0
	for _, label := range labels {
		for _, idx := range classIndices[label] {
			validSets[next] = append(validSets[next], idx)
			next = (next + 1) % skf.NSplits
		}
	}

	for _, set := range validSets {
		sort.Ints(set)
	}
	return complete(validSets, nSamples), nil
}

func checkSize(y *mat.VecDense, nSplits int) (int, error) {
	if y == nil || y.Len() == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "split")
	}
	n := y.Len()
	if n < nSplits {
		return 0, errors.NewValidationError("NSplits", "cannot exceed the number of samples", nSplits)
	}
	return n, nil
}

// complete adds the training complement of each validation set.
func complete(validSets [][]int, nSamples int) []cv.Fold {
	folds := make([]cv.Fold, len(validSets))
	for i, valid := range validSets {
		testSet := make([]bool, nSamples)
		for _, idx := range valid {
			testSet[idx] = true
		}
		train := make([]int, 0, nSamples-len(valid))
		for j := 0; j < nSamples; j++ {
			if !testSet[j] {
				train = append(train, j)
			}
		}
		folds[i] = cv.Fold{TrainIndices: train, ValidIndices: valid}
	}
	return folds
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
