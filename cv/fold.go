package cv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Fold is one train/validation split over the rows of the training matrix.
type Fold struct {
	TrainIndices []int
	ValidIndices []int
}

// validateFolds checks every index against [0, n). It does not require the
// validation sets to partition the rows.
func validateFolds(folds []Fold, n int) error {
	if len(folds) == 0 {
		return errors.Wrap(errors.ErrNoFolds, "CV")
	}
	for i, f := range folds {
		if len(f.TrainIndices) == 0 {
			return errors.NewValidationError(fmt.Sprintf("folds[%d].TrainIndices", i), "must not be empty", 0)
		}
		if len(f.ValidIndices) == 0 {
			return errors.NewValidationError(fmt.Sprintf("folds[%d].ValidIndices", i), "must not be empty", 0)
		}
		if err := checkRange(i+1, "train", f.TrainIndices, n); err != nil {
			return err
		}
		if err := checkRange(i+1, "valid", f.ValidIndices, n); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(fold int, set string, indices []int, n int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return errors.NewFoldIndexError(fold, set, idx, n)
		}
	}
	return nil
}

// takeRows copies the given rows of x, keeping the order of indices.
func takeRows(x mat.Matrix, indices []int) *mat.Dense {
	_, cols := x.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	row := make([]float64, cols)
	for i, idx := range indices {
		out.SetRow(i, mat.Row(row, idx, x))
	}
	return out
}

// takeElems copies the given elements of y, keeping the order of indices.
func takeElems(y *mat.VecDense, indices []int) *mat.VecDense {
	out := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		out.SetVec(i, y.AtVec(idx))
	}
	return out
}
