package logistic

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/core/model"
	"github.com/YuminosukeSato/boostcv/core/parallel"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Model is a fitted binary logistic regression. Coefficients apply to
// standardised features; Mean and Scale hold the training-fold statistics
// used to standardise new rows. All fields survive gob encoding.
type Model struct {
	State *model.StateManager

	Coef      []float64
	Intercept float64
	Mean      []float64
	Scale     []float64

	BestIteration int
	TrainLoss     float64
	ValidLoss     float64
}

// PredictProba returns P(y=1) for each row of x.
func (m *Model) PredictProba(x mat.Matrix) (*mat.VecDense, error) {
	if err := m.State.RequireFitted("logistic.Model", "PredictProba"); err != nil {
		return nil, err
	}
	rows, cols := x.Dims()
	if nFeatures, _ := m.State.GetDimensions(); cols != nFeatures {
		return nil, errors.NewDimensionError("logistic.PredictProba", nFeatures, cols, 1)
	}

	out := mat.NewVecDense(rows, nil)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			z := m.Intercept
			for j, w := range m.Coef {
				z += w * (x.At(i, j) - m.Mean[j]) / m.Scale[j]
			}
			out.SetVec(i, sigmoid(z))
		}
	})
	return out, nil
}

// Importance returns |w_j| on the standardised scale, which equals the raw
// coefficient magnitude times the feature's standard deviation.
func (m *Model) Importance() ([]float64, error) {
	if err := m.State.RequireFitted("logistic.Model", "Importance"); err != nil {
		return nil, err
	}
	imp := make([]float64, len(m.Coef))
	for j, w := range m.Coef {
		imp[j] = math.Abs(w)
	}
	return imp, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
