package cv

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/config"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

// Model is an opaque trained model handle owned by a Backend.
type Model interface{}

// BestScore is a backend-defined validation summary, keyed by dataset name
// and then metric name, e.g. {"valid_0": {"binary_logloss": 0.31}}.
type BestScore map[string]map[string]float64

// Backend trains and queries one model per fold.
//
// Implementations must be safe for concurrent use when the orchestrator runs
// with parallelism greater than one.
type Backend interface {
	// Fit trains a model on the training subset, using the validation subset
	// for early stopping and for the returned BestScore.
	Fit(xTrain mat.Matrix, yTrain *mat.VecDense, xValid mat.Matrix, yValid *mat.VecDense, cfg config.Params) (Model, BestScore, error)

	// GetBestIteration returns the number of boosting rounds actually used.
	GetBestIteration(model Model) (int, error)

	// Predict returns one prediction per row of x.
	Predict(model Model, x mat.Matrix) (*mat.VecDense, error)

	// GetFeatureImportance returns one value per feature, in the column order
	// of the training matrix.
	GetFeatureImportance(model Model) ([]float64, error)
}

// ConfigValidator is implemented by backends that check their options.
// CV calls it once before any fold is trained.
type ConfigValidator interface {
	ValidateConfig(cfg config.Params) error
}

// NamedImportancer is implemented by backends whose feature set may differ
// between folds. When present it is used instead of GetFeatureImportance.
type NamedImportancer interface {
	GetNamedFeatureImportance(model Model) (map[string]float64, error)
}
