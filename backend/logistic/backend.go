// Package logistic is a reference cv.Backend: binary logistic regression
// trained by full-batch gradient descent with early stopping on validation
// log-loss.
package logistic

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/config"
	"github.com/YuminosukeSato/boostcv/core/model"
	"github.com/YuminosukeSato/boostcv/core/parallel"
	"github.com/YuminosukeSato/boostcv/cv"
	"github.com/YuminosukeSato/boostcv/metrics"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
	"github.com/YuminosukeSato/boostcv/pkg/log"
	"github.com/YuminosukeSato/boostcv/preprocessing"
)

// Rows above this count have their gradient summed on all cores.
const parallelThreshold = 2048

// BestScore dataset and metric names.
const (
	TrainingSet   = "training"
	ValidationSet = "valid_0"
	MetricLogLoss = "binary_logloss"
)

// Backend trains logistic models. It keeps no per-fit state and is safe for
// concurrent use.
type Backend struct {
	logger log.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for verbose_eval progress lines.
func WithLogger(l log.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns a Backend.
func New(opts ...Option) *Backend {
	b := &Backend{logger: log.GetLoggerWithName("logistic")}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var (
	_ cv.Backend         = (*Backend)(nil)
	_ cv.ConfigValidator = (*Backend)(nil)
)

// ValidateConfig implements cv.ConfigValidator.
func (b *Backend) ValidateConfig(cfg config.Params) error {
	_, err := ParseParams(cfg)
	return err
}

// Fit implements cv.Backend.
func (b *Backend) Fit(xTrain mat.Matrix, yTrain *mat.VecDense, xValid mat.Matrix, yValid *mat.VecDense, cfg config.Params) (cv.Model, cv.BestScore, error) {
	p, err := ParseParams(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := checkXY("logistic.Fit", xTrain, yTrain); err != nil {
		return nil, nil, err
	}
	if err := checkXY("logistic.Fit", xValid, yValid); err != nil {
		return nil, nil, err
	}
	nSamples, nFeatures := xTrain.Dims()
	if _, validCols := xValid.Dims(); validCols != nFeatures {
		return nil, nil, errors.NewDimensionError("logistic.Fit", nFeatures, validCols, 1)
	}

	scaler := preprocessing.NewStandardScaler()
	xs, err := scaler.FitTransform(xTrain)
	if err != nil {
		return nil, nil, err
	}
	vs, err := scaler.Transform(xValid)
	if err != nil {
		return nil, nil, err
	}

	coef := make([]float64, nFeatures)
	var intercept float64
	bestCoef := make([]float64, nFeatures)
	var bestIntercept float64

	es := newEarlyStopping(p.EarlyStoppingRounds)
	var validLoss float64
	iter := 0
	stopped := false
	for iter < p.NumIterations {
		iter++

		grad := parallel.SumWithThreshold(nSamples, parallelThreshold, nFeatures+1, func(start, end int, acc []float64) {
			for i := start; i < end; i++ {
				row := xs.RawRowView(i)
				e := sigmoid(intercept+floats.Dot(coef, row)) - yTrain.AtVec(i)
				floats.AddScaled(acc[:nFeatures], e, row)
				acc[nFeatures] += e
			}
		})

		n := float64(nSamples)
		for j := range coef {
			coef[j] -= p.LearningRate * (grad[j]/n + p.LambdaL2*coef[j])
		}
		if p.FitIntercept {
			intercept -= p.LearningRate * grad[nFeatures] / n
		}
		if err := errors.CheckNumericalStability("logistic.Fit", coef, iter); err != nil {
			return nil, nil, err
		}
		if err := errors.CheckNumericalStability("logistic.Fit", []float64{intercept}, iter); err != nil {
			return nil, nil, err
		}

		if validLoss, err = meanLogLoss(vs, yValid, coef, intercept); err != nil {
			return nil, nil, err
		}
		improved, stop := es.Update(iter, validLoss)
		if improved || !es.Enabled {
			copy(bestCoef, coef)
			bestIntercept = intercept
		}
		if p.VerboseEval > 0 && iter%p.VerboseEval == 0 {
			b.logger.Info("training progress",
				log.IterationKey, iter,
				log.LossKey, validLoss,
				log.LearningRateKey, p.LearningRate,
				log.RegularizationKey, p.LambdaL2,
			)
		}
		if stop {
			stopped = true
			break
		}
	}
	if es.Enabled && !stopped {
		errors.Warn(errors.NewConvergenceWarning("logistic", iter,
			"validation loss was still improving; consider raising num_iterations"))
	}

	bestIter := iter
	if es.Enabled {
		bestIter = es.BestIteration
		validLoss = es.BestScore
	}

	trainLoss, err := meanLogLoss(xs, yTrain, bestCoef, bestIntercept)
	if err != nil {
		return nil, nil, err
	}

	state := model.NewStateManager()
	state.SetFitted(nFeatures, nSamples)
	m := &Model{
		State:         state,
		Coef:          bestCoef,
		Intercept:     bestIntercept,
		Mean:          scaler.Mean,
		Scale:         scaler.Scale,
		BestIteration: bestIter,
		TrainLoss:     trainLoss,
		ValidLoss:     validLoss,
	}

	score := cv.BestScore{
		TrainingSet:   {MetricLogLoss: m.TrainLoss},
		ValidationSet: {MetricLogLoss: m.ValidLoss},
	}
	return m, score, nil
}

// GetBestIteration implements cv.Backend.
func (b *Backend) GetBestIteration(m cv.Model) (int, error) {
	lm, err := asModel(m, "GetBestIteration")
	if err != nil {
		return 0, err
	}
	return lm.BestIteration, nil
}

// Predict implements cv.Backend. Predictions are probabilities.
func (b *Backend) Predict(m cv.Model, x mat.Matrix) (*mat.VecDense, error) {
	lm, err := asModel(m, "Predict")
	if err != nil {
		return nil, err
	}
	return lm.PredictProba(x)
}

// GetFeatureImportance implements cv.Backend.
func (b *Backend) GetFeatureImportance(m cv.Model) ([]float64, error) {
	lm, err := asModel(m, "GetFeatureImportance")
	if err != nil {
		return nil, err
	}
	return lm.Importance()
}

func asModel(m cv.Model, method string) (*Model, error) {
	lm, ok := m.(*Model)
	if !ok || lm == nil {
		return nil, errors.NewValueError("logistic."+method, fmt.Sprintf("unexpected model type %T", m))
	}
	return lm, nil
}

func checkXY(op string, x mat.Matrix, y *mat.VecDense) error {
	if x == nil || y == nil {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if y.Len() != rows {
		return errors.NewDimensionError(op, rows, y.Len(), 0)
	}
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValidationError("y", "labels must be 0 or 1", v)
		}
	}
	return nil
}

// meanLogLoss scores standardised rows xs with metrics.BinaryLogLoss.
func meanLogLoss(xs *mat.Dense, y *mat.VecDense, coef []float64, intercept float64) (float64, error) {
	rows, _ := xs.Dims()
	p := mat.NewVecDense(rows, nil)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			p.SetVec(i, sigmoid(intercept+floats.Dot(coef, xs.RawRowView(i))))
		}
	})
	return metrics.BinaryLogLoss(y, p)
}
