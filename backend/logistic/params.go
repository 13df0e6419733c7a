package logistic

import (
	"github.com/YuminosukeSato/boostcv/config"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Recognised configuration keys.
const (
	KeyLearningRate        = "learning_rate"
	KeyNumIterations       = "num_iterations"
	KeyEarlyStoppingRounds = "early_stopping_rounds"
	KeyLambdaL2            = "lambda_l2"
	KeyFitIntercept        = "fit_intercept"
	KeyVerboseEval         = "verbose_eval"
)

var knownKeys = []string{
	KeyLearningRate,
	KeyNumIterations,
	KeyEarlyStoppingRounds,
	KeyLambdaL2,
	KeyFitIntercept,
	KeyVerboseEval,
}

// Params are the training options after defaults are applied.
type Params struct {
	LearningRate        float64
	NumIterations       int
	EarlyStoppingRounds int // 0 disables early stopping
	LambdaL2            float64
	FitIntercept        bool
	VerboseEval         int // log every N iterations, 0 disables
}

// DefaultParams returns the options used for keys absent from the config.
func DefaultParams() Params {
	return Params{
		LearningRate:        0.1,
		NumIterations:       1000,
		EarlyStoppingRounds: 50,
		LambdaL2:            0,
		FitIntercept:        true,
		VerboseEval:         0,
	}
}

// ParseParams applies cfg on top of DefaultParams and validates the result.
func ParseParams(cfg config.Params) (Params, error) {
	p := DefaultParams()
	if err := cfg.RejectUnknown(knownKeys...); err != nil {
		return p, err
	}

	var err error
	if p.LearningRate, err = cfg.Float(KeyLearningRate, p.LearningRate); err != nil {
		return p, err
	}
	if p.NumIterations, err = cfg.Int(KeyNumIterations, p.NumIterations); err != nil {
		return p, err
	}
	if p.EarlyStoppingRounds, err = cfg.Int(KeyEarlyStoppingRounds, p.EarlyStoppingRounds); err != nil {
		return p, err
	}
	if p.LambdaL2, err = cfg.Float(KeyLambdaL2, p.LambdaL2); err != nil {
		return p, err
	}
	if p.FitIntercept, err = cfg.Bool(KeyFitIntercept, p.FitIntercept); err != nil {
		return p, err
	}
	if p.VerboseEval, err = cfg.Int(KeyVerboseEval, p.VerboseEval); err != nil {
		return p, err
	}

	switch {
	case p.LearningRate <= 0:
		return p, errors.NewValidationError(KeyLearningRate, "must be positive", p.LearningRate)
	case p.NumIterations <= 0:
		return p, errors.NewValidationError(KeyNumIterations, "must be positive", p.NumIterations)
	case p.EarlyStoppingRounds < 0:
		return p, errors.NewValidationError(KeyEarlyStoppingRounds, "must be non-negative", p.EarlyStoppingRounds)
	case p.LambdaL2 < 0:
		return p, errors.NewValidationError(KeyLambdaL2, "must be non-negative", p.LambdaL2)
	case p.VerboseEval < 0:
		return p, errors.NewValidationError(KeyVerboseEval, "must be non-negative", p.VerboseEval)
	}
	return p, nil
}
