package cv

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/config"
	"github.com/YuminosukeSato/boostcv/metrics"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
	"github.com/YuminosukeSato/boostcv/pkg/log"
)

const tracerName = "github.com/YuminosukeSato/boostcv/cv"

// Orchestrator runs K-fold cross-validation over a Backend. It holds no
// per-run state, so one Orchestrator may serve concurrent CV calls.
type Orchestrator struct {
	backend     Backend
	logger      log.Logger
	observer    Observer
	parallelism int
	lenient     bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default is the package-level logger
// named "cv".
func WithLogger(l log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParallelism lets up to n folds train at once. Values below one mean
// sequential execution.
func WithParallelism(n int) Option {
	return func(o *Orchestrator) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}

// WithLenientFeatureJoin keeps only features reported by every fold instead
// of failing when fold feature sets differ.
func WithLenientFeatureJoin() Option {
	return func(o *Orchestrator) { o.lenient = true }
}

// WithObserver registers a per-fold callback.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// New returns an Orchestrator over backend.
func New(backend Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:     backend,
		logger:      log.GetLoggerWithName("cv"),
		observer:    nopObserver{},
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// foldOutcome is what one fold contributes to the reduction.
type foldOutcome struct {
	model      Model
	bestScore  BestScore
	bestIter   int
	validPred  *mat.VecDense
	testPred   *mat.VecDense
	importance map[string]float64
}

// CV trains one model per fold and aggregates out-of-fold predictions,
// averaged test predictions, feature importance and a summary report.
//
// xTest may be nil; a nil *mat.Dense stored in xTest counts as nil too.
// When every fold trains but the AUC cannot be computed, including when
// yTrain holds a single class, the populated Result is returned along with
// a MetricError and Report.OOFScore is NaN.
func (o *Orchestrator) CV(
	ctx context.Context,
	yTrain *mat.VecDense,
	xTrain, xTest mat.Matrix,
	featureNames []string,
	folds []Fold,
	cfg config.Params,
) (res *Result, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "cv.CV")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	xTrain, xTest = untypedNil(xTrain), untypedNil(xTest)
	if err := o.validate(yTrain, xTrain, xTest, featureNames, folds, cfg); err != nil {
		return nil, err
	}

	n, nFeatures := xTrain.Dims()
	k := len(folds)
	span.SetAttributes(
		attribute.Int(log.FoldsKey, k),
		attribute.Int(log.SamplesKey, n),
		attribute.Int(log.FeaturesKey, nFeatures),
	)
	o.logger.Debug("starting cross-validation",
		log.OperationKey, log.OperationCV,
		log.FoldsKey, k,
		log.SamplesKey, n,
		log.FeaturesKey, nFeatures,
		log.ParallelismKey, o.parallelism,
	)

	outcomes := make([]foldOutcome, k)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i := range folds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrapf(err, "CV fold %d", i+1)
			}
			out, err := o.runFold(gctx, i, folds[i], yTrain, xTrain, xTest, featureNames, cfg)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return o.reduce(yTrain, xTest, featureNames, folds, outcomes)
}

func (o *Orchestrator) validate(
	yTrain *mat.VecDense,
	xTrain, xTest mat.Matrix,
	featureNames []string,
	folds []Fold,
	cfg config.Params,
) error {
	if o.backend == nil {
		return errors.NewValueError("CV", "backend is nil")
	}
	if xTrain == nil || yTrain == nil {
		return errors.Wrap(errors.ErrEmptyData, "CV")
	}
	rows, cols := xTrain.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "CV")
	}
	if yTrain.Len() != rows {
		return errors.NewDimensionError("CV", rows, yTrain.Len(), 0)
	}
	if len(featureNames) != cols {
		return errors.NewDimensionError("CV", cols, len(featureNames), 1)
	}
	seen := make(map[string]struct{}, len(featureNames))
	for _, name := range featureNames {
		if _, dup := seen[name]; dup {
			return errors.NewValidationError("featureNames", "duplicate feature name", name)
		}
		seen[name] = struct{}{}
	}
	if xTest != nil {
		if _, testCols := xTest.Dims(); testCols != cols {
			return errors.NewDimensionError("CV", cols, testCols, 1)
		}
	}
	if err := validateFolds(folds, rows); err != nil {
		return err
	}
	if v, ok := o.backend.(ConfigValidator); ok {
		if err := v.ValidateConfig(cfg); err != nil {
			return errors.Wrap(err, "CV: backend config")
		}
	}
	return nil
}

func (o *Orchestrator) runFold(
	ctx context.Context,
	i int,
	fold Fold,
	yTrain *mat.VecDense,
	xTrain, xTest mat.Matrix,
	featureNames []string,
	cfg config.Params,
) (out foldOutcome, err error) {
	n := i + 1
	op := fmt.Sprintf("CV fold %d", n)
	_, span := otel.Tracer(tracerName).Start(ctx, "cv.fold",
		traceAttrs(n, len(fold.TrainIndices), len(fold.ValidIndices))...)
	start := time.Now()
	logger := o.logger.With(log.FoldKey, n)

	defer func() {
		elapsed := time.Since(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int(log.BestIterationKey, out.bestIter))
		}
		span.End()
		o.observer.ObserveFold(FoldStats{
			Fold:          n,
			TrainSize:     len(fold.TrainIndices),
			ValidSize:     len(fold.ValidIndices),
			Duration:      elapsed,
			BestIteration: out.bestIter,
			Err:           err,
		})
		if err != nil {
			logger.Debug("fold failed", err, log.DurationMsKey, elapsed.Milliseconds())
			return
		}
		logger.Debug("fold finished",
			log.BestIterationKey, out.bestIter,
			log.DurationMsKey, elapsed.Milliseconds(),
		)
	}()
	defer errors.Recover(&err, op)

	logger.Debug("fold started",
		log.TrainSamplesKey, len(fold.TrainIndices),
		log.ValidSamplesKey, len(fold.ValidIndices),
	)

	xTr := takeRows(xTrain, fold.TrainIndices)
	yTr := takeElems(yTrain, fold.TrainIndices)
	xVa := takeRows(xTrain, fold.ValidIndices)
	yVa := takeElems(yTrain, fold.ValidIndices)

	// Each fold gets its own copy so a backend may annotate it freely.
	model, bestScore, err := o.backend.Fit(xTr, yTr, xVa, yVa, cfg.Clone())
	if err != nil {
		return foldOutcome{}, errors.NewModelError("CV.Fit", fmt.Sprintf("fold %d", n), err)
	}
	out.model = model
	out.bestScore = bestScore

	if out.bestIter, err = o.backend.GetBestIteration(model); err != nil {
		return foldOutcome{}, errors.NewModelError("CV.GetBestIteration", fmt.Sprintf("fold %d", n), err)
	}

	if out.validPred, err = o.predict(model, xVa, n, "valid"); err != nil {
		return foldOutcome{}, err
	}
	if xTest != nil {
		if out.testPred, err = o.predict(model, xTest, n, "test"); err != nil {
			return foldOutcome{}, err
		}
	}

	if out.importance, err = o.importance(model, featureNames, n); err != nil {
		return foldOutcome{}, err
	}
	return out, nil
}

func (o *Orchestrator) predict(model Model, x mat.Matrix, fold int, set string) (*mat.VecDense, error) {
	pred, err := o.backend.Predict(model, x)
	if err != nil {
		return nil, errors.NewModelError("CV.Predict", fmt.Sprintf("fold %d %s", fold, set), err)
	}
	rows, _ := x.Dims()
	if pred == nil || pred.Len() != rows {
		got := 0
		if pred != nil {
			got = pred.Len()
		}
		return nil, errors.Wrapf(errors.NewDimensionError("CV.Predict", rows, got, 0), "fold %d %s", fold, set)
	}
	return pred, nil
}

func (o *Orchestrator) importance(model Model, featureNames []string, fold int) (map[string]float64, error) {
	if named, ok := o.backend.(NamedImportancer); ok {
		imp, err := named.GetNamedFeatureImportance(model)
		if err != nil {
			return nil, errors.NewModelError("CV.GetFeatureImportance", fmt.Sprintf("fold %d", fold), err)
		}
		return imp, nil
	}

	values, err := o.backend.GetFeatureImportance(model)
	if err != nil {
		return nil, errors.NewModelError("CV.GetFeatureImportance", fmt.Sprintf("fold %d", fold), err)
	}
	if len(values) != len(featureNames) {
		return nil, errors.Wrapf(
			errors.NewDimensionError("CV.GetFeatureImportance", len(featureNames), len(values), 1),
			"fold %d", fold)
	}
	imp := make(map[string]float64, len(values))
	for j, name := range featureNames {
		imp[name] = values[j]
	}
	return imp, nil
}

// reduce folds the per-fold outcomes into a Result in fold order.
func (o *Orchestrator) reduce(
	yTrain *mat.VecDense,
	xTest mat.Matrix,
	featureNames []string,
	folds []Fold,
	outcomes []foldOutcome,
) (*Result, error) {
	k := len(outcomes)
	n := yTrain.Len()
	scale := 1 / float64(k)

	oof := mat.NewVecDense(n, nil)
	written := make([]int, n)
	var test *mat.VecDense
	if xTest != nil {
		testRows, _ := xTest.Dims()
		test = mat.NewVecDense(testRows, nil)
	}

	models := make([]Model, k)
	cvScore := make(map[string]BestScore, k)
	columns := make([]map[string]float64, k)
	var bestIter float64

	for i, out := range outcomes {
		models[i] = out.model
		cvScore[FoldKey(i+1)] = out.bestScore
		columns[i] = out.importance
		bestIter += float64(out.bestIter) * scale

		for j, idx := range folds[i].ValidIndices {
			oof.SetVec(idx, out.validPred.AtVec(j))
			written[idx]++
		}
		if test != nil {
			test.AddScaledVec(test, scale, out.testPred)
		}
	}

	var unset, overwritten int
	for _, c := range written {
		switch {
		case c == 0:
			unset++
		case c > 1:
			overwritten++
		}
	}
	if unset > 0 || overwritten > 0 {
		o.logger.Warn("validation sets do not partition the training rows",
			log.UnsetSlotsKey, unset,
			log.OverwrittenSlotsKey, overwritten,
		)
	}

	mean, dropped, err := reduceImportance(columns, o.lenient)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		o.logger.Warn("dropping features missing from some folds",
			log.DroppedFeaturesKey, dropped,
		)
	}

	res := &Result{
		Models:            models,
		OOFPreds:          oof,
		TestPreds:         test,
		FeatureImportance: mean,
		Report: &Report{
			OOFScore:          math.NaN(),
			CVScore:           cvScore,
			NData:             n,
			BestIteration:     bestIter,
			NFeatures:         len(featureNames),
			FeatureImportance: rankImportance(mean),
		},
	}

	if !bothClasses(yTrain) {
		return res, errors.NewMetricError("auc",
			errors.NewValueError("CV", "only one class present in y_true, ROC AUC is undefined"))
	}
	score, err := metrics.AUC(yTrain, oof)
	if err != nil {
		return res, errors.NewMetricError("auc", err)
	}
	res.Report.OOFScore = score
	o.logger.Debug("cross-validation finished", log.AUCKey, score, log.BestIterationKey, bestIter)
	return res, nil
}

// bothClasses reports whether y holds at least two distinct values.
func bothClasses(y *mat.VecDense) bool {
	for i := 1; i < y.Len(); i++ {
		if y.AtVec(i) != y.AtVec(0) {
			return true
		}
	}
	return false
}

// untypedNil maps a nil pointer held in a mat.Matrix to an untyped nil, so
// a caller's `var d *mat.Dense` behaves like passing nil.
func untypedNil(m mat.Matrix) mat.Matrix {
	if m == nil {
		return nil
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return m
}

func traceAttrs(fold, train, valid int) []trace.SpanStartOption {
	return []trace.SpanStartOption{trace.WithAttributes(
		attribute.Int(log.FoldKey, fold),
		attribute.Int(log.TrainSamplesKey, train),
		attribute.Int(log.ValidSamplesKey, valid),
	)}
}
