// Package boostcv runs k-fold cross-validation for binary classifiers and
// reports out-of-fold ROC AUC, per-fold scores and mean feature importance.
//
// The orchestration lives in package cv. It trains one model per fold
// through a pluggable cv.Backend, writes each fold's validation
// predictions into its own out-of-fold slots, averages test predictions
// over folds, and joins per-fold feature importance by name.
//
// # Packages
//
//   - cv: the Orchestrator, Backend interface and Report
//   - split: KFold and StratifiedKFold fold generators
//   - backend/logistic: a gradient-descent logistic regression Backend
//   - metrics: ROC AUC, log-loss and accuracy
//   - config: backend parameter maps loaded from YAML or TOML
//   - dataset: CSV loading into gonum matrices
//   - telemetry: Prometheus fold metrics
//   - pkg/errors, pkg/log: structured errors and zerolog logging
//
// # Quick Start
//
//	folds, err := split.NewStratifiedKFold(5, true, 42).Split(y)
//	if err != nil {
//	    return err
//	}
//	orch := cv.New(logistic.New(), cv.WithParallelism(4))
//	res, err := orch.CV(ctx, y, X, XTest, names, folds, config.Params{
//	    logistic.KeyLearningRate: 0.1,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report.OOFScore)
//
// The boostcv command in cmd/boostcv wraps the same flow for CSV files.
package boostcv
