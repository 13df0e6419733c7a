// Package cv runs k-fold cross-validation over a pluggable training backend.
//
// The orchestrator slices the training matrix per fold, delegates fitting and
// prediction to a Backend, and aggregates:
//
//   - out-of-fold predictions, one slot per training row, written by the fold
//     whose validation set holds that row;
//   - test predictions, the unweighted mean over folds;
//   - feature importance, the per-feature mean over folds;
//   - the mean best iteration and the ROC AUC of the out-of-fold vector.
//
// Folds are supplied by the caller (see package split for KFold and
// StratifiedKFold). Backend options travel in a config.Params value the
// orchestrator never inspects.
//
// Basic usage:
//
//	orch := cv.New(logistic.New(), cv.WithParallelism(4))
//	res, err := orch.CV(ctx, y, xTrain, xTest, names, folds, params)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report.OOFScore)
package cv
