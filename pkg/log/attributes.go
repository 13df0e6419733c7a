package log

// Model and Operation Context
const (
	// BackendKey identifies the training backend behind the orchestrator.
	// Examples: "logistic", "lightgbm", "catboost"
	BackendKey = "model.backend"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "cv"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"

	// RunIDKey identifies one CV run, set by the CLI.
	RunIDKey = "run.id"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TrainSamplesKey is the row count of a fold's training subset.
	TrainSamplesKey = "data.train_samples"

	// ValidSamplesKey is the row count of a fold's validation subset.
	ValidSamplesKey = "data.valid_samples"

	// TestSamplesKey is the row count of the test set.
	TestSamplesKey = "data.test_samples"
)

// Cross-validation Context
const (
	// FoldKey is the 1-indexed fold number.
	FoldKey = "cv.fold"

	// FoldsKey is the total number of folds in the run.
	FoldsKey = "cv.folds"

	// ParallelismKey is the number of folds allowed to train at once.
	ParallelismKey = "cv.parallelism"

	// UnsetSlotsKey counts out-of-fold slots no fold wrote.
	UnsetSlotsKey = "cv.oof_unset"

	// OverwrittenSlotsKey counts out-of-fold slots written by more than one fold.
	OverwrittenSlotsKey = "cv.oof_overwritten"

	// DroppedFeaturesKey lists features removed by the importance inner join.
	DroppedFeaturesKey = "cv.dropped_features"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AUCKey records ROC AUC.
	AUCKey = "metrics.auc"

	// LossKey records loss value during training or evaluation.
	LossKey = "metrics.loss"

	// IterationKey records the current iteration number during iterative processes.
	IterationKey = "training.iteration"

	// BestIterationKey records the iteration chosen by early stopping.
	BestIterationKey = "training.best_iteration"
)

// Error Context
const (
	// ErrorKey holds the error value.
	ErrorKey = "error"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically from cockroachdb/errors safe details.
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters
const (
	// LearningRateKey records the learning rate for gradient-based algorithms.
	LearningRateKey = "hyperparams.learning_rate"

	// RegularizationKey records regularization strength.
	RegularizationKey = "hyperparams.regularization"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationCV      = "cv"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"
)
