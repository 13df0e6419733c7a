package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/backend/logistic"
	"github.com/YuminosukeSato/boostcv/config"
	"github.com/YuminosukeSato/boostcv/core/model"
	"github.com/YuminosukeSato/boostcv/cv"
	"github.com/YuminosukeSato/boostcv/dataset"
	"github.com/YuminosukeSato/boostcv/internal/chart"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
	"github.com/YuminosukeSato/boostcv/pkg/log"
	"github.com/YuminosukeSato/boostcv/split"
	"github.com/YuminosukeSato/boostcv/telemetry"
)

type cvOptions struct {
	train           string
	test            string
	label           string
	folds           int
	stratified      bool
	shuffle         bool
	seed            uint64
	configPath      string
	parallel        int
	out             string
	modelsDir       string
	importancePlot  string
	metricsTextfile string
}

func defaultCVOptions() cvOptions {
	return cvOptions{folds: 5, parallel: 1}
}

var cvOpts = defaultCVOptions()

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Run k-fold cross-validation on a CSV dataset",
	Long: `Runs k-fold cross-validation with the logistic backend.

The training CSV needs a header row and a binary (0/1) label column. The
optional test CSV is aligned to the training columns by name; its
predictions are the mean over fold models.

The report is written as JSON:
  {"run_id": ..., "evals_result": {...}, "test_predictions": [...]}`,
	Args: cobra.NoArgs,
	RunE: runCV,
}

func init() {
	f := cvCmd.Flags()
	f.StringVar(&cvOpts.train, "train", "", "training CSV (required)")
	f.StringVar(&cvOpts.test, "test", "", "test CSV to predict")
	f.StringVar(&cvOpts.label, "label", "", "label column in the training CSV (required)")
	f.IntVarP(&cvOpts.folds, "folds", "k", cvOpts.folds, "number of folds")
	f.BoolVar(&cvOpts.stratified, "stratified", false, "keep the class ratio in every fold")
	f.BoolVar(&cvOpts.shuffle, "shuffle", false, "shuffle rows before splitting")
	f.Uint64Var(&cvOpts.seed, "seed", 0, "shuffle seed")
	f.StringVar(&cvOpts.configPath, "config", "", "backend parameters (.yaml, .yml or .toml)")
	f.IntVar(&cvOpts.parallel, "parallel", cvOpts.parallel, "folds to train at once")
	f.StringVarP(&cvOpts.out, "out", "o", "", "report path (default stdout)")
	f.StringVar(&cvOpts.modelsDir, "models-dir", "", "directory for fold_<n>.gob models")
	f.StringVar(&cvOpts.importancePlot, "importance-plot", "", "feature importance chart path (.png, .svg, .pdf)")
	f.StringVar(&cvOpts.metricsTextfile, "metrics-textfile", "", "write Prometheus fold metrics to this file")
	_ = cvCmd.MarkFlagRequired("train")
	_ = cvCmd.MarkFlagRequired("label")
	rootCmd.AddCommand(cvCmd)
}

// cvOutput is the JSON document written by the cv command.
type cvOutput struct {
	RunID           string     `json:"run_id"`
	EvalsResult     *cv.Report `json:"evals_result"`
	TestPredictions []float64  `json:"test_predictions,omitempty"`
}

func runCV(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	runID := uuid.New().String()
	logger := log.GetLoggerWithName("cli").With(log.RunIDKey, runID)

	train, err := dataset.ReadCSVFile(cvOpts.train, cvOpts.label)
	if err != nil {
		return err
	}

	var xTest mat.Matrix
	if cvOpts.test != "" {
		test, err := dataset.ReadCSVFile(cvOpts.test, "")
		if err != nil {
			return err
		}
		aligned, err := test.Select(train.Names)
		if err != nil {
			return errors.Wrapf(err, "align %s to training columns", cvOpts.test)
		}
		xTest = aligned.X
	}

	cfg := config.Params{}
	if cvOpts.configPath != "" {
		if cfg, err = config.Load(cvOpts.configPath); err != nil {
			return err
		}
	}

	var splitter split.Splitter = split.NewKFold(cvOpts.folds, cvOpts.shuffle, cvOpts.seed)
	if cvOpts.stratified {
		splitter = split.NewStratifiedKFold(cvOpts.folds, cvOpts.shuffle, cvOpts.seed)
	}
	folds, err := splitter.Split(train.Y)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := telemetry.NewCollector(reg)
	if err != nil {
		return errors.Wrap(err, "register metrics")
	}

	backend := logistic.New(logistic.WithLogger(log.GetLoggerWithName("logistic").With(log.RunIDKey, runID)))
	orch := cv.New(backend,
		cv.WithLogger(log.GetLoggerWithName("cv").With(log.RunIDKey, runID)),
		cv.WithParallelism(cvOpts.parallel),
		cv.WithObserver(collector),
	)

	logger.Info("starting cross-validation",
		log.SamplesKey, train.Rows(),
		log.FeaturesKey, len(train.Names),
		log.FoldsKey, len(folds),
		log.ParallelismKey, cvOpts.parallel,
	)
	res, cvErr := orch.CV(cmd.Context(), train.Y, train.X, xTest, train.Names, folds, cfg)
	if res == nil {
		return cvErr
	}
	if cvErr != nil {
		// Folds trained; keep their outputs before reporting the failure.
		logger.Error("cross-validation score failed", cvErr)
	}

	if err := writeOutputs(cmd, runID, res, reg); err != nil {
		return err
	}

	logger.Info("cross-validation finished",
		log.AUCKey, res.Report.OOFScore,
		log.BestIterationKey, res.Report.BestIteration,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return cvErr
}

func writeOutputs(cmd *cobra.Command, runID string, res *cv.Result, reg *prometheus.Registry) error {
	out := cvOutput{RunID: runID, EvalsResult: res.Report}
	if res.TestPreds != nil {
		out.TestPredictions = mat.Col(nil, 0, res.TestPreds)
	}
	if err := writeReport(cmd.OutOrStdout(), cvOpts.out, out); err != nil {
		return err
	}

	if cvOpts.modelsDir != "" {
		if err := saveModels(cvOpts.modelsDir, res.Models); err != nil {
			return err
		}
	}
	if cvOpts.importancePlot != "" {
		if err := chart.SaveImportance(cvOpts.importancePlot, res.Report.FeatureImportance, 0); err != nil {
			return err
		}
	}
	if cvOpts.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cvOpts.metricsTextfile, reg); err != nil {
			return errors.Wrapf(err, "write metrics to %s", cvOpts.metricsTextfile)
		}
	}
	return nil
}

func writeReport(stdout io.Writer, path string, out cvOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}

func saveModels(dir string, models []cv.Model) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	for i, m := range models {
		path := filepath.Join(dir, fmt.Sprintf("fold_%d.gob", i+1))
		if err := model.SaveModel(m, path); err != nil {
			return err
		}
	}
	return nil
}
