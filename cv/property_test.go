package cv

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
	"github.com/YuminosukeSato/boostcv/pkg/log"
)

func propertyParams() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return parameters
}

func runTagged(t *testing.T, n, k int, seed uint64, parallelism int) (*Result, []Fold, *mat.Dense) {
	t.Helper()
	x, y := indexedData(n, 3)
	xTest, _ := indexedData(n/2+1, 3)
	folds := partition(n, k, seed)
	o := New(&tagBackend{}, WithLogger(log.NewNopLogger()), WithParallelism(parallelism))
	res, err := o.CV(context.Background(), y, x, xTest, colNames(3), folds, nil)
	if err != nil {
		t.Logf("CV(n=%d, k=%d, seed=%d): %v", n, k, seed, err)
		return nil, nil, nil
	}
	return res, folds, xTest
}

// TestOOFWrittenOnceByOwningFold_PropertyBased checks that, for any
// partition, each out-of-fold slot holds the prediction of the one fold whose
// validation set contains it.
func TestOOFWrittenOnceByOwningFold_PropertyBased(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	properties := gopter.NewProperties(propertyParams())

	properties.Property("every OOF slot comes from its owning fold", prop.ForAll(
		func(n, k int, seed uint64) bool {
			if k > n {
				k = n
			}
			res, folds, _ := runTagged(t, n, k, seed, 1)
			if res == nil || res.OOFPreds.Len() != n {
				return false
			}
			owner := make([]int, n)
			for i := range owner {
				owner[i] = -1
			}
			for f, fold := range folds {
				for _, idx := range fold.ValidIndices {
					if owner[idx] != -1 {
						return false
					}
					owner[idx] = f
				}
			}
			for idx := 0; idx < n; idx++ {
				tag := float64(folds[owner[idx]].ValidIndices[0])
				if res.OOFPreds.AtVec(idx) != tag*1e4+float64(idx) {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 60),
		gen.IntRange(1, 8),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestTestPredictionsAreFoldMean_PropertyBased checks that the test vector is
// the elementwise mean of per-fold test predictions.
func TestTestPredictionsAreFoldMean_PropertyBased(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	properties := gopter.NewProperties(propertyParams())

	properties.Property("test predictions equal the per-fold mean", prop.ForAll(
		func(n, k int, seed uint64) bool {
			if k > n {
				k = n
			}
			res, folds, xTest := runTagged(t, n, k, seed, 1)
			if res == nil {
				return false
			}
			rows, _ := xTest.Dims()
			if res.TestPreds.Len() != rows {
				return false
			}
			var meanTag float64
			for _, f := range folds {
				meanTag += float64(f.ValidIndices[0])
			}
			meanTag /= float64(len(folds))
			for i := 0; i < rows; i++ {
				want := meanTag*1e4 + xTest.At(i, 0)
				if math.Abs(res.TestPreds.AtVec(i)-want) > 1e-6*math.Max(1, math.Abs(want)) {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 60),
		gen.IntRange(1, 8),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestBestIterationIsArithmeticMean_PropertyBased checks that best iteration
// is an unweighted mean even when fold sizes differ.
func TestBestIterationIsArithmeticMean_PropertyBased(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	properties := gopter.NewProperties(propertyParams())

	properties.Property("best iteration is the plain mean", prop.ForAll(
		func(n, k int, seed uint64) bool {
			if k > n {
				k = n
			}
			res, folds, _ := runTagged(t, n, k, seed, 1)
			if res == nil {
				return false
			}
			var want float64
			for _, f := range folds {
				want += float64(len(f.TrainIndices))
			}
			want /= float64(len(folds))
			return math.Abs(res.Report.BestIteration-want) < 1e-9
		},
		gen.IntRange(2, 60),
		gen.IntRange(1, 8),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestParallelMatchesSequential_PropertyBased checks that aggregates do not
// depend on how many folds run at once.
func TestParallelMatchesSequential_PropertyBased(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	properties := gopter.NewProperties(propertyParams())

	properties.Property("parallel run equals sequential run", prop.ForAll(
		func(n, k, parallelism int, seed uint64) bool {
			if k > n {
				k = n
			}
			seq, _, _ := runTagged(t, n, k, seed, 1)
			par, _, _ := runTagged(t, n, k, seed, parallelism)
			if seq == nil || par == nil {
				return false
			}
			return mat.Equal(seq.OOFPreds, par.OOFPreds) &&
				mat.Equal(seq.TestPreds, par.TestPreds) &&
				seq.Report.BestIteration == par.Report.BestIteration &&
				len(seq.Report.CVScore) == len(par.Report.CVScore) &&
				seq.Report.CVScore[FoldKey(1)]["valid_0"]["tag"] == par.Report.CVScore[FoldKey(1)]["valid_0"]["tag"]
		},
		gen.IntRange(2, 60),
		gen.IntRange(1, 8),
		gen.IntRange(2, 6),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
