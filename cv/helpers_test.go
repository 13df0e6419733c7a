package cv

import (
	"math/rand/v2"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/config"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// tagModel is trained by tagBackend. Column 0 of every matrix it sees holds
// the row's original index, so predictions encode which fold made them.
type tagModel struct {
	tag      float64
	bestIter int
	nCols    int
}

// tagBackend makes predictions that identify the producing fold:
// pred(row) = tag*1e4 + row[0], where tag is the first validation row index.
type tagBackend struct {
	fits atomic.Int32
}

func (b *tagBackend) Fit(xTrain mat.Matrix, yTrain *mat.VecDense, xValid mat.Matrix, yValid *mat.VecDense, cfg config.Params) (Model, BestScore, error) {
	b.fits.Add(1)
	nTrain, nCols := xTrain.Dims()
	tag := xValid.At(0, 0)
	return &tagModel{tag: tag, bestIter: nTrain, nCols: nCols},
		BestScore{"valid_0": {"tag": tag}}, nil
}

func (b *tagBackend) GetBestIteration(model Model) (int, error) {
	return model.(*tagModel).bestIter, nil
}

func (b *tagBackend) Predict(model Model, x mat.Matrix) (*mat.VecDense, error) {
	m := model.(*tagModel)
	r, _ := x.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, m.tag*1e4+x.At(i, 0))
	}
	return out, nil
}

func (b *tagBackend) GetFeatureImportance(model Model) ([]float64, error) {
	m := model.(*tagModel)
	imp := make([]float64, m.nCols)
	for j := range imp {
		imp[j] = m.tag + float64(j)
	}
	return imp, nil
}

// namedBackend reports importance by name, optionally leaving out a feature
// on one fold.
type namedBackend struct {
	tagBackend
	names    []string
	skipTag  float64
	skipName string
}

func (b *namedBackend) GetNamedFeatureImportance(model Model) (map[string]float64, error) {
	m := model.(*tagModel)
	out := make(map[string]float64, len(b.names))
	for j, name := range b.names {
		if m.tag == b.skipTag && name == b.skipName {
			continue
		}
		out[name] = float64(j + 1)
	}
	return out, nil
}

// failingBackend fails Fit on the given call number.
type failingBackend struct {
	tagBackend
	failOn int32
	panics bool
}

func (b *failingBackend) Fit(xTrain mat.Matrix, yTrain *mat.VecDense, xValid mat.Matrix, yValid *mat.VecDense, cfg config.Params) (Model, BestScore, error) {
	if b.fits.Load()+1 == b.failOn {
		b.fits.Add(1)
		if b.panics {
			panic("boom")
		}
		return nil, nil, errors.New("training diverged")
	}
	return b.tagBackend.Fit(xTrain, yTrain, xValid, yValid, cfg)
}

// indexedData builds an n×cols matrix whose column 0 is the row index, with
// alternating binary labels.
func indexedData(n, cols int) (*mat.Dense, *mat.VecDense) {
	x := mat.NewDense(n, cols, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		for j := 1; j < cols; j++ {
			x.Set(i, j, float64(i*j%7))
		}
		y.SetVec(i, float64(i%2))
	}
	return x, y
}

func colNames(cols int) []string {
	names := make([]string, cols)
	for j := range names {
		names[j] = "f" + string(rune('0'+j))
	}
	return names
}

// partition shuffles 0..n-1 with seed and deals it into k validation sets;
// each fold trains on the rest. With k == 1 the single fold trains and
// validates on everything.
func partition(n, k int, seed uint64) []Fold {
	perm := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Perm(n)
	folds := make([]Fold, k)
	for i, idx := range perm {
		f := i % k
		folds[f].ValidIndices = append(folds[f].ValidIndices, idx)
	}
	for f := range folds {
		if k == 1 {
			folds[f].TrainIndices = append([]int(nil), folds[f].ValidIndices...)
			continue
		}
		inValid := make(map[int]bool, len(folds[f].ValidIndices))
		for _, idx := range folds[f].ValidIndices {
			inValid[idx] = true
		}
		for idx := 0; idx < n; idx++ {
			if !inValid[idx] {
				folds[f].TrainIndices = append(folds[f].TrainIndices, idx)
			}
		}
	}
	return folds
}
