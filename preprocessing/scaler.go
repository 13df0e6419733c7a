// Package preprocessing holds feature transforms fitted on a training fold
// and applied unchanged to its validation and test rows.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/boostcv/core/model"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// 標準偏差がこれ未満の列はスケール1として扱う
const minScale = 1e-8

// StandardScaler は各特徴量を平均0、標準偏差1に変換する
type StandardScaler struct {
	State *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の母標準偏差 (定数列は1)
	Scale []float64
}

// NewStandardScaler は未学習のStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	xs, err := scaler.FitTransform(xTrain)
//	vs, err := scaler.Transform(xValid)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{State: model.NewStateManager()}
}

// Fit は訓練データから列ごとの平均と標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s.Mean[j], s.Scale[j] = stat.PopMeanStdDev(col, nil)
		if s.Scale[j] < minScale {
			s.Scale[j] = 1
		}
	}

	if s.State == nil {
		s.State = model.NewStateManager()
	}
	s.State.SetFitted(c, r)
	return nil
}

// Transform は学習済みの統計量でデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.State.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.Transform", len(s.Mean), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return out, nil
}

// FitTransform は Fit の後に同じデータを Transform する
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
