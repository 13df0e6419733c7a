package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// logLossEps はlog(0)を避けるためのクリッピング幅
const logLossEps = 1e-15

// AUC はROC曲線下面積（Area Under the ROC Curve）を計算する。
//
// Mann-Whitney U統計量による順位ベースの計算で、同値の予測には平均順位を割り当てる。
// yTrue は 0/1 の二値ラベルでなければならない。
// 片方のクラスしか存在しない場合は定義できないため、警告を出して 0.5 を返す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("AUC", yTrue); err != nil {
		return 0, err
	}

	// 予測値の昇順に並べ替える
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return yPred.AtVec(order[a]) < yPred.AtVec(order[b])
	})

	// 同値グループに平均順位を割り当てながら、陽性の順位和を求める
	var rankSumPos float64
	var nPos int
	for i := 0; i < n; {
		j := i
		for j+1 < n && yPred.AtVec(order[j+1]) == yPred.AtVec(order[i]) {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(order[k]) == 1 {
				rankSumPos += avgRank
				nPos++
			}
		}
		i = j + 1
	}

	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	// U = R_pos - n_pos(n_pos+1)/2, AUC = U / (n_pos * n_neg)
	u := rankSumPos - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg)), nil
}

// BinaryLogLoss は二値分類の対数損失を計算する。
// 予測値は [eps, 1-eps] にクリップされる。
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), logLossEps, 1-logLossEps)
		if yTrue.AtVec(i) == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(n), nil
}

// checkPair は入力検証を行い、要素数を返す。
// NaN/Inf を含む予測値は順位付けできないためエラーとする。
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	for i := 0; i < n; i++ {
		if v := yPred.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.NewValueError(op, fmt.Sprintf("prediction %d is not finite: %v", i, v))
		}
	}
	return n, nil
}

// checkBinary はラベルが 0/1 のみで構成されているか検証する
func checkBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return nil
}
