// Package metricstest provides brute-force metric implementations for
// checking the optimised ones in tests.
package metricstest

// ReferenceAUC は全ペア比較による素朴なAUC（同値は0.5として数える）。
// O(n_pos * n_neg) なので小さな入力専用。片方のクラスしかない場合は NaN を返す。
func ReferenceAUC(yTrue, yPred []float64) float64 {
	var pairs, wins float64
	for i := range yTrue {
		if yTrue[i] != 1 {
			continue
		}
		for j := range yTrue {
			if yTrue[j] != 0 {
				continue
			}
			pairs++
			switch {
			case yPred[i] > yPred[j]:
				wins++
			case yPred[i] == yPred[j]:
				wins += 0.5
			}
		}
	}
	return wins / pairs
}
