package logistic

import "math"

// earlyStopping tracks validation loss and stops after Rounds iterations
// without improvement. Lower scores are better.
type earlyStopping struct {
	Rounds          int     // Number of rounds without improvement to stop
	BestScore       float64 // Best validation score so far
	BestIteration   int     // 1-indexed iteration with best score
	RoundsNoImprove int     // Current rounds without improvement
	Enabled         bool
}

func newEarlyStopping(rounds int) *earlyStopping {
	return &earlyStopping{
		Rounds:    rounds,
		BestScore: math.Inf(1),
		Enabled:   rounds > 0,
	}
}

// Update records the score of iteration and reports whether the caller
// should snapshot the current weights as the new best, and whether training
// should stop.
func (es *earlyStopping) Update(iteration int, score float64) (improved, stop bool) {
	if score < es.BestScore {
		es.BestScore = score
		es.BestIteration = iteration
		es.RoundsNoImprove = 0
		improved = true
	} else {
		es.RoundsNoImprove++
	}
	return improved, es.Enabled && es.RoundsNoImprove >= es.Rounds
}
