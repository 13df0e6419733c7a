package cv

import "time"

// FoldStats describes one finished fold, successful or not.
type FoldStats struct {
	Fold          int // 1-indexed
	TrainSize     int
	ValidSize     int
	Duration      time.Duration
	BestIteration int
	Err           error
}

// Observer receives a callback per finished fold. With parallelism above one
// it is called from several goroutines.
type Observer interface {
	ObserveFold(stats FoldStats)
}

type nopObserver struct{}

func (nopObserver) ObserveFold(FoldStats) {}
