// Package parallel splits row ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// chunks returns the [start, end) ranges one worker each handles.
func chunks(items int) [][2]int {
	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}
	if numWorkers < 1 {
		return nil
	}

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	ranges := make([][2]int, 0, numWorkers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// Parallelize divides the specified total number (items) according to the number of CPU cores,
// and executes the specified function (fn) in parallel for each range (start, end)
func Parallelize(items int, fn func(start, end int)) {
	var wg sync.WaitGroup
	for _, r := range chunks(items) {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(r[0], r[1])
	}
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// SumWithThreshold accumulates width-sized partial sums over [0, items).
// Each range gets its own zeroed accumulator, and the accumulators are added
// in range order, so the result does not depend on goroutine scheduling.
// Below the threshold everything runs on the calling goroutine.
func SumWithThreshold(items, threshold, width int, fn func(start, end int, acc []float64)) []float64 {
	total := make([]float64, width)
	if items <= threshold {
		if items > 0 {
			fn(0, items, total)
		}
		return total
	}

	ranges := chunks(items)
	partial := make([][]float64, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		partial[i] = make([]float64, width)
		wg.Add(1)
		go func(acc []float64, s, e int) {
			defer wg.Done()
			fn(s, e, acc)
		}(partial[i], r[0], r[1])
	}
	wg.Wait()

	for _, acc := range partial {
		for j, v := range acc {
			total[j] += v
		}
	}
	return total
}
