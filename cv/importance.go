package cv

import (
	"sort"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// reduceImportance averages per-fold importance columns over the features
// present in every fold. When fold key sets differ it fails with a
// FeatureMismatchError unless lenient is set, in which case the features
// missing from any fold are dropped and returned.
func reduceImportance(columns []map[string]float64, lenient bool) (mean map[string]float64, dropped []string, err error) {
	if len(columns) == 0 {
		return map[string]float64{}, nil, nil
	}

	counts := make(map[string]int)
	for _, col := range columns {
		for name := range col {
			counts[name]++
		}
	}

	for name, c := range counts {
		if c != len(columns) {
			dropped = append(dropped, name)
		}
	}
	sort.Strings(dropped)

	if len(dropped) > 0 && !lenient {
		return nil, nil, mismatchAgainstFirst(columns)
	}

	mean = make(map[string]float64, len(counts)-len(dropped))
	for name, c := range counts {
		if c != len(columns) {
			continue
		}
		var sum float64
		for _, col := range columns {
			sum += col[name]
		}
		mean[name] = sum / float64(len(columns))
	}
	return mean, dropped, nil
}

// mismatchAgainstFirst reports the first fold whose key set differs from
// fold 1.
func mismatchAgainstFirst(columns []map[string]float64) error {
	first := columns[0]
	for i := 1; i < len(columns); i++ {
		var missing, extra []string
		for name := range first {
			if _, ok := columns[i][name]; !ok {
				missing = append(missing, name)
			}
		}
		for name := range columns[i] {
			if _, ok := first[name]; !ok {
				extra = append(extra, name)
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			sort.Strings(missing)
			sort.Strings(extra)
			return errors.NewFeatureMismatchError(i+1, missing, extra)
		}
	}
	return errors.New("feature importance sets diverge")
}

// rankImportance sorts by importance descending, breaking ties by name.
func rankImportance(mean map[string]float64) ImportanceRanking {
	ranking := make(ImportanceRanking, 0, len(mean))
	for name, v := range mean {
		ranking = append(ranking, FeatureScore{Feature: name, Importance: v})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Importance != ranking[j].Importance {
			return ranking[i].Importance > ranking[j].Importance
		}
		return ranking[i].Feature < ranking[j].Feature
	})
	return ranking
}
