package cv

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Result is everything CV produces for one run.
type Result struct {
	// Models holds one trained model per fold, in fold order.
	Models []Model
	// OOFPreds has one slot per training row.
	OOFPreds *mat.VecDense
	// TestPreds is the mean of per-fold test predictions; nil without a test set.
	TestPreds *mat.VecDense
	// FeatureImportance maps feature name to mean importance over folds.
	FeatureImportance map[string]float64
	Report            *Report
}

// Report summarises a CV run.
type Report struct {
	// OOFScore is the ROC AUC of the out-of-fold predictions; NaN when the
	// metric could not be computed.
	OOFScore float64
	// CVScore maps "cv1".."cvK" to each fold's BestScore.
	CVScore       map[string]BestScore
	NData         int
	BestIteration float64
	NFeatures     int
	// FeatureImportance is sorted by importance, highest first.
	FeatureImportance ImportanceRanking
}

// FoldKey returns the CVScore key of the 1-indexed fold n.
func FoldKey(n int) string {
	return "cv" + strconv.Itoa(n)
}

// FoldScores returns CVScore values in fold order.
func (r *Report) FoldScores() []BestScore {
	keys := make([]string, 0, len(r.CVScore))
	for k := range r.CVScore {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return foldNumber(keys[i]) < foldNumber(keys[j]) })

	out := make([]BestScore, len(keys))
	for i, k := range keys {
		out[i] = r.CVScore[k]
	}
	return out
}

func foldNumber(key string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "cv"))
	if err != nil {
		return math.MaxInt
	}
	return n
}

// EvalsResult wraps the report under the "evals_result" key.
func (r *Report) EvalsResult() map[string]*Report {
	return map[string]*Report{"evals_result": r}
}

type reportJSON struct {
	OOFScore          *float64             `json:"oof_score"`
	CVScore           map[string]BestScore `json:"cv_score"`
	NData             int                  `json:"n_data"`
	BestIteration     float64              `json:"best_iteration"`
	NFeatures         int                  `json:"n_features"`
	FeatureImportance ImportanceRanking    `json:"feature_importance"`
}

// MarshalJSON encodes a NaN OOFScore as null.
func (r Report) MarshalJSON() ([]byte, error) {
	w := reportJSON{
		CVScore:           r.CVScore,
		NData:             r.NData,
		BestIteration:     r.BestIteration,
		NFeatures:         r.NFeatures,
		FeatureImportance: r.FeatureImportance,
	}
	if !math.IsNaN(r.OOFScore) {
		score := r.OOFScore
		w.OOFScore = &score
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Report) UnmarshalJSON(data []byte) error {
	var w reportJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Report{
		OOFScore:          math.NaN(),
		CVScore:           w.CVScore,
		NData:             w.NData,
		BestIteration:     w.BestIteration,
		NFeatures:         w.NFeatures,
		FeatureImportance: w.FeatureImportance,
	}
	if w.OOFScore != nil {
		r.OOFScore = *w.OOFScore
	}
	return nil
}

// FeatureScore is one entry of an ImportanceRanking.
type FeatureScore struct {
	Feature    string
	Importance float64
}

// ImportanceRanking is an ordered feature → importance list. It encodes as a
// JSON object whose key order follows the ranking.
type ImportanceRanking []FeatureScore

// Map returns the ranking as an unordered map.
func (r ImportanceRanking) Map() map[string]float64 {
	m := make(map[string]float64, len(r))
	for _, fs := range r {
		m[fs.Feature] = fs.Importance
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (r ImportanceRanking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fs := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fs.Feature)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fs.Importance)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %q", fs.Feature)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back into a ranking, keeping key order.
func (r *ImportanceRanking) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Newf("feature_importance: expected object, got %v", tok)
	}

	out := ImportanceRanking{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, FeatureScore{Feature: keyTok.(string), Importance: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}
