package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

func TestReduceImportance(t *testing.T) {
	tests := []struct {
		name        string
		columns     []map[string]float64
		lenient     bool
		wantMean    map[string]float64
		wantDropped []string
		wantErr     bool
	}{
		{
			name:     "no folds",
			wantMean: map[string]float64{},
		},
		{
			name: "identical key sets",
			columns: []map[string]float64{
				{"a": 1, "b": 4},
				{"a": 3, "b": 0},
			},
			wantMean: map[string]float64{"a": 2, "b": 2},
		},
		{
			name: "divergent strict",
			columns: []map[string]float64{
				{"a": 1, "b": 4},
				{"a": 3, "c": 0},
			},
			wantErr: true,
		},
		{
			name: "divergent lenient keeps intersection",
			columns: []map[string]float64{
				{"a": 1, "b": 4, "c": 1},
				{"a": 3, "c": 5},
				{"a": 2, "c": 3, "d": 9},
			},
			lenient:     true,
			wantMean:    map[string]float64{"a": 2, "c": 3},
			wantDropped: []string{"b", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, dropped, err := reduceImportance(tt.columns, tt.lenient)
			if tt.wantErr {
				require.Error(t, err)
				var mm *errors.FeatureMismatchError
				require.True(t, errors.As(err, &mm))
				assert.Equal(t, 2, mm.Fold)
				assert.Equal(t, []string{"b"}, mm.Missing)
				assert.Equal(t, []string{"c"}, mm.Extra)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMean, mean)
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}

func TestRankImportanceBreaksTiesByName(t *testing.T) {
	got := rankImportance(map[string]float64{"b": 1, "a": 1, "c": 2})
	assert.Equal(t, ImportanceRanking{{"c", 2}, {"a", 1}, {"b", 1}}, got)
}
