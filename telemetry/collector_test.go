package telemetry

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/boostcv/cv"
	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

func TestCollectorRecordsFolds(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveFold(cv.FoldStats{Fold: 1, Duration: 20 * time.Millisecond, BestIteration: 40})
	c.ObserveFold(cv.FoldStats{Fold: 2, Duration: 30 * time.Millisecond, BestIteration: 60})
	c.ObserveFold(cv.FoldStats{Fold: 3, Duration: time.Millisecond, Err: errors.New("diverged")})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.folds.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.folds.WithLabelValues("error")))
	assert.Equal(t, 60.0, testutil.ToFloat64(c.bestIteration.WithLabelValues("2")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.bestIteration), "failed folds report no best iteration")

	expected := `
# HELP boostcv_cv_folds_total Folds finished, by outcome.
# TYPE boostcv_cv_folds_total counter
boostcv_cv_folds_total{outcome="error"} 1
boostcv_cv_folds_total{outcome="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "boostcv_cv_folds_total"))
}

func TestCollectorDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}
