package metricstest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceAUC(t *testing.T) {
	assert.Equal(t, 1.0, ReferenceAUC([]float64{0, 1}, []float64{0.2, 0.8}))
	assert.Equal(t, 0.0, ReferenceAUC([]float64{0, 1}, []float64{0.8, 0.2}))
	assert.Equal(t, 0.875, ReferenceAUC([]float64{0, 1, 0, 1}, []float64{0.2, 0.2, 0.1, 0.9}))
	assert.True(t, math.IsNaN(ReferenceAUC([]float64{1, 1}, []float64{0.2, 0.8})))
}
