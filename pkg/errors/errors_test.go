package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "CV.Fit",
			kind:    "fold 2",
			err:     fmt.Errorf("test error"),
			wantMsg: "boostcv: CV.Fit: fold 2: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "boostcv: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			assert.Contains(t, formatted, "errors_test.go")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("CV", 100, 99, 0)

	want := "boostcv: CV: dimension mismatch on axis 0 (rows). Expected 100, got 99"
	assert.Equal(t, want, err.Error())

	var dimErr *DimensionError
	require.True(t, As(err, &dimErr))
	assert.Equal(t, 99, dimErr.Got)

	err = NewDimensionError("CV", 5, 4, 1)
	assert.Contains(t, err.Error(), "(features)")
}

func TestNewFoldIndexError(t *testing.T) {
	err := NewFoldIndexError(3, "valid", 120, 100)

	assert.Equal(t, "boostcv: fold 3: valid index 120 out of range [0, 100)", err.Error())

	var idxErr *FoldIndexError
	require.True(t, As(err, &idxErr))
	assert.Equal(t, 3, idxErr.Fold)
	assert.Equal(t, "valid", idxErr.Set)
}

func TestNewFeatureMismatchError(t *testing.T) {
	err := NewFeatureMismatchError(2, []string{"f3"}, []string{"f9"})

	assert.Contains(t, err.Error(), "fold 2")
	assert.Contains(t, err.Error(), "f3")
	assert.Contains(t, err.Error(), "f9")

	var mismatch *FeatureMismatchError
	require.True(t, As(err, &mismatch))
	assert.Equal(t, []string{"f3"}, mismatch.Missing)
}

func TestNewMetricError(t *testing.T) {
	cause := NewValueError("AUC", "labels must be binary (0 or 1)")
	err := NewMetricError("auc", cause)

	assert.Equal(t, "boostcv: computing auc: boostcv: AUC: labels must be binary (0 or 1)", err.Error())

	var valErr *ValueError
	assert.True(t, As(err, &valErr), "MetricError should unwrap to its cause")
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("logistic.Backend", "Predict")

	want := "boostcv: logistic.Backend: this model is not fitted yet. Call Fit() before using Predict()"
	assert.Equal(t, want, err.Error())

	var notFittedErr *NotFittedError
	assert.True(t, As(err, &notFittedErr))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.5)

	assert.Equal(t, "boostcv: validation failed for parameter 'learning_rate': must be positive (got: -0.5)", err.Error())

	var valErr *ValidationError
	assert.True(t, As(err, &valErr))
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrNoFolds, "in CV")

	assert.True(t, Is(wrapped, ErrNoFolds))
	assert.True(t, strings.Contains(wrapped.Error(), "in CV"))

	wrapped = Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Predict", 10, 5)
	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "in Predict: expected 10, got 5")
}

func TestWarn(t *testing.T) {
	t.Cleanup(func() { SetZerologWarnFunc(nil) })

	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	Warn(NewUndefinedMetricWarning("auc", "only one class present in y_true", 0.5))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Error(), "'auc' is ill-defined")

	// zerologが設定されている場合はそちらが優先される
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	SetZerologWarnFunc(func(w error) {
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().EmbedObject(m).Msg(w.Error())
			return
		}
		logger.Warn().Msg(w.Error())
	})
	Warn(NewConvergenceWarning("logistic", 1000, "validation loss still decreasing"))
	assert.Len(t, got, 1)
	assert.Contains(t, buf.String(), `"type":"ConvergenceWarning"`)
	assert.Contains(t, buf.String(), `"iterations":1000`)
}

func TestCheckNumericalStability(t *testing.T) {
	assert.NoError(t, CheckNumericalStability("fit", []float64{0, -3, 1e300}, 1))

	err := CheckNumericalStability("fit", []float64{1, math.NaN()}, 12)
	var ni *NumericalInstabilityError
	require.True(t, As(err, &ni))
	assert.Equal(t, 12, ni.Iteration)
	assert.Contains(t, err.Error(), "iteration 12")

	assert.Error(t, CheckNumericalStability("fit", []float64{math.Inf(-1)}, 0))
}

func TestClipValue(t *testing.T) {
	assert.Equal(t, 0.1, ClipValue(-2, 0.1, 0.9))
	assert.Equal(t, 0.9, ClipValue(5, 0.1, 0.9))
	assert.Equal(t, 0.5, ClipValue(0.5, 0.1, 0.9))
}
