package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationCV)
	testLogger.Warn("warning message", UnsetSlotsKey, 3)
	testLogger.Error("error message", fmt.Errorf("test error"), FoldKey, 2)

	require.NotEmpty(t, buffer.String())
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), msg)
	}
	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrorKey, "test error"))
	assert.True(t, testLogger.ContainsField(FoldKey, 2.0))
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(BackendKey, "logistic", ComponentKey, "cv")
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	assert.True(t, testLogger.ContainsField(BackendKey, "logistic"))
	assert.True(t, testLogger.ContainsField(ComponentKey, "cv"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationFit))
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelWarn)

	testLogger.Debug("hidden debug")
	testLogger.Info("hidden info")
	testLogger.Warn("shown warn")

	assert.False(t, testLogger.ContainsMessage("hidden"))
	assert.True(t, testLogger.ContainsMessage("shown warn"))
	assert.False(t, testLogger.Enabled(context.Background(), LevelInfo))
	assert.True(t, testLogger.Enabled(context.Background(), LevelError))
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)).
		With(ComponentKey, "cv")

	logger.Debug("fold finished", FoldKey, 1, BestIterationKey, 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "fold finished", entry["message"])
	assert.Equal(t, "cv", entry[ComponentKey])
	assert.Equal(t, 1.0, entry[FoldKey])
	assert.Equal(t, 42.0, entry[BestIterationKey])
}

type detailedErr struct{ fold int }

func (e *detailedErr) Error() string { return "detailed" }

func (e *detailedErr) MarshalZerologObject(ev *zerolog.Event) { ev.Int("fold", e.fold) }

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	err := errors.Wrap(errors.WithStack(&detailedErr{fold: 4}), "fit failed")
	logger.Error("fold training failed", err, FoldKey, 4)

	out := buf.String()
	assert.Contains(t, out, `"error":"fit failed: detailed"`)
	assert.Contains(t, out, `"error.detail":{"fold":4}`)
	assert.Contains(t, out, StacktraceKey)
}

func TestZerologLoggerDropsDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	assert.NotPanics(t, func() { logger.Info("odd fields", "a", 1, "dangling") })
	assert.Contains(t, buf.String(), `"a":1`)
	assert.NotContains(t, buf.String(), "dangling")
}

func TestZerologLoggerEnabled(t *testing.T) {
	logger := NewZerologLogger(zerolog.New(nil).Level(zerolog.WarnLevel))

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelInfo)

	p.GetLoggerWithName("split").Debug("hidden")
	p.GetLoggerWithName("split").Info("visible")
	p.SetLevel(LevelDebug)
	p.GetLogger().Debug("now visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"ml.component":"split"`)
	assert.Contains(t, out, "now visible")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestGlobalProvider(t *testing.T) {
	var buf bytes.Buffer
	SetProvider(NewZerologProvider(&buf, LevelDebug))
	t.Cleanup(func() { SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelInfo)) })

	GetLoggerWithName("cv").Info("hello")
	GetLogger().Debug("unnamed")

	assert.Contains(t, buf.String(), `"ml.component":"cv"`)
	assert.Contains(t, buf.String(), "unnamed")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}
