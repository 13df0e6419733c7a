// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// cockroachdb/errors をベースに、交差検証ハーネスで使う構造化されたエラー型を定義します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("boostcv-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ConvergenceWarning は最適化アルゴリズムが収束しなかった場合に発生する警告です。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing num_iterations or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning は新しいConvergenceWarningを作成します。
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、AUCを計算する際にラベルが一つのクラスしか含まない場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("boostcv: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("boostcv: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("boostcv: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("boostcv: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はバックエンドの学習・推論に関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("boostcv: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("boostcv: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	交差検証特有のエラー型
//
// ===========================================================================

// FoldIndexError はフォールドのインデックスが訓練データの範囲外の場合のエラーです。
// 呼び出し側のバグを示すため、学習開始前に返されます。
type FoldIndexError struct {
	Fold  int    // 1始まりのフォールド番号
	Set   string // "train" または "valid"
	Index int
	Bound int // 有効範囲は [0, Bound)
}

func (e *FoldIndexError) Error() string {
	return fmt.Sprintf("boostcv: fold %d: %s index %d out of range [0, %d)", e.Fold, e.Set, e.Index, e.Bound)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FoldIndexError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("fold", e.Fold).
		Str("set", e.Set).
		Int("index", e.Index).
		Int("bound", e.Bound).
		Str("type", "FoldIndexError")
}

// NewFoldIndexError は新しいFoldIndexErrorを作成し、スタックトレースを付与します。
func NewFoldIndexError(fold int, set string, index, bound int) error {
	err := &FoldIndexError{Fold: fold, Set: set, Index: index, Bound: bound}
	return errors.WithStack(err)
}

// FeatureMismatchError はフォールド間で特徴量重要度の特徴量集合が一致しない場合のエラーです。
type FeatureMismatchError struct {
	Fold    int      // 1始まりのフォールド番号
	Missing []string // 他のフォールドにあってこのフォールドにない特徴量
	Extra   []string // このフォールドにだけある特徴量
}

func (e *FeatureMismatchError) Error() string {
	return fmt.Sprintf("boostcv: fold %d: feature importance set diverges from other folds (missing: %v, extra: %v)", e.Fold, e.Missing, e.Extra)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FeatureMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("fold", e.Fold).
		Strs("missing", e.Missing).
		Strs("extra", e.Extra).
		Str("type", "FeatureMismatchError")
}

// NewFeatureMismatchError は新しいFeatureMismatchErrorを作成し、スタックトレースを付与します。
func NewFeatureMismatchError(fold int, missing, extra []string) error {
	err := &FeatureMismatchError{Fold: fold, Missing: missing, Extra: extra}
	return errors.WithStack(err)
}

// MetricError は全フォールドの学習後、評価指標の計算に失敗した場合のエラーです。
type MetricError struct {
	Metric string
	Err    error
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("boostcv: computing %s: %v", e.Metric, e.Err)
}

func (e *MetricError) Unwrap() error {
	return e.Err
}

// NewMetricError は新しいMetricErrorを作成し、スタックトレースを付与します。
func NewMetricError(metric string, err error) error {
	return errors.WithStack(&MetricError{Metric: metric, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	数値計算のエラー型
//
// ===========================================================================

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Inf などを検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "gradient_update", "predict"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("boostcv: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrNoFolds はフォールドが一つも渡されなかった場合のエラーです。
	ErrNoFolds = New("no folds")
)
