// Package errors はフォレスト構築全体のエラーハンドリングを提供します。
// 各エラー型は構造化された情報を持ち、zerologのイベントにそのまま出力できます。
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	フォレスト構築のエラー型
//
// ===========================================================================

// PreconditionError は構築開始時に木の本数がデータセットのサンプル数を超えている場合のエラーです。
// このエラーが返された場合、サンプリングも学習も一切行われていません。
type PreconditionError struct {
	Op          string
	NumTrees    int
	DatasetSize int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("forestgo: %s: the number of trees (%d) is greater than the number of training samples (%d)",
		e.Op, e.NumTrees, e.DatasetSize)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PreconditionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("num_trees", e.NumTrees).
		Int("dataset_size", e.DatasetSize).
		Str("type", "PreconditionError")
}

// NewPreconditionError は新しいPreconditionErrorを作成し、スタックトレースを付与します。
func NewPreconditionError(op string, numTrees, datasetSize int) error {
	err := &PreconditionError{Op: op, NumTrees: numTrees, DatasetSize: datasetSize}
	return errors.WithStack(err)
}

// TreeTrainingError は1本の木の学習が失敗したことを表します。
// 他の木の学習は継続されます。
type TreeTrainingError struct {
	TreeIndex int
	Err       error
}

func (e *TreeTrainingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forestgo: tree %d: training failed: %v", e.TreeIndex, e.Err)
	}
	return fmt.Sprintf("forestgo: tree %d: training failed", e.TreeIndex)
}

func (e *TreeTrainingError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TreeTrainingError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("tree_index", e.TreeIndex).
		Str("type", "TreeTrainingError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewTreeTrainingError は新しいTreeTrainingErrorを作成します。
// 集約エラーに格納されるため、スタックトレースは付与しません。
func NewTreeTrainingError(treeIndex int, err error) *TreeTrainingError {
	return &TreeTrainingError{TreeIndex: treeIndex, Err: err}
}

// AggregateBuildError は少なくとも1本の木の学習が失敗した場合に構築全体として返されるエラーです。
// フォレストには成功した木が残っている可能性があります。
type AggregateBuildError struct {
	NumTrees int
	Failures []*TreeTrainingError
}

func (e *AggregateBuildError) Error() string {
	idx := e.FailedTrees()
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("forestgo: forest build failed: %d of %d trees failed (trees: %s)",
		len(e.Failures), e.NumTrees, strings.Join(parts, ", "))
}

// FailedTrees は失敗した木のインデックスを昇順で返します。
func (e *AggregateBuildError) FailedTrees() []int {
	idx := make([]int, len(e.Failures))
	for i, f := range e.Failures {
		idx[i] = f.TreeIndex
	}
	sort.Ints(idx)
	return idx
}

// Unwrap は各木の失敗を返します。errors.Is/As で個別の原因を辿れます。
func (e *AggregateBuildError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *AggregateBuildError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("num_trees", e.NumTrees).
		Int("num_failed", len(e.Failures)).
		Ints("failed_trees", e.FailedTrees()).
		Str("type", "AggregateBuildError")
}

// NewAggregateBuildError は新しいAggregateBuildErrorを作成し、スタックトレースを付与します。
func NewAggregateBuildError(numTrees int, failures []*TreeTrainingError) error {
	err := &AggregateBuildError{NumTrees: numTrees, Failures: failures}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	入力検証のエラー型
//
// ===========================================================================

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("forestgo: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
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

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("forestgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// IndexRangeError はビューのインデックスがデータセットの範囲外を指している場合のエラーです。
type IndexRangeError struct {
	Op       string
	Position int
	Index    int
	Size     int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("forestgo: %s: index %d at position %d is out of range [0, %d)", e.Op, e.Index, e.Position, e.Size)
}

// NewIndexRangeError は新しいIndexRangeErrorを作成し、スタックトレースを付与します。
func NewIndexRangeError(op string, position, index, size int) error {
	err := &IndexRangeError{Op: op, Position: position, Index: index, Size: size}
	return errors.WithStack(err)
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
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrBuildAlreadyStarted は同じビルダーでBuildが2回呼ばれた場合のエラーです。
	// 再構築にはResetを呼び出してください。
	ErrBuildAlreadyStarted = New("forest build already started; call Reset before building again")

	// ErrNotBuilt はフォレストの構築が成功していない状態で完全なフォレストを要求した場合のエラーです。
	ErrNotBuilt = New("forest has not been built successfully")
)
