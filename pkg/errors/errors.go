// Package errors はプロジェクト全体のエラーハンドリングを提供します。
// データパイプラインの各段階（カタログ走査、設定検証、リサンプリング、
// バッチ反復）に対応する構造化されたエラー型を定義します。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	データパイプライン特有のエラー型
//
// ===========================================================================

// CatalogError はデータセットのディレクトリ構造が不正な場合のエラーです。
// 例えば、ルートにクラスディレクトリが存在しない、あるいは指定された
// 分割（split）にサンプルファイルが一つもない場合など。
type CatalogError struct {
	Root   string
	Split  string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Split != "" {
		return fmt.Sprintf("bios2net: catalog scan of %s (split %q): %s", e.Root, e.Split, e.Reason)
	}
	return fmt.Sprintf("bios2net: catalog scan of %s: %s", e.Root, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *CatalogError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("root", e.Root).
		Str("split", e.Split).
		Str("reason", e.Reason).
		Str("type", "CatalogError")
}

// NewCatalogError は新しいCatalogErrorを作成し、スタックトレースを付与します。
func NewCatalogError(root, split, reason string) error {
	err := &CatalogError{Root: root, Split: split, Reason: reason}
	return errors.WithStack(err)
}

// ConfigError はパイプライン構築時のパラメータ検証に失敗した場合のエラーです。
// 省略範囲リストの長さが奇数、カテゴリカル展開のインデックス/サイズの
// リスト長が不一致、といった構成ミスは構築時に即座に検出されます。
type ConfigError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bios2net: invalid configuration for %q: %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigError")
}

// NewConfigError は新しいConfigErrorを作成し、スタックトレースを付与します。
func NewConfigError(param, reason string, value interface{}) error {
	err := &ConfigError{Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ResampleError は点群のリサンプリングが不可能な場合のエラーです。
// 点数ゼロのサンプルからは固定点数Kを選択できません。
type ResampleError struct {
	Op     string
	Points int
	Target int
}

func (e *ResampleError) Error() string {
	return fmt.Sprintf("bios2net: %s: cannot resample %d points to %d", e.Op, e.Points, e.Target)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ResampleError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("points", e.Points).
		Int("target", e.Target).
		Str("type", "ResampleError")
}

// NewResampleError は新しいResampleErrorを作成し、スタックトレースを付与します。
func NewResampleError(op string, points, target int) error {
	err := &ResampleError{Op: op, Points: points, Target: target}
	return errors.WithStack(err)
}

// IterationError はエポック終了後に `Reset` を挟まずに次のバッチを
// 要求した場合のエラーです。これは呼び出し側のプログラミングエラーであり、
// 回復可能な実行時条件ではありません。
type IterationError struct {
	BatchIndex int
	NumBatches int
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("bios2net: batch %d requested but epoch has only %d batches. Call Reset() before the next epoch",
		e.BatchIndex, e.NumBatches)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IterationError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("batch_index", e.BatchIndex).
		Int("num_batches", e.NumBatches).
		Str("type", "IterationError")
}

// NewIterationError は新しいIterationErrorを作成し、スタックトレースを付与します。
func NewIterationError(batchIndex, numBatches int) error {
	err := &IterationError{BatchIndex: batchIndex, NumBatches: numBatches}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	汎用的なエラー型
//
// ===========================================================================

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/channels
}

func (e *DimensionError) Error() string {
	axisName := "channels"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("bios2net: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "channels"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bios2net: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
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
