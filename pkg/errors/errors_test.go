package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewCatalogError(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		split    string
		reason   string
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with split",
			root:     "/data/folds",
			split:    "train",
			reason:   "class a.1 has no samples",
			wantMsg:  `bios2net: catalog scan of /data/folds (split "train"): class a.1 has no samples`,
			hasStack: true,
		},
		{
			name:     "without split",
			root:     "/data/folds",
			split:    "",
			reason:   "no class directories found",
			wantMsg:  "bios2net: catalog scan of /data/folds: no class directories found",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCatalogError(tt.root, tt.split, tt.reason)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// CatalogError型にキャスト可能か確認
			var catErr *CatalogError
			if !As(err, &catErr) {
				t.Error("Error should be castable to *CatalogError")
			}
		})
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("omit_parameter_ranges", "length must be even", []int{3})

	// 基本的なエラーメッセージの確認
	want := `bios2net: invalid configuration for "omit_parameter_ranges": length must be even (got: [3])`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// ConfigError型にキャスト可能か確認
	var cfgErr *ConfigError
	if !As(err, &cfgErr) {
		t.Error("Error should be castable to *ConfigError")
	}
}

func TestNewResampleError(t *testing.T) {
	err := NewResampleError("Resample", 0, 1024)

	want := "bios2net: Resample: cannot resample 0 points to 1024"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var resErr *ResampleError
	if !As(err, &resErr) {
		t.Error("Error should be castable to *ResampleError")
	}
	if resErr.Points != 0 || resErr.Target != 1024 {
		t.Errorf("unexpected fields: %+v", resErr)
	}
}

func TestNewIterationError(t *testing.T) {
	err := NewIterationError(4, 4)

	want := "bios2net: batch 4 requested but epoch has only 4 batches. Call Reset() before the next epoch"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var itErr *IterationError
	if !As(err, &itErr) {
		t.Error("Error should be castable to *IterationError")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Stack", 9, 6, 1)

	// 基本的なエラーメッセージの確認
	want := "bios2net: Stack: dimension mismatch on axis 1 (channels). Expected 9, got 6"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := New("decode failed")

	// ラップ
	wrapped := Wrap(baseErr, "in Dataset.NextBatch")

	// Is関数でチェック
	if !Is(wrapped, baseErr) {
		t.Error("Expected Is(wrapped, baseErr) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in Dataset.NextBatch") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := New("empty point set")

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: sample %d", "Resample", 7)

	if !Is(wrapped, baseErr) {
		t.Error("Expected Is(wrapped, baseErr) to be true")
	}

	expectedMsg := "in Resample: sample 7"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := Wrap(err2, "wrapped twice")

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
