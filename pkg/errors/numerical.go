package errors

import (
	"math"
)

// CheckValues は値列に NaN または Inf が含まれていないか検査する。
// 座標や法線に非有限値が混入したサンプルを早期に検出するために使う
func CheckValues(operation string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation, "non-finite value in input")
		}
	}
	return nil
}

// CheckMatrix は行列の全要素を検査し、非有限値があればエラーを返す
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewValueError(operation, "non-finite value in input")
			}
		}
	}
	return nil
}
