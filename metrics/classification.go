// Package metrics は点群分類の評価指標を提供する。
// 混同行列を基礎として、全体精度・クラス平均精度・適合率・再現率・
// Top-K精度を計算する。
package metrics

import (
	"sort"

	"github.com/tryptofanik/bios2net/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix は混同行列を計算する。
// 行が正解クラス、列が予測クラスに対応する numClasses×numClasses 行列を返す
func ConfusionMatrix(yTrue, yPred []int, numClasses int) (*mat.Dense, error) {
	// 入力検証
	n := len(yTrue)
	if n == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty label slice")
	}
	if len(yPred) != n {
		return nil, errors.NewDimensionError("ConfusionMatrix", n, len(yPred), 0)
	}
	if numClasses <= 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "numClasses must be positive")
	}

	cm := mat.NewDense(numClasses, numClasses, nil)
	for i := 0; i < n; i++ {
		if yTrue[i] < 0 || yTrue[i] >= numClasses {
			return nil, errors.NewValueError("ConfusionMatrix", "true label out of range")
		}
		if yPred[i] < 0 || yPred[i] >= numClasses {
			return nil, errors.NewValueError("ConfusionMatrix", "predicted label out of range")
		}
		cm.Set(yTrue[i], yPred[i], cm.At(yTrue[i], yPred[i])+1)
	}
	return cm, nil
}

// Accuracy は全体精度（正解数 / サンプル数）を計算する
func Accuracy(yTrue, yPred []int) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label slice")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}

	var correct int
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AvgClassAccuracy はクラス平均精度を計算する。
// 各クラスの再現率を求め、サンプルが存在するクラスのみで平均する。
// クラス不均衡なデータセットでは Accuracy より公平な指標となる
func AvgClassAccuracy(yTrue, yPred []int, numClasses int) (float64, error) {
	cm, err := ConfusionMatrix(yTrue, yPred, numClasses)
	if err != nil {
		return 0, err
	}

	var sum float64
	var seen int
	for c := 0; c < numClasses; c++ {
		var total, correct float64
		for j := 0; j < numClasses; j++ {
			total += cm.At(c, j)
		}
		if total == 0 {
			// サンプルのないクラスは平均から除外する
			continue
		}
		correct = cm.At(c, c)
		sum += correct / total
		seen++
	}
	if seen == 0 {
		return 0, errors.NewValueError("AvgClassAccuracy", "no class has samples")
	}
	return sum / float64(seen), nil
}

// PrecisionRecall はクラスごとの適合率と再現率を計算する。
// 予測（または正解）が一件もないクラスの適合率（再現率）は 0 とする
func PrecisionRecall(yTrue, yPred []int, numClasses int) (precision, recall []float64, err error) {
	cm, err := ConfusionMatrix(yTrue, yPred, numClasses)
	if err != nil {
		return nil, nil, err
	}

	precision = make([]float64, numClasses)
	recall = make([]float64, numClasses)
	for c := 0; c < numClasses; c++ {
		var predicted, actual float64
		for j := 0; j < numClasses; j++ {
			predicted += cm.At(j, c)
			actual += cm.At(c, j)
		}
		tp := cm.At(c, c)
		if predicted > 0 {
			precision[c] = tp / predicted
		}
		if actual > 0 {
			recall[c] = tp / actual
		}
	}
	return precision, recall, nil
}

// TopKAccuracy はTop-K精度を計算する。
// scores は (サンプル数, クラス数) のスコア行列。正解クラスのスコアが
// 上位 k 件に入っていれば正解とみなす
func TopKAccuracy(yTrue []int, scores *mat.Dense, k int) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("TopKAccuracy", "empty label slice")
	}
	rows, cols := scores.Dims()
	if rows != n {
		return 0, errors.NewDimensionError("TopKAccuracy", n, rows, 0)
	}
	if k <= 0 || k > cols {
		return 0, errors.NewValueError("TopKAccuracy", "k must be in [1, numClasses]")
	}

	var correct int
	idx := make([]int, cols)
	for i := 0; i < n; i++ {
		if yTrue[i] < 0 || yTrue[i] >= cols {
			return 0, errors.NewValueError("TopKAccuracy", "true label out of range")
		}
		for j := range idx {
			idx[j] = j
		}
		row := i
		sort.SliceStable(idx, func(a, b int) bool {
			return scores.At(row, idx[a]) > scores.At(row, idx[b])
		})
		for j := 0; j < k; j++ {
			if idx[j] == yTrue[i] {
				correct++
				break
			}
		}
	}
	return float64(correct) / float64(n), nil
}
