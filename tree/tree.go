// Package tree はフォレストの各木を学習するCART分類木を提供します。
//
// Trainer は forest.TreeTrainer を実装し、forest.Builder から木ごとに1つずつ生成されます。
package tree

import forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"

// Params は木の成長を制御するハイパーパラメータ
type Params struct {
	// MaxDepth は木の最大深さ。0 は無制限
	MaxDepth int
	// MinSamplesSplit はノードを分割するために必要な最小サンプル数。2未満は2として扱う
	MinSamplesSplit int
	// MaxFeatures は各分割で評価する特徴量の数。0 は全特徴量
	MaxFeatures int
}

// Validate はパラメータを検証する
func (p Params) Validate() error {
	if p.MaxDepth < 0 {
		return forestErrors.NewValidationError("MaxDepth", "must not be negative", p.MaxDepth)
	}
	if p.MinSamplesSplit < 0 {
		return forestErrors.NewValidationError("MinSamplesSplit", "must not be negative", p.MinSamplesSplit)
	}
	if p.MaxFeatures < 0 {
		return forestErrors.NewValidationError("MaxFeatures", "must not be negative", p.MaxFeatures)
	}
	return nil
}

// Node は木のノード。Left と Right が nil なら葉
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node

	Class    float64 // 多数派クラス
	Samples  int
	Impurity float64
}

// IsLeaf はノードが葉かどうかを返す
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree は学習済みの分類木
type Tree struct {
	Root        *Node
	NumFeatures int
	Classes     []float64
}

// Predict は特徴量ベクトルが到達する葉の多数派クラスを返す
func (t *Tree) Predict(features []float64) (float64, error) {
	if t == nil || t.Root == nil {
		return 0, forestErrors.WithStack(forestErrors.ErrNotBuilt)
	}
	if len(features) != t.NumFeatures {
		return 0, forestErrors.NewDimensionError("Tree.Predict", t.NumFeatures, len(features), 1)
	}

	n := t.Root
	for !n.IsLeaf() {
		// 閾値以下は左、それ以外は右
		if features[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Class, nil
}

// Depth は木の深さを返す。根だけの木は0
func (t *Tree) Depth() int {
	if t == nil || t.Root == nil {
		return 0
	}
	return depth(t.Root)
}

func depth(n *Node) int {
	if n.IsLeaf() {
		return 0
	}
	return 1 + max(depth(n.Left), depth(n.Right))
}

// NumNodes はノード数を返す
func (t *Tree) NumNodes() int {
	if t == nil || t.Root == nil {
		return 0
	}
	return countNodes(t.Root)
}

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + countNodes(n.Left) + countNodes(n.Right)
}
