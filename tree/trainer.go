package tree

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/forestgo/dataset"
	"github.com/YuminosukeSato/forestgo/forest"
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
	"github.com/YuminosukeSato/forestgo/pkg/log"
	"github.com/YuminosukeSato/forestgo/random"
)

// 木ごとのシードを導出するための定数（黄金比由来）
const seedStride = 0x9E3779B97F4A7C15

// これ以下の不純度の減少は分割とみなさない
const minGain = 1e-12

// Trainer はCART分類木を1本学習する
type Trainer struct {
	params    *forest.Parameters[Params]
	treeIndex int
	src       random.Source
	logger    log.Logger
	tree      *Tree
}

// NewTrainer は treeIndex 番目の木のトレーナーを作成する。forest.TrainerFactory として使える
func NewTrainer(params *forest.Parameters[Params], treeIndex int) forest.TreeTrainer[*Tree] {
	return &Trainer{
		params:    params,
		treeIndex: treeIndex,
		src:       random.New(params.Seed + uint64(treeIndex+1)*seedStride),
		logger:    log.GetLoggerWithName("tree.trainer").With(log.TreeIndexKey, treeIndex),
	}
}

// samples は学習中のサンプルをまとめたもの
type samples struct {
	x      [][]float64
	labels []int // Classes へのインデックス
	k      int   // クラス数
}

// Train はビューのサンプルで木を学習する
func (t *Trainer) Train(ctx context.Context, view *dataset.View) error {
	if err := t.params.Tree.Validate(); err != nil {
		return err
	}
	n := view.Size()
	if n == 0 {
		return forestErrors.Wrapf(forestErrors.ErrEmptyData, "tree %d", t.treeIndex)
	}
	if err := view.Validate(); err != nil {
		return err
	}

	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		s := view.SampleAt(i)
		x[i] = s.Features
		y[i] = s.Target
	}
	nf := len(x[0])
	for i := range x {
		if len(x[i]) != nf {
			return forestErrors.NewDimensionError("Trainer.Train", nf, len(x[i]), 1)
		}
	}

	classes, labels := encodeLabels(y)
	data := &samples{x: x, labels: labels, k: len(classes)}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	root, err := t.grow(ctx, data, idx, 0)
	if err != nil {
		return err
	}
	decodeClasses(root, classes)

	t.tree = &Tree{Root: root, NumFeatures: nf, Classes: classes}
	t.logger.Debug("Tree grown",
		log.SamplesKey, n,
		log.FeaturesKey, nf,
		log.TreeDepthKey, t.tree.Depth(),
		log.TreeNodesKey, t.tree.NumNodes(),
	)
	return nil
}

// Tree implements forest.TreeTrainer.
func (t *Trainer) Tree() *Tree {
	return t.tree
}

// grow はノードを再帰的に分割する。葉の Class には暫定的にクラスインデックスを入れる
func (t *Trainer) grow(ctx context.Context, data *samples, idx []int, d int) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := classCounts(data, idx)
	node := &Node{
		Class:    float64(floats.MaxIdx(counts)),
		Samples:  len(idx),
		Impurity: gini(counts),
	}

	minSplit := max(t.params.Tree.MinSamplesSplit, 2)
	if node.Impurity == 0 || len(idx) < minSplit {
		return node, nil
	}
	if t.params.Tree.MaxDepth > 0 && d >= t.params.Tree.MaxDepth {
		return node, nil
	}

	feature, threshold, ok := t.bestSplit(data, idx, node.Impurity)
	if !ok {
		return node, nil
	}

	var left, right []int
	for _, i := range idx {
		if data.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return node, nil
	}

	var err error
	node.Feature = feature
	node.Threshold = threshold
	if node.Left, err = t.grow(ctx, data, left, d+1); err != nil {
		return nil, err
	}
	if node.Right, err = t.grow(ctx, data, right, d+1); err != nil {
		return nil, err
	}
	return node, nil
}

// bestSplit はジニ不純度の減少が最大となる分割を探す
func (t *Trainer) bestSplit(data *samples, idx []int, parentImpurity float64) (int, float64, bool) {
	nf := len(data.x[0])
	features := make([]int, nf)
	for i := range features {
		features[i] = i
	}
	if m := t.params.Tree.MaxFeatures; m > 0 && m < nf {
		random.ShuffleInts(t.src, features)
		features = features[:m]
		sort.Ints(features)
	}

	n := float64(len(idx))
	bestGain := minGain
	bestFeature, bestThreshold, found := 0, 0.0, false

	sorted := make([]int, len(idx))
	left := make([]float64, data.k)
	right := make([]float64, data.k)
	for _, f := range features {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return data.x[sorted[a]][f] < data.x[sorted[b]][f]
		})

		for c := range left {
			left[c] = 0
		}
		copy(right, classCounts(data, sorted))

		for i := 0; i < len(sorted)-1; i++ {
			label := data.labels[sorted[i]]
			left[label]++
			right[label]--

			v, next := data.x[sorted[i]][f], data.x[sorted[i+1]][f]
			if v == next {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			impurity := (nl*gini(left) + nr*gini(right)) / n
			if gain := parentImpurity - impurity; gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = v + (next-v)/2
				if bestThreshold >= next {
					bestThreshold = v
				}
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func classCounts(data *samples, idx []int) []float64 {
	counts := make([]float64, data.k)
	for _, i := range idx {
		counts[data.labels[i]]++
	}
	return counts
}

// gini はクラス頻度からジニ不純度 1 - Σp² を計算する
func gini(counts []float64) float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}
	p := make([]float64, len(counts))
	floats.ScaleTo(p, 1/total, counts)
	return 1 - floats.Dot(p, p)
}

// encodeLabels は目的変数を昇順のクラス一覧とそのインデックスに変換する
func encodeLabels(y []float64) ([]float64, []int) {
	classes := append([]float64(nil), y...)
	sort.Float64s(classes)
	classes = uniqueSorted(classes)

	labels := make([]int, len(y))
	for i, v := range y {
		labels[i] = sort.SearchFloat64s(classes, v)
	}
	return classes, labels
}

func uniqueSorted(s []float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// decodeClasses は葉のクラスインデックスを実際のクラス値に置き換える
func decodeClasses(n *Node, classes []float64) {
	if n == nil {
		return
	}
	n.Class = classes[int(n.Class)]
	decodeClasses(n.Left, classes)
	decodeClasses(n.Right, classes)
}
