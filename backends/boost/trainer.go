package boost

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// splitInfo describes the best split found for a node.
type splitInfo struct {
	feature   int
	threshold float64
	gain      float64
}

// Trainer fits a gradient boosting ensemble with exact greedy splits.
type Trainer struct {
	params TrainingParams
	model  *Model

	X           [][]float64
	y           []float64
	predictions []float64
	gradients   []float64
	hessians    []float64
}

// NewTrainer creates a trainer. Zero-valued params fall back to
// defaults.
func NewTrainer(params TrainingParams) *Trainer {
	return &Trainer{
		params: params.withDefaults(),
	}
}

// Fit trains the ensemble on X and y. For the binary objective y must
// hold 0/1 labels.
func (t *Trainer) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("boost.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("boost.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("boost.Fit", "y must be a column vector")
	}

	objective := ObjectiveType(t.params.Objective)
	switch objective {
	case RegressionL2, BinaryLogistic:
	default:
		return errors.NewValueError("boost.Fit", "unsupported objective: "+t.params.Objective)
	}

	t.X = make([][]float64, r)
	t.y = make([]float64, r)
	for i := 0; i < r; i++ {
		t.X[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			t.X[i][j] = X.At(i, j)
		}
		t.y[i] = y.At(i, 0)
	}

	t.model = NewModel()
	t.model.Objective = objective
	t.model.LearningRate = t.params.LearningRate
	t.model.NumFeatures = c
	t.model.InitScore = t.initScore()

	t.predictions = make([]float64, r)
	for i := range t.predictions {
		t.predictions[i] = t.model.InitScore
	}
	t.gradients = make([]float64, r)
	t.hessians = make([]float64, r)

	indices := make([]int, r)
	for i := range indices {
		indices[i] = i
	}

	for iter := 0; iter < t.params.NumIterations; iter++ {
		t.computeGradients()

		tree := Tree{
			TreeIndex:     iter,
			ShrinkageRate: t.params.LearningRate,
		}
		t.buildNode(&tree, indices, 0)
		tree.NumLeaves = countLeaves(&tree)

		t.model.Trees = append(t.model.Trees, tree)
		t.updatePredictions(&tree)
	}

	t.model.NumIteration = len(t.model.Trees)
	t.model.markFitted()
	return nil
}

// Model returns the trained ensemble.
func (t *Trainer) Model() *Model {
	return t.model
}

// initScore is the constant the ensemble starts from: the mean for
// regression, the log-odds of the positive class for binary.
func (t *Trainer) initScore() float64 {
	var sum float64
	for _, v := range t.y {
		sum += v
	}
	mean := sum / float64(len(t.y))

	if ObjectiveType(t.params.Objective) == BinaryLogistic {
		p := math.Min(math.Max(mean, 1e-12), 1-1e-12)
		return math.Log(p / (1 - p))
	}
	return mean
}

func (t *Trainer) computeGradients() {
	binary := t.model.Objective == BinaryLogistic
	for i := range t.y {
		if binary {
			p := sigmoid(t.predictions[i])
			t.gradients[i] = p - t.y[i]
			t.hessians[i] = p * (1 - p)
		} else {
			t.gradients[i] = t.predictions[i] - t.y[i]
			t.hessians[i] = 1.0
		}
	}
}

// buildNode grows the tree rooted at the given sample set and returns
// the index of the created node.
func (t *Trainer) buildNode(tree *Tree, indices []int, depth int) int {
	if t.shouldStop(indices, depth) {
		return t.appendLeaf(tree, indices)
	}

	split := t.findBestSplit(indices)
	if split.gain <= t.params.MinGainToSplit {
		return t.appendLeaf(tree, indices)
	}

	left, right := t.splitData(indices, split)
	if len(left) < t.params.MinDataInLeaf || len(right) < t.params.MinDataInLeaf {
		return t.appendLeaf(tree, indices)
	}

	nodeIdx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{
		SplitFeature: split.feature,
		Threshold:    split.threshold,
		Gain:         split.gain,
		DefaultLeft:  true,
		LeftChild:    -1,
		RightChild:   -1,
	})

	leftIdx := t.buildNode(tree, left, depth+1)
	rightIdx := t.buildNode(tree, right, depth+1)
	tree.Nodes[nodeIdx].LeftChild = leftIdx
	tree.Nodes[nodeIdx].RightChild = rightIdx
	return nodeIdx
}

func (t *Trainer) shouldStop(indices []int, depth int) bool {
	if len(indices) < 2*t.params.MinDataInLeaf {
		return true
	}
	if t.params.MaxDepth > 0 && depth >= t.params.MaxDepth {
		return true
	}
	// A full binary tree of this depth would exceed the leaf budget.
	if t.params.NumLeaves > 1 && depth >= log2Ceil(t.params.NumLeaves) {
		return true
	}
	return false
}

func (t *Trainer) appendLeaf(tree *Tree, indices []int) int {
	var sumGrad, sumHess float64
	for _, idx := range indices {
		sumGrad += t.gradients[idx]
		sumHess += t.hessians[idx]
	}

	value := 0.0
	if sumHess+t.params.Lambda > 0 {
		value = -sumGrad / (sumHess + t.params.Lambda)
	}

	nodeIdx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{
		LeftChild:  -1,
		RightChild: -1,
		LeafValue:  value,
		LeafCount:  len(indices),
	})
	return nodeIdx
}

// findBestSplit scans every feature with an exact greedy search.
func (t *Trainer) findBestSplit(indices []int) splitInfo {
	best := splitInfo{feature: -1, gain: math.Inf(-1)}
	numFeatures := len(t.X[0])

	for feature := 0; feature < numFeatures; feature++ {
		if s := t.findBestSplitForFeature(indices, feature); s.gain > best.gain {
			best = s
		}
	}
	return best
}

func (t *Trainer) findBestSplitForFeature(indices []int, feature int) splitInfo {
	best := splitInfo{feature: feature, gain: math.Inf(-1)}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Slice(sorted, func(a, b int) bool {
		return t.X[sorted[a]][feature] < t.X[sorted[b]][feature]
	})

	var totalGrad, totalHess float64
	for _, idx := range sorted {
		totalGrad += t.gradients[idx]
		totalHess += t.hessians[idx]
	}

	var leftGrad, leftHess float64
	for i := 0; i < len(sorted)-1; i++ {
		idx := sorted[i]
		leftGrad += t.gradients[idx]
		leftHess += t.hessians[idx]

		current := t.X[idx][feature]
		next := t.X[sorted[i+1]][feature]
		if current == next {
			continue
		}
		if i+1 < t.params.MinDataInLeaf || len(sorted)-i-1 < t.params.MinDataInLeaf {
			continue
		}

		gain := t.splitGain(leftGrad, leftHess, totalGrad-leftGrad, totalHess-leftHess, totalGrad, totalHess)
		if gain > best.gain {
			best.gain = gain
			best.threshold = (current + next) / 2
		}
	}
	return best
}

// splitGain is the standard second-order gain:
// 0.5 * (GL²/(HL+λ) + GR²/(HR+λ) - G²/(H+λ)).
func (t *Trainer) splitGain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess float64) float64 {
	lambda := t.params.Lambda
	left := leftGrad * leftGrad / (leftHess + lambda)
	right := rightGrad * rightGrad / (rightHess + lambda)
	total := totalGrad * totalGrad / (totalHess + lambda)
	return 0.5 * (left + right - total)
}

func (t *Trainer) splitData(indices []int, split splitInfo) ([]int, []int) {
	var left, right []int
	for _, idx := range indices {
		if t.X[idx][split.feature] <= split.threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}

func (t *Trainer) updatePredictions(tree *Tree) {
	for i := range t.predictions {
		t.predictions[i] += tree.Predict(t.X[i])
	}
}

func countLeaves(tree *Tree) int {
	count := 0
	for i := range tree.Nodes {
		if tree.Nodes[i].IsLeaf() {
			count++
		}
	}
	return count
}

func log2Ceil(n int) int {
	depth := 0
	for (1 << depth) < n {
		depth++
	}
	return depth
}
