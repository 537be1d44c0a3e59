package boost

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
)

// LoadModel reads a LightGBM text model from a file. Both .txt and
// .lgbm extensions are produced by save_model().
func LoadModel(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open model file")
	}
	defer file.Close()

	return LoadModelFromReader(file)
}

// LoadModelFromReader reads a LightGBM text model. The format is a
// sequence of key=value lines; each tree is a "Tree=N" header followed
// by per-node arrays (split_feature, threshold, left_child, ...).
func LoadModelFromReader(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	model := NewModel()
	var currentTree *Tree
	treeParams := make(map[string]string)

	finalize := func() error {
		if currentTree == nil {
			return nil
		}
		if err := finalizeTree(currentTree, treeParams); err != nil {
			return err
		}
		model.Trees = append(model.Trees, *currentTree)
		currentTree = nil
		treeParams = make(map[string]string)
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if err := finalize(); err != nil {
				return nil, err
			}
			continue
		}
		if line == "end of trees" {
			if err := finalize(); err != nil {
				return nil, err
			}
			continue
		}

		if strings.HasPrefix(line, "Tree=") {
			if err := finalize(); err != nil {
				return nil, err
			}
			treeIdx, err := strconv.Atoi(strings.TrimPrefix(line, "Tree="))
			if err != nil {
				return nil, errors.Wrap(err, "invalid tree index")
			}
			currentTree = &Tree{TreeIndex: treeIdx, ShrinkageRate: 1.0}
			continue
		}

		if !strings.Contains(line, "=") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if currentTree != nil {
			treeParams[key] = value
			continue
		}

		switch key {
		case "objective":
			// e.g. "binary sigmoid:1" or "regression".
			fields := strings.Fields(value)
			if len(fields) > 0 {
				switch fields[0] {
				case "binary":
					model.Objective = BinaryLogistic
				case "regression", "regression_l2", "l2":
					model.Objective = RegressionL2
				default:
					model.Objective = ObjectiveType(fields[0])
				}
			}
		case "max_feature_idx":
			maxFeature, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrap(err, "invalid max_feature_idx")
			}
			model.NumFeatures = maxFeature + 1
		case "feature_names":
			model.FeatureNames = strings.Fields(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading model")
	}
	if err := finalize(); err != nil {
		return nil, err
	}

	if len(model.Trees) == 0 {
		return nil, errors.NewModelError("boost.LoadModel", "no trees in model file", errors.ErrEmptyData)
	}

	model.NumIteration = len(model.Trees)
	if model.LearningRate == 0 && len(model.Trees) > 0 {
		model.LearningRate = model.Trees[0].ShrinkageRate
	}
	model.markFitted()
	return model, nil
}

// finalizeTree converts the per-tree key=value arrays into nodes.
// Internal nodes come first in the slice, leaves are appended after;
// negative child references in the file (~leafIndex) are rewritten to
// point at the appended leaves.
func finalizeTree(tree *Tree, params map[string]string) error {
	if v, ok := params["num_leaves"]; ok {
		numLeaves, _ := strconv.Atoi(v)
		tree.NumLeaves = numLeaves
	}
	if v, ok := params["shrinkage"]; ok {
		shrinkage, _ := strconv.ParseFloat(v, 64)
		if shrinkage > 0 {
			tree.ShrinkageRate = shrinkage
		}
	}

	splitFeatures := parseIntArray(params["split_feature"])
	thresholds := parseFloatArray(params["threshold"])
	leftChildren := parseIntArray(params["left_child"])
	rightChildren := parseIntArray(params["right_child"])
	leafValues := parseFloatArray(params["leaf_value"])
	leafCounts := parseIntArray(params["leaf_count"])

	numInternal := len(splitFeatures)
	numLeaves := len(leafValues)

	if numLeaves == 0 {
		return errors.NewModelError("boost.LoadModel", "tree without leaf values", errors.ErrEmptyData)
	}
	if numInternal > 0 &&
		(len(thresholds) != numInternal || len(leftChildren) != numInternal || len(rightChildren) != numInternal) {
		return errors.Newf("inconsistent tree arrays: %d splits, %d thresholds, %d/%d children",
			numInternal, len(thresholds), len(leftChildren), len(rightChildren))
	}

	// child >= 0 refers to an internal node; child < 0 encodes leaf
	// index ~child, which lands at numInternal + leaf index.
	resolveChild := func(child int) int {
		if child >= 0 {
			return child
		}
		return numInternal + (-child - 1)
	}

	tree.Nodes = make([]Node, 0, numInternal+numLeaves)
	for i := 0; i < numInternal; i++ {
		tree.Nodes = append(tree.Nodes, Node{
			SplitFeature: splitFeatures[i],
			Threshold:    thresholds[i],
			LeftChild:    resolveChild(leftChildren[i]),
			RightChild:   resolveChild(rightChildren[i]),
			DefaultLeft:  true,
		})
	}
	for i := 0; i < numLeaves; i++ {
		node := Node{
			LeftChild:  -1,
			RightChild: -1,
			LeafValue:  leafValues[i],
		}
		if i < len(leafCounts) {
			node.LeafCount = leafCounts[i]
		}
		tree.Nodes = append(tree.Nodes, node)
	}

	if tree.NumLeaves == 0 {
		tree.NumLeaves = numLeaves
	}
	return nil
}

func parseIntArray(s string) []int {
	if s == "" {
		return nil
	}
	fields := strings.Fields(s)
	result := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		result = append(result, v)
	}
	return result
}

func parseFloatArray(s string) []float64 {
	if s == "" {
		return nil
	}
	fields := strings.Fields(s)
	result := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		result = append(result, v)
	}
	return result
}
