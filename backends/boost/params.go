package boost

// TrainingParams controls the trainer. Field names and JSON tags follow
// LightGBM's parameter names so configurations can be shared.
type TrainingParams struct {
	NumIterations int     `json:"num_iterations"`
	LearningRate  float64 `json:"learning_rate"`
	NumLeaves     int     `json:"num_leaves"`
	MaxDepth      int     `json:"max_depth"`
	MinDataInLeaf int     `json:"min_data_in_leaf"`

	Lambda         float64 `json:"lambda_l2"`
	MinGainToSplit float64 `json:"min_gain_to_split"`

	Objective string `json:"objective"`
}

// DefaultParams returns LightGBM-style defaults.
func DefaultParams() TrainingParams {
	return TrainingParams{
		NumIterations: 100,
		LearningRate:  0.1,
		NumLeaves:     31,
		MaxDepth:      -1, // unlimited
		MinDataInLeaf: 20,
		Lambda:        0.0,
		Objective:     string(RegressionL2),
	}
}

// withDefaults fills zero values with defaults.
func (p TrainingParams) withDefaults() TrainingParams {
	def := DefaultParams()
	if p.NumIterations <= 0 {
		p.NumIterations = def.NumIterations
	}
	if p.LearningRate <= 0 {
		p.LearningRate = def.LearningRate
	}
	if p.NumLeaves <= 1 {
		p.NumLeaves = def.NumLeaves
	}
	if p.MaxDepth == 0 {
		p.MaxDepth = def.MaxDepth
	}
	if p.MinDataInLeaf <= 0 {
		p.MinDataInLeaf = 1
	}
	if p.Objective == "" {
		p.Objective = def.Objective
	}
	return p
}
