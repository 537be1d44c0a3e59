package model

import (
	"encoding/json"
	"fmt"
	"io"
)

// SKLearnModelSpec identifies the model type and format version of a
// scikit-learn JSON export.
type SKLearnModelSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
}

// SKLearnModel is the JSON envelope used to exchange models with
// scikit-learn: a spec header plus model-specific params kept raw until
// the concrete model type is known.
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// SKLearnLinearRegressionParams are the params of an exported
// LinearRegression.
type SKLearnLinearRegressionParams struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`
}

// LoadSKLearnModelFromReader decodes the JSON envelope from r.
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var m SKLearnModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode sklearn model: %w", err)
	}
	if m.ModelSpec.Name == "" {
		return nil, fmt.Errorf("sklearn model is missing model_spec.name")
	}
	return &m, nil
}

// LoadLinearRegressionParams extracts LinearRegression params from an
// envelope, verifying the model type.
func LoadLinearRegressionParams(m *SKLearnModel) (*SKLearnLinearRegressionParams, error) {
	if m.ModelSpec.Name != "LinearRegression" {
		return nil, fmt.Errorf("expected LinearRegression model, got %q", m.ModelSpec.Name)
	}

	var params SKLearnLinearRegressionParams
	if err := json.Unmarshal(m.Params, &params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal linear regression params: %w", err)
	}
	if len(params.Coefficients) == 0 {
		return nil, fmt.Errorf("linear regression params have no coefficients")
	}
	if params.NFeatures == 0 {
		params.NFeatures = len(params.Coefficients)
	}
	return &params, nil
}
