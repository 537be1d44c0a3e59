// Package config holds the YAML configuration for lazyml namespaces.
//
// A config file is optional: Load applies defaults first and overlays
// whatever the file provides, so a missing or partial file still yields
// a usable configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the namespace configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	LLM struct {
		Provider            string `yaml:"provider"`
		Model               string `yaml:"model"`
		APIBase             string `yaml:"api_base"`
		APIKey              string `yaml:"api_key"`
		ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"`
	} `yaml:"llm"`
	Plot struct {
		WidthInches  float64 `yaml:"width_inches"`
		HeightInches float64 `yaml:"height_inches"`
	} `yaml:"plot"`
	Neural struct {
		Epochs       int     `yaml:"epochs"`
		BatchSize    int     `yaml:"batch_size"`
		LearningRate float64 `yaml:"learning_rate"`
	} `yaml:"neural"`
	Boost struct {
		NumIterations int     `yaml:"num_iterations"`
		LearningRate  float64 `yaml:"learning_rate"`
		NumLeaves     int     `yaml:"num_leaves"`
		MaxDepth      int     `yaml:"max_depth"`
	} `yaml:"boost"`
}

// Default returns a Config populated with the library defaults.
func Default() *Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "llama3"
	cfg.LLM.APIBase = "http://localhost:11434"
	cfg.LLM.ProbeTimeoutSeconds = 5
	cfg.Plot.WidthInches = 6
	cfg.Plot.HeightInches = 4
	cfg.Neural.Epochs = 100
	cfg.Neural.BatchSize = 32
	cfg.Neural.LearningRate = 0.001
	cfg.Boost.NumIterations = 100
	cfg.Boost.LearningRate = 0.1
	cfg.Boost.NumLeaves = 31
	cfg.Boost.MaxDepth = -1
	return &cfg
}

// Load reads the configuration from a YAML file. Defaults are applied
// first; the file only needs to specify what differs from them.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
