package benchmarks

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig mirrors the root flags so runs can be configured from a
// file. Zero values leave the corresponding flag untouched.
type RunConfig struct {
	Episodes int    `yaml:"episodes"`
	Horizon  int    `yaml:"horizon"`
	Runs     int    `yaml:"runs"`
	Save     string `yaml:"save"`
	Seed     *int64 `yaml:"seed"`
	Redis    string `yaml:"redis"`
}

func LoadRunConfig(path string) (*RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config %s: %w", path, err)
	}
	cfg := &RunConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}

func applyRunConfig(path string) error {
	cfg, err := LoadRunConfig(path)
	if err != nil {
		return err
	}
	if cfg.Episodes > 0 {
		episodes = cfg.Episodes
	}
	if cfg.Horizon > 0 {
		horizon = cfg.Horizon
	}
	if cfg.Runs > 0 {
		runs = cfg.Runs
	}
	if cfg.Save != "" {
		saveDir = cfg.Save
	}
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	if cfg.Redis != "" {
		redisAddr = cfg.Redis
	}
	return nil
}
