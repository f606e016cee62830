package compiler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional project configuration file (guic.yaml) controlling
// discovery roots, output placement, and toolkit customization.
type Config struct {
	Src     string            `yaml:"src"`
	Out     string            `yaml:"out"`
	Headers []string          `yaml:"headers"`
	Tags    map[string]string `yaml:"tags"`
}

// LoadConfig reads and parses a project configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Options derives compiler options from the configuration.
func (c *Config) Options(devMode bool) Options {
	return Options{
		DevMode: devMode,
		Tags:    c.Tags,
		Headers: c.Headers,
	}
}
