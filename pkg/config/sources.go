package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML loads configuration from a YAML file
func LoadYAML(path string, target interface{}) error {
	// #nosec G304 -- path is provided by the caller (library function); callers should validate untrusted inputs.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return nil
}

// LoadJSON loads configuration from a JSON file
func LoadJSON(path string, target interface{}) error {
	// #nosec G304 -- path is provided by the caller (library function); callers should validate untrusted inputs.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}
