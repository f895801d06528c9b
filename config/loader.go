package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"condohub/server/internal/models"
)

// LoadPropertyConfigFile reads a property configuration from a YAML or JSON
// file. Keys use the same snake_case names as the HTTP API and omitted
// naming scheme fields take their documented defaults.
func LoadPropertyConfigFile(path string) (*models.PropertyConfiguration, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read property config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse property config: %w", err)
		}
	case ".json":
	default:
		return nil, fmt.Errorf("unsupported property config format %q", filepath.Ext(absPath))
	}

	var cfg models.PropertyConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse property config: %w", err)
	}
	return &cfg, nil
}

// yamlToJSON re-encodes a YAML document as JSON so that decoding goes
// through the models' JSON defaulting.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}
