// Package brief parses campaign brief files into domain briefs.
package brief

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
)

// ParseFile reads a brief from a JSON or YAML file, picking the decoder by
// extension, and validates it.
func ParseFile(path string) (*domain.Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("brief: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("brief: unsupported file format %q, use .json, .yaml, or .yml", filepath.Ext(path))
	}
}

// ParseJSON decodes and validates a JSON brief.
func ParseJSON(data []byte) (*domain.Brief, error) {
	var b domain.Brief
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("brief: decode json: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ParseYAML decodes and validates a YAML brief.
func ParseYAML(data []byte) (*domain.Brief, error) {
	var b domain.Brief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("brief: decode yaml: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
