package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// Preset is a saved panel state: group title -> control name -> value.
// Values are float64, bool or string.
type Preset struct {
	Name   string                            `yaml:"name"`
	Values map[string]map[string]interface{} `yaml:"values"`
}

// Groups returns the group titles in sorted order
func (p *Preset) Groups() []string {
	groups := make([]string, 0, len(p.Values))
	for g := range p.Values {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// SavePreset writes a preset as YAML
func SavePreset(preset *Preset, filePath string) error {
	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("error serializing preset: %v", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing preset file: %v", err)
	}
	return nil
}

// LoadPreset reads a preset, normalizing YAML integers to float64
func LoadPreset(filePath string) (*Preset, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading preset file: %v", err)
	}

	preset := &Preset{}
	if err := yaml.Unmarshal(data, preset); err != nil {
		return nil, fmt.Errorf("error parsing preset: %v", err)
	}

	for group, fields := range preset.Values {
		for field, v := range fields {
			switch n := v.(type) {
			case int:
				fields[field] = float64(n)
			case int64:
				fields[field] = float64(n)
			case float64, bool, string:
			default:
				return nil, fmt.Errorf("preset %s.%s has unsupported value %v (%T)", group, field, v, v)
			}
		}
	}

	return preset, nil
}
