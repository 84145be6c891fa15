package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a scenario from a YAML file. The result is parsed but not yet
// validated or prepared; run validation over it and call Prepare before
// handing it to the calculator.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario from YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return &s, nil
}

// LoadWithDefaults reads a defaults file and an override file and merges the
// override on top of the defaults, key by key. Mappings merge recursively;
// scalars and sequences in the override replace the default value outright.
func LoadWithDefaults(defaultsPath, overridePath string) (*Scenario, error) {
	defaults, err := loadTree(defaultsPath)
	if err != nil {
		return nil, err
	}
	override, err := loadTree(overridePath)
	if err != nil {
		return nil, err
	}

	merged := mergeTrees(defaults, override)
	data, err := yaml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("re-encoding merged scenario: %w", err)
	}
	return Parse(data)
}

func loadTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// mergeTrees returns a new tree with override applied on top of base.
func mergeTrees(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		if subOverride, ok := v.(map[string]any); ok {
			if subBase, ok := out[k].(map[string]any); ok {
				out[k] = mergeTrees(subBase, subOverride)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// batteryCostsFile mirrors the default battery cost projection file layout.
type batteryCostsFile struct {
	Projection map[int]float64 `yaml:"battery_pack_cost_aud_per_kwh"`
}

// LoadBatteryCosts reads a default battery pack cost projection
// (calendar year -> AUD/kWh) from a YAML file. The calculator consults this
// table when neither the vehicle nor the scenario carries a projection.
func LoadBatteryCosts(path string) (map[int]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading battery costs file: %w", err)
	}
	var f batteryCostsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing battery costs YAML: %w", err)
	}
	if len(f.Projection) == 0 {
		return nil, fmt.Errorf("battery costs file %s has no battery_pack_cost_aud_per_kwh entries", path)
	}
	return f.Projection, nil
}
