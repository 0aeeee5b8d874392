package mixer

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LightPair describes one virtual mixed light: two fixed-temperature emitters
// driven together to approximate an arbitrary intermediate temperature.
type LightPair struct {
	ID         string   `yaml:"id"`
	WarmEntity string   `yaml:"warm_entity"`
	WarmKelvin int      `yaml:"warm_kelvin"`
	ColdEntity string   `yaml:"cold_entity"`
	ColdKelvin int      `yaml:"cold_kelvin"`
	Priority   Priority `yaml:"priority"`
}

// Registry holds the configured light pairs keyed by id
type Registry struct {
	pairs map[string]LightPair
}

type registryFile struct {
	Lights []LightPair `yaml:"lights"`
}

// LoadRegistry loads the light pair registry from a YAML file
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lights config: %w", err)
	}

	registry, err := NewRegistryFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load lights config %s: %w", path, err)
	}

	return registry, nil
}

// NewRegistryFromBytes builds a registry from YAML data (useful for testing)
func NewRegistryFromBytes(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lights YAML: %w", err)
	}

	if len(file.Lights) == 0 {
		return nil, fmt.Errorf("no lights configured")
	}

	pairs := make(map[string]LightPair, len(file.Lights))
	for i, pair := range file.Lights {
		if pair.Priority == "" {
			pair.Priority = PriorityMixed
		}
		if err := validatePair(pair); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		if _, exists := pairs[pair.ID]; exists {
			return nil, fmt.Errorf("duplicate light id: %s", pair.ID)
		}
		pairs[pair.ID] = pair
	}

	return &Registry{pairs: pairs}, nil
}

func validatePair(pair LightPair) error {
	if pair.ID == "" {
		return fmt.Errorf("light id is required")
	}
	if pair.WarmEntity == "" || pair.ColdEntity == "" {
		return fmt.Errorf("light %s: both warm_entity and cold_entity are required", pair.ID)
	}
	if pair.WarmKelvin <= 0 || pair.ColdKelvin <= 0 {
		return fmt.Errorf("light %s: emitter temperatures must be positive", pair.ID)
	}
	if pair.WarmKelvin >= pair.ColdKelvin {
		return fmt.Errorf("light %s: warm_kelvin (%d) must be below cold_kelvin (%d)",
			pair.ID, pair.WarmKelvin, pair.ColdKelvin)
	}
	if _, err := ParsePriority(string(pair.Priority)); err != nil {
		return fmt.Errorf("light %s: %w", pair.ID, err)
	}
	return nil
}

// Get returns the light pair with the given id
func (r *Registry) Get(id string) (LightPair, bool) {
	pair, ok := r.pairs[id]
	return pair, ok
}

// IDs returns the configured light ids in stable order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.pairs))
	for id := range r.pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of configured light pairs
func (r *Registry) Len() int {
	return len(r.pairs)
}
