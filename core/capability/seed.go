package capability

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed/capabilities.yaml
var builtinSeed []byte

// seedFile is the YAML document shape for capability seed files.
type seedFile struct {
	Capabilities []*Capability `yaml:"capabilities"`
}

// LoadSeed parses a capability seed YAML document into a populated
// MemoryStore.
func LoadSeed(data []byte) (*MemoryStore, error) {
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing capability seed: %w", err)
	}
	store := NewMemoryStore()
	for _, c := range doc.Capabilities {
		if c.Name == "" {
			return nil, fmt.Errorf("capability seed: entry without a name")
		}
		store.put(c)
	}
	return store, nil
}

// LoadSeedFile loads a seed document from disk. An empty path loads the
// built-in capability framework.
func LoadSeedFile(path string) (*MemoryStore, error) {
	if path == "" {
		return LoadSeed(builtinSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capability seed %s: %w", path, err)
	}
	return LoadSeed(data)
}
