package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlLevel is the on-disk shape of a level file.
type yamlLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Layout   []string          `yaml:"layout"`
	Spawn    *yamlPosition     `yaml:"spawn,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// yamlPosition overrides the spawn marker in the layout.
type yamlPosition struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// parseYAML decodes a level file without building the map.
func parseYAML(data []byte) (yamlLevel, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return yamlLevel{}, fmt.Errorf("parsing YAML: %w", err)
	}
	if yl.ID == "" {
		return yamlLevel{}, fmt.Errorf("missing required field: id")
	}
	if len(yl.Layout) == 0 {
		return yamlLevel{}, fmt.Errorf("level %s: missing required field: layout", yl.ID)
	}
	return yl, nil
}

// MarshalYAML encodes a level in the file format Load reads.
func MarshalYAML(l Level) ([]byte, error) {
	yl := yamlLevel{
		ID:       l.ID,
		Name:     l.Name,
		Layout:   l.Map.Layout(),
		Spawn:    &yamlPosition{Row: l.Spawn.Row, Col: l.Spawn.Col},
		Metadata: l.Metadata,
	}
	return yaml.Marshal(yl)
}
