package dish

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Size is the number of names in the built-in catalog.
const Size = 33

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is an ordered list of distinct dish names.
type Catalog struct {
	names []string
	index map[string]int
}

type catalogFile struct {
	Dishes []string `yaml:"dishes"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the embedded data is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(fmt.Errorf("invalid embedded dish catalog: %w", err))
		}
		if c.Len() != Size {
			panic(fmt.Errorf("invalid embedded dish catalog: expected %d dishes, got %d", Size, c.Len()))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return New(f.Dishes)
}

// New builds a catalog from names, rejecting empty and duplicate entries.
func New(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	c := &Catalog{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("catalog entry %d is empty", i)
		}
		if prev, ok := c.index[name]; ok {
			return nil, fmt.Errorf("duplicate catalog entry %q at %d and %d", name, prev, i)
		}
		c.index[name] = i
		c.names[i] = name
	}
	return c, nil
}

// Names returns a copy of the catalog in order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of dishes.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Contains reports whether name is in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}
