package bones

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var catalogTOML string

// CatalogEntry is one built-in category and its default color.
type CatalogEntry struct {
	Name         string
	DefaultColor RGBA
}

type catalogFile struct {
	Category []struct {
		Name  string `toml:"name"`
		Color string `toml:"color"`
	} `toml:"category"`
}

// DefaultCatalog returns the built-in categories in display order.
func DefaultCatalog() []CatalogEntry {
	entries, err := parseCatalog(catalogTOML)
	if err != nil {
		panic(err)
	}
	return entries
}

func parseCatalog(data string) ([]CatalogEntry, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make([]CatalogEntry, 0, len(f.Category))
	seen := make(map[string]bool, len(f.Category))
	for _, c := range f.Category {
		if c.Name == "" {
			return nil, fmt.Errorf("catalog: category without name")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("catalog: duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		col, err := ParseHex(c.Color)
		if err != nil {
			return nil, fmt.Errorf("catalog: category %q: %w", c.Name, err)
		}
		out = append(out, CatalogEntry{Name: c.Name, DefaultColor: col})
	}
	return out, nil
}

// NewDefaultRegistry builds a registry holding the built-in catalog with no
// category displayed yet.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range DefaultCatalog() {
		r.Add(e.Name, e.DefaultColor)
	}
	return r
}
