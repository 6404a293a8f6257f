package dataset

import (
	"context"
	"fmt"
	"sort"

	"supplychain-insights/internal/common/config"
)

type entry struct {
	spec   Spec
	source Source
}

// Catalog maps dataset names to the source that serves them.
type Catalog struct {
	entries map[string]entry
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]entry)}
}

// Register adds or replaces a dataset.
func (c *Catalog) Register(spec Spec, source Source) {
	c.entries[spec.Name] = entry{spec: spec, source: source}
}

// FromConfig builds a catalog from the analytics config. sources maps a
// dataset kind to the Source that serves it; a dataset whose kind has no
// source is an error.
func FromConfig(cfg config.AnalyticsConfig, sources map[string]Source) (*Catalog, error) {
	c := NewCatalog()
	for name, dc := range cfg.Datasets {
		src, ok := sources[dc.Kind]
		if !ok || src == nil {
			return nil, fmt.Errorf("dataset %s: no source for kind %q", name, dc.Kind)
		}
		c.Register(Spec{
			Name:    name,
			Kind:    dc.Kind,
			Path:    dc.Path,
			Table:   dc.Table,
			Index:   dc.Index,
			Columns: dc.Columns,
			Limit:   dc.Limit,
		}, src)
	}
	return c, nil
}

func (c *Catalog) Load(ctx context.Context, name string) (*Table, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}
	t, err := e.source.Load(ctx, e.spec)
	if err != nil {
		return nil, err
	}
	if t.Name == "" {
		t.Name = name
	}
	return t, nil
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
