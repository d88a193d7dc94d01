package clusters

import (
	"github.com/google/uuid"
	"github.com/npillmayer/clusters/compare"
)

// Catalog is a Map keyed by UUIDs, which it can generate itself.
type Catalog[V any] struct {
	*Map[uuid.UUID, V]
}

// NewCatalog creates an empty catalog.
func NewCatalog[V any]() *Catalog[V] {
	c, err := NewCatalogWithConfig[V](Config{})
	if err != nil {
		panic(err) // the default configuration is valid
	}
	return c
}

// NewCatalogWithConfig creates an empty catalog with the given group size.
func NewCatalogWithConfig[V any](cfg Config) (*Catalog[V], error) {
	m, err := NewMapWithConfig[uuid.UUID, V](OrderedConfig[uuid.UUID]{
		GroupSize:  cfg.GroupSize,
		Comparator: compare.UUID{},
	})
	if err != nil {
		return nil, err
	}
	return &Catalog[V]{Map: m}, nil
}

// AddNew stores value under a fresh random id and returns the id.
func (c *Catalog[V]) AddNew(value V) uuid.UUID {
	for {
		id := uuid.New()
		if c.Add(id, value) {
			return id
		}
	}
}

// Clone returns a deep copy of the catalog.
func (c *Catalog[V]) Clone() *Catalog[V] {
	return &Catalog[V]{Map: c.Map.Clone()}
}
