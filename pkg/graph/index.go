package graph

import (
	"github.com/soundprediction/ontonav/pkg/types"
)

// Index resolves (type, id) pairs to entities in O(1) amortized time. It is
// built once from a loaded snapshot and never mutated afterwards, so lookups
// from concurrent traversals need no locking.
type Index struct {
	byType map[types.EntityType]map[string]*types.Entity
	size   int
}

// NewIndex builds an index over the given per-type collections. Within a
// type, the first entity bearing an id wins; later duplicates are ignored.
// Entities without an id are skipped.
func NewIndex(collections map[types.EntityType][]*types.Entity) *Index {
	ix := &Index{
		byType: make(map[types.EntityType]map[string]*types.Entity, len(collections)),
	}
	for t, entities := range collections {
		if len(entities) == 0 {
			continue
		}
		m := make(map[string]*types.Entity, len(entities))
		for _, e := range entities {
			if e == nil || e.ID == "" {
				continue
			}
			if _, exists := m[e.ID]; exists {
				continue
			}
			m[e.ID] = e
			ix.size++
		}
		ix.byType[t] = m
	}
	return ix
}

// Lookup returns the entity with the given type and id. A missing entity is
// not an error: callers treat it as a dangling reference and drop the edge.
func (ix *Index) Lookup(t types.EntityType, id string) (*types.Entity, bool) {
	e, ok := ix.byType[t][id]
	return e, ok
}

// Has reports whether an entity with the given type and id exists.
func (ix *Index) Has(t types.EntityType, id string) bool {
	_, ok := ix.byType[t][id]
	return ok
}

// Count returns the number of indexed entities of the given type.
func (ix *Index) Count(t types.EntityType) int {
	return len(ix.byType[t])
}

// Size returns the total number of indexed entities.
func (ix *Index) Size() int {
	return ix.size
}
