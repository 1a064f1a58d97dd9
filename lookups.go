package ontonav

import (
	"fmt"
	"slices"

	"github.com/soundprediction/ontonav/pkg/types"
)

// Selector narrows an entity lookup by id, tag, display name, or defining
// taxonomy. Set fields combine conjunctively; the zero Selector matches
// nothing.
type Selector struct {
	ID       string
	Tag      string
	Name     string
	Taxonomy string
}

// IsZero reports whether no field is set.
func (s Selector) IsZero() bool {
	return s == Selector{}
}

func (s Selector) matches(e *types.Entity) bool {
	if s.ID != "" && e.ID != s.ID {
		return false
	}
	if s.Tag != "" && e.Tag() != s.Tag {
		return false
	}
	if s.Name != "" && e.Name() != s.Name {
		return false
	}
	if s.Taxonomy != "" && e.Taxonomy() != s.Taxonomy {
		return false
	}
	return true
}

// find returns the first entity of the given type the selector matches, in
// snapshot order.
func (e *Explorer) find(t types.EntityType, sel Selector) (*types.Entity, error) {
	if sel.IsZero() {
		return nil, fmt.Errorf("%w: empty selector for %s", ErrNotFound, t)
	}
	for _, entity := range e.ontology.Collection(t) {
		if sel.matches(entity) {
			return entity, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s matches selector", ErrNotFound, t)
}

// filterByTaxonomy narrows entities to one defining taxonomy; empty matches
// all. The result is always a fresh slice.
func filterByTaxonomy(entities []*types.Entity, taxonomy string) []*types.Entity {
	if taxonomy == "" {
		return slices.Clone(entities)
	}
	var out []*types.Entity
	for _, e := range entities {
		if e.Taxonomy() == taxonomy {
			out = append(out, e)
		}
	}
	return out
}

// Capabilities returns every capability, optionally narrowed to a taxonomy.
func (e *Explorer) Capabilities(taxonomy string) []*types.Entity {
	return filterByTaxonomy(e.ontology.Capabilities, taxonomy)
}

// Capability returns the first capability matching the selector.
func (e *Explorer) Capability(sel Selector) (*types.Entity, error) {
	return e.find(types.EntityTypeCapability, sel)
}

// Tasks returns every AI task, optionally narrowed to a taxonomy.
func (e *Explorer) Tasks(taxonomy string) []*types.Entity {
	return filterByTaxonomy(e.ontology.AITasks, taxonomy)
}

// Task returns the first AI task matching the selector.
func (e *Explorer) Task(sel Selector) (*types.Entity, error) {
	return e.find(types.EntityTypeAITask, sel)
}

// Risks returns every risk, optionally narrowed to a taxonomy.
func (e *Explorer) Risks(taxonomy string) []*types.Entity {
	return filterByTaxonomy(e.ontology.Risks, taxonomy)
}

// Risk returns the first risk matching the selector.
func (e *Explorer) Risk(sel Selector) (*types.Entity, error) {
	return e.find(types.EntityTypeRisk, sel)
}

// Intrinsics returns every LLM intrinsic, optionally narrowed to a taxonomy.
func (e *Explorer) Intrinsics(taxonomy string) []*types.Entity {
	return filterByTaxonomy(e.ontology.LLMIntrinsics, taxonomy)
}

// Intrinsic returns the first LLM intrinsic matching the selector.
func (e *Explorer) Intrinsic(sel Selector) (*types.Entity, error) {
	return e.find(types.EntityTypeLLMIntrinsic, sel)
}

// Benchmarks returns every benchmark card, optionally narrowed to a
// taxonomy.
func (e *Explorer) Benchmarks(taxonomy string) []*types.Entity {
	return filterByTaxonomy(e.ontology.BenchmarkMetadataCards, taxonomy)
}

// Benchmark returns the first benchmark card matching the selector.
func (e *Explorer) Benchmark(sel Selector) (*types.Entity, error) {
	return e.find(types.EntityTypeBenchmark, sel)
}
