// Package graph implements the traversal engine for the ontonav knowledge
// graph: policy-driven breadth-first exploration over an immutable snapshot.
//
// The engine has four pieces:
//   - Index: O(1) lookup of entities by (type, id)
//   - Schema: the edge derivation table, static rules mapping entity
//     attributes to typed, directed relationships
//   - Policy: depth, relationship, entity-type, and attribute constraints
//     for one query, plus its deterministic cache key
//   - Navigator: the BFS loop, producing a Result and owning the cache
//
// # Usage
//
//	nav := graph.New(ontology.Collections())
//
//	policy := graph.Policy{
//	    MaxDepth:              1,
//	    IncludedRelationships: []types.RelationType{types.RelationRequiresCapability},
//	    IncludedEntityTypes:   []types.EntityType{types.EntityTypeCapability},
//	}
//
//	result, err := nav.Traverse("question-answering", types.EntityTypeAITask, policy)
//
// # Degradation over errors
//
// Missing data never aborts a traversal: a dangling relationship id drops
// its edge, an unknown start entity yields an empty Result. The only errors
// Traverse returns come from eager policy validation.
//
// # Determinism and caching
//
// Edge enumeration follows schema registration order and attribute list
// order; ties resolve by FIFO queue order. Identical queries therefore
// produce identical results, which is what makes the navigator-owned result
// cache sound. The cache key covers every policy field that can change a
// result, including the result cap and the deduplication flag.
package graph
