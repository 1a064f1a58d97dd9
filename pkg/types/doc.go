// Package types defines the core data types for the ontonav knowledge graph.
//
// This package contains the fundamental types used throughout ontonav:
//   - Entity: a typed, identified record with named attributes
//   - Ref: the composite (type, id) identity of an entity
//   - EntityType / RelationType: the declared type and relationship tags
//   - Ontology: the loaded snapshot, one ordered collection per entity type
//
// # Identity
//
// Entity ids are unique only within a type. Everything that identifies an
// entity therefore carries a Ref, never a bare id:
//
//	ref := types.NewRef(types.EntityTypeAITask, "question-answering")
//
// # Relationship attributes
//
// Relationships are not stored as records of their own. An entity attribute
// may hold the ids of related entities, either as a single id or as an
// ordered list; RelatedIDs normalizes both:
//
//	task := &types.Entity{ID: "t1", Type: types.EntityTypeAITask,
//	    Attrs: map[string]interface{}{"requiresCapability": []string{"c1", "c2"}}}
//	ids := task.RelatedIDs("requiresCapability") // ["c1", "c2"]
//
// # Serialization
//
// All types are JSON-serializable with appropriate struct tags; the Ontology
// collection names match the top-level keys of snapshot files.
package types
