// Package ontonav provides policy-driven navigation over AI ontology
// snapshots.
//
// Ontonav loads typed entity collections (risks, tasks, capabilities,
// intrinsics, benchmarks and their supporting records) from YAML snapshot
// files and answers reachability questions over them: which capabilities a
// task requires, which intrinsics implement a capability, which risks a risk
// is mapped to. Relationships are not stored as an edge list; they are
// derived on the fly from entity attributes through a static derivation
// table, and traversed breadth-first under an explicit policy.
//
// # Basic Usage
//
// Load a snapshot and create an Explorer:
//
//	ontology, err := loader.New().Load("data/knowledge_graph")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	explorer, err := ontonav.New(ontology)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Named Patterns
//
// The common traversals ship as named patterns:
//
//	result, err := explorer.NavigatePattern(
//		"question-answering", types.EntityTypeAITask, "capabilities_for_task")
//
// # Custom Policies
//
// Anything the patterns do not cover is a policy away:
//
//	policy := graph.Policy{
//		MaxDepth:              2,
//		IncludedRelationships: []types.RelationType{types.RelationRequiresCapability},
//		IncludedEntityTypes:   []types.EntityType{types.EntityTypeCapability},
//	}
//	result, err := explorer.Navigate("question-answering", types.EntityTypeAITask, policy)
//
// # Convenience Queries
//
// Selector-based helpers cover the everyday lookups without touching
// policies:
//
//	caps, err := explorer.CapabilitiesForTask(ontonav.Selector{ID: "question-answering"}, "")
//	trace, err := explorer.TraceTaskToIntrinsics(ontonav.Selector{Tag: "qa"})
//
// Traversal results are immutable and cached per navigator; identical
// queries are answered from the cache until ClearCache or Reload.
package ontonav
