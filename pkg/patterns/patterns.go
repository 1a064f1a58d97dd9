// Package patterns holds a registry of named traversal policies for the
// common ways of walking the ontology. Patterns are plain data, resolved by
// name with no query parsing involved.
package patterns

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/soundprediction/ontonav/pkg/graph"
	"github.com/soundprediction/ontonav/pkg/types"
)

// ErrUnknownPattern is returned when a pattern name is not registered.
var ErrUnknownPattern = errors.New("unknown query pattern")

// Pattern couples a reusable traversal policy with its name and a short
// description of what the traversal answers.
type Pattern struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Policy      graph.Policy `json:"policy"`
}

var registry = map[string]Pattern{
	// Capability patterns
	"capabilities_for_task": {
		Name:        "capabilities_for_task",
		Description: "Capabilities required by a specific AI task",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: []types.RelationType{types.RelationRequiresCapability},
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeCapability},
		},
	},
	"intrinsics_for_capability": {
		Name:        "intrinsics_for_capability",
		Description: "Intrinsics and adapters that implement a capability",
		Policy: graph.Policy{
			MaxDepth: 1,
			IncludedRelationships: []types.RelationType{
				types.RelationImplementedByIntrinsic,
				types.RelationImplementedByAdapter,
			},
			IncludedEntityTypes: []types.EntityType{
				types.EntityTypeLLMIntrinsic,
				types.EntityTypeAdapter,
			},
		},
	},
	"tasks_for_capability": {
		Name:        "tasks_for_capability",
		Description: "Tasks that require a capability",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: []types.RelationType{types.RelationRequiredByTask},
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeAITask},
		},
	},
	"capability_hierarchy": {
		Name:        "capability_hierarchy",
		Description: "The capability hierarchy from domains through groups to capabilities",
		Policy: graph.Policy{
			MaxDepth: 2,
			IncludedRelationships: []types.RelationType{
				types.RelationHasPart,
				types.RelationIsPartOf,
				types.RelationBelongsToDomain,
			},
			IncludedEntityTypes: []types.EntityType{
				types.EntityTypeCapabilityDomain,
				types.EntityTypeCapabilityGroup,
				types.EntityTypeCapability,
			},
		},
	},
	"end_to_end_task_to_intrinsics": {
		Name:        "end_to_end_task_to_intrinsics",
		Description: "Complete path from a task through its capabilities to their intrinsics",
		Policy: graph.Policy{
			MaxDepth: 2,
			IncludedRelationships: []types.RelationType{
				types.RelationRequiresCapability,
				types.RelationImplementedByIntrinsic,
				types.RelationImplementedByAdapter,
			},
			IncludedEntityTypes: []types.EntityType{
				types.EntityTypeCapability,
				types.EntityTypeLLMIntrinsic,
				types.EntityTypeAdapter,
			},
		},
	},

	// Risk patterns
	"controls_for_risk": {
		Name:        "controls_for_risk",
		Description: "Controls that detect a specific risk",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: []types.RelationType{types.RelationIsDetectedBy},
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeRiskControl},
		},
	},
	"actions_for_risk": {
		Name:        "actions_for_risk",
		Description: "Actions mitigating a specific risk",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: []types.RelationType{types.RelationHasRelatedAction},
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeAction},
		},
	},
	"related_risks": {
		Name:        "related_risks",
		Description: "Risks related through SKOS mappings",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: types.SKOSRelations(),
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeRisk},
		},
	},
	"risk_neighborhood": {
		Name:        "risk_neighborhood",
		Description: "The full neighborhood of a risk: controls, actions, and related risks",
		Policy: graph.Policy{
			MaxDepth: 2,
			IncludedRelationships: append([]types.RelationType{
				types.RelationIsDetectedBy,
				types.RelationHasRelatedAction,
			}, types.SKOSRelations()...),
			IncludedEntityTypes: []types.EntityType{
				types.EntityTypeRiskControl,
				types.EntityTypeAction,
				types.EntityTypeRisk,
			},
		},
	},

	// Evaluation patterns
	"intrinsics_for_task": {
		Name:        "intrinsics_for_task",
		Description: "Intrinsics directly related to a task",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: []types.RelationType{types.RelationHasRelatedLLMIntrinsic},
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeLLMIntrinsic},
		},
	},

	// Documentation patterns
	"documentation_for_entity": {
		Name:        "documentation_for_entity",
		Description: "Documentation attached to an entity",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: []types.RelationType{types.RelationHasDocumentation},
			IncludedEntityTypes:   []types.EntityType{types.EntityTypeDocument},
		},
	},

	// Cross-taxonomy patterns
	"skos_matches": {
		Name:        "skos_matches",
		Description: "SKOS-matched entities of any type",
		Policy: graph.Policy{
			MaxDepth:              1,
			IncludedRelationships: types.SKOSRelations(),
		},
	},
}

// Get resolves a pattern by name. The returned pattern owns its policy, so
// callers may adjust it without affecting the registry.
func Get(name string) (Pattern, error) {
	p, ok := registry[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w %q, available: %s",
			ErrUnknownPattern, name, strings.Join(Names(), ", "))
	}
	p.Policy = p.Policy.Clone()
	return p, nil
}

// Names returns the registered pattern names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every registered pattern sorted by name.
func List() []Pattern {
	out := make([]Pattern, 0, len(registry))
	for _, name := range Names() {
		p := registry[name]
		p.Policy = p.Policy.Clone()
		out = append(out, p)
	}
	return out
}

// Describe maps every pattern name to its description.
func Describe() map[string]string {
	out := make(map[string]string, len(registry))
	for name, p := range registry {
		out[name] = p.Description
	}
	return out
}
