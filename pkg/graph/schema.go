package graph

import (
	"github.com/soundprediction/ontonav/pkg/types"
)

// Rule declares that an attribute on entities of one type encodes outgoing
// relationships: the attribute holds the id (or ordered ids) of entities of
// the target type, reached via the given relationship.
type Rule struct {
	Attribute string
	Relation  types.RelationType
	Target    types.EntityType
}

// Edge is one recorded relationship: the kind of the edge and the composite
// identity of its target.
type Edge struct {
	Relation types.RelationType `json:"relation"`
	Target   types.Ref          `json:"target"`
}

// DerivedEdge is an Edge together with the resolved target entity, as
// produced during derivation.
type DerivedEdge struct {
	Edge
	Entity *types.Entity
}

// Schema is the edge derivation table: ordered per-type rules plus
// cross-cutting rules applied to every entity type. It is static
// configuration — new entity types and relationships register here without
// touching the traversal loop.
type Schema struct {
	perType map[types.EntityType][]Rule
	common  []Rule
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{perType: make(map[types.EntityType][]Rule)}
}

// Register appends rules for one entity type, preserving order.
func (s *Schema) Register(t types.EntityType, rules ...Rule) {
	s.perType[t] = append(s.perType[t], rules...)
}

// RegisterCommon appends rules applied to every entity type, after its
// per-type rules.
func (s *Schema) RegisterCommon(rules ...Rule) {
	s.common = append(s.common, rules...)
}

// Rules returns the derivation rules for one entity type: its per-type rules
// in registration order, then the cross-cutting rules.
func (s *Schema) Rules(t types.EntityType) []Rule {
	per := s.perType[t]
	out := make([]Rule, 0, len(per)+len(s.common))
	out = append(out, per...)
	out = append(out, s.common...)
	return out
}

// Derive produces the outgoing edges of an entity in rule-then-list order:
// for each rule of the entity's type, the named attribute is read (missing
// or empty means no edges), normalized to an id list, and each id resolved
// against the index at the rule's target type. Unresolvable ids are dangling
// references and are dropped silently. The order is stable, never sorted.
func (s *Schema) Derive(e *types.Entity, ix *Index) []DerivedEdge {
	if e == nil {
		return nil
	}
	var edges []DerivedEdge
	for _, rule := range s.Rules(e.Type) {
		for _, id := range e.RelatedIDs(rule.Attribute) {
			target, ok := ix.Lookup(rule.Target, id)
			if !ok {
				continue
			}
			edges = append(edges, DerivedEdge{
				Edge: Edge{
					Relation: rule.Relation,
					Target:   types.NewRef(rule.Target, id),
				},
				Entity: target,
			})
		}
	}
	return edges
}

// skosRules builds the five SKOS mapping rules for entities whose matches
// point at the given type. Attribute names equal the relationship tags.
func skosRules(target types.EntityType) []Rule {
	skos := types.SKOSRelations()
	rules := make([]Rule, len(skos))
	for i, r := range skos {
		rules[i] = Rule{Attribute: string(r), Relation: r, Target: target}
	}
	return rules
}

// DefaultSchema returns the derivation table for the AI atlas ontology.
func DefaultSchema() *Schema {
	s := NewSchema()

	s.Register(types.EntityTypeAITask,
		Rule{"requiresCapability", types.RelationRequiresCapability, types.EntityTypeCapability},
		Rule{"hasRelatedLLMIntrinsic", types.RelationHasRelatedLLMIntrinsic, types.EntityTypeLLMIntrinsic},
	)

	s.Register(types.EntityTypeCapability,
		Rule{"requiredByTask", types.RelationRequiredByTask, types.EntityTypeAITask},
		Rule{"implementedByAdapter", types.RelationImplementedByAdapter, types.EntityTypeAdapter},
		Rule{"implementedByIntrinsic", types.RelationImplementedByIntrinsic, types.EntityTypeLLMIntrinsic},
		Rule{"isPartOf", types.RelationIsPartOf, types.EntityTypeCapabilityGroup},
	)
	s.Register(types.EntityTypeCapability, skosRules(types.EntityTypeCapability)...)

	s.Register(types.EntityTypeAdapter,
		Rule{"implementsCapability_adapter", types.RelationImplementsCapability, types.EntityTypeCapability},
	)

	s.Register(types.EntityTypeLLMIntrinsic,
		Rule{"implementsCapability_intrinsic", types.RelationImplementsCapability, types.EntityTypeCapability},
	)

	s.Register(types.EntityTypeRisk,
		Rule{"hasRelatedAction", types.RelationHasRelatedAction, types.EntityTypeAction},
		Rule{"isDetectedBy", types.RelationIsDetectedBy, types.EntityTypeRiskControl},
	)
	s.Register(types.EntityTypeRisk, skosRules(types.EntityTypeRisk)...)

	s.Register(types.EntityTypeCapabilityGroup,
		Rule{"hasPart", types.RelationHasPart, types.EntityTypeCapability},
		Rule{"belongsToDomain", types.RelationBelongsToDomain, types.EntityTypeCapabilityDomain},
	)

	s.Register(types.EntityTypeCapabilityDomain,
		Rule{"hasPart", types.RelationHasPart, types.EntityTypeCapabilityGroup},
	)

	s.Register(types.EntityTypeLLMQuestionPolicy,
		Rule{"hasRule", types.RelationHasRule, types.EntityTypeRule},
	)

	s.RegisterCommon(
		Rule{"hasDocumentation", types.RelationHasDocumentation, types.EntityTypeDocument},
		Rule{"hasLicense", types.RelationHasLicense, types.EntityTypeLicense},
	)

	return s
}
