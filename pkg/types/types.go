package types

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrEmptyID           = errors.New("id cannot be empty")
	ErrEmptyType         = errors.New("entity type cannot be empty")
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// EntityType identifies the kind of an entity in the knowledge graph.
// The string value is the wire tag used in serialized results and in the
// ontology snapshot files.
type EntityType string

const (
	// Risk entities
	EntityTypeRisk         EntityType = "Risk"
	EntityTypeRiskGroup    EntityType = "RiskGroup"
	EntityTypeRiskTaxonomy EntityType = "RiskTaxonomy"
	EntityTypeRiskControl  EntityType = "RiskControl"
	EntityTypeRiskIncident EntityType = "RiskIncident"
	EntityTypeAction       EntityType = "Action"

	// AI system entities
	EntityTypeAISystem EntityType = "AiSystem"
	EntityTypeAIModel  EntityType = "AiModel"
	EntityTypeAITask   EntityType = "AiTask"
	EntityTypeUseCase  EntityType = "UseCase"

	// Capability entities
	EntityTypeCapability         EntityType = "Capability"
	EntityTypeCapabilityGroup    EntityType = "CapabilityGroup"
	EntityTypeCapabilityDomain   EntityType = "CapabilityDomain"
	EntityTypeCapabilityTaxonomy EntityType = "CapabilityTaxonomy"

	// Intrinsic entities
	EntityTypeLLMIntrinsic EntityType = "LLMIntrinsic"
	EntityTypeAdapter      EntityType = "Adapter"

	// Evaluation entities
	EntityTypeEvaluation   EntityType = "Evaluation"
	EntityTypeAIEvalResult EntityType = "AiEvalResult"
	EntityTypeBenchmark    EntityType = "BenchmarkMetadataCard"

	// Supporting entities
	EntityTypeStakeholder       EntityType = "Stakeholder"
	EntityTypeStakeholderGroup  EntityType = "StakeholderGroup"
	EntityTypeDocument          EntityType = "Documentation"
	EntityTypeDataset           EntityType = "Dataset"
	EntityTypePrinciple         EntityType = "Principle"
	EntityTypeLLMQuestionPolicy EntityType = "LLMQuestionPolicy"
	EntityTypeRule              EntityType = "Rule"
	EntityTypeLicense           EntityType = "License"
	EntityTypeOrganization      EntityType = "Organization"
)

// entityTypes lists every declared entity type in declaration order.
var entityTypes = []EntityType{
	EntityTypeRisk,
	EntityTypeRiskGroup,
	EntityTypeRiskTaxonomy,
	EntityTypeRiskControl,
	EntityTypeRiskIncident,
	EntityTypeAction,
	EntityTypeAISystem,
	EntityTypeAIModel,
	EntityTypeAITask,
	EntityTypeUseCase,
	EntityTypeCapability,
	EntityTypeCapabilityGroup,
	EntityTypeCapabilityDomain,
	EntityTypeCapabilityTaxonomy,
	EntityTypeLLMIntrinsic,
	EntityTypeAdapter,
	EntityTypeEvaluation,
	EntityTypeAIEvalResult,
	EntityTypeBenchmark,
	EntityTypeStakeholder,
	EntityTypeStakeholderGroup,
	EntityTypeDocument,
	EntityTypeDataset,
	EntityTypePrinciple,
	EntityTypeLLMQuestionPolicy,
	EntityTypeRule,
	EntityTypeLicense,
	EntityTypeOrganization,
}

// EntityTypes returns every declared entity type in declaration order.
// The returned slice is a copy and may be mutated by the caller.
func EntityTypes() []EntityType {
	out := make([]EntityType, len(entityTypes))
	copy(out, entityTypes)
	return out
}

// ParseEntityType resolves a wire tag (e.g. "AiTask") to its EntityType.
func ParseEntityType(s string) (EntityType, error) {
	for _, t := range entityTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
}

// RelationType identifies the kind of a directed relationship between two
// entities. The string value is the wire tag used in serialized results.
type RelationType string

const (
	// Risk relationships
	RelationHasRelatedRisk     RelationType = "hasRelatedRisk"
	RelationHasRelatedAction   RelationType = "hasRelatedAction"
	RelationIsDetectedBy       RelationType = "isDetectedBy"
	RelationDetectsRiskConcept RelationType = "detectsRiskConcept"
	RelationRefersToRisk       RelationType = "refersToRisk"

	// Task-capability relationships
	RelationRequiresCapability RelationType = "requiresCapability"
	RelationRequiredByTask     RelationType = "requiredByTask"

	// Capability-intrinsic relationships
	RelationImplementsCapability        RelationType = "implementsCapability"
	RelationImplementedByIntrinsic      RelationType = "implementedByIntrinsic"
	RelationImplementsCapabilityAdapter RelationType = "implementsCapability_adapter"
	RelationImplementedByAdapter        RelationType = "implementedByAdapter"

	// Capability-benchmark relationships
	RelationEvaluatesCapability  RelationType = "evaluatesCapability"
	RelationEvaluatedByBenchmark RelationType = "evaluatedByBenchmark"

	// Hierarchy relationships
	RelationIsPartOf            RelationType = "isPartOf"
	RelationHasPart             RelationType = "hasPart"
	RelationBelongsToDomain     RelationType = "belongsToDomain"
	RelationIsDefinedByTaxonomy RelationType = "isDefinedByTaxonomy"

	// SKOS mapping relationships
	RelationExactMatch   RelationType = "exactMatch"
	RelationCloseMatch   RelationType = "closeMatch"
	RelationBroadMatch   RelationType = "broadMatch"
	RelationNarrowMatch  RelationType = "narrowMatch"
	RelationRelatedMatch RelationType = "relatedMatch"

	// Evaluation relationships
	RelationHasEvaluation          RelationType = "hasEvaluation"
	RelationEvaluatesRisk          RelationType = "evaluatesRisk"
	RelationHasRelatedLLMIntrinsic RelationType = "hasRelatedLLMIntrinsic"

	// Documentation relationships
	RelationHasDocumentation RelationType = "hasDocumentation"
	RelationHasLicense       RelationType = "hasLicense"

	// AI system relationships
	RelationHasAITask      RelationType = "hasAiTask"
	RelationHasStakeholder RelationType = "hasStakeholder"

	// Rule relationships
	RelationHasRule RelationType = "hasRule"
)

// SKOSRelations lists the five SKOS mapping relationship types, in the order
// they are derived from an entity's mapping attributes.
func SKOSRelations() []RelationType {
	return []RelationType{
		RelationExactMatch,
		RelationCloseMatch,
		RelationBroadMatch,
		RelationNarrowMatch,
		RelationRelatedMatch,
	}
}

// Ref is the composite identity of an entity: (type, id). Entity ids are
// unique only within a type, so every lookup, visited set, and result map
// keys by Ref, never by a bare id.
type Ref struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
}

// NewRef builds a Ref from an entity type and id.
func NewRef(t EntityType, id string) Ref {
	return Ref{Type: t, ID: id}
}

// String renders the Ref as "Type:id". Entity type tags contain no colon,
// so the first colon always separates type from id.
func (r Ref) String() string {
	return string(r.Type) + ":" + r.ID
}

// IsZero reports whether the Ref is the zero value.
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}
