package types

import "fmt"

// Ontology is the loaded knowledge-graph snapshot: one ordered collection of
// entities per collection name. Collections keep file order; the navigation
// engine treats the whole snapshot as immutable after load.
//
// AiSystem, AiModel, and UseCase entities have no collection of their own in
// snapshot files; lookups for those types resolve against empty collections.
type Ontology struct {
	Risks                  []*Entity `json:"risks,omitempty"`
	RiskGroups             []*Entity `json:"riskgroups,omitempty"`
	Taxonomies             []*Entity `json:"taxonomies,omitempty"`
	RiskControls           []*Entity `json:"riskcontrols,omitempty"`
	RiskIncidents          []*Entity `json:"riskincidents,omitempty"`
	Actions                []*Entity `json:"actions,omitempty"`
	AITasks                []*Entity `json:"aitasks,omitempty"`
	Capabilities           []*Entity `json:"capabilities,omitempty"`
	CapabilityGroups       []*Entity `json:"capabilitygroups,omitempty"`
	CapabilityDomains      []*Entity `json:"capabilitydomains,omitempty"`
	CapabilityTaxonomies   []*Entity `json:"capabilitytaxonomies,omitempty"`
	LLMIntrinsics          []*Entity `json:"llmintrinsics,omitempty"`
	Adapters               []*Entity `json:"adapters,omitempty"`
	BenchmarkMetadataCards []*Entity `json:"benchmarkmetadatacards,omitempty"`
	Evaluations            []*Entity `json:"evaluations,omitempty"`
	AIEvalResults          []*Entity `json:"aievalresults,omitempty"`
	Stakeholders           []*Entity `json:"stakeholders,omitempty"`
	StakeholderGroups      []*Entity `json:"stakeholdergroups,omitempty"`
	Documents              []*Entity `json:"documents,omitempty"`
	Datasets               []*Entity `json:"datasets,omitempty"`
	Principles             []*Entity `json:"principles,omitempty"`
	LLMQuestionPolicies    []*Entity `json:"llmquestionpolicies,omitempty"`
	Rules                  []*Entity `json:"rules,omitempty"`
	Licenses               []*Entity `json:"licenses,omitempty"`
	Organizations          []*Entity `json:"organizations,omitempty"`
}

// collectionTypes maps snapshot collection names to entity types, in the
// order collections appear in snapshot files.
var collectionTypes = []struct {
	Name string
	Type EntityType
}{
	{"risks", EntityTypeRisk},
	{"riskgroups", EntityTypeRiskGroup},
	{"taxonomies", EntityTypeRiskTaxonomy},
	{"riskcontrols", EntityTypeRiskControl},
	{"riskincidents", EntityTypeRiskIncident},
	{"actions", EntityTypeAction},
	{"aitasks", EntityTypeAITask},
	{"capabilities", EntityTypeCapability},
	{"capabilitygroups", EntityTypeCapabilityGroup},
	{"capabilitydomains", EntityTypeCapabilityDomain},
	{"capabilitytaxonomies", EntityTypeCapabilityTaxonomy},
	{"llmintrinsics", EntityTypeLLMIntrinsic},
	{"adapters", EntityTypeAdapter},
	{"benchmarkmetadatacards", EntityTypeBenchmark},
	{"evaluations", EntityTypeEvaluation},
	{"aievalresults", EntityTypeAIEvalResult},
	{"stakeholders", EntityTypeStakeholder},
	{"stakeholdergroups", EntityTypeStakeholderGroup},
	{"documents", EntityTypeDocument},
	{"datasets", EntityTypeDataset},
	{"principles", EntityTypePrinciple},
	{"llmquestionpolicies", EntityTypeLLMQuestionPolicy},
	{"rules", EntityTypeRule},
	{"licenses", EntityTypeLicense},
	{"organizations", EntityTypeOrganization},
}

// CollectionType resolves a snapshot collection name (e.g. "aitasks") to the
// entity type its records carry.
func CollectionType(name string) (EntityType, bool) {
	for _, ct := range collectionTypes {
		if ct.Name == name {
			return ct.Type, true
		}
	}
	return "", false
}

// CollectionNames returns every known collection name in snapshot order.
func CollectionNames() []string {
	names := make([]string, len(collectionTypes))
	for i, ct := range collectionTypes {
		names[i] = ct.Name
	}
	return names
}

// collection returns the slice holding entities of the given type, or nil
// for types without a collection.
func (o *Ontology) collection(t EntityType) *[]*Entity {
	switch t {
	case EntityTypeRisk:
		return &o.Risks
	case EntityTypeRiskGroup:
		return &o.RiskGroups
	case EntityTypeRiskTaxonomy:
		return &o.Taxonomies
	case EntityTypeRiskControl:
		return &o.RiskControls
	case EntityTypeRiskIncident:
		return &o.RiskIncidents
	case EntityTypeAction:
		return &o.Actions
	case EntityTypeAITask:
		return &o.AITasks
	case EntityTypeCapability:
		return &o.Capabilities
	case EntityTypeCapabilityGroup:
		return &o.CapabilityGroups
	case EntityTypeCapabilityDomain:
		return &o.CapabilityDomains
	case EntityTypeCapabilityTaxonomy:
		return &o.CapabilityTaxonomies
	case EntityTypeLLMIntrinsic:
		return &o.LLMIntrinsics
	case EntityTypeAdapter:
		return &o.Adapters
	case EntityTypeBenchmark:
		return &o.BenchmarkMetadataCards
	case EntityTypeEvaluation:
		return &o.Evaluations
	case EntityTypeAIEvalResult:
		return &o.AIEvalResults
	case EntityTypeStakeholder:
		return &o.Stakeholders
	case EntityTypeStakeholderGroup:
		return &o.StakeholderGroups
	case EntityTypeDocument:
		return &o.Documents
	case EntityTypeDataset:
		return &o.Datasets
	case EntityTypePrinciple:
		return &o.Principles
	case EntityTypeLLMQuestionPolicy:
		return &o.LLMQuestionPolicies
	case EntityTypeRule:
		return &o.Rules
	case EntityTypeLicense:
		return &o.Licenses
	case EntityTypeOrganization:
		return &o.Organizations
	default:
		return nil
	}
}

// Add appends an entity to the collection matching its type tag.
func (o *Ontology) Add(e *Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	c := o.collection(e.Type)
	if c == nil {
		return fmt.Errorf("%w: %q has no collection", ErrUnknownEntityType, e.Type)
	}
	*c = append(*c, e)
	return nil
}

// Collection returns the ordered entities of the given type. Types without
// a collection yield nil.
func (o *Ontology) Collection(t EntityType) []*Entity {
	c := o.collection(t)
	if c == nil {
		return nil
	}
	return *c
}

// Collections returns the snapshot as a type-keyed map of ordered entity
// collections, the construction input for a navigator index.
func (o *Ontology) Collections() map[EntityType][]*Entity {
	out := make(map[EntityType][]*Entity, len(collectionTypes))
	for _, ct := range collectionTypes {
		out[ct.Type] = *o.collection(ct.Type)
	}
	return out
}

// Counts returns the number of entities per collection, skipping empty
// collections.
func (o *Ontology) Counts() map[EntityType]int {
	out := make(map[EntityType]int)
	for _, ct := range collectionTypes {
		if n := len(*o.collection(ct.Type)); n > 0 {
			out[ct.Type] = n
		}
	}
	return out
}

// Size returns the total number of entities in the snapshot.
func (o *Ontology) Size() int {
	n := 0
	for _, ct := range collectionTypes {
		n += len(*o.collection(ct.Type))
	}
	return n
}
