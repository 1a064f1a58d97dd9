package ontonav

import (
	"slices"

	"github.com/soundprediction/ontonav/pkg/graph"
	"github.com/soundprediction/ontonav/pkg/types"
)

// Related returns the entities reachable from ref over one relationship
// kind, in visit order. A zero target accepts any entity type, maxDepth <= 0
// means one hop, and an empty taxonomy matches all taxonomies.
func (e *Explorer) Related(ref types.Ref, rel types.RelationType, target types.EntityType, maxDepth int, taxonomy string) ([]*types.Entity, error) {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	policy := graph.Policy{
		MaxDepth:              maxDepth,
		IncludedRelationships: []types.RelationType{rel},
	}
	if target != "" {
		policy.IncludedEntityTypes = []types.EntityType{target}
	}
	if taxonomy != "" {
		policy.NodeFilters = map[string]interface{}{types.AttrTaxonomy: taxonomy}
	}

	result, err := e.navigate(ref.ID, ref.Type, policy, "")
	if err != nil {
		return nil, err
	}

	var out []*types.Entity
	for _, node := range result.Nodes() {
		if node.Depth > 0 {
			out = append(out, node.Entity)
		}
	}
	return out, nil
}

// entitiesOfType extracts result entities of the given types, in visit
// order.
func entitiesOfType(result *graph.Result, ts ...types.EntityType) []*types.Entity {
	var out []*types.Entity
	for _, node := range result.Nodes() {
		if slices.Contains(ts, node.Ref.Type) {
			out = append(out, node.Entity)
		}
	}
	return out
}

// CapabilitiesForTask returns the capabilities a task requires.
func (e *Explorer) CapabilitiesForTask(task Selector, taxonomy string) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeAITask, task)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "capabilities_for_task")
	if err != nil {
		return nil, err
	}
	return filterByTaxonomy(entitiesOfType(result, types.EntityTypeCapability), taxonomy), nil
}

// IntrinsicsForCapability returns the intrinsics implementing a capability.
// Adapters count as implementations unless includeAdapters is false.
func (e *Explorer) IntrinsicsForCapability(capability Selector, taxonomy string, includeAdapters bool) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeCapability, capability)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "intrinsics_for_capability")
	if err != nil {
		return nil, err
	}
	extract := []types.EntityType{types.EntityTypeLLMIntrinsic}
	if includeAdapters {
		extract = append(extract, types.EntityTypeAdapter)
	}
	return filterByTaxonomy(entitiesOfType(result, extract...), taxonomy), nil
}

// TasksForCapability returns the tasks that require a capability.
func (e *Explorer) TasksForCapability(capability Selector, taxonomy string) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeCapability, capability)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "tasks_for_capability")
	if err != nil {
		return nil, err
	}
	return filterByTaxonomy(entitiesOfType(result, types.EntityTypeAITask), taxonomy), nil
}

// IntrinsicsForTask returns the intrinsics directly related to a task.
func (e *Explorer) IntrinsicsForTask(task Selector, taxonomy string) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeAITask, task)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "intrinsics_for_task")
	if err != nil {
		return nil, err
	}
	return filterByTaxonomy(entitiesOfType(result, types.EntityTypeLLMIntrinsic), taxonomy), nil
}

// RelatedRisks returns the risks connected to a risk through SKOS mappings.
func (e *Explorer) RelatedRisks(risk Selector, taxonomy string) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeRisk, risk)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "related_risks")
	if err != nil {
		return nil, err
	}
	// The anchor itself is a risk; only neighbors count as related.
	var related []*types.Entity
	for _, node := range result.Nodes() {
		if node.Ref.Type == types.EntityTypeRisk && node.Depth > 0 {
			related = append(related, node.Entity)
		}
	}
	return filterByTaxonomy(related, taxonomy), nil
}

// ControlsForRisk returns the controls that detect a risk.
func (e *Explorer) ControlsForRisk(risk Selector, taxonomy string) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeRisk, risk)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "controls_for_risk")
	if err != nil {
		return nil, err
	}
	return filterByTaxonomy(entitiesOfType(result, types.EntityTypeRiskControl), taxonomy), nil
}

// ActionsForRisk returns the actions mitigating a risk.
func (e *Explorer) ActionsForRisk(risk Selector, taxonomy string) ([]*types.Entity, error) {
	anchor, err := e.find(types.EntityTypeRisk, risk)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "actions_for_risk")
	if err != nil {
		return nil, err
	}
	return filterByTaxonomy(entitiesOfType(result, types.EntityTypeAction), taxonomy), nil
}

// TaskTrace is the structured answer to "what ultimately implements this
// task": the task, the capabilities it requires, and the intrinsics and
// adapters implementing those capabilities.
type TaskTrace struct {
	Task         *types.Entity   `json:"task"`
	Capabilities []*types.Entity `json:"capabilities"`
	// IntrinsicsByCapability groups implementations by the id of the
	// required capability they were reached through. Every required
	// capability has an entry, possibly empty.
	IntrinsicsByCapability map[string][]*types.Entity `json:"intrinsics_by_capability"`
	// AllIntrinsics is the flat list of implementations, in visit order.
	AllIntrinsics []*types.Entity `json:"all_intrinsics"`
}

// TraceTaskToIntrinsics walks task to capabilities to intrinsics in one
// traversal and groups the implementation layer by the capability that led
// to it.
func (e *Explorer) TraceTaskToIntrinsics(task Selector) (*TaskTrace, error) {
	anchor, err := e.find(types.EntityTypeAITask, task)
	if err != nil {
		return nil, err
	}
	result, err := e.NavigatePattern(anchor.ID, anchor.Type, "end_to_end_task_to_intrinsics")
	if err != nil {
		return nil, err
	}

	trace := &TaskTrace{
		Task:                   anchor,
		IntrinsicsByCapability: make(map[string][]*types.Entity),
	}
	for _, node := range result.Nodes() {
		if node.Ref.Type == types.EntityTypeCapability && node.Depth == 1 {
			trace.Capabilities = append(trace.Capabilities, node.Entity)
			trace.IntrinsicsByCapability[node.Ref.ID] = []*types.Entity{}
		}
	}
	for _, node := range result.Nodes() {
		switch node.Ref.Type {
		case types.EntityTypeLLMIntrinsic, types.EntityTypeAdapter:
		default:
			continue
		}
		if node.Depth != 2 || node.Parent == nil {
			continue
		}
		if _, ok := trace.IntrinsicsByCapability[node.Parent.ID]; ok {
			trace.IntrinsicsByCapability[node.Parent.ID] = append(trace.IntrinsicsByCapability[node.Parent.ID], node.Entity)
		}
		trace.AllIntrinsics = append(trace.AllIntrinsics, node.Entity)
	}
	return trace, nil
}
