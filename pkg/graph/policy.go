package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/soundprediction/ontonav/pkg/types"
)

// Policy validation errors
var (
	ErrNegativeDepth      = errors.New("max depth cannot be negative")
	ErrNegativeMaxResults = errors.New("max results cannot be negative")
)

// DefaultMaxDepth is the traversal depth applied by DefaultPolicy.
const DefaultMaxDepth = 2

// Policy is the immutable configuration governing one traversal. The zero
// value is a valid policy: depth 0, no relationship or type constraints,
// deduplication on, caching on.
type Policy struct {
	// MaxDepth bounds how far from the start node the traversal expands.
	// Nodes at MaxDepth are still accepted but never expanded.
	MaxDepth int `json:"max_depth"`
	// IncludedRelationships, when non-empty, is the only set of
	// relationship kinds the traversal follows.
	IncludedRelationships []types.RelationType `json:"included_relationships,omitempty"`
	// ExcludedRelationships are never followed, even when also included.
	ExcludedRelationships []types.RelationType `json:"excluded_relationships,omitempty"`
	// IncludedEntityTypes, when non-empty, is the only set of entity types
	// accepted into the result.
	IncludedEntityTypes []types.EntityType `json:"included_entity_types,omitempty"`
	// ExcludedEntityTypes are never accepted, even when also included.
	ExcludedEntityTypes []types.EntityType `json:"excluded_entity_types,omitempty"`
	// NodeFilters maps attribute names to required values; a node is
	// accepted only when every entry matches exactly. A missing attribute
	// matches only a nil expected value.
	NodeFilters map[string]interface{} `json:"node_filters,omitempty"`
	// FollowBidirectional is informational: edge direction always comes
	// from the derivation table. Inverse relationships traverse only when
	// modeled as attributes of their own.
	FollowBidirectional bool `json:"follow_bidirectional,omitempty"`
	// DisableDedup permits revisiting nodes. Termination then depends on
	// MaxDepth alone.
	DisableDedup bool `json:"disable_dedup,omitempty"`
	// MaxResults caps accepted nodes; 0 means uncapped.
	MaxResults int `json:"max_results,omitempty"`
	// DisableCache bypasses the navigator's result cache for this query.
	DisableCache bool `json:"disable_cache,omitempty"`
}

// DefaultPolicy returns the baseline policy: depth 2, no constraints,
// deduplication and caching on.
func DefaultPolicy() Policy {
	return Policy{MaxDepth: DefaultMaxDepth, FollowBidirectional: true}
}

// Clone returns a policy sharing nothing with the receiver, so registry
// templates can be handed out and adjusted safely.
func (p Policy) Clone() Policy {
	out := p
	out.IncludedRelationships = slices.Clone(p.IncludedRelationships)
	out.ExcludedRelationships = slices.Clone(p.ExcludedRelationships)
	out.IncludedEntityTypes = slices.Clone(p.IncludedEntityTypes)
	out.ExcludedEntityTypes = slices.Clone(p.ExcludedEntityTypes)
	out.NodeFilters = maps.Clone(p.NodeFilters)
	return out
}

// Validate rejects malformed policies before any traversal work starts.
func (p Policy) Validate() error {
	if p.MaxDepth < 0 {
		return ErrNegativeDepth
	}
	if p.MaxResults < 0 {
		return ErrNegativeMaxResults
	}
	return nil
}

// AllowsRelationship reports whether the traversal may follow an edge of the
// given kind. Exclusion always wins over inclusion.
func (p Policy) AllowsRelationship(r types.RelationType) bool {
	if slices.Contains(p.ExcludedRelationships, r) {
		return false
	}
	if len(p.IncludedRelationships) > 0 && !slices.Contains(p.IncludedRelationships, r) {
		return false
	}
	return true
}

// AllowsEntityType reports whether nodes of the given type may enter the
// result. Exclusion always wins over inclusion.
func (p Policy) AllowsEntityType(t types.EntityType) bool {
	if slices.Contains(p.ExcludedEntityTypes, t) {
		return false
	}
	if len(p.IncludedEntityTypes) > 0 && !slices.Contains(p.IncludedEntityTypes, t) {
		return false
	}
	return true
}

// MatchesNodeFilters reports whether the entity satisfies every node filter.
// Filters are AND-combined; one unmet entry rejects the node.
func (p Policy) MatchesNodeFilters(e *types.Entity) bool {
	if len(p.NodeFilters) == 0 {
		return true
	}
	for name, want := range p.NodeFilters {
		got, ok := e.Attr(name)
		if !ok {
			got = nil
		}
		if !filterValueEqual(got, want) {
			return false
		}
	}
	return true
}

// filterValueEqual compares an attribute value with a filter's expected
// value. Numeric values compare by magnitude regardless of their decoded Go
// type; everything else compares structurally.
func filterValueEqual(got, want interface{}) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	if gf, ok := asFloat(got); ok {
		wf, ok := asFloat(want)
		return ok && gf == wf
	}
	return reflect.DeepEqual(got, want)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// cacheKeyDoc is the canonical form hashed into a cache key. Field order is
// fixed by the struct; set-valued fields are sorted copies; map keys are
// sorted by the JSON encoder. Every policy field that can change a result is
// part of the key.
type cacheKeyDoc struct {
	StartID               string                 `json:"start_id"`
	StartType             string                 `json:"start_type"`
	MaxDepth              int                    `json:"max_depth"`
	IncludedRelationships []string               `json:"included_relationships"`
	ExcludedRelationships []string               `json:"excluded_relationships"`
	IncludedEntityTypes   []string               `json:"included_entity_types"`
	ExcludedEntityTypes   []string               `json:"excluded_entity_types"`
	NodeFilters           map[string]interface{} `json:"node_property_filters"`
	FollowBidirectional   bool                   `json:"follow_bidirectional"`
	MaxResults            int                    `json:"max_results"`
	Deduplicate           bool                   `json:"deduplicate_results"`
}

// CacheKey returns the deterministic key identifying a (start, policy)
// query: the sha256 hex digest of the canonical JSON form. Policies that
// differ in any result-affecting field produce different keys.
func (p Policy) CacheKey(start types.Ref) (string, error) {
	doc := cacheKeyDoc{
		StartID:               start.ID,
		StartType:             string(start.Type),
		MaxDepth:              p.MaxDepth,
		IncludedRelationships: sortedRelationTags(p.IncludedRelationships),
		ExcludedRelationships: sortedRelationTags(p.ExcludedRelationships),
		IncludedEntityTypes:   sortedEntityTags(p.IncludedEntityTypes),
		ExcludedEntityTypes:   sortedEntityTags(p.ExcludedEntityTypes),
		NodeFilters:           p.NodeFilters,
		FollowBidirectional:   p.FollowBidirectional,
		MaxResults:            p.MaxResults,
		Deduplicate:           !p.DisableDedup,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to build cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func sortedRelationTags(rels []types.RelationType) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = string(r)
	}
	slices.Sort(out)
	return out
}

func sortedEntityTags(ts []types.EntityType) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	slices.Sort(out)
	return out
}
