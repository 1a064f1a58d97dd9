package graph

import (
	"errors"
	"testing"

	"github.com/soundprediction/ontonav/pkg/types"
)

func TestPolicyValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		policy Policy
		want   error
	}{
		{"zero value", Policy{}, nil},
		{"default", DefaultPolicy(), nil},
		{"negative depth", Policy{MaxDepth: -1}, ErrNegativeDepth},
		{"negative max results", Policy{MaxResults: -5}, ErrNegativeMaxResults},
		{"capped", Policy{MaxDepth: 3, MaxResults: 100}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.Validate()
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	if p.MaxDepth != 2 {
		t.Errorf("expected default depth 2, got %d", p.MaxDepth)
	}
	if p.DisableDedup || p.DisableCache {
		t.Error("deduplication and caching must default on")
	}
	if !p.FollowBidirectional {
		t.Error("expected follow bidirectional by default")
	}
}

func TestAllowsRelationship(t *testing.T) {
	t.Parallel()

	req := types.RelationRequiresCapability
	part := types.RelationIsPartOf

	cases := []struct {
		name   string
		policy Policy
		rel    types.RelationType
		want   bool
	}{
		{"no constraints", Policy{}, req, true},
		{"included", Policy{IncludedRelationships: []types.RelationType{req}}, req, true},
		{"not included", Policy{IncludedRelationships: []types.RelationType{req}}, part, false},
		{"excluded", Policy{ExcludedRelationships: []types.RelationType{req}}, req, false},
		{"excluded wins over included", Policy{
			IncludedRelationships: []types.RelationType{req},
			ExcludedRelationships: []types.RelationType{req},
		}, req, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.policy.AllowsRelationship(tc.rel); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAllowsEntityType(t *testing.T) {
	t.Parallel()

	capability := types.EntityTypeCapability
	risk := types.EntityTypeRisk

	cases := []struct {
		name   string
		policy Policy
		typ    types.EntityType
		want   bool
	}{
		{"no constraints", Policy{}, capability, true},
		{"included", Policy{IncludedEntityTypes: []types.EntityType{capability}}, capability, true},
		{"not included", Policy{IncludedEntityTypes: []types.EntityType{capability}}, risk, false},
		{"excluded", Policy{ExcludedEntityTypes: []types.EntityType{risk}}, risk, false},
		{"excluded wins over included", Policy{
			IncludedEntityTypes: []types.EntityType{risk},
			ExcludedEntityTypes: []types.EntityType{risk},
		}, risk, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.policy.AllowsEntityType(tc.typ); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMatchesNodeFilters(t *testing.T) {
	t.Parallel()

	entity := &types.Entity{ID: "c1", Type: types.EntityTypeCapability,
		Attrs: map[string]interface{}{
			"tag":      "reading-comprehension",
			"maturity": 3,
			"active":   true,
		}}

	t.Run("no filters match everything", func(t *testing.T) {
		if !(Policy{}).MatchesNodeFilters(entity) {
			t.Error("expected match with no filters")
		}
	})

	t.Run("all entries must match", func(t *testing.T) {
		p := Policy{NodeFilters: map[string]interface{}{
			"tag":    "reading-comprehension",
			"active": true,
		}}
		if !p.MatchesNodeFilters(entity) {
			t.Error("expected match when every filter holds")
		}
	})

	t.Run("one unmet entry rejects", func(t *testing.T) {
		p := Policy{NodeFilters: map[string]interface{}{
			"tag":    "reading-comprehension",
			"active": false,
		}}
		if p.MatchesNodeFilters(entity) {
			t.Error("expected rejection when one filter fails")
		}
	})

	t.Run("missing attribute matches only nil", func(t *testing.T) {
		p := Policy{NodeFilters: map[string]interface{}{"license": nil}}
		if !p.MatchesNodeFilters(entity) {
			t.Error("expected missing attribute to match nil filter")
		}
		p = Policy{NodeFilters: map[string]interface{}{"license": "apache-2.0"}}
		if p.MatchesNodeFilters(entity) {
			t.Error("expected missing attribute to fail non-nil filter")
		}
	})

	t.Run("numeric values compare by magnitude", func(t *testing.T) {
		p := Policy{NodeFilters: map[string]interface{}{"maturity": float64(3)}}
		if !p.MatchesNodeFilters(entity) {
			t.Error("expected int attribute to match float filter of equal value")
		}
		p = Policy{NodeFilters: map[string]interface{}{"maturity": 4}}
		if p.MatchesNodeFilters(entity) {
			t.Error("expected unequal numeric filter to fail")
		}
	})
}

func TestCacheKeyDeterministic(t *testing.T) {
	t.Parallel()

	start := types.NewRef(types.EntityTypeAITask, "t1")

	a := Policy{
		MaxDepth:              2,
		IncludedRelationships: []types.RelationType{types.RelationRequiresCapability, types.RelationIsPartOf},
		IncludedEntityTypes:   []types.EntityType{types.EntityTypeCapability, types.EntityTypeAITask},
		NodeFilters:           map[string]interface{}{"tag": "x", "active": true},
	}
	// Same sets in a different declaration order.
	b := Policy{
		MaxDepth:              2,
		IncludedRelationships: []types.RelationType{types.RelationIsPartOf, types.RelationRequiresCapability},
		IncludedEntityTypes:   []types.EntityType{types.EntityTypeAITask, types.EntityTypeCapability},
		NodeFilters:           map[string]interface{}{"active": true, "tag": "x"},
	}

	ka, err := a.CacheKey(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kb, err := b.CacheKey(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ka != kb {
		t.Error("expected set order not to affect the cache key")
	}
	if len(ka) != 64 {
		t.Errorf("expected sha256 hex key, got %d chars", len(ka))
	}
}

func TestCacheKeySensitivity(t *testing.T) {
	t.Parallel()

	start := types.NewRef(types.EntityTypeAITask, "t1")
	base := DefaultPolicy()
	baseKey, err := base.CacheKey(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	variants := map[string]Policy{
		"max depth": {MaxDepth: 3, FollowBidirectional: true},
		"included relationships": func() Policy {
			p := DefaultPolicy()
			p.IncludedRelationships = []types.RelationType{types.RelationRequiresCapability}
			return p
		}(),
		"excluded entity types": func() Policy {
			p := DefaultPolicy()
			p.ExcludedEntityTypes = []types.EntityType{types.EntityTypeDocument}
			return p
		}(),
		"node filters": func() Policy {
			p := DefaultPolicy()
			p.NodeFilters = map[string]interface{}{"tag": "x"}
			return p
		}(),
		"follow bidirectional": {MaxDepth: 2},
		"max results": func() Policy {
			p := DefaultPolicy()
			p.MaxResults = 10
			return p
		}(),
		"dedup flag": func() Policy {
			p := DefaultPolicy()
			p.DisableDedup = true
			return p
		}(),
	}

	for name, p := range variants {
		t.Run(name, func(t *testing.T) {
			k, err := p.CacheKey(start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if k == baseKey {
				t.Errorf("expected %s to change the cache key", name)
			}
		})
	}

	t.Run("start identity", func(t *testing.T) {
		other, err := base.CacheKey(types.NewRef(types.EntityTypeAITask, "t2"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if other == baseKey {
			t.Error("expected start id to change the cache key")
		}
		crossType, err := base.CacheKey(types.NewRef(types.EntityTypeCapability, "t1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crossType == baseKey {
			t.Error("expected start type to change the cache key")
		}
	})

	t.Run("cache toggle does not shift the key", func(t *testing.T) {
		p := DefaultPolicy()
		p.DisableCache = true
		k, err := p.CacheKey(start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if k != baseKey {
			t.Error("the cache toggle itself must not change the key")
		}
	})
}
