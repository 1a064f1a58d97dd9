package graph

import (
	"testing"

	"github.com/soundprediction/ontonav/pkg/types"
)

func TestIndexLookup(t *testing.T) {
	t.Parallel()

	ix := NewIndex(map[types.EntityType][]*types.Entity{
		types.EntityTypeAITask: {
			{ID: "t1", Type: types.EntityTypeAITask},
		},
		types.EntityTypeCapability: {
			{ID: "c1", Type: types.EntityTypeCapability},
			{ID: "c2", Type: types.EntityTypeCapability},
		},
	})

	t.Run("hit", func(t *testing.T) {
		e, ok := ix.Lookup(types.EntityTypeCapability, "c1")
		if !ok {
			t.Fatal("expected lookup to succeed")
		}
		if e.ID != "c1" {
			t.Errorf("expected c1, got %s", e.ID)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, ok := ix.Lookup(types.EntityTypeCapability, "c9"); ok {
			t.Error("expected lookup to miss")
		}
	})

	t.Run("missing type", func(t *testing.T) {
		if _, ok := ix.Lookup(types.EntityTypeRisk, "c1"); ok {
			t.Error("expected lookup to miss")
		}
	})

	t.Run("id scoped to type", func(t *testing.T) {
		if _, ok := ix.Lookup(types.EntityTypeAITask, "c1"); ok {
			t.Error("capability id must not resolve under task type")
		}
	})

	if ix.Size() != 3 {
		t.Errorf("expected size 3, got %d", ix.Size())
	}
	if ix.Count(types.EntityTypeCapability) != 2 {
		t.Errorf("expected 2 capabilities, got %d", ix.Count(types.EntityTypeCapability))
	}
}

func TestIndexFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	first := &types.Entity{ID: "c1", Type: types.EntityTypeCapability,
		Attrs: map[string]interface{}{"name": "first"}}
	second := &types.Entity{ID: "c1", Type: types.EntityTypeCapability,
		Attrs: map[string]interface{}{"name": "second"}}

	ix := NewIndex(map[types.EntityType][]*types.Entity{
		types.EntityTypeCapability: {first, second},
	})

	e, ok := ix.Lookup(types.EntityTypeCapability, "c1")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if e.Name() != "first" {
		t.Errorf("expected first occurrence to win, got %q", e.Name())
	}
	if ix.Size() != 1 {
		t.Errorf("expected size 1, got %d", ix.Size())
	}
}

func TestIndexSkipsInvalidEntities(t *testing.T) {
	t.Parallel()

	ix := NewIndex(map[types.EntityType][]*types.Entity{
		types.EntityTypeCapability: {
			nil,
			{ID: "", Type: types.EntityTypeCapability},
			{ID: "c1", Type: types.EntityTypeCapability},
		},
	})

	if ix.Size() != 1 {
		t.Errorf("expected only the valid entity indexed, got size %d", ix.Size())
	}
	if !ix.Has(types.EntityTypeCapability, "c1") {
		t.Error("expected c1 to be indexed")
	}
}

func TestIndexSameIDAcrossTypes(t *testing.T) {
	t.Parallel()

	ix := NewIndex(map[types.EntityType][]*types.Entity{
		types.EntityTypeRisk:       {{ID: "x1", Type: types.EntityTypeRisk}},
		types.EntityTypeCapability: {{ID: "x1", Type: types.EntityTypeCapability}},
	})

	r, ok := ix.Lookup(types.EntityTypeRisk, "x1")
	if !ok || r.Type != types.EntityTypeRisk {
		t.Fatal("expected risk x1")
	}
	c, ok := ix.Lookup(types.EntityTypeCapability, "x1")
	if !ok || c.Type != types.EntityTypeCapability {
		t.Fatal("expected capability x1")
	}
	if r == c {
		t.Error("expected distinct entities for the same id under different types")
	}
}
