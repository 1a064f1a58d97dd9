package types

import (
	"errors"
	"testing"
)

func TestOntologyAdd(t *testing.T) {
	t.Parallel()
	t.Run("routes by type tag", func(t *testing.T) {
		o := &Ontology{}
		entities := []*Entity{
			{ID: "t1", Type: EntityTypeAITask},
			{ID: "c1", Type: EntityTypeCapability},
			{ID: "c2", Type: EntityTypeCapability},
			{ID: "r1", Type: EntityTypeRisk},
		}
		for _, e := range entities {
			if err := o.Add(e); err != nil {
				t.Fatalf("unexpected error adding %s: %v", e.Ref(), err)
			}
		}

		if len(o.AITasks) != 1 || len(o.Capabilities) != 2 || len(o.Risks) != 1 {
			t.Errorf("unexpected collection sizes: tasks=%d caps=%d risks=%d",
				len(o.AITasks), len(o.Capabilities), len(o.Risks))
		}
		if o.Size() != 4 {
			t.Errorf("expected size 4, got %d", o.Size())
		}
	})

	t.Run("type without collection", func(t *testing.T) {
		o := &Ontology{}
		err := o.Add(&Entity{ID: "s1", Type: EntityTypeAISystem})
		if !errors.Is(err, ErrUnknownEntityType) {
			t.Errorf("expected ErrUnknownEntityType, got %v", err)
		}
	})

	t.Run("invalid entity", func(t *testing.T) {
		o := &Ontology{}
		if err := o.Add(&Entity{Type: EntityTypeRisk}); !errors.Is(err, ErrEmptyID) {
			t.Errorf("expected ErrEmptyID, got %v", err)
		}
	})
}

func TestOntologyCollections(t *testing.T) {
	t.Parallel()

	o := &Ontology{
		AITasks:      []*Entity{{ID: "t1", Type: EntityTypeAITask}},
		Capabilities: []*Entity{{ID: "c1", Type: EntityTypeCapability}},
	}

	byType := o.Collections()
	if len(byType[EntityTypeAITask]) != 1 {
		t.Errorf("expected 1 task, got %d", len(byType[EntityTypeAITask]))
	}
	if len(byType[EntityTypeCapability]) != 1 {
		t.Errorf("expected 1 capability, got %d", len(byType[EntityTypeCapability]))
	}
	if len(byType[EntityTypeRisk]) != 0 {
		t.Errorf("expected empty risk collection, got %d", len(byType[EntityTypeRisk]))
	}

	counts := o.Counts()
	if len(counts) != 2 {
		t.Errorf("expected counts for 2 collections, got %v", counts)
	}
}

func TestCollectionType(t *testing.T) {
	t.Parallel()

	cases := map[string]EntityType{
		"risks":                  EntityTypeRisk,
		"aitasks":                EntityTypeAITask,
		"capabilities":           EntityTypeCapability,
		"llmintrinsics":          EntityTypeLLMIntrinsic,
		"benchmarkmetadatacards": EntityTypeBenchmark,
		"taxonomies":             EntityTypeRiskTaxonomy,
		"documents":              EntityTypeDocument,
	}
	for name, want := range cases {
		got, ok := CollectionType(name)
		if !ok {
			t.Fatalf("expected collection %q to resolve", name)
		}
		if got != want {
			t.Errorf("collection %q: expected %q, got %q", name, want, got)
		}
	}

	if _, ok := CollectionType("widgets"); ok {
		t.Error("expected unknown collection to not resolve")
	}

	names := CollectionNames()
	if len(names) != 25 {
		t.Fatalf("expected 25 collection names, got %d", len(names))
	}
	if names[0] != "risks" {
		t.Errorf("expected snapshot order to start with risks, got %q", names[0])
	}
}
