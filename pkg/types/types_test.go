package types

import (
	"errors"
	"testing"
)

func TestParseEntityType(t *testing.T) {
	t.Parallel()
	t.Run("known tags", func(t *testing.T) {
		cases := map[string]EntityType{
			"Risk":                  EntityTypeRisk,
			"AiTask":                EntityTypeAITask,
			"Capability":            EntityTypeCapability,
			"LLMIntrinsic":          EntityTypeLLMIntrinsic,
			"BenchmarkMetadataCard": EntityTypeBenchmark,
			"Documentation":         EntityTypeDocument,
			"LLMQuestionPolicy":     EntityTypeLLMQuestionPolicy,
		}
		for tag, want := range cases {
			got, err := ParseEntityType(tag)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tag, err)
			}
			if got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		}
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := ParseEntityType("Gizmo")
		if err == nil {
			t.Fatal("expected error for unknown tag")
		}
		if !errors.Is(err, ErrUnknownEntityType) {
			t.Errorf("expected ErrUnknownEntityType, got %v", err)
		}
	})

	t.Run("case sensitive", func(t *testing.T) {
		if _, err := ParseEntityType("risk"); err == nil {
			t.Error("expected error for lowercased tag")
		}
	})
}

func TestEntityTypes(t *testing.T) {
	t.Parallel()

	all := EntityTypes()
	if len(all) != 28 {
		t.Fatalf("expected 28 entity types, got %d", len(all))
	}
	if all[0] != EntityTypeRisk {
		t.Errorf("expected declaration order to start with Risk, got %q", all[0])
	}

	// The returned slice is a copy.
	all[0] = "mutated"
	if EntityTypes()[0] != EntityTypeRisk {
		t.Error("mutating the returned slice changed the declared order")
	}
}

func TestRefString(t *testing.T) {
	t.Parallel()

	ref := NewRef(EntityTypeAITask, "question-answering")
	if ref.String() != "AiTask:question-answering" {
		t.Errorf("unexpected ref string %q", ref.String())
	}

	var zero Ref
	if !zero.IsZero() {
		t.Error("zero Ref should report IsZero")
	}
	if ref.IsZero() {
		t.Error("populated Ref should not report IsZero")
	}
}

func TestRefAsMapKey(t *testing.T) {
	t.Parallel()

	// Same id under different types must not collide.
	seen := map[Ref]bool{
		NewRef(EntityTypeRisk, "x1"):       true,
		NewRef(EntityTypeCapability, "x1"): true,
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 distinct refs, got %d", len(seen))
	}
}

func TestSKOSRelations(t *testing.T) {
	t.Parallel()

	skos := SKOSRelations()
	want := []RelationType{
		RelationExactMatch,
		RelationCloseMatch,
		RelationBroadMatch,
		RelationNarrowMatch,
		RelationRelatedMatch,
	}
	if len(skos) != len(want) {
		t.Fatalf("expected %d SKOS relations, got %d", len(want), len(skos))
	}
	for i, r := range want {
		if skos[i] != r {
			t.Errorf("position %d: expected %q, got %q", i, r, skos[i])
		}
	}
}
