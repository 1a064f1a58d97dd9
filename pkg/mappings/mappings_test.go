package mappings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/ontonav/pkg/loader"
	"github.com/soundprediction/ontonav/pkg/types"
)

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const riskTable = `# curie_map:
#   skos: http://www.w3.org/2004/02/skos/core#
# mapping_set_id: test-risk-mappings
subject_id	predicate_id	object_id	mapping_justification
atlas:risk-a	skos:closeMatch	nist:risk-b	semapv:ManualMappingCuration
atlas:risk-a	skos:broadMatch	nist:risk-c	semapv:ManualMappingCuration
atlas:risk-d	noMatch	nist:risk-e	semapv:ManualMappingCuration
`

func TestImportFileSKOS(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "risks.tsv", riskTable)

	fragment, err := NewImporter().ImportFile(path)
	require.NoError(t, err)

	risks := fragment.Collection(types.EntityTypeRisk)
	require.Len(t, risks, 3, "noMatch rows produce no entities")

	byID := make(map[string]*types.Entity)
	for _, r := range risks {
		byID[r.ID] = r
	}

	// closeMatch is symmetric.
	assert.Equal(t, []string{"risk-b"}, byID["risk-a"].RelatedIDs("closeMatch"))
	assert.Equal(t, []string{"risk-a"}, byID["risk-b"].RelatedIDs("closeMatch"))

	// broadMatch inverts to narrowMatch.
	assert.Equal(t, []string{"risk-c"}, byID["risk-a"].RelatedIDs("broadMatch"))
	assert.Equal(t, []string{"risk-a"}, byID["risk-c"].RelatedIDs("narrowMatch"))
}

func TestImportFileCapabilityPredicates(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "cap2task.tsv", `subject_id	predicate_id	object_id
nexus:cap-rc	nexus:requiredByTask	nexus:task-qa
nexus:cap-rc	nexus:implementedByIntrinsic	nexus:intr-1
nexus:cap-rc	nexus:implementedByAdapter	nexus:adpt-1
`)

	fragment, err := NewImporter().ImportFile(path)
	require.NoError(t, err)

	caps := fragment.Collection(types.EntityTypeCapability)
	require.Len(t, caps, 1)
	assert.Equal(t, []string{"task-qa"}, caps[0].RelatedIDs("requiredByTask"))
	assert.Equal(t, []string{"intr-1"}, caps[0].RelatedIDs("implementedByIntrinsic"))
	assert.Equal(t, []string{"adpt-1"}, caps[0].RelatedIDs("implementedByAdapter"))

	tasks := fragment.Collection(types.EntityTypeAITask)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-qa", tasks[0].ID)
	assert.Equal(t, []string{"cap-rc"}, tasks[0].RelatedIDs("requiresCapability"))

	intrinsics := fragment.Collection(types.EntityTypeLLMIntrinsic)
	require.Len(t, intrinsics, 1)
	assert.Equal(t, []string{"cap-rc"}, intrinsics[0].RelatedIDs("implementsCapability_intrinsic"))

	adapters := fragment.Collection(types.EntityTypeAdapter)
	require.Len(t, adapters, 1)
	assert.Equal(t, []string{"cap-rc"}, adapters[0].RelatedIDs("implementsCapability_adapter"))
}

func TestImportFileDeduplicatesRepeatedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "dup.tsv", `subject_id	predicate_id	object_id
atlas:risk-a	skos:exactMatch	nist:risk-b
atlas:risk-a	skos:exactMatch	nist:risk-b
`)

	fragment, err := NewImporter().ImportFile(path)
	require.NoError(t, err)

	risks := fragment.Collection(types.EntityTypeRisk)
	require.Len(t, risks, 2)
	assert.Equal(t, []string{"risk-b"}, risks[0].RelatedIDs("exactMatch"))
}

func TestImportFileSkipsUnknownPredicate(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "odd.tsv", `subject_id	predicate_id	object_id
atlas:risk-a	owl:sameAs	nist:risk-b
atlas:risk-a	skos:relatedMatch	nist:risk-c
`)

	fragment, err := NewImporter().ImportFile(path)
	require.NoError(t, err)

	risks := fragment.Collection(types.EntityTypeRisk)
	require.Len(t, risks, 2, "only the relatedMatch row contributes")
}

func TestImportFileMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "bad.tsv", "subject_id\tobject_id\nx\ty\n")

	_, err := NewImporter().ImportFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predicate_id")
}

func TestImportDirWritesLoadableFragments(t *testing.T) {
	mapDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "fragments")
	writeTable(t, mapDir, "risk_atlas2nist.tsv", riskTable)
	writeTable(t, mapDir, "notes.md", "# not a table")

	written, err := NewImporter().ImportDir(mapDir, outDir)
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, filepath.Join(outDir, "risk_atlas2nist_from_tsv_data.yaml"), written[0])

	// The fragment round-trips through the loader.
	ontology, err := loader.New().Load(outDir)
	require.NoError(t, err)

	risks := ontology.Collection(types.EntityTypeRisk)
	require.Len(t, risks, 3)
	byID := make(map[string]*types.Entity)
	for _, r := range risks {
		byID[r.ID] = r
	}
	assert.Equal(t, []string{"risk-b"}, byID["risk-a"].RelatedIDs("closeMatch"))
	assert.Equal(t, []string{"risk-a"}, byID["risk-c"].RelatedIDs("narrowMatch"))
}

func TestImportDirSkipsBrokenTables(t *testing.T) {
	mapDir := t.TempDir()
	outDir := t.TempDir()
	writeTable(t, mapDir, "bad.tsv", "subject_id\tobject_id\nonly two columns\n")
	writeTable(t, mapDir, "good.tsv", `subject_id	predicate_id	object_id
atlas:risk-a	skos:exactMatch	nist:risk-b
`)

	written, err := NewImporter().ImportDir(mapDir, outDir)
	require.NoError(t, err)
	assert.Len(t, written, 1)
}

func TestImportDirMissingDirectory(t *testing.T) {
	_, err := NewImporter().ImportDir(filepath.Join(t.TempDir(), "absent"), t.TempDir())
	require.Error(t, err)
}
