// Package mappings imports SSSOM mapping tables into ontology fragments.
// Each TSV row asserts a correspondence between two entities; the importer
// materializes it as relationship attributes on both, writing YAML fragments
// the loader merges with the rest of the data.
package mappings

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soundprediction/ontonav/pkg/types"
)

// Mapping is one row of an SSSOM table, ids reduced to their local part.
type Mapping struct {
	SubjectID   string
	PredicateID string
	ObjectID    string
}

// Importer converts SSSOM tables into ontology fragments.
type Importer struct {
	logger *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used to report skipped rows and files.
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}

// NewImporter creates an Importer.
func NewImporter(opts ...Option) *Importer {
	im := &Importer{logger: slog.Default()}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportDir processes every .tsv table under mapDir and writes one YAML
// fragment per table into outDir, named after the table. Tables that fail to
// parse are logged and skipped. Returns the fragment paths written.
func (im *Importer) ImportDir(mapDir, outDir string) ([]string, error) {
	entries, err := os.ReadDir(mapDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings directory %s: %w", mapDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".tsv") {
			continue
		}
		path := filepath.Join(mapDir, entry.Name())
		fragment, err := im.ImportFile(path)
		if err != nil {
			im.logger.Warn("skipping unparseable mapping table", "path", path, "error", err)
			continue
		}
		if fragment.Size() == 0 {
			im.logger.Debug("mapping table produced no entities", "path", path)
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		outPath := filepath.Join(outDir, stem+"_from_tsv_data.yaml")
		if err := writeFragment(outPath, fragment); err != nil {
			return written, err
		}
		im.logger.Info("imported mapping table",
			"path", path, "entities", fragment.Size(), "fragment", outPath)
		written = append(written, outPath)
	}
	return written, nil
}

// ImportFile parses one SSSOM table and returns the ontology fragment its
// mappings imply. Rows with an unhandled predicate are logged and skipped;
// noMatch rows record the absence of a correspondence and are dropped
// silently.
func (im *Importer) ImportFile(path string) (*types.Ontology, error) {
	rows, err := parseTable(path)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator()
	for _, m := range rows {
		im.apply(acc, m)
	}
	return acc.ontology()
}

// apply records the attribute pair a mapping implies on both entities.
func (im *Importer) apply(acc *accumulator, m Mapping) {
	subj, obj := m.SubjectID, m.ObjectID
	switch localPart(m.PredicateID) {
	case "exactMatch":
		acc.add(types.EntityTypeRisk, subj, "exactMatch", obj)
		acc.add(types.EntityTypeRisk, obj, "exactMatch", subj)
	case "closeMatch":
		acc.add(types.EntityTypeRisk, subj, "closeMatch", obj)
		acc.add(types.EntityTypeRisk, obj, "closeMatch", subj)
	case "relatedMatch":
		acc.add(types.EntityTypeRisk, subj, "relatedMatch", obj)
		acc.add(types.EntityTypeRisk, obj, "relatedMatch", subj)
	case "broadMatch":
		acc.add(types.EntityTypeRisk, subj, "broadMatch", obj)
		acc.add(types.EntityTypeRisk, obj, "narrowMatch", subj)
	case "narrowMatch":
		acc.add(types.EntityTypeRisk, subj, "narrowMatch", obj)
		acc.add(types.EntityTypeRisk, obj, "broadMatch", subj)
	case "requiredByTask":
		acc.add(types.EntityTypeCapability, subj, "requiredByTask", obj)
		acc.add(types.EntityTypeAITask, obj, "requiresCapability", subj)
	case "implementedByAdapter":
		acc.add(types.EntityTypeCapability, subj, "implementedByAdapter", obj)
		acc.add(types.EntityTypeAdapter, obj, "implementsCapability_adapter", subj)
	case "implementedByIntrinsic":
		acc.add(types.EntityTypeCapability, subj, "implementedByIntrinsic", obj)
		acc.add(types.EntityTypeLLMIntrinsic, obj, "implementsCapability_intrinsic", subj)
	case "noMatch":
	default:
		im.logger.Info("skipping unhandled predicate", "predicate", m.PredicateID)
	}
}

// parseTable reads an SSSOM TSV file. The leading metadata block (lines
// starting with '#') is skipped; the header row names the columns.
func parseTable(path string) ([]Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.Comment = '#'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	subject, predicate, object := -1, -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "subject_id":
			subject = i
		case "predicate_id":
			predicate = i
		case "object_id":
			object = i
		}
	}
	if subject < 0 || predicate < 0 || object < 0 {
		return nil, fmt.Errorf("mapping table missing subject_id, predicate_id, or object_id columns")
	}

	width := max(subject, predicate, object)
	mappings := make([]Mapping, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= width {
			continue
		}
		m := Mapping{
			SubjectID:   localPart(strings.TrimSpace(rec[subject])),
			PredicateID: strings.TrimSpace(rec[predicate]),
			ObjectID:    localPart(strings.TrimSpace(rec[object])),
		}
		if m.SubjectID == "" || m.ObjectID == "" {
			continue
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// localPart strips a CURIE namespace prefix: "skos:closeMatch" becomes
// "closeMatch".
func localPart(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// accumulator collects relationship attributes per entity, deduplicated and
// in insertion order.
type accumulator struct {
	entities map[types.Ref]map[string][]string
	order    []types.Ref
}

func newAccumulator() *accumulator {
	return &accumulator{entities: make(map[types.Ref]map[string][]string)}
}

func (a *accumulator) add(t types.EntityType, id, attr, relatedID string) {
	ref := types.NewRef(t, id)
	attrs, ok := a.entities[ref]
	if !ok {
		attrs = make(map[string][]string)
		a.entities[ref] = attrs
		a.order = append(a.order, ref)
	}
	if !slices.Contains(attrs[attr], relatedID) {
		attrs[attr] = append(attrs[attr], relatedID)
	}
}

func (a *accumulator) ontology() (*types.Ontology, error) {
	ontology := &types.Ontology{}
	for _, ref := range a.order {
		attrs := make(map[string]interface{}, len(a.entities[ref]))
		for name, ids := range a.entities[ref] {
			attrs[name] = ids
		}
		if err := ontology.Add(&types.Entity{ID: ref.ID, Type: ref.Type, Attrs: attrs}); err != nil {
			return nil, err
		}
	}
	return ontology, nil
}

// writeFragment serializes a fragment as the same collection document the
// loader reads, writing through a temp file so readers never see a partial
// fragment.
func writeFragment(path string, fragment *types.Ontology) error {
	doc := make(map[string][]map[string]interface{})
	for _, name := range types.CollectionNames() {
		entityType, _ := types.CollectionType(name)
		entities := fragment.Collection(entityType)
		if len(entities) == 0 {
			continue
		}
		entries := make([]map[string]interface{}, 0, len(entities))
		for _, e := range entities {
			entry := make(map[string]interface{}, len(e.Attrs)+1)
			entry["id"] = e.ID
			for k, v := range e.Attrs {
				entry[k] = v
			}
			entries = append(entries, entry)
		}
		doc[name] = entries
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal fragment: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fragment file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename fragment file: %w", err)
	}
	return nil
}
