// Package loader reads ontology entities from YAML files on disk. Files hold
// a mapping of collection names to entity lists; the loader walks one or more
// directories, tags every entity with the type its collection implies, and
// merges entities split across files.
package loader

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soundprediction/ontonav/pkg/types"
)

// Loader turns YAML data directories into an Ontology.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report skipped files and entities.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load walks the given directories, reads every .yaml and .yml file, and
// assembles the combined ontology. A file that fails to parse is logged and
// skipped; an unreadable directory fails the whole load. Entities appearing
// in more than one file merge by id: scalar attributes keep their first
// value, list attributes concatenate in file order.
func (l *Loader) Load(dirs ...string) (*types.Ontology, error) {
	files, err := l.collectFiles(dirs)
	if err != nil {
		return nil, err
	}

	// Raw items accumulate per collection across files before merging, so
	// mapping files can extend entities declared elsewhere.
	items := make(map[string][]map[string]interface{})
	loaded := 0
	for _, path := range files {
		doc, err := l.parseFile(path)
		if err != nil {
			l.logger.Warn("skipping unparseable data file", "path", path, "error", err)
			continue
		}
		for name, entries := range doc {
			items[name] = append(items[name], entries...)
		}
		loaded++
	}

	ontology := &types.Ontology{}
	for _, name := range types.CollectionNames() {
		entityType, _ := types.CollectionType(name)
		for _, raw := range mergeByID(items[name]) {
			entity, err := entityFromRaw(raw, entityType)
			if err != nil {
				l.logger.Warn("skipping invalid entity", "collection", name, "error", err)
				continue
			}
			if err := ontology.Add(entity); err != nil {
				l.logger.Warn("skipping entity", "collection", name, "id", entity.ID, "error", err)
			}
		}
		delete(items, name)
	}
	for name := range items {
		l.logger.Debug("ignoring unknown collection", "collection", name)
	}

	l.logger.Info("ontology loaded",
		"files", loaded,
		"skipped", len(files)-loaded,
		"entities", ontology.Size())
	return ontology, nil
}

// collectFiles gathers YAML file paths under each directory, in walk order.
func (l *Loader) collectFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk data directory %s: %w", dir, err)
		}
	}
	return files, nil
}

// parseFile decodes one data file into its raw collections. Items that are
// not mappings are skipped individually so one malformed entry cannot drop a
// whole file.
func (l *Loader) parseFile(path string) (map[string][]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string][]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML structure: %w", err)
	}

	out := make(map[string][]map[string]interface{}, len(doc))
	for name, nodes := range doc {
		entries := make([]map[string]interface{}, 0, len(nodes))
		for i, node := range nodes {
			var item map[string]interface{}
			if err := node.Decode(&item); err != nil {
				l.logger.Warn("skipping malformed entry",
					"path", path, "collection", name, "index", i, "error", err)
				continue
			}
			entries = append(entries, item)
		}
		out[name] = entries
	}
	return out, nil
}

// mergeByID combines raw entries sharing an id. The first occurrence fixes
// scalar attributes; list attributes from later occurrences append. Entries
// without a usable id pass through for entityFromRaw to reject with a log.
func mergeByID(entries []map[string]interface{}) []map[string]interface{} {
	merged := make(map[string]map[string]interface{})
	var order []map[string]interface{}

	for _, entry := range entries {
		id, _ := entry["id"].(string)
		if id == "" {
			order = append(order, entry)
			continue
		}
		existing, ok := merged[id]
		if !ok {
			copied := make(map[string]interface{}, len(entry))
			for k, v := range entry {
				copied[k] = v
			}
			merged[id] = copied
			order = append(order, copied)
			continue
		}
		for k, v := range entry {
			if k == "id" {
				continue
			}
			current, present := existing[k]
			if !present || current == nil {
				existing[k] = v
				continue
			}
			currentList, currentOK := current.([]interface{})
			newList, newOK := v.([]interface{})
			if currentOK && newOK {
				existing[k] = append(currentList, newList...)
			}
		}
	}
	return order
}

// entityFromRaw builds a typed entity from a raw mapping. The id key moves to
// the identity; everything else becomes an attribute.
func entityFromRaw(raw map[string]interface{}, entityType types.EntityType) (*types.Entity, error) {
	id, _ := raw["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("entity has no id: %v", raw)
	}
	attrs := make(map[string]interface{}, len(raw)-1)
	for k, v := range raw {
		if k == "id" {
			continue
		}
		attrs[k] = v
	}
	return &types.Entity{ID: id, Type: entityType, Attrs: attrs}, nil
}
