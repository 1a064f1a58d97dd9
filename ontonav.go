package ontonav

import (
	"errors"
	"log/slog"
	"time"

	"github.com/soundprediction/ontonav/pkg/graph"
	"github.com/soundprediction/ontonav/pkg/patterns"
	"github.com/soundprediction/ontonav/pkg/telemetry"
	"github.com/soundprediction/ontonav/pkg/types"
)

var (
	// ErrNilOntology is returned when an Explorer is created or reloaded
	// without a snapshot.
	ErrNilOntology = errors.New("ontology cannot be nil")
	// ErrNotFound is returned when a selector matches no entity.
	ErrNotFound = errors.New("entity not found")
)

// Explorer is the high-level entry point for querying a loaded ontology
// snapshot. It owns a Navigator over the snapshot and layers named query
// patterns, selector-based lookups, and multi-hop convenience queries on
// top of it. An Explorer is safe for concurrent queries; Reload is not.
type Explorer struct {
	ontology *types.Ontology
	nav      *graph.Navigator
	schema   *graph.Schema
	logger   *slog.Logger
	recorder *telemetry.Recorder
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the explorer's logger. The navigator shares it.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder attaches a query telemetry recorder. Without one, queries
// leave no trace.
func WithRecorder(rec *telemetry.Recorder) Option {
	return func(e *Explorer) {
		e.recorder = rec
	}
}

// WithSchema replaces the navigator's default edge derivation table.
func WithSchema(schema *graph.Schema) Option {
	return func(e *Explorer) {
		e.schema = schema
	}
}

// New creates an Explorer over the given snapshot.
func New(ontology *types.Ontology, opts ...Option) (*Explorer, error) {
	if ontology == nil {
		return nil, ErrNilOntology
	}
	e := &Explorer{
		ontology: ontology,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.nav = e.newNavigator(ontology)
	return e, nil
}

func (e *Explorer) newNavigator(ontology *types.Ontology) *graph.Navigator {
	opts := []graph.Option{graph.WithLogger(e.logger)}
	if e.schema != nil {
		opts = append(opts, graph.WithSchema(e.schema))
	}
	return graph.New(ontology.Collections(), opts...)
}

// Navigate runs a traversal from the given start entity under an explicit
// policy.
func (e *Explorer) Navigate(startID string, startType types.EntityType, policy graph.Policy) (*graph.Result, error) {
	return e.navigate(startID, startType, policy, "")
}

// NavigatePattern runs a traversal under a named policy from the pattern
// registry.
func (e *Explorer) NavigatePattern(startID string, startType types.EntityType, pattern string) (*graph.Result, error) {
	p, err := patterns.Get(pattern)
	if err != nil {
		return nil, err
	}
	return e.navigate(startID, startType, p.Policy, pattern)
}

// navigate runs the traversal and, when a recorder is attached, emits one
// measurement per call.
func (e *Explorer) navigate(startID string, startType types.EntityType, policy graph.Policy, pattern string) (*graph.Result, error) {
	if e.recorder == nil {
		return e.nav.Traverse(startID, startType, policy)
	}

	started := time.Now()
	before := e.nav.CacheSize()
	result, err := e.nav.Traverse(startID, startType, policy)
	if err != nil {
		return nil, err
	}

	// A served cache entry leaves the cache size unchanged. Unknown starts
	// also leave it unchanged but are never stored, so they are excluded.
	_, known := e.nav.Lookup(startType, startID)
	e.recorder.Record(telemetry.QueryRecord{
		StartType:              string(startType),
		StartID:                startID,
		Pattern:                pattern,
		CacheHit:               known && !policy.DisableCache && e.nav.CacheSize() == before,
		MaxDepth:               policy.MaxDepth,
		NodesReturned:          result.Stats().NodesReturned,
		RelationshipsTraversed: result.Stats().RelationshipsTraversed,
		DurationMicros:         time.Since(started).Microseconds(),
	})
	return result, nil
}

// ClearCache drops the navigator's cached traversal results.
func (e *Explorer) ClearCache() {
	e.nav.ClearCache()
}

// Reload replaces the snapshot by building a fresh navigator, dropping the
// cache with it. Reload must not race in-flight queries.
func (e *Explorer) Reload(ontology *types.Ontology) error {
	if ontology == nil {
		return ErrNilOntology
	}
	e.ontology = ontology
	e.nav = e.newNavigator(ontology)
	e.logger.Info("ontology reloaded", "entities", ontology.Size())
	return nil
}

// Ontology returns the loaded snapshot.
func (e *Explorer) Ontology() *types.Ontology {
	return e.ontology
}

// Navigator returns the underlying traversal engine.
func (e *Explorer) Navigator() *graph.Navigator {
	return e.nav
}
