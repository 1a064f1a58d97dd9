package graph

import (
	"log/slog"
	"sync"

	"github.com/soundprediction/ontonav/pkg/types"
)

// Navigator answers "what is reachable from X under P" queries over a loaded
// snapshot. It owns the entity index, the edge derivation table, and a
// result cache. The snapshot is read-only for the navigator's lifetime, so
// concurrent Traverse calls are safe; the cache is guarded by a lock.
type Navigator struct {
	index  *Index
	schema *Schema
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Result
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the navigator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithSchema replaces the default edge derivation table.
func WithSchema(schema *Schema) Option {
	return func(n *Navigator) {
		if schema != nil {
			n.schema = schema
		}
	}
}

// New builds a Navigator over per-type entity collections. The collections
// must not be mutated afterwards.
func New(collections map[types.EntityType][]*types.Entity, opts ...Option) *Navigator {
	n := &Navigator{
		index:  NewIndex(collections),
		schema: DefaultSchema(),
		logger: slog.Default(),
		cache:  make(map[string]*Result),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Lookup resolves an entity by type and id.
func (n *Navigator) Lookup(t types.EntityType, id string) (*types.Entity, bool) {
	return n.index.Lookup(t, id)
}

// Index returns the navigator's entity index.
func (n *Navigator) Index() *Index {
	return n.index
}

// Traverse runs a breadth-first traversal from the given start entity under
// the given policy. An unknown start yields an empty result, not an error;
// the only errors are eager policy validation failures. Identical queries
// are served from the cache unless the policy disables it.
func (n *Navigator) Traverse(startID string, startType types.EntityType, policy Policy) (*Result, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	start := types.NewRef(startType, startID)
	key := ""
	useCache := !policy.DisableCache
	if useCache {
		k, err := policy.CacheKey(start)
		if err != nil {
			n.logger.Debug("cache key unavailable, caching disabled for query",
				"start", start.String(), "error", err)
			useCache = false
		} else {
			key = k
			n.mu.RLock()
			cached := n.cache[key]
			n.mu.RUnlock()
			if cached != nil {
				n.logger.Debug("traversal cache hit", "start", start.String())
				return cached, nil
			}
		}
	}

	entity, ok := n.index.Lookup(startType, startID)
	if !ok {
		n.logger.Warn("start entity not found", "start", start.String())
		return EmptyResult(), nil
	}

	result := n.traverse(start, entity, policy)

	if useCache {
		n.mu.Lock()
		n.cache[key] = result
		n.mu.Unlock()
	}

	n.logger.Debug("traversal complete",
		"start", start.String(),
		"nodes_returned", result.Stats().NodesReturned,
		"relationships_traversed", result.Stats().RelationshipsTraversed,
		"max_depth_reached", result.Stats().MaxDepthReached)

	return result, nil
}

// traverse is the BFS loop: FIFO queue, visited set keyed by composite
// identity, acceptance test per node, expansion cutoff at MaxDepth.
func (n *Navigator) traverse(start types.Ref, entity *types.Entity, policy Policy) *Result {
	queue := []Node{{Ref: start, Entity: entity, Depth: 0}}
	visited := map[types.Ref]bool{start: true}

	var nodes []Node
	edges := make(map[types.Ref][]Edge)
	depths := make(map[int][]types.Ref)
	maxDepthReached := 0
	edgeCount := 0

	for len(queue) > 0 && (policy.MaxResults == 0 || len(nodes) < policy.MaxResults) {
		current := queue[0]
		queue = queue[1:]

		// The start node faces the same acceptance test as any other.
		if policy.AllowsEntityType(current.Ref.Type) && policy.MatchesNodeFilters(current.Entity) {
			nodes = append(nodes, current)
			depths[current.Depth] = append(depths[current.Depth], current.Ref)
			if current.Depth > maxDepthReached {
				maxDepthReached = current.Depth
			}
		}

		// Nodes at the depth bound may be accepted but are never expanded.
		if current.Depth >= policy.MaxDepth {
			continue
		}

		for _, derived := range n.schema.Derive(current.Entity, n.index) {
			if !policy.AllowsRelationship(derived.Relation) {
				continue
			}
			if !policy.DisableDedup && visited[derived.Target] {
				continue
			}
			visited[derived.Target] = true
			edges[current.Ref] = append(edges[current.Ref], derived.Edge)
			edgeCount++

			path := make([]types.RelationType, 0, len(current.Path)+1)
			path = append(path, current.Path...)
			path = append(path, derived.Relation)
			parent := current.Ref

			queue = append(queue, Node{
				Ref:    derived.Target,
				Entity: derived.Entity,
				Depth:  current.Depth + 1,
				Path:   path,
				Parent: &parent,
			})
		}
	}

	return newResult(nodes, edges, depths, Stats{
		NodesVisited:           len(visited),
		NodesReturned:          len(nodes),
		MaxDepthReached:        maxDepthReached,
		RelationshipsTraversed: edgeCount,
	})
}

// ClearCache drops every cached result.
func (n *Navigator) ClearCache() {
	n.mu.Lock()
	n.cache = make(map[string]*Result)
	n.mu.Unlock()
	n.logger.Debug("traversal cache cleared")
}

// CacheSize returns the number of cached results.
func (n *Navigator) CacheSize() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.cache)
}
