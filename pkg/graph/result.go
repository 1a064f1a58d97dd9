package graph

import (
	"encoding/json"
	"slices"

	"github.com/soundprediction/ontonav/pkg/types"
)

// Node is one discovered graph node: its composite identity, a borrowed
// reference to the entity's data, its depth from the start node (start = 0),
// the ordered relationship path that reached it, and the identity of the
// node that discovered it (nil for the start node).
type Node struct {
	Ref    types.Ref            `json:"ref"`
	Entity *types.Entity        `json:"-"`
	Depth  int                  `json:"depth"`
	Path   []types.RelationType `json:"path,omitempty"`
	Parent *types.Ref           `json:"parent,omitempty"`
}

// Stats summarizes one traversal.
type Stats struct {
	// NodesVisited counts distinct identities reached, accepted or not.
	NodesVisited int `json:"nodes_visited"`
	// NodesReturned counts nodes accepted into the result.
	NodesReturned int `json:"nodes_returned"`
	// MaxDepthReached is the deepest accepted node, 0 for an empty result.
	MaxDepthReached int `json:"max_depth_reached"`
	// RelationshipsTraversed counts edges recorded during expansion.
	RelationshipsTraversed int `json:"relationships_traversed"`
}

// Result is the outcome of one traversal: accepted nodes in BFS discovery
// order, the edges followed from each node, a depth index, and summary
// statistics. Results are immutable once returned — the cache hands the same
// instance to every caller of an identical query — so accessors return
// copies and callers must not mutate what they receive.
type Result struct {
	nodes  []Node
	edges  map[types.Ref][]Edge
	depths map[int][]types.Ref
	byRef  map[types.Ref]int
	stats  Stats
}

// newResult assembles a Result, indexing nodes by identity. When the same
// identity was accepted more than once (deduplication disabled), the first
// occurrence wins.
func newResult(nodes []Node, edges map[types.Ref][]Edge, depths map[int][]types.Ref, stats Stats) *Result {
	r := &Result{
		nodes:  nodes,
		edges:  edges,
		depths: depths,
		byRef:  make(map[types.Ref]int, len(nodes)),
		stats:  stats,
	}
	if r.edges == nil {
		r.edges = make(map[types.Ref][]Edge)
	}
	if r.depths == nil {
		r.depths = make(map[int][]types.Ref)
	}
	for i, n := range nodes {
		if _, seen := r.byRef[n.Ref]; !seen {
			r.byRef[n.Ref] = i
		}
	}
	return r
}

// EmptyResult returns a result with zero nodes and zero statistics, the
// outcome of a traversal from an unknown start entity.
func EmptyResult() *Result {
	return newResult(nil, nil, nil, Stats{})
}

// Nodes returns the accepted nodes in BFS discovery order.
func (r *Result) Nodes() []Node {
	return slices.Clone(r.nodes)
}

// Len returns the number of accepted nodes.
func (r *Result) Len() int {
	return len(r.nodes)
}

// IsEmpty reports whether the traversal accepted no nodes.
func (r *Result) IsEmpty() bool {
	return len(r.nodes) == 0
}

// Node returns the first accepted node with the given identity.
func (r *Result) Node(ref types.Ref) (Node, bool) {
	i, ok := r.byRef[ref]
	if !ok {
		return Node{}, false
	}
	return r.nodes[i], true
}

// NodesAtDepth returns the accepted nodes discovered at the given depth, in
// discovery order.
func (r *Result) NodesAtDepth(depth int) []Node {
	refs := r.depths[depth]
	if len(refs) == 0 {
		return nil
	}
	out := make([]Node, 0, len(refs))
	for _, n := range r.nodes {
		if n.Depth == depth {
			out = append(out, n)
		}
	}
	return out
}

// NodesOfType returns the accepted nodes of the given entity type, in
// discovery order.
func (r *Result) NodesOfType(t types.EntityType) []Node {
	var out []Node
	for _, n := range r.nodes {
		if n.Ref.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// EdgesFrom returns the edges recorded from the given node during
// expansion, in traversal order.
func (r *Result) EdgesFrom(ref types.Ref) []Edge {
	return slices.Clone(r.edges[ref])
}

// Edges returns every recorded edge keyed by its source node.
func (r *Result) Edges() map[types.Ref][]Edge {
	out := make(map[types.Ref][]Edge, len(r.edges))
	for ref, edges := range r.edges {
		out[ref] = slices.Clone(edges)
	}
	return out
}

// Depths returns the depths holding accepted nodes, ascending.
func (r *Result) Depths() []int {
	out := make([]int, 0, len(r.depths))
	for d := range r.depths {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// RefsAtDepth returns the identities discovered at the given depth, in
// discovery order.
func (r *Result) RefsAtDepth(depth int) []types.Ref {
	return slices.Clone(r.depths[depth])
}

// Stats returns the traversal statistics.
func (r *Result) Stats() Stats {
	return r.stats
}

// resultDoc is the serialized form: plain ids, type tags, depths, paths,
// parents, edges, and statistics for cross-boundary consumption.
type resultDoc struct {
	Nodes         []Node              `json:"nodes"`
	Relationships map[string][]Edge   `json:"relationships"`
	DepthIndex    map[int][]types.Ref `json:"depth_index"`
	Stats         Stats               `json:"stats"`
}

// MarshalJSON renders the result as a plain nested structure. Relationship
// map keys are "Type:id" strings.
func (r *Result) MarshalJSON() ([]byte, error) {
	doc := resultDoc{
		Nodes:         r.nodes,
		Relationships: make(map[string][]Edge, len(r.edges)),
		DepthIndex:    r.depths,
		Stats:         r.stats,
	}
	if doc.Nodes == nil {
		doc.Nodes = []Node{}
	}
	for ref, edges := range r.edges {
		doc.Relationships[ref.String()] = edges
	}
	return json.Marshal(doc)
}
