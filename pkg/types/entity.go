package types

// Well-known attribute names shared across entity collections. Exported so
// callers can build node filters over them.
const (
	AttrName        = "name"
	AttrDescription = "description"
	AttrTag         = "tag"
	AttrTaxonomy    = "isDefinedByTaxonomy"
)

// Entity is a typed, identified record in the knowledge graph. The type tag
// is set once when the snapshot is loaded and never inferred afterwards.
// Attrs holds the record's named attributes: plain scalars ("name",
// "description") and relationship-valued entries (a single target id or an
// ordered list of target ids). The navigation engine treats entities as
// read-only.
type Entity struct {
	ID    string                 `json:"id"`
	Type  EntityType             `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// Validate checks if the Entity has all required fields set.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.Type == "" {
		return ErrEmptyType
	}
	return nil
}

// Ref returns the entity's composite identity.
func (e *Entity) Ref() Ref {
	return Ref{Type: e.Type, ID: e.ID}
}

// Attr returns the named attribute and whether it is present.
func (e *Entity) Attr(name string) (interface{}, bool) {
	if e.Attrs == nil {
		return nil, false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// StringAttr returns the named attribute as a string, or "" when the
// attribute is absent or not a string.
func (e *Entity) StringAttr(name string) string {
	v, ok := e.Attr(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Name returns the entity's display name, if any.
func (e *Entity) Name() string { return e.StringAttr(AttrName) }

// Description returns the entity's description, if any.
func (e *Entity) Description() string { return e.StringAttr(AttrDescription) }

// Tag returns the entity's short tag, if any.
func (e *Entity) Tag() string { return e.StringAttr(AttrTag) }

// Taxonomy returns the id of the taxonomy that defines the entity, if any.
func (e *Entity) Taxonomy() string { return e.StringAttr(AttrTaxonomy) }

// RelatedIDs reads a relationship-valued attribute and normalizes it to an
// ordered list of target ids. A single id and a list of ids are both
// accepted; missing, empty, and non-string values yield nil. Order is
// preserved, never sorted.
func (e *Entity) RelatedIDs(name string) []string {
	v, ok := e.Attr(name)
	if !ok || v == nil {
		return nil
	}
	switch ids := v.(type) {
	case string:
		if ids == "" {
			return nil
		}
		return []string{ids}
	case []string:
		if len(ids) == 0 {
			return nil
		}
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != "" {
				out = append(out, id)
			}
		}
		return out
	case []interface{}:
		if len(ids) == 0 {
			return nil
		}
		out := make([]string, 0, len(ids))
		for _, raw := range ids {
			if id, ok := raw.(string); ok && id != "" {
				out = append(out, id)
			}
		}
		return out
	default:
		return nil
	}
}
