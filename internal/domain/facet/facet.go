// Package facet models the positional query/map facet encoding understood by
// the catalog search backend.
package facet

import "strings"

// Map tags with meaning for static rendering. Every other tag (brand,
// specification filters, price, collections) is carried opaquely by position.
const (
	// TagCategory marks a category segment.
	TagCategory = "c"
	// TagFullText marks a full-text term segment.
	TagFullText = "ft"
)

// Segment is one facet path element: a query path segment paired with its
// positional map tag.
type Segment struct {
	Value string
	Tag   string
}

// Path is an ordered sequence of facet segments. Holding query and map as one
// sequence makes the "same length" invariant structural instead of a runtime
// check on two parallel strings.
type Path []Segment

// ParsePath pairs the /-delimited query with the ,-delimited map positionally.
// A surplus position on either side is paired with an empty counterpart so no
// segment is silently dropped during parsing.
func ParsePath(query, mapArg string) Path {
	values := splitNonEmpty(query, "/")
	tags := splitNonEmpty(mapArg, ",")

	n := len(values)
	if len(tags) > n {
		n = len(tags)
	}

	path := make(Path, n)
	for i := range path {
		if i < len(values) {
			path[i].Value = values[i]
		}
		if i < len(tags) {
			path[i].Tag = tags[i]
		}
	}
	return path
}

// Query joins the segment values back into a /-delimited query string.
func (p Path) Query() string {
	values := make([]string, len(p))
	for i, s := range p {
		values[i] = s.Value
	}
	return strings.Join(values, "/")
}

// Map joins the segment tags back into a ,-delimited map string.
func (p Path) Map() string {
	tags := make([]string, len(p))
	for i, s := range p {
		tags[i] = s.Tag
	}
	return strings.Join(tags, ",")
}

// FilterStatic reduces the path to the segments allowed on a statically
// rendered facet page. Segment 0 anchors the path and is always kept, even
// when its tag is unreliable; later segments survive only with a category or
// full-text tag.
func (p Path) FilterStatic() Path {
	if len(p) == 0 {
		return p
	}

	kept := Path{p[0]}
	for _, s := range p[1:] {
		if s.Tag == TagCategory || s.Tag == TagFullText {
			kept = append(kept, s)
		}
	}
	return kept
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
