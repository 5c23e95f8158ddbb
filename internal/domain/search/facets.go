package search

import (
	"fmt"

	"github.com/merxlabs/searchgate/internal/domain"
	"github.com/merxlabs/searchgate/internal/domain/facet"
)

// Behavior selects how a facets request is rendered.
type Behavior string

// Rendering behavior constants.
const (
	// BehaviorStatic restricts the facet path to category and full-text
	// segments, used for cacheable landing pages.
	BehaviorStatic Behavior = "Static"
	// BehaviorDynamic passes the facet path through untouched (default).
	BehaviorDynamic Behavior = "Dynamic"
)

// IsValid checks if the behavior is one of the supported values.
func (b Behavior) IsValid() bool {
	return b == BehaviorStatic || b == BehaviorDynamic
}

// FacetsArgs is the argument bag for a facets request. Query is a /-delimited
// segment path, Map the ,-delimited tag sequence paired with it by position.
type FacetsArgs struct {
	Query                string
	Map                  string
	Behavior             Behavior
	HideUnavailableItems bool
}

// Validate rejects facets requests with a missing query or map. A degenerate
// pair out of the compatibility resolver lands here too.
func (a *FacetsArgs) Validate() error {
	if a.Query == "" || a.Map == "" {
		return fmt.Errorf("%w: facets query and map are required", domain.ErrInvalidArgs)
	}
	if a.Behavior != "" && !a.Behavior.IsValid() {
		return fmt.Errorf("%w: unknown facets behavior %q", domain.ErrInvalidArgs, a.Behavior)
	}
	return nil
}

// FilterSpecificationFilters reduces the query/map pair to the segments a
// static page may expose. Dynamic behavior never reaches this.
func (a FacetsArgs) FilterSpecificationFilters() FacetsArgs {
	path := facet.ParsePath(a.Query, a.Map).FilterStatic()
	a.Query = path.Query()
	a.Map = path.Map()
	return a
}

// CompatibilityArgs is a query/map pair in the legacy encoding the backend
// understands directly.
type CompatibilityArgs struct {
	Query string `json:"query"`
	Map   string `json:"map"`
}

// IsDegenerate reports whether the resolver failed to map the canonical path
// to any known facet chain. Callers treat it as a bad-arguments condition.
func (c CompatibilityArgs) IsDegenerate() bool {
	return c.Query == "" || c.Map == ""
}
