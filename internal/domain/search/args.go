// Package search holds the request-scoped value objects exchanged between the
// storefront surface and the catalog search backend.
package search

import (
	"fmt"
	"strings"

	"github.com/merxlabs/searchgate/internal/domain"
)

// Search parameter limits.
const (
	// MaxTo is the largest accepted value for the inclusive upper pagination
	// bound. The boundary itself is accepted.
	MaxTo = 2500
	// Unset marks an absent pagination bound.
	Unset = -1
)

// reservedQueryChars are raw URL-control characters a query term may not carry.
const reservedQueryChars = "?&[]="

// SimulationBehavior controls whether the backend runs checkout simulation for
// each returned item.
type SimulationBehavior string

// Simulation behavior constants.
const (
	SimulationDefault SimulationBehavior = "default"
	SimulationSkip    SimulationBehavior = "skip"
)

// IsValid checks if the behavior is one of the supported values.
func (b SimulationBehavior) IsValid() bool {
	return b == SimulationDefault || b == SimulationSkip
}

// Args is the argument bag for a product search request. From and To define an
// inclusive zero-based pagination window; Unset (-1) leaves a bound out.
type Args struct {
	Query                string
	Category             string
	SpecificationFilters []string
	PriceRange           string
	Collection           string
	SalesChannel         string
	OrderBy              string
	From                 int
	To                   int
	Map                  string
	HideUnavailableItems bool
	SimulationBehavior   SimulationBehavior
}

// Validate rejects argument bags the backend would misinterpret.
func (a *Args) Validate() error {
	if strings.ContainsAny(a.Query, reservedQueryChars) {
		return fmt.Errorf("%w: query contains reserved characters", domain.ErrInvalidArgs)
	}
	if a.To > MaxTo {
		return fmt.Errorf("%w: to must not exceed %d, got %d", domain.ErrInvalidArgs, MaxTo, a.To)
	}
	if a.SimulationBehavior != "" && !a.SimulationBehavior.IsValid() {
		return fmt.Errorf("%w: unknown simulation behavior %q", domain.ErrInvalidArgs, a.SimulationBehavior)
	}
	return nil
}
