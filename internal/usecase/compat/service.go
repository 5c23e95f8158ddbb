// Package compat converts canonical-format queries into the legacy query/map
// pair the catalog search backend requires.
package compat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/catalog"
	"github.com/merxlabs/searchgate/internal/domain/facet"
	"github.com/merxlabs/searchgate/internal/domain/search"
)

// Service resolves canonical queries through a persisted mapping cache,
// falling back to the backend's facet metadata on a miss. Concurrent misses
// for the same canonical query may both hit the backend and both write the
// same cache entry; the overwrite is idempotent.
type Service struct {
	cache  MappingCache
	facets FacetsReader
	logger *zap.Logger
}

// New creates a compatibility resolver.
func New(cache MappingCache, facets FacetsReader, logger *zap.Logger) *Service {
	return &Service{cache: cache, facets: facets, logger: logger}
}

// Resolve returns the legacy query/map pair for the given args. Already-legacy
// input passes through untouched, so resolving twice is a no-op. A canonical
// path the backend cannot map yields a degenerate pair, which the caller
// treats as bad arguments; only transport failures surface as errors.
func (s *Service) Resolve(ctx context.Context, args search.CompatibilityArgs) (search.CompatibilityArgs, error) {
	if args.Query == "" {
		return search.CompatibilityArgs{}, nil
	}

	segments := strings.Split(args.Query, "/")
	if search.IsLegacy(args.Query, args.Map, segments) {
		return args, nil
	}

	if cached, ok := s.cache.Get(ctx, args.Query); ok {
		return cached, nil
	}

	meta, err := s.facets.Facets(ctx, args.Query, "")
	if err != nil {
		return search.CompatibilityArgs{}, fmt.Errorf("resolve facet metadata: %w", err)
	}

	path := mapSegments(segments, meta)
	resolved := search.CompatibilityArgs{Query: path.Query(), Map: path.Map()}

	if resolved.IsDegenerate() {
		s.logger.Info("canonical query did not resolve to a facet chain",
			zap.String("query", args.Query),
		)
		return resolved, nil
	}

	s.cache.Put(ctx, args.Query, resolved)
	return resolved, nil
}

// mapSegments pairs each canonical path segment with the facet tag the
// backend's metadata reports for it. Segments the metadata does not know are
// dropped, producing a partial (possibly degenerate) pair.
func mapSegments(segments []string, meta catalog.FacetsResult) facet.Path {
	var path facet.Path
	for _, value := range segments {
		tag, ok := tagFor(value, meta)
		if !ok {
			continue
		}
		path = append(path, facet.Segment{Value: value, Tag: tag})
	}
	return path
}

func tagFor(value string, meta catalog.FacetsResult) (string, bool) {
	value = strings.ToLower(value)
	if matchesCategory(value, meta.CategoriesTrees) || matchesFacetValue(value, meta.Departments) {
		return facet.TagCategory, true
	}
	if matchesFacetValue(value, meta.Brands) {
		return "b", true
	}
	for _, group := range meta.SpecificationFilters {
		for _, fv := range group.Facets {
			if fv.Map != "" && matchesValue(value, fv) {
				return fv.Map, true
			}
		}
	}
	return "", false
}

func matchesCategory(value string, trees []catalog.CategoryTree) bool {
	for _, tree := range trees {
		if slugFromLink(tree.Link) == value || slugify(tree.Name) == value {
			return true
		}
		if matchesCategory(value, tree.Children) {
			return true
		}
	}
	return false
}

func matchesFacetValue(value string, facets []catalog.FacetValue) bool {
	for _, fv := range facets {
		if matchesValue(value, fv) {
			return true
		}
	}
	return false
}

func matchesValue(value string, fv catalog.FacetValue) bool {
	if fv.Value != "" && strings.EqualFold(fv.Value, value) {
		return true
	}
	return slugFromLink(fv.Link) == value || slugify(fv.Name) == value
}

// slugFromLink extracts the last path segment of a facet link, e.g.
// "/clothing/shoes" -> "shoes".
func slugFromLink(link string) string {
	link = strings.TrimRight(link, "/")
	if idx := strings.LastIndex(link, "/"); idx >= 0 {
		link = link[idx+1:]
	}
	return strings.ToLower(link)
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
