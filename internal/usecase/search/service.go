// Package search orchestrates storefront search requests: term translation,
// query-format classification, compatibility resolution, static facet
// filtering and outbound URL composition.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/catalog"
	"github.com/merxlabs/searchgate/internal/domain"
	domsearch "github.com/merxlabs/searchgate/internal/domain/search"
	"github.com/merxlabs/searchgate/internal/session"
)

// Service handles the storefront-facing search operations.
type Service struct {
	catalog    CatalogClient
	compat     CompatibilityResolver
	translator Translator
	logger     *zap.Logger
}

// New creates a search service. translator may be nil, disabling translation.
func New(cat CatalogClient, compat CompatibilityResolver, translator Translator, logger *zap.Logger) *Service {
	return &Service{catalog: cat, compat: compat, translator: translator, logger: logger}
}

// Facets serves a facets request. Canonical queries are resolved to the
// legacy encoding first; static behavior then narrows the pair to category
// and full-text segments.
func (s *Service) Facets(ctx context.Context, args domsearch.FacetsArgs) (catalog.FacetsResult, error) {
	pair, err := s.toCompatibility(ctx, args.Query, args.Map)
	if err != nil {
		return catalog.FacetsResult{}, err
	}

	resolved := domsearch.FacetsArgs{
		Query:                pair.Query,
		Map:                  pair.Map,
		Behavior:             args.Behavior,
		HideUnavailableItems: args.HideUnavailableItems,
	}
	// A degenerate pair out of the resolver reads as missing query or map.
	if err := resolved.Validate(); err != nil {
		return catalog.FacetsResult{}, err
	}

	if resolved.Behavior == domsearch.BehaviorStatic {
		resolved = resolved.FilterSpecificationFilters()
	}

	return s.catalog.Facets(ctx, resolved.Query, resolved.Map)
}

// Products runs a product search and returns the matching documents.
func (s *Service) Products(ctx context.Context, args domsearch.Args) ([]catalog.Product, error) {
	result, err := s.ProductSearch(ctx, args)
	if err != nil {
		return nil, err
	}
	return result.Products, nil
}

// ProductSearch runs a product search and returns the documents together with
// the pagination window derived from the backend's resources header.
func (s *Service) ProductSearch(ctx context.Context, args domsearch.Args) (catalog.ProductsResult, error) {
	if err := args.Validate(); err != nil {
		return catalog.ProductsResult{}, err
	}

	term, err := s.translateTerm(ctx, args.Query, args.Map)
	if err != nil {
		return catalog.ProductsResult{}, err
	}
	args.Query = term

	// Only a supplied map can mark the pair as canonical; a bare term search
	// needs no resolution.
	if args.Map != "" {
		pair, err := s.toCompatibility(ctx, args.Query, args.Map)
		if err != nil {
			return catalog.ProductsResult{}, err
		}
		if pair.IsDegenerate() {
			return catalog.ProductsResult{}, fmt.Errorf(
				"%w: query did not resolve to a facet chain", domain.ErrInvalidArgs,
			)
		}
		args.Query = pair.Query
		args.Map = pair.Map
	}

	url := catalog.BuildSearchURL(args, session.FromContext(ctx).Channel)
	return s.catalog.Products(ctx, url)
}

// Metadata is the resolved request shape a metadata assembler builds page
// titles from. Assembly itself happens outside the gateway.
type Metadata struct {
	Term              string
	CompatibilityArgs domsearch.CompatibilityArgs
}

// SearchMetadata resolves a query/map pair and the translated term without
// touching the products endpoint.
func (s *Service) SearchMetadata(ctx context.Context, query, mapArg string) (Metadata, error) {
	term, err := s.translateTerm(ctx, query, mapArg)
	if err != nil {
		return Metadata{}, err
	}

	pair, err := s.toCompatibility(ctx, term, mapArg)
	if err != nil {
		return Metadata{}, err
	}

	return Metadata{Term: term, CompatibilityArgs: pair}, nil
}

// toCompatibility classifies the pair and resolves it when canonical.
func (s *Service) toCompatibility(ctx context.Context, query, mapArg string) (domsearch.CompatibilityArgs, error) {
	pair := domsearch.CompatibilityArgs{Query: query, Map: mapArg}

	segments := strings.Split(query, "/")
	if domsearch.IsLegacy(query, mapArg, segments) {
		return pair, nil
	}

	resolved, err := s.compat.Resolve(ctx, pair)
	if err != nil {
		return domsearch.CompatibilityArgs{}, fmt.Errorf("compatibility resolution: %w", err)
	}
	return resolved, nil
}

// translateTerm translates a plain search term to the store's default locale.
// Facet paths are slugs, not prose, and are never translated.
func (s *Service) translateTerm(ctx context.Context, query, mapArg string) (string, error) {
	if s.translator == nil || query == "" {
		return query, nil
	}
	if strings.Contains(query, "/") || (mapArg != "" && mapArg != "ft") {
		return query, nil
	}

	term, err := s.translator.Translate(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrTranslationFailed, err)
	}
	return term, nil
}
