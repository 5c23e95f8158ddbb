package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/merxlabs/searchgate/internal/domain/search"
)

// Catalog backend endpoint paths, relative to the API base URL.
const (
	productSearchPath = "pub/products/search/"
	facetsPath        = "pub/facets/search/"
)

// BuildSearchURL assembles the product-search request path from the argument
// bag. Clauses are appended in a fixed order the backend parsing depends on;
// every clause carries its own leading "&" and the base path always ends in
// "?", so a stray "?&" shows up whenever any clause fires. The backend
// tolerates it and downstream caches key on the exact string, so the artifact
// is preserved on purpose.
//
// sessionChannel overrides the explicit sales channel only when the caller
// asked to hide unavailable items.
func BuildSearchURL(args search.Args, sessionChannel string) string {
	var b strings.Builder
	b.WriteString(productSearchPath)
	b.WriteString(encodeTerm(args.Query))
	b.WriteString("?")

	// Category and free-text query are mutually exclusive at the URL level.
	if args.Category != "" && args.Query == "" {
		fmt.Fprintf(&b, "&fq=C:/%s/", args.Category)
	}

	for _, filter := range args.SpecificationFilters {
		b.WriteString("&fq=")
		b.WriteString(filter)
	}

	if args.PriceRange != "" {
		fmt.Fprintf(&b, "&fq=P:[%s]", args.PriceRange)
	}

	if args.Collection != "" {
		b.WriteString("&fq=productClusterIds:")
		b.WriteString(args.Collection)
	}

	if channel := resolveSalesChannel(args, sessionChannel); channel != "" {
		fmt.Fprintf(&b, "&fq=isAvailablePerSalesChannel_%s:1", channel)
	}

	if args.OrderBy != "" {
		b.WriteString("&O=")
		b.WriteString(args.OrderBy)
	}

	if args.Map != "" {
		b.WriteString("&map=")
		b.WriteString(args.Map)
	}

	if args.From > search.Unset {
		fmt.Fprintf(&b, "&_from=%d", args.From)
	}
	if args.To > search.Unset {
		fmt.Fprintf(&b, "&_to=%d", args.To)
	}

	if args.SimulationBehavior == search.SimulationSkip {
		b.WriteString("&simulation=false")
	}

	return b.String()
}

// BuildFacetsURL assembles the facets request path for a legacy query/map pair.
func BuildFacetsURL(query, mapArg string) string {
	var b strings.Builder
	b.WriteString(facetsPath)
	b.WriteString(encodeTerm(query))
	b.WriteString("?")
	if mapArg != "" {
		b.WriteString("&map=")
		b.WriteString(mapArg)
	}
	return b.String()
}

func resolveSalesChannel(args search.Args, sessionChannel string) string {
	if args.HideUnavailableItems && sessionChannel != "" {
		return sessionChannel
	}
	return args.SalesChannel
}

// encodeTerm normalizes the query term: decode once, trim, re-encode once.
// Decoding first guards against double-encoding already-encoded input.
// Segment separators survive so facet paths stay navigable.
func encodeTerm(query string) string {
	decoded, err := url.QueryUnescape(query)
	if err != nil {
		decoded = query
	}
	segments := strings.Split(strings.TrimSpace(decoded), "/")
	for i, s := range segments {
		segments[i] = strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return strings.Join(segments, "/")
}
