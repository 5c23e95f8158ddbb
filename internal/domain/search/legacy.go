package search

import "strings"

// SpecificationFilterMarker identifies a specification-filter clause inside a
// legacy query string.
const SpecificationFilterMarker = "specificationFilter_"

// IsLegacy reports whether a query/map pair is already in the legacy positional
// encoding. Legacy callers always supply a map whose cardinality matches the
// query path; canonical callers omit the map or supply one with mismatched
// cardinality. A canonical query whose segment count happens to equal its tag
// count is misclassified as legacy; downstream behavior depends on this
// heuristic, so it is kept as is.
func IsLegacy(query, mapArg string, pathSegments []string) bool {
	if strings.Contains(query, SpecificationFilterMarker) {
		return true
	}
	if mapArg == "" {
		return false
	}
	return len(strings.Split(mapArg, ",")) == len(pathSegments)
}
