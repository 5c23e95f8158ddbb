package catalog

import (
	"net/url"
	"sort"
	"strings"
)

// RequestKey derives the in-flight deduplication key for an outbound request.
// Two concurrent requests with the same base URL, path, parameter set and
// session segmentation token collapse to one backend call. Parameter order is
// canonicalized by the serializer, so callers may build params in any order.
func RequestKey(baseURL, path string, params url.Values, segmentToken string) string {
	return baseURL + path + serializeParams(params) + "&segmentToken=" + segmentToken
}

// serializeParams renders params sorted by key, repeating multi-value keys,
// with a leading separator before every pair.
func serializeParams(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range params[k] {
			b.WriteString("&")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(v)
		}
	}
	return b.String()
}
