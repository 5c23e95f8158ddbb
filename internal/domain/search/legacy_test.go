package search

import (
	"strings"
	"testing"
)

func TestIsLegacy(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		mapArg string
		want   bool
	}{
		{
			name:   "map cardinality matches path",
			query:  "clothing/shoes",
			mapArg: "c,c",
			want:   true,
		},
		{
			name:   "map cardinality mismatch",
			query:  "clothing/shoes/nike",
			mapArg: "c,c",
			want:   false,
		},
		{
			name:   "no map",
			query:  "clothing/shoes",
			mapArg: "",
			want:   false,
		},
		{
			name:   "specification filter marker wins regardless of map",
			query:  "shoes/specificationFilter_10:red",
			mapArg: "",
			want:   true,
		},
		{
			name:   "single segment with single tag",
			query:  "shoes",
			mapArg: "c",
			want:   true,
		},
		{
			// Known ambiguity: a canonical query can coincidentally satisfy
			// the cardinality check.
			name:   "coincidental cardinality match classifies as legacy",
			query:  "canonical-path/extra",
			mapArg: "b,b",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := strings.Split(tt.query, "/")
			if got := IsLegacy(tt.query, tt.mapArg, segments); got != tt.want {
				t.Errorf("IsLegacy(%q, %q) = %v, want %v", tt.query, tt.mapArg, got, tt.want)
			}
		})
	}
}
