package chi

import (
	"net/http"

	"github.com/merxlabs/searchgate/internal/session"
)

// segmentTokenHeader carries the caller's opaque segment token.
const segmentTokenHeader = "X-Segment-Token"

// SegmentMiddleware parses the segment token header into the request context.
// Requests without a token proceed with a zero segment.
func SegmentMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := r.Header.Get(segmentTokenHeader); token != "" {
				ctx := session.ContextWithSegment(r.Context(), session.ParseToken(token))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
