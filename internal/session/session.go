// Package session carries the caller's segment data (sales channel, locale,
// segmentation token) through the request context.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

// Segment is the per-caller segmentation state. Token is the opaque raw token
// as received; it feeds the in-flight deduplication key unchanged.
type Segment struct {
	Channel     string `json:"channel"`
	CountryCode string `json:"countryCode"`
	Locale      string `json:"cultureInfo"`
	Token       string `json:"-"`
}

// ParseToken decodes a segment token: base64 (standard or URL-safe, padded or
// not) over a JSON payload. An undecodable token still yields a Segment
// carrying the raw token, so deduplication keys stay correct for opaque
// tokens minted elsewhere.
func ParseToken(raw string) Segment {
	seg := Segment{Token: raw}
	if raw == "" {
		return seg
	}

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding,
		base64.URLEncoding, base64.RawURLEncoding,
	} {
		payload, err := enc.DecodeString(raw)
		if err != nil {
			continue
		}
		// Decode into a scratch value: Unmarshal fills fields before it
		// reports an error, and a half-decoded payload must not leak out.
		var decoded Segment
		if json.Unmarshal(payload, &decoded) == nil {
			decoded.Token = raw
			return decoded
		}
	}
	return seg
}

type ctxKey struct{}

// ContextWithSegment stores segment data in the context.
func ContextWithSegment(ctx context.Context, seg Segment) context.Context {
	return context.WithValue(ctx, ctxKey{}, seg)
}

// FromContext extracts segment data from the context. Returns a zero Segment
// when none is present.
func FromContext(ctx context.Context) Segment {
	if seg, ok := ctx.Value(ctxKey{}).(Segment); ok {
		return seg
	}
	return Segment{}
}
