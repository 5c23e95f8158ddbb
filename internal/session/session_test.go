package session

import (
	"context"
	"encoding/base64"
	"testing"
)

func TestParseToken(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString(
		[]byte(`{"channel":"3","countryCode":"BRA","cultureInfo":"pt-BR"}`),
	)

	seg := ParseToken(raw)
	if seg.Channel != "3" {
		t.Errorf("Channel = %q, want 3", seg.Channel)
	}
	if seg.Locale != "pt-BR" {
		t.Errorf("Locale = %q, want pt-BR", seg.Locale)
	}
	if seg.Token != raw {
		t.Errorf("Token = %q, want raw token preserved", seg.Token)
	}
}

func TestParseToken_Opaque(t *testing.T) {
	seg := ParseToken("not-base64-at-all!!!")
	if seg.Channel != "" {
		t.Errorf("Channel = %q, want empty", seg.Channel)
	}
	if seg.Token != "not-base64-at-all!!!" {
		t.Errorf("Token = %q, want raw token preserved", seg.Token)
	}
}

func TestParseToken_MalformedPayload(t *testing.T) {
	// Valid base64 over JSON with a type mismatch: Unmarshal fills the good
	// fields before it errors, and none of that may survive.
	raw := base64.StdEncoding.EncodeToString(
		[]byte(`{"channel":"3","countryCode":123,"cultureInfo":"pt-BR"}`),
	)

	seg := ParseToken(raw)
	if seg.Channel != "" || seg.CountryCode != "" || seg.Locale != "" {
		t.Errorf("fields must stay empty for an undecodable payload, got %+v", seg)
	}
	if seg.Token != raw {
		t.Errorf("Token = %q, want raw token preserved", seg.Token)
	}
}

func TestParseToken_Empty(t *testing.T) {
	if seg := ParseToken(""); seg != (Segment{}) {
		t.Errorf("expected zero segment, got %+v", seg)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithSegment(context.Background(), Segment{Channel: "2", Token: "tok"})
	seg := FromContext(ctx)
	if seg.Channel != "2" || seg.Token != "tok" {
		t.Fatalf("unexpected segment: %+v", seg)
	}

	if seg := FromContext(context.Background()); seg != (Segment{}) {
		t.Fatalf("expected zero segment, got %+v", seg)
	}
}
