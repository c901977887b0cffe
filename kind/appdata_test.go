package kind

import (
	"testing"

	nostr "nostrcore"
)

func TestAppDataRoundTrip(t *testing.T) {
	e := NewAppData("my-app:settings", `{"theme":"dark"}`)
	a := ParseAppData(e)
	if a.Identifier != "my-app:settings" || a.Content != `{"theme":"dark"}` {
		t.Fatalf("got %+v", a)
	}
}

func TestNIP46EnvelopeRoundTrip(t *testing.T) {
	e := NewNIP46Envelope("signer-pk", "encrypted-payload")
	env := ParseNIP46Envelope(e)
	if env.Recipient != "signer-pk" || env.Content != "encrypted-payload" {
		t.Fatalf("got %+v", env)
	}
}

func TestParseGenericSurfacesAltTag(t *testing.T) {
	e := nostr.Event{Kind: 99999, Tags: nostr.Tags{nostr.NewTag("alt", "a custom kind")}}
	g := ParseGeneric(e)
	if g.Alt != "a custom kind" {
		t.Fatalf("alt = %q", g.Alt)
	}
	if g.Event.Kind != 99999 {
		t.Fatalf("event kind = %d", g.Event.Kind)
	}
}

func TestParseGenericToleratesMissingAlt(t *testing.T) {
	e := nostr.Event{Kind: 99999}
	g := ParseGeneric(e)
	if g.Alt != "" {
		t.Fatalf("alt = %q, want empty", g.Alt)
	}
}
