package kind

import (
	"testing"

	nostr "nostrcore"
)

func TestParseMetadataKnownAndRawFields(t *testing.T) {
	e := nostr.Event{
		PubKey:  "abc",
		Kind:    KindMetadata,
		Content: `{"name":"alice","about":"hi","nip05":"alice@example.com","custom_field":"extra"}`,
	}
	m, err := ParseMetadata(e)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Name != "alice" || m.About != "hi" || m.NIP05 != "alice@example.com" {
		t.Fatalf("got %+v", m)
	}
	if m.Raw["custom_field"] != "extra" {
		t.Fatalf("raw missing custom_field: %v", m.Raw)
	}
}

func TestParseMetadataRejectsNonJSON(t *testing.T) {
	e := nostr.Event{Kind: KindMetadata, Content: "not json"}
	if _, err := ParseMetadata(e); err == nil {
		t.Fatal("expected error for non-JSON content")
	}
}

func TestNewMetadataRoundTrip(t *testing.T) {
	want := Metadata{Name: "bob", About: "builder", LUD16: "bob@getalby.com"}
	e, err := NewMetadata(want)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if e.Kind != KindMetadata {
		t.Fatalf("kind = %d, want %d", e.Kind, KindMetadata)
	}
	got, err := ParseMetadata(e)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Name != want.Name || got.About != want.About || got.LUD16 != want.LUD16 {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
