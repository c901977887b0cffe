package kind

import (
	"testing"

	nostr "nostrcore"
)

func TestNoteParseAndBuildRoundTrip(t *testing.T) {
	e := NewNote("hello world", []string{"pk1"}, []string{"ev1"}, []string{"nostr"})
	e.PubKey = "author"
	e.CreatedAt = 100

	n := ParseNote(e)
	if n.Content != "hello world" {
		t.Fatalf("content = %q", n.Content)
	}
	if len(n.Mentions) != 1 || n.Mentions[0] != "pk1" {
		t.Fatalf("mentions = %v", n.Mentions)
	}
	if len(n.References) != 1 || n.References[0] != "ev1" {
		t.Fatalf("references = %v", n.References)
	}
	if len(n.Hashtags) != 1 || n.Hashtags[0] != "nostr" {
		t.Fatalf("hashtags = %v", n.Hashtags)
	}
	if n.Expiration != nil {
		t.Fatalf("expiration = %v, want nil", n.Expiration)
	}
}

func TestNoteExpirationTag(t *testing.T) {
	e := nostr.Event{Tags: nostr.Tags{nostr.NewTag("expiration", "12345")}}
	n := ParseNote(e)
	if n.Expiration == nil || *n.Expiration != 12345 {
		t.Fatalf("expiration = %v, want 12345", n.Expiration)
	}
}

func TestContactsRoundTrip(t *testing.T) {
	follows := []Follow{
		{PubKey: "pk1", Relay: "wss://relay.example", Petname: "alice"},
		{PubKey: "pk2"},
	}
	e := NewContacts(follows, "{}")
	c := ParseContacts(e)
	if len(c.Follows) != 2 {
		t.Fatalf("got %d follows, want 2", len(c.Follows))
	}
	if c.Follows[0].PubKey != "pk1" || c.Follows[0].Relay != "wss://relay.example" || c.Follows[0].Petname != "alice" {
		t.Fatalf("got %+v", c.Follows[0])
	}
	if c.Follows[1].PubKey != "pk2" || c.Follows[1].Relay != "" || c.Follows[1].Petname != "" {
		t.Fatalf("got %+v", c.Follows[1])
	}
}

func TestDeletionRoundTrip(t *testing.T) {
	e := NewDeletion([]string{"ev1", "ev2"}, []string{"30023:pk:d"}, "mistake")
	d := ParseDeletion(e)
	if len(d.EventIDs) != 2 || d.EventIDs[0] != "ev1" || d.EventIDs[1] != "ev2" {
		t.Fatalf("event ids = %v", d.EventIDs)
	}
	if len(d.Addresses) != 1 || d.Addresses[0] != "30023:pk:d" {
		t.Fatalf("addresses = %v", d.Addresses)
	}
	if d.Reason != "mistake" {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestRepostRoundTrip(t *testing.T) {
	e := NewRepost("ev1", "author1", `{"id":"ev1"}`)
	r := ParseRepost(e)
	if r.TargetID != "ev1" || r.TargetAuthor != "author1" || r.RawEventJSON != `{"id":"ev1"}` {
		t.Fatalf("got %+v", r)
	}
}

func TestReactionRoundTrip(t *testing.T) {
	e := NewReaction("ev1", "author1", "+")
	r := ParseReaction(e)
	if r.TargetID != "ev1" || r.TargetAuthor != "author1" || r.Content != "+" {
		t.Fatalf("got %+v", r)
	}
}
