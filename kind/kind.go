// Package kind routes a validated nostr.Event to a typed projection by its
// kind number. It depends on the root nostr package, never the reverse, so
// adding a new projection here can never create an import cycle with
// nostr.Event/Tag/Filter.
package kind

import (
	"strconv"

	nostr "nostrcore"
)

// Recognized kind numbers. Named with a Kind prefix, matching nip59/nip17's
// own kind constants, so a kind number never collides with its own
// projection's struct name in this package's namespace.
const (
	KindMetadata        = 0
	KindNote            = 1
	KindContacts        = 3
	KindDeletion        = 5
	KindRepost          = 6
	KindReaction        = 7
	KindRelayList       = 10002
	KindReporting       = 1984
	KindZapRequest      = 9734
	KindZapReceipt      = 9735
	KindLongFormArticle = 30023
	KindLongFormDraft   = 30024
	KindComment         = 1111
	KindAppData         = 30078
	KindNIP46Envelope   = 24133
)

// Parse routes a validated event to its typed projection. It never
// re-verifies the event's signature — that is nostr.Event.Validate's job,
// and callers are expected to have already called it. Unknown kinds return
// a *Generic projection rather than an error.
func Parse(e nostr.Event) (interface{}, error) {
	switch e.Kind {
	case KindMetadata:
		return ParseMetadata(e)
	case KindNote:
		return ParseNote(e), nil
	case KindContacts:
		return ParseContacts(e), nil
	case KindDeletion:
		return ParseDeletion(e), nil
	case KindRepost:
		return ParseRepost(e), nil
	case KindReaction:
		return ParseReaction(e), nil
	case KindRelayList:
		return ParseRelayList(e), nil
	case KindReporting:
		return ParseReport(e), nil
	case KindZapRequest:
		return ParseZapRequest(e), nil
	case KindZapReceipt:
		return ParseZapReceipt(e), nil
	case KindLongFormArticle, KindLongFormDraft:
		return ParseArticle(e), nil
	case KindComment:
		return ParseComment(e), nil
	case KindAppData:
		return ParseAppData(e), nil
	case KindNIP46Envelope:
		return ParseNIP46Envelope(e), nil
	default:
		return ParseGeneric(e), nil
	}
}

// expiration reads the NIP-40 "expiration" tag (unix seconds), present on
// any kind, returning nil if absent or malformed.
func expiration(e nostr.Event) *nostr.Timestamp {
	t := e.Tags.Find("expiration")
	if t == nil {
		return nil
	}
	secs, err := strconv.ParseInt(t.Data, 10, 64)
	if err != nil {
		return nil
	}
	ts := nostr.Timestamp(secs)
	return &ts
}

// dTagValue reads the addressable "d" identifier, defaulting to "" (the
// NIP-01 convention for an addressable event with no explicit d tag).
func dTagValue(e nostr.Event) string {
	t := e.Tags.Find("d")
	if t == nil {
		return ""
	}
	return t.Data
}

// altTag reads the NIP-31 "alt" human-readable fallback description.
func altTag(e nostr.Event) string {
	t := e.Tags.Find("alt")
	if t == nil {
		return ""
	}
	return t.Data
}

// parseUnixTag parses a tag's decimal-seconds value into a Timestamp.
func parseUnixTag(s string) (nostr.Timestamp, bool) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return nostr.Timestamp(secs), true
}

// formatUnixTag renders a Timestamp as decimal seconds for a tag value.
func formatUnixTag(ts nostr.Timestamp) string {
	return strconv.FormatInt(int64(ts), 10)
}
