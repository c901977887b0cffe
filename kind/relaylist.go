package kind

import nostr "nostrcore"

// RelayListEntry is one relay URL and its read/write markers.
type RelayListEntry struct {
	URL   string
	Read  bool
	Write bool
}

// RelayList is the kind-10002 projection (NIP-65).
type RelayList struct {
	PubKey    string
	CreatedAt nostr.Timestamp
	Relays    []RelayListEntry
}

// ParseRelayList projects a kind-10002 event. A relay tag with no marker
// means both read and write.
func ParseRelayList(e nostr.Event) *RelayList {
	entries := make([]RelayListEntry, 0, len(e.Tags))
	for _, t := range e.Tags.FindAll("r") {
		entry := RelayListEntry{URL: t.Data}
		if len(t.Info) == 0 {
			entry.Read, entry.Write = true, true
		} else {
			switch t.Info[0] {
			case "read":
				entry.Read = true
			case "write":
				entry.Write = true
			default:
				entry.Read, entry.Write = true, true
			}
		}
		entries = append(entries, entry)
	}
	return &RelayList{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Relays: entries}
}

// NewRelayList builds an unsigned kind-10002 event.
func NewRelayList(entries []RelayListEntry) nostr.Event {
	tags := make(nostr.Tags, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.Read && entry.Write:
			tags = append(tags, nostr.NewTag("r", entry.URL))
		case entry.Read:
			tags = append(tags, nostr.NewTag("r", entry.URL, "read"))
		case entry.Write:
			tags = append(tags, nostr.NewTag("r", entry.URL, "write"))
		default:
			tags = append(tags, nostr.NewTag("r", entry.URL))
		}
	}
	return nostr.Event{Kind: KindRelayList, Tags: tags}
}
