package kind

import nostr "nostrcore"

// AppData is the kind-30078 application-specific data projection (NIP-78):
// an addressable, app-namespaced blob, conventionally encrypted when
// private.
type AppData struct {
	PubKey     string
	CreatedAt  nostr.Timestamp
	Identifier string // "d" tag, the app's namespace key
	Content    string
}

// ParseAppData projects a kind-30078 event.
func ParseAppData(e nostr.Event) *AppData {
	return &AppData{
		PubKey:     e.PubKey,
		CreatedAt:  e.CreatedAt,
		Identifier: dTagValue(e),
		Content:    e.Content,
	}
}

// NewAppData builds an unsigned kind-30078 event under identifier.
func NewAppData(identifier, content string) nostr.Event {
	return nostr.Event{
		Kind:    KindAppData,
		Tags:    nostr.Tags{nostr.NewTag("d", identifier)},
		Content: content,
	}
}

// NIP46Envelope is the kind-24133 NIP-46 (remote signer) request/response
// envelope projection. Its content is opaque here — conventionally a
// nip44-encrypted JSON-RPC-shaped payload the caller decrypts separately,
// since this layer doesn't have the recipient's seckey.
type NIP46Envelope struct {
	PubKey    string
	CreatedAt nostr.Timestamp
	Recipient string
	Content   string
}

// ParseNIP46Envelope projects a kind-24133 event.
func ParseNIP46Envelope(e nostr.Event) *NIP46Envelope {
	env := &NIP46Envelope{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Content: e.Content}
	if t := e.Tags.Find("p"); t != nil {
		env.Recipient = t.Data
	}
	return env
}

// NewNIP46Envelope builds an unsigned kind-24133 event addressed to
// recipient, carrying an already-encrypted content payload.
func NewNIP46Envelope(recipient, content string) nostr.Event {
	return nostr.Event{
		Kind:    KindNIP46Envelope,
		Tags:    nostr.Tags{nostr.NewTag("p", recipient)},
		Content: content,
	}
}

// Generic is the fallback projection for any kind without a dedicated one.
type Generic struct {
	Event nostr.Event
	Alt   string
}

// ParseGeneric wraps any event with its NIP-31 "alt" tag surfaced, for kinds
// this package doesn't model directly.
func ParseGeneric(e nostr.Event) *Generic {
	return &Generic{Event: e, Alt: altTag(e)}
}
