package nostr

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"nostrcore/internal/xcrypto"
	"nostrcore/nostrerr"
)

// Timestamp is an absolute Unix time in seconds, the wire representation
// every event and gift-wrap carries for created_at.
type Timestamp int64

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().Unix())
}

// Time converts a Timestamp to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// Event is the core Nostr object: id/pubkey/sig populated once signed,
// absent before. Nothing about Event mutates after Sign succeeds — callers
// that need a different event build a new one.
type Event struct {
	ID        string
	PubKey    string
	CreatedAt Timestamp
	Kind      int
	Tags      Tags
	Content   string
	Sig       string
}

// eventWire is the JSON object shape of spec §6: exactly the seven keys,
// in this field order when re-marshaled (Go's encoding/json keeps struct
// field order, unlike map iteration, which is why the wire form is a
// struct and not a map[string]any).
type eventWire struct {
	ID        string `json:"id"`
	PubKey    string `json:"pubkey"`
	Kind      int    `json:"kind"`
	Tags      Tags   `json:"tags"`
	CreatedAt int64  `json:"created_at"`
	Content   string `json:"content"`
	Sig       string `json:"sig"`
}

// MarshalJSON renders the wire object form. Unknown/extra fields are never
// produced; Tags may be nil, which marshals as [] rather than null so
// round-tripping an event with no tags matches what a relay would send.
func (e Event) MarshalJSON() ([]byte, error) {
	tags := e.Tags
	if tags == nil {
		tags = Tags{}
	}
	return json.Marshal(eventWire{
		ID:        e.ID,
		PubKey:    e.PubKey,
		Kind:      e.Kind,
		Tags:      tags,
		CreatedAt: int64(e.CreatedAt),
		Content:   e.Content,
		Sig:       e.Sig,
	})
}

// UnmarshalJSON accepts the wire object form. Parsing here is total: it
// never fails on an unknown extra field, and created_at arrives as integer
// seconds. It does NOT validate id/sig — call Validate for that, matching
// the spec's split between "parse" (total, may build an inconsistent
// Event) and "validate" (may reject it).
func (e *Event) UnmarshalJSON(b []byte) error {
	var w eventWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("nostr: parse event: %w", err)
	}
	*e = Event{
		ID:        w.ID,
		PubKey:    w.PubKey,
		Kind:      w.Kind,
		Tags:      w.Tags,
		CreatedAt: Timestamp(w.CreatedAt),
		Content:   w.Content,
		Sig:       w.Sig,
	}
	return nil
}

// Serialize returns the canonical six-element array form used for hashing:
// [0, pubkey, created_at, kind, tags, content], compact JSON, no HTML
// escaping. This mirrors the teacher's createEventHash, generalized from a
// map[string]interface{} decode to operating directly on typed fields.
func (e Event) Serialize() []byte {
	tags := e.Tags
	if tags == nil {
		tags = Tags{}
	}
	arr := []interface{}{0, e.PubKey, int64(e.CreatedAt), e.Kind, tags, e.Content}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Every element here is a concrete, always-marshalable value (string,
	// int64, int, Tags); Encode cannot fail.
	_ = enc.Encode(arr)

	b := buf.Bytes()
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	return b
}

// GetID computes the canonical event id: lowercase hex SHA-256 of Serialize.
func (e Event) GetID() string {
	sum := sha256.Sum256(e.Serialize())
	return hex.EncodeToString(sum[:])
}

// DeserializeRumor reconstructs an unsigned Event (a NIP-59 rumor) from the
// canonical six-element array produced by Serialize: [0, pubkey, created_at,
// kind, tags, content]. Sig is left empty; ID is recomputed from the
// reconstructed fields rather than trusted from the wire, since a rumor
// carries no signature to validate it against.
func DeserializeRumor(b []byte) (Event, error) {
	var arr [6]json.RawMessage
	if err := json.Unmarshal(b, &arr); err != nil {
		return Event{}, fmt.Errorf("nostr: parse rumor: %w", err)
	}
	var pubkey, content string
	var createdAt int64
	var kind int
	var tags Tags
	if err := json.Unmarshal(arr[1], &pubkey); err != nil {
		return Event{}, fmt.Errorf("nostr: parse rumor pubkey: %w", err)
	}
	if err := json.Unmarshal(arr[2], &createdAt); err != nil {
		return Event{}, fmt.Errorf("nostr: parse rumor created_at: %w", err)
	}
	if err := json.Unmarshal(arr[3], &kind); err != nil {
		return Event{}, fmt.Errorf("nostr: parse rumor kind: %w", err)
	}
	if err := json.Unmarshal(arr[4], &tags); err != nil {
		return Event{}, fmt.Errorf("nostr: parse rumor tags: %w", err)
	}
	if err := json.Unmarshal(arr[5], &content); err != nil {
		return Event{}, fmt.Errorf("nostr: parse rumor content: %w", err)
	}

	e := Event{
		PubKey:    pubkey,
		CreatedAt: Timestamp(createdAt),
		Kind:      kind,
		Tags:      tags,
		Content:   content,
	}
	e.ID = e.GetID()
	return e, nil
}

// Sign fills pubkey/id/sig from a 32-byte hex secret key. If pubkey or id
// are already set, they must match what the secret key / canonical
// serialization would produce — a mismatch is a fatal contract violation,
// not something Sign silently papers over. Sign never touches created_at,
// kind, tags or content.
func (e *Event) Sign(seckeyHex string) error {
	seckey, err := hex.DecodeString(seckeyHex)
	if err != nil || len(seckey) != 32 {
		return fmt.Errorf("nostr: sign: %w", nostrerr.ErrInvalidHex)
	}

	pub, err := xcrypto.SeckeyToPubkey(seckey)
	if err != nil {
		return fmt.Errorf("nostr: sign: %w", err)
	}
	pubHex := hex.EncodeToString(pub)

	if e.PubKey == "" {
		e.PubKey = pubHex
	} else if e.PubKey != pubHex {
		return fmt.Errorf("nostr: sign: %w", nostrerr.ErrPubkeyMismatch)
	}

	id := e.GetID()
	if e.ID == "" {
		e.ID = id
	} else if e.ID != id {
		return fmt.Errorf("nostr: sign: %w", nostrerr.ErrIDMismatch)
	}

	idBytes, err := hex.DecodeString(e.ID)
	if err != nil || len(idBytes) != 32 {
		return fmt.Errorf("nostr: sign: %w", nostrerr.ErrInvalidEventID)
	}

	sig, err := xcrypto.Sign(seckey, idBytes)
	if err != nil {
		return fmt.Errorf("nostr: sign: %w", err)
	}
	e.Sig = hex.EncodeToString(sig)
	return nil
}

// CheckID reports whether ID matches the recomputed canonical id.
func (e Event) CheckID() bool {
	return e.ID == e.GetID()
}

// CheckSignature verifies Sig against ID and PubKey. It reports false
// (never an error) on any structural problem — wrong-length pubkey/sig,
// bad hex — since those are just more ways for the signature to not
// verify.
func (e Event) CheckSignature() bool {
	pubBytes, err := hex.DecodeString(e.PubKey)
	if err != nil || len(pubBytes) != 32 {
		return false
	}
	sigBytes, err := hex.DecodeString(e.Sig)
	if err != nil || len(sigBytes) != 64 {
		return false
	}
	idBytes, err := hex.DecodeString(e.ID)
	if err != nil || len(idBytes) != 32 {
		return false
	}
	return xcrypto.Verify(sigBytes, idBytes, pubBytes)
}

// Validate reports the reason an Event is not acceptable for relay/client
// consumption: bad id, bad signature, or malformed pubkey/sig length. A
// nil return means the event is fully valid.
func (e Event) Validate() error {
	if !e.CheckID() {
		return fmt.Errorf("nostr: validate: %w", nostrerr.ErrInvalidEventID)
	}
	pubBytes, err := hex.DecodeString(e.PubKey)
	if err != nil || len(pubBytes) != 32 {
		return fmt.Errorf("nostr: validate: %w", nostrerr.ErrInvalidPubkey)
	}
	sigBytes, err := hex.DecodeString(e.Sig)
	if err != nil || len(sigBytes) != 64 {
		return fmt.Errorf("nostr: validate: %w", nostrerr.ErrInvalidPayload)
	}
	if !e.CheckSignature() {
		return fmt.Errorf("nostr: validate: signature verification failed")
	}
	return nil
}

// ParseEvent parses and validates the wire object form in one step,
// returning (nil, err) for anything Validate would reject — the "parse"
// operation of spec §4.C5, which is defined to return absent rather than a
// half-valid Event.
func ParseEvent(raw []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("nostr: parse event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
