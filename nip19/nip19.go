// Package nip19 implements the bech32+TLV shareable identifiers of NIP-19:
// bare forms (npub, nsec, note) carrying 32 raw bytes, and composite forms
// (nprofile, nevent, naddr) carrying a TLV sequence of special/relay/author/
// kind entries.
package nip19

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"nostrcore/internal/bech32x"
	"nostrcore/internal/tlv"
	"nostrcore/nostrerr"
)

// Bech32 human-readable prefixes.
const (
	PrefixPubkey  = "npub"
	PrefixSeckey  = "nsec"
	PrefixNote    = "note"
	PrefixProfile = "nprofile"
	PrefixEvent   = "nevent"
	PrefixAddr    = "naddr"
)

// TLV entry types shared by nprofile/nevent/naddr.
const (
	tlvSpecial = 0
	tlvRelay   = 1
	tlvAuthor  = 2
	tlvKind    = 3
)

// Profile is the decoded payload of an nprofile identifier.
type Profile struct {
	PubKey string // hex
	Relays []string
}

// EventPointer is the decoded payload of an nevent identifier.
type EventPointer struct {
	ID     string // hex
	Relays []string
	Author string // hex, may be empty
	Kind   *int
}

// AddrPointer is the decoded payload of an naddr identifier (addressable
// event coordinate).
type AddrPointer struct {
	Identifier string // the "d" tag value, possibly empty
	Relays     []string
	Author     string // hex
	Kind       int
}

// EncodePubkey renders a 32-byte hex pubkey as npub1....
func EncodePubkey(pubkeyHex string) (string, error) {
	return encodeBare(PrefixPubkey, pubkeyHex)
}

// EncodeSeckey renders a 32-byte hex secret key as nsec1.... Callers should
// treat the returned string with the same care as raw key material.
func EncodeSeckey(seckeyHex string) (string, error) {
	return encodeBare(PrefixSeckey, seckeyHex)
}

// EncodeNote renders a 32-byte hex event id as note1....
func EncodeNote(eventIDHex string) (string, error) {
	return encodeBare(PrefixNote, eventIDHex)
}

func encodeBare(prefix, hexStr string) (string, error) {
	b, err := hex.DecodeString(hexStr)
	if err != nil || len(b) != 32 {
		return "", fmt.Errorf("nip19: encode %s: %w", prefix, nostrerr.ErrInvalidHex)
	}
	s, err := bech32x.Encode(prefix, b)
	if err != nil {
		return "", fmt.Errorf("nip19: encode %s: %w", prefix, err)
	}
	return s, nil
}

// DecodedBare is the result of decoding a bare identifier: its prefix and
// the 32 raw bytes, as hex.
type DecodedBare struct {
	Prefix string
	HexVal string
}

// DecodeBare decodes any of npub/nsec/note. The raw 32 bytes are returned
// untrimmed — bare identifiers carry exactly 32 bytes and padding
// tolerance does not apply to them.
func DecodeBare(s string) (DecodedBare, error) {
	prefix, data, err := bech32x.Decode(s)
	if err != nil {
		return DecodedBare{}, fmt.Errorf("nip19: decode: %w", err)
	}
	switch prefix {
	case PrefixPubkey, PrefixSeckey, PrefixNote:
	default:
		return DecodedBare{}, fmt.Errorf("nip19: decode: %w", nostrerr.ErrInvalidPrefix)
	}
	if len(data) != 32 {
		return DecodedBare{}, fmt.Errorf("nip19: decode %s: %w", prefix, nostrerr.ErrDecodedTooShort)
	}
	return DecodedBare{Prefix: prefix, HexVal: hex.EncodeToString(data)}, nil
}

// EncodeProfile renders an nprofile1... identifier.
func EncodeProfile(p Profile) (string, error) {
	pub, err := hex.DecodeString(p.PubKey)
	if err != nil || len(pub) != 32 {
		return "", fmt.Errorf("nip19: encode nprofile: %w", nostrerr.ErrInvalidHex)
	}
	entries := []tlv.Entry{{Type: tlvSpecial, Value: pub}}
	for _, r := range p.Relays {
		entries = append(entries, tlv.Entry{Type: tlvRelay, Value: []byte(r)})
	}
	s, err := bech32x.Encode(PrefixProfile, tlv.Encode(entries))
	if err != nil {
		return "", fmt.Errorf("nip19: encode nprofile: %w", err)
	}
	return s, nil
}

// DecodeProfile parses an nprofile1... identifier.
func DecodeProfile(s string) (Profile, error) {
	prefix, data, err := bech32x.Decode(s)
	if err != nil {
		return Profile{}, fmt.Errorf("nip19: decode nprofile: %w", err)
	}
	if prefix != PrefixProfile {
		return Profile{}, fmt.Errorf("nip19: decode nprofile: %w", nostrerr.ErrInvalidPrefix)
	}
	entries, err := tlv.Decode(data)
	if err != nil {
		return Profile{}, fmt.Errorf("nip19: decode nprofile: %w", err)
	}

	var p Profile
	haveSpecial := false
	for _, e := range entries {
		switch e.Type {
		case tlvSpecial:
			if haveSpecial {
				continue // first special wins
			}
			if len(e.Value) != 32 {
				continue
			}
			p.PubKey = hex.EncodeToString(e.Value)
			haveSpecial = true
		case tlvRelay:
			p.Relays = append(p.Relays, string(e.Value))
		}
	}
	if !haveSpecial {
		return Profile{}, fmt.Errorf("nip19: decode nprofile: %w", nostrerr.ErrMissingPubkey)
	}
	return p, nil
}

// EncodeEvent renders an nevent1... identifier.
func EncodeEvent(p EventPointer) (string, error) {
	id, err := hex.DecodeString(p.ID)
	if err != nil || len(id) != 32 {
		return "", fmt.Errorf("nip19: encode nevent: %w", nostrerr.ErrInvalidHex)
	}
	entries := []tlv.Entry{{Type: tlvSpecial, Value: id}}
	for _, r := range p.Relays {
		entries = append(entries, tlv.Entry{Type: tlvRelay, Value: []byte(r)})
	}
	if p.Author != "" {
		author, err := hex.DecodeString(p.Author)
		if err == nil && len(author) == 32 {
			entries = append(entries, tlv.Entry{Type: tlvAuthor, Value: author})
		}
	}
	if p.Kind != nil {
		var kindBytes [4]byte
		binary.BigEndian.PutUint32(kindBytes[:], uint32(*p.Kind))
		entries = append(entries, tlv.Entry{Type: tlvKind, Value: kindBytes[:]})
	}
	s, err := bech32x.Encode(PrefixEvent, tlv.Encode(entries))
	if err != nil {
		return "", fmt.Errorf("nip19: encode nevent: %w", err)
	}
	return s, nil
}

// DecodeEvent parses an nevent1... identifier. Malformed author/kind TLVs
// are dropped rather than failing the whole decode; a malformed special (the
// event id) does fail.
func DecodeEvent(s string) (EventPointer, error) {
	prefix, data, err := bech32x.Decode(s)
	if err != nil {
		return EventPointer{}, fmt.Errorf("nip19: decode nevent: %w", err)
	}
	if prefix != PrefixEvent {
		return EventPointer{}, fmt.Errorf("nip19: decode nevent: %w", nostrerr.ErrInvalidPrefix)
	}
	entries, err := tlv.Decode(data)
	if err != nil {
		return EventPointer{}, fmt.Errorf("nip19: decode nevent: %w", err)
	}

	var p EventPointer
	haveSpecial := false
	for _, e := range entries {
		switch e.Type {
		case tlvSpecial:
			if haveSpecial {
				continue
			}
			if len(e.Value) != 32 {
				continue
			}
			p.ID = hex.EncodeToString(e.Value)
			haveSpecial = true
		case tlvRelay:
			p.Relays = append(p.Relays, string(e.Value))
		case tlvAuthor:
			if len(e.Value) == 32 {
				p.Author = hex.EncodeToString(e.Value)
			}
		case tlvKind:
			if len(e.Value) == 4 {
				k := int(binary.BigEndian.Uint32(e.Value))
				p.Kind = &k
			}
		}
	}
	if !haveSpecial {
		return EventPointer{}, fmt.Errorf("nip19: decode nevent: %w", nostrerr.ErrMissingEventID)
	}
	return p, nil
}

// EncodeAddr renders an naddr1... identifier.
func EncodeAddr(p AddrPointer) (string, error) {
	author, err := hex.DecodeString(p.Author)
	if err != nil || len(author) != 32 {
		return "", fmt.Errorf("nip19: encode naddr: %w", nostrerr.ErrInvalidHex)
	}
	entries := []tlv.Entry{{Type: tlvSpecial, Value: []byte(p.Identifier)}}
	for _, r := range p.Relays {
		entries = append(entries, tlv.Entry{Type: tlvRelay, Value: []byte(r)})
	}
	entries = append(entries, tlv.Entry{Type: tlvAuthor, Value: author})
	var kindBytes [4]byte
	binary.BigEndian.PutUint32(kindBytes[:], uint32(p.Kind))
	entries = append(entries, tlv.Entry{Type: tlvKind, Value: kindBytes[:]})

	s, err := bech32x.Encode(PrefixAddr, tlv.Encode(entries))
	if err != nil {
		return "", fmt.Errorf("nip19: encode naddr: %w", err)
	}
	return s, nil
}

// DecodeAddr parses an naddr1... identifier. The special TLV is the "d" tag
// identifier and may be empty (zero-length is valid, unlike nprofile/nevent's
// 32-byte special).
func DecodeAddr(s string) (AddrPointer, error) {
	prefix, data, err := bech32x.Decode(s)
	if err != nil {
		return AddrPointer{}, fmt.Errorf("nip19: decode naddr: %w", err)
	}
	if prefix != PrefixAddr {
		return AddrPointer{}, fmt.Errorf("nip19: decode naddr: %w", nostrerr.ErrInvalidPrefix)
	}
	entries, err := tlv.Decode(data)
	if err != nil {
		return AddrPointer{}, fmt.Errorf("nip19: decode naddr: %w", err)
	}

	var p AddrPointer
	haveSpecial := false
	for _, e := range entries {
		switch e.Type {
		case tlvSpecial:
			if haveSpecial {
				continue
			}
			p.Identifier = string(e.Value)
			haveSpecial = true
		case tlvRelay:
			p.Relays = append(p.Relays, string(e.Value))
		case tlvAuthor:
			if len(e.Value) == 32 {
				p.Author = hex.EncodeToString(e.Value)
			}
		case tlvKind:
			if len(e.Value) == 4 {
				p.Kind = int(binary.BigEndian.Uint32(e.Value))
			}
		}
	}
	if !haveSpecial {
		return AddrPointer{}, fmt.Errorf("nip19: decode naddr: %w", nostrerr.ErrMissingKind)
	}
	return p, nil
}
