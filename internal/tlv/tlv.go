// Package tlv implements the 1-byte-type + 1-byte-length framing NIP-19
// composite identifiers use to pack relay hints, authors and kinds
// alongside their primary payload.
package tlv

import "nostrcore/nostrerr"

// Entry is one type+length+value record.
type Entry struct {
	Type  byte
	Value []byte
}

// Encode serialises a sequence of entries back to back: type(1) ||
// len(1) || value(len) per entry, in order.
func Encode(entries []Entry) []byte {
	var out []byte
	for _, e := range entries {
		out = append(out, e.Type, byte(len(e.Value)))
		out = append(out, e.Value...)
	}
	return out
}

// Decode parses a byte slice into an ordered sequence of entries. A single
// stray trailing byte that can't form a complete type+length header is
// tolerated silently; a header whose declared length overruns the buffer is
// an error.
func Decode(b []byte) ([]Entry, error) {
	var entries []Entry
	i := 0
	for i < len(b) {
		if i+2 > len(b) {
			// A single stray byte at the end: not a complete header.
			break
		}
		typ := b[i]
		length := int(b[i+1])
		i += 2
		if i+length > len(b) {
			return nil, nostrerr.ErrIncompleteTLV
		}
		value := make([]byte, length)
		copy(value, b[i:i+length])
		entries = append(entries, Entry{Type: typ, Value: value})
		i += length
	}
	return entries, nil
}
