// Package bolt11 is a minimal BOLT-11 Lightning invoice reader: just enough
// of the HRP amount encoding and tagged-field layout to support NIP-57 zap
// amount and description verification. It is not a full invoice validator —
// it does not check the payee signature.
package bolt11

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"nostrcore/nostrerr"
)

// signatureWords is the length, in 5-bit words, of the trailing signature +
// recovery id (520 bits = 104 words).
const signatureWords = 104

// timestampWords is the length, in 5-bit words, of the leading timestamp
// (35 bits = 7 words).
const timestampWords = 7

// Invoice is the subset of a decoded BOLT-11 invoice this package exposes.
type Invoice struct {
	Network            string
	AmountMsat          *uint64 // nil if the invoice carries no amount
	Timestamp           int64
	PaymentHash         string // hex, 32 bytes
	Description         string
	DescriptionHash     string // hex, 32 bytes, set instead of Description when the invoice uses 'h'
	ExpirySeconds       int64  // defaults to 3600 if the 'x' field is absent
	MinFinalCLTVExpiry  int64
	PayeeNodeID         string // hex, 33 bytes, present only if the invoice carries an 'n' field
}

// AmountSats returns the invoice amount rounded down to whole satoshis, or
// (0, false) if the invoice carries no amount.
func (inv Invoice) AmountSats() (uint64, bool) {
	if inv.AmountMsat == nil {
		return 0, false
	}
	return *inv.AmountMsat / 1000, true
}

// Decode parses a bech32 BOLT-11 invoice string (lowercase, "ln" HRP
// prefix). Malformed or truncated tagged fields are skipped rather than
// failing the whole parse; an invoice with no amount decodes successfully
// with AmountMsat == nil.
func Decode(invoice string) (Invoice, error) {
	invoice = strings.ToLower(invoice)
	hrp, words, err := bech32.DecodeNoLimit(invoice)
	if err != nil {
		return Invoice{}, fmt.Errorf("bolt11: decode: %w", nostrerr.ErrInvalidBech32)
	}

	network, amountMsat, err := parseHRP(hrp)
	if err != nil {
		return Invoice{}, fmt.Errorf("bolt11: decode: %w", err)
	}

	if len(words) < timestampWords+signatureWords {
		return Invoice{}, fmt.Errorf("bolt11: decode: %w", nostrerr.ErrPayloadTooShort)
	}

	inv := Invoice{
		Network:       network,
		AmountMsat:    amountMsat,
		Timestamp:     int64(wordsToUint(words[:timestampWords])),
		ExpirySeconds: 3600,
	}

	dataWords := words[timestampWords : len(words)-signatureWords]
	i := 0
	for i < len(dataWords) {
		if i+3 > len(dataWords) {
			break
		}
		typ := dataWords[i]
		length := int(dataWords[i+1])<<5 | int(dataWords[i+2])
		i += 3
		if i+length > len(dataWords) {
			break
		}
		field := dataWords[i : i+length]
		i += length

		switch typ {
		case 1: // payment_hash
			b := wordsToBytes(field)
			if len(b) >= 32 {
				inv.PaymentHash = hex.EncodeToString(b[:32])
			}
		case 13: // description
			inv.Description = string(wordsToBytes(field))
		case 23: // description_hash
			b := wordsToBytes(field)
			if len(b) >= 32 {
				inv.DescriptionHash = hex.EncodeToString(b[:32])
			}
		case 6: // expiry
			inv.ExpirySeconds = int64(wordsToUint(field))
		case 24: // min_final_cltv_expiry
			inv.MinFinalCLTVExpiry = int64(wordsToUint(field))
		case 19: // payee node id
			b := wordsToBytes(field)
			if len(b) >= 33 {
				inv.PayeeNodeID = hex.EncodeToString(b[:33])
			}
		}
	}

	return inv, nil
}

// parseHRP splits a BOLT-11 human-readable part ("lnbc2500u", "lntb", ...)
// into its network prefix and amount in millisatoshis.
func parseHRP(hrp string) (network string, amountMsat *uint64, err error) {
	if !strings.HasPrefix(hrp, "ln") {
		return "", nil, nostrerr.ErrInvalidPrefix
	}
	rest := hrp[2:]

	i := 0
	for i < len(rest) && !unicode.IsDigit(rune(rest[i])) {
		i++
	}
	network = rest[:i]
	amountPart := rest[i:]
	if amountPart == "" {
		return network, nil, nil
	}

	digitsPart := amountPart
	var mult byte
	last := amountPart[len(amountPart)-1]
	if last == 'm' || last == 'u' || last == 'n' || last == 'p' {
		mult = last
		digitsPart = amountPart[:len(amountPart)-1]
	}
	digits, perr := strconv.ParseUint(digitsPart, 10, 64)
	if perr != nil {
		return "", nil, fmt.Errorf("%w: invalid amount", nostrerr.ErrInvalidPayload)
	}
	msat, merr := multiplierToMsat(digits, mult)
	if merr != nil {
		return "", nil, merr
	}
	return network, &msat, nil
}

// multiplierToMsat converts a decimal digit string (already parsed) and its
// trailing multiplier letter into millisatoshis, per the BOLT-11 amount
// encoding (1 bitcoin == 10^11 msat).
func multiplierToMsat(digits uint64, mult byte) (uint64, error) {
	switch mult {
	case 0:
		return digits * 100_000_000_000, nil
	case 'm':
		return digits * 100_000_000, nil
	case 'u':
		return digits * 100_000, nil
	case 'n':
		return digits * 100, nil
	case 'p':
		if digits%10 != 0 {
			return 0, fmt.Errorf("%w: sub-millisatoshi amount", nostrerr.ErrInvalidPayload)
		}
		return digits / 10, nil
	default:
		return 0, fmt.Errorf("%w: unknown amount multiplier", nostrerr.ErrInvalidPayload)
	}
}

// wordsToUint big-endian packs a short sequence of 5-bit words into a uint.
func wordsToUint(words []byte) uint64 {
	var v uint64
	for _, w := range words {
		v = (v << 5) | uint64(w)
	}
	return v
}

// wordsToBytes packs 5-bit words into bytes, dropping any trailing bits that
// don't fill a whole byte — the convention BOLT-11 tagged fields use for
// hash/pubkey payloads that aren't a multiple of 8 bits.
func wordsToBytes(words []byte) []byte {
	var buf uint64
	var bits uint
	out := make([]byte, 0, len(words)*5/8)
	for _, w := range words {
		buf = (buf << 5) | uint64(w)
		bits += 5
		for bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
		}
	}
	return out
}
