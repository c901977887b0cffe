// Package bech32x wraps github.com/btcsuite/btcd/btcutil/bech32 the way
// NIP-19/NIP-49 need it: the classic (non-m) polynomial and the BIP-173
// 90-character limit lifted on decode.
package bech32x

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Encode converts 8-bit data to a bech32 string with the given
// human-readable prefix. It never truncates, regardless of length.
func Encode(hrp string, data []byte) (string, error) {
	five, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32x: convert bits: %w", err)
	}
	s, err := bech32.Encode(hrp, five)
	if err != nil {
		return "", fmt.Errorf("bech32x: encode: %w", err)
	}
	return s, nil
}

// Decode parses a bech32 string into its human-readable prefix and 8-bit
// data, ignoring the BIP-173 length limit (NIP-19 identifiers may be
// arbitrarily long).
func Decode(s string) (hrp string, data []byte, err error) {
	hrp, five, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return "", nil, fmt.Errorf("bech32x: decode: %w", err)
	}
	eight, err := bech32.ConvertBits(five, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("bech32x: convert bits: %w", err)
	}
	return hrp, eight, nil
}
