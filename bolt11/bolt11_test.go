package bolt11

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// uintToWords packs v into exactly n 5-bit words, most significant first —
// the inverse of wordsToUint.
func uintToWords(v uint64, n int) []byte {
	words := make([]byte, n)
	for i := 0; i < n; i++ {
		shift := uint(5 * (n - 1 - i))
		words[i] = byte((v >> shift) & 0x1f)
	}
	return words
}

// buildTaggedField assembles a type + 10-bit-length header (3 words) plus
// the field's own already-5-bit-packed data.
func buildTaggedField(typ byte, data []byte) []byte {
	length := len(data)
	header := []byte{typ, byte(length>>5) & 0x1f, byte(length) & 0x1f}
	return append(header, data...)
}

func bytesToWordsPadded(t *testing.T, b []byte) []byte {
	t.Helper()
	words, err := bech32.ConvertBits(b, 8, 5, true)
	if err != nil {
		t.Fatalf("convert bits: %v", err)
	}
	return words
}

// buildInvoice assembles a synthetic BOLT-11 bech32 string out of a
// timestamp, a payment hash, a description and a zeroed dummy signature —
// enough to exercise Decode's tagged-field loop without a real signer.
func buildInvoice(t *testing.T, hrp string, timestamp int64, paymentHash [32]byte, description string, extra ...[]byte) string {
	t.Helper()
	words := uintToWords(uint64(timestamp), timestampWords)
	words = append(words, buildTaggedField(1, bytesToWordsPadded(t, paymentHash[:]))...)
	if description != "" {
		words = append(words, buildTaggedField(13, bytesToWordsPadded(t, []byte(description)))...)
	}
	for _, field := range extra {
		words = append(words, field...)
	}
	words = append(words, make([]byte, signatureWords)...) // zeroed dummy signature

	s, err := bech32.Encode(hrp, words)
	if err != nil {
		t.Fatalf("encode invoice: %v", err)
	}
	return s
}

func paymentHashFixture() [32]byte {
	var h [32]byte
	for i := range h {
		h[i] = byte(i)
	}
	return h
}

func TestDecodeParsesAmountTimestampAndTags(t *testing.T) {
	hash := paymentHashFixture()
	invoice := buildInvoice(t, "lnbc2500u", 1496314658, hash, "coffee")

	inv, err := Decode(invoice)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.Network != "bc" {
		t.Fatalf("network = %q, want bc", inv.Network)
	}
	if inv.Timestamp != 1496314658 {
		t.Fatalf("timestamp = %d, want 1496314658", inv.Timestamp)
	}
	if inv.PaymentHash != hex.EncodeToString(hash[:]) {
		t.Fatalf("payment hash = %s, want %s", inv.PaymentHash, hex.EncodeToString(hash[:]))
	}
	if inv.Description != "coffee" {
		t.Fatalf("description = %q, want coffee", inv.Description)
	}
	sats, ok := inv.AmountSats()
	if !ok {
		t.Fatal("expected an amount")
	}
	if sats != 250_000 {
		t.Fatalf("amount = %d sats, want 250000", sats)
	}
}

func TestDecodeInvoiceWithoutAmount(t *testing.T) {
	hash := paymentHashFixture()
	invoice := buildInvoice(t, "lnbc", 1496314658, hash, "no amount here")

	inv, err := Decode(invoice)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.AmountMsat != nil {
		t.Fatalf("amount = %v, want nil", inv.AmountMsat)
	}
	if _, ok := inv.AmountSats(); ok {
		t.Fatal("expected AmountSats to report no amount")
	}
}

func TestDecodeFractionalSatsRoundDown(t *testing.T) {
	hash := paymentHashFixture()
	// 25p = 2.5 msat is invalid (not divisible by 10); use 250p = 25 msat,
	// which floors to 0 whole sats.
	invoice := buildInvoice(t, "lnbc250p", 1496314658, hash, "")

	inv, err := Decode(invoice)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	sats, ok := inv.AmountSats()
	if !ok {
		t.Fatal("expected an amount")
	}
	if sats != 0 {
		t.Fatalf("amount = %d sats, want 0 (floored)", sats)
	}
}

func TestDecodeToleratesTruncatedTaggedField(t *testing.T) {
	hash := paymentHashFixture()
	// A tagged field header claiming more data words than actually follow
	// before the signature; Decode must stop scanning rather than error.
	truncated := []byte{7, 0, 31} // type 7, length 31, but no data words follow
	invoice := buildInvoice(t, "lnbc2500u", 1496314658, hash, "coffee", truncated)

	inv, err := Decode(invoice)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.PaymentHash == "" || inv.Description != "coffee" {
		t.Fatalf("fields parsed before the truncated tag should survive: %+v", inv)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode("not-a-bech32-string"); err == nil {
		t.Fatal("expected an error decoding a non-bech32 string")
	}
}

func TestMultiplierToMsat(t *testing.T) {
	cases := []struct {
		digits uint64
		mult   byte
		want   uint64
	}{
		{1, 0, 100_000_000_000},
		{1, 'm', 100_000_000},
		{1, 'u', 100_000},
		{1, 'n', 100},
		{10, 'p', 1},
	}
	for _, c := range cases {
		got, err := multiplierToMsat(c.digits, c.mult)
		if err != nil {
			t.Fatalf("multiplierToMsat(%d, %q): %v", c.digits, c.mult, err)
		}
		if got != c.want {
			t.Errorf("multiplierToMsat(%d, %q) = %d, want %d", c.digits, c.mult, got, c.want)
		}
	}
}

func TestMultiplierToMsatRejectsSubMsatPico(t *testing.T) {
	if _, err := multiplierToMsat(25, 'p'); err == nil {
		t.Fatal("expected error for a 'p' amount not divisible by 10")
	}
}

func TestParseHRPSplitsNetworkAndAmount(t *testing.T) {
	network, amountMsat, err := parseHRP("lnbc2500u")
	if err != nil {
		t.Fatalf("parseHRP: %v", err)
	}
	if network != "bc" {
		t.Fatalf("network = %q, want bc", network)
	}
	if amountMsat == nil || *amountMsat != 250_000_000 {
		t.Fatalf("amountMsat = %v, want 250000000", amountMsat)
	}
}

func TestParseHRPRejectsNonLnPrefix(t *testing.T) {
	if _, _, err := parseHRP("btc2500u"); err == nil {
		t.Fatal("expected error for an hrp without the ln prefix")
	}
}

func TestWordsToUintAndBack(t *testing.T) {
	const want = uint64(1496314658)
	words := uintToWords(want, timestampWords)
	if got := wordsToUint(words); got != want {
		t.Fatalf("round trip = %d, want %d", got, want)
	}
}

func TestWordsToBytesDropsTrailingPartialByte(t *testing.T) {
	hash := paymentHashFixture()
	words := bytesToWordsPadded(t, hash[:])
	got := wordsToBytes(words)
	if !strings.EqualFold(hex.EncodeToString(got[:32]), hex.EncodeToString(hash[:])) {
		t.Fatalf("got %x, want %x", got[:32], hash[:])
	}
}
