// Package nip59 implements the rumor/seal/gift-wrap envelope: an unsigned
// inner event (rumor), sealed under the true sender's key, then wrapped
// again under a one-shot ephemeral key so the wire-visible signer is never
// the real author.
package nip59

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	nostr "nostrcore"
	"nostrcore/internal/xcrypto"
	"nostrcore/nip44"
	"nostrcore/nostrerr"
)

const (
	// KindSeal is the event kind a Seal is published as.
	KindSeal = 13
	// KindGiftWrap is the event kind a GiftWrap is published as.
	KindGiftWrap = 1059
)

const timestampJitterSeconds = 172800 // ±2 days

// randomizedTimestamp returns the current time offset by a uniformly random
// number of seconds in [-timestampJitterSeconds, +timestampJitterSeconds],
// per the rumor/seal/gift-wrap timestamp-hiding rule.
func randomizedTimestamp() (nostr.Timestamp, error) {
	span := big.NewInt(2*timestampJitterSeconds + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("nip59: random timestamp: %w", err)
	}
	offset := n.Int64() - timestampJitterSeconds
	return nostr.Timestamp(int64(nostr.Now()) + offset), nil
}

// Seal wraps a rumor under the sender's real key, readable only by
// recipientPubkey. senderSeckeyHex/senderPubkeyHex identify the true author;
// rumor.PubKey must already equal senderPubkeyHex.
func Seal(rumor nostr.Event, senderSeckeyHex, senderPubkeyHex, recipientPubkeyHex string) (nostr.Event, error) {
	if rumor.PubKey != senderPubkeyHex {
		return nostr.Event{}, fmt.Errorf("nip59: seal: %w", nostrerr.ErrSenderMismatch)
	}

	payload, err := nip44.Encrypt(senderSeckeyHex, recipientPubkeyHex, string(rumor.Serialize()))
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: seal: %w", err)
	}

	ts, err := randomizedTimestamp()
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: seal: %w", err)
	}

	seal := nostr.Event{
		PubKey:    senderPubkeyHex,
		CreatedAt: ts,
		Kind:      KindSeal,
		Tags:      nostr.Tags{},
		Content:   payload,
	}
	if err := seal.Sign(senderSeckeyHex); err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: seal: %w", err)
	}
	return seal, nil
}

// GiftWrap wraps a signed seal under a freshly-minted ephemeral keypair,
// addressed to a single recipient via a "p" tag. The ephemeral key is used
// once and discarded — this function never returns it.
func GiftWrap(seal nostr.Event, recipientPubkeyHex string) (nostr.Event, error) {
	ephemeralSeckey, err := xcrypto.GenerateSeckey()
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: gift wrap: %w", err)
	}
	defer zero(ephemeralSeckey)

	ephemeralSeckeyHex := hex.EncodeToString(ephemeralSeckey)
	ephemeralPubkey, err := xcrypto.SeckeyToPubkey(ephemeralSeckey)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: gift wrap: %w", err)
	}
	ephemeralPubkeyHex := hex.EncodeToString(ephemeralPubkey)

	sealBytes, err := seal.MarshalJSON()
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: gift wrap: %w", err)
	}

	payload, err := nip44.Encrypt(ephemeralSeckeyHex, recipientPubkeyHex, string(sealBytes))
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: gift wrap: %w", err)
	}

	ts, err := randomizedTimestamp()
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: gift wrap: %w", err)
	}

	wrap := nostr.Event{
		PubKey:    ephemeralPubkeyHex,
		CreatedAt: ts,
		Kind:      KindGiftWrap,
		Tags:      nostr.Tags{nostr.NewTag("p", recipientPubkeyHex)},
		Content:   payload,
	}
	if err := wrap.Sign(ephemeralSeckeyHex); err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: gift wrap: %w", err)
	}
	return wrap, nil
}

// Wrap seals rumor for recipientPubkeyHex and gift-wraps the result in one
// step — the common case of sending to a single recipient (or the sender's
// own copy for their sent folder).
func Wrap(rumor nostr.Event, senderSeckeyHex, senderPubkeyHex, recipientPubkeyHex string) (nostr.Event, error) {
	seal, err := Seal(rumor, senderSeckeyHex, senderPubkeyHex, recipientPubkeyHex)
	if err != nil {
		return nostr.Event{}, err
	}
	return GiftWrap(seal, recipientPubkeyHex)
}

// Unwrap decrypts a gift-wrap addressed to recipientSeckeyHex and returns
// the enclosed rumor. Every step must succeed in sequence — gift-wrap
// decrypt, seal-kind check, seal decrypt, rumor parse, and the sender-match
// check — and any failure is returned as-is; there is no partial or
// best-effort result.
func Unwrap(giftWrap nostr.Event, recipientSeckeyHex string) (nostr.Event, error) {
	if giftWrap.Kind != KindGiftWrap {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: %w", nostrerr.ErrUnexpectedKind)
	}

	sealJSON, err := nip44.Decrypt(recipientSeckeyHex, giftWrap.PubKey, giftWrap.Content)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap gift wrap: %w", err)
	}

	var seal nostr.Event
	if err := seal.UnmarshalJSON([]byte(sealJSON)); err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: parse seal: %w", err)
	}
	if seal.Kind != KindSeal {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: %w", nostrerr.ErrUnexpectedKind)
	}
	if err := seal.Validate(); err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: invalid seal: %w", err)
	}

	rumorRaw, err := nip44.Decrypt(recipientSeckeyHex, seal.PubKey, seal.Content)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap seal: %w", err)
	}

	rumor, err := nostr.DeserializeRumor([]byte(rumorRaw))
	if err != nil {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: parse rumor: %w", err)
	}
	if rumor.Kind != 14 && rumor.Kind != 15 {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: %w", nostrerr.ErrUnexpectedKind)
	}
	if rumor.PubKey != seal.PubKey {
		return nostr.Event{}, fmt.Errorf("nip59: unwrap: %w", nostrerr.ErrSenderMismatch)
	}

	return rumor, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
