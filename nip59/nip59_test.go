package nip59

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	nostr "nostrcore"
	"nostrcore/nip44"
	"nostrcore/nostrerr"
)

func genKeypair(t *testing.T) (seckeyHex, pubkeyHex string) {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	seckey := priv.Key.Bytes()
	pub := schnorr.SerializePubKey(priv.PubKey())
	return hex.EncodeToString(seckey[:]), hex.EncodeToString(pub)
}

func TestSealGiftWrapUnwrapRoundTrip(t *testing.T) {
	aliceSk, alicePk := genKeypair(t)
	bobSk, bobPk := genKeypair(t)

	rumor := nostr.Event{
		PubKey:    alicePk,
		CreatedAt: nostr.Now(),
		Kind:      14,
		Tags:      nostr.Tags{nostr.NewTag("p", bobPk)},
		Content:   "Hi Bob!",
	}
	rumor.ID = rumor.GetID()

	wrap, err := Wrap(rumor, aliceSk, alicePk, bobPk)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if wrap.Kind != KindGiftWrap {
		t.Fatalf("wrap kind = %d, want %d", wrap.Kind, KindGiftWrap)
	}
	if wrap.PubKey == alicePk {
		t.Fatal("gift wrap must be signed by an ephemeral key, not the sender's real key")
	}

	got, err := Unwrap(wrap, bobSk)
	if err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	if got.Content != "Hi Bob!" || got.PubKey != alicePk {
		t.Fatalf("got %+v", got)
	}
}

func TestUnwrapDetectsSenderMismatch(t *testing.T) {
	aliceSk, alicePk := genKeypair(t)
	maloriSk, maloriPk := genKeypair(t)
	bobSk, bobPk := genKeypair(t)

	// A rumor genuinely authored by Alice...
	rumor := nostr.Event{
		PubKey:    alicePk,
		CreatedAt: nostr.Now(),
		Kind:      14,
		Tags:      nostr.Tags{nostr.NewTag("p", bobPk)},
		Content:   "Hi Bob!",
	}
	rumor.ID = rumor.GetID()

	// ...forged into a seal signed by Malori. This bypasses Seal's own
	// rumor.PubKey == senderPubkeyHex check (which exists precisely to
	// prevent legitimate callers from constructing this), simulating an
	// attacker who controls the seal layer but not the rumor's authorship.
	payload, err := nip44.Encrypt(maloriSk, bobPk, string(rumor.Serialize()))
	if err != nil {
		t.Fatalf("encrypt forged seal content: %v", err)
	}
	forgedSeal := nostr.Event{
		PubKey:    maloriPk,
		CreatedAt: nostr.Now(),
		Kind:      KindSeal,
		Tags:      nostr.Tags{},
		Content:   payload,
	}
	if err := forgedSeal.Sign(maloriSk); err != nil {
		t.Fatalf("sign forged seal: %v", err)
	}

	wrap, err := GiftWrap(forgedSeal, bobPk)
	if err != nil {
		t.Fatalf("gift wrap: %v", err)
	}

	_, err = Unwrap(wrap, bobSk)
	if err == nil {
		t.Fatal("expected sender_mismatch unwrapping a seal/rumor pubkey mismatch")
	}
	if !isSenderMismatch(err) {
		t.Fatalf("got error %v, want sender mismatch", err)
	}
}

func isSenderMismatch(err error) bool {
	for err != nil {
		if err == nostrerr.ErrSenderMismatch {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func TestUnwrapRejectsWrongKind(t *testing.T) {
	aliceSk, alicePk := genKeypair(t)
	bobSk, _ := genKeypair(t)

	notAGiftWrap := nostr.Event{
		PubKey:    alicePk,
		CreatedAt: nostr.Now(),
		Kind:      1,
		Tags:      nostr.Tags{},
		Content:   "just a note",
	}
	if err := notAGiftWrap.Sign(aliceSk); err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Unwrap(notAGiftWrap, bobSk); err == nil {
		t.Fatal("expected error unwrapping a non-gift-wrap event")
	}
}
