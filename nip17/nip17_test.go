package nip17

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	nostr "nostrcore"
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

func TestSendPrivateMessageProducesOneWrapPerAddressee(t *testing.T) {
	aliceSk, alicePk := genKeypair(t)
	bobSk, bobPk := genKeypair(t)

	results, err := SendPrivateMessage(aliceSk, alicePk, "Hi Bob!", []Recipient{{PubKey: bobPk}}, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (bob + alice's own copy)", len(results))
	}

	var bobWrap, aliceWrap *nostr.Event
	for i := range results {
		switch results[i].Recipient {
		case bobPk:
			bobWrap = &results[i].GiftWrap
		case alicePk:
			aliceWrap = &results[i].GiftWrap
		}
	}
	if bobWrap == nil || aliceWrap == nil {
		t.Fatalf("expected wraps for both bob and alice, got %+v", results)
	}
	if bobWrap.ID == aliceWrap.ID {
		t.Fatal("bob's wrap and alice's own copy must use independent ephemeral keys, not share an id")
	}

	rumor, err := Receive(*bobWrap, bobSk)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if rumor.Content != "Hi Bob!" || rumor.Kind != KindChatMessage || rumor.PubKey != alicePk {
		t.Fatalf("got %+v", rumor)
	}
}

func TestSendFileMessageKind(t *testing.T) {
	aliceSk, alicePk := genKeypair(t)
	bobSk, bobPk := genKeypair(t)

	results, err := SendFileMessage(aliceSk, alicePk, "https://example.com/file.enc", []Recipient{{PubKey: bobPk}}, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	var bobWrap *nostr.Event
	for i := range results {
		if results[i].Recipient == bobPk {
			bobWrap = &results[i].GiftWrap
		}
	}
	if bobWrap == nil {
		t.Fatal("no wrap addressed to bob")
	}

	rumor, err := Receive(*bobWrap, bobSk)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if rumor.Kind != KindFileMessage {
		t.Fatalf("kind = %d, want %d", rumor.Kind, KindFileMessage)
	}
}
