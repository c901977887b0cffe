// Package nip17 is the direct-message facade over nip59's gift-wrap
// envelope: private text and file messages, addressed to one or more
// recipients, each delivered as an independently ephemeral-keyed wrap.
package nip17

import (
	nostr "nostrcore"
	"nostrcore/nip59"
)

// Event kinds for the two rumor shapes this package builds.
const (
	KindChatMessage = 14
	KindFileMessage = 15
)

// Recipient is one addressee of a private message, paired with the relay
// their kind-10050 DM relay list advertises (spec §6), if known.
type Recipient struct {
	PubKey string
	Relay  string // optional, informational only
}

// SendResult is one gift-wrap produced for one recipient (or the sender's
// own sent-folder copy).
type SendResult struct {
	Recipient string
	GiftWrap  nostr.Event
}

// SendPrivateMessage builds a kind-14 rumor with the given content and
// reply/subject tags, then wraps it once per recipient plus once for the
// sender's own copy. Every wrap uses an independent ephemeral key, so no two
// gift-wrap event ids collide even for identical content.
func SendPrivateMessage(senderSeckeyHex, senderPubkeyHex, content string, recipients []Recipient, extraTags nostr.Tags) ([]SendResult, error) {
	return sendRumor(senderSeckeyHex, senderPubkeyHex, KindChatMessage, content, recipients, extraTags)
}

// SendFileMessage builds a kind-15 rumor (an encrypted-file reference,
// conventionally carrying file metadata in tags and a URL or descriptor in
// content) and wraps it the same way as SendPrivateMessage.
func SendFileMessage(senderSeckeyHex, senderPubkeyHex, content string, recipients []Recipient, extraTags nostr.Tags) ([]SendResult, error) {
	return sendRumor(senderSeckeyHex, senderPubkeyHex, KindFileMessage, content, recipients, extraTags)
}

func sendRumor(senderSeckeyHex, senderPubkeyHex string, kind int, content string, recipients []Recipient, extraTags nostr.Tags) ([]SendResult, error) {
	tags := append(nostr.Tags{}, extraTags...)
	for _, r := range recipients {
		if r.Relay != "" {
			tags = append(tags, nostr.NewTag("p", r.PubKey, r.Relay))
		} else {
			tags = append(tags, nostr.NewTag("p", r.PubKey))
		}
	}

	rumor := nostr.Event{
		PubKey:    senderPubkeyHex,
		CreatedAt: nostr.Now(),
		Kind:      kind,
		Tags:      tags,
		Content:   content,
	}
	rumor.ID = rumor.GetID()

	addressees := append([]Recipient{}, recipients...)
	addressees = append(addressees, Recipient{PubKey: senderPubkeyHex})

	results := make([]SendResult, 0, len(addressees))
	for _, a := range addressees {
		wrap, err := nip59.Wrap(rumor, senderSeckeyHex, senderPubkeyHex, a.PubKey)
		if err != nil {
			return nil, err
		}
		results = append(results, SendResult{Recipient: a.PubKey, GiftWrap: wrap})
	}
	return results, nil
}

// Receive unwraps a gift-wrap addressed to recipientSeckeyHex and returns
// the enclosed message rumor, verified per nip59.Unwrap's sender-match
// contract.
func Receive(giftWrap nostr.Event, recipientSeckeyHex string) (nostr.Event, error) {
	return nip59.Unwrap(giftWrap, recipientSeckeyHex)
}
