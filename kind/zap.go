package kind

import (
	"strconv"

	nostr "nostrcore"
	"nostrcore/bolt11"
)

// ZapRequest is the kind-9734 projection (NIP-57): a client's request,
// signed by the zapper, describing what they intend to pay for.
type ZapRequest struct {
	PubKey       string
	CreatedAt    nostr.Timestamp
	Recipient    string
	EventID      string // optional, the zapped event
	Relays       []string
	AmountMsat   *uint64
	Content      string
}

// ParseZapRequest projects a kind-9734 event.
func ParseZapRequest(e nostr.Event) *ZapRequest {
	zr := &ZapRequest{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Content: e.Content}
	if t := e.Tags.Find("p"); t != nil {
		zr.Recipient = t.Data
	}
	if t := e.Tags.Find("e"); t != nil {
		zr.EventID = t.Data
	}
	if t := e.Tags.Find("relays"); t != nil {
		zr.Relays = append([]string{t.Data}, t.Info...)
	}
	if t := e.Tags.Find("amount"); t != nil {
		if msat, err := strconv.ParseUint(t.Data, 10, 64); err == nil {
			zr.AmountMsat = &msat
		}
	}
	return zr
}

// NewZapRequest builds an unsigned kind-9734 event.
func NewZapRequest(recipient, eventID string, relays []string, amountMsat *uint64, content string) nostr.Event {
	tags := nostr.Tags{nostr.NewTag("p", recipient)}
	if eventID != "" {
		tags = append(tags, nostr.NewTag("e", eventID))
	}
	if len(relays) > 0 {
		tags = append(tags, nostr.NewTag("relays", relays[0], relays[1:]...))
	}
	if amountMsat != nil {
		tags = append(tags, nostr.NewTag("amount", strconv.FormatUint(*amountMsat, 10)))
	}
	return nostr.Event{Kind: KindZapRequest, Tags: tags, Content: content}
}

// ZapReceipt is the kind-9735 projection (NIP-57): the recipient's relay (or
// LNURL service) publishing proof of payment.
type ZapReceipt struct {
	PubKey           string
	CreatedAt        nostr.Timestamp
	Recipient        string
	EventID          string
	Bolt11           string
	Preimage         string
	DescriptionJSON  string // the zap request event, JSON-encoded
	Invoice          *bolt11.Invoice
	AmountMsat       *uint64
}

// ParseZapReceipt projects a kind-9735 event, decoding its bolt11 tag (if
// present and well-formed) to cross-check the paid amount.
func ParseZapReceipt(e nostr.Event) *ZapReceipt {
	zr := &ZapReceipt{PubKey: e.PubKey, CreatedAt: e.CreatedAt}
	if t := e.Tags.Find("p"); t != nil {
		zr.Recipient = t.Data
	}
	if t := e.Tags.Find("e"); t != nil {
		zr.EventID = t.Data
	}
	if t := e.Tags.Find("bolt11"); t != nil {
		zr.Bolt11 = t.Data
	}
	if t := e.Tags.Find("preimage"); t != nil {
		zr.Preimage = t.Data
	}
	if t := e.Tags.Find("description"); t != nil {
		zr.DescriptionJSON = t.Data
	}
	if zr.Bolt11 != "" {
		if inv, err := bolt11.Decode(zr.Bolt11); err == nil {
			zr.Invoice = &inv
			zr.AmountMsat = inv.AmountMsat
		}
	}
	return zr
}

// NewZapReceipt builds an unsigned kind-9735 event. bolt11Invoice and
// descriptionJSON are the raw strings the relay/LNURL service supplies.
func NewZapReceipt(recipient, eventID, bolt11Invoice, preimage, descriptionJSON string) nostr.Event {
	tags := nostr.Tags{nostr.NewTag("p", recipient)}
	if eventID != "" {
		tags = append(tags, nostr.NewTag("e", eventID))
	}
	if bolt11Invoice != "" {
		tags = append(tags, nostr.NewTag("bolt11", bolt11Invoice))
	}
	if preimage != "" {
		tags = append(tags, nostr.NewTag("preimage", preimage))
	}
	if descriptionJSON != "" {
		tags = append(tags, nostr.NewTag("description", descriptionJSON))
	}
	return nostr.Event{Kind: KindZapReceipt, Tags: tags}
}
