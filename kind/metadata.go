package kind

import (
	"encoding/json"
	"fmt"

	nostr "nostrcore"
)

// Metadata is the kind-0 user profile projection.
type Metadata struct {
	PubKey    string
	CreatedAt nostr.Timestamp
	Name      string
	About     string
	Picture   string
	Banner    string
	Website   string
	NIP05     string
	LUD16     string
	Raw       map[string]interface{}
}

type metadataContent struct {
	Name    string `json:"name"`
	About   string `json:"about"`
	Picture string `json:"picture"`
	Banner  string `json:"banner"`
	Website string `json:"website"`
	NIP05   string `json:"nip05"`
	LUD16   string `json:"lud16"`
}

// ParseMetadata decodes a kind-0 event's JSON content into known fields,
// keeping the full decoded map in Raw for fields this projection doesn't
// name explicitly.
func ParseMetadata(e nostr.Event) (*Metadata, error) {
	var known metadataContent
	if err := json.Unmarshal([]byte(e.Content), &known); err != nil {
		return nil, fmt.Errorf("kind: parse metadata: %w", err)
	}
	var raw map[string]interface{}
	_ = json.Unmarshal([]byte(e.Content), &raw)

	return &Metadata{
		PubKey:    e.PubKey,
		CreatedAt: e.CreatedAt,
		Name:      known.Name,
		About:     known.About,
		Picture:   known.Picture,
		Banner:    known.Banner,
		Website:   known.Website,
		NIP05:     known.NIP05,
		LUD16:     known.LUD16,
		Raw:       raw,
	}, nil
}

// NewMetadata builds an unsigned kind-0 event from m. CreatedAt/PubKey are
// ignored — the caller sets those via nostr.Event.Sign.
func NewMetadata(m Metadata) (nostr.Event, error) {
	content, err := json.Marshal(metadataContent{
		Name:    m.Name,
		About:   m.About,
		Picture: m.Picture,
		Banner:  m.Banner,
		Website: m.Website,
		NIP05:   m.NIP05,
		LUD16:   m.LUD16,
	})
	if err != nil {
		return nostr.Event{}, fmt.Errorf("kind: new metadata: %w", err)
	}
	return nostr.Event{
		Kind:    KindMetadata,
		Tags:    nostr.Tags{},
		Content: string(content),
	}, nil
}
