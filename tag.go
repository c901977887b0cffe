package nostr

import (
	"encoding/json"
	"fmt"
)

// Tag is one entry of an event's tag list: a type, its primary data value,
// and an ordered (possibly empty) info tail. Wire form is the JSON array
// [type, data, info...].
type Tag struct {
	Type string
	Data string
	Info []string
}

// NewTag builds a Tag from its wire-order values, matching the common
// ["e", id] / ["p", pubkey, relay] shapes.
func NewTag(typ, data string, info ...string) Tag {
	return Tag{Type: typ, Data: data, Info: info}
}

// MarshalJSON renders the tag as [type, data, info...].
func (t Tag) MarshalJSON() ([]byte, error) {
	arr := make([]string, 0, 2+len(t.Info))
	arr = append(arr, t.Type, t.Data)
	arr = append(arr, t.Info...)
	return json.Marshal(arr)
}

// UnmarshalJSON accepts any array of strings with at least one element
// (the type); shorter tags than [type, data] are tolerated with Data left
// empty, matching what relays in the wild actually send.
func (t *Tag) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("nostr: tag must be an array of strings: %w", err)
	}
	if len(arr) == 0 {
		return fmt.Errorf("nostr: tag array must have at least a type")
	}
	t.Type = arr[0]
	if len(arr) > 1 {
		t.Data = arr[1]
	} else {
		t.Data = ""
	}
	if len(arr) > 2 {
		t.Info = append([]string(nil), arr[2:]...)
	} else {
		t.Info = nil
	}
	return nil
}

// Tags is the ordered sequence of an event's tags. Order is part of the
// canonical-hash contract (spec Design Notes), so this is a slice, never a
// set or map.
type Tags []Tag

// Find returns the first tag of the given type, or nil.
func (ts Tags) Find(typ string) *Tag {
	for i := range ts {
		if ts[i].Type == typ {
			return &ts[i]
		}
	}
	return nil
}

// FindAll returns every tag of the given type, in order.
func (ts Tags) FindAll(typ string) []Tag {
	var out []Tag
	for _, t := range ts {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// Values returns the Data field of every tag of the given type, in order.
func (ts Tags) Values(typ string) []string {
	var out []string
	for _, t := range ts {
		if t.Type == typ {
			out = append(out, t.Data)
		}
	}
	return out
}
