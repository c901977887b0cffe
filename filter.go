package nostr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Filter is a NIP-01 subscription filter. Tags holds the arbitrary
// single-letter "#<letter>" filters (e.g. "#e", "#p"); null/absent fields
// are omitted on the wire.
type Filter struct {
	IDs     []string
	Authors []string
	Kinds   []int
	Tags    map[string][]string
	Since   *Timestamp
	Until   *Timestamp
	Limit   int
	Search  string
}

// MarshalJSON renders only the fields that are set, in NIP-01's object
// form with "#<letter>" keys for tag filters.
func (f Filter) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, 4+len(f.Tags))
	if len(f.IDs) > 0 {
		m["ids"] = f.IDs
	}
	if len(f.Authors) > 0 {
		m["authors"] = f.Authors
	}
	if len(f.Kinds) > 0 {
		m["kinds"] = f.Kinds
	}
	if f.Since != nil {
		m["since"] = int64(*f.Since)
	}
	if f.Until != nil {
		m["until"] = int64(*f.Until)
	}
	if f.Limit > 0 {
		m["limit"] = f.Limit
	}
	if f.Search != "" {
		m["search"] = f.Search
	}
	for letter, values := range f.Tags {
		if len(values) == 0 {
			continue
		}
		m["#"+letter] = values
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts any object with the standard NIP-01 keys plus any
// number of "#<letter>" tag-filter keys.
func (f *Filter) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("nostr: parse filter: %w", err)
	}

	*f = Filter{}
	for key, value := range raw {
		switch key {
		case "ids":
			if err := json.Unmarshal(value, &f.IDs); err != nil {
				return fmt.Errorf("nostr: parse filter.ids: %w", err)
			}
		case "authors":
			if err := json.Unmarshal(value, &f.Authors); err != nil {
				return fmt.Errorf("nostr: parse filter.authors: %w", err)
			}
		case "kinds":
			if err := json.Unmarshal(value, &f.Kinds); err != nil {
				return fmt.Errorf("nostr: parse filter.kinds: %w", err)
			}
		case "since":
			var ts int64
			if err := json.Unmarshal(value, &ts); err != nil {
				return fmt.Errorf("nostr: parse filter.since: %w", err)
			}
			t := Timestamp(ts)
			f.Since = &t
		case "until":
			var ts int64
			if err := json.Unmarshal(value, &ts); err != nil {
				return fmt.Errorf("nostr: parse filter.until: %w", err)
			}
			t := Timestamp(ts)
			f.Until = &t
		case "limit":
			if err := json.Unmarshal(value, &f.Limit); err != nil {
				return fmt.Errorf("nostr: parse filter.limit: %w", err)
			}
		case "search":
			if err := json.Unmarshal(value, &f.Search); err != nil {
				return fmt.Errorf("nostr: parse filter.search: %w", err)
			}
		default:
			if len(key) >= 2 && key[0] == '#' {
				var values []string
				if err := json.Unmarshal(value, &values); err != nil {
					return fmt.Errorf("nostr: parse filter.%s: %w", key, err)
				}
				if f.Tags == nil {
					f.Tags = make(map[string][]string)
				}
				f.Tags[key[1:]] = values
			}
			// Unrecognized non-tag keys are ignored (forward compatibility).
		}
	}
	return nil
}

// Matches reports whether e satisfies every constraint f sets. An empty
// Filter matches everything.
func (f Filter) Matches(e Event) bool {
	if len(f.IDs) > 0 && !containsString(f.IDs, e.ID) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, e.PubKey) {
		return false
	}
	if len(f.Kinds) > 0 && !containsInt(f.Kinds, e.Kind) {
		return false
	}
	if f.Since != nil && e.CreatedAt < *f.Since {
		return false
	}
	if f.Until != nil && e.CreatedAt > *f.Until {
		return false
	}
	for letter, values := range f.Tags {
		if len(values) == 0 {
			continue
		}
		if !tagValuesMatch(e.Tags, letter, values) {
			return false
		}
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Content), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func tagValuesMatch(tags Tags, letter string, wanted []string) bool {
	for _, t := range tags {
		if t.Type != letter {
			continue
		}
		for _, w := range wanted {
			if t.Data == w {
				return true
			}
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}
