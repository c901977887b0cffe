package nostr

import (
	"encoding/json"
	"testing"
)

func ts(n int64) *Timestamp {
	t := Timestamp(n)
	return &t
}

func TestFilterMarshalOmitsUnsetFields(t *testing.T) {
	f := Filter{Kinds: []int{1}, Limit: 10}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal check: %v", err)
	}
	if _, ok := m["ids"]; ok {
		t.Fatal("ids should be omitted when unset")
	}
	if _, ok := m["since"]; ok {
		t.Fatal("since should be omitted when unset")
	}
	if m["limit"].(float64) != 10 {
		t.Fatalf("limit = %v", m["limit"])
	}
}

func TestFilterUnmarshalTagKeys(t *testing.T) {
	raw := []byte(`{"kinds":[1],"limit":10,"#e":["abc"],"#p":["def"]}`)
	var f Filter
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(f.Kinds) != 1 || f.Kinds[0] != 1 {
		t.Fatalf("kinds = %v", f.Kinds)
	}
	if f.Limit != 10 {
		t.Fatalf("limit = %d", f.Limit)
	}
	if got := f.Tags["e"]; len(got) != 1 || got[0] != "abc" {
		t.Fatalf("#e = %v", got)
	}
	if got := f.Tags["p"]; len(got) != 1 || got[0] != "def" {
		t.Fatalf("#p = %v", got)
	}
}

func TestFilterMatches(t *testing.T) {
	e := Event{
		ID:        "eventid1",
		PubKey:    "author1",
		CreatedAt: 100,
		Kind:      1,
		Tags:      Tags{NewTag("e", "target1")},
		Content:   "Hello World",
	}

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty filter matches all", Filter{}, true},
		{"matching kind", Filter{Kinds: []int{1}}, true},
		{"non-matching kind", Filter{Kinds: []int{2}}, false},
		{"matching author", Filter{Authors: []string{"author1"}}, true},
		{"non-matching author", Filter{Authors: []string{"other"}}, false},
		{"since before", Filter{Since: ts(50)}, true},
		{"since after", Filter{Since: ts(200)}, false},
		{"until after", Filter{Until: ts(200)}, true},
		{"until before", Filter{Until: ts(50)}, false},
		{"tag filter match", Filter{Tags: map[string][]string{"e": {"target1"}}}, true},
		{"tag filter no match", Filter{Tags: map[string][]string{"e": {"other"}}}, false},
		{"search match case-insensitive", Filter{Search: "hello"}, true},
		{"search no match", Filter{Search: "goodbye"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.f.Matches(e); got != c.want {
				t.Fatalf("Matches() = %v, want %v", got, c.want)
			}
		})
	}
}
