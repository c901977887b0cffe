package kind

import nostr "nostrcore"

// Article is the kind-30023 (published) / kind-30024 (draft) long-form
// content projection (NIP-23).
type Article struct {
	PubKey      string
	CreatedAt   nostr.Timestamp
	Identifier  string // "d" tag
	Title       string
	Summary     string
	Image       string
	Content     string // markdown
	PublishedAt *nostr.Timestamp
	Hashtags    []string
	IsDraft     bool
	Expiration  *nostr.Timestamp
}

// ParseArticle projects a kind-30023/30024 event.
func ParseArticle(e nostr.Event) *Article {
	a := &Article{
		PubKey:     e.PubKey,
		CreatedAt:  e.CreatedAt,
		Identifier: dTagValue(e),
		Content:    e.Content,
		Hashtags:   e.Tags.Values("t"),
		IsDraft:    e.Kind == KindLongFormDraft,
		Expiration: expiration(e),
	}
	if t := e.Tags.Find("title"); t != nil {
		a.Title = t.Data
	}
	if t := e.Tags.Find("summary"); t != nil {
		a.Summary = t.Data
	}
	if t := e.Tags.Find("image"); t != nil {
		a.Image = t.Data
	}
	if t := e.Tags.Find("published_at"); t != nil {
		if ts, ok := parseUnixTag(t.Data); ok {
			a.PublishedAt = &ts
		}
	}
	return a
}

// NewArticle builds an unsigned kind-30023 (or kind-30024 if draft) event.
func NewArticle(a Article) nostr.Event {
	kind := KindLongFormArticle
	if a.IsDraft {
		kind = KindLongFormDraft
	}
	tags := nostr.Tags{nostr.NewTag("d", a.Identifier)}
	if a.Title != "" {
		tags = append(tags, nostr.NewTag("title", a.Title))
	}
	if a.Summary != "" {
		tags = append(tags, nostr.NewTag("summary", a.Summary))
	}
	if a.Image != "" {
		tags = append(tags, nostr.NewTag("image", a.Image))
	}
	if a.PublishedAt != nil {
		tags = append(tags, nostr.NewTag("published_at", formatUnixTag(*a.PublishedAt)))
	}
	for _, h := range a.Hashtags {
		tags = append(tags, nostr.NewTag("t", h))
	}
	return nostr.Event{Kind: kind, Tags: tags, Content: a.Content}
}
