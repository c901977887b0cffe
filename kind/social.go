package kind

import (
	nostr "nostrcore"
)

// Note is the kind-1 short text note projection.
type Note struct {
	PubKey     string
	CreatedAt  nostr.Timestamp
	Content    string
	Mentions   []string // "p"-tagged pubkeys
	References []string // "e"-tagged event ids
	Hashtags   []string // "t"-tagged values
	Expiration *nostr.Timestamp
}

// ParseNote projects a kind-1 event.
func ParseNote(e nostr.Event) *Note {
	return &Note{
		PubKey:     e.PubKey,
		CreatedAt:  e.CreatedAt,
		Content:    e.Content,
		Mentions:   e.Tags.Values("p"),
		References: e.Tags.Values("e"),
		Hashtags:   e.Tags.Values("t"),
		Expiration: expiration(e),
	}
}

// NewNote builds an unsigned kind-1 event.
func NewNote(content string, mentions, references, hashtags []string) nostr.Event {
	tags := make(nostr.Tags, 0, len(mentions)+len(references)+len(hashtags))
	for _, p := range mentions {
		tags = append(tags, nostr.NewTag("p", p))
	}
	for _, id := range references {
		tags = append(tags, nostr.NewTag("e", id))
	}
	for _, t := range hashtags {
		tags = append(tags, nostr.NewTag("t", t))
	}
	return nostr.Event{Kind: KindNote, Tags: tags, Content: content}
}

// Follow is one entry of a kind-3 contact list.
type Follow struct {
	PubKey  string
	Relay   string
	Petname string
}

// Contacts is the kind-3 follow-list projection.
type Contacts struct {
	PubKey    string
	CreatedAt nostr.Timestamp
	Follows   []Follow
}

// ParseContacts projects a kind-3 event.
func ParseContacts(e nostr.Event) *Contacts {
	follows := make([]Follow, 0, len(e.Tags))
	for _, t := range e.Tags.FindAll("p") {
		f := Follow{PubKey: t.Data}
		if len(t.Info) > 0 {
			f.Relay = t.Info[0]
		}
		if len(t.Info) > 1 {
			f.Petname = t.Info[1]
		}
		follows = append(follows, f)
	}
	return &Contacts{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Follows: follows}
}

// NewContacts builds an unsigned kind-3 event.
func NewContacts(follows []Follow, content string) nostr.Event {
	tags := make(nostr.Tags, 0, len(follows))
	for _, f := range follows {
		info := []string{}
		if f.Relay != "" || f.Petname != "" {
			info = append(info, f.Relay)
		}
		if f.Petname != "" {
			info = append(info, f.Petname)
		}
		tags = append(tags, nostr.NewTag("p", f.PubKey, info...))
	}
	return nostr.Event{Kind: KindContacts, Tags: tags, Content: content}
}

// Deletion is the kind-5 deletion-request projection (NIP-09).
type Deletion struct {
	PubKey    string
	CreatedAt nostr.Timestamp
	EventIDs  []string
	Addresses []string // "a"-tagged coordinates
	Reason    string
}

// ParseDeletion projects a kind-5 event.
func ParseDeletion(e nostr.Event) *Deletion {
	return &Deletion{
		PubKey:    e.PubKey,
		CreatedAt: e.CreatedAt,
		EventIDs:  e.Tags.Values("e"),
		Addresses: e.Tags.Values("a"),
		Reason:    e.Content,
	}
}

// NewDeletion builds an unsigned kind-5 event requesting deletion of
// eventIDs and/or addresses.
func NewDeletion(eventIDs, addresses []string, reason string) nostr.Event {
	tags := make(nostr.Tags, 0, len(eventIDs)+len(addresses))
	for _, id := range eventIDs {
		tags = append(tags, nostr.NewTag("e", id))
	}
	for _, a := range addresses {
		tags = append(tags, nostr.NewTag("a", a))
	}
	return nostr.Event{Kind: KindDeletion, Tags: tags, Content: reason}
}

// Repost is the kind-6 repost projection (NIP-18).
type Repost struct {
	PubKey       string
	CreatedAt    nostr.Timestamp
	TargetID     string
	TargetAuthor string
	RawEventJSON string // content, conventionally the reposted event's JSON
}

// ParseRepost projects a kind-6 event.
func ParseRepost(e nostr.Event) *Repost {
	r := &Repost{PubKey: e.PubKey, CreatedAt: e.CreatedAt, RawEventJSON: e.Content}
	if t := e.Tags.Find("e"); t != nil {
		r.TargetID = t.Data
	}
	if t := e.Tags.Find("p"); t != nil {
		r.TargetAuthor = t.Data
	}
	return r
}

// NewRepost builds an unsigned kind-6 event reposting targetID authored by
// targetAuthor. rawEventJSON is conventionally the full reposted event.
func NewRepost(targetID, targetAuthor, rawEventJSON string) nostr.Event {
	return nostr.Event{
		Kind:    KindRepost,
		Tags:    nostr.Tags{nostr.NewTag("e", targetID), nostr.NewTag("p", targetAuthor)},
		Content: rawEventJSON,
	}
}

// Reaction is the kind-7 reaction projection (NIP-25).
type Reaction struct {
	PubKey       string
	CreatedAt    nostr.Timestamp
	TargetID     string
	TargetAuthor string
	Content      string // "+", "-", or an emoji/shortcode
}

// ParseReaction projects a kind-7 event.
func ParseReaction(e nostr.Event) *Reaction {
	r := &Reaction{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Content: e.Content}
	if t := e.Tags.Find("e"); t != nil {
		r.TargetID = t.Data
	}
	if t := e.Tags.Find("p"); t != nil {
		r.TargetAuthor = t.Data
	}
	return r
}

// NewReaction builds an unsigned kind-7 event reacting to targetID authored
// by targetAuthor.
func NewReaction(targetID, targetAuthor, content string) nostr.Event {
	return nostr.Event{
		Kind:    KindReaction,
		Tags:    nostr.Tags{nostr.NewTag("e", targetID), nostr.NewTag("p", targetAuthor)},
		Content: content,
	}
}
