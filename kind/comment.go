package kind

import nostr "nostrcore"

// Comment is the kind-1111 projection (NIP-22): a comment on some root
// scope (an event, or an external URI/identifier), replying either to the
// root directly or to another comment beneath it.
type Comment struct {
	PubKey       string
	CreatedAt    nostr.Timestamp
	Content      string
	RootKind     int
	RootID       string // uppercase "E"/"A"/"I" tag data: event id, address, or external identifier
	RootAuthor   string // "P" tag
	ParentKind   int
	ParentID     string // lowercase "e"/"a"/"i" tag data
	ParentAuthor string // "p" tag
}

// ParseComment projects a kind-1111 event.
func ParseComment(e nostr.Event) *Comment {
	c := &Comment{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Content: e.Content}
	if t := e.Tags.Find("E"); t != nil {
		c.RootID = t.Data
	} else if t := e.Tags.Find("A"); t != nil {
		c.RootID = t.Data
	} else if t := e.Tags.Find("I"); t != nil {
		c.RootID = t.Data
	}
	if t := e.Tags.Find("P"); t != nil {
		c.RootAuthor = t.Data
	}
	if t := e.Tags.Find("K"); t != nil {
		if k, ok := parseUnixTag(t.Data); ok {
			c.RootKind = int(k)
		}
	}
	if t := e.Tags.Find("e"); t != nil {
		c.ParentID = t.Data
	} else if t := e.Tags.Find("a"); t != nil {
		c.ParentID = t.Data
	} else if t := e.Tags.Find("i"); t != nil {
		c.ParentID = t.Data
	}
	if t := e.Tags.Find("p"); t != nil {
		c.ParentAuthor = t.Data
	}
	if t := e.Tags.Find("k"); t != nil {
		if k, ok := parseUnixTag(t.Data); ok {
			c.ParentKind = int(k)
		}
	}
	return c
}

// NewComment builds an unsigned kind-1111 event replying to parentID
// (authored by parentAuthor, of parentKind) within rootID's scope (authored
// by rootAuthor, of rootKind).
func NewComment(content, rootID, rootAuthor string, rootKind int, parentID, parentAuthor string, parentKind int) nostr.Event {
	tags := nostr.Tags{
		nostr.NewTag("E", rootID),
		nostr.NewTag("K", formatUnixTag(nostr.Timestamp(rootKind))),
	}
	if rootAuthor != "" {
		tags = append(tags, nostr.NewTag("P", rootAuthor))
	}
	tags = append(tags,
		nostr.NewTag("e", parentID),
		nostr.NewTag("k", formatUnixTag(nostr.Timestamp(parentKind))),
	)
	if parentAuthor != "" {
		tags = append(tags, nostr.NewTag("p", parentAuthor))
	}
	return nostr.Event{Kind: KindComment, Tags: tags, Content: content}
}
