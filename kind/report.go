package kind

import nostr "nostrcore"

// Report is the kind-1984 reporting projection (NIP-56).
type Report struct {
	PubKey        string
	CreatedAt     nostr.Timestamp
	TargetPubKey  string
	TargetEventID string
	ReportType    string // e.g. "nudity", "spam", "impersonation"
	Content       string
}

// ParseReport projects a kind-1984 event. The report type is carried as the
// info tail of whichever of "p"/"e" the report targets.
func ParseReport(e nostr.Event) *Report {
	r := &Report{PubKey: e.PubKey, CreatedAt: e.CreatedAt, Content: e.Content}
	if t := e.Tags.Find("p"); t != nil {
		r.TargetPubKey = t.Data
		if len(t.Info) > 0 {
			r.ReportType = t.Info[0]
		}
	}
	if t := e.Tags.Find("e"); t != nil {
		r.TargetEventID = t.Data
		if r.ReportType == "" && len(t.Info) > 0 {
			r.ReportType = t.Info[0]
		}
	}
	return r
}

// NewReport builds an unsigned kind-1984 event reporting targetEventID
// and/or targetPubKey for reportType.
func NewReport(targetPubKey, targetEventID, reportType, content string) nostr.Event {
	var tags nostr.Tags
	if targetEventID != "" {
		tags = append(tags, nostr.NewTag("e", targetEventID, reportType))
	}
	if targetPubKey != "" {
		tags = append(tags, nostr.NewTag("p", targetPubKey, reportType))
	}
	return nostr.Event{Kind: KindReporting, Tags: tags, Content: content}
}
