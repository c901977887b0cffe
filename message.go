package nostr

import (
	"encoding/json"
	"fmt"
	"log"
)

// Client → relay messages (spec §4.C7).

// ClientEvent is ["EVENT", event].
type ClientEvent struct{ Event Event }

// ClientReq is ["REQ", sub_id, filter, ...] — one or more filters.
type ClientReq struct {
	SubID   string
	Filters []Filter
}

// ClientClose is ["CLOSE", sub_id].
type ClientClose struct{ SubID string }

// ClientAuth is ["AUTH", signed_event].
type ClientAuth struct{ Event Event }

// ClientCount is ["COUNT", sub_id, filter, ...].
type ClientCount struct {
	SubID   string
	Filters []Filter
}

// Relay → client messages.

// RelayEvent is ["EVENT", sub_id, event].
type RelayEvent struct {
	SubID string
	Event Event
}

// RelayEOSE is ["EOSE", sub_id].
type RelayEOSE struct{ SubID string }

// RelayNotice is ["NOTICE", msg].
type RelayNotice struct{ Message string }

// RelayOK is ["OK", event_id, accepted, msg].
type RelayOK struct {
	EventID  string
	Accepted bool
	Message  string
}

// RelayClosed is ["CLOSED", sub_id, msg].
type RelayClosed struct {
	SubID   string
	Message string
}

// RelayAuthChallenge is ["AUTH", challenge_string].
type RelayAuthChallenge struct{ Challenge string }

// RelayCount is ["COUNT", sub_id, {"count": n}].
type RelayCount struct {
	SubID string
	Count int
}

// Unknown is the distinguished outcome for any wire message whose shape
// the parser doesn't recognize (spec §7): it is logged once here and
// handed back so the host can count/report it, instead of the parser
// throwing.
type Unknown struct{ Raw json.RawMessage }

// ParseMessage parses a wire message in either direction, disambiguating
// by label, arity and element types per spec §4.C7. It returns one of the
// Client*/Relay* types above, or Unknown. It never returns an error for a
// malformed/unrecognized shape — only for input that isn't even a JSON
// array, which is not a message at all.
func ParseMessage(raw []byte) (interface{}, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("nostr: parse message: not a JSON array: %w", err)
	}
	if len(arr) == 0 {
		log.Printf("nostr: unknown message: empty array")
		return Unknown{Raw: raw}, nil
	}

	var label string
	if err := json.Unmarshal(arr[0], &label); err != nil {
		log.Printf("nostr: unknown message: non-string label")
		return Unknown{Raw: raw}, nil
	}

	switch label {
	case "EVENT":
		return parseEventMessage(raw, arr)
	case "REQ":
		return parseReqMessage(raw, arr)
	case "CLOSE":
		return parseCloseMessage(raw, arr)
	case "AUTH":
		return parseAuthMessage(raw, arr)
	case "COUNT":
		return parseCountMessage(raw, arr)
	case "EOSE":
		return parseEoseMessage(raw, arr)
	case "NOTICE":
		return parseNoticeMessage(raw, arr)
	case "OK":
		return parseOkMessage(raw, arr)
	case "CLOSED":
		return parseClosedMessage(raw, arr)
	default:
		log.Printf("nostr: unknown message label %q", label)
		return Unknown{Raw: raw}, nil
	}
}

func parseEventMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	switch len(arr) {
	case 2: // client: ["EVENT", event]
		var e Event
		if err := json.Unmarshal(arr[1], &e); err != nil {
			log.Printf("nostr: unknown EVENT shape: %v", err)
			return Unknown{Raw: raw}, nil
		}
		return ClientEvent{Event: e}, nil
	case 3: // relay: ["EVENT", sub_id, event]
		var subID string
		var e Event
		if err := json.Unmarshal(arr[1], &subID); err != nil {
			log.Printf("nostr: unknown EVENT shape: %v", err)
			return Unknown{Raw: raw}, nil
		}
		if err := json.Unmarshal(arr[2], &e); err != nil {
			log.Printf("nostr: unknown EVENT shape: %v", err)
			return Unknown{Raw: raw}, nil
		}
		return RelayEvent{SubID: subID, Event: e}, nil
	default:
		log.Printf("nostr: unknown EVENT arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
}

func parseReqMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) < 3 {
		log.Printf("nostr: unknown REQ arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var subID string
	if err := json.Unmarshal(arr[1], &subID); err != nil {
		log.Printf("nostr: unknown REQ shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	filters := make([]Filter, 0, len(arr)-2)
	for _, elem := range arr[2:] {
		var f Filter
		if err := json.Unmarshal(elem, &f); err != nil {
			log.Printf("nostr: unknown REQ filter shape: %v", err)
			return Unknown{Raw: raw}, nil
		}
		filters = append(filters, f)
	}
	return ClientReq{SubID: subID, Filters: filters}, nil
}

func parseCloseMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) != 2 {
		log.Printf("nostr: unknown CLOSE arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var subID string
	if err := json.Unmarshal(arr[1], &subID); err != nil {
		log.Printf("nostr: unknown CLOSE shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	return ClientClose{SubID: subID}, nil
}

func parseAuthMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) != 2 {
		log.Printf("nostr: unknown AUTH arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var challenge string
	if err := json.Unmarshal(arr[1], &challenge); err == nil {
		return RelayAuthChallenge{Challenge: challenge}, nil
	}
	var e Event
	if err := json.Unmarshal(arr[1], &e); err == nil {
		return ClientAuth{Event: e}, nil
	}
	log.Printf("nostr: unknown AUTH shape")
	return Unknown{Raw: raw}, nil
}

func parseCountMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) < 3 {
		log.Printf("nostr: unknown COUNT arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var subID string
	if err := json.Unmarshal(arr[1], &subID); err != nil {
		log.Printf("nostr: unknown COUNT shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	if len(arr) == 3 && looksLikeCountResponse(arr[2]) {
		var body struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal(arr[2], &body); err != nil {
			log.Printf("nostr: unknown COUNT response shape: %v", err)
			return Unknown{Raw: raw}, nil
		}
		return RelayCount{SubID: subID, Count: body.Count}, nil
	}
	filters := make([]Filter, 0, len(arr)-2)
	for _, elem := range arr[2:] {
		var f Filter
		if err := json.Unmarshal(elem, &f); err != nil {
			log.Printf("nostr: unknown COUNT filter shape: %v", err)
			return Unknown{Raw: raw}, nil
		}
		filters = append(filters, f)
	}
	return ClientCount{SubID: subID, Filters: filters}, nil
}

// looksLikeCountResponse distinguishes a relay's {"count": n} response from
// a client filter object: the former carries a "count" key and none of the
// recognized filter keys.
func looksLikeCountResponse(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	if _, ok := m["count"]; !ok {
		return false
	}
	for _, k := range []string{"ids", "authors", "kinds", "since", "until", "limit", "search"} {
		if _, ok := m[k]; ok {
			return false
		}
	}
	for k := range m {
		if len(k) >= 2 && k[0] == '#' {
			return false
		}
	}
	return true
}

func parseEoseMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) != 2 {
		log.Printf("nostr: unknown EOSE arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var subID string
	if err := json.Unmarshal(arr[1], &subID); err != nil {
		log.Printf("nostr: unknown EOSE shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	return RelayEOSE{SubID: subID}, nil
}

func parseNoticeMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) != 2 {
		log.Printf("nostr: unknown NOTICE arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var msg string
	if err := json.Unmarshal(arr[1], &msg); err != nil {
		log.Printf("nostr: unknown NOTICE shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	return RelayNotice{Message: msg}, nil
}

func parseOkMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) != 4 {
		log.Printf("nostr: unknown OK arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var eventID string
	var accepted bool
	var msg string
	if err := json.Unmarshal(arr[1], &eventID); err != nil {
		log.Printf("nostr: unknown OK shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	if err := json.Unmarshal(arr[2], &accepted); err != nil {
		log.Printf("nostr: unknown OK shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	if err := json.Unmarshal(arr[3], &msg); err != nil {
		log.Printf("nostr: unknown OK shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	return RelayOK{EventID: eventID, Accepted: accepted, Message: msg}, nil
}

func parseClosedMessage(raw []byte, arr []json.RawMessage) (interface{}, error) {
	if len(arr) != 3 {
		log.Printf("nostr: unknown CLOSED arity %d", len(arr))
		return Unknown{Raw: raw}, nil
	}
	var subID, msg string
	if err := json.Unmarshal(arr[1], &subID); err != nil {
		log.Printf("nostr: unknown CLOSED shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	if err := json.Unmarshal(arr[2], &msg); err != nil {
		log.Printf("nostr: unknown CLOSED shape: %v", err)
		return Unknown{Raw: raw}, nil
	}
	return RelayClosed{SubID: subID, Message: msg}, nil
}

// Marshal renders any of the Client*/Relay* message types back to its wire
// array form.
func Marshal(msg interface{}) ([]byte, error) {
	switch m := msg.(type) {
	case ClientEvent:
		return json.Marshal([]interface{}{"EVENT", m.Event})
	case ClientReq:
		return marshalWithFilters("REQ", m.SubID, m.Filters)
	case ClientClose:
		return json.Marshal([]interface{}{"CLOSE", m.SubID})
	case ClientAuth:
		return json.Marshal([]interface{}{"AUTH", m.Event})
	case ClientCount:
		return marshalWithFilters("COUNT", m.SubID, m.Filters)
	case RelayEvent:
		return json.Marshal([]interface{}{"EVENT", m.SubID, m.Event})
	case RelayEOSE:
		return json.Marshal([]interface{}{"EOSE", m.SubID})
	case RelayNotice:
		return json.Marshal([]interface{}{"NOTICE", m.Message})
	case RelayOK:
		return json.Marshal([]interface{}{"OK", m.EventID, m.Accepted, m.Message})
	case RelayClosed:
		return json.Marshal([]interface{}{"CLOSED", m.SubID, m.Message})
	case RelayAuthChallenge:
		return json.Marshal([]interface{}{"AUTH", m.Challenge})
	case RelayCount:
		return json.Marshal([]interface{}{"COUNT", m.SubID, map[string]int{"count": m.Count}})
	default:
		return nil, fmt.Errorf("nostr: marshal message: unsupported type %T", msg)
	}
}

func marshalWithFilters(label, subID string, filters []Filter) ([]byte, error) {
	arr := make([]interface{}, 0, 2+len(filters))
	arr = append(arr, label, subID)
	for _, f := range filters {
		arr = append(arr, f)
	}
	return json.Marshal(arr)
}
