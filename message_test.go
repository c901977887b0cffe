package nostr

import (
	"strings"
	"testing"
)

func TestParseMessageReqRoundTrip(t *testing.T) {
	raw := []byte(`["REQ","sub",{"kinds":[1],"limit":10}]`)
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	req, ok := msg.(ClientReq)
	if !ok {
		t.Fatalf("got %T, want ClientReq", msg)
	}
	if req.SubID != "sub" || len(req.Filters) != 1 {
		t.Fatalf("got %+v", req)
	}
	if len(req.Filters[0].Kinds) != 1 || req.Filters[0].Kinds[0] != 1 || req.Filters[0].Limit != 10 {
		t.Fatalf("filter = %+v", req.Filters[0])
	}

	out, err := Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"REQ"`) || !strings.Contains(string(out), `"sub"`) {
		t.Fatalf("marshaled output missing expected fields: %s", out)
	}
}

func TestParseMessageEventArity(t *testing.T) {
	clientRaw := []byte(`["EVENT",{"id":"","pubkey":"","created_at":0,"kind":1,"tags":[],"content":"","sig":""}]`)
	msg, err := ParseMessage(clientRaw)
	if err != nil {
		t.Fatalf("parse client event: %v", err)
	}
	if _, ok := msg.(ClientEvent); !ok {
		t.Fatalf("got %T, want ClientEvent", msg)
	}

	relayRaw := []byte(`["EVENT","sub",{"id":"","pubkey":"","created_at":0,"kind":1,"tags":[],"content":"","sig":""}]`)
	msg, err = ParseMessage(relayRaw)
	if err != nil {
		t.Fatalf("parse relay event: %v", err)
	}
	re, ok := msg.(RelayEvent)
	if !ok {
		t.Fatalf("got %T, want RelayEvent", msg)
	}
	if re.SubID != "sub" {
		t.Fatalf("subID = %q", re.SubID)
	}
}

func TestParseMessageAuthDisambiguation(t *testing.T) {
	challengeRaw := []byte(`["AUTH","a-challenge-string"]`)
	msg, err := ParseMessage(challengeRaw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	challenge, ok := msg.(RelayAuthChallenge)
	if !ok || challenge.Challenge != "a-challenge-string" {
		t.Fatalf("got %+v (%T)", msg, msg)
	}

	authEventRaw := []byte(`["AUTH",{"id":"","pubkey":"","created_at":0,"kind":22242,"tags":[],"content":"","sig":""}]`)
	msg, err = ParseMessage(authEventRaw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := msg.(ClientAuth); !ok {
		t.Fatalf("got %T, want ClientAuth", msg)
	}
}

func TestParseMessageCountDisambiguation(t *testing.T) {
	responseRaw := []byte(`["COUNT","sub",{"count":5}]`)
	msg, err := ParseMessage(responseRaw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rc, ok := msg.(RelayCount)
	if !ok || rc.Count != 5 || rc.SubID != "sub" {
		t.Fatalf("got %+v (%T)", msg, msg)
	}

	requestRaw := []byte(`["COUNT","sub",{"kinds":[1]}]`)
	msg, err = ParseMessage(requestRaw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cc, ok := msg.(ClientCount)
	if !ok || len(cc.Filters) != 1 {
		t.Fatalf("got %+v (%T)", msg, msg)
	}
}

func TestParseMessageOK(t *testing.T) {
	raw := []byte(`["OK","eventid123",true,"accepted"]`)
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ok, isOK := msg.(RelayOK)
	if !isOK {
		t.Fatalf("got %T, want RelayOK", msg)
	}
	if ok.EventID != "eventid123" || !ok.Accepted || ok.Message != "accepted" {
		t.Fatalf("got %+v", ok)
	}
}

func TestParseMessageUnknownShape(t *testing.T) {
	raw := []byte(`["FROBNICATE","whatever"]`)
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := msg.(Unknown); !ok {
		t.Fatalf("got %T, want Unknown", msg)
	}
}

func TestParseMessageNotAnArray(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"not":"an array"}`)); err == nil {
		t.Fatal("expected error for non-array input")
	}
}
