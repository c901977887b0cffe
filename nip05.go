package nostr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"nostrcore/nostrerr"
)

// HTTPDoer is the blocking HTTP transport ResolveNIP05 needs. *http.Client
// satisfies it directly; hosts that want their own timeout/proxy/TLS policy
// supply their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// nip05Response is the body of https://<domain>/.well-known/nostr.json.
type nip05Response struct {
	Names  map[string]string   `json:"names"`
	Relays map[string][]string `json:"relays"`
}

// ResolveNIP05 resolves a "name@domain" identifier (or "domain" alone,
// meaning "_@domain") to a hex pubkey and its advertised relays via
// doer. Redirects are a hard failure — NIP-05 resolution must hit exactly
// the URL it asked for, never a 3xx target.
func ResolveNIP05(ctx context.Context, identifier string, doer HTTPDoer) (pubkeyHex string, relays []string, err error) {
	name, domain, err := splitNIP05(identifier)
	if err != nil {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", err)
	}

	reqURL := fmt.Sprintf("https://%s/.well-known/nostr.json?name=%s", domain, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doer.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", err)
	}
	defer resp.Body.Close()

	// A doer that follows redirects (a default *http.Client) reports the
	// final request on resp.Request; any URL other than ours is a redirect.
	if resp.Request != nil && resp.Request.URL != nil && resp.Request.URL.String() != req.URL.String() {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", nostrerr.ErrRedirectsNotAllowed)
	}
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", nostrerr.ErrRedirectsNotAllowed)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("nostr: resolve nip05: unexpected status %d", resp.StatusCode)
	}

	var body nip05Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", nostrerr.ErrInvalidPayload)
	}

	var pubkey string
	for n, pk := range body.Names {
		if strings.EqualFold(n, name) {
			pubkey = strings.ToLower(pk)
			break
		}
	}
	if pubkey == "" {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", nostrerr.ErrMissingPubkey)
	}
	if len(pubkey) != 64 {
		return "", nil, fmt.Errorf("nostr: resolve nip05: %w", nostrerr.ErrInvalidPubkey)
	}

	if body.Relays != nil {
		relays = body.Relays[pubkey]
	}
	return pubkey, relays, nil
}

// splitNIP05 parses "name@domain" into its parts; a bare domain (no "@")
// means name "_".
func splitNIP05(identifier string) (name, domain string, err error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if !strings.Contains(identifier, "@") {
		if identifier == "" {
			return "", "", nostrerr.ErrInvalidPayload
		}
		return "_", identifier, nil
	}
	parts := strings.SplitN(identifier, "@", 2)
	name, domain = parts[0], parts[1]
	if name == "" {
		name = "_"
	}
	if domain == "" || !strings.Contains(domain, ".") {
		return "", "", nostrerr.ErrInvalidPayload
	}
	return name, domain, nil
}

// RedirectRejectingTransport returns an *http.Client whose CheckRedirect
// refuses every redirect outright, for hosts that want ResolveNIP05's
// no-redirects rule without writing their own http.Client.
func RedirectRejectingTransport() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
