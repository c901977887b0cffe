// Package nostrerr defines the closed set of error kinds shared across this
// module's components (spec §7). Each is a sentinel error; call sites wrap
// it with fmt.Errorf("...: %w", ErrX) so errors.Is keeps working while the
// message still carries the offending detail, the way the teacher's CLI
// wraps ad hoc strings but generalized into a matchable value.
package nostrerr

import "errors"

// Format errors — bad input at a codec boundary.
var (
	ErrInvalidHex     = errors.New("invalid hex")
	ErrInvalidBech32  = errors.New("invalid bech32")
	ErrInvalidBase64  = errors.New("invalid base64")
	ErrInvalidPrefix  = errors.New("invalid prefix")
	ErrInvalidURIScheme = errors.New("invalid uri scheme")
)

// Length/shape errors — structural validation failures.
var (
	ErrPayloadTooShort = errors.New("payload too short")
	ErrPayloadTooLong  = errors.New("payload too long")
	ErrDecodedTooShort = errors.New("decoded payload too short")
	ErrDecodedTooLong  = errors.New("decoded payload too long")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrIncompleteTLV   = errors.New("incomplete tlv entry")
	ErrMissingPubkey   = errors.New("missing pubkey")
	ErrMissingEventID  = errors.New("missing event id")
	ErrMissingAuthor   = errors.New("missing author")
	ErrMissingKind     = errors.New("missing kind")
	ErrInvalidPubkey   = errors.New("invalid pubkey")
	ErrInvalidEventID  = errors.New("invalid event id")
	ErrInvalidAuthor   = errors.New("invalid author")
	ErrInvalidKind     = errors.New("invalid kind")
)

// Crypto errors — authentication or protocol failure. Never recoverable;
// callers must not try to salvage partial plaintext from these.
var (
	ErrInvalidMAC          = errors.New("invalid mac")
	ErrInvalidPadding      = errors.New("invalid padding")
	ErrUnsupportedVersion  = errors.New("unsupported version")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrInvalidLogN         = errors.New("invalid log_n")
)

// Protocol semantic errors — structured outcomes the caller decides policy
// on.
var (
	ErrSenderMismatch  = errors.New("sender mismatch")
	ErrUnexpectedKind  = errors.New("unexpected kind")
	ErrUnsupportedKind = errors.New("unsupported kind")
	ErrNsecNotAllowed  = errors.New("nsec not allowed in this context")
	ErrRedirectsNotAllowed = errors.New("redirects not allowed")
)

// Contract violations during signing — fatal, the caller constructed an
// inconsistent event and the library refuses to proceed.
var (
	ErrPubkeyMismatch = errors.New("pubkey does not match secret key")
	ErrIDMismatch     = errors.New("id does not match computed id")
)
