// Package nip49 implements encrypted key export: a password, scrypt, and an
// HChaCha20-derived subkey feeding ChaCha20-Poly1305, wrapped as a bech32
// ncryptsec string.
package nip49

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"nostrcore/internal/bech32x"
	"nostrcore/internal/xcrypto"
	"nostrcore/nostrerr"
)

// HRP is the bech32 human-readable prefix for an encrypted key.
const HRP = "ncryptsec"

const (
	payloadVersion = 0x02

	saltLen       = 16
	nonceLen      = 24
	keySecurityLen = 1
	seckeyLen     = 32
	macLen        = 16

	minLogN = 1
	maxLogN = 22
)

// KeySecurity records what the exporter claims about prior handling of the
// secret key: 0x00 the key has been handled insecurely (known to have
// touched an unencrypted channel), 0x01 the key has never left encrypted
// storage, 0x02 the exporter makes no claim either way.
type KeySecurity byte

const (
	KeySecurityInsecure KeySecurity = 0x00
	KeySecuritySecure   KeySecurity = 0x01
	KeySecurityUnknown  KeySecurity = 0x02
)

// Encrypt wraps seckeyHex under password, returning an ncryptsec1... string.
// logN must be in [1, 22]; the scrypt cost is 2^logN.
func Encrypt(seckeyHex, password string, logN uint8, security KeySecurity) (string, error) {
	if logN < minLogN || logN > maxLogN {
		return "", fmt.Errorf("nip49: encrypt: %w", nostrerr.ErrInvalidLogN)
	}
	seckey, err := hex.DecodeString(seckeyHex)
	if err != nil || len(seckey) != seckeyLen {
		return "", fmt.Errorf("nip49: encrypt: %w", nostrerr.ErrInvalidHex)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("nip49: encrypt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nip49: encrypt: %w", err)
	}

	key, err := xcrypto.Scrypt(normalizePassword(password), salt, logN, 8, 1, 32)
	if err != nil {
		return "", fmt.Errorf("nip49: encrypt: %w", err)
	}

	prefix, suffix := nonce[:16], nonce[16:]
	subkey, err := xcrypto.HChaCha20Subkey(key, prefix)
	if err != nil {
		return "", fmt.Errorf("nip49: encrypt: %w", err)
	}

	aeadNonce := make([]byte, 0, 12)
	aeadNonce = append(aeadNonce, 0, 0, 0, 0)
	aeadNonce = append(aeadNonce, suffix...)

	aad := []byte{byte(security)}
	sealed, err := xcrypto.SealChaCha20Poly1305(subkey, aeadNonce, seckey, aad)
	if err != nil {
		return "", fmt.Errorf("nip49: encrypt: %w", err)
	}

	payload := make([]byte, 0, 1+1+saltLen+nonceLen+keySecurityLen+len(sealed))
	payload = append(payload, payloadVersion, byte(logN))
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = append(payload, byte(security))
	payload = append(payload, sealed...)

	s, err := bech32x.Encode(HRP, payload)
	if err != nil {
		return "", fmt.Errorf("nip49: encrypt: %w", err)
	}
	return s, nil
}

// Decrypt unwraps an ncryptsec1... string with password, returning the
// 32-byte secret key as hex and the key-security byte it was wrapped with.
func Decrypt(ncryptsec, password string) (seckeyHex string, security KeySecurity, err error) {
	prefix, data, err := bech32x.Decode(ncryptsec)
	if err != nil {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", err)
	}
	if prefix != HRP {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", nostrerr.ErrInvalidPrefix)
	}

	minLen := 1 + 1 + saltLen + nonceLen + keySecurityLen + seckeyLen + macLen
	if len(data) < minLen {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", nostrerr.ErrDecodedTooShort)
	}

	version := data[0]
	if version != payloadVersion {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", nostrerr.ErrUnsupportedVersion)
	}
	logN := data[1]
	if logN < minLogN || logN > maxLogN {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", nostrerr.ErrInvalidLogN)
	}

	off := 2
	salt := data[off : off+saltLen]
	off += saltLen
	nonce := data[off : off+nonceLen]
	off += nonceLen
	sec := KeySecurity(data[off])
	off += keySecurityLen
	sealed := data[off:]

	key, err := xcrypto.Scrypt(normalizePassword(password), salt, logN, 8, 1, 32)
	if err != nil {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", err)
	}

	prefixNonce, suffixNonce := nonce[:16], nonce[16:]
	subkey, err := xcrypto.HChaCha20Subkey(key, prefixNonce)
	if err != nil {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", err)
	}

	aeadNonce := make([]byte, 0, 12)
	aeadNonce = append(aeadNonce, 0, 0, 0, 0)
	aeadNonce = append(aeadNonce, suffixNonce...)

	aad := []byte{byte(sec)}
	seckey, err := xcrypto.OpenChaCha20Poly1305(subkey, aeadNonce, sealed, aad)
	if err != nil {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", nostrerr.ErrDecryptionFailed)
	}
	if len(seckey) != seckeyLen {
		return "", 0, fmt.Errorf("nip49: decrypt: %w", nostrerr.ErrInvalidPayload)
	}

	return hex.EncodeToString(seckey), sec, nil
}

// normalizePassword applies NFKC normalization, the form NIP-49 requires so
// the same password typed on different input methods derives the same key.
func normalizePassword(password string) []byte {
	return []byte(norm.NFKC.String(password))
}
