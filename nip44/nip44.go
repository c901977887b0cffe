// Package nip44 implements NIP-44 v2 payload encryption: ECDH-derived
// conversation keys, HKDF-Expand message keys, a custom padding scheme, and
// a ChaCha20 + HMAC-SHA256 versioned payload.
package nip44

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/bits"
	"strings"

	"nostrcore/internal/xcrypto"
	"nostrcore/nostrerr"

	"crypto/rand"
)

const (
	version = 0x02

	minPlaintextLen = 1
	maxPlaintextLen = 65535

	minBase64Len = 132
	maxBase64Len = 87472

	minDecodedLen = 99
	maxDecodedLen = 65603

	nonceLen = 32
	macLen   = 32
)

// conversationKeySalt is the fixed HKDF-Extract salt, "nip44-v2" as ASCII.
var conversationKeySalt = []byte("nip44-v2")

// ConversationKey derives the symmetric key shared between seckey and
// peerPubkey (both hex). It is symmetric: either party can compute it
// holding their own seckey and the other's pubkey.
func ConversationKey(seckeyHex, peerPubkeyHex string) ([]byte, error) {
	seckey, err := hex.DecodeString(seckeyHex)
	if err != nil || len(seckey) != 32 {
		return nil, fmt.Errorf("nip44: conversation key: %w", nostrerr.ErrInvalidHex)
	}
	peerPub, err := hex.DecodeString(peerPubkeyHex)
	if err != nil || len(peerPub) != 32 {
		return nil, fmt.Errorf("nip44: conversation key: %w", nostrerr.ErrInvalidHex)
	}
	sharedX, err := xcrypto.ECDHRawX(seckey, peerPub)
	if err != nil {
		return nil, fmt.Errorf("nip44: conversation key: %w", err)
	}
	return xcrypto.HKDFExtract(conversationKeySalt, sharedX), nil
}

type messageKeys struct {
	chachaKey   []byte
	chachaNonce []byte
	hmacKey     []byte
}

func deriveMessageKeys(conversationKey, nonce32 []byte) (messageKeys, error) {
	okm, err := xcrypto.HKDFExpand(conversationKey, nonce32, 76)
	if err != nil {
		return messageKeys{}, fmt.Errorf("nip44: message keys: %w", err)
	}
	return messageKeys{
		chachaKey:   okm[0:32],
		chachaNonce: okm[32:44],
		hmacKey:     okm[44:76],
	}, nil
}

// calcPaddedLen returns the padded plaintext length for an unpadded length
// u in [1, 65535], per the chunking rule in NIP-44. next is the smallest
// power of two strictly greater than u-1, not the smallest power of two
// >= u-1 — the off-by-one that distinguishes the two matters once
// next > 256, since it picks the chunk size.
func calcPaddedLen(u int) int {
	if u <= 32 {
		return 32
	}
	next := 1 << bits.Len(uint(u-1))
	chunk := 32
	if next > 256 {
		chunk = next / 8
	}
	return chunk * ((u-1)/chunk + 1)
}

// pad renders plaintext as u16_be(len) || plaintext || zero padding.
func pad(plaintext []byte) ([]byte, error) {
	u := len(plaintext)
	if u < minPlaintextLen || u > maxPlaintextLen {
		return nil, fmt.Errorf("nip44: pad: %w", nostrerr.ErrPayloadTooShort)
	}
	paddedLen := calcPaddedLen(u)
	out := make([]byte, 2+paddedLen)
	binary.BigEndian.PutUint16(out[:2], uint16(u))
	copy(out[2:], plaintext)
	return out, nil
}

// unpad recovers the original plaintext from a padded buffer, verifying the
// declared length matches the padding rule exactly. A declared length of
// zero is always rejected.
func unpad(padded []byte) ([]byte, error) {
	if len(padded) < 2 {
		return nil, fmt.Errorf("nip44: unpad: %w", nostrerr.ErrInvalidPadding)
	}
	u := int(binary.BigEndian.Uint16(padded[:2]))
	if u == 0 {
		return nil, fmt.Errorf("nip44: unpad: %w", nostrerr.ErrInvalidPadding)
	}
	rest := padded[2:]
	if u > len(rest) {
		return nil, fmt.Errorf("nip44: unpad: %w", nostrerr.ErrInvalidPadding)
	}
	if len(rest) != calcPaddedLen(u) {
		return nil, fmt.Errorf("nip44: unpad: %w", nostrerr.ErrInvalidPadding)
	}
	return rest[:u], nil
}

// Encrypt encrypts plaintext for peerPubkey using seckey, returning the
// base64 NIP-44 v2 payload.
func Encrypt(seckeyHex, peerPubkeyHex, plaintext string) (string, error) {
	convKey, err := ConversationKey(seckeyHex, peerPubkeyHex)
	if err != nil {
		return "", err
	}
	return encryptWithKey(convKey, plaintext)
}

func encryptWithKey(convKey []byte, plaintext string) (string, error) {
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nip44: encrypt: %w", err)
	}

	keys, err := deriveMessageKeys(convKey, nonce)
	if err != nil {
		return "", fmt.Errorf("nip44: encrypt: %w", err)
	}

	padded, err := pad([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("nip44: encrypt: %w", err)
	}

	ciphertext, err := xcrypto.ChaCha20XOR(keys.chachaKey, keys.chachaNonce, padded)
	if err != nil {
		return "", fmt.Errorf("nip44: encrypt: %w", err)
	}

	mac := xcrypto.HMACSHA256(keys.hmacKey, append(append([]byte{}, nonce...), ciphertext...))

	payload := make([]byte, 0, 1+nonceLen+len(ciphertext)+macLen)
	payload = append(payload, version)
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)
	payload = append(payload, mac...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt decrypts a base64 NIP-44 v2 payload sent by peerPubkey, using
// seckey.
func Decrypt(seckeyHex, peerPubkeyHex, payload string) (string, error) {
	convKey, err := ConversationKey(seckeyHex, peerPubkeyHex)
	if err != nil {
		return "", err
	}
	return decryptWithKey(convKey, payload)
}

func decryptWithKey(convKey []byte, payload string) (string, error) {
	if strings.HasPrefix(payload, "#") {
		return "", fmt.Errorf("nip44: decrypt: %w", nostrerr.ErrUnsupportedVersion)
	}
	if len(payload) < minBase64Len || len(payload) > maxBase64Len {
		return "", fmt.Errorf("nip44: decrypt: %w", nostrerr.ErrPayloadTooShort)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("nip44: decrypt: %w", nostrerr.ErrInvalidBase64)
	}
	if len(data) < minDecodedLen || len(data) > maxDecodedLen {
		return "", fmt.Errorf("nip44: decrypt: %w", nostrerr.ErrDecodedTooShort)
	}

	if data[0] != version {
		return "", fmt.Errorf("nip44: decrypt: %w", nostrerr.ErrUnsupportedVersion)
	}
	nonce := data[1 : 1+nonceLen]
	mac := data[len(data)-macLen:]
	ciphertext := data[1+nonceLen : len(data)-macLen]

	keys, err := deriveMessageKeys(convKey, nonce)
	if err != nil {
		return "", fmt.Errorf("nip44: decrypt: %w", err)
	}

	expectedMac := xcrypto.HMACSHA256(keys.hmacKey, append(append([]byte{}, nonce...), ciphertext...))
	if !xcrypto.ConstantTimeEqual(mac, expectedMac) {
		return "", fmt.Errorf("nip44: decrypt: %w", nostrerr.ErrInvalidMAC)
	}

	padded, err := xcrypto.ChaCha20XOR(keys.chachaKey, keys.chachaNonce, ciphertext)
	if err != nil {
		return "", fmt.Errorf("nip44: decrypt: %w", err)
	}

	plaintext, err := unpad(padded)
	if err != nil {
		return "", fmt.Errorf("nip44: decrypt: %w", err)
	}
	return string(plaintext), nil
}
