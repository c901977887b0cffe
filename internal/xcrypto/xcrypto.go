// Package xcrypto wraps the secp256k1/AEAD primitives the rest of the
// module builds on: Schnorr sign/verify, x-only pubkey derivation, raw
// ECDH (the unhashed shared x-coordinate), HKDF,
// ChaCha20, HMAC-SHA256, HChaCha20 subkey derivation, ChaCha20-Poly1305
// and scrypt.
//
// Nothing here keeps state; every function takes its key material as an
// argument and returns fresh output. Callers own zeroing secrets when done.
package xcrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/scrypt"
)

// GenerateSeckey returns a fresh random 32-byte secret key, suitable for a
// one-shot ephemeral keypair (NIP-59 gift-wrap). Callers must not persist it.
func GenerateSeckey() ([]byte, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("xcrypto: generate seckey: %w", err)
	}
	defer priv.Zero()
	b := priv.Key.Bytes()
	return b[:], nil
}

// SeckeyToPubkey derives the 32-byte x-only public key for a secret key.
func SeckeyToPubkey(seckey []byte) ([]byte, error) {
	if len(seckey) != 32 {
		return nil, fmt.Errorf("xcrypto: secret key must be 32 bytes, got %d", len(seckey))
	}
	priv, pub := btcec.PrivKeyFromBytes(seckey)
	defer priv.Zero()
	return schnorr.SerializePubKey(pub), nil
}

// Sign produces a BIP-340 Schnorr signature over a 32-byte message (the
// event id) using a 32-byte secret key.
func Sign(seckey, msg []byte) ([]byte, error) {
	if len(seckey) != 32 {
		return nil, fmt.Errorf("xcrypto: secret key must be 32 bytes, got %d", len(seckey))
	}
	if len(msg) != 32 {
		return nil, fmt.Errorf("xcrypto: message must be 32 bytes, got %d", len(msg))
	}
	priv, _ := btcec.PrivKeyFromBytes(seckey)
	defer priv.Zero()
	sig, err := schnorr.Sign(priv, msg)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: schnorr sign: %w", err)
	}
	return sig.Serialize(), nil
}

// Verify checks a 64-byte Schnorr signature over a 32-byte message against
// a 32-byte x-only public key.
func Verify(sig, msg, pubkey []byte) bool {
	if len(sig) != 64 || len(msg) != 32 || len(pubkey) != 32 {
		return false
	}
	pub, err := schnorr.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	signature, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	return signature.Verify(msg, pub)
}

// ECDHRawX reconstructs the peer's full compressed point by prefixing the
// x-only pubkey with 0x02 (even-y), then returns the raw 32-byte
// x-coordinate of seckey*peerPoint, with no hashing. NIP-44's
// conversation key needs the unhashed coordinate because HKDF-Extract does
// its own mixing.
func ECDHRawX(seckey, peerXOnlyPubkey []byte) ([]byte, error) {
	if len(seckey) != 32 {
		return nil, fmt.Errorf("xcrypto: secret key must be 32 bytes, got %d", len(seckey))
	}
	if len(peerXOnlyPubkey) != 32 {
		return nil, fmt.Errorf("xcrypto: peer public key must be 32 bytes, got %d", len(peerXOnlyPubkey))
	}

	compressed := make([]byte, 33)
	compressed[0] = 0x02
	copy(compressed[1:], peerXOnlyPubkey)

	peerPub, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: invalid peer public key: %w", err)
	}

	priv, _ := btcec.PrivKeyFromBytes(seckey)
	defer priv.Zero()

	var point btcec.JacobianPoint
	peerPub.AsJacobian(&point)

	var result btcec.JacobianPoint
	btcec.ScalarMultNonConst(&priv.Key, &point, &result)
	result.ToAffine()

	if result.X.IsZero() && result.Y.IsZero() {
		return nil, fmt.Errorf("xcrypto: ECDH produced point at infinity")
	}

	x := result.X.Bytes()
	return x[:], nil
}

// ECDHHashed returns btcec's own shared-secret convention,
// GenerateSharedSecret: the raw 32-byte x-coordinate of the shared point,
// not hashed (the same value ECDHRawX computes). NIP-04 (legacy) uses it
// directly as an AES-256 key.
func ECDHHashed(seckey, peerXOnlyPubkey []byte) ([]byte, error) {
	if len(seckey) != 32 {
		return nil, fmt.Errorf("xcrypto: secret key must be 32 bytes, got %d", len(seckey))
	}
	if len(peerXOnlyPubkey) != 32 {
		return nil, fmt.Errorf("xcrypto: peer public key must be 32 bytes, got %d", len(peerXOnlyPubkey))
	}

	compressed := make([]byte, 33)
	compressed[0] = 0x02
	copy(compressed[1:], peerXOnlyPubkey)

	peerPub, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: invalid peer public key: %w", err)
	}

	priv, _ := btcec.PrivKeyFromBytes(seckey)
	defer priv.Zero()

	return btcec.GenerateSharedSecret(priv, peerPub), nil
}

// HKDFExtract implements RFC 5869 Extract: PRK = HMAC-SHA256(salt, ikm).
func HKDFExtract(salt, ikm []byte) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write(ikm)
	return mac.Sum(nil)
}

// HKDFExpand implements RFC 5869 Expand, returning length bytes of output
// key material derived from prk and info.
func HKDFExpand(prk, info []byte, length int) ([]byte, error) {
	reader := hkdf.Expand(sha256.New, prk, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("xcrypto: hkdf expand: %w", err)
	}
	return out, nil
}

// HMACSHA256 computes HMAC-SHA256(key, data).
func HMACSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// ConstantTimeEqual compares two MACs without leaking timing information.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ChaCha20XOR encrypts (or decrypts — the cipher is symmetric) data with
// ChaCha20 under the given 32-byte key and the NIP-44 IV convention:
// a zero 32-bit counter followed by the 12-byte nonce.
func ChaCha20XOR(key, nonce12, data []byte) ([]byte, error) {
	if len(key) != chacha20.KeySize {
		return nil, fmt.Errorf("xcrypto: chacha20 key must be %d bytes, got %d", chacha20.KeySize, len(key))
	}
	if len(nonce12) != chacha20.NonceSize {
		return nil, fmt.Errorf("xcrypto: chacha20 nonce must be %d bytes, got %d", chacha20.NonceSize, len(nonce12))
	}
	cipher, err := chacha20.NewUnauthenticatedCipher(key, nonce12)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: chacha20 init: %w", err)
	}
	out := make([]byte, len(data))
	cipher.XORKeyStream(out, data)
	return out, nil
}

// HChaCha20Subkey derives the XChaCha20-Poly1305 subkey from a 32-byte key
// and the 16-byte nonce prefix, per the XChaCha20 construction (20 rounds).
func HChaCha20Subkey(key, nonce16 []byte) ([]byte, error) {
	if len(key) != chacha20.KeySize {
		return nil, fmt.Errorf("xcrypto: hchacha20 key must be %d bytes, got %d", chacha20.KeySize, len(key))
	}
	if len(nonce16) != 16 {
		return nil, fmt.Errorf("xcrypto: hchacha20 nonce must be 16 bytes, got %d", len(nonce16))
	}
	return chacha20.HChaCha20(key, nonce16)
}

// SealChaCha20Poly1305 encrypts plaintext with standard (12-byte nonce)
// ChaCha20-Poly1305 under a 32-byte key, used by NIP-49 with nonce
// u32(0) || suffix(8).
func SealChaCha20Poly1305(key, nonce12, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: chacha20poly1305 init: %w", err)
	}
	if len(nonce12) != aead.NonceSize() {
		return nil, fmt.Errorf("xcrypto: chacha20poly1305 nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce12))
	}
	return aead.Seal(nil, nonce12, plaintext, aad), nil
}

// OpenChaCha20Poly1305 decrypts and authenticates a standard
// ChaCha20-Poly1305 ciphertext produced by SealChaCha20Poly1305.
func OpenChaCha20Poly1305(key, nonce12, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: chacha20poly1305 init: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce12, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: chacha20poly1305 open: %w", err)
	}
	return plaintext, nil
}

// Scrypt derives a key from a password following NIP-49's parameters
// (N = 2^logN, r = 8, p = 1).
func Scrypt(password, salt []byte, logN uint8, r, p, keyLen int) ([]byte, error) {
	n := 1 << logN
	key, err := scrypt.Key(password, salt, n, r, p, keyLen)
	if err != nil {
		return nil, fmt.Errorf("xcrypto: scrypt: %w", err)
	}
	return key, nil
}
