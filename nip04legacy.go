package nostr

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"nostrcore/internal/xcrypto"
	"nostrcore/nostrerr"
)

// DecryptNIP04Legacy decrypts a NIP-04 (AES-256-CBC) payload of the form
// "<base64 ciphertext>?iv=<base64 iv>" using the recipient's seckey and the
// sender's pubkey. NIP-04 is kept only for reading old messages — new
// content should always use nip44.
func DecryptNIP04Legacy(recipientSeckeyHex, senderPubkeyHex, payload string) (string, error) {
	seckey, err := hex.DecodeString(recipientSeckeyHex)
	if err != nil || len(seckey) != 32 {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", nostrerr.ErrInvalidHex)
	}
	senderPub, err := hex.DecodeString(senderPubkeyHex)
	if err != nil || len(senderPub) != 32 {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", nostrerr.ErrInvalidHex)
	}

	ctB64, ivB64, ok := strings.Cut(payload, "?iv=")
	if !ok {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", nostrerr.ErrInvalidPayload)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(ctB64)
	if err != nil {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", nostrerr.ErrInvalidBase64)
	}
	iv, err := base64.StdEncoding.DecodeString(ivB64)
	if err != nil || len(iv) != aes.BlockSize {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", nostrerr.ErrInvalidBase64)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", nostrerr.ErrInvalidPayload)
	}

	key, err := xcrypto.ECDHHashed(seckey, senderPub)
	if err != nil {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", err)
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded)
	if err != nil {
		return "", fmt.Errorf("nostr: nip04 decrypt: %w", err)
	}
	return string(plaintext), nil
}

// encryptNIP04Legacy is the write-side counterpart, unexported: new code
// should never produce NIP-04 ciphertext, but tests need it to exercise
// DecryptNIP04Legacy against real fixtures.
func encryptNIP04Legacy(senderSeckeyHex, recipientPubkeyHex, plaintext string) (string, error) {
	seckey, err := hex.DecodeString(senderSeckeyHex)
	if err != nil || len(seckey) != 32 {
		return "", fmt.Errorf("nostr: nip04 encrypt: %w", nostrerr.ErrInvalidHex)
	}
	recipientPub, err := hex.DecodeString(recipientPubkeyHex)
	if err != nil || len(recipientPub) != 32 {
		return "", fmt.Errorf("nostr: nip04 encrypt: %w", nostrerr.ErrInvalidHex)
	}

	key, err := xcrypto.ECDHHashed(seckey, recipientPub)
	if err != nil {
		return "", fmt.Errorf("nostr: nip04 encrypt: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("nostr: nip04 encrypt: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("nostr: nip04 encrypt: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext) + "?iv=" + base64.StdEncoding.EncodeToString(iv), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(append([]byte{}, data...), bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nostrerr.ErrInvalidPadding
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, nostrerr.ErrInvalidPadding
	}
	return data[:len(data)-padLen], nil
}
