package nip49

import (
	"strings"
	"testing"

	"nostrcore/nostrerr"
)

const fixtureSeckeyHex = "14c226dbdd865d5e1645e72c7470fd0a17feb42cc87b750bab6538171b3a3f8a"

func TestEncryptDecryptFixtureRoundTrip(t *testing.T) {
	out, err := Encrypt(fixtureSeckeyHex, "nostr", 16, KeySecurityUnknown)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !strings.HasPrefix(out, HRP+"1") {
		t.Fatalf("got %q, want an %s1... string", out, HRP)
	}

	seckeyHex, security, err := Decrypt(out, "nostr")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if seckeyHex != fixtureSeckeyHex {
		t.Fatalf("got %s, want %s", seckeyHex, fixtureSeckeyHex)
	}
	if security != KeySecurityUnknown {
		t.Fatalf("security = %v, want %v", security, KeySecurityUnknown)
	}
}

func TestDecryptWrongPasswordFails(t *testing.T) {
	out, err := Encrypt(fixtureSeckeyHex, "nostr", 16, KeySecurityUnknown)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, _, err := Decrypt(out, "wrong"); err == nil {
		t.Fatal("expected decryption_failed with the wrong password")
	} else if !containsErr(err, nostrerr.ErrDecryptionFailed) {
		t.Fatalf("got error %v, want decryption_failed", err)
	}
}

func TestEncryptRejectsOutOfRangeLogN(t *testing.T) {
	if _, err := Encrypt(fixtureSeckeyHex, "nostr", 0, KeySecurityUnknown); err == nil {
		t.Fatal("expected error for logN below minimum")
	}
	if _, err := Encrypt(fixtureSeckeyHex, "nostr", 23, KeySecurityUnknown); err == nil {
		t.Fatal("expected error for logN above maximum")
	}
}

func TestEncryptPreservesKeySecurityClaim(t *testing.T) {
	out, err := Encrypt(fixtureSeckeyHex, "nostr", 16, KeySecurityInsecure)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	_, security, err := Decrypt(out, "nostr")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if security != KeySecurityInsecure {
		t.Fatalf("security = %v, want %v", security, KeySecurityInsecure)
	}
}

func containsErr(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
