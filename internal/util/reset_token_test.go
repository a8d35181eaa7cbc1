package util

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestNewResetSecret(t *testing.T) {
	secret, err := NewResetSecret()
	if err != nil {
		t.Fatalf("NewResetSecret returned error: %v", err)
	}
	raw, err := hex.DecodeString(secret)
	if err != nil {
		t.Fatalf("expected hex-encoded secret, got %q", secret)
	}
	if len(raw) != resetSecretBytes {
		t.Fatalf("expected %d bytes of entropy, got %d", resetSecretBytes, len(raw))
	}

	other, err := NewResetSecret()
	if err != nil {
		t.Fatalf("NewResetSecret returned error: %v", err)
	}
	if secret == other {
		t.Fatalf("expected successive secrets to differ")
	}
}

func TestResetSecretMatches(t *testing.T) {
	secret, err := NewResetSecret()
	if err != nil {
		t.Fatalf("NewResetSecret returned error: %v", err)
	}
	digest := HashResetSecret(secret)
	if bytes.Contains(digest, []byte(secret)) {
		t.Fatalf("digest must not embed the raw secret")
	}
	if !ResetSecretMatches(secret, digest) {
		t.Fatalf("expected secret to match its own digest")
	}
	if ResetSecretMatches(secret+"x", digest) {
		t.Fatalf("expected altered secret to be rejected")
	}
	if ResetSecretMatches(secret, nil) {
		t.Fatalf("expected empty stored hash to be rejected")
	}
}
