package httputil

import (
	"context"
	"errors"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestNewNonce(t *testing.T) {
	seen := make(map[Nonce]bool)
	for i := 0; i < 10; i++ {
		nonce, err := NewNonce()
		if err != nil {
			t.Fatal(err)
		}
		// 16 bytes, base64url without padding
		if len(nonce) != 22 {
			t.Fatalf("expected 22-character nonce, got %d: %q", len(nonce), nonce)
		}
		if seen[nonce] {
			t.Fatalf("nonce %q generated twice", nonce)
		}
		seen[nonce] = true
	}
}

func TestNewNonce_ReaderFailure(t *testing.T) {
	orig := nonceReader
	nonceReader = failingReader{}
	t.Cleanup(func() { nonceReader = orig })

	nonce, err := NewNonce()
	if err == nil {
		t.Fatal("expected error from failing reader")
	}
	if nonce != "" || nonce.Source() != "" {
		t.Errorf("expected empty nonce without a source, got %q", nonce)
	}
}

func TestNonceSource(t *testing.T) {
	if got := Nonce("abc").Source(); got != "'nonce-abc'" {
		t.Errorf("unexpected source %q", got)
	}
}

func TestNonceContext(t *testing.T) {
	if got := NonceFrom(context.Background()); got != "" {
		t.Errorf("expected empty nonce on bare context, got %q", got)
	}

	ctx := WithNonce(context.Background(), "carousel-nonce")
	if got := NonceFrom(ctx); got != "carousel-nonce" {
		t.Errorf("expected %q, got %q", "carousel-nonce", got)
	}
}
