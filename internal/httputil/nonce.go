package httputil

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const nonceBytes = 16

// Nonce authorizes the inline <script> and <style> blocks of one response.
type Nonce string

type nonceKey struct{}

var nonceReader io.Reader = rand.Reader

func NewNonce() (Nonce, error) {
	b := make([]byte, nonceBytes)
	if _, err := io.ReadFull(nonceReader, b); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	return Nonce(base64.RawURLEncoding.EncodeToString(b)), nil
}

// Source is the CSP source expression for n. An empty nonce has none, which
// leaves inline blocks disallowed.
func (n Nonce) Source() string {
	if n == "" {
		return ""
	}
	return "'nonce-" + string(n) + "'"
}

func WithNonce(ctx context.Context, n Nonce) context.Context {
	return context.WithValue(ctx, nonceKey{}, n)
}

func NonceFrom(ctx context.Context) Nonce {
	n, _ := ctx.Value(nonceKey{}).(Nonce)
	return n
}
