package proxy

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	token, err := s.Sign("https://cdn.test/a.jpg")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := s.Verify(token, "https://cdn.test/a.jpg"); err != nil {
		t.Errorf("expected valid token, got %v", err)
	}
}

func TestSigner_RejectsExpiredToken(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, err := s.Sign("https://cdn.test/a.jpg")
	if err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if err := s.Verify(token, "https://cdn.test/a.jpg"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSigner_RejectsForeignSecret(t *testing.T) {
	token, _ := NewSigner("one", time.Hour).Sign("https://cdn.test/a.jpg")
	err := NewSigner("two", time.Hour).Verify(token, "https://cdn.test/a.jpg")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSigner_RejectsEmptyToken(t *testing.T) {
	if err := NewSigner("secret", 0).Verify("", "https://cdn.test/a.jpg"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLink(t *testing.T) {
	t.Run("unsigned", func(t *testing.T) {
		link, err := Link(nil, "https://cdn.test/a b.jpg")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(link, "/api/proxy?") {
			t.Fatalf("unexpected link %q", link)
		}
		q := mustQuery(t, link)
		if q.Get("url") != "https://cdn.test/a b.jpg" {
			t.Errorf("expected url round trip, got %q", q.Get("url"))
		}
		if q.Has("token") {
			t.Error("unsigned link should not carry a token")
		}
	})

	t.Run("signed", func(t *testing.T) {
		s := NewSigner("secret", time.Hour)
		link, err := Link(s, "https://cdn.test/a.jpg")
		if err != nil {
			t.Fatal(err)
		}
		q := mustQuery(t, link)
		if err := s.Verify(q.Get("token"), q.Get("url")); err != nil {
			t.Errorf("expected link token to verify, got %v", err)
		}
	})
}

func mustQuery(t *testing.T, link string) url.Values {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	return u.Query()
}
