package geoip

import (
	"testing"
)

func TestNew_EmptyPath(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("expected no error for empty path, got %v", err)
	}
	if r.Enabled() {
		t.Error("resolver without a database should be disabled")
	}
	if country := r.Country("8.8.8.8"); country != "" {
		t.Errorf("expected empty country for disabled resolver, got %q", country)
	}
}

func TestNew_InvalidPath(t *testing.T) {
	r, err := New("/nonexistent/path.mmdb")
	if err != nil {
		t.Fatalf("expected no error for missing file (graceful fallback), got %v", err)
	}
	if r.Enabled() {
		t.Error("resolver should be disabled when the database cannot be opened")
	}
}

func TestCountry_InvalidInput(t *testing.T) {
	r, _ := New("")
	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "10.1.2.3"} {
		if country := r.Country(ip); country != "" {
			t.Errorf("Country(%q) = %q, want empty", ip, country)
		}
	}
}

func TestClose_NilDB(t *testing.T) {
	r, _ := New("")
	if err := r.Close(); err != nil {
		t.Errorf("expected no error closing nil resolver, got %v", err)
	}
}
