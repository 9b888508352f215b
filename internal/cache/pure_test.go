package cache

import (
	"testing"
)

func TestHashKey_Deterministic(t *testing.T) {
	t.Parallel()

	if hashKey("192.168.1.100") != hashKey("192.168.1.100") {
		t.Error("same input should produce same hash")
	}
}

func TestHashKey_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6 localhost", "::1"},
		{"email", "a@b.com"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// hashKey uses first 8 bytes of SHA256, encoded as 16 hex chars
			if got := hashKey(tt.input); len(got) != 16 {
				t.Errorf("hashKey(%q) length = %d, want 16", tt.input, len(got))
			}
		})
	}
}

func TestHashKey_Different(t *testing.T) {
	t.Parallel()

	if hashKey("8.8.8.8") == hashKey("192.168.1.1") {
		t.Error("different inputs should produce different hashes")
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase unchanged", "a@b.com", "a@b.com"},
		{"uppercase folded", "Alice@Example.COM", "alice@example.com"},
		{"whitespace trimmed", "  a@b.com ", "a@b.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := normalizeEmail(tt.input); got != tt.want {
				t.Errorf("normalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
