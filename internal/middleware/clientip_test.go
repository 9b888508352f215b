package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xrip       string
		want       string
	}{
		{"remote addr only", "203.0.113.7:51234", "", "", "203.0.113.7"},
		{"x-forwarded-for single", "10.0.0.1:80", "198.51.100.4", "", "198.51.100.4"},
		{"x-forwarded-for chain", "10.0.0.1:80", "198.51.100.4, 10.0.0.2, 10.0.0.1", "", "198.51.100.4"},
		{"x-real-ip", "10.0.0.1:80", "", "198.51.100.9", "198.51.100.9"},
		{"xff wins over x-real-ip", "10.0.0.1:80", "198.51.100.4", "198.51.100.9", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xrip != "" {
				req.Header.Set("X-Real-IP", tt.xrip)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
