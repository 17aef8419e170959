package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterKey(t *testing.T) {
	cases := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.1", "198.51.100.10:1234", "203.0.113.1"},
		{"forwarded list uses first valid", " 203.0.113.1 , 198.51.100.2 ", "198.51.100.10:1234", "203.0.113.1"},
		{"garbage forwarded falls back", "not-an-ip", "198.51.100.10:1234", "198.51.100.10"},
		{"no forwarded header", "", "198.51.100.10:1234", "198.51.100.10"},
		{"ipv6 forwarded", "2001:db8::1", net.JoinHostPort("2001:db8::2", "443"), "2001:db8::1"},
		{"ipv6 remote", "not-an-ip", net.JoinHostPort("2001:db8::2", "443"), "2001:db8::2"},
		{"remote without port", "not-an-ip", "203.0.113.1", "203.0.113.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := limiterKey(req); got != tc.want {
				t.Fatalf("limiterKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateLimitRejectsOverAllowance(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", nil)
		req.RemoteAddr = "198.51.100.10:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := request(); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, rec.Code)
		}
	}
	rec := request()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After hint")
	}

	// A different client keeps its own allowance.
	other := httptest.NewRequest(http.MethodPost, "/api/campaigns/generate", nil)
	other.RemoteAddr = "203.0.113.7:1234"
	otherRec := httptest.NewRecorder()
	handler.ServeHTTP(otherRec, other)
	if otherRec.Code != http.StatusOK {
		t.Fatalf("independent client limited: status %d", otherRec.Code)
	}
}
