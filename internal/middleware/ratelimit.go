package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type window struct {
	count int
	until time.Time
}

// RateLimit caps requests per client IP over a rolling window. Every campaign
// generation fans out into engine calls and full-size renders, so the
// generation routes sit behind a small per-minute allowance. Rejected
// requests carry a Retry-After hint.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	windows := make(map[string]*window)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiterKey(r)
			mu.Lock()
			win, ok := windows[key]
			now := time.Now()
			if !ok || now.After(win.until) {
				win = &window{until: now.Add(per)}
				windows[key] = win
			}
			if win.count >= limit {
				retry := win.until
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(retry).Seconds())+1))
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			win.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

// limiterKey buckets requests by the best verifiable client IP: the first
// parseable X-Forwarded-For entry, then the remote host.
func limiterKey(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
