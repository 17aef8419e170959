package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type regionContextKey struct{}

// RegionKey stores the detected campaign region in the request context.
var RegionKey = regionContextKey{}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// RegionLookup converts an ISO country code into a campaign region name.
type RegionLookup func(country, fallback string) string

// Region detects a default campaign region for requests whose brief omits
// one: an explicit X-Region header wins, then the client IP's country.
func Region(defaultRegion string, countries CountryLookup, regions RegionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			region := strings.TrimSpace(r.Header.Get("X-Region"))
			if region == "" {
				region = defaultRegion
				if countries != nil && regions != nil {
					if country, err := countries(ClientIP(r)); err == nil && country != "" {
						region = regions(country, defaultRegion)
					}
				}
			}
			ctx := context.WithValue(r.Context(), RegionKey, region)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RegionFromContext returns the detected region, or "" when none was set.
func RegionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RegionKey).(string); ok {
		return v
	}
	return ""
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
