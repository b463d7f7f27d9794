package middleware

import (
	"net"
	"net/http"
	"strings"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// RemoteHost is the host part of RemoteAddr, i.e. the peer of the socket.
// Clients cannot choose it.
func RemoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ClientIP prefers CF-Connecting-IP, then the first X-Forwarded-For hop,
// then the host part of RemoteAddr. The headers are client controlled unless
// a proxy in front rewrites them.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return RemoteHost(r)
}

// LimiterKey returns ClientIP when forwarded headers come from a trusted
// proxy and RemoteHost otherwise.
func LimiterKey(trustProxyHeaders bool) KeyFunc {
	if trustProxyHeaders {
		return ClientIP
	}
	return RemoteHost
}
