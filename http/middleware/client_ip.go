package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// unknownIP is the client IP of a request naming no usable address.
const unknownIP = "0.0.0.0"

// forwardHeaders are read, in order, for the addresses a request was proxied for.
var forwardHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic lists IANA special-purpose IPv4 blocks a proxied client address is never taken from.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectClientIP stores the request's ClientIP in its context under ClientIPKey,
// where LogRequest picks it up.
func InjectClientIP() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.Clone(context.WithValue(r.Context(), ClientIPKey, ClientIP(r)))
			h.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the address RateLimit counts a request against.
//
// The public address closest to the proxy in X-Forwarded-For or X-Real-Ip wins.
// Without one, the host of the connection's remote address is used.
// When neither names an address, ClientIP returns "0.0.0.0".
func ClientIP(r *http.Request) string {
	if ip, ok := forwardedIP(r.Header); ok {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}

	return unknownIP
}

// forwardedIP marches each proxy header from right to left
// until it meets a public address, the one right before the proxy.
func forwardedIP(hm http.Header) (string, bool) {
	for _, h := range forwardHeaders {
		addresses := strings.Split(hm.Get(h), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addresses[i]))
			if err != nil || !isPublic(addr.Unmap()) {
				continue
			}

			return addr.Unmap().String(), true
		}
	}

	return "", false
}

func isPublic(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
