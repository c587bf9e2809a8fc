package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber/http/middleware"
)

func TestClientIP(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		value    string
		remote   string
		expected string
	}{
		{"Remote-Addr", "", "", "203.0.113.7:5123", "203.0.113.7"},
		{"Remote-Addr-IPv6", "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"Remote-Addr-Mapped", "", "", "[::ffff:203.0.113.7]:80", "203.0.113.7"},
		{"Nothing-Usable", "", "", "pipe", "0.0.0.0"},
		{"Only-Private-Forwarded", "X-Forwarded-For", "192.168.0.1", "", "0.0.0.0"},
		{"Private-Falls-Back-To-Remote", "X-Forwarded-For", "10.0.0.1", "198.51.100.2:80", "198.51.100.2"},
		{"Public-Forwarded", "X-Forwarded-For", "1.1.1.1", "198.51.100.2:80", "1.1.1.1"},
		{"Before-Proxy", "X-Real-Ip", "10.0.0.1,1.1.1.1", "", "1.1.1.1"},
		{"Closest-Public", "X-Real-Ip", "10.255.255.255,8.8.8.8,1.1.1.1,172.16.0.0", "", "1.1.1.1"},
		{"Carrier-Grade-NAT", "X-Forwarded-For", "8.8.8.8, 100.64.0.9", "", "8.8.8.8"},
		{"Garbage", "X-Forwarded-For", "not-an-ip", "", "0.0.0.0"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			if tc.header != "" {
				r.Header.Set(tc.header, tc.value)
			}

			// Act
			ip := middleware.ClientIP(r)

			// Assert
			require.Equal(t, tc.expected, ip)
		})
	}
}

func TestInjectClientIP(t *testing.T) {
	// Arrange
	var got any
	h := middleware.InjectClientIP()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Context().Value(middleware.ClientIPKey)
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5123"

	// Act
	h.ServeHTTP(httptest.NewRecorder(), r)

	// Assert
	require.Equal(t, "203.0.113.7", got)
}
