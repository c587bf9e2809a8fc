package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/http/middleware"
	"github.com/xy-planning-network/lumber/logger"
)

func newLogger() (*logger.Logger, *appender.Memory) {
	hub := logger.NewHub(logger.WithTimeFunc(logger.NoTime))
	mem := appender.NewMemory(hub, 10)
	mem.SetFormat("%l %m")
	return hub.Logger("http"), mem
}

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	ip := "192.168.0.0"
	tcs := []struct {
		name     string
		method   string
		ip       string
		id       string
		url      *url.URL
		expected string
	}{
		{"Zero-Value", http.MethodGet, "", "", &url.URL{Path: "/"}, "INFO  GET /"},
		{"With-IP", http.MethodPost, ip, "", &url.URL{Path: "/"}, "INFO  " + ip + " POST /"},
		{"With-ID", http.MethodGet, "", "test-id", &url.URL{Path: "/"}, "INFO  GET / test-id"},
		{
			"With-Query-Params",
			http.MethodPut,
			ip,
			"",
			&url.URL{Path: "/level", RawQuery: "param=100%25"},
			"INFO  " + ip + " PUT /level?param=100%25",
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			ip,
			"",
			&url.URL{Path: "/", RawQuery: "param=true&password=hunter2"},
			"INFO  " + ip + " GET /?param=true&password=" + middleware.LogMaskVal,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l, mem := newLogger()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.url.String(), nil)
			if tc.ip != "" {
				r = r.Clone(context.WithValue(r.Context(), middleware.ClientIPKey, tc.ip))
			}

			if tc.id != "" {
				r = r.Clone(context.WithValue(r.Context(), middleware.RequestIDKey, tc.id))
			}

			// Act
			middleware.LogRequest(l)(NoopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, []string{tc.expected}, mem.Lines())
		})
	}
}

func TestAccessLog(t *testing.T) {
	// Arrange
	l, mem := newLogger()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/level", nil)

	// Act
	middleware.AccessLog(l)(NoopHandler()).ServeHTTP(w, r)

	// Assert
	lines := mem.Lines()
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "INFO  192.0.2.1 - - ["))
	require.Contains(t, lines[0], `"GET /level HTTP/1.1" 200`)
}

func TestRecover(t *testing.T) {
	// Arrange
	l, mem := newLogger()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("at the disco") })

	// Act
	middleware.Recover(l)(panicky).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, []string{"ERROR recovered from panic: at the disco"}, mem.Lines())
}
