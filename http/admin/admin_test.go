package admin_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/http/admin"
	"github.com/xy-planning-network/lumber/logger"
)

type fixture struct {
	hub *logger.Hub
	mem *appender.Memory
	h   *admin.Handler
}

func newFixture(opts ...admin.OptFn) fixture {
	hub := logger.NewHub(logger.WithLevel(logger.LevelInfo), logger.WithTimeFunc(logger.NoTime))
	mem := appender.NewMemory(hub, 10)
	mem.SetFormat("%m")
	return fixture{hub: hub, mem: mem, h: admin.New(hub, opts...)}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, httptest.NewRequest(method, target, r))
	return w
}

func TestGetLevel(t *testing.T) {
	// Arrange
	f := newFixture()

	// Act
	w := f.do(http.MethodGet, "/level", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"data":{"level":"INFO"}}`, w.Body.String())
	require.NotZero(t, w.Header().Get("X-Request-Id"))
}

func TestPutLevel(t *testing.T) {
	tcs := []struct {
		name     string
		body     string
		code     int
		expected logger.Level
	}{
		{"Name", `{"level":"warn"}`, http.StatusOK, logger.LevelWarning},
		{"Padded", `{"level":"ERROR "}`, http.StatusOK, logger.LevelError},
		{"Rank", `{"level":"0"}`, http.StatusOK, logger.LevelTrace},
		{"Off", `{"level":"OFF"}`, http.StatusOK, logger.LevelOff},
		{"Unknown", `{"level":"LOUD"}`, http.StatusBadRequest, logger.LevelInfo},
		{"Out-Of-Range", `{"level":"9"}`, http.StatusBadRequest, logger.LevelInfo},
		{"Missing", `{}`, http.StatusBadRequest, logger.LevelInfo},
		{"Unknown-Field", `{"lvl":"DEBUG"}`, http.StatusBadRequest, logger.LevelInfo},
		{"Not-JSON", `level=DEBUG`, http.StatusBadRequest, logger.LevelInfo},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture()

			// Act
			w := f.do(http.MethodPut, "/level", tc.body)

			// Assert
			require.Equal(t, tc.code, w.Code, w.Body.String())
			require.Equal(t, tc.expected, f.hub.Level())
		})
	}
}

func TestGetAppenders(t *testing.T) {
	// Arrange
	f := newFixture()
	s := appender.NewStream(f.hub, 1)
	s.SetFormat("[%l] %m")

	// Act
	w := f.do(http.MethodGet, "/appenders", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	expected := fmt.Sprintf(
		`{"data":[{"id":%d,"type":"*appender.Memory","format":"%%m"},{"id":%d,"type":"*appender.Stream","format":"[%%l] %%m"}]}`,
		f.mem.ID(),
		s.ID(),
	)
	require.JSONEq(t, expected, w.Body.String())
}

func TestPutFormat(t *testing.T) {
	// Arrange
	f := newFixture()
	target := fmt.Sprintf("/appenders/%d/format", f.mem.ID())

	// Act
	w := f.do(http.MethodPut, target, `{"format":"%l|%m"}`)
	f.hub.Logger("").Warn("hi")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "%l|%m", f.mem.Format())
	require.Contains(t, f.mem.Lines(), "WARN |hi")
}

func TestPutFormat_Empty(t *testing.T) {
	// Arrange
	f := newFixture()
	target := fmt.Sprintf("/appenders/%d/format", f.mem.ID())

	// Act
	w := f.do(http.MethodPut, target, `{"format":""}`)
	f.hub.Logger("").Warn("hi")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "", f.mem.Format())
	require.Equal(t, "", f.mem.Lines()[len(f.mem.Lines())-1])
}

func TestPutFormat_Errors(t *testing.T) {
	tcs := []struct {
		name   string
		target string
		body   string
		code   int
	}{
		{"Unknown-ID", "/appenders/999/format", `{"format":"%m"}`, http.StatusNotFound},
		{"Bad-ID", "/appenders/abc/format", `{"format":"%m"}`, http.StatusNotFound},
		{"Missing-Format", "/appenders/1/format", `{}`, http.StatusBadRequest},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture()

			// Act
			w := f.do(http.MethodPut, tc.target, tc.body)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, "%m", f.mem.Format())
		})
	}
}

func TestDeleteAppender(t *testing.T) {
	// Arrange
	f := newFixture()
	target := fmt.Sprintf("/appenders/%d", f.mem.ID())

	// Act
	w := f.do(http.MethodDelete, target, "")
	again := f.do(http.MethodDelete, target, "")

	// Assert
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, http.StatusNotFound, again.Code)
	require.Empty(t, f.hub.Appenders())
	require.Equal(t, logger.NoID, f.mem.ID())
}

func TestMetrics(t *testing.T) {
	// Arrange
	f := newFixture()
	w := f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	reg := prometheus.NewRegistry()
	m := appender.NewMetrics(f.hub)
	for _, c := range m.Collectors() {
		require.Nil(t, reg.Register(c))
	}

	f.h = admin.New(f.hub, admin.WithGatherer(reg))
	f.hub.Logger("").Error("counted")

	// Act
	w = f.do(http.MethodGet, "/metrics", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "lumber_log_error_count 1")
}

func TestLogsRequests(t *testing.T) {
	// Arrange
	f := newFixture()

	// Act
	w := f.do(http.MethodPut, "/appenders/1/format", `{"format":"%m"}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, f.mem.Lines(), "192.0.2.1 PUT /appenders/1/format "+w.Header().Get("X-Request-Id"))
}

func TestTail(t *testing.T) {
	// Arrange
	hub := logger.NewHub(logger.WithLevel(logger.LevelTrace), logger.WithTimeFunc(logger.NoTime))
	stream := appender.NewStream(hub, 8)
	stream.SetFormat("%l %m")
	srv := httptest.NewServer(admin.New(hub, admin.WithStream(stream), admin.WithLogger(logger.NewHub().Logger("admin"))))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/tail?level=warn"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.Nil(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return stream.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	l := hub.Logger("")

	// Act
	l.Info("skipped")
	l.Error("boom %", 1)

	// Assert
	require.Nil(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.Nil(t, err)
	require.Equal(t, websocket.TextMessage, kind)
	require.Equal(t, "ERROR boom 1", string(msg))

	stream.Close()
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestTail_BadLevel(t *testing.T) {
	// Arrange
	hub := logger.NewHub()
	f := fixture{hub: hub, h: admin.New(hub, admin.WithStream(appender.NewStream(hub, 1)))}

	// Act
	w := f.do(http.MethodGet, "/tail?level=LOUD", "")

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccessLog(t *testing.T) {
	// Arrange
	hub := logger.NewHub(logger.WithLevel(logger.LevelInfo), logger.WithTimeFunc(logger.NoTime))
	mem := appender.NewMemory(hub, 10)
	mem.SetFormat("[%c] %m")
	h := admin.New(hub, admin.WithAccessLog(hub.Logger("access")))

	// Act
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/level", nil))

	// Assert
	lines := mem.Lines()
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "[access] "))
	require.Contains(t, lines[1], `"GET /level HTTP/1.1" 200`)
}

type recordReader struct {
	records []appender.Record
	err     error
	query   appender.RecordQuery
}

func (rr *recordReader) Records(_ context.Context, q appender.RecordQuery) ([]appender.Record, error) {
	rr.query = q
	return rr.records, rr.err
}

func (rr *recordReader) Count(context.Context, logger.Level) (int64, error) {
	return int64(len(rr.records)), rr.err
}

func TestGetRecords(t *testing.T) {
	// Arrange
	rr := &recordReader{records: []appender.Record{{Level: 4, LevelName: "ERROR", Text: "[app] boom"}}}
	f := newFixture(admin.WithRecords(rr))

	// Act
	w := f.do(http.MethodGet, "/records?level=warn&limit=5", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, appender.RecordQuery{Floor: logger.LevelWarning, Limit: 5}, rr.query)
	require.Contains(t, w.Body.String(), `"total":1`)
	require.Contains(t, w.Body.String(), `"text":"[app] boom"`)
}

func TestGetRecords_Errors(t *testing.T) {
	tcs := []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{"bad-level", "/records?level=loud", nil, http.StatusBadRequest},
		{"bad-limit", "/records?limit=-2", nil, http.StatusBadRequest},
		{"no-db", "/records", lumber.ErrMissingData, http.StatusServiceUnavailable},
		{"query-fails", "/records", lumber.ErrUnexpected, http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture(admin.WithRecords(&recordReader{err: tc.err}))

			// Act
			w := f.do(http.MethodGet, tc.target, "")

			// Assert
			require.Equal(t, tc.code, w.Code)
		})
	}
}

func TestGetRecords_NotConfigured(t *testing.T) {
	// Arrange
	f := newFixture()

	// Act
	w := f.do(http.MethodGet, "/records", "")

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}
