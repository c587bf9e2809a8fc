package admin

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/http/middleware"
	"github.com/xy-planning-network/lumber/http/router"
	"github.com/xy-planning-network/lumber/logger"
)

// A RecordReader reads back persisted Records; *appender.Store is one.
type RecordReader interface {
	Records(ctx context.Context, q appender.RecordQuery) ([]appender.Record, error)
	Count(ctx context.Context, floor logger.Level) (int64, error)
}

// A Handler serves the admin API for a Hub.
type Handler struct {
	hub      *logger.Hub
	log      *logger.Logger
	access   *logger.Logger
	stream   *appender.Stream
	records  RecordReader
	gatherer prometheus.Gatherer
	visitors *middleware.Visitors
	cors     string
	upgrader websocket.Upgrader
	router   *router.Router
}

// An OptFn configures a *Handler.
type OptFn func(*Handler)

// WithAccessLog writes an Apache Combined Log Format line per request through l.
func WithAccessLog(l *logger.Logger) OptFn {
	return func(h *Handler) { h.access = l }
}

// WithCORS allows cross-origin requests from base.
func WithCORS(base string) OptFn {
	return func(h *Handler) { h.cors = base }
}

// WithGatherer serves metrics from g at GET /metrics.
func WithGatherer(g prometheus.Gatherer) OptFn {
	return func(h *Handler) { h.gatherer = g }
}

// WithLogger logs requests and failures with l; default: a Logger on the Hub with the context "admin".
func WithLogger(l *logger.Logger) OptFn {
	return func(h *Handler) { h.log = l }
}

// WithRecords serves persisted Records from rr at GET /records.
func WithRecords(rr RecordReader) OptFn {
	return func(h *Handler) { h.records = rr }
}

// WithStream serves messages from s over a websocket at GET /tail.
func WithStream(s *appender.Stream) OptFn {
	return func(h *Handler) { h.stream = s }
}

// WithVisitors rate limits requests per IP address with vs.
func WithVisitors(vs *middleware.Visitors) OptFn {
	return func(h *Handler) { h.visitors = vs }
}

// New constructs a *Handler serving the admin API for hub.
func New(hub *logger.Hub, opts ...OptFn) *Handler {
	h := &Handler{hub: hub}
	for _, opt := range opts {
		opt(h)
	}

	if h.log == nil {
		h.log = hub.Logger("admin")
	}

	h.router = router.New(middleware.Recover(h.log))
	if h.visitors != nil {
		h.router.OnEveryRequest(middleware.RateLimit(h.visitors))
	}

	h.router.OnEveryRequest(
		middleware.CORS(h.cors),
		middleware.InjectClientIP(),
		middleware.RequestID(),
		middleware.LogRequest(h.log),
	)

	if h.access != nil {
		h.router.OnEveryRequest(middleware.AccessLog(h.access))
	}

	routes := []router.Route{
		{Path: "/level", Method: http.MethodGet, Handler: h.getLevel},
		{Path: "/level", Method: http.MethodPut, Handler: h.putLevel},
		{Path: "/appenders", Method: http.MethodGet, Handler: h.getAppenders},
		{Path: "/appenders/{id:[0-9]+}/format", Method: http.MethodPut, Handler: h.putFormat},
		{Path: "/appenders/{id:[0-9]+}", Method: http.MethodDelete, Handler: h.deleteAppender},
	}

	if h.gatherer != nil {
		metrics := promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
		routes = append(routes, router.Route{Path: "/metrics", Method: http.MethodGet, Handler: metrics.ServeHTTP})
	}

	if h.records != nil {
		routes = append(routes, router.Route{Path: "/records", Method: http.MethodGet, Handler: h.getRecords})
	}

	if h.stream != nil {
		routes = append(routes, router.Route{Path: "/tail", Method: http.MethodGet, Handler: h.tail})
	}

	h.router.HandleRoutes(routes)
	h.router.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		h.fail(w, http.StatusNotFound, "no such resource: "+r.URL.Path)
	})

	return h
}

// ServeHTTP responds to an HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}
