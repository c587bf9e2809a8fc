package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/lumber/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to the handlers of registered Routes.
type Router struct {
	everyReqStack []middleware.Adapter
	recover       middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router].
// recover wraps every handler, outermost, so a panicking handler cannot take the server down.
func New(recover middleware.Adapter) *Router {
	if recover == nil {
		recover = middleware.NoopAdapter
	}

	return &Router{recover: recover, r: mux.NewRouter()}
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(handler, r.stack()...)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(r.stack(), middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/level
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		r:             r.r.PathPrefix(prefix).Subrouter(),
		recover:       r.recover,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
	}
}

// stack returns a fresh copy of the middlewares applied to every request, recover first.
func (r *Router) stack() []middleware.Adapter {
	mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+1)
	mws = append(mws, r.recover)
	return append(mws, r.everyReqStack...)
}
