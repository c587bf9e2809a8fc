package middleware

// A ctxKey is the type of every key middlewares store values under in a request's context.
type ctxKey string

const (
	// ClientIPKey holds the ClientIP of the request, as a string.
	ClientIPKey ctxKey = "lumber.client-ip"

	// RequestIDKey holds a uuid identifying the request, as a string.
	RequestIDKey ctxKey = "lumber.request-id"
)

// String formats the key for debugging.
func (k ctxKey) String() string { return "middleware context key " + string(k) }
