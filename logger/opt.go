package logger

// A HubOptFn is a functional option configuring a Hub when constructing a new one.
type HubOptFn func(*Hub)

// WithLevel sets the minimum Level of the Hub.
// An invalid Level is ignored.
func WithLevel(level Level) HubOptFn {
	return func(h *Hub) {
		if level.Valid() == nil {
			h.level = int32(level)
		}
	}
}

// WithTailPolicy sets the TailPolicy the Hub builds messages with.
func WithTailPolicy(policy TailPolicy) HubOptFn {
	return func(h *Hub) {
		h.tail = policy
	}
}

// WithTimeFunc sets the TimeFunc of the Hub.
func WithTimeFunc(fn TimeFunc) HubOptFn {
	return func(h *Hub) {
		h.SetTimeFunc(fn)
	}
}
