package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
)

type jsonSchema struct {
	D   any    `json:"data,omitempty"`
	Err string `json:"error,omitempty"`
}

// respond writes data as JSON under "data" with code.
func (h *Handler) respond(w http.ResponseWriter, code int, data any) {
	h.write(w, code, jsonSchema{D: data})
}

// fail writes msg as JSON under "error" with code.
func (h *Handler) fail(w http.ResponseWriter, code int, msg string) {
	h.write(w, code, jsonSchema{Err: msg})
}

func (h *Handler) write(w http.ResponseWriter, code int, payload jsonSchema) {
	b := new(bytes.Buffer)
	if err := json.NewEncoder(b).Encode(payload); err != nil {
		h.log.Error("failed encoding response: %", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := b.WriteTo(w); err != nil {
		h.log.Warn("failed writing response: %", err)
	}
}

// decode reads the JSON request body into v.
func decode(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
