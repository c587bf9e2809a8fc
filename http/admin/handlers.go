package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
)

type levelPayload struct {
	Level *logger.Level `json:"level"`
}

type appenderPayload struct {
	ID     logger.ID `json:"id"`
	Type   string    `json:"type"`
	Format string    `json:"format"`
}

type formatPayload struct {
	Format *string `json:"format"`
}

type recordsPayload struct {
	Total   int64             `json:"total"`
	Records []appender.Record `json:"records"`
}

func newAppenderPayload(id logger.ID, a logger.Appender) appenderPayload {
	return appenderPayload{ID: id, Type: fmt.Sprintf("%T", a), Format: a.Format()}
}

func (h *Handler) getLevel(w http.ResponseWriter, _ *http.Request) {
	level := h.hub.Level()
	h.respond(w, http.StatusOK, levelPayload{Level: &level})
}

func (h *Handler) putLevel(w http.ResponseWriter, r *http.Request) {
	var body levelPayload
	if err := decode(r, &body); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if body.Level == nil {
		h.fail(w, http.StatusBadRequest, "level is required")
		return
	}

	if err := h.hub.SetLevel(*body.Level); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Info("level set to %", *body.Level)
	h.getLevel(w, r)
}

func (h *Handler) getAppenders(w http.ResponseWriter, _ *http.Request) {
	registered := h.hub.Appenders()
	data := make([]appenderPayload, len(registered))
	for i, reg := range registered {
		data[i] = newAppenderPayload(reg.ID, reg.Appender)
	}

	h.respond(w, http.StatusOK, data)
}

func (h *Handler) putFormat(w http.ResponseWriter, r *http.Request) {
	id, a, ok := h.appender(w, r)
	if !ok {
		return
	}

	var body formatPayload
	if err := decode(r, &body); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if body.Format == nil {
		h.fail(w, http.StatusBadRequest, "format is required")
		return
	}

	a.SetFormat(*body.Format)
	h.respond(w, http.StatusOK, newAppenderPayload(id, a))
}

func (h *Handler) deleteAppender(w http.ResponseWriter, r *http.Request) {
	id, a, ok := h.appender(w, r)
	if !ok {
		return
	}

	// NOTE: Unregister keeps an Appender embedding logger.Base in step with the Hub.
	if u, ok := a.(interface{ Unregister() }); ok {
		u.Unregister()
	} else {
		h.hub.RemoveAppender(id)
	}

	h.log.Info("removed appender %", id)
	w.WriteHeader(http.StatusNoContent)
}

// appender looks up the Appender named by the request's id,
// responding with 404 Not Found when there is none.
func (h *Handler) appender(w http.ResponseWriter, r *http.Request) (logger.ID, logger.Appender, bool) {
	n, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.fail(w, http.StatusNotFound, "no such appender")
		return logger.NoID, nil, false
	}

	id := logger.ID(n)
	a, ok := h.hub.Appender(id)
	if !ok {
		h.fail(w, http.StatusNotFound, fmt.Sprintf("no such appender: %d", id))
		return logger.NoID, nil, false
	}

	return id, a, true
}

// getRecords responds with the newest persisted Records.
// The optional query params "level" and "limit" set the RecordQuery's Floor and Limit.
func (h *Handler) getRecords(w http.ResponseWriter, r *http.Request) {
	var q appender.RecordQuery
	if s := r.URL.Query().Get("level"); s != "" {
		l, err := logger.ParseLevel(s)
		if err != nil {
			h.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		q.Floor = l
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			h.fail(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		q.Limit = n
	}

	records, err := h.records.Records(r.Context(), q)
	if err != nil {
		h.recordsFailed(w, err)
		return
	}

	total, err := h.records.Count(r.Context(), q.Floor)
	if err != nil {
		h.recordsFailed(w, err)
		return
	}

	h.respond(w, http.StatusOK, recordsPayload{Total: total, Records: records})
}

func (h *Handler) recordsFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, lumber.ErrMissingData) {
		h.fail(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	h.log.Error("failed reading records: %", err)
	h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
