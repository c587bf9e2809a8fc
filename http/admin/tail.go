package admin

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xy-planning-network/lumber/logger"
)

const writeWait = 10 * time.Second

// tail upgrades the request to a websocket
// and writes each message the Stream receives as a text frame.
// The optional query param "level" skips messages below that Level.
func (h *Handler) tail(w http.ResponseWriter, r *http.Request) {
	floor := logger.LevelTrace
	if q := r.URL.Query().Get("level"); q != "" {
		l, err := logger.ParseLevel(q)
		if err != nil {
			h.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		floor = l
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// NOTE: Upgrade has already responded to the client.
		h.log.Debug("failed upgrading tail: %", err)
		return
	}
	defer conn.Close()

	lines, cancel := h.stream.Subscribe()
	defer cancel()

	// NOTE: reading is the only way to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return

		case line, ok := <-lines:
			if !ok {
				_ = conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait),
				)
				return
			}

			if line.Level < floor {
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line.Text)); err != nil {
				return
			}
		}
	}
}
