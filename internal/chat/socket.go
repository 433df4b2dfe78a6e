package chat

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SocketHandler streams a channel's live view over a websocket: the stored
// history first, then every append as it happens. The channel is closed when
// the socket goes away.
type SocketHandler struct {
	svc    Service
	logger *zap.Logger
}

func NewSocketHandler(svc Service, logger *zap.Logger) *SocketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SocketHandler{svc: svc, logger: logger}
}

func (h *SocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ch, err := h.svc.Open(r.Context(), sess, r.PathValue("partner_id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer ch.Close()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reader only watches for the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// An append can land between the snapshot and the updates loop and show
	// up in both; sent tracks what already went over the wire.
	sent := make(map[string]struct{})
	for _, m := range ch.Messages() {
		sent[m.ID] = struct{}{}
		if err := writeJSON(conn, toMessageData(m)); err != nil {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case m, ok := <-ch.Updates():
			if !ok {
				return
			}
			if _, dup := sent[m.ID]; dup {
				continue
			}
			sent[m.ID] = struct{}{}
			if err := writeJSON(conn, toMessageData(m)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
