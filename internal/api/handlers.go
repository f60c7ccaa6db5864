package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"whiteboard/internal/models"
	"whiteboard/internal/session"
	"whiteboard/internal/store"
	"whiteboard/internal/validate"
)

type Handlers struct {
	log             *zap.Logger
	coord           *session.Coordinator
	store           *store.RoomStore
	upgrader        websocket.Upgrader
	maxMessageBytes int64
}

func NewHandlers(log *zap.Logger, coord *session.Coordinator, st *store.RoomStore, maxMessageBytes int64) *Handlers {
	return &Handlers{
		log:             log,
		coord:           coord,
		store:           st,
		upgrader:        websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		maxMessageBytes: maxMessageBytes,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// RoomStatus reports a room's member list and stroke count. Unknown keys are
// materialized as empty rooms rather than treated as errors.
func (h *Handlers) RoomStatus(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "roomKey")
	if !validate.RoomKey(key) {
		http.Error(w, "invalid room key", http.StatusBadRequest)
		return
	}
	writeJSON(w, models.RoomStatus{
		RoomKey:     key,
		MemberCount: h.store.MemberCount(key),
		Members:     h.store.Members(key),
		StrokeCount: h.store.StrokeCount(key),
	})
}

// BoardWS upgrades the connection and pumps inbound frames into the
// coordinator until the transport closes. A frame that is not valid JSON gets
// an error reply; only a transport-level read error ends the session.
func (h *Handlers) BoardWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxMessageBytes)

	connID := uuid.NewString()
	client := session.NewClient(connID, conn)
	h.coord.Connect(client)
	defer h.coord.Disconnect(connID)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame models.InboundFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			client.Send(models.WSFrame{Type: models.EvtError, Data: "Malformed message"})
			continue
		}
		h.coord.Dispatch(connID, frame)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
