package session

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"whiteboard/internal/metrics"
	"whiteboard/internal/models"
	"whiteboard/internal/presence"
	"whiteboard/internal/store"
	"whiteboard/internal/validate"
)

// Rejection reasons sent back to the offending connection.
const (
	reasonBadRoomKey = "Invalid room ID"
	reasonBadStroke  = "Invalid drawing data"
	reasonBadCursor  = "Invalid cursor data"
	reasonBadEvent   = "Unknown event type"
)

// Coordinator is the per-connection protocol state machine. Each inbound
// event is handled as one atomic step under the coordinator lock, so a join's
// snapshot read can never interleave with a concurrent stroke's
// append-then-broadcast. Malformed input is reported to the sender only and
// never mutates state.
type Coordinator struct {
	mu       sync.Mutex
	store    *store.RoomStore
	presence *presence.Tracker
	clients  map[string]*Client
	log      *zap.Logger
}

func NewCoordinator(st *store.RoomStore, pr *presence.Tracker, log *zap.Logger) *Coordinator {
	return &Coordinator{
		store:    st,
		presence: pr,
		clients:  make(map[string]*Client),
		log:      log,
	}
}

// Connect registers a freshly established connection in the Unbound state.
func (co *Coordinator) Connect(c *Client) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.clients[c.ID] = c
	metrics.ActiveConnections.Inc()
	co.log.Info("connection established", zap.String("conn_id", c.ID))
}

// Dispatch routes one decoded inbound frame to its transition.
func (co *Coordinator) Dispatch(connID string, frame models.InboundFrame) {
	switch frame.Type {
	case models.EvtJoinRoom:
		co.Join(connID, frame.Data)
	case models.EvtDrawing:
		co.Stroke(connID, frame.Data)
	case models.EvtClearCanvas:
		co.Clear(connID)
	case models.EvtCursorMove:
		co.CursorMove(connID, frame.Data)
	default:
		co.mu.Lock()
		// Label with a fixed name; client-supplied types are unbounded.
		co.reject(connID, "unknown", reasonBadEvent)
		co.mu.Unlock()
	}
}

// Join binds the connection to the requested room. If it was bound elsewhere,
// the old room is left first and its remaining members are notified. The
// joiner receives the full stroke snapshot before any count/list broadcast so
// its local state is primed before live relay traffic for the room arrives.
func (co *Coordinator) Join(connID string, raw json.RawMessage) {
	co.mu.Lock()
	defer co.mu.Unlock()

	var key string
	if err := json.Unmarshal(raw, &key); err != nil || !validate.RoomKey(key) {
		co.reject(connID, models.EvtJoinRoom, reasonBadRoomKey)
		return
	}

	if prev, ok := co.presence.Lookup(connID); ok && prev.RoomKey != "" {
		co.store.RemoveMember(prev.RoomKey, connID)
		co.broadcast(prev.RoomKey, models.WSFrame{Type: models.EvtUserCount, Data: co.store.MemberCount(prev.RoomKey)}, "")
		co.broadcast(prev.RoomKey, models.WSFrame{Type: models.EvtUsersUpdate, Data: co.store.Members(prev.RoomKey)}, "")
	}

	co.store.GetOrCreate(key)
	member := co.presence.Attach(connID, key)
	co.store.AddMember(key, member)
	metrics.ActiveRooms.Set(float64(co.store.RoomCount()))

	co.send(connID, models.WSFrame{Type: models.EvtLoadDrawing, Data: co.store.Snapshot(key)})
	co.broadcast(key, models.WSFrame{Type: models.EvtUserCount, Data: co.store.MemberCount(key)}, "")
	co.broadcast(key, models.WSFrame{Type: models.EvtUsersUpdate, Data: co.store.Members(key)}, "")
	co.send(connID, models.WSFrame{Type: models.EvtRoomJoined, Data: models.RoomJoined{RoomKey: key, Member: member}})

	co.log.Info("joined room", zap.String("conn_id", connID), zap.String("room", key))
}

// Stroke validates and records a stroke, then relays it to every other member
// of the bound room. The append happens before the broadcast, which keeps a
// late joiner's snapshot consistent with the live stream. From an unbound
// connection the event is silently dropped.
func (co *Coordinator) Stroke(connID string, raw json.RawMessage) {
	co.mu.Lock()
	defer co.mu.Unlock()

	var stroke models.Stroke
	if err := json.Unmarshal(raw, &stroke); err != nil || !validate.Stroke(stroke) {
		co.reject(connID, models.EvtDrawing, reasonBadStroke)
		return
	}

	ses, ok := co.presence.Lookup(connID)
	if !ok || ses.RoomKey == "" {
		return
	}

	co.store.AppendStroke(ses.RoomKey, stroke)
	co.broadcast(ses.RoomKey, models.WSFrame{Type: models.EvtDrawing, Data: stroke}, connID)
	metrics.StrokesRelayed.Inc()
}

// Clear wipes the bound room's stroke log and tells every member, the sender
// included, to reset its canvas.
func (co *Coordinator) Clear(connID string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	ses, ok := co.presence.Lookup(connID)
	if !ok || ses.RoomKey == "" {
		return
	}

	co.store.Clear(ses.RoomKey)
	co.broadcast(ses.RoomKey, models.WSFrame{Type: models.EvtClearCanvas}, "")
	co.log.Info("canvas cleared", zap.String("conn_id", connID), zap.String("room", ses.RoomKey))
}

// CursorMove relays a cursor position to the other members of the bound room
// with the sender's identity and color attached. Positions are never stored.
func (co *Coordinator) CursorMove(connID string, raw json.RawMessage) {
	co.mu.Lock()
	defer co.mu.Unlock()

	var cur models.Cursor
	if err := json.Unmarshal(raw, &cur); err != nil || !validate.Cursor(cur) {
		co.reject(connID, models.EvtCursorMove, reasonBadCursor)
		return
	}

	ses, ok := co.presence.Lookup(connID)
	if !ok || ses.RoomKey == "" {
		return
	}

	update := models.CursorUpdate{X: cur.X, Y: cur.Y, UserID: connID, Color: ses.Color}
	co.broadcast(ses.RoomKey, models.WSFrame{Type: models.EvtCursorMove, Data: update}, connID)
}

// Disconnect removes the connection from its room, notifies the remaining
// members and destroys the session. Safe to call more than once.
func (co *Coordinator) Disconnect(connID string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if _, registered := co.clients[connID]; !registered {
		return
	}
	delete(co.clients, connID)
	metrics.ActiveConnections.Dec()

	if ses, ok := co.presence.Lookup(connID); ok && ses.RoomKey != "" {
		co.store.RemoveMember(ses.RoomKey, connID)
		co.broadcast(ses.RoomKey, models.WSFrame{Type: models.EvtUserCount, Data: co.store.MemberCount(ses.RoomKey)}, "")
		co.broadcast(ses.RoomKey, models.WSFrame{Type: models.EvtUsersUpdate, Data: co.store.Members(ses.RoomKey)}, "")
		co.broadcast(ses.RoomKey, models.WSFrame{Type: models.EvtCursorLeave, Data: connID}, "")
	}
	co.presence.Detach(connID)
	co.log.Info("connection closed", zap.String("conn_id", connID))
}

// send unicasts a frame to one connection. Missing clients are ignored;
// delivery is best-effort.
func (co *Coordinator) send(connID string, frame models.WSFrame) {
	if c, ok := co.clients[connID]; ok {
		c.Send(frame)
	}
}

// broadcast delivers a frame to every member of the room, optionally skipping
// one connection ID.
func (co *Coordinator) broadcast(roomKey string, frame models.WSFrame, exclude string) {
	for _, m := range co.store.Members(roomKey) {
		if m.ID == exclude {
			continue
		}
		co.send(m.ID, frame)
	}
}

// reject reports a malformed event back to its originator only.
func (co *Coordinator) reject(connID, event, reason string) {
	metrics.EventsRejected.WithLabelValues(event).Inc()
	co.send(connID, models.WSFrame{Type: models.EvtError, Data: reason})
	co.log.Warn("event rejected",
		zap.String("conn_id", connID),
		zap.String("event", event),
		zap.String("reason", reason))
}
