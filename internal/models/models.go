package models

import (
	"encoding/json"
	"time"
)

// Tool identifies the drawing instrument of a stroke.
type Tool string

const (
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
)

// Canvas coordinate bounds accepted from clients, shared with the browser canvas.
const (
	CanvasMin = 0
	CanvasMax = 5000
)

// Stroke is one recorded line segment plus its rendering attributes.
// Immutable once appended to a room's stroke log.
type Stroke struct {
	X0    float64 `json:"x0" validate:"gte=0,lte=5000"`
	Y0    float64 `json:"y0" validate:"gte=0,lte=5000"`
	X1    float64 `json:"x1" validate:"gte=0,lte=5000"`
	Y1    float64 `json:"y1" validate:"gte=0,lte=5000"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
	Tool  Tool    `json:"tool"`
}

// Cursor is an ephemeral pointer position. Never stored, only relayed.
type Cursor struct {
	X float64 `json:"x" validate:"gte=0,lte=5000"`
	Y float64 `json:"y" validate:"gte=0,lte=5000"`
}

// CursorUpdate is a relayed cursor position with the sender's identity and
// color attached so peers can render a labeled remote cursor.
type CursorUpdate struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	UserID string  `json:"userId"`
	Color  string  `json:"color"`
}

// Member is a connection's participation record within a room.
type Member struct {
	ID       string    `json:"id"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session records which room a live connection is currently bound to.
// It is the single source of truth for relay targeting; room keys carried in
// drawing or cursor payloads are never trusted.
type Session struct {
	ConnID  string
	RoomKey string
	Color   string
}

// RoomJoined confirms a successful join back to the joining connection.
type RoomJoined struct {
	RoomKey string `json:"roomKey"`
	Member  Member `json:"member"`
}

// RoomStatus is the REST view of a room.
type RoomStatus struct {
	RoomKey     string   `json:"roomKey"`
	MemberCount int      `json:"memberCount"`
	Members     []Member `json:"members"`
	StrokeCount int      `json:"strokeCount"`
}

// WSFrame is the outbound wire envelope.
type WSFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// InboundFrame defers payload decoding until the event type is known.
type InboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Wire event names shared with the browser client.
const (
	EvtJoinRoom    = "join-room"
	EvtLoadDrawing = "load-drawing"
	EvtRoomJoined  = "room-joined"
	EvtUserCount   = "user-count"
	EvtUsersUpdate = "users-update"
	EvtDrawing     = "drawing"
	EvtClearCanvas = "clear-canvas"
	EvtCursorMove  = "cursor-move"
	EvtCursorLeave = "cursor-leave"
	EvtError       = "error"
)
