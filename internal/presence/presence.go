package presence

import (
	"math/rand"
	"sync"
	"time"

	"whiteboard/internal/models"
)

// Palette is the fixed set of colors handed out to joining connections.
// Assignment is uniform random with no uniqueness guarantee; collisions
// between members of the same room are cosmetic only.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8",
}

// Tracker maps each live connection to its current room and assigned color.
type Tracker struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	pick     func(n int) int
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]models.Session),
		pick:     rand.Intn,
		now:      time.Now,
	}
}

// SetPickHook replaces the random palette index chooser (used in tests).
func (t *Tracker) SetPickHook(fn func(n int) int) {
	t.mu.Lock()
	t.pick = fn
	t.mu.Unlock()
}

// Attach records connID as bound to roomKey, assigns a color and returns the
// member record to be placed into that room. A second Attach for the same
// connection rebinds it to the new room.
func (t *Tracker) Attach(connID, roomKey string) models.Member {
	t.mu.Lock()
	defer t.mu.Unlock()
	color := Palette[t.pick(len(Palette))]
	t.sessions[connID] = models.Session{ConnID: connID, RoomKey: roomKey, Color: color}
	return models.Member{ID: connID, Color: color, JoinedAt: t.now()}
}

// Lookup returns the session for connID, if one exists.
func (t *Tracker) Lookup(connID string) (models.Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sessions[connID]
	return s, ok
}

// Detach removes the connection's session. Idempotent.
func (t *Tracker) Detach(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, connID)
}
