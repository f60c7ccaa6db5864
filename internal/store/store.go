package store

import (
	"sort"
	"sync"

	"github.com/samber/lo"

	"whiteboard/internal/models"
)

// room holds the authoritative state for one room key: the append-only stroke
// log and the current member set. Rooms are materialized lazily on first
// reference and are never destroyed.
type room struct {
	mu      sync.Mutex
	strokes []models.Stroke
	members map[string]models.Member
}

func newRoom() *room {
	return &room{members: make(map[string]models.Member)}
}

// RoomStore owns all per-room drawing state. All mutation goes through its
// methods; no caller ever touches a room's internals directly.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*room)}
}

// GetOrCreate materializes the room for key if it does not exist yet.
// Idempotent; never fails for a syntactically valid key.
func (s *RoomStore) GetOrCreate(key string) {
	s.getOrCreate(key)
}

func (s *RoomStore) getOrCreate(key string) *room {
	s.mu.RLock()
	r, ok := s.rooms[key]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[key]; ok {
		return r
	}
	r = newRoom()
	s.rooms[key] = r
	return r
}

// AppendStroke records a stroke at the end of the room's log.
func (s *RoomStore) AppendStroke(key string, stroke models.Stroke) {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokes = append(r.strokes, stroke)
}

// Clear resets the room's stroke log. Membership is unaffected.
func (s *RoomStore) Clear(key string) {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokes = nil
}

// AddMember places a member record into the room's member set.
func (s *RoomStore) AddMember(key string, m models.Member) {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = m
}

// RemoveMember deletes the member with the given connection ID.
// A no-op if the member is absent, so duplicate disconnect signals are safe.
func (s *RoomStore) RemoveMember(key, connID string) {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, connID)
}

// MemberCount returns the number of members currently in the room.
func (s *RoomStore) MemberCount(key string) int {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Snapshot returns a copy of the room's full ordered stroke log, used to
// prime late joiners before live relay traffic resumes.
func (s *RoomStore) Snapshot(key string) []models.Stroke {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Stroke, len(r.strokes))
	copy(out, r.strokes)
	return out
}

// StrokeCount returns the length of the room's stroke log.
func (s *RoomStore) StrokeCount(key string) int {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.strokes)
}

// Members returns the room's member records ordered by join time.
func (s *RoomStore) Members(key string) []models.Member {
	r := s.getOrCreate(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	members := lo.Values(r.members)
	sort.Slice(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].ID < members[j].ID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members
}

// RoomCount returns the number of rooms materialized so far.
func (s *RoomStore) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
