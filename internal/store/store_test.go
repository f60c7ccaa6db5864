package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whiteboard/internal/models"
)

func stroke(x float64) models.Stroke {
	return models.Stroke{X0: x, Y0: 0, X1: x + 1, Y1: 1, Color: "#000000", Size: 2, Tool: models.ToolPen}
}

func TestGetOrCreateIsLazyAndIdempotent(t *testing.T) {
	s := NewRoomStore()
	assert.Equal(t, 0, s.RoomCount())

	s.GetOrCreate("general")
	s.GetOrCreate("general")
	assert.Equal(t, 1, s.RoomCount())

	// Reading an unknown room materializes it empty rather than failing.
	assert.Empty(t, s.Snapshot("fresh"))
	assert.Equal(t, 2, s.RoomCount())
}

func TestAppendAndSnapshotPreserveOrder(t *testing.T) {
	s := NewRoomStore()
	for i := 0; i < 5; i++ {
		s.AppendStroke("r", stroke(float64(i)))
	}

	snap := s.Snapshot("r")
	require.Len(t, snap, 5)
	for i, st := range snap {
		assert.Equal(t, float64(i), st.X0)
	}
	assert.Equal(t, 5, s.StrokeCount("r"))
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewRoomStore()
	s.AppendStroke("r", stroke(1))

	snap := s.Snapshot("r")
	snap[0].X0 = 99

	assert.Equal(t, float64(1), s.Snapshot("r")[0].X0)
}

func TestClearResetsLogButKeepsMembers(t *testing.T) {
	s := NewRoomStore()
	s.AppendStroke("r", stroke(1))
	s.AddMember("r", models.Member{ID: "a", Color: "#FF6B6B", JoinedAt: time.Now()})

	s.Clear("r")

	assert.Empty(t, s.Snapshot("r"))
	assert.Equal(t, 1, s.MemberCount("r"))
}

func TestMembershipMutation(t *testing.T) {
	s := NewRoomStore()
	now := time.Now()
	s.AddMember("r", models.Member{ID: "b", Color: "#4ECDC4", JoinedAt: now.Add(time.Second)})
	s.AddMember("r", models.Member{ID: "a", Color: "#FF6B6B", JoinedAt: now})
	require.Equal(t, 2, s.MemberCount("r"))

	members := s.Members("r")
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].ID, "members should be ordered by join time")
	assert.Equal(t, "b", members[1].ID)

	s.RemoveMember("r", "a")
	s.RemoveMember("r", "a") // duplicate disconnect signal is a no-op
	assert.Equal(t, 1, s.MemberCount("r"))
	assert.Equal(t, "b", s.Members("r")[0].ID)
}

func TestRoomsAreIndependent(t *testing.T) {
	s := NewRoomStore()
	s.AppendStroke("one", stroke(1))
	s.AddMember("one", models.Member{ID: "a", JoinedAt: time.Now()})

	assert.Empty(t, s.Snapshot("two"))
	assert.Equal(t, 0, s.MemberCount("two"))

	s.Clear("two")
	assert.Len(t, s.Snapshot("one"), 1)
}
