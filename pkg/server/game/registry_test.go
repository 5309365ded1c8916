package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateDuplicate(t *testing.T) {
	registry, _, _ := setupRoom(t, "R1", "A")

	_, err := registry.Create("R1", "B", "B")
	assert.ErrorIs(t, err, ErrRoomExists)
}

func TestRegistry_JoinUnknownRoom(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := NewRegistry(notifier)

	_, err := registry.Join("nowhere", "A", "A")
	assert.ErrorIs(t, err, ErrNoSuchRoom)
}

func TestRegistry_JoinAllowedMidGame(t *testing.T) {
	registry, room, _ := setupRoom(t, "R1", "A", "B")

	advanceToPlaying(t, room)
	_, err := registry.Join("R1", "C", "C")
	require.NoError(t, err)

	snap := room.State()
	player, exists := snap.Players["C"]
	require.True(t, exists)
	assert.Zero(t, player.Points)
	assert.Zero(t, player.X)
	assert.Zero(t, player.Y)
}

func TestRegistry_LeaveTransfersHost(t *testing.T) {
	registry, room, notifier := setupRoom(t, "R1", "A", "B", "C")

	registry.Leave("R1", "A")

	snap := room.State()
	assert.Equal(t, "B", snap.Host, "host moves to the earliest-joined remaining player")
	assert.NotContains(t, snap.Players, "A")

	hostEvents := notifier.byEvent("newHost")
	require.Len(t, hostEvents, 1)
	assert.Equal(t, map[string]string{"hostId": "B"}, hostEvents[0].data)
}

func TestRegistry_LeaveLastPlayerRemovesRoom(t *testing.T) {
	registry, _, _ := setupRoom(t, "R1", "A", "B")

	registry.Leave("R1", "A")
	registry.Leave("R1", "B")

	_, exists := registry.Get("R1")
	assert.False(t, exists)
	assert.Zero(t, registry.Stats().TotalRooms)
}

func TestRegistry_DisconnectAnnouncesDeparture(t *testing.T) {
	registry, room, notifier := setupRoom(t, "R1", "A", "B")

	affected := registry.Disconnect("A")
	assert.Equal(t, []string{"R1"}, affected)

	left := notifier.byEvent("playerLeft")
	require.Len(t, left, 1)
	assert.Equal(t, map[string]string{"id": "A"}, left[0].data)

	snap := room.State()
	assert.Equal(t, "B", snap.Host)
}

func TestRegistry_DisconnectUnknownConnection(t *testing.T) {
	registry, _, notifier := setupRoom(t, "R1", "A")

	before := notifier.count("playerLeft")
	affected := registry.Disconnect("stranger")
	assert.Empty(t, affected)
	assert.Equal(t, before, notifier.count("playerLeft"))
}

func TestRegistry_TeardownCancelsTimers(t *testing.T) {
	registry, room, notifier := setupRoom(t, "R1", "A", "B")

	room.roundDuration = 30 * time.Millisecond
	advanceToPlaying(t, room)

	registry.Disconnect("A")
	registry.Disconnect("B")
	_, exists := registry.Get("R1")
	require.False(t, exists)

	rounds := notifier.count("roundEnd")
	projectiles := notifier.count("projectilesUpdate")

	// Neither the round timer nor the simulation loop may fire against
	// the deleted room.
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, rounds, notifier.count("roundEnd"))
	assert.Equal(t, projectiles, notifier.count("projectilesUpdate"))
}

func TestRegistry_Stats(t *testing.T) {
	registry, room, _ := setupRoom(t, "R1", "A", "B")
	_, err := registry.Create("R2", "C", "C")
	require.NoError(t, err)

	advanceToBuilding(t, room)
	_, err = room.PlaceObstacle("A", ObstacleSpec{Type: ObstacleSpike, X: 100, Y: 100, Width: 40, Height: 40})
	require.NoError(t, err)

	stats := registry.Stats()
	assert.Equal(t, 2, stats.TotalRooms)
	assert.Equal(t, 3, stats.TotalPlayers)
	require.Len(t, stats.Rooms, 2)

	assert.Equal(t, "R1", stats.Rooms[0].ID)
	assert.Equal(t, 2, stats.Rooms[0].PlayerCount)
	assert.Equal(t, PhaseBuilding, stats.Rooms[0].Phase)
	assert.Equal(t, "Blazing Volcano", stats.Rooms[0].Scenario)
	assert.Equal(t, 1, stats.Rooms[0].ObstacleCount)

	assert.Equal(t, "R2", stats.Rooms[1].ID)
	assert.Equal(t, "none", stats.Rooms[1].Scenario)
}
