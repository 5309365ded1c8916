package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueRand feeds predetermined values to the room's random source.
func queueRand(room *Room, values ...float64) {
	i := 0
	room.randFloat = func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestStepProjectiles_AdvancesAndCulls(t *testing.T) {
	_, room, notifier := setupRoom(t, "R1", "A")

	room.mu.Lock()
	room.Phase = PhasePlaying
	room.projectiles = []*Projectile{
		{ID: "p1", X: 100, Y: 50, Width: 20, Height: 5, Dir: 1, Type: "arrow"},
		{ID: "p2", X: 1998, Y: 50, Width: 20, Height: 5, Dir: 1, Type: "arrow"},
		{ID: "p3", X: 3, Y: 50, Width: 20, Height: 5, Dir: -1, Type: "arrow"},
	}
	room.mu.Unlock()
	queueRand(room, 0.99) // no crossbow spawns

	room.stepProjectiles()

	updates := notifier.byEvent("projectilesUpdate")
	require.Len(t, updates, 1)
	projectiles := updates[0].data.([]Projectile)
	require.Len(t, projectiles, 1, "projectiles leaving the bound are dropped")
	assert.Equal(t, "p1", projectiles[0].ID)
	assert.Equal(t, 105.0, projectiles[0].X)
}

func TestStepProjectiles_CrossbowSpawn(t *testing.T) {
	_, room, notifier := setupRoom(t, "R1", "A")

	room.mu.Lock()
	room.Phase = PhasePlaying
	room.obstacles = []*Obstacle{
		{ID: "o1", OwnerID: "A", Type: ObstacleCrossbow, X: 100, Y: 100, Width: 40, Height: 20},
	}
	room.mu.Unlock()
	// First draw decides the spawn (0.05 < 0.1), second the direction
	// (0.9 > 0.5 means rightward).
	queueRand(room, 0.05, 0.9)

	room.stepProjectiles()

	updates := notifier.byEvent("projectilesUpdate")
	require.Len(t, updates, 1)
	projectiles := updates[0].data.([]Projectile)
	require.Len(t, projectiles, 1)

	arrow := projectiles[0]
	assert.Equal(t, "arrow", arrow.Type)
	assert.Equal(t, 120.0, arrow.X, "spawned at the crossbow center")
	assert.Equal(t, 110.0, arrow.Y)
	assert.Equal(t, 20.0, arrow.Width)
	assert.Equal(t, 5.0, arrow.Height)
	assert.Equal(t, 1.0, arrow.Dir)
}

func TestStepProjectiles_NoSpawnAboveChance(t *testing.T) {
	_, room, notifier := setupRoom(t, "R1", "A")

	room.mu.Lock()
	room.Phase = PhasePlaying
	room.obstacles = []*Obstacle{
		{ID: "o1", OwnerID: "A", Type: ObstacleCrossbow, X: 100, Y: 100, Width: 40, Height: 20},
		{ID: "o2", OwnerID: "A", Type: ObstacleSpike, X: 300, Y: 100, Width: 40, Height: 20},
	}
	room.mu.Unlock()
	queueRand(room, 0.5)

	room.stepProjectiles()

	updates := notifier.byEvent("projectilesUpdate")
	require.Len(t, updates, 1)
	assert.Empty(t, updates[0].data.([]Projectile),
		"non-crossbow obstacles never spawn, and a draw above the chance does not either")
}

func TestStepProjectiles_BroadcastEvenWhenUnchanged(t *testing.T) {
	_, room, notifier := setupRoom(t, "R1", "A")

	room.mu.Lock()
	room.Phase = PhasePlaying
	room.mu.Unlock()
	queueRand(room, 0.99)

	room.stepProjectiles()
	room.stepProjectiles()
	assert.Equal(t, 2, notifier.count("projectilesUpdate"))
}

func TestStepProjectiles_NoOpOutsidePlaying(t *testing.T) {
	_, room, notifier := setupRoom(t, "R1", "A")

	room.mu.Lock()
	room.projectiles = []*Projectile{
		{ID: "p1", X: 100, Y: 50, Width: 20, Height: 5, Dir: 1, Type: "arrow"},
	}
	room.mu.Unlock()

	room.stepProjectiles()
	assert.Zero(t, notifier.count("projectilesUpdate"))

	room.mu.Lock()
	x := room.projectiles[0].X
	room.mu.Unlock()
	assert.Equal(t, 100.0, x, "projectiles do not move outside the playing phase")
}

func TestStartRound_ClearsProjectiles(t *testing.T) {
	_, room, _ := setupRoom(t, "R1", "A")

	advanceToBuilding(t, room)
	room.mu.Lock()
	room.projectiles = []*Projectile{
		{ID: "p1", X: 100, Y: 50, Width: 20, Height: 5, Dir: 1, Type: "arrow"},
	}
	room.mu.Unlock()

	room.StartRound("A")

	room.mu.Lock()
	count := len(room.projectiles)
	running := room.simStop != nil
	room.mu.Unlock()
	assert.Zero(t, count)
	assert.True(t, running, "simulation loop starts with the round")
}
