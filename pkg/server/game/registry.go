package game

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry owns the process-wide room table. Instances are independent so
// tests can run their own without cross-talk.
type Registry struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	notifier Notifier
}

func NewRegistry(notifier Notifier) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		notifier: notifier,
	}
}

// Create registers a new room with the creator as host and first player.
func (g *Registry) Create(roomID string, connID string, name string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.rooms[roomID]; exists {
		return nil, ErrRoomExists
	}

	room := newRoom(roomID, g.notifier)
	room.Host = connID
	room.addPlayer(connID, name)
	g.rooms[roomID] = room

	log.Info().Str("room", roomID).Str("host", connID).Msg("room created")
	return room, nil
}

// Get looks up a room by id.
func (g *Registry) Get(roomID string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, exists := g.rooms[roomID]
	return room, exists
}

// Join adds a player to an existing room. Rooms may be joined in any
// phase; mid-game joiners start with zero points at the origin.
func (g *Registry) Join(roomID string, connID string, name string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, exists := g.rooms[roomID]
	if !exists {
		return nil, ErrNoSuchRoom
	}
	room.addPlayer(connID, name)
	return room, nil
}

// Leave removes a player from a room, deleting the room once empty.
func (g *Registry) Leave(roomID string, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, exists := g.rooms[roomID]
	if !exists {
		return
	}
	if removed, remaining := room.removePlayer(connID, false); removed && remaining == 0 {
		g.removeLocked(roomID, room)
	}
}

// Disconnect removes a connection from every room containing it, as Leave
// does, additionally announcing the departure to remaining members.
// Returns the ids of the affected rooms.
func (g *Registry) Disconnect(connID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var affected []string
	for roomID, room := range g.rooms {
		removed, remaining := room.removePlayer(connID, true)
		if !removed {
			continue
		}
		affected = append(affected, roomID)
		if remaining == 0 {
			g.removeLocked(roomID, room)
		}
	}
	return affected
}

// removeLocked deletes a room and cancels its timers. Caller holds g.mu.
func (g *Registry) removeLocked(roomID string, room *Room) {
	delete(g.rooms, roomID)
	room.close()
	log.Info().Str("room", roomID).Msg("room removed (empty)")
}

// Stats reports the diagnostic summary across all rooms, ordered by id.
func (g *Registry) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	stats := Stats{
		TotalRooms: len(g.rooms),
		Rooms:      make([]RoomSummary, 0, len(g.rooms)),
	}
	for id, room := range g.rooms {
		snap := room.State()
		scenario := "none"
		if snap.Scenario != nil {
			scenario = snap.Scenario.Name
		}
		stats.TotalPlayers += len(snap.Players)
		stats.Rooms = append(stats.Rooms, RoomSummary{
			ID:            id,
			PlayerCount:   len(snap.Players),
			Phase:         snap.Phase,
			Scenario:      scenario,
			ObstacleCount: len(snap.Obstacles),
		})
	}
	sort.Slice(stats.Rooms, func(i, j int) bool {
		return stats.Rooms[i].ID < stats.Rooms[j].ID
	})
	return stats
}
