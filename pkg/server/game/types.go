package game

import (
	"go-partycourse-server/pkg/server/constants"
	"go-partycourse-server/pkg/server/geo"
)

// Phase is a room's current stage in the game lifecycle.
type Phase string

const (
	PhaseWaiting       Phase = "waiting"
	PhaseSelecting     Phase = "selecting"
	PhaseBuilding      Phase = "building"
	PhaseItemSelection Phase = "itemSelection"
	PhasePlaying       Phase = "playing"
)

// Obstacle types
const (
	ObstacleSpike    = "spike"
	ObstacleSpring   = "spring"
	ObstacleHammer   = "hammer"
	ObstacleSaw      = "saw"
	ObstacleCannon   = "cannon"
	ObstaclePlatform = "platform"
	ObstacleCrossbow = "crossbow"
)

// Notifier delivers outbound notifications to room members. The transport
// layer implements it; the game core never talks to sockets directly.
type Notifier interface {
	// Broadcast sends an event to every member of a room.
	Broadcast(roomID string, event string, data any)
	// BroadcastExcept sends an event to every member of a room except one.
	BroadcastExcept(roomID string, exceptID string, event string, data any)
	// Send sends an event to a single connection.
	Send(connID string, event string, data any)
}

// Player is one connected participant in a room.
type Player struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Ready     bool    `json:"ready"`
	Character string  `json:"character"`
	Points    int     `json:"points"`
}

func (p *Player) bounds() geo.Rect {
	return geo.NewRect(p.X, p.Y, constants.PlayerBoxSize, constants.PlayerBoxSize)
}

// ObstacleSpec is a client-proposed obstacle, before the server assigns
// identity and ownership.
type ObstacleSpec struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Obstacle is a placed structure in a room's course.
type Obstacle struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"ownerId"`
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (o *Obstacle) bounds() geo.Rect {
	return geo.NewRect(o.X, o.Y, o.Width, o.Height)
}

// Projectile is an ephemeral simulated object spawned by trap obstacles.
type Projectile struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Dir    float64 `json:"dir"`
	Type   string  `json:"type"`
}

// Snapshot is the client-visible state of a room.
type Snapshot struct {
	ID          string            `json:"id"`
	Players     map[string]Player `json:"players"`
	Obstacles   []Obstacle        `json:"obstacles"`
	Scenario    *Scenario         `json:"scenario"`
	Phase       Phase             `json:"phase"`
	Host        string            `json:"host"`
	RoundNumber int               `json:"roundNumber"`
}

// RoomSummary is one row of the diagnostic stats report.
type RoomSummary struct {
	ID            string `json:"id"`
	PlayerCount   int    `json:"playerCount"`
	Phase         Phase  `json:"phase"`
	Scenario      string `json:"scenario"`
	ObstacleCount int    `json:"obstacleCount"`
}

// Stats is the read-only diagnostic report over all rooms.
type Stats struct {
	TotalRooms   int           `json:"totalRooms"`
	TotalPlayers int           `json:"totalPlayers"`
	Rooms        []RoomSummary `json:"rooms"`
}
