package types

import (
	"encoding/json"

	"go-partycourse-server/pkg/server/game"
)

// Message is the WebSocket envelope for both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Request structs

type CreateRoomRequest struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type LeaveRoomRequest struct {
	RoomID string `json:"roomId"`
}

type StartScenarioSelectionRequest struct {
	RoomID string `json:"roomId"`
}

type SelectScenarioRequest struct {
	RoomID   string        `json:"roomId"`
	Scenario game.Scenario `json:"scenario"`
}

type PlaceObstacleRequest struct {
	RoomID   string            `json:"roomId"`
	Obstacle game.ObstacleSpec `json:"obstacle"`
}

type RemoveObstacleRequest struct {
	RoomID     string `json:"roomId"`
	ObstacleID string `json:"obstacleId"`
}

type PlayerUpdateRequest struct {
	RoomID string  `json:"roomId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type StartRoundRequest struct {
	RoomID string `json:"roomId"`
}

type SelectItemRequest struct {
	RoomID   string `json:"roomId"`
	ItemType string `json:"itemType"`
}

type ItemPlacedRequest struct {
	RoomID string `json:"roomId"`
}

type SkipItemSelectionRequest struct {
	RoomID string `json:"roomId"`
}

type PlayerDiedRequest struct {
	RoomID string `json:"roomId"`
}

type ReachedFlagRequest struct {
	RoomID string `json:"roomId"`
}

type CheckCollisionRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type ChangeCharacterRequest struct {
	RoomID    string `json:"roomId"`
	Character string `json:"character"`
}

type GetRoomStateRequest struct {
	RoomID string `json:"roomId"`
}

type ResetRoomRequest struct {
	RoomID string `json:"roomId"`
}

// Acknowledgements, sent directly to the acting connection.

type CreateRoomResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type JoinRoomResult struct {
	OK    bool           `json:"ok"`
	Room  *game.Snapshot `json:"room,omitempty"`
	Error string         `json:"error,omitempty"`
}

type PlaceObstacleResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type SelectItemResult struct {
	OK bool `json:"ok"`
}
