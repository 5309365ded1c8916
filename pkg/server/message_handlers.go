package server

import (
	"go-partycourse-server/pkg/server/types"

	"github.com/rs/zerolog/log"
)

// handleCreateRoom registers a new room with the actor as host. The room
// membership is recorded on the transport side before the confirmation
// broadcast so the creator receives it too.
func (s *Server) handleCreateRoom(conn *Connection, req types.CreateRoomRequest) {
	room, err := s.registry.Create(req.RoomID, conn.ID, req.Name)
	if err != nil {
		conn.send("createRoomResult", types.CreateRoomResult{OK: false, Error: err.Error()})
		return
	}

	s.addConnectionForRoom(conn, room.ID)
	conn.send("createRoomResult", types.CreateRoomResult{OK: true})
	s.Broadcast(room.ID, "roomUpdate", room.State())
}

func (s *Server) handleJoinRoom(conn *Connection, req types.JoinRoomRequest) {
	room, err := s.registry.Join(req.RoomID, conn.ID, req.Name)
	if err != nil {
		conn.send("joinRoomResult", types.JoinRoomResult{OK: false, Error: err.Error()})
		return
	}

	s.addConnectionForRoom(conn, room.ID)
	snapshot := room.State()
	conn.send("joinRoomResult", types.JoinRoomResult{OK: true, Room: &snapshot})
	s.Broadcast(room.ID, "roomUpdate", snapshot)
	log.Info().Str("conn", conn.ID).Str("room", room.ID).Msg("player joined room")
}

// handleLeaveRoom drops the connection's membership before the game-side
// removal so departure notifications only reach remaining members.
func (s *Server) handleLeaveRoom(conn *Connection, req types.LeaveRoomRequest) {
	s.removeConnectionForRoom(conn, req.RoomID)
	s.registry.Leave(req.RoomID, conn.ID)
}

func (s *Server) handlePlaceObstacle(conn *Connection, req types.PlaceObstacleRequest) {
	room, exists := s.registry.Get(req.RoomID)
	if !exists {
		conn.send("placeObstacleResult", types.PlaceObstacleResult{OK: false, Error: "no_room"})
		return
	}
	if _, err := room.PlaceObstacle(conn.ID, req.Obstacle); err != nil {
		conn.send("placeObstacleResult", types.PlaceObstacleResult{OK: false, Error: err.Error()})
		return
	}
	conn.send("placeObstacleResult", types.PlaceObstacleResult{OK: true})
}

func (s *Server) handleSelectItem(conn *Connection, req types.SelectItemRequest) {
	ok := false
	if room, exists := s.registry.Get(req.RoomID); exists {
		ok = room.SelectItem(conn.ID, req.ItemType)
	}
	conn.send("selectItemResult", types.SelectItemResult{OK: ok})
}
