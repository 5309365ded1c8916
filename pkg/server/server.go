package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"go-partycourse-server/pkg/server/game"
	"go-partycourse-server/pkg/server/types"
	"go-partycourse-server/pkg/util"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Connection represents a WebSocket connection
type Connection struct {
	ID         string
	connection *websocket.Conn
	WriteMutex sync.Mutex
}

func (c *Connection) send(event string, data any) {
	c.WriteMutex.Lock()
	err := c.connection.WriteJSON(types.Message{
		Type:    event,
		Payload: util.Must(json.Marshal(data)),
	})
	c.WriteMutex.Unlock()
	if err != nil {
		log.Debug().Str("conn", c.ID).Str("event", event).Err(err).Msg("write failed")
	}
}

// Server handles WebSocket connections and routes inbound actions to the
// game core. It implements game.Notifier for the outbound direction.
type Server struct {
	// Mutex for connection bookkeeping
	serverLock sync.Mutex

	// Map of connectionID -> connection
	connections map[string]*Connection

	// Map of roomID -> connectionID -> connection
	connectionsByRoom map[string]map[string]*Connection

	registry *game.Registry
}

// NewServer creates a new game server
func NewServer() *Server {
	s := &Server{
		connections:       make(map[string]*Connection),
		connectionsByRoom: make(map[string]map[string]*Connection),
	}
	s.registry = game.NewRegistry(s)
	return s
}

// Registry exposes the room registry to the HTTP surface and tests.
func (s *Server) Registry() *game.Registry {
	return s.registry
}

// Broadcast sends an event to every connection in a room.
func (s *Server) Broadcast(roomID string, event string, data any) {
	for _, conn := range s.roomConnections(roomID) {
		conn.send(event, data)
	}
}

// BroadcastExcept sends an event to every connection in a room but one.
func (s *Server) BroadcastExcept(roomID string, exceptID string, event string, data any) {
	for _, conn := range s.roomConnections(roomID) {
		if conn.ID != exceptID {
			conn.send(event, data)
		}
	}
}

// Send sends an event to a single connection.
func (s *Server) Send(connID string, event string, data any) {
	s.serverLock.Lock()
	conn := s.connections[connID]
	s.serverLock.Unlock()
	if conn != nil {
		conn.send(event, data)
	}
}

func (s *Server) roomConnections(roomID string) []*Connection {
	s.serverLock.Lock()
	defer s.serverLock.Unlock()

	conns := make([]*Connection, 0, len(s.connectionsByRoom[roomID]))
	for _, conn := range s.connectionsByRoom[roomID] {
		conns = append(conns, conn)
	}
	return conns
}

func (s *Server) addConnectionForRoom(conn *Connection, roomID string) {
	s.serverLock.Lock()
	if _, exists := s.connectionsByRoom[roomID]; !exists {
		s.connectionsByRoom[roomID] = make(map[string]*Connection)
	}
	s.connectionsByRoom[roomID][conn.ID] = conn
	s.serverLock.Unlock()
}

func (s *Server) removeConnectionForRoom(conn *Connection, roomID string) {
	s.serverLock.Lock()
	if _, exists := s.connectionsByRoom[roomID]; exists {
		delete(s.connectionsByRoom[roomID], conn.ID)
		if len(s.connectionsByRoom[roomID]) == 0 {
			delete(s.connectionsByRoom, roomID)
		}
	}
	s.serverLock.Unlock()
}

// HandleWebSocket handles incoming WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("error upgrading connection")
		return
	}

	conn := &Connection{
		ID:         uuid.New().String(),
		connection: ws,
	}

	s.serverLock.Lock()
	s.connections[conn.ID] = conn
	s.serverLock.Unlock()

	go s.handleConnection(conn)
}

// handleConnection processes messages from a WebSocket connection
func (s *Server) handleConnection(conn *Connection) {
	defer s.handleDisconnect(conn)

	for {
		var msg types.Message
		err := conn.connection.ReadJSON(&msg)
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Str("conn", conn.ID).Msg("connection closed normally")
			} else {
				log.Debug().Str("conn", conn.ID).Err(err).Msg("error reading message")
			}
			break
		}
		s.dispatch(conn, msg)
	}
}

// dispatch routes one inbound message to its handler.
func (s *Server) dispatch(conn *Connection, msg types.Message) {
	switch msg.Type {
	case "createRoom":
		var req types.CreateRoomRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		s.handleCreateRoom(conn, req)

	case "joinRoom":
		var req types.JoinRoomRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		s.handleJoinRoom(conn, req)

	case "leaveRoom":
		var req types.LeaveRoomRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		s.handleLeaveRoom(conn, req)

	case "startScenarioSelection":
		var req types.StartScenarioSelectionRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.StartScenarioSelection(conn.ID)
		}

	case "selectScenario":
		var req types.SelectScenarioRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.SelectScenario(conn.ID, req.Scenario)
		}

	case "placeObstacle":
		var req types.PlaceObstacleRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		s.handlePlaceObstacle(conn, req)

	case "removeObstacle":
		var req types.RemoveObstacleRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.RemoveObstacle(conn.ID, req.ObstacleID)
		}

	case "playerUpdate":
		var req types.PlayerUpdateRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.UpdatePlayer(conn.ID, req.X, req.Y)
		}

	case "startRound":
		var req types.StartRoundRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.StartRound(conn.ID)
		}

	case "selectItem":
		var req types.SelectItemRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		s.handleSelectItem(conn, req)

	case "itemPlaced":
		var req types.ItemPlacedRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.MarkItemPlaced(conn.ID)
		}

	case "skipItemSelection":
		var req types.SkipItemSelectionRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.MarkItemPlaced(conn.ID)
		}

	case "playerDied":
		var req types.PlayerDiedRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.PlayerDied(conn.ID)
		}

	case "reachedFlag":
		var req types.ReachedFlagRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.ReachedFlag(conn.ID)
		}

	case "checkCollision":
		var req types.CheckCollisionRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.CheckCollision(conn.ID, req.PlayerID)
		}

	case "changeCharacter":
		var req types.ChangeCharacterRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.ChangeCharacter(conn.ID, req.Character)
		}

	case "getRoomState":
		var req types.GetRoomStateRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			conn.send("roomState", room.State())
		}

	case "resetRoom":
		var req types.ResetRoomRequest
		if !unmarshalPayload(conn, msg, &req) {
			return
		}
		if room, exists := s.registry.Get(req.RoomID); exists {
			room.Reset(conn.ID)
		}

	case "getScenarios":
		conn.send("scenarioList", game.Scenarios())

	default:
		log.Debug().Str("type", msg.Type).Msg("unknown message type")
	}
}

func unmarshalPayload(conn *Connection, msg types.Message, out any) bool {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		log.Debug().Str("conn", conn.ID).Str("type", msg.Type).Err(err).Msg("error unmarshalling payload")
		return false
	}
	return true
}

// handleDisconnect removes the connection from every room it belongs to.
func (s *Server) handleDisconnect(conn *Connection) {
	conn.connection.Close()

	s.serverLock.Lock()
	delete(s.connections, conn.ID)
	for roomID, conns := range s.connectionsByRoom {
		delete(conns, conn.ID)
		if len(conns) == 0 {
			delete(s.connectionsByRoom, roomID)
		}
	}
	s.serverLock.Unlock()

	affected := s.registry.Disconnect(conn.ID)
	if len(affected) > 0 {
		log.Info().Str("conn", conn.ID).Strs("rooms", affected).Msg("connection disconnected")
	}
}
