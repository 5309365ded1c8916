package game

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go-partycourse-server/pkg/server/constants"

	"github.com/rs/zerolog/log"
)

// Room is one isolated game session. All mutations run under the room
// mutex, so handlers and timer callbacks never interleave mid-update.
type Room struct {
	mu sync.Mutex

	ID          string
	Phase       Phase
	Host        string
	Scenario    *Scenario
	RoundNumber int

	players   map[string]*Player
	joinOrder []string

	obstacles   []*Obstacle
	projectiles []*Projectile

	// Round-scoped sets, cleared on every entry to itemSelection.
	takenItems   map[string]struct{}
	placedItems  map[string]struct{}
	deadPlayers  map[string]struct{}
	reachedFlag  map[string]struct{}
	arrivalOrder []string

	// Round timer. roundGen invalidates stale fires: the generation is
	// captured when the timer is armed and re-checked when it goes off.
	roundTimer    *time.Timer
	roundGen      int
	roundDuration time.Duration

	// Projectile simulation loop.
	simStop chan struct{}
	simWg   sync.WaitGroup

	nextObstacleID   uint64
	nextProjectileID uint64

	closed   bool
	notifier Notifier

	randFloat func() float64
}

func newRoom(id string, notifier Notifier) *Room {
	return &Room{
		ID:            id,
		Phase:         PhaseWaiting,
		RoundNumber:   1,
		players:       make(map[string]*Player),
		takenItems:    make(map[string]struct{}),
		placedItems:   make(map[string]struct{}),
		deadPlayers:   make(map[string]struct{}),
		reachedFlag:   make(map[string]struct{}),
		roundDuration: constants.RoundDuration,
		notifier:      notifier,
		randFloat:     rand.Float64,
	}
}

// addPlayer inserts a player with default state. A connection already in
// the room keeps its existing player.
func (r *Room) addPlayer(connID string, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[connID]; exists {
		return
	}
	r.players[connID] = &Player{
		ID:        connID,
		Name:      name,
		Character: constants.DefaultCharacter,
	}
	r.joinOrder = append(r.joinOrder, connID)
}

// removePlayer removes a player, reassigning the host role to the
// earliest-joined remaining player if needed. When announce is set the
// remaining members are additionally told who left. Returns whether the
// player was a member and how many members remain.
func (r *Room) removePlayer(connID string, announce bool) (bool, int) {
	r.mu.Lock()

	if _, exists := r.players[connID]; !exists {
		remaining := len(r.players)
		r.mu.Unlock()
		return false, remaining
	}

	delete(r.players, connID)
	for i, id := range r.joinOrder {
		if id == connID {
			r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
			break
		}
	}

	newHost := ""
	if r.Host == connID && len(r.joinOrder) > 0 {
		r.Host = r.joinOrder[0]
		newHost = r.Host
	}

	remaining := len(r.players)
	var snap Snapshot
	if remaining > 0 {
		snap = r.stateLocked()
	}
	r.mu.Unlock()

	if remaining == 0 {
		return true, 0
	}
	if newHost != "" {
		r.notifier.Broadcast(r.ID, "newHost", map[string]string{"hostId": newHost})
		log.Info().Str("room", r.ID).Str("host", newHost).Msg("host reassigned")
	}
	r.notifier.Broadcast(r.ID, "roomUpdate", snap)
	if announce {
		r.notifier.Broadcast(r.ID, "playerLeft", map[string]string{"id": connID})
	}
	return true, remaining
}

// close tears the room down: both timers are cancelled and any late fire
// sees the closed flag and becomes a no-op.
func (r *Room) close() {
	r.mu.Lock()
	r.closed = true
	r.stopRoundTimerLocked()
	stop := r.simStop
	r.simStop = nil
	r.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	r.simWg.Wait()
}

// StartScenarioSelection moves the room from waiting to selecting.
// Host only.
func (r *Room) StartScenarioSelection(actor string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionStartScenarioSelection) {
		r.mu.Unlock()
		return
	}
	r.Phase = PhaseSelecting
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "scenarioSelection", nil)
	log.Info().Str("room", r.ID).Msg("scenario selection started")
}

// SelectScenario sets the course theme and opens the building phase.
// Any obstacles from a previous game are discarded.
func (r *Room) SelectScenario(actor string, scenario Scenario) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionSelectScenario) {
		r.mu.Unlock()
		return
	}
	sc := scenario
	r.Scenario = &sc
	r.Phase = PhaseBuilding
	r.obstacles = nil
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "buildingPhase", map[string]Scenario{"scenario": scenario})
	log.Info().Str("room", r.ID).Str("scenario", scenario.ID).Msg("scenario selected")
}

// StartRound leaves building for itemSelection: round sets are cleared,
// players are spread along the ground, and the projectile simulation
// loop is started for this room. Host only.
func (r *Room) StartRound(actor string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionStartRound) {
		r.mu.Unlock()
		return
	}

	r.enterItemSelectionLocked()
	r.projectiles = nil

	// Spread players evenly along the horizontal axis, just above the
	// ground, in join order.
	n := len(r.joinOrder)
	groundY := r.groundYLocked()
	for i, id := range r.joinOrder {
		p := r.players[id]
		p.X = constants.ScreenWidth / float64(n+1) * float64(i+1)
		p.Y = constants.ScreenHeight - groundY - constants.PlayerGroundOffset
	}

	payload := roundStartPayload{
		Obstacles: r.obstaclesCopyLocked(),
		Scenario:  r.Scenario,
		Players:   r.playersCopyLocked(),
	}
	obstacleCount := len(r.obstacles)
	r.startSimulationLocked()
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "roundStarted", payload)
	log.Info().Str("room", r.ID).Int("obstacles", obstacleCount).Msg("round started")
}

type roundStartPayload struct {
	Obstacles []Obstacle        `json:"obstacles"`
	Scenario  *Scenario         `json:"scenario"`
	Players   map[string]Player `json:"players"`
}

// enterItemSelectionLocked resets all round-scoped state. This is the only
// place the round sets are cleared. Caller holds r.mu.
func (r *Room) enterItemSelectionLocked() {
	r.Phase = PhaseItemSelection
	r.takenItems = make(map[string]struct{})
	r.placedItems = make(map[string]struct{})
	r.deadPlayers = make(map[string]struct{})
	r.reachedFlag = make(map[string]struct{})
	r.arrivalOrder = nil
	r.stopRoundTimerLocked()
	r.roundGen++
}

// UpdatePlayer records a player's reported position and relays it to the
// other members. Permitted in any phase.
func (r *Room) UpdatePlayer(actor string, x float64, y float64) {
	r.mu.Lock()
	p, exists := r.players[actor]
	if !exists {
		r.mu.Unlock()
		return
	}
	p.X = x
	p.Y = y
	moved := playerMovedPayload{
		ID:        actor,
		Name:      p.Name,
		X:         x,
		Y:         y,
		Character: p.Character,
	}
	r.mu.Unlock()

	r.notifier.BroadcastExcept(r.ID, actor, "playerMoved", moved)
}

type playerMovedPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Character string  `json:"character"`
}

// ChangeCharacter updates a player's display choice. Permitted in any phase.
func (r *Room) ChangeCharacter(actor string, character string) {
	r.mu.Lock()
	p, exists := r.players[actor]
	if !exists {
		r.mu.Unlock()
		return
	}
	p.Character = character
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "playerCharacterChanged", map[string]string{
		"playerId":  actor,
		"character": character,
	})
}

// Reset returns the room to the waiting phase, discarding the course and
// all transient player state. Cumulative points survive a reset. Host only.
func (r *Room) Reset(actor string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionResetRoom) {
		r.mu.Unlock()
		return
	}

	r.stopRoundTimerLocked()
	r.roundGen++
	r.stopSimulationLocked()

	r.Phase = PhaseWaiting
	r.Scenario = nil
	r.obstacles = nil
	r.projectiles = nil
	for _, p := range r.players {
		p.Ready = false
		p.X = 0
		p.Y = 0
	}
	snap := r.stateLocked()
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "roomReset", nil)
	r.notifier.Broadcast(r.ID, "roomUpdate", snap)
	log.Info().Str("room", r.ID).Msg("room reset")
}

// State returns a copy of the room's client-visible state.
func (r *Room) State() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Room) stateLocked() Snapshot {
	return Snapshot{
		ID:          r.ID,
		Players:     r.playersCopyLocked(),
		Obstacles:   r.obstaclesCopyLocked(),
		Scenario:    r.Scenario,
		Phase:       r.Phase,
		Host:        r.Host,
		RoundNumber: r.RoundNumber,
	}
}

func (r *Room) playersCopyLocked() map[string]Player {
	out := make(map[string]Player, len(r.players))
	for id, p := range r.players {
		out[id] = *p
	}
	return out
}

func (r *Room) obstaclesCopyLocked() []Obstacle {
	out := make([]Obstacle, 0, len(r.obstacles))
	for _, o := range r.obstacles {
		out = append(out, *o)
	}
	return out
}

func (r *Room) groundYLocked() float64 {
	if r.Scenario != nil {
		return r.Scenario.GroundY
	}
	return constants.DefaultGroundY
}

func (r *Room) nextObstacleIDLocked() string {
	r.nextObstacleID++
	return fmt.Sprintf("obs-%s-%d", r.ID, r.nextObstacleID)
}

func (r *Room) nextProjectileIDLocked() string {
	r.nextProjectileID++
	return fmt.Sprintf("proj-%s-%d", r.ID, r.nextProjectileID)
}
