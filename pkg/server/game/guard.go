package game

// action identifies an inbound operation for phase/privilege checking.
type action int

const (
	actionStartScenarioSelection action = iota
	actionSelectScenario
	actionPlaceObstacle
	actionRemoveObstacle
	actionStartRound
	actionSelectItem
	actionItemPlaced
	actionPlayerDied
	actionReachedFlag
	actionCheckCollision
	actionResetRoom
)

type actionRule struct {
	phase    Phase // empty means any phase
	hostOnly bool
}

var actionRules = map[action]actionRule{
	actionStartScenarioSelection: {phase: PhaseWaiting, hostOnly: true},
	actionSelectScenario:         {phase: PhaseSelecting},
	actionPlaceObstacle:          {phase: PhaseBuilding},
	actionRemoveObstacle:         {phase: PhaseBuilding},
	actionStartRound:             {phase: PhaseBuilding, hostOnly: true},
	actionSelectItem:             {phase: PhaseItemSelection},
	actionItemPlaced:             {phase: PhaseItemSelection},
	actionPlayerDied:             {phase: PhasePlaying},
	actionReachedFlag:            {phase: PhasePlaying},
	actionCheckCollision:         {phase: PhasePlaying},
	actionResetRoom:              {hostOnly: true},
}

// allowedLocked is the single gate for phase and host-privilege checks.
// Out-of-phase and unauthorized actions are silent no-ops by policy, so
// callers simply return when this is false. Caller holds r.mu.
func (r *Room) allowedLocked(actor string, a action) bool {
	if _, member := r.players[actor]; !member {
		return false
	}
	rule := actionRules[a]
	if rule.phase != "" && r.Phase != rule.phase {
		return false
	}
	if rule.hostOnly && r.Host != actor {
		return false
	}
	return true
}
