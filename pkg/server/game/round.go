package game

import (
	"time"

	"go-partycourse-server/pkg/server/constants"

	"github.com/rs/zerolog/log"
)

// emission is a notification produced while the room lock is held and
// delivered after it is released.
type emission struct {
	event string
	data  any
}

func (r *Room) emit(out []emission) {
	for _, e := range out {
		r.notifier.Broadcast(r.ID, e.event, e.data)
	}
}

// SelectItem claims an item type for this round. Each type may be claimed
// by at most one player per round; the boolean acknowledgement reports
// whether the claim stuck.
func (r *Room) SelectItem(actor string, itemType string) bool {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionSelectItem) {
		r.mu.Unlock()
		return false
	}
	if _, taken := r.takenItems[itemType]; taken {
		r.mu.Unlock()
		return false
	}
	r.takenItems[itemType] = struct{}{}
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "itemTaken", map[string]string{"itemType": itemType})
	return true
}

// MarkItemPlaced records that a player finished (or skipped) item
// placement. Re-signaling is idempotent. Once every current player has
// placed, play begins and the round timer is armed.
func (r *Room) MarkItemPlaced(actor string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionItemPlaced) {
		r.mu.Unlock()
		return
	}
	r.placedItems[actor] = struct{}{}

	if !r.allPlacedLocked() {
		r.mu.Unlock()
		return
	}
	r.Phase = PhasePlaying
	r.armRoundTimerLocked()
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "startPlaying", nil)
	log.Info().Str("room", r.ID).Int("round", r.RoundNumber).Msg("round playing")
}

func (r *Room) allPlacedLocked() bool {
	for id := range r.players {
		if _, placed := r.placedItems[id]; !placed {
			return false
		}
	}
	return true
}

// PlayerDied records a terminal outcome for the actor this round.
func (r *Room) PlayerDied(actor string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionPlayerDied) {
		r.mu.Unlock()
		return
	}
	r.deadPlayers[actor] = struct{}{}
	out := r.checkRoundEndLocked()
	r.mu.Unlock()

	r.emit(out)
}

// ReachedFlag records a flag arrival. True arrival order is tracked for
// scoring; repeats do not change it.
func (r *Room) ReachedFlag(actor string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionReachedFlag) {
		r.mu.Unlock()
		return
	}
	if _, already := r.reachedFlag[actor]; !already {
		r.reachedFlag[actor] = struct{}{}
		r.arrivalOrder = append(r.arrivalOrder, actor)
	}
	out := r.checkRoundEndLocked()
	r.mu.Unlock()

	r.emit(out)
}

// checkRoundEndLocked ends the round once every player has either died or
// reached the flag. Caller holds r.mu.
func (r *Room) checkRoundEndLocked() []emission {
	if len(r.deadPlayers)+len(r.reachedFlag) < len(r.players) {
		return nil
	}
	return r.endRoundLocked()
}

// endRoundLocked scores the round and either advances to the next one or
// finishes the game. Caller holds r.mu.
func (r *Room) endRoundLocked() []emission {
	if r.Phase != PhasePlaying {
		return nil
	}
	r.stopRoundTimerLocked()
	r.roundGen++

	// Flag-reachers score descending from 10 in arrival order; everyone
	// else gets nothing this round.
	newPoints := make(map[string]int)
	for i, id := range r.arrivalOrder {
		newPoints[id] = constants.FirstPlacePoints - i
	}
	for id := range r.players {
		if _, scored := newPoints[id]; !scored {
			newPoints[id] = 0
		}
	}

	out := []emission{{event: "roundEnd", data: map[string]map[string]int{"newPoints": newPoints}}}

	for id, points := range newPoints {
		if p, exists := r.players[id]; exists {
			p.Points += points
		}
	}

	// Reaching the score threshold ends the game at once, regardless of
	// round number. Join order makes the scan deterministic.
	for _, id := range r.joinOrder {
		if r.players[id].Points >= constants.WinningScore {
			log.Info().Str("room", r.ID).Str("winner", id).Msg("game won on points")
			return append(out, r.finishGameLocked(id))
		}
	}

	if r.RoundNumber >= constants.MaxRounds {
		winnerID := ""
		maxPoints := -1
		for _, id := range r.joinOrder {
			if r.players[id].Points > maxPoints {
				maxPoints = r.players[id].Points
				winnerID = id
			}
		}
		log.Info().Str("room", r.ID).Str("winner", winnerID).Msg("game over after final round")
		return append(out, r.finishGameLocked(winnerID))
	}

	r.RoundNumber++
	r.enterItemSelectionLocked()
	return out
}

// finishGameLocked stops the simulation and produces the winner
// announcement. The room stays as-is until the host resets it.
func (r *Room) finishGameLocked(winnerID string) emission {
	r.stopSimulationLocked()
	return emission{event: "gameWinner", data: map[string]string{"winnerId": winnerID}}
}

// armRoundTimerLocked schedules the automatic round end. The generation
// captured here invalidates the fire if the round ends first.
func (r *Room) armRoundTimerLocked() {
	r.stopRoundTimerLocked()
	gen := r.roundGen
	r.roundTimer = time.AfterFunc(r.roundDuration, func() {
		r.expireRound(gen)
	})
}

func (r *Room) stopRoundTimerLocked() {
	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}
}

// expireRound is the round timer callback. It re-checks room liveness and
// generation: a stale or post-teardown fire does nothing.
func (r *Room) expireRound(gen int) {
	r.mu.Lock()
	if r.closed || gen != r.roundGen || r.Phase != PhasePlaying {
		r.mu.Unlock()
		return
	}
	log.Info().Str("room", r.ID).Int("round", r.RoundNumber).Msg("round timer elapsed")
	out := r.endRoundLocked()
	r.mu.Unlock()

	r.emit(out)
}
