package game

import (
	"math"

	"go-partycourse-server/pkg/server/constants"

	"github.com/rs/zerolog/log"
)

// PlaceObstacle validates and records a new obstacle during the building
// phase. The candidate must clear the ground and keep its distance from
// every existing obstacle; this is a coarse proximity test, not a true
// box intersection, so placements stay sparse and readable on screen.
func (r *Room) PlaceObstacle(actor string, spec ObstacleSpec) (*Obstacle, error) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionPlaceObstacle) {
		r.mu.Unlock()
		return nil, ErrWrongPhase
	}

	if spec.Y > constants.ScreenHeight-r.groundYLocked()-constants.GroundClearance {
		r.mu.Unlock()
		return nil, ErrTooCloseToGround
	}

	for _, existing := range r.obstacles {
		if math.Abs(existing.X-spec.X) < constants.MinObstacleSpacing &&
			math.Abs(existing.Y-spec.Y) < constants.MinObstacleSpacing {
			r.mu.Unlock()
			return nil, ErrInvalidPosition
		}
	}

	obstacle := &Obstacle{
		ID:      r.nextObstacleIDLocked(),
		OwnerID: actor,
		Type:    spec.Type,
		X:       spec.X,
		Y:       spec.Y,
		Width:   spec.Width,
		Height:  spec.Height,
	}
	r.obstacles = append(r.obstacles, obstacle)
	added := *obstacle
	all := r.obstaclesCopyLocked()
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "obstacleAdded", added)
	r.notifier.Broadcast(r.ID, "obstaclesUpdate", all)
	log.Info().Str("room", r.ID).Str("type", added.Type).Msg("obstacle added")
	return &added, nil
}

// RemoveObstacle deletes an obstacle during the building phase. Only the
// placer may remove it; anything else is a silent no-op.
func (r *Room) RemoveObstacle(actor string, obstacleID string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionRemoveObstacle) {
		r.mu.Unlock()
		return
	}

	index := -1
	for i, o := range r.obstacles {
		if o.ID == obstacleID && o.OwnerID == actor {
			index = i
			break
		}
	}
	if index == -1 {
		r.mu.Unlock()
		return
	}
	r.obstacles = append(r.obstacles[:index], r.obstacles[index+1:]...)
	all := r.obstaclesCopyLocked()
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "obstacleRemoved", map[string]string{"obstacleId": obstacleID})
	r.notifier.Broadcast(r.ID, "obstaclesUpdate", all)
}
