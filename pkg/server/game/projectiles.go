package game

import (
	"time"

	"go-partycourse-server/pkg/server/constants"
	"go-partycourse-server/pkg/server/geo"
)

// startSimulationLocked starts the per-room projectile loop if it is not
// already running. The loop is owned by the room: it stops on game end,
// reset, and teardown, and individual ticks are no-ops outside the
// playing phase. Caller holds r.mu.
func (r *Room) startSimulationLocked() {
	if r.simStop != nil || r.closed {
		return
	}
	stop := make(chan struct{})
	r.simStop = stop
	r.simWg.Add(1)
	go r.runSimulation(stop)
}

// stopSimulationLocked signals the loop to exit without waiting for it.
// Caller holds r.mu; close waits for the goroutine separately.
func (r *Room) stopSimulationLocked() {
	if r.simStop != nil {
		close(r.simStop)
		r.simStop = nil
	}
}

func (r *Room) runSimulation(stop chan struct{}) {
	defer r.simWg.Done()

	ticker := time.NewTicker(constants.ProjectileTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.stepProjectiles()
		case <-stop:
			return
		}
	}
}

// stepProjectiles advances one simulation tick: existing projectiles move
// a fixed step in their direction, anything outside the playable bound is
// dropped, and each crossbow may spawn a new arrow at its center. The
// projectile set is broadcast every tick whether or not it changed.
func (r *Room) stepProjectiles() {
	r.mu.Lock()
	if r.closed || r.Phase != PhasePlaying {
		r.mu.Unlock()
		return
	}

	next := make([]*Projectile, 0, len(r.projectiles))
	for _, p := range r.projectiles {
		moved := geo.NewRect(p.X, p.Y, p.Width, p.Height).
			Translate(p.Dir*constants.ProjectileSpeed, 0)
		p.X = moved.Min.X
		if p.X > constants.ProjectileMinX && p.X < constants.ProjectileMaxX {
			next = append(next, p)
		}
	}

	for _, o := range r.obstacles {
		if o.Type != ObstacleCrossbow || r.randFloat() >= constants.CrossbowSpawnChance {
			continue
		}
		center := o.bounds().Center()
		dir := -1.0
		if r.randFloat() > 0.5 {
			dir = 1.0
		}
		next = append(next, &Projectile{
			ID:     r.nextProjectileIDLocked(),
			X:      center.X,
			Y:      center.Y,
			Width:  constants.ArrowWidth,
			Height: constants.ArrowHeight,
			Dir:    dir,
			Type:   "arrow",
		})
	}
	r.projectiles = next

	out := make([]Projectile, 0, len(next))
	for _, p := range next {
		out = append(out, *p)
	}
	r.mu.Unlock()

	r.notifier.Broadcast(r.ID, "projectilesUpdate", out)
}
