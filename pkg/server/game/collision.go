package game

// Effect describes what happens to a player touching an obstacle.
type Effect struct {
	Type      string  `json:"type"`
	Value     int     `json:"value,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
}

var obstacleEffects = map[string]Effect{
	ObstacleSpike:    {Type: "damage", Value: 1},
	ObstacleSpring:   {Type: "bounce", Value: 50},
	ObstacleHammer:   {Type: "knock", Direction: "random"},
	ObstacleSaw:      {Type: "damage", Value: 2},
	ObstacleCannon:   {Type: "explosion", Radius: 100},
	ObstaclePlatform: {Type: "none"},
}

func effectFor(obstacleType string) Effect {
	if effect, known := obstacleEffects[obstacleType]; known {
		return effect
	}
	return Effect{Type: "none"}
}

// CollisionNotice is the direct reply to a collision check.
type CollisionNotice struct {
	ObstacleType string `json:"obstacleType"`
	Effect       Effect `json:"effect"`
}

// CheckCollision tests a player's bounding box against the course and
// replies to the requesting actor only. The first obstacle in placement
// order wins when several overlap. An empty playerID checks the actor
// itself.
func (r *Room) CheckCollision(actor string, playerID string) {
	r.mu.Lock()
	if !r.allowedLocked(actor, actionCheckCollision) {
		r.mu.Unlock()
		return
	}
	if playerID == "" {
		playerID = actor
	}
	player, exists := r.players[playerID]
	if !exists {
		r.mu.Unlock()
		return
	}

	box := player.bounds()
	for _, obstacle := range r.obstacles {
		if !box.Intersects(obstacle.bounds()) {
			continue
		}
		notice := CollisionNotice{
			ObstacleType: obstacle.Type,
			Effect:       effectFor(obstacle.Type),
		}
		r.mu.Unlock()
		r.notifier.Send(actor, "collision", notice)
		return
	}
	r.mu.Unlock()
}
