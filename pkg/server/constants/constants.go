package constants

import "time"

// Screen constants. The server assumes a fixed client viewport; every
// position it hands out is in this coordinate space.
const (
	ScreenWidth  = 400.0
	ScreenHeight = 800.0
)

// Player constants
const (
	PlayerBoxSize      = 30.0 // collision bounding box edge
	PlayerGroundOffset = 50.0 // spawn height above the scenario ground
	DefaultCharacter   = "🐹"
)

// Obstacle constants
const (
	MinObstacleSpacing = 50.0 // minimum |dx| and |dy| between placed obstacles
	GroundClearance    = 50.0 // obstacles may not sit this close to the ground
	DefaultGroundY     = 150.0
)

// Round constants
const (
	RoundDuration    = 120 * time.Second
	MaxRounds        = 5
	WinningScore     = 50
	FirstPlacePoints = 10
)

// Projectile constants
const (
	ProjectileTickInterval = 100 * time.Millisecond
	ProjectileSpeed        = 5.0
	ProjectileMinX         = 0.0
	ProjectileMaxX         = 2000.0
	ArrowWidth             = 20.0
	ArrowHeight            = 5.0
	CrossbowSpawnChance    = 0.1
)
