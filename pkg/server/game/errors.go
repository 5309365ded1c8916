package game

import "errors"

// Error messages double as the wire codes carried in action acknowledgements.
var (
	ErrRoomExists       = errors.New("room_exists")
	ErrNoSuchRoom       = errors.New("no_room")
	ErrWrongPhase       = errors.New("wrong_phase")
	ErrTooCloseToGround = errors.New("too_close_to_ground")
	ErrInvalidPosition  = errors.New("invalid_position")
)
