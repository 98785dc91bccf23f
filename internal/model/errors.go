package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Match lifecycle errors
	ErrMatchNotFound     = errors.New("match not found")
	ErrGameNotOpen       = errors.New("match is not open for joining")
	ErrInvalidGameStatus = errors.New("operation not valid in current match status")
	ErrOwnMatch          = errors.New("cannot join your own match")

	// Reveal errors
	ErrInvalidReveal      = errors.New("move and salt do not match the stored commitment")
	ErrAlreadyRevealed    = errors.New("move already revealed for this side")
	ErrUnauthorizedPlayer = errors.New("caller is neither creator nor opponent")

	// Input validation errors
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidCommitment = errors.New("commitment must be 32 bytes of hex")
	ErrInvalidWager      = errors.New("invalid wager amount")

	// Settlement errors
	ErrNumericalOverflow = errors.New("settlement arithmetic overflow")
)
