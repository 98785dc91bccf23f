package model

import "fmt"

// Move is one of the three playable hands, encoded as a single byte on the
// wire and inside commitment digests.
type Move uint8

const (
	MoveRock     Move = 0
	MovePaper    Move = 1
	MoveScissors Move = 2
)

// Valid reports whether m is one of the three playable moves.
func (m Move) Valid() bool {
	return m <= MoveScissors
}

// Beats reports whether m defeats other under the fixed beats-relation:
// rock beats scissors, paper beats rock, scissors beats paper.
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveRock:
		return other == MoveScissors
	case MovePaper:
		return other == MoveRock
	case MoveScissors:
		return other == MovePaper
	default:
		return false
	}
}

// String returns the lowercase move name, or "invalid" out of range.
func (m Move) String() string {
	switch m {
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	case MoveScissors:
		return "scissors"
	default:
		return "invalid"
	}
}

// ParseMove converts a move name or numeric code to a Move.
func ParseMove(s string) (Move, error) {
	switch s {
	case "rock", "0":
		return MoveRock, nil
	case "paper", "1":
		return MovePaper, nil
	case "scissors", "2":
		return MoveScissors, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}
