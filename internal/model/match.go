package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// EscrowHandle is an opaque reference to the funds the custody ledger holds
// for a match. Derived deterministically from match identity, so it can be
// reconstructed from match data without separate storage.
type EscrowHandle string

// MatchStatus represents the current phase of a match.
// Transitions are strictly forward-only: Open -> Committed -> Ended.
type MatchStatus string

const (
	MatchStatusOpen      MatchStatus = "open"      // Waiting for an opponent to join
	MatchStatusCommitted MatchStatus = "committed" // Both commitments locked in, awaiting reveals
	MatchStatusEnded     MatchStatus = "ended"     // Outcome decided; terminal and immutable
)

// Outcome is the result of comparing both revealed moves
type Outcome string

const (
	OutcomeCreatorWins  Outcome = "creator_wins"
	OutcomeOpponentWins Outcome = "opponent_wins"
	OutcomeTie          Outcome = "tie"
)

// MovementStatus tracks an individual fund movement against the custody
// ledger. A match can be Ended (outcome decided) while movements are still
// pending or failed; that condition stays observable here.
type MovementStatus string

const (
	MovementPending   MovementStatus = "pending"
	MovementCompleted MovementStatus = "completed"
	MovementFailed    MovementStatus = "failed"
)

// FundMovement is a single transfer out of the match escrow requested by
// settlement.
type FundMovement struct {
	ID     string // unique movement ID, passed to the ledger as the transfer's idempotency ref
	From   EscrowHandle
	To     PlayerID
	Amount uint64
	Status MovementStatus
	Error  string `json:",omitempty"` // ledger error message when Status is failed
}

// Settlement records the decided outcome and the fund-movement plan.
// Written exactly once, at the reveal that completes the pair.
type Settlement struct {
	Outcome   Outcome
	TotalPot  uint64
	HouseFee  uint64
	Movements []FundMovement
	DecidedAt time.Time
}

// Pending reports whether any movement has not completed yet
func (s *Settlement) Pending() bool {
	for _, m := range s.Movements {
		if m.Status != MovementCompleted {
			return true
		}
	}
	return false
}

// Match is a single wagered commit-reveal round between two players
type Match struct {
	ID MatchID

	CreatorID  PlayerID
	OpponentID PlayerID // empty until joined

	CreatorCommitment  Commitment
	OpponentCommitment Commitment // zero until joined

	CreatorReveal  *Move // nil until revealed
	OpponentReveal *Move // nil until revealed

	Wager  uint64 // fixed at creation, identical contribution from both sides
	Status MatchStatus
	Escrow EscrowHandle

	Settlement *Settlement // nil until Ended

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy that shares no mutable state with the
// receiver, so a stored match cannot be aliased by its readers.
func (m *Match) Clone() *Match {
	out := *m
	if m.CreatorReveal != nil {
		reveal := *m.CreatorReveal
		out.CreatorReveal = &reveal
	}
	if m.OpponentReveal != nil {
		reveal := *m.OpponentReveal
		out.OpponentReveal = &reveal
	}
	if m.Settlement != nil {
		settlement := *m.Settlement
		settlement.Movements = make([]FundMovement, len(m.Settlement.Movements))
		copy(settlement.Movements, m.Settlement.Movements)
		out.Settlement = &settlement
	}
	return &out
}

// Joined reports whether an opponent has committed
func (m *Match) Joined() bool {
	return m.OpponentID != ""
}

// BothRevealed reports whether both sides have a verified reveal stored
func (m *Match) BothRevealed() bool {
	return m.CreatorReveal != nil && m.OpponentReveal != nil
}

// Side returns which participant the caller is, if any
func (m *Match) Side(caller PlayerID) (creator bool, ok bool) {
	switch caller {
	case m.CreatorID:
		return true, true
	case m.OpponentID:
		if m.OpponentID == "" {
			return false, false
		}
		return false, true
	default:
		return false, false
	}
}
