package response

import (
	"time"

	"github.com/rpswager/rpswager/internal/model"
	"github.com/rpswager/rpswager/internal/services/auth"
)

// SessionResponse is returned from guest creation, registration and login
type SessionResponse struct {
	Token       string    `json:"token"`
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionFromModel converts an auth session to its API representation
func SessionFromModel(s *auth.Session) SessionResponse {
	return SessionResponse{
		Token:       s.Token,
		PlayerID:    string(s.PlayerID),
		DisplayName: s.Player.DisplayName,
		IsGuest:     s.Player.IsGuest,
		ExpiresAt:   s.ExpiresAt,
	}
}

// PlayerResponse describes a player
type PlayerResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerFromModel converts a player to its API representation
func PlayerFromModel(p *model.Player) PlayerResponse {
	return PlayerResponse{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
		CreatedAt:   p.CreatedAt,
	}
}

// BalanceResponse reports a ledger account balance
type BalanceResponse struct {
	PlayerID string `json:"player_id"`
	Balance  uint64 `json:"balance"`
}

// MovementResponse describes one settlement fund movement
type MovementResponse struct {
	ID     string `json:"id"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SettlementResponse describes the decided outcome and payout plan
type SettlementResponse struct {
	Outcome   string             `json:"outcome"`
	TotalPot  uint64             `json:"total_pot"`
	HouseFee  uint64             `json:"house_fee"`
	Movements []MovementResponse `json:"movements"`
	Pending   bool               `json:"pending"`
	DecidedAt time.Time          `json:"decided_at"`
}

// MatchResponse describes a match
type MatchResponse struct {
	ID                 string              `json:"id"`
	Status             string              `json:"status"`
	Wager              uint64              `json:"wager"`
	CreatorID          string              `json:"creator_id"`
	OpponentID         string              `json:"opponent_id,omitempty"`
	CreatorCommitment  string              `json:"creator_commitment"`
	OpponentCommitment string              `json:"opponent_commitment,omitempty"`
	CreatorReveal      *string             `json:"creator_reveal,omitempty"`
	OpponentReveal     *string             `json:"opponent_reveal,omitempty"`
	Escrow             string              `json:"escrow"`
	Settlement         *SettlementResponse `json:"settlement,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// MatchListResponse wraps a list of matches
type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
}

// MatchFromModel converts a match to its API representation
func MatchFromModel(m *model.Match) MatchResponse {
	resp := MatchResponse{
		ID:                string(m.ID),
		Status:            string(m.Status),
		Wager:             m.Wager,
		CreatorID:         string(m.CreatorID),
		OpponentID:        string(m.OpponentID),
		CreatorCommitment: m.CreatorCommitment.String(),
		Escrow:            string(m.Escrow),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if !m.OpponentCommitment.IsZero() {
		resp.OpponentCommitment = m.OpponentCommitment.String()
	}
	if m.CreatorReveal != nil {
		s := m.CreatorReveal.String()
		resp.CreatorReveal = &s
	}
	if m.OpponentReveal != nil {
		s := m.OpponentReveal.String()
		resp.OpponentReveal = &s
	}
	if m.Settlement != nil {
		resp.Settlement = settlementFromModel(m.Settlement)
	}

	return resp
}

func settlementFromModel(s *model.Settlement) *SettlementResponse {
	resp := &SettlementResponse{
		Outcome:   string(s.Outcome),
		TotalPot:  s.TotalPot,
		HouseFee:  s.HouseFee,
		Pending:   s.Pending(),
		DecidedAt: s.DecidedAt,
	}
	for _, mv := range s.Movements {
		resp.Movements = append(resp.Movements, MovementResponse{
			ID:     mv.ID,
			To:     string(mv.To),
			Amount: mv.Amount,
			Status: string(mv.Status),
			Error:  mv.Error,
		})
	}
	return resp
}
