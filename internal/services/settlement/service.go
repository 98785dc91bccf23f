package settlement

import (
	"math"
	"math/bits"
	"time"

	"github.com/google/uuid"

	"github.com/rpswager/rpswager/internal/model"
)

// House fee rate, fixed as a protocol constant: 3% of the total pot,
// rounded down.
const (
	FeeNumerator   = 3
	FeeDenominator = 100
)

// Service computes match outcomes and fee-adjusted payout plans.
// All monetary arithmetic is checked; wrapping is never acceptable here.
type Service struct{}

// New creates a new settlement service
func New() *Service {
	return &Service{}
}

// DecideWinner resolves the beats-relation over both revealed moves.
// It is total over all nine move pairs.
func (s *Service) DecideWinner(creator, opponent model.Move) model.Outcome {
	switch {
	case creator == opponent:
		return model.OutcomeTie
	case creator.Beats(opponent):
		return model.OutcomeCreatorWins
	default:
		return model.OutcomeOpponentWins
	}
}

// TotalPot returns 2 x wager, rejecting values that cannot be doubled
// within 64 bits.
func (s *Service) TotalPot(wager uint64) (uint64, error) {
	if wager > math.MaxUint64/2 {
		return 0, model.ErrNumericalOverflow
	}
	return 2 * wager, nil
}

// HouseFee returns floor(pot x FeeNumerator / FeeDenominator), using a
// 128-bit intermediate so the multiplication cannot overflow before the
// division.
func (s *Service) HouseFee(pot uint64) (uint64, error) {
	hi, lo := bits.Mul64(pot, FeeNumerator)
	if hi >= FeeDenominator {
		// Unreachable while FeeNumerator < FeeDenominator; guards a
		// Div64 panic if the constants ever change.
		return 0, model.ErrNumericalOverflow
	}
	fee, _ := bits.Div64(hi, lo, FeeDenominator)
	return fee, nil
}

// Plan computes the complete fund-movement plan for a decided match.
// The invariant held here is exact conservation: the house cut plus all
// player payouts equals the total pot. On a tie with an odd payout, the
// one-unit remainder of the integer split is swept to the house.
func (s *Service) Plan(
	wager uint64,
	outcome model.Outcome,
	creator, opponent, house model.PlayerID,
	escrow model.EscrowHandle,
	decidedAt time.Time,
) (*model.Settlement, error) {
	pot, err := s.TotalPot(wager)
	if err != nil {
		return nil, err
	}

	fee, err := s.HouseFee(pot)
	if err != nil {
		return nil, err
	}

	// fee <= pot always holds given the 3/100 rate
	payout := pot - fee

	plan := &model.Settlement{
		Outcome:   outcome,
		TotalPot:  pot,
		HouseFee:  fee,
		DecidedAt: decidedAt,
	}

	houseCut := fee

	move := func(to model.PlayerID, amount uint64) {
		if amount == 0 {
			return
		}
		plan.Movements = append(plan.Movements, model.FundMovement{
			ID:     uuid.NewString(),
			From:   escrow,
			To:     to,
			Amount: amount,
			Status: model.MovementPending,
		})
	}

	switch outcome {
	case model.OutcomeCreatorWins:
		move(creator, payout)
	case model.OutcomeOpponentWins:
		move(opponent, payout)
	case model.OutcomeTie:
		half := payout / 2
		houseCut += payout - 2*half
		move(creator, half)
		move(opponent, half)
	}

	move(house, houseCut)

	return plan, nil
}
