package match

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/rpswager/rpswager/internal/dependencies/clock"
	"github.com/rpswager/rpswager/internal/dependencies/random"
	"github.com/rpswager/rpswager/internal/ledger"
	"github.com/rpswager/rpswager/internal/model"
	"github.com/rpswager/rpswager/internal/services/settlement"
	"github.com/rpswager/rpswager/internal/storage"
)

const (
	// MatchIDLength is the length of generated match IDs
	MatchIDLength = 12
	// MatchIDAlphabet is the characters used in match IDs (avoid confusing chars)
	MatchIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// lockStripes is the number of mutexes in the per-match lock table
	lockStripes = 64
)

// Config holds policy settings for the match engine
type Config struct {
	// HouseAccount receives the protocol fee (and tie-split dust)
	HouseAccount model.PlayerID
	// AllowZeroWager permits free matches when true
	AllowZeroWager bool
}

// DefaultConfig returns default match engine configuration
func DefaultConfig() Config {
	return Config{
		HouseAccount:   "house",
		AllowZeroWager: true,
	}
}

// Controller owns the match lifecycle: commitment capture, reveal
// verification, and settlement. Every mutation of a match runs under that
// match's stripe lock, so two reveals racing to be "the second reveal"
// serialize and settlement executes exactly once.
type Controller struct {
	storage    storage.Storage
	ledger     ledger.Ledger
	settlement *settlement.Service
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	cfg        Config

	locks [lockStripes]sync.Mutex
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	ledger ledger.Ledger,
	settlementService *settlement.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.HouseAccount == "" {
		cfg.HouseAccount = DefaultConfig().HouseAccount
	}
	return &Controller{
		storage:    storage,
		ledger:     ledger,
		settlement: settlementService,
		clock:      clock,
		random:     random,
		logger:     logger,
		cfg:        cfg,
	}
}

// lock acquires the stripe lock for a match and returns the unlock func
func (c *Controller) lock(id model.MatchID) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &c.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// Create opens a new match. The creator's wager moves into escrow before
// the match record exists; if the record cannot be saved the deposit is
// returned.
func (c *Controller) Create(ctx context.Context, creator model.PlayerID, commitment model.Commitment, wager uint64) (*model.Match, error) {
	if !c.cfg.AllowZeroWager && wager == 0 {
		return nil, model.ErrInvalidWager
	}
	// A wager that cannot be doubled would strand the match at settlement
	if _, err := c.settlement.TotalPot(wager); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	matchID := model.MatchID(c.random.String(MatchIDLength, MatchIDAlphabet))
	escrow := ledger.DeriveEscrowHandle(matchID, creator, wager)

	if err := c.ledger.Deposit(ctx, creator, escrow, wager); err != nil {
		return nil, err
	}

	match := &model.Match{
		ID:                matchID,
		CreatorID:         creator,
		CreatorCommitment: commitment,
		Wager:             wager,
		Status:            model.MatchStatusOpen,
		Escrow:            escrow,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		// Return the stake rather than stranding it in escrow
		if refundErr := c.ledger.Transfer(ctx, escrow, creator, wager, "refund:create:"+string(matchID)); refundErr != nil {
			c.logger.Error("failed to refund creator stake after save failure",
				slog.String("match_id", string(matchID)),
				slog.String("error", refundErr.Error()),
			)
		}
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", string(matchID)),
		slog.String("creator", string(creator)),
		slog.Uint64("wager", wager),
	)

	return match, nil
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// ListOpenMatches returns matches waiting for an opponent
func (c *Controller) ListOpenMatches(ctx context.Context) ([]*model.Match, error) {
	return c.storage.ListOpenMatches(ctx)
}

// Join locks in the opponent's commitment and matching wager. The
// transition Open -> Committed is atomic; there is no partial join.
func (c *Controller) Join(ctx context.Context, id model.MatchID, opponent model.PlayerID, commitment model.Commitment) error {
	defer c.lock(id)()

	match, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return err
	}

	if match.Status != model.MatchStatusOpen {
		return model.ErrGameNotOpen
	}
	if opponent == match.CreatorID {
		// A single identity on both sides would make reveal side
		// identification ambiguous
		return model.ErrOwnMatch
	}

	if err := c.ledger.Deposit(ctx, opponent, match.Escrow, match.Wager); err != nil {
		return err
	}

	match.OpponentID = opponent
	match.OpponentCommitment = commitment
	match.Status = model.MatchStatusCommitted
	match.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		if refundErr := c.ledger.Transfer(ctx, match.Escrow, opponent, match.Wager, "refund:join:"+string(id)); refundErr != nil {
			c.logger.Error("failed to refund opponent stake after save failure",
				slog.String("match_id", string(id)),
				slog.String("error", refundErr.Error()),
			)
		}
		return err
	}

	c.logger.Info("match joined",
		slog.String("match_id", string(id)),
		slog.String("opponent", string(opponent)),
	)

	return nil
}

// Reveal verifies a disclosed (move, salt) pair against the commitment
// captured at commit time and stores it. The reveal that completes the
// pair triggers settlement.
func (c *Controller) Reveal(ctx context.Context, id model.MatchID, caller model.PlayerID, move model.Move, salt string) error {
	if !move.Valid() {
		return model.ErrInvalidMove
	}

	defer c.lock(id)()

	match, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return err
	}

	if match.Status != model.MatchStatusCommitted {
		return model.ErrInvalidGameStatus
	}

	isCreator, ok := match.Side(caller)
	if !ok {
		return model.ErrUnauthorizedPlayer
	}

	// Verify against the original commitment captured at commit time
	if isCreator {
		if match.CreatorReveal != nil {
			return model.ErrAlreadyRevealed
		}
		if !match.CreatorCommitment.Matches(move, salt) {
			return model.ErrInvalidReveal
		}
		match.CreatorReveal = &move
	} else {
		if match.OpponentReveal != nil {
			return model.ErrAlreadyRevealed
		}
		if !match.OpponentCommitment.Matches(move, salt) {
			return model.ErrInvalidReveal
		}
		match.OpponentReveal = &move
	}

	match.UpdatedAt = c.clock.Now()

	if !match.BothRevealed() {
		return c.storage.SaveMatch(ctx, match)
	}

	return c.settle(ctx, match)
}

// settle decides the outcome and transitions the match to Ended exactly
// once; it only runs from the reveal that observes both sides present,
// under the match lock. Ended means "outcome decided" - fund movements
// are applied afterwards and tracked individually.
func (c *Controller) settle(ctx context.Context, match *model.Match) error {
	outcome := c.settlement.DecideWinner(*match.CreatorReveal, *match.OpponentReveal)

	plan, err := c.settlement.Plan(
		match.Wager,
		outcome,
		match.CreatorID,
		match.OpponentID,
		c.cfg.HouseAccount,
		match.Escrow,
		c.clock.Now(),
	)
	if err != nil {
		return err
	}

	match.Settlement = plan
	match.Status = model.MatchStatusEnded
	match.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return err
	}

	c.logger.Info("match settled",
		slog.String("match_id", string(match.ID)),
		slog.String("outcome", string(outcome)),
		slog.Uint64("total_pot", plan.TotalPot),
		slog.Uint64("house_fee", plan.HouseFee),
	)

	return c.applyMovements(ctx, match)
}

// RetrySettlement re-applies any fund movements that have not completed.
// Completed movements are skipped, so retrying is idempotent.
func (c *Controller) RetrySettlement(ctx context.Context, id model.MatchID) error {
	defer c.lock(id)()

	match, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return err
	}

	if match.Status != model.MatchStatusEnded || match.Settlement == nil {
		return model.ErrInvalidGameStatus
	}
	if !match.Settlement.Pending() {
		return nil
	}

	return c.applyMovements(ctx, match)
}

// applyMovements executes the settlement plan against the custody ledger.
// A failed movement is recorded on the match rather than failing the
// reveal: the outcome stands, and the movement stays retryable. Every
// transfer is keyed by its movement ID, so a movement whose completed
// status could not be persisted replays as a no-op on retry.
func (c *Controller) applyMovements(ctx context.Context, match *model.Match) error {
	for i := range match.Settlement.Movements {
		movement := &match.Settlement.Movements[i]
		if movement.Status == model.MovementCompleted {
			continue
		}

		if err := c.ledger.Transfer(ctx, movement.From, movement.To, movement.Amount, movement.ID); err != nil {
			movement.Status = model.MovementFailed
			movement.Error = err.Error()
			c.logger.Error("fund movement failed",
				slog.String("match_id", string(match.ID)),
				slog.String("movement_id", movement.ID),
				slog.String("to", string(movement.To)),
				slog.Uint64("amount", movement.Amount),
				slog.String("error", err.Error()),
			)
			continue
		}

		movement.Status = model.MovementCompleted
		movement.Error = ""

		// Persist each completion as it lands so a later fault loses as
		// little progress as possible
		if err := c.storage.SaveMatch(ctx, match); err != nil {
			c.logger.Error("failed to persist movement completion",
				slog.String("match_id", string(match.ID)),
				slog.String("movement_id", movement.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return c.storage.SaveMatch(ctx, match)
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, creator model.PlayerID, commitment model.Commitment, wager uint64) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListOpenMatches(ctx context.Context) ([]*model.Match, error)
	Join(ctx context.Context, id model.MatchID, opponent model.PlayerID, commitment model.Commitment) error
	Reveal(ctx context.Context, id model.MatchID, caller model.PlayerID, move model.Move, salt string) error
	RetrySettlement(ctx context.Context, id model.MatchID) error
}

var _ ControllerInterface = (*Controller)(nil)
