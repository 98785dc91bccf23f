package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/rpswager/rpswager/internal/model"
)

// Ledger errors, distinct from engine validation errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAmountTooLarge    = errors.New("amount exceeds ledger capacity")
)

// Ledger is the custody capability that holds and moves funds between
// player accounts and match escrows. Transfers out of an escrow are only
// ever invoked by match settlement; nothing else is handed that capability.
type Ledger interface {
	// Deposit moves amount from a player account into a match escrow
	Deposit(ctx context.Context, from model.PlayerID, into model.EscrowHandle, amount uint64) error

	// Transfer moves amount out of a match escrow to a player account.
	// ref is an idempotency reference: a transfer that already applied
	// under the same non-empty ref is a no-op, so callers can safely
	// re-drive a movement whose outcome they could not record.
	Transfer(ctx context.Context, from model.EscrowHandle, to model.PlayerID, amount uint64, ref string) error

	// Credit adds amount to a player account (operator faucet)
	Credit(ctx context.Context, to model.PlayerID, amount uint64) error

	// Balance returns a player account balance; unknown accounts are zero
	Balance(ctx context.Context, of model.PlayerID) (uint64, error)

	// EscrowBalance returns the funds currently held for an escrow handle
	EscrowBalance(ctx context.Context, handle model.EscrowHandle) (uint64, error)
}

// DeriveEscrowHandle computes the opaque escrow reference for a match.
// The derivation is deterministic over match identity (match ID, creator,
// wager), so the handle can always be reconstructed from match data.
func DeriveEscrowHandle(matchID model.MatchID, creator model.PlayerID, wager uint64) model.EscrowHandle {
	var wagerBytes [8]byte
	binary.BigEndian.PutUint64(wagerBytes[:], wager)

	h := sha256.New()
	h.Write([]byte("escrow"))
	h.Write([]byte(matchID))
	h.Write([]byte(creator))
	h.Write(wagerBytes[:])

	return model.EscrowHandle("esc_" + hex.EncodeToString(h.Sum(nil)))
}
