package memory

import (
	"context"
	"math"
	"sync"

	"github.com/rpswager/rpswager/internal/ledger"
	"github.com/rpswager/rpswager/internal/model"
)

// Ledger is an in-memory implementation of the custody ledger
type Ledger struct {
	mu sync.Mutex

	accounts map[model.PlayerID]uint64
	escrows  map[model.EscrowHandle]uint64
	applied  map[string]struct{}
}

// New creates a new in-memory ledger with all balances at zero
func New() *Ledger {
	return &Ledger{
		accounts: make(map[model.PlayerID]uint64),
		escrows:  make(map[model.EscrowHandle]uint64),
		applied:  make(map[string]struct{}),
	}
}

// Ensure Ledger implements the interface
var _ ledger.Ledger = (*Ledger)(nil)

func (l *Ledger) Deposit(ctx context.Context, from model.PlayerID, into model.EscrowHandle, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.accounts[from] < amount {
		return ledger.ErrInsufficientFunds
	}
	l.accounts[from] -= amount
	l.escrows[into] += amount
	return nil
}

func (l *Ledger) Transfer(ctx context.Context, from model.EscrowHandle, to model.PlayerID, amount uint64, ref string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ref != "" {
		if _, done := l.applied[ref]; done {
			return nil
		}
	}
	if l.escrows[from] < amount {
		return ledger.ErrInsufficientFunds
	}
	l.escrows[from] -= amount
	l.accounts[to] += amount
	if ref != "" {
		l.applied[ref] = struct{}{}
	}
	return nil
}

func (l *Ledger) Credit(ctx context.Context, to model.PlayerID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.accounts[to] > math.MaxUint64-amount {
		return ledger.ErrAmountTooLarge
	}
	l.accounts[to] += amount
	return nil
}

func (l *Ledger) Balance(ctx context.Context, of model.PlayerID) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[of], nil
}

func (l *Ledger) EscrowBalance(ctx context.Context, handle model.EscrowHandle) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.escrows[handle], nil
}
