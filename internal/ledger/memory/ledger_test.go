package memory

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rpswager/rpswager/internal/ledger"
)

type LedgerSuite struct {
	suite.Suite
	ledger *Ledger
	ctx    context.Context
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ledger = New()
	s.ctx = context.Background()
}

func (s *LedgerSuite) TestBalancesStartAtZero() {
	balance, err := s.ledger.Balance(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Zero(balance)

	escrow, err := s.ledger.EscrowBalance(s.ctx, "esc_test")
	s.Require().NoError(err)
	s.Zero(escrow)
}

func (s *LedgerSuite) TestCreditAddsFunds() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 500))
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 250))

	balance, err := s.ledger.Balance(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(uint64(750), balance)
}

func (s *LedgerSuite) TestCreditRejectsOverflow() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", math.MaxUint64))

	err := s.ledger.Credit(s.ctx, "player-1", 1)
	s.ErrorIs(err, ledger.ErrAmountTooLarge)
}

func (s *LedgerSuite) TestDepositMovesAccountToEscrow() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 1000))

	err := s.ledger.Deposit(s.ctx, "player-1", "esc_test", 400)
	s.Require().NoError(err)

	balance, _ := s.ledger.Balance(s.ctx, "player-1")
	s.Equal(uint64(600), balance)

	escrow, _ := s.ledger.EscrowBalance(s.ctx, "esc_test")
	s.Equal(uint64(400), escrow)
}

func (s *LedgerSuite) TestDepositFailsWithInsufficientFunds() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 100))

	err := s.ledger.Deposit(s.ctx, "player-1", "esc_test", 101)
	s.ErrorIs(err, ledger.ErrInsufficientFunds)

	// Nothing moved
	balance, _ := s.ledger.Balance(s.ctx, "player-1")
	s.Equal(uint64(100), balance)
	escrow, _ := s.ledger.EscrowBalance(s.ctx, "esc_test")
	s.Zero(escrow)
}

func (s *LedgerSuite) TestTransferMovesEscrowToAccount() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 1000))
	s.Require().NoError(s.ledger.Deposit(s.ctx, "player-1", "esc_test", 1000))

	err := s.ledger.Transfer(s.ctx, "esc_test", "player-2", 600, "mv-1")
	s.Require().NoError(err)

	escrow, _ := s.ledger.EscrowBalance(s.ctx, "esc_test")
	s.Equal(uint64(400), escrow)
	balance, _ := s.ledger.Balance(s.ctx, "player-2")
	s.Equal(uint64(600), balance)
}

func (s *LedgerSuite) TestTransferFailsWhenEscrowShort() {
	err := s.ledger.Transfer(s.ctx, "esc_empty", "player-1", 1, "mv-1")
	s.ErrorIs(err, ledger.ErrInsufficientFunds)
}

func (s *LedgerSuite) TestTransferReplayWithSameRefIsNoOp() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 1000))
	s.Require().NoError(s.ledger.Deposit(s.ctx, "player-1", "esc_test", 1000))

	s.Require().NoError(s.ledger.Transfer(s.ctx, "esc_test", "player-2", 600, "mv-1"))
	s.Require().NoError(s.ledger.Transfer(s.ctx, "esc_test", "player-2", 600, "mv-1"))

	escrow, _ := s.ledger.EscrowBalance(s.ctx, "esc_test")
	s.Equal(uint64(400), escrow)
	balance, _ := s.ledger.Balance(s.ctx, "player-2")
	s.Equal(uint64(600), balance)
}

func (s *LedgerSuite) TestTransferDistinctRefsBothApply() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 1000))
	s.Require().NoError(s.ledger.Deposit(s.ctx, "player-1", "esc_test", 1000))

	s.Require().NoError(s.ledger.Transfer(s.ctx, "esc_test", "player-2", 300, "mv-1"))
	s.Require().NoError(s.ledger.Transfer(s.ctx, "esc_test", "player-2", 300, "mv-2"))

	balance, _ := s.ledger.Balance(s.ctx, "player-2")
	s.Equal(uint64(600), balance)
}

func (s *LedgerSuite) TestFailedTransferRefStaysRetryable() {
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 500))
	s.Require().NoError(s.ledger.Deposit(s.ctx, "player-1", "esc_test", 500))

	err := s.ledger.Transfer(s.ctx, "esc_test", "player-2", 600, "mv-1")
	s.Require().ErrorIs(err, ledger.ErrInsufficientFunds)

	// The ref is only consumed by a transfer that applied
	s.Require().NoError(s.ledger.Credit(s.ctx, "player-1", 100))
	s.Require().NoError(s.ledger.Deposit(s.ctx, "player-1", "esc_test", 100))
	s.Require().NoError(s.ledger.Transfer(s.ctx, "esc_test", "player-2", 600, "mv-1"))

	balance, _ := s.ledger.Balance(s.ctx, "player-2")
	s.Equal(uint64(600), balance)
}

func (s *LedgerSuite) TestDepositZeroAmount() {
	err := s.ledger.Deposit(s.ctx, "player-1", "esc_test", 0)
	s.Require().NoError(err)
}
