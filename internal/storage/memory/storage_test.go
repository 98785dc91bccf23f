package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rpswager/rpswager/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     true,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.True(retrieved.IsGuest)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hashed",
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)

	byName, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byName.PlayerID)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *StorageSuite) newMatch(id model.MatchID, status model.MatchStatus) *model.Match {
	return &model.Match{
		ID:                id,
		CreatorID:         "player-1",
		CreatorCommitment: model.ComputeCommitment(model.MoveRock, "salt"),
		Wager:             100,
		Status:            status,
		Escrow:            "esc_test",
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := s.newMatch("MATCH1", model.MatchStatusOpen)

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(match.CreatorCommitment, retrieved.CreatorCommitment)
	s.Equal(uint64(100), retrieved.Wager)
}

func (s *StorageSuite) TestStoredMatchIsNotAliasedByCallers() {
	move := model.MoveRock
	match := s.newMatch("MATCH1", model.MatchStatusEnded)
	match.CreatorReveal = &move
	match.Settlement = &model.Settlement{
		Outcome:  model.OutcomeCreatorWins,
		TotalPot: 200,
		HouseFee: 6,
		Movements: []model.FundMovement{
			{ID: "mv-1", From: "esc_test", To: "player-1", Amount: 194, Status: model.MovementPending},
		},
	}
	s.Require().NoError(s.storage.SaveMatch(s.ctx, match))

	// Mutating either the saved struct or a retrieved one must not leak
	// into the stored record
	match.Status = model.MatchStatusOpen
	first, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal(model.MatchStatusEnded, first.Status)

	*first.CreatorReveal = model.MoveScissors
	first.Settlement.Movements[0].Status = model.MovementCompleted

	second, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal(model.MoveRock, *second.CreatorReveal)
	s.Equal(model.MovementPending, second.Settlement.Movements[0].Status)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestDeleteMatch() {
	_ = s.storage.SaveMatch(s.ctx, s.newMatch("MATCH1", model.MatchStatusOpen))

	err := s.storage.DeleteMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "MATCH1")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestListOpenMatchesFiltersByStatus() {
	_ = s.storage.SaveMatch(s.ctx, s.newMatch("OPEN1", model.MatchStatusOpen))
	_ = s.storage.SaveMatch(s.ctx, s.newMatch("OPEN2", model.MatchStatusOpen))
	_ = s.storage.SaveMatch(s.ctx, s.newMatch("DONE1", model.MatchStatusEnded))
	_ = s.storage.SaveMatch(s.ctx, s.newMatch("COMM1", model.MatchStatusCommitted))

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(open, 2)
	for _, m := range open {
		s.Equal(model.MatchStatusOpen, m.Status)
	}
}

func (s *StorageSuite) TestListOpenMatchesEmpty() {
	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}
