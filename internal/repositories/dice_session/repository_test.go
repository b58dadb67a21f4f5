package dicesession_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/mausritter-api/internal/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) dicesession.Repository
	repo    dicesession.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
}

func roll(n int) dicesession.DiceRoll {
	return dicesession.DiceRoll{
		RollID:   fmt.Sprintf("roll_%d", n),
		Kind:     dicesession.KindRoll,
		Notation: "2d6",
		Dice:     []int{n % 6, 1},
		Total:    n%6 + 1,
		RolledAt: time.Date(2024, 5, 1, 12, 0, n, 0, time.UTC),
	}
}

func (s *RepositoryTestSuite) TestAppendAndList() {
	for i := 1; i <= 3; i++ {
		_, err := s.repo.Append(s.ctx, dicesession.AppendInput{EntityID: "char_1", Roll: roll(i)})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, dicesession.ListInput{EntityID: "char_1"})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, 3)
	s.Equal("roll_1", out.Rolls[0].RollID)
	s.Equal("roll_3", out.Rolls[2].RollID)
	s.Equal([]int{3, 1}, out.Rolls[2].Dice)
}

func (s *RepositoryTestSuite) TestLogIsCapped() {
	for i := 1; i <= dicesession.MaxRolls+5; i++ {
		_, err := s.repo.Append(s.ctx, dicesession.AppendInput{EntityID: "gm", Roll: roll(i)})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, dicesession.ListInput{EntityID: "gm"})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, dicesession.MaxRolls)
	s.Equal("roll_6", out.Rolls[0].RollID)
}

func (s *RepositoryTestSuite) TestEntitiesAreSeparate() {
	_, err := s.repo.Append(s.ctx, dicesession.AppendInput{EntityID: "char_1", Roll: roll(1)})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, dicesession.ListInput{EntityID: "char_2"})
	s.Require().NoError(err)
	s.Empty(out.Rolls)
}

func (s *RepositoryTestSuite) TestClear() {
	for i := 1; i <= 2; i++ {
		_, err := s.repo.Append(s.ctx, dicesession.AppendInput{EntityID: "char_1", Roll: roll(i)})
		s.Require().NoError(err)
	}

	cleared, err := s.repo.Clear(s.ctx, dicesession.ClearInput{EntityID: "char_1"})
	s.Require().NoError(err)
	s.Equal(2, cleared.RollsDeleted)

	out, err := s.repo.List(s.ctx, dicesession.ListInput{EntityID: "char_1"})
	s.Require().NoError(err)
	s.Empty(out.Rolls)

	cleared, err = s.repo.Clear(s.ctx, dicesession.ClearInput{EntityID: "char_1"})
	s.Require().NoError(err)
	s.Zero(cleared.RollsDeleted)
}

func (s *RepositoryTestSuite) TestRequiresEntity() {
	_, err := s.repo.Append(s.ctx, dicesession.AppendInput{Roll: roll(1)})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.List(s.ctx, dicesession.ListInput{})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Clear(s.ctx, dicesession.ClearInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) dicesession.Repository {
		client, _ := testutils.CreateTestRedisClient(t)
		repo, err := dicesession.NewRedis(&dicesession.RedisConfig{Client: client})
		if err != nil {
			t.Fatal(err)
		}
		return repo
	}})
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(_ *testing.T) dicesession.Repository {
		return dicesession.NewInMemory()
	}})
}

func TestRedisLogExpires(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := dicesession.NewRedis(&dicesession.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := repo.Append(ctx, dicesession.AppendInput{EntityID: "gm", Roll: roll(1), TTL: time.Minute}); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("dice_rolls:gm"); ttl != time.Minute {
		t.Fatalf("ttl = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	out, err := repo.List(ctx, dicesession.ListInput{EntityID: "gm"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rolls) != 0 {
		t.Fatalf("expected expired log, got %d rolls", len(out.Rolls))
	}
}
