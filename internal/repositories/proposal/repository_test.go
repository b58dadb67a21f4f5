package proposal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	"github.com/KirkDiggler/mausritter-api/internal/repositories/proposal"
	"github.com/KirkDiggler/mausritter-api/internal/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T, c clock.Clock) proposal.Repository
	clock   *clock.Fixed
	repo    proposal.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.clock = &clock.Fixed{T: time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)}
	s.repo = s.newRepo(s.T(), s.clock)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) proposal(id string) *mausritter.Proposal {
	return &mausritter.Proposal{
		ID:          id,
		CharacterID: "char_1",
		Name:        "Ada Ashdown",
		Background:  "Beetleherd",
		STR:         9, DEX: 8, WIL: 7, HP: 3, Pips: 2,
		Items:     []string{"Torches", "Rations"},
		Hirelings: []mausritter.ProposedHireling{{Type: "Loyal beetle", HP: 3}},
		CreatedAt: s.clock.T,
		ExpiresAt: s.clock.T.Add(15 * time.Minute),
	}
}

func (s *RepositoryTestSuite) TestPutAndGet() {
	p := s.proposal("prop_1")
	_, err := s.repo.Put(s.ctx, &proposal.PutInput{Proposal: p})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &proposal.GetInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	s.Equal(p, out.Proposal)
}

func (s *RepositoryTestSuite) TestPutReplacesPending() {
	_, err := s.repo.Put(s.ctx, &proposal.PutInput{Proposal: s.proposal("prop_1")})
	s.Require().NoError(err)
	_, err = s.repo.Put(s.ctx, &proposal.PutInput{Proposal: s.proposal("prop_2")})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &proposal.GetInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	s.Equal("prop_2", out.Proposal.ID)
}

func (s *RepositoryTestSuite) TestExpiredProposalIsGone() {
	_, err := s.repo.Put(s.ctx, &proposal.PutInput{Proposal: s.proposal("prop_1")})
	s.Require().NoError(err)

	s.clock.Advance(15 * time.Minute)
	_, err = s.repo.Get(s.ctx, &proposal.GetInput{CharacterID: "char_1"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestPutRejects() {
	expired := s.proposal("prop_old")
	expired.ExpiresAt = s.clock.T.Add(-time.Second)
	missingID := s.proposal("")
	noExpiry := s.proposal("prop_1")
	noExpiry.ExpiresAt = time.Time{}

	testCases := []struct {
		name  string
		input *proposal.PutInput
	}{
		{"nil input", nil},
		{"nil proposal", &proposal.PutInput{}},
		{"expired", &proposal.PutInput{Proposal: expired}},
		{"missing id", &proposal.PutInput{Proposal: missingID}},
		{"no expiry", &proposal.PutInput{Proposal: noExpiry}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Put(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Put(s.ctx, &proposal.PutInput{Proposal: s.proposal("prop_1")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &proposal.DeleteInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	_, err = s.repo.Get(s.ctx, &proposal.GetInput{CharacterID: "char_1"})
	s.True(errors.IsNotFound(err))

	// deleting again is fine
	_, err = s.repo.Delete(s.ctx, &proposal.DeleteInput{CharacterID: "char_1"})
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestGetRequiresCharacter() {
	_, err := s.repo.Get(s.ctx, &proposal.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestReturnedProposalIsACopy() {
	_, err := s.repo.Put(s.ctx, &proposal.PutInput{Proposal: s.proposal("prop_1")})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &proposal.GetInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	out.Proposal.Items[0] = "Changed"

	again, err := s.repo.Get(s.ctx, &proposal.GetInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	s.Equal("Torches", again.Proposal.Items[0])
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(_ *testing.T, c clock.Clock) proposal.Repository {
			return proposal.NewInMemory(c)
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T, c clock.Clock) proposal.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := proposal.NewRedis(&proposal.RedisConfig{Client: client, Clock: c})
			if err != nil {
				t.Fatal(err)
			}
			return repo
		},
	})
}

func TestRedisKeyExpires(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	fixed := &clock.Fixed{T: time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)}
	repo, err := proposal.NewRedis(&proposal.RedisConfig{Client: client, Clock: fixed})
	if err != nil {
		t.Fatal(err)
	}

	_, err = repo.Put(context.Background(), &proposal.PutInput{Proposal: &mausritter.Proposal{
		ID: "prop_1", CharacterID: "char_1", ExpiresAt: fixed.T.Add(time.Minute),
	}})
	if err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("proposal:char_1"); ttl != time.Minute {
		t.Fatalf("ttl = %v, want 1m", ttl)
	}

	mr.FastForward(time.Minute)
	if mr.Exists("proposal:char_1") {
		t.Fatal("expected key to expire")
	}
}
