package dice_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session/mock"
)

type scriptedRoller struct {
	values []int
	sizes  []int
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	if len(r.values) == 0 {
		return 0, fmt.Errorf("script exhausted")
	}
	r.sizes = append(r.sizes, size)
	v := r.values[0]
	r.values = r.values[1:]
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func TestParseNotation(t *testing.T) {
	testCases := []struct {
		notation string
		want     dice.Notation
		wantErr  bool
	}{
		{notation: "2d6", want: dice.Notation{Count: 2, Size: 6}},
		{notation: " 1D20+5 ", want: dice.Notation{Count: 1, Size: 20, Modifier: 5}},
		{notation: "3d8-2", want: dice.Notation{Count: 3, Size: 8, Modifier: -2}},
		{notation: "100d6", want: dice.Notation{Count: 100, Size: 6}},
		{notation: "101d6", wantErr: true},
		{notation: "0d6", wantErr: true},
		{notation: "2d0", wantErr: true},
		{notation: "d6", wantErr: true},
		{notation: "2d6+", wantErr: true},
		{notation: "2x6", wantErr: true},
		{notation: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.notation, func(t *testing.T) {
			got, err := dice.ParseNotation(tc.notation)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNotationString(t *testing.T) {
	assert.Equal(t, "2d6", dice.Notation{Count: 2, Size: 6}.String())
	assert.Equal(t, "1d20+5", dice.Notation{Count: 1, Size: 20, Modifier: 5}.String())
	assert.Equal(t, "3d8-2", dice.Notation{Count: 3, Size: 8, Modifier: -2}.String())
}

type OrchestratorTestSuite struct {
	suite.Suite
	roller       *scriptedRoller
	repo         *dicesession.InMemoryRepository
	orchestrator dice.Service
	ctx          context.Context
	now          time.Time
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = &scriptedRoller{}
	s.repo = dicesession.NewInMemory()
	s.now = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	orchestrator, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: s.repo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          s.roller,
		Clock:           &clock.Fixed{T: s.now},
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) TestRollDice() {
	s.roller.values = []int{3, 5}

	out, err := s.orchestrator.RollDice(s.ctx, &dice.RollDiceInput{
		EntityID:    "char_1",
		Notation:    "2D6+1",
		Description: "Damage",
	})
	s.Require().NoError(err)

	s.Equal(&dicesession.DiceRoll{
		RollID:      "roll_1",
		Kind:        dicesession.KindRoll,
		Notation:    "2d6+1",
		Dice:        []int{3, 5},
		Modifier:    1,
		Total:       9,
		Description: "Damage",
		RolledAt:    s.now,
	}, out.Roll)
	s.Equal([]int{6, 6}, s.roller.sizes)

	logged, err := s.orchestrator.GetRollSession(s.ctx, &dice.GetRollSessionInput{EntityID: "char_1"})
	s.Require().NoError(err)
	s.Require().Len(logged.Rolls, 1)
	s.Equal("roll_1", logged.Rolls[0].RollID)
}

func (s *OrchestratorTestSuite) TestRollDiceNegativeModifier() {
	s.roller.values = []int{1}

	out, err := s.orchestrator.RollDice(s.ctx, &dice.RollDiceInput{EntityID: "gm", Notation: "1d4-3"})
	s.Require().NoError(err)
	s.Equal(-2, out.Roll.Total)
}

func (s *OrchestratorTestSuite) TestRollDiceValidation() {
	testCases := []struct {
		name  string
		input *dice.RollDiceInput
	}{
		{name: "nil input", input: nil},
		{name: "no entity", input: &dice.RollDiceInput{Notation: "1d6"}},
		{name: "no notation", input: &dice.RollDiceInput{EntityID: "gm"}},
		{name: "bad notation", input: &dice.RollDiceInput{EntityID: "gm", Notation: "lots"}},
		{name: "too many dice", input: &dice.RollDiceInput{EntityID: "gm", Notation: "500d6"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.RollDice(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
	s.Empty(s.roller.sizes, "nothing is rolled for invalid input")
}

func (s *OrchestratorTestSuite) TestRollSave() {
	testCases := []struct {
		name    string
		mode    dice.SaveMode
		values  []int
		total   int
		success bool
	}{
		{name: "under", mode: dice.SaveNormal, values: []int{7}, total: 7, success: true},
		{name: "equal succeeds", mode: "", values: []int{9}, total: 9, success: true},
		{name: "over", mode: dice.SaveNormal, values: []int{15}, total: 15, success: false},
		{name: "advantage keeps lower", mode: dice.SaveAdvantage, values: []int{17, 4}, total: 4, success: true},
		{name: "disadvantage keeps higher", mode: dice.SaveDisadvantage, values: []int{4, 17}, total: 17, success: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.values = tc.values

			out, err := s.orchestrator.RollSave(s.ctx, &dice.RollSaveInput{
				EntityID:  "char_1",
				Attribute: "str",
				Value:     9,
				Mode:      tc.mode,
			})
			s.Require().NoError(err)
			s.Equal(dicesession.KindSave, out.Roll.Kind)
			s.Equal(tc.values, out.Roll.Dice)
			s.Equal(tc.total, out.Roll.Total)
			s.Equal(9, out.Roll.Target)
			s.Equal(tc.success, out.Roll.Success)
		})
	}
}

func (s *OrchestratorTestSuite) TestRollSaveDescription() {
	s.roller.values = []int{3, 12}

	out, err := s.orchestrator.RollSave(s.ctx, &dice.RollSaveInput{
		EntityID:  "char_1",
		Attribute: "wil",
		Value:     8,
		Mode:      dice.SaveAdvantage,
	})
	s.Require().NoError(err)
	s.Equal("2d20", out.Roll.Notation)
	s.Equal("WIL save with advantage", out.Roll.Description)
	s.Equal([]int{20, 20}, s.roller.sizes)
}

func (s *OrchestratorTestSuite) TestRollSaveValidation() {
	_, err := s.orchestrator.RollSave(s.ctx, &dice.RollSaveInput{EntityID: "char_1", Value: 5, Mode: "sideways"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollSave(s.ctx, &dice.RollSaveInput{Value: 5})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollSave(s.ctx, &dice.RollSaveInput{EntityID: "char_1", Value: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestClearRollSession() {
	s.roller.values = []int{1, 2}
	for i := 0; i < 2; i++ {
		_, err := s.orchestrator.RollDice(s.ctx, &dice.RollDiceInput{EntityID: "gm", Notation: "1d6"})
		s.Require().NoError(err)
	}

	out, err := s.orchestrator.ClearRollSession(s.ctx, &dice.ClearRollSessionInput{EntityID: "gm"})
	s.Require().NoError(err)
	s.Equal(2, out.RollsDeleted)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func TestRollSurvivesLogFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := dicesessionmock.NewMockRepository(ctrl)
	repo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis is down"))

	orchestrator, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: repo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          &scriptedRoller{values: []int{4}},
	})
	require.NoError(t, err)

	out, err := orchestrator.RollDice(context.Background(), &dice.RollDiceInput{EntityID: "gm", Notation: "1d6"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Roll.Total)
}

func TestNewOrchestratorRequiresDependencies(t *testing.T) {
	_, err := dice.NewOrchestrator(&dice.Config{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = dice.NewOrchestrator(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}
