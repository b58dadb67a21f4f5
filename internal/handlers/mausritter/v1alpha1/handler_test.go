package v1alpha1_test

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	grpc_auth "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
	v1alpha1mock "github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1/mock"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice/mock"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/session"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
	charactersvcmock "github.com/KirkDiggler/mausritter-api/internal/services/character/mock"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	characters *charactersvcmock.MockService
	session    *v1alpha1mock.MockSessionService
	dice       *dicemock.MockService
	tokens     *auth.Tokens
	server     *grpc.Server
	listener   *bufconn.Listener
	conn       *grpc.ClientConn
	ctx        context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.characters = charactersvcmock.NewMockService(s.ctrl)
	s.session = v1alpha1mock.NewMockSessionService(s.ctrl)
	s.dice = dicemock.NewMockService(s.ctrl)

	tokens, err := auth.New(&auth.Config{
		Secret: []byte(strings.Repeat("s", auth.MinSecretLength)),
		TTL:    time.Hour,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)
	s.tokens = tokens

	converter, err := conversion.New(&conversion.Config{Catalog: catalog.Default()})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CharacterService: s.characters,
		SessionService:   s.session,
		DiceService:      s.dice,
		Converter:        converter,
		Tokens:           tokens,
	})
	s.Require().NoError(err)

	authn, err := v1alpha1.NewAuthenticator(&v1alpha1.AuthenticatorConfig{
		Tokens:           tokens,
		SessionService:   s.session,
		CharacterService: s.characters,
	})
	s.Require().NoError(err)

	s.listener = bufconn.Listen(1 << 20)
	s.server = grpc.NewServer(grpc.ChainUnaryInterceptor(grpc_auth.UnaryServerInterceptor(authn.AuthFunc)))
	v1alpha1.RegisterCharacterServiceServer(s.server, handler)
	go func() { _ = s.server.Serve(s.listener) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *HandlerTestSuite) client(token string) *v1alpha1.Client {
	return v1alpha1.NewClient(s.conn, token)
}

func (s *HandlerTestSuite) gmToken() string {
	token, err := s.tokens.IssueGM("gm_jti")
	s.Require().NoError(err)
	s.session.EXPECT().IsCurrentGMToken("gm_jti").Return(true).AnyTimes()
	return token
}

func (s *HandlerTestSuite) playerToken(ch *mausritter.Character) string {
	token, err := s.tokens.IssuePlayer(ch.ID, "player_jti")
	s.Require().NoError(err)
	s.characters.EXPECT().
		GetCharacter(gomock.Any(), &character.GetCharacterInput{CharacterID: ch.ID}).
		Return(&character.GetCharacterOutput{
			Character:     &character.Stored{Character: ch, Version: 4},
			PlayerTokenID: "player_jti",
		}, nil).
		AnyTimes()
	return token
}

func sampleCharacter(id, name string) *mausritter.Character {
	ch := mausritter.NewCharacter(id)
	ch.Name = name
	return ch
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(code, st.Code(), st.Message())
}

func (s *HandlerTestSuite) TestAnonymousListSeesNamesOnly() {
	hazel := sampleCharacter("char_1", "Hazel")
	s.characters.EXPECT().ListCharacters(gomock.Any(), gomock.Any()).Return(&character.ListCharactersOutput{
		Characters: []*character.Stored{{Character: hazel}},
		Summaries:  []character.Summary{{ID: "char_1", Name: "Hazel"}},
	}, nil)

	out, err := s.client("").Call(s.ctx, v1alpha1.MethodListCharacters, nil)
	s.Require().NoError(err)

	list := out["characters"].([]any)
	s.Require().Len(list, 1)
	s.Equal(map[string]any{"id": "char_1", "name": "Hazel"}, list[0])
}

func (s *HandlerTestSuite) TestGMListSeesDocuments() {
	hazel := sampleCharacter("char_1", "Hazel")
	s.characters.EXPECT().ListCharacters(gomock.Any(), gomock.Any()).Return(&character.ListCharactersOutput{
		Characters: []*character.Stored{{Character: hazel, Version: 2}},
		Summaries:  []character.Summary{{ID: "char_1", Name: "Hazel"}},
	}, nil)

	out, err := s.client(s.gmToken()).Call(s.ctx, v1alpha1.MethodListCharacters, nil)
	s.Require().NoError(err)

	list := out["characters"].([]any)
	s.Require().Len(list, 1)
	entry := list[0].(map[string]any)
	s.Equal("char_1", entry["id"])
	s.Equal(float64(2), entry["version"])
	s.Equal("Hazel", entry["document"].(map[string]any)["name"])
}

func (s *HandlerTestSuite) TestPlayerReadsOwnCharacter() {
	hazel := sampleCharacter("char_1", "Hazel")
	token := s.playerToken(hazel)

	out, err := s.client(token).Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": "char_1"})
	s.Require().NoError(err)

	view := out["character"].(map[string]any)
	s.Equal("char_1", view["id"])
	s.NotContains(view, "player_token", "players do not get their token echoed")
}

func (s *HandlerTestSuite) TestPlayerCannotReadOtherCharacter() {
	token := s.playerToken(sampleCharacter("char_1", "Hazel"))

	_, err := s.client(token).Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": "char_2"})
	s.requireCode(err, codes.PermissionDenied)
}

func (s *HandlerTestSuite) TestPlayerCannotUseGMCalls() {
	token := s.playerToken(sampleCharacter("char_1", "Hazel"))

	_, err := s.client(token).Call(s.ctx, v1alpha1.MethodCreateCharacter, nil)
	s.requireCode(err, codes.PermissionDenied)

	_, err = s.client(token).Call(s.ctx, v1alpha1.MethodResetSession, nil)
	s.requireCode(err, codes.PermissionDenied)
}

func (s *HandlerTestSuite) TestAnonymousCannotRead() {
	_, err := s.client("").Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": "char_1"})
	s.requireCode(err, codes.Unauthenticated)
}

func (s *HandlerTestSuite) TestRejectedTokens() {
	replaced, err := s.tokens.IssueGM("old_jti")
	s.Require().NoError(err)
	s.session.EXPECT().IsCurrentGMToken("old_jti").Return(false)

	_, err = s.client(replaced).Call(s.ctx, v1alpha1.MethodGetSession, nil)
	s.requireCode(err, codes.Unauthenticated)

	_, err = s.client("garbage").Call(s.ctx, v1alpha1.MethodListCharacters, nil)
	s.requireCode(err, codes.Unauthenticated)
}

func (s *HandlerTestSuite) TestRevokedPlayerToken() {
	token, err := s.tokens.IssuePlayer("char_1", "stale_jti")
	s.Require().NoError(err)
	s.characters.EXPECT().GetCharacter(gomock.Any(), gomock.Any()).Return(&character.GetCharacterOutput{
		Character:     &character.Stored{Character: sampleCharacter("char_1", "Hazel")},
		PlayerTokenID: "fresh_jti",
	}, nil)

	_, err = s.client(token).Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": "char_1"})
	s.requireCode(err, codes.Unauthenticated)
}

func (s *HandlerTestSuite) TestDeletedCharacterToken() {
	token, err := s.tokens.IssuePlayer("char_1", "player_jti")
	s.Require().NoError(err)
	s.characters.EXPECT().GetCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character char_1 not found"))

	_, err = s.client(token).Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": "char_1"})
	s.requireCode(err, codes.Unauthenticated)
}

func (s *HandlerTestSuite) TestCreateCharacterIssuesPlayerToken() {
	hazel := sampleCharacter("char_7", "Hazel")
	s.characters.EXPECT().
		CreateCharacter(gomock.Any(), &character.CreateCharacterInput{}).
		Return(&character.CreateCharacterOutput{
			Character:     &character.Stored{Character: hazel, Version: 1},
			PlayerTokenID: "token_7",
			Warnings:      []string{"no room for Lantern"},
		}, nil)

	out, err := s.client(s.gmToken()).Call(s.ctx, v1alpha1.MethodCreateCharacter, nil)
	s.Require().NoError(err)

	s.Equal([]any{"no room for Lantern"}, out["warnings"])
	view := out["character"].(map[string]any)
	p, err := s.tokens.Verify(view["player_token"].(string))
	s.Require().NoError(err)
	s.Equal("char_7", p.CharacterID)
	s.Equal("token_7", p.TokenID)
}

func (s *HandlerTestSuite) TestUpdateInventoryMapsAction() {
	hazel := sampleCharacter("char_1", "Hazel")
	token := s.playerToken(hazel)

	s.characters.EXPECT().
		UpdateInventory(gomock.Any(), &character.UpdateInventoryInput{
			CharacterID: "char_1",
			HirelingID:  "hireling_2",
			Action: character.InventoryAction{
				Kind:   character.ActionToggleCharge,
				SlotID: inventory.SlotID("pack_1"),
				Marker: 2,
			},
		}).
		Return(&character.UpdateInventoryOutput{Character: &character.Stored{Character: hazel, Version: 5}}, nil)

	out, err := s.client(token).Call(s.ctx, v1alpha1.MethodUpdateInventory, map[string]any{
		"character_id": "char_1",
		"hireling_id":  "hireling_2",
		"action":       map[string]any{"kind": "toggle_charge", "slot_id": "pack_1", "marker": 2},
	})
	s.Require().NoError(err)
	s.Equal(float64(5), out["character"].(map[string]any)["version"])
}

func (s *HandlerTestSuite) TestUnknownFieldRejected() {
	_, err := s.client(s.gmToken()).Call(s.ctx, v1alpha1.MethodRenameSession, map[string]any{"title": "x"})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestServiceErrorCodeSurvives() {
	s.characters.EXPECT().GetCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character char_3 not found"))

	_, err := s.client(s.gmToken()).Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": "char_3"})
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestImportReturnsNewGMToken() {
	s.session.EXPECT().
		Import(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *session.ImportInput) (*session.ImportOutput, error) {
			s.JSONEq(`{"version":"1.0","session":{}}`, string(input.Data))
			return &session.ImportOutput{
				Session:   session.Info{ID: "session_2", Name: "Gloomwood"},
				Imported:  3,
				GMTokenID: "gm_jti_2",
			}, nil
		})

	out, err := s.client(s.gmToken()).Call(s.ctx, v1alpha1.MethodImportSession, map[string]any{
		"session_file": map[string]any{"version": "1.0", "session": map[string]any{}},
	})
	s.Require().NoError(err)

	s.Equal(float64(3), out["imported"])
	s.Equal("Gloomwood", out["session"].(map[string]any)["name"])
	p, err := s.tokens.Verify(out["gm_token"].(string))
	s.Require().NoError(err)
	s.Equal("gm_jti_2", p.TokenID)
}

func (s *HandlerTestSuite) TestPlayerRollsIntoOwnLog() {
	token := s.playerToken(sampleCharacter("char_1", "Hazel"))

	s.dice.EXPECT().
		RollDice(gomock.Any(), &dice.RollDiceInput{EntityID: "char_1", Notation: "1d6"}).
		Return(&dice.RollDiceOutput{Roll: &dicesession.DiceRoll{RollID: "roll_1", Total: 4, Dice: []int{4}}}, nil)

	out, err := s.client(token).Call(s.ctx, v1alpha1.MethodRollDice, map[string]any{"notation": "1d6"})
	s.Require().NoError(err)
	s.Equal(float64(4), out["roll"].(map[string]any)["total"])

	_, err = s.client(token).Call(s.ctx, v1alpha1.MethodRollDice, map[string]any{"entity_id": "char_2", "notation": "1d6"})
	s.requireCode(err, codes.PermissionDenied)
}

func (s *HandlerTestSuite) TestGMRollsIntoGMLog() {
	s.dice.EXPECT().
		RollSave(gomock.Any(), &dice.RollSaveInput{EntityID: v1alpha1.GMEntityID, Attribute: "str", Value: 9}).
		Return(&dice.RollSaveOutput{Roll: &dicesession.DiceRoll{RollID: "roll_1", Total: 3, Success: true}}, nil)

	out, err := s.client(s.gmToken()).Call(s.ctx, v1alpha1.MethodRollSave, map[string]any{"attribute": "str", "value": 9})
	s.Require().NoError(err)
	s.Equal(true, out["roll"].(map[string]any)["success"])
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestNewHandlerRequiresDependencies(t *testing.T) {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
