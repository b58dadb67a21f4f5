package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/config"
	"github.com/KirkDiggler/mausritter-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
	characterorch "github.com/KirkDiggler/mausritter-api/internal/orchestrators/character"
	diceorch "github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/session"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mausritter-api/internal/redis"
	characterrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/character"
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
	proposalrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/proposal"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

// stores are the repositories for the configured backend
type stores struct {
	characters characterrepo.Repository
	proposals  proposalrepo.Repository
	rolls      dicesession.Repository
	close      func() error
}

// openStores connects the configured backend. SQLite keeps characters on
// disk; proposals and roll logs are short lived and stay in memory.
func openStores(ctx context.Context, cfg *config.Config, clk clock.Clock) (*stores, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{PoolSize: cfg.RedisPoolSize})
		if err != nil {
			return nil, err
		}
		if err := redis.Connect(ctx, client, 0); err != nil {
			_ = client.Close()
			return nil, err
		}

		characters, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client, Clock: clk})
		if err != nil {
			return nil, err
		}
		proposals, err := proposalrepo.NewRedis(&proposalrepo.RedisConfig{Client: client, Clock: clk})
		if err != nil {
			return nil, err
		}
		rolls, err := dicesession.NewRedis(&dicesession.RedisConfig{Client: client})
		if err != nil {
			return nil, err
		}
		return &stores{characters: characters, proposals: proposals, rolls: rolls, close: client.Close}, nil

	case config.StorageSQLite:
		characters, err := characterrepo.NewSQLite(&characterrepo.SQLiteConfig{Path: cfg.SQLitePath, Clock: clk})
		if err != nil {
			return nil, err
		}
		return &stores{
			characters: characters,
			proposals:  proposalrepo.NewInMemory(clk),
			rolls:      dicesession.NewInMemory(),
			close:      characters.Close,
		}, nil

	default:
		return nil, errors.InvalidArgumentf("unknown storage backend %q", cfg.Storage)
	}
}

// app is everything the gRPC server serves
type app struct {
	handler       *v1alpha1.Handler
	authenticator *v1alpha1.Authenticator
	bus           events.EventBus
	stores        *stores
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	clk := clock.New()

	st, err := openStores(ctx, cfg, clk)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage")
	}

	cat := catalog.Default()
	converter, err := conversion.New(&conversion.Config{Catalog: cat})
	if err != nil {
		return nil, err
	}

	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		DiceRoller: dice.DefaultRoller,
		Tables:     catalog.DefaultTables(),
	})
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	tokenIDs := idgen.NewUUID("tok")

	characters, err := characterorch.New(&characterorch.Config{
		CharacterRepo: st.characters,
		ProposalRepo:  st.proposals,
		Engine:        adapter,
		Converter:     converter,
		Catalog:       cat,
		EventBus:      bus,
		CharacterIDs:  idgen.NewPrefixed("char"),
		HirelingIDs:   idgen.NewPrefixed("hireling"),
		TokenIDs:      tokenIDs,
		ProposalIDs:   idgen.NewPrefixed("proposal"),
		Clock:         clk,
		ProposalTTL:   cfg.ProposalTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create character orchestrator")
	}

	sessions, err := session.New(&session.Config{
		CharacterRepo: st.characters,
		Converter:     converter,
		TokenIDs:      tokenIDs,
		SessionIDs:    idgen.NewUUID("session"),
		Clock:         clk,
		Name:          cfg.SessionName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	rolls, err := diceorch.NewOrchestrator(&diceorch.Config{
		DiceSessionRepo: st.rolls,
		IDGenerator:     idgen.NewPrefixed("roll"),
		Roller:          dice.DefaultRoller,
		Clock:           clk,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice orchestrator")
	}

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		if secret, err = auth.RandomSecret(); err != nil {
			return nil, err
		}
		slog.WarnContext(ctx, "no token secret configured, tokens will not survive a restart")
	}
	tokens, err := auth.New(&auth.Config{Secret: secret, TTL: cfg.TokenTTL, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token signer")
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CharacterService: characters,
		SessionService:   sessions,
		DiceService:      rolls,
		Converter:        converter,
		Tokens:           tokens,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create handler")
	}

	authenticator, err := v1alpha1.NewAuthenticator(&v1alpha1.AuthenticatorConfig{
		Tokens:           tokens,
		SessionService:   sessions,
		CharacterService: characters,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create authenticator")
	}

	bus.SubscribeFunc(mausritter.EventCharacterChanged, 100, func(ctx context.Context, e events.Event) error {
		slog.DebugContext(ctx, "character changed", "character_id", e.Source().GetID())
		return nil
	})

	return &app{
		handler:       handler,
		authenticator: authenticator,
		bus:           bus,
		stores:        st,
	}, nil
}
