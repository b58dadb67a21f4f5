package proposal

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/mausritter-api/internal/redis"
)

const proposalKeyPrefix = "proposal:"

// RedisConfig contains configuration for the Redis proposal repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a Redis-backed proposal repository. Keys expire with the
// proposal; reads also check the clock.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &redisRepository{client: cfg.Client, clock: c}, nil
}

func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ttl, err := validateProposal(input.Proposal, r.clock.Now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Proposal)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal proposal")
	}
	key := proposalKeyPrefix + input.Proposal.CharacterID
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store proposal")
	}

	slog.DebugContext(ctx, "stored proposal",
		"character_id", input.Proposal.CharacterID,
		"proposal_id", input.Proposal.ID,
		"ttl", ttl.String())
	return &PutOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	result, err := r.client.Get(ctx, proposalKeyPrefix+input.CharacterID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, notFound(input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get proposal")
	}

	var p mausritter.Proposal
	if err := json.Unmarshal([]byte(result), &p); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal proposal")
	}
	if p.Expired(r.clock.Now()) {
		r.client.Del(ctx, proposalKeyPrefix+input.CharacterID)
		return nil, notFound(input.CharacterID)
	}
	return &GetOutput{Proposal: &p}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if err := r.client.Del(ctx, proposalKeyPrefix+input.CharacterID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete proposal")
	}
	return &DeleteOutput{}, nil
}
