package dicesession

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	redisclient "github.com/KirkDiggler/mausritter-api/internal/redis"
)

// Key pattern: dice_rolls:{entity_id}
const rollsKeyPrefix = "dice_rolls:"

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a roll log stored as one redis list per entity
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append pushes the roll, trims the list and refreshes the expiry in one
// transaction
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateEntity(input.EntityID); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Roll)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal roll")
	}

	key := rollsKeyPrefix + input.EntityID
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -MaxRolls, -1)
	pipe.Expire(ctx, key, ttlOrDefault(input.TTL))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to log roll for %s", input.EntityID)
	}

	return &AppendOutput{}, nil
}

// List reads the whole log. Entries that no longer decode are skipped.
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if err := validateEntity(input.EntityID); err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, rollsKeyPrefix+input.EntityID, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rolls for %s", input.EntityID)
	}

	rolls := make([]DiceRoll, 0, len(raw))
	for _, entry := range raw {
		var roll DiceRoll
		if err := json.Unmarshal([]byte(entry), &roll); err != nil {
			slog.WarnContext(ctx, "skipping undecodable roll",
				"entity_id", input.EntityID,
				"error", err)
			continue
		}
		rolls = append(rolls, roll)
	}

	return &ListOutput{Rolls: rolls}, nil
}

// Clear deletes the log
func (r *redisRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if err := validateEntity(input.EntityID); err != nil {
		return nil, err
	}

	key := rollsKeyPrefix + input.EntityID
	pipe := r.client.TxPipeline()
	count := pipe.LLen(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to clear rolls for %s", input.EntityID)
	}

	return &ClearOutput{RollsDeleted: int(count.Val())}, nil
}
